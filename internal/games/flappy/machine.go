package flappy

import "github.com/vovakirdan/flappy-quiz/internal/quiz"

// State is the top-level game mode.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateGameOver // reserved; a crash always leads to the quiz
	StateQuiz
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	case StateQuiz:
		return "Quiz"
	default:
		return "Unknown"
	}
}

// Machine drives the Menu -> Playing -> Quiz -> Menu cycle.
//
// A crash suspends play and opens the quiz on the current question. A correct
// answer returns to the menu; a wrong one moves on to the next question and
// the quiz stays open. Either way the pool pointer advances.
type Machine struct {
	state State
	loop  *Loop
	score *ScoreTracker
	pool  *quiz.Pool

	onTransition func(from, to State)
}

// NewMachine creates a machine in Menu over the given loop, tracker and pool.
func NewMachine(loop *Loop, score *ScoreTracker, pool *quiz.Pool) *Machine {
	return &Machine{
		state: StateMenu,
		loop:  loop,
		score: score,
		pool:  pool,
	}
}

// OnTransition registers fn to run after every state change.
func (m *Machine) OnTransition(fn func(from, to State)) {
	m.onTransition = fn
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Pool returns the question pool.
func (m *Machine) Pool() *quiz.Pool {
	return m.pool
}

// Jump starts a run from the menu or flaps during play. It reports whether
// the input had any effect.
func (m *Machine) Jump() bool {
	switch m.state {
	case StateMenu:
		m.resetRun()
		m.loop.Flap()
		m.enter(StatePlaying)
		return true
	case StatePlaying:
		m.loop.Flap()
		return true
	default:
		return false
	}
}

// Crash moves a running game to the quiz. Signals outside Playing, including
// a second crash in the same frame, are ignored.
func (m *Machine) Crash() bool {
	if m.state != StatePlaying {
		return false
	}
	m.enter(StateQuiz)
	return true
}

// AnswerCorrect closes the quiz, advances the pool and returns to the menu.
func (m *Machine) AnswerCorrect() {
	if m.state != StateQuiz {
		return
	}
	m.pool.Advance()
	m.enter(StateMenu)
}

// AnswerIncorrect advances the pool; the quiz stays open on the next question.
func (m *Machine) AnswerIncorrect() {
	if m.state != StateQuiz {
		return
	}
	m.pool.Advance()
}

// SetQuestions installs a new question set, rewinds the pointer and returns
// to the menu.
func (m *Machine) SetQuestions(qs []quiz.Question) {
	m.pool.Replace(qs)
	m.enter(StateMenu)
}

// CurrentQuestion returns the question under the pool pointer.
func (m *Machine) CurrentQuestion() (quiz.Question, bool) {
	q, err := m.pool.Current()
	if err != nil {
		return quiz.Question{}, false
	}
	return q, true
}

// NeedsContent reports whether the quiz is open with nothing to ask.
func (m *Machine) NeedsContent() bool {
	if m.state != StateQuiz {
		return false
	}
	_, ok := m.CurrentQuestion()
	return !ok
}

func (m *Machine) resetRun() {
	m.loop.Reset()
	m.score.Update(0)
}

func (m *Machine) enter(to State) {
	from := m.state
	if to == StateMenu {
		m.resetRun()
	}
	m.state = to

	if m.onTransition != nil && from != to {
		m.onTransition(from, to)
	}
}

// Restart abandons the current run or quiz and returns to the menu.
func (m *Machine) Restart() {
	m.enter(StateMenu)
}
