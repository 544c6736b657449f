// Package flappy implements Flappy Quiz: a Flappy Bird-style game where a
// crash opens a multiple-choice question instead of ending the run.
package flappy

import (
	"github.com/vovakirdan/flappy-quiz/internal/core"
	"github.com/vovakirdan/flappy-quiz/internal/quiz"
)

// GameID identifies Flappy Quiz runs in score storage.
const GameID = "flappy-quiz"

// EventKind identifies a gameplay event reported to the host.
type EventKind int

const (
	EventFlap      EventKind = iota + 1 // bird flapped
	EventRunStart                       // Menu -> Playing
	EventScore                          // pipe passed
	EventCrash                          // Playing -> Quiz, Score holds the run's final score
	EventCorrect                        // quiz answered correctly, back to menu
	EventIncorrect                      // wrong answer, next question shown
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventFlap:
		return "flap"
	case EventRunStart:
		return "run_start"
	case EventScore:
		return "score"
	case EventCrash:
		return "crash"
	case EventCorrect:
		return "correct"
	case EventIncorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// Event is a gameplay event with the score it relates to.
type Event struct {
	Kind  EventKind
	Score int
}

// StepResult is the outcome of one frame.
type StepResult struct {
	Snapshot Snapshot
	Events   []Event
	// Pending is set when an answer was selected this frame. The host must
	// call Resolve(Pending.Token) after Pending.Delay.
	Pending *quiz.Pending
}

// Game wires the loop, the state machine, the score tracker and the quiz.
type Game struct {
	tuning  Tuning
	delays  quiz.Delays
	loop    *Loop
	machine *Machine
	score   *ScoreTracker
	session *quiz.Session

	events  []Event
	crashed bool
}

// New creates a game in the menu with the given questions.
func New(t Tuning, delays quiz.Delays, questions []quiz.Question) *Game {
	g := &Game{
		tuning: t,
		delays: delays,
		score:  NewScoreTracker(),
	}
	g.loop = NewLoop(t, 1, ListenerFuncs{Crash: g.onCrash, Score: g.onScore})
	g.machine = NewMachine(g.loop, g.score, quiz.NewPool(questions))
	g.machine.OnTransition(g.transition)
	return g
}

// ID returns the identifier used for score storage.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Flappy Quiz"
}

// Reset discards any run or quiz in progress and returns to the menu.
// A non-zero seed restarts the pipe sequence.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.Seed != 0 {
		g.loop.Reseed(cfg.Seed)
	}
	g.machine.Restart()
	g.events = g.events[:0]
	g.crashed = false
}

// Step applies the frame's input and advances the simulation by one frame.
func (g *Game) Step(in core.InputFrame) StepResult {
	var res StepResult

	if in.Has(core.ActionJump) && g.machine.Jump() {
		g.emit(EventFlap, g.score.Current())
	}

	if i, ok := in.Answer(); ok && g.session != nil && g.machine.State() == StateQuiz {
		if p, ok := g.session.Select(i); ok {
			res.Pending = &p
		}
	}

	g.loop.Tick(g.machine.State())
	if g.crashed {
		g.crashed = false
		g.emit(EventCrash, g.score.Current())
	}

	res.Snapshot = g.Snapshot()
	res.Events = g.drain()
	return res
}

// Resolve fires the quiz timer identified by token. Stale tokens are ignored.
// It returns any events the resolution produced.
func (g *Game) Resolve(token uint64) []Event {
	if g.session == nil {
		return nil
	}
	g.session.Fire(token)
	return g.drain()
}

// SetQuestions replaces the question pool and returns to the menu.
func (g *Game) SetQuestions(qs []quiz.Question) {
	g.machine.SetQuestions(qs)
	g.drain()
}

// Questions returns a copy of the loaded questions.
func (g *Game) Questions() []quiz.Question {
	return g.machine.Pool().Questions()
}

// State returns the current machine state.
func (g *Game) State() State {
	return g.machine.State()
}

// Session returns the open quiz presentation, or nil.
func (g *Game) Session() *quiz.Session {
	return g.session
}

// NeedsContent reports whether the quiz is open but no question is loaded.
func (g *Game) NeedsContent() bool {
	return g.machine.NeedsContent()
}

// Score returns the current and best scores.
func (g *Game) Score() (current, best int) {
	return g.score.Current(), g.score.Best()
}

// Tuning returns the game parameters.
func (g *Game) Tuning() Tuning {
	return g.tuning
}

// Snapshot copies the current frame for rendering.
func (g *Game) Snapshot() Snapshot {
	s := g.loop.Snapshot(g.machine.State())
	s.Best = g.score.Best()
	return s
}

func (g *Game) onCrash() {
	if g.machine.Crash() {
		g.crashed = true
	}
}

func (g *Game) onScore(total int) {
	g.score.Update(total)
	g.emit(EventScore, total)
}

func (g *Game) onCorrect() {
	g.machine.AnswerCorrect()
	g.emit(EventCorrect, g.score.Best())
}

func (g *Game) onIncorrect() {
	g.machine.AnswerIncorrect()
	g.emit(EventIncorrect, 0)
	g.openSession()
}

func (g *Game) transition(from, to State) {
	if from == StateQuiz {
		g.closeSession()
	}
	switch to {
	case StatePlaying:
		g.emit(EventRunStart, 0)
	case StateQuiz:
		g.openSession()
	}
}

func (g *Game) openSession() {
	g.closeSession()
	q, ok := g.machine.CurrentQuestion()
	if !ok {
		return
	}
	g.session = quiz.NewSession(q, g.delays, g.onCorrect, g.onIncorrect)
}

func (g *Game) closeSession() {
	if g.session != nil {
		g.session.Dismiss()
		g.session = nil
	}
}

func (g *Game) emit(kind EventKind, score int) {
	g.events = append(g.events, Event{Kind: kind, Score: score})
}

func (g *Game) drain() []Event {
	if len(g.events) == 0 {
		return nil
	}
	out := append([]Event(nil), g.events...)
	g.events = g.events[:0]
	return out
}
