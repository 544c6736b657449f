package quiz

import (
	"sync/atomic"
	"time"
)

// Default resolution delays.
const (
	DefaultCorrectDelay   = 1000 * time.Millisecond
	DefaultIncorrectDelay = 1500 * time.Millisecond
)

// Delays configures how long feedback stays up before an answer resolves.
type Delays struct {
	Correct   time.Duration
	Incorrect time.Duration
}

// DefaultDelays returns the standard feedback delays.
func DefaultDelays() Delays {
	return Delays{Correct: DefaultCorrectDelay, Incorrect: DefaultIncorrectDelay}
}

// Pending describes a resolution the host must schedule: after Delay it calls
// Session.Fire(Token).
type Pending struct {
	Token   uint64
	Delay   time.Duration
	Correct bool
}

// tokens are unique across all sessions so a timer from a dismissed session
// can never resolve a newer one.
var tokens atomic.Uint64

// Session presents a single question. Selecting an option is terminal for the
// presentation: exactly one of the callbacks runs, once, after its delay.
type Session struct {
	question    Question
	delays      Delays
	onCorrect   func()
	onIncorrect func()

	selected  int
	feedback  bool
	token     uint64
	dismissed bool
	resolved  bool
}

// NewSession creates a presentation for q. Nil callbacks are allowed.
func NewSession(q Question, delays Delays, onCorrect, onIncorrect func()) *Session {
	return &Session{
		question:    q,
		delays:      delays,
		onCorrect:   onCorrect,
		onIncorrect: onIncorrect,
		selected:    -1,
	}
}

// Question returns the question being presented.
func (s *Session) Question() Question {
	return s.question
}

// Select records option i and freezes further input. It returns the pending
// resolution, or false when feedback is already showing, the session is over,
// or i is not a valid option.
func (s *Session) Select(i int) (Pending, bool) {
	if s.feedback || s.dismissed || s.resolved {
		return Pending{}, false
	}
	if i < 0 || i >= len(s.question.Options) {
		return Pending{}, false
	}

	s.selected = i
	s.feedback = true
	s.token = tokens.Add(1)

	p := Pending{Token: s.token, Correct: s.question.IsCorrect(i)}
	if p.Correct {
		p.Delay = s.delays.Correct
	} else {
		p.Delay = s.delays.Incorrect
	}
	return p, true
}

// Fire resolves the session if token matches its outstanding selection.
// Stale or repeated tokens, and tokens arriving after Dismiss, are ignored.
// Reports whether a callback ran.
func (s *Session) Fire(token uint64) bool {
	if s.dismissed || s.resolved || token == 0 || token != s.token {
		return false
	}
	s.resolved = true

	if s.question.IsCorrect(s.selected) {
		if s.onCorrect != nil {
			s.onCorrect()
		}
		return true
	}

	s.feedback = false
	s.selected = -1
	if s.onIncorrect != nil {
		s.onIncorrect()
	}
	return true
}

// Dismiss tears the presentation down; any outstanding timer becomes a no-op.
func (s *Session) Dismiss() {
	s.dismissed = true
}

// Selected returns the chosen option while feedback is showing.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.selected >= 0
}

// ShowingFeedback reports whether the answer feedback is on screen.
func (s *Session) ShowingFeedback() bool {
	return s.feedback
}
