package quiz

import "errors"

// ErrEmptyPool is returned when a question is requested from an empty pool.
var ErrEmptyPool = errors.New("quiz: no questions loaded")

// Pool is an ordered set of questions with a cyclic pointer.
// The pointer advances by one on every resolved question, correct or not.
type Pool struct {
	questions []Question
	index     int
}

// NewPool creates a pool over a copy of qs with the pointer at 0.
func NewPool(qs []Question) *Pool {
	p := &Pool{}
	p.Replace(qs)
	return p
}

// Replace swaps in a new question set and rewinds the pointer.
func (p *Pool) Replace(qs []Question) {
	p.questions = append([]Question(nil), qs...)
	p.index = 0
}

// Len returns the number of questions in the pool.
func (p *Pool) Len() int {
	return len(p.questions)
}

// Empty reports whether the pool has no questions.
func (p *Pool) Empty() bool {
	return len(p.questions) == 0
}

// Index returns the current pointer.
func (p *Pool) Index() int {
	return p.index
}

// Questions returns a copy of the pool contents.
func (p *Pool) Questions() []Question {
	return append([]Question(nil), p.questions...)
}

// Current returns the question under the pointer. Structurally invalid
// questions are skipped by moving the pointer forward; if none is valid, or the
// pool is empty, it returns ErrEmptyPool.
func (p *Pool) Current() (Question, error) {
	n := len(p.questions)
	for i := 0; i < n; i++ {
		q := p.questions[p.index]
		if q.Validate() == nil {
			return q, nil
		}
		p.index = (p.index + 1) % n
	}
	return Question{}, ErrEmptyPool
}

// Advance moves the pointer to the next question, wrapping after the last.
// It is a no-op on an empty pool.
func (p *Pool) Advance() {
	if len(p.questions) == 0 {
		return
	}
	p.index = (p.index + 1) % len(p.questions)
}
