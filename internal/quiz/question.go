// Package quiz holds the multiple-choice questions that gate the game and the
// presentation logic that resolves one answer at a time.
package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// ErrInvalidQuestion is returned by Validate for structurally broken questions.
var ErrInvalidQuestion = errors.New("quiz: invalid question")

// Question is one multiple-choice question. Immutable once produced.
type Question struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// Validate checks the question has text, four non-empty options and an
// in-range correct index.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: %q has no text", ErrInvalidQuestion, q.ID)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("%w: %q has %d options, want %d", ErrInvalidQuestion, q.ID, len(q.Options), OptionCount)
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: %q option %d is empty", ErrInvalidQuestion, q.ID, i)
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: %q correct index %d out of range", ErrInvalidQuestion, q.ID, q.CorrectIndex)
	}
	return nil
}

// IsCorrect reports whether option i is the right answer.
func (q Question) IsCorrect(i int) bool {
	return i == q.CorrectIndex
}

// Valid filters out structurally invalid questions, keeping order.
func Valid(qs []Question) []Question {
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		if q.Validate() == nil {
			out = append(out, q)
		}
	}
	return out
}
