// Package questiongen turns study notes into quiz questions.
package questiongen

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-quiz/internal/quiz"
)

// Defaults shared by the generators.
const (
	DefaultCount        = 15
	DefaultModel        = "gemini-2.5-flash"
	DefaultMaxNoteChars = 10000
	// TriviaNotes is the input used when the player asks for random trivia.
	TriviaNotes = "General knowledge trivia."
)

var (
	// ErrNoAPIKey is returned when the Gemini generator has no credentials.
	ErrNoAPIKey = errors.New("questiongen: no API key")
	// ErrEmptyNotes is returned for blank input.
	ErrEmptyNotes = errors.New("questiongen: notes are empty")
	// ErrNoQuestions is returned when a source yields no usable question.
	ErrNoQuestions = errors.New("questiongen: no usable questions")
)

// Generator produces up to count questions from notes.
type Generator interface {
	Generate(ctx context.Context, notes string, count int) ([]quiz.Question, error)
}

// GeneratorFunc adapts a function to a Generator.
type GeneratorFunc func(ctx context.Context, notes string, count int) ([]quiz.Question, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, notes string, count int) ([]quiz.Question, error) {
	return f(ctx, notes, count)
}

// fallbackChain tries primary and substitutes fallback's questions on failure.
type fallbackChain struct {
	primary  Generator
	fallback Generator
	logger   *log.Logger
}

// WithFallback returns a generator that never surfaces primary's errors: when
// primary fails or returns nothing valid, the failure is logged and fallback
// is used instead. Cancellation of ctx is still returned as an error.
func WithFallback(primary, fallback Generator, logger *log.Logger) Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &fallbackChain{primary: primary, fallback: fallback, logger: logger}
}

func (c *fallbackChain) Generate(ctx context.Context, notes string, count int) ([]quiz.Question, error) {
	qs, err := c.primary.Generate(ctx, notes, count)
	if err == nil {
		qs = quiz.Valid(qs)
		if len(qs) > 0 {
			return qs, nil
		}
		err = ErrNoQuestions
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	c.logger.Warn("question generation failed, using fallback questions", "error", err)
	return c.fallback.Generate(ctx, notes, count)
}
