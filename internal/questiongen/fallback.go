package questiongen

import (
	"context"

	"github.com/vovakirdan/flappy-quiz/internal/quiz"
)

// FallbackQuestions returns the built-in questions used when generation fails.
func FallbackQuestions() []quiz.Question {
	return []quiz.Question{
		{
			ID:           "fallback-1",
			Text:         "Who wrote the Declaration of Independence?",
			Options:      []string{"George Washington", "Thomas Jefferson", "Abraham Lincoln", "Ben Franklin"},
			CorrectIndex: 1,
		},
		{
			ID:           "fallback-2",
			Text:         "What is the powerhouse of the cell?",
			Options:      []string{"Nucleus", "Ribosome", "Mitochondria", "Golgi Apparatus"},
			CorrectIndex: 2,
		},
	}
}

// Fallback always returns FallbackQuestions, ignoring notes and count.
type Fallback struct{}

// Generate implements Generator.
func (Fallback) Generate(context.Context, string, int) ([]quiz.Question, error) {
	return FallbackQuestions(), nil
}
