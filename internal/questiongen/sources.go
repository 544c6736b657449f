package questiongen

import (
	"context"
	"errors"

	"github.com/vovakirdan/flappy-quiz/internal/registry"
)

// Source names registered with the registry.
const (
	SourceGemini   = "gemini"
	SourceFallback = "fallback"
	SourceFile     = "file"
)

func init() {
	registry.Register(SourceGemini, "Gemini API (falls back to built-in questions on failure)", newGeminiSource)
	registry.Register(SourceFallback, "Built-in sample questions", func(registry.Options) (registry.Source, error) {
		return Fallback{}, nil
	})
	registry.Register(SourceFile, "Question set saved as JSON", func(opts registry.Options) (registry.Source, error) {
		if opts.Path == "" {
			return nil, errors.New("questiongen: file source needs a path")
		}
		return FileGenerator{Path: opts.Path}, nil
	})
}

func newGeminiSource(opts registry.Options) (registry.Source, error) {
	g, err := NewGemini(context.Background(), GeminiOptions{
		APIKey:       opts.APIKey,
		Model:        opts.Model,
		MaxNoteChars: opts.MaxNoteChars,
		Timeout:      opts.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return WithFallback(g, Fallback{}, opts.Logger), nil
}
