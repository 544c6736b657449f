// Package registry provides a global registry of question sources.
// Sources register themselves in init() functions, allowing the CLI and the
// terminal UI to pick one by name without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-quiz/internal/quiz"
)

// Source produces quiz questions from study notes.
type Source interface {
	// Generate returns up to count questions derived from notes.
	// Sources that do not read notes (file, fallback) ignore them.
	Generate(ctx context.Context, notes string, count int) ([]quiz.Question, error)
}

// Options carries everything a factory may need. Each source reads only the
// fields relevant to it.
type Options struct {
	APIKey       string
	Model        string
	MaxNoteChars int
	Timeout      time.Duration
	// Path is the question file for the "file" source.
	Path   string
	Logger *log.Logger
}

// SourceInfo contains metadata about a registered source.
type SourceInfo struct {
	Name        string
	Description string
}

// Factory creates a source from options.
type Factory func(opts Options) (Source, error)

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a source factory to the registry.
// Panics if a source with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: source %q already registered", name))
	}

	factories[name] = f
	descriptions[name] = description
}

// List returns information about all registered sources, sorted by name.
func List() []SourceInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SourceInfo, 0, len(factories))
	for name := range factories {
		result = append(result, SourceInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a source by name.
// Returns an error if the name is not registered or the factory fails.
func Create(name string, opts Options) (Source, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown source %q", name)
	}

	src, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", name, err)
	}
	return src, nil
}

// Exists checks if a source with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
