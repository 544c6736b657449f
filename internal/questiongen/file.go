package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/flappy-quiz/internal/quiz"
)

// ErrUnsupportedFile is returned by ReadNotes for file types it cannot read.
var ErrUnsupportedFile = errors.New("questiongen: unsupported notes file (want .txt, .md or .json)")

var noteExts = map[string]bool{".txt": true, ".md": true, ".json": true}

// ReadNotes loads study notes from a .txt, .md or .json file.
func ReadNotes(path string) (string, error) {
	if !noteExts[strings.ToLower(filepath.Ext(path))] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("questiongen: read notes: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", ErrEmptyNotes
	}
	return string(data), nil
}

// FileGenerator serves a question set saved as JSON. Notes are ignored.
type FileGenerator struct {
	Path string
}

// Generate implements Generator. At most count valid questions are returned
// when count is positive.
func (f FileGenerator) Generate(ctx context.Context, _ string, count int) ([]quiz.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	qs, err := LoadQuestions(f.Path)
	if err != nil {
		return nil, err
	}
	if count > 0 && len(qs) > count {
		qs = qs[:count]
	}
	return qs, nil
}

// LoadQuestions reads a JSON question array and keeps the valid entries.
func LoadQuestions(path string) ([]quiz.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("questiongen: read questions: %w", err)
	}
	var qs []quiz.Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("questiongen: decode questions: %w", err)
	}
	qs = quiz.Valid(qs)
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	return qs, nil
}

// SaveQuestions writes qs as indented JSON, readable by LoadQuestions.
func SaveQuestions(path string, qs []quiz.Question) error {
	data, err := json.MarshalIndent(qs, "", "  ")
	if err != nil {
		return fmt.Errorf("questiongen: encode questions: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("questiongen: create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("questiongen: write questions: %w", err)
	}
	return nil
}
