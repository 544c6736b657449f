package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/flappy-quiz/internal/quiz"
)

// QuestionSet is a saved batch of generated questions.
type QuestionSet struct {
	ID        string
	Name      string
	Source    string
	Questions []quiz.Question
	CreatedAt time.Time
}

// SaveQuestionSet stores qs under name and returns the new set's ID.
func (s *Store) SaveQuestionSet(name, source string, qs []quiz.Question) (string, error) {
	data, err := json.Marshal(qs)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode questions: %w", err)
	}

	id := uuid.NewString()
	if _, err := s.db.Exec(
		`INSERT INTO question_sets (id, name, source, questions) VALUES (?, ?, ?, ?)`,
		id, name, source, string(data),
	); err != nil {
		return "", fmt.Errorf("storage: cannot save question set: %w", err)
	}
	return id, nil
}

// LatestQuestionSet returns the most recently saved set, or ErrNotFound.
func (s *Store) LatestQuestionSet() (QuestionSet, error) {
	return s.questionSet(
		`SELECT id, name, source, questions, created_at
		 FROM question_sets ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	)
}

// QuestionSet returns a saved set by ID, or ErrNotFound.
func (s *Store) QuestionSet(id string) (QuestionSet, error) {
	return s.questionSet(
		`SELECT id, name, source, questions, created_at FROM question_sets WHERE id = ?`, id,
	)
}

func (s *Store) questionSet(query string, args ...any) (QuestionSet, error) {
	var set QuestionSet
	var body string
	var created any

	err := s.db.QueryRow(query, args...).Scan(&set.ID, &set.Name, &set.Source, &body, &created)
	if err != nil {
		if isNoRows(err) {
			return QuestionSet{}, ErrNotFound
		}
		return QuestionSet{}, fmt.Errorf("storage: cannot query question set: %w", err)
	}

	if err := json.Unmarshal([]byte(body), &set.Questions); err != nil {
		return QuestionSet{}, fmt.Errorf("storage: cannot decode question set %s: %w", set.ID, err)
	}
	set.CreatedAt = parseTime(created)
	return set, nil
}
