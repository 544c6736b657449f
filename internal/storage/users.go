package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// avatarBase generates a cartoon avatar from a seed.
const avatarBase = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// User is a signed-in player.
type User struct {
	ID        string
	Name      string
	Email     string
	Avatar    string
	HighScore int
	JoinedAt  time.Time
}

// SignIn finds the user with email, creating it on first sign-in, and opens a
// new session. It returns the user and the session token.
func (s *Store) SignIn(name, email string) (User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" {
		return User{}, "", errors.New("storage: sign in needs an email")
	}
	if name == "" {
		name = email
	}

	tx, err := s.db.Begin()
	if err != nil {
		return User{}, "", fmt.Errorf("storage: cannot begin sign in: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	u, err := scanUser(tx.QueryRow(
		`SELECT id, name, email, avatar, high_score, joined_at FROM users WHERE email = ?`, email,
	))
	if errors.Is(err, ErrNotFound) {
		u = User{
			ID:     uuid.NewString(),
			Name:   name,
			Email:  email,
			Avatar: avatarBase + url.QueryEscape(name),
		}
		if _, err := tx.Exec(
			`INSERT INTO users (id, name, email, avatar) VALUES (?, ?, ?, ?)`,
			u.ID, u.Name, u.Email, u.Avatar,
		); err != nil {
			return User{}, "", fmt.Errorf("storage: cannot create user: %w", err)
		}
		u.JoinedAt = time.Now().UTC()
	} else if err != nil {
		return User{}, "", err
	}

	token := uuid.NewString()
	if _, err := tx.Exec(`INSERT INTO sessions (token, user_id) VALUES (?, ?)`, token, u.ID); err != nil {
		return User{}, "", fmt.Errorf("storage: cannot create session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return User{}, "", fmt.Errorf("storage: cannot commit sign in: %w", err)
	}
	return u, token, nil
}

// SessionUser returns the user owning a session token.
func (s *Store) SessionUser(token string) (User, error) {
	return scanUser(s.db.QueryRow(
		`SELECT u.id, u.name, u.email, u.avatar, u.high_score, u.joined_at
		 FROM sessions AS se JOIN users AS u ON u.id = se.user_id
		 WHERE se.token = ?`, token,
	))
}

// SignOut ends a session. Unknown tokens are not an error.
func (s *Store) SignOut(token string) error {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("storage: cannot sign out: %w", err)
	}
	return nil
}

// User looks a user up by ID.
func (s *Store) User(id string) (User, error) {
	return scanUser(s.db.QueryRow(
		`SELECT id, name, email, avatar, high_score, joined_at FROM users WHERE id = ?`, id,
	))
}

// UpdateUserHighScore raises the user's high score to score if it is higher
// and returns the stored user. Lower scores leave it unchanged.
func (s *Store) UpdateUserHighScore(id string, score int) (User, error) {
	if _, err := s.db.Exec(
		`UPDATE users SET high_score = ? WHERE id = ? AND high_score < ?`,
		score, id, score,
	); err != nil {
		return User{}, fmt.Errorf("storage: cannot update high score: %w", err)
	}
	return s.User(id)
}

// TopUsers returns players ordered by high score.
func (s *Store) TopUsers(limit int) ([]User, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, name, email, avatar, high_score, joined_at
		 FROM users
		 ORDER BY high_score DESC, joined_at ASC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return users, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var joined any
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.HighScore, &joined)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("storage: cannot scan user: %w", err)
	}
	u.JoinedAt = parseTime(joined)
	return u, nil
}
