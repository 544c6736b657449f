package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/flappy-quiz/internal/config"
	"github.com/vovakirdan/flappy-quiz/internal/storage"
)

// defaultSessionFile keeps the token of the last `play --user` sign-in.
const defaultSessionFile = "~/.flappyquiz/session"

func sessionPath() (string, error) {
	return config.ExpandHome(defaultSessionFile)
}

// signInUser opens a session for name and saves its token at path.
func signInUser(store *storage.Store, path, name, email string) (storage.User, error) {
	if email == "" {
		email = name + "@local"
	}
	u, token, err := store.SignIn(name, email)
	if err != nil {
		return storage.User{}, err
	}

	// Replace the previous session so stale tokens do not pile up.
	if old, readErr := os.ReadFile(path); readErr == nil {
		_ = store.SignOut(strings.TrimSpace(string(old)))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return u, fmt.Errorf("cannot save session: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return u, fmt.Errorf("cannot save session: %w", err)
	}
	return u, nil
}

// resumeUser returns the user of the saved session. A missing file yields
// storage.ErrNotFound; a token the store no longer knows removes the file.
func resumeUser(store *storage.Store, path string) (storage.User, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return storage.User{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.User{}, err
	}

	token := strings.TrimSpace(string(data))
	u, err := store.SessionUser(token)
	if errors.Is(err, storage.ErrNotFound) {
		os.Remove(path)
	}
	return u, err
}

// signOutUser ends the saved session and removes its file.
func signOutUser(store *storage.Store, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := store.SignOut(strings.TrimSpace(string(data))); err != nil {
		return err
	}
	return os.Remove(path)
}
