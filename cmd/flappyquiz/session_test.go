package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/flappy-quiz/internal/storage"
)

func TestSessionResume(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(t.TempDir(), "nested", "session")

	if _, err := resumeUser(store, path); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("resumeUser() with no file = %v, want ErrNotFound", err)
	}

	u, err := signInUser(store, path, "ada", "")
	if err != nil {
		t.Fatalf("signInUser() failed: %v", err)
	}
	if u.Email != "ada@local" {
		t.Errorf("Email = %q, want ada@local", u.Email)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("session file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}

	got, err := resumeUser(store, path)
	if err != nil {
		t.Fatalf("resumeUser() failed: %v", err)
	}
	if got.ID != u.ID || got.Name != "ada" {
		t.Errorf("resumeUser() = %+v, want %+v", got, u)
	}
}

func TestSessionSignInReplacesOldToken(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(t.TempDir(), "session")

	if _, err := signInUser(store, path, "ada", ""); err != nil {
		t.Fatalf("signInUser(ada) failed: %v", err)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := signInUser(store, path, "grace", ""); err != nil {
		t.Fatalf("signInUser(grace) failed: %v", err)
	}
	if _, err := store.SessionUser(string(old[:len(old)-1])); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("old session still valid: %v", err)
	}
	got, err := resumeUser(store, path)
	if err != nil || got.Name != "grace" {
		t.Errorf("resumeUser() = %q, %v; want grace", got.Name, err)
	}
}

func TestSessionSignOut(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(t.TempDir(), "session")

	if err := signOutUser(store, path); err != nil {
		t.Errorf("signOutUser() without a session = %v", err)
	}
	if _, err := signInUser(store, path, "ada", "ada@example.com"); err != nil {
		t.Fatalf("signInUser() failed: %v", err)
	}
	if err := signOutUser(store, path); err != nil {
		t.Fatalf("signOutUser() failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file still present: %v", err)
	}
	if _, err := resumeUser(store, path); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("resumeUser() after sign out = %v, want ErrNotFound", err)
	}
}

func TestSessionStaleTokenRemovesFile(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(t.TempDir(), "session")
	if err := os.WriteFile(path, []byte("no-such-token\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := resumeUser(store, path); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("resumeUser() = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("stale session file kept: %v", err)
	}
}
