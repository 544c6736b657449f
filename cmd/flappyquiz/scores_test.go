package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/flappy-quiz/internal/games/flappy"
	"github.com/vovakirdan/flappy-quiz/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPrintScoresShowsBest(t *testing.T) {
	store := newTestStore(t)
	for _, s := range []struct {
		player string
		score  int
	}{{"ada", 5}, {"", 12}, {"ada", 3}} {
		if _, err := store.SaveScore(flappy.GameID, s.player, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := printScores(&buf, store, flappy.GameID, 10); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"High Scores - Flappy Quiz", "anonymous", "Best: 12", "Runs: 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "anonymous") > strings.Index(out, "ada") {
		t.Errorf("best run should be listed first:\n%s", out)
	}
}

func TestClearScores(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.SaveScore(flappy.GameID, "ada", 7); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := clearScores(&buf, store, flappy.GameID); err != nil {
		t.Fatalf("clearScores() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Cleared") {
		t.Errorf("clearScores() output = %q", buf.String())
	}

	buf.Reset()
	if err := printScores(&buf, store, flappy.GameID, 10); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No scores recorded yet.") {
		t.Errorf("scores remain after clear:\n%s", buf.String())
	}
	if best, err := store.HighScore(flappy.GameID); err != nil || best != 0 {
		t.Errorf("HighScore() = %d, %v; want 0", best, err)
	}
}

func TestPrintPlayersEmpty(t *testing.T) {
	store := newTestStore(t)
	var buf bytes.Buffer
	if err := printPlayers(&buf, store, 5); err != nil {
		t.Fatalf("printPlayers() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No players yet.") {
		t.Errorf("printPlayers() = %q", buf.String())
	}
}
