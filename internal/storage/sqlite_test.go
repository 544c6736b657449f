package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/flappy-quiz/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("flappy-quiz", "ada", 12); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("flappy-quiz")
	if err != nil || high != 12 {
		t.Errorf("HighScore() = %d, %v; want 12", high, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("flappy-quiz", "ada", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", "", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("flappy-quiz", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].Player != "ada" {
			t.Errorf("scores[%d].Player = %q, want ada", i, scores[i].Player)
		}
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("flappy-quiz", "", i)
	}

	scores, err := store.TopScores("flappy-quiz", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 19 {
		t.Errorf("Expected top score 19, got %d", scores[0].Score)
	}

	scores, _ = store.TopScores("flappy-quiz", 0)
	if len(scores) != 10 {
		t.Errorf("default limit: got %d, want 10", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("flappy-quiz")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("flappy-quiz", "", 100)
	store.SaveScore("flappy-quiz", "", 300)
	store.SaveScore("flappy-quiz", "", 200)

	high, err = store.HighScore("flappy-quiz")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("flappy-quiz", "", 100)
	store.SaveScore("other", "", 300)

	if err := store.ClearScores("flappy-quiz"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("flappy-quiz", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Error("other game's scores should not be affected")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("flappy-quiz")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore("flappy-quiz", "", 2)
	store.SaveScore("flappy-quiz", "", 4)

	stats, err := store.Stats("flappy-quiz")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 4 || stats.AvgScore != 3 || stats.TotalScore != 6 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSignInCreatesUserOnce(t *testing.T) {
	store := openTestStore(t)

	u1, tok1, err := store.SignIn("Student Player", "Student@Example.com")
	if err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}
	if u1.ID == "" || tok1 == "" {
		t.Fatal("SignIn() returned empty id or token")
	}
	if u1.Email != "student@example.com" {
		t.Errorf("email = %q, want normalised", u1.Email)
	}
	if u1.HighScore != 0 {
		t.Errorf("new user high score = %d", u1.HighScore)
	}

	u2, tok2, err := store.SignIn("Someone Else", "student@example.com")
	if err != nil {
		t.Fatalf("second SignIn() failed: %v", err)
	}
	if u2.ID != u1.ID || u2.Name != "Student Player" {
		t.Errorf("second sign in created a new user: %+v", u2)
	}
	if tok2 == tok1 {
		t.Error("each sign in should open a new session")
	}

	if _, _, err := store.SignIn("x", "  "); err == nil {
		t.Error("SignIn() without email should fail")
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := openTestStore(t)

	u, tok, err := store.SignIn("ada", "ada@example.com")
	if err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}

	got, err := store.SessionUser(tok)
	if err != nil {
		t.Fatalf("SessionUser() failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("SessionUser() = %s, want %s", got.ID, u.ID)
	}

	if err := store.SignOut(tok); err != nil {
		t.Fatalf("SignOut() failed: %v", err)
	}
	if _, err := store.SessionUser(tok); !errors.Is(err, ErrNotFound) {
		t.Errorf("SessionUser() after sign out = %v, want ErrNotFound", err)
	}
	if err := store.SignOut("unknown"); err != nil {
		t.Errorf("SignOut(unknown) = %v", err)
	}
}

func TestUpdateUserHighScoreOnlyRaises(t *testing.T) {
	store := openTestStore(t)
	u, _, _ := store.SignIn("ada", "ada@example.com")

	tests := []struct {
		score int
		want  int
	}{
		{5, 5},
		{3, 5},
		{9, 9},
		{9, 9},
	}
	for _, tt := range tests {
		got, err := store.UpdateUserHighScore(u.ID, tt.score)
		if err != nil {
			t.Fatalf("UpdateUserHighScore(%d) failed: %v", tt.score, err)
		}
		if got.HighScore != tt.want {
			t.Errorf("after %d: high score = %d, want %d", tt.score, got.HighScore, tt.want)
		}
	}

	if _, err := store.UpdateUserHighScore("missing", 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: err = %v, want ErrNotFound", err)
	}
}

func TestTopUsers(t *testing.T) {
	store := openTestStore(t)

	a, _, _ := store.SignIn("ada", "ada@example.com")
	b, _, _ := store.SignIn("bob", "bob@example.com")
	store.SignIn("cy", "cy@example.com")
	store.UpdateUserHighScore(a.ID, 4)
	store.UpdateUserHighScore(b.ID, 11)

	users, err := store.TopUsers(2)
	if err != nil {
		t.Fatalf("TopUsers() failed: %v", err)
	}
	if len(users) != 2 || users[0].Name != "bob" || users[1].Name != "ada" {
		t.Errorf("TopUsers() = %+v", users)
	}
}

func TestQuestionSets(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LatestQuestionSet(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty LatestQuestionSet() = %v, want ErrNotFound", err)
	}

	first := []quiz.Question{{ID: "a", Text: "A?", Options: []string{"1", "2", "3", "4"}, CorrectIndex: 0}}
	second := []quiz.Question{{ID: "b", Text: "B?", Options: []string{"1", "2", "3", "4"}, CorrectIndex: 3}}

	id1, err := store.SaveQuestionSet("bio", "gemini", first)
	if err != nil {
		t.Fatalf("SaveQuestionSet() failed: %v", err)
	}
	if _, err := store.SaveQuestionSet("chem", "fallback", second); err != nil {
		t.Fatalf("SaveQuestionSet() failed: %v", err)
	}

	latest, err := store.LatestQuestionSet()
	if err != nil {
		t.Fatalf("LatestQuestionSet() failed: %v", err)
	}
	if latest.Name != "chem" || latest.Source != "fallback" || len(latest.Questions) != 1 || latest.Questions[0].CorrectIndex != 3 {
		t.Errorf("LatestQuestionSet() = %+v", latest)
	}

	got, err := store.QuestionSet(id1)
	if err != nil {
		t.Fatalf("QuestionSet() failed: %v", err)
	}
	if got.Questions[0].ID != "a" {
		t.Errorf("QuestionSet(%s) = %+v", id1, got)
	}

	if _, err := store.QuestionSet("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("QuestionSet(missing) = %v, want ErrNotFound", err)
	}
}
