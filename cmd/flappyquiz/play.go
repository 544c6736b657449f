package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-quiz/internal/audio"
	"github.com/vovakirdan/flappy-quiz/internal/config"
	"github.com/vovakirdan/flappy-quiz/internal/core"
	"github.com/vovakirdan/flappy-quiz/internal/platform/tui"
	"github.com/vovakirdan/flappy-quiz/internal/questiongen"
	"github.com/vovakirdan/flappy-quiz/internal/quiz"
	"github.com/vovakirdan/flappy-quiz/internal/registry"
	"github.com/vovakirdan/flappy-quiz/internal/storage"
)

var (
	flagNotes     string
	flagSource    string
	flagQuestions string
	flagSound     bool
	flagUser      string
	flagEmail     string
	flagSignOut   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Flappy Quiz",
	Long: `Start the game in the terminal.

Questions come from, in order: --questions, --notes, the last question set
you generated. With none of them you start without questions and can paste
notes in the NOTES tab.

Controls:
  Space/Click - Flap
  1-4 / A-D   - Answer the quiz
  N           - Notes tab (ctrl+g generate, ctrl+o load file, ctrl+t trivia)
  Tab         - Scoreboard (from the menu)
  Ctrl+S      - Save a PNG screenshot
  Q/Ctrl+C    - Quit

Examples:
  flappyquiz play
  flappyquiz play --notes lecture.md
  flappyquiz play --questions questions.json
  flappyquiz play --source fallback --sound --user ada

Signing in with --user is remembered; later games resume that player until
you run 'flappyquiz play --sign-out'.`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagNotes, "notes", "", "Generate questions from this .txt, .md or .json file")
	playCmd.Flags().StringVar(&flagSource, "source", "", "Question source (see 'flappyquiz sources'; default from config)")
	playCmd.Flags().StringVar(&flagQuestions, "questions", "", "Load a saved question set (JSON)")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Enable sound effects")
	playCmd.Flags().StringVar(&flagUser, "user", "", "Sign in as this player")
	playCmd.Flags().StringVar(&flagEmail, "email", "", "Player email (default <user>@local)")
	playCmd.Flags().BoolVar(&flagSignOut, "sign-out", false, "Forget the saved player and play anonymously")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	logger, closeLog := newLogger(true)
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	src, srcName, err := buildSource(cfg, flagSource, flagQuestions, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'flappyquiz sources' to see available sources.")
		os.Exit(1)
	}

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	questions, err := initialQuestions(cfg, src, srcName, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	user := currentUser(store, logger)

	audioCfg := cfg.Audio
	audioCfg.Enabled = audioCfg.Enabled || flagSound
	player := audio.NewPlayer(audioCfg)
	if err := player.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
	}
	defer player.Close()

	runErr := tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:      store,
		Audio:      player,
		Source:     src,
		SourceName: srcName,
		Questions:  questions,
		User:       user,
		Logger:     logger,
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// currentUser signs in with --user, resumes the saved session, or signs out
// with --sign-out. Without a store everyone plays anonymously.
func currentUser(store *storage.Store, logger *log.Logger) *storage.User {
	if store == nil {
		return nil
	}
	path, err := sessionPath()
	if err != nil {
		logger.Warn("no session file", "error", err)
		return nil
	}

	switch {
	case flagSignOut:
		if err := signOutUser(store, path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not sign out: %v\n", err)
		}
		return nil

	case flagUser != "":
		u, err := signInUser(store, path, flagUser, flagEmail)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not sign in: %v\n", err)
			if u.ID == "" {
				return nil
			}
		}
		return &u
	}

	u, err := resumeUser(store, path)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("could not resume session", "error", err)
		}
		return nil
	}
	logger.Info("resumed session", "user", u.Name)
	return &u
}

// initialQuestions picks the deck the game starts with.
func initialQuestions(cfg config.Config, src registry.Source, srcName string, store *storage.Store, logger *log.Logger) ([]quiz.Question, error) {
	switch {
	case flagQuestions != "":
		return questiongen.LoadQuestions(flagQuestions)

	case flagNotes != "":
		notes, err := questiongen.ReadNotes(flagNotes)
		if err != nil {
			return nil, err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Fprintf(os.Stderr, "Generating %d questions from %s...\n", cfg.Generator.Count, flagNotes)
		qs, err := src.Generate(ctx, notes, cfg.Generator.Count)
		if err != nil {
			return nil, fmt.Errorf("could not process notes: %w", err)
		}
		if store != nil {
			if _, err := store.SaveQuestionSet(flagNotes, srcName, qs); err != nil {
				logger.Warn("could not save question set", "error", err)
			}
		}
		return qs, nil

	case store != nil:
		set, err := store.LatestQuestionSet()
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			logger.Warn("could not load last question set", "error", err)
			return nil, nil
		}
		logger.Info("resuming question set", "name", set.Name, "count", len(set.Questions))
		return set.Questions, nil
	}
	return nil, nil
}
