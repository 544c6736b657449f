// flappyquiz is a Flappy Bird-style terminal game where crashing costs you a
// quiz question generated from your own study notes.
//
// Usage:
//
//	flappyquiz play                  - Play in the terminal
//	flappyquiz serve                 - Start SSH server for remote play
//	flappyquiz scores                - Show high scores
//	flappyquiz generate <notes>      - Generate a question set from notes
//	flappyquiz simulate              - Run a headless autopilot game
//	flappyquiz sources               - List question sources
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible pipe layouts
//	--db <path>         - Set database path (default: from config)
//	--config <path>     - Use a custom YAML config
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-quiz/internal/config"
	"github.com/vovakirdan/flappy-quiz/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappyquiz",
	Short: "Flappy Quiz - Learn or lose, in your terminal",
	Long: `Flappy Quiz is Flappy Bird with a study twist: every crash opens a
multiple-choice question generated from your notes. Answer it correctly
to fly again.

Available commands:
  play      - Play in the terminal
  serve     - Start SSH server for remote play
  scores    - View high scores
  generate  - Turn a notes file into a question set
  simulate  - Run a headless autopilot game
  sources   - List question sources

Examples:
  flappyquiz play --notes biology.md
  flappyquiz play --source fallback --sound
  flappyquiz serve --ssh :2222
  flappyquiz generate lecture.txt --out questions.json
  flappyquiz simulate --frames 1200 --png frame.png`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (play defaults to ~/.flappyquiz/flappyquiz.log)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(sourcesCmd)
}

// mustLoadConfig loads configuration or exits.
func mustLoadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// defaultLogFile receives logs of full-screen commands, which own the terminal.
const defaultLogFile = "~/.flappyquiz/flappyquiz.log"

// newLogger builds the command logger. Full-screen commands pass quiet so
// nothing reaches the terminal; they log to --log-file or defaultLogFile.
func newLogger(quiet bool) (*log.Logger, func()) {
	var out io.Writer = os.Stderr
	closeFn := func() {}

	file := flagLogFile
	if file == "" && quiet {
		file = defaultLogFile
	}
	if quiet {
		out = io.Discard
	}

	if file != "" {
		path, err := config.ExpandHome(file)
		if err == nil {
			err = os.MkdirAll(filepath.Dir(path), 0o755)
		}
		if err == nil {
			var f *os.File
			if f, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
				out = f
				closeFn = func() { f.Close() }
			}
		}
		if err != nil && !quiet {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappyquiz",
	})
	if lvl, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger, closeFn
}

// dbPath resolves the database path from the flag or the config.
func dbPath(cfg config.Config) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.Storage.DBPath
}

// openStore opens the database; on failure it logs and returns nil so the
// game still runs without persistence.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		logger.Warn("could not open database", "error", err)
		return nil
	}
	return store
}
