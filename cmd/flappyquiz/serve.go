package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-quiz/internal/platform/tui"
	"github.com/vovakirdan/flappy-quiz/internal/questiongen"
	"github.com/vovakirdan/flappy-quiz/internal/quiz"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagIdleTimeout   int
	flagServeSource   string
	flagServeQuestion string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Flappy Quiz SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. The SSH user name is the player's
name on the shared leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.flappyquiz/host_key

Examples:
  flappyquiz serve                           # Listen on :23234 with auto-generated key
  flappyquiz serve --ssh :2222               # Listen on port 2222
  flappyquiz serve --host-key ./my_host_key  # Use specific host key
  flappyquiz serve --questions deck.json     # Start every session with a deck

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeSource, "source", "", "Question source for pasted notes (default from config)")
	serveCmd.Flags().StringVar(&flagServeQuestion, "questions", "", "Question set (JSON) every session starts with")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	logger, closeLog := newLogger(false)
	defer closeLog()

	src, srcName, err := buildSource(cfg, flagServeSource, flagServeQuestion, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var questions []quiz.Question
	if flagServeQuestion != "" {
		if questions, err = questiongen.LoadQuestions(flagServeQuestion); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	serverCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      dbPath(cfg),
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Game:        cfg,
		Source:      src,
		SourceName:  srcName,
		Questions:   questions,
		Logger:      logger.WithPrefix("flappyquiz-ssh"),
	}

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Flappy Quiz SSH server on %s\n", serverCfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
