package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-quiz/internal/games/flappy"
	"github.com/vovakirdan/flappy-quiz/internal/platform/tui"
	"github.com/vovakirdan/flappy-quiz/internal/storage"
)

var (
	flagPlayers bool
	flagLimit   int
	flagBrowse  bool
	flagClear   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best runs, or with --players the best signed-in players.

Examples:
  flappyquiz scores
  flappyquiz scores --players
  flappyquiz scores --browse
  flappyquiz scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlayers, "players", false, "Rank players by their best score")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	gameID := flappy.GameID

	switch {
	case flagClear:
		if err := clearScores(os.Stdout, store, gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
		}

	case flagBrowse:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		board := tui.BoardRuns
		if flagPlayers {
			board = tui.BoardPlayers
		}
		if err := tui.RunScoreboard(store, gameID, board, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

	case flagPlayers:
		if err := printPlayers(os.Stdout, store, flagLimit); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving players: %v\n", err)
		}

	default:
		if err := printScores(os.Stdout, store, gameID, flagLimit); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		}
	}
}

func printScores(w io.Writer, store *storage.Store, gameID string, limit int) error {
	scores, err := store.TopScores(gameID, limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "High Scores - Flappy Quiz")
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'flappyquiz play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-6s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-16s  %-6s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "anonymous"
		}
		fmt.Fprintf(w, "  %-4d  %-16s  %-6d  %s\n", i+1, player, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	// Show high score
	fmt.Fprintln(w)
	if highScore, err := store.HighScore(gameID); err == nil {
		fmt.Fprintf(w, "Best: %d\n", highScore)
	}
	if stats, err := store.Stats(gameID); err == nil {
		fmt.Fprintf(w, "Runs: %d  Average: %.1f\n", stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func clearScores(w io.Writer, store *storage.Store, gameID string) error {
	if err := store.ClearScores(gameID); err != nil {
		return err
	}
	fmt.Fprintln(w, "Cleared all Flappy Quiz runs.")
	return nil
}

func printPlayers(w io.Writer, store *storage.Store, limit int) error {
	users, err := store.TopUsers(limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Top Players - Flappy Quiz")
	fmt.Fprintln(w)

	if len(users) == 0 {
		fmt.Fprintln(w, "No players yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'flappyquiz play --user <name>' to join the board!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-6s  %s\n", "Rank", "Player", "Best", "Joined")
	fmt.Fprintf(w, "  %-4s  %-16s  %-6s  %s\n", "----", "------", "----", "------")
	for i, u := range users {
		fmt.Fprintf(w, "  %-4d  %-16s  %-6d  %s\n", i+1, u.Name, u.HighScore, u.JoinedAt.Format("2006-01-02"))
	}
	return nil
}
