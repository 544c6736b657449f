package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-quiz/internal/questiongen"
)

var (
	flagGenCount  int
	flagGenOut    string
	flagGenSave   bool
	flagGenSource string
)

var generateCmd = &cobra.Command{
	Use:   "generate <notes-file>",
	Short: "Generate a question set from notes",
	Long: `Read a .txt, .md or .json notes file and generate multiple-choice
questions from it. The set is printed, and optionally written as JSON
(--out) or stored as your latest deck (--save) for the next 'play'.

The Gemini source reads its API key from the environment variable named by
generator.api_key_env in the config (GEMINI_API_KEY by default).

Examples:
  flappyquiz generate lecture.md
  flappyquiz generate notes.txt --count 20 --out deck.json
  flappyquiz generate notes.txt --save`,
	Args: cobra.ExactArgs(1),
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&flagGenCount, "count", 0, "Number of questions (default from config)")
	generateCmd.Flags().StringVar(&flagGenOut, "out", "", "Write the questions to this JSON file")
	generateCmd.Flags().BoolVar(&flagGenSave, "save", false, "Store the set as the latest deck")
	generateCmd.Flags().StringVar(&flagGenSource, "source", "", "Question source (default from config)")
}

func runGenerate(_ *cobra.Command, args []string) {
	path := args[0]
	cfg := mustLoadConfig()
	logger, closeLog := newLogger(false)
	defer closeLog()

	notes, err := questiongen.ReadNotes(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	src, srcName, err := buildSource(cfg, flagGenSource, "", logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	count := flagGenCount
	if count <= 0 {
		count = cfg.Generator.Count
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("generating questions", "notes", path, "count", count, "source", srcName)
	qs, err := src.Generate(ctx, notes, count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not process notes: %v\n", err)
		os.Exit(1)
	}

	for i, q := range qs {
		fmt.Printf("%d. %s\n", i+1, q.Text)
		for j, opt := range q.Options {
			mark := " "
			if q.IsCorrect(j) {
				mark = "*"
			}
			fmt.Printf("   %s %c) %s\n", mark, 'a'+j, opt)
		}
		fmt.Println()
	}

	if flagGenOut != "" {
		if err := questiongen.SaveQuestions(flagGenOut, qs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d questions to %s\n", len(qs), flagGenOut)
	}

	if flagGenSave {
		store := openStore(cfg, logger)
		if store == nil {
			os.Exit(1)
		}
		defer store.Close()
		id, err := store.SaveQuestionSet(filepath.Base(path), srcName, qs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Saved question set %s\n", id)
	}
}
