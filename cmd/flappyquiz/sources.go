package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-quiz/internal/config"
	"github.com/vovakirdan/flappy-quiz/internal/questiongen"
	"github.com/vovakirdan/flappy-quiz/internal/registry"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List question sources",
	Long:  `Shows the question sources that can be selected with --source.`,
	Run:   runSources,
}

func runSources(_ *cobra.Command, _ []string) {
	sources := registry.List()

	if len(sources) == 0 {
		fmt.Println("No sources available.")
		return
	}

	fmt.Println("Question sources:")
	fmt.Println()

	maxLen := 4 // "Name" header
	for _, s := range sources {
		if len(s.Name) > maxLen {
			maxLen = len(s.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxLen, "----", "-----------")
	for _, s := range sources {
		fmt.Printf("  %-*s  %s\n", maxLen, s.Name, s.Description)
	}

	fmt.Println()
	fmt.Println("Run 'flappyquiz play --source <name>' to use one.")
}

// buildSource creates the named source. When name is empty the configured
// source is used. A Gemini source without credentials degrades to the
// built-in questions with a warning.
func buildSource(cfg config.Config, name, path string, logger *log.Logger) (registry.Source, string, error) {
	if name == "" {
		name = cfg.Generator.Source
	}
	opts := registry.Options{
		APIKey:       os.Getenv(cfg.Generator.APIKeyEnv),
		Model:        cfg.Generator.Model,
		MaxNoteChars: cfg.Generator.MaxNoteChars,
		Timeout:      cfg.Generator.Timeout,
		Path:         path,
		Logger:       logger,
	}

	src, err := registry.Create(name, opts)
	if err != nil && name == questiongen.SourceGemini {
		logger.Warn("gemini unavailable, using built-in questions",
			"env", cfg.Generator.APIKeyEnv, "error", err)
		name = questiongen.SourceFallback
		src, err = registry.Create(name, opts)
	}
	if err != nil {
		return nil, "", err
	}
	return src, name, nil
}
