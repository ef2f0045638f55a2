package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pattern-island/internal/hint"
	"github.com/vovakirdan/pattern-island/internal/pattern"
)

var flagShowPrompt bool

var hintCmd = &cobra.Command{
	Use:   "hint <level-id>",
	Short: "Print a hint for a level",
	Long: `Resolves a hint for a level the way the game does: from the Gemini API
when GEMINI_API_KEY is set, otherwise (or on any failure) from the built-in
hints.

Examples:
  patternisland hint 4 --seed 7
  patternisland hint 23 --prompt`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := runHint(args[0]); err != nil {
			fatal(err)
		}
	},
}

func init() {
	hintCmd.Flags().BoolVar(&flagShowPrompt, "prompt", false, "Also print the prompt sent to the hint service")
}

func runHint(arg string) error {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("level id must be a number: %q", arg)
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	level, ok := a.catalog.Level(id)
	if !ok {
		return fmt.Errorf("unknown level %d (1-%d)", id, a.catalog.Len())
	}

	fmt.Printf("Level %d (%s %d/%d): %s\n", level.ID, level.Category.Title(), level.LevelInGroup,
		pattern.LevelsPerCategory, level.Instruction)
	if flagShowPrompt {
		fmt.Printf("\nPrompt:\n%s\n\n", hint.Prompt(level, a.cfg.Hint.WordCap))
	}

	res := a.hints.Resolve(context.Background(), level)
	fmt.Printf("[%s] %s\n", res.Source, res.Text)
	return nil
}
