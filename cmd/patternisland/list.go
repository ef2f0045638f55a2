package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pattern-island/internal/catalog"
	"github.com/vovakirdan/pattern-island/internal/pattern"
)

var listCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List the generated levels",
	Long: `Generates the level catalog and prints every level, or only the levels
of one category. Use --seed to reproduce a catalog.

Categories: ` + categoryNames(),
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := runList(args); err != nil {
			fatal(err)
		}
	},
}

func categoryNames() string {
	names := make([]string, 0, len(pattern.Categories()))
	for _, c := range pattern.Categories() {
		names = append(names, strings.ToLower(string(c)))
	}
	return strings.Join(names, ", ")
}

func runList(args []string) error {
	s := seed()
	cat, err := catalog.Build(catalog.NewRand(s))
	if err != nil {
		return err
	}

	levels := cat.Levels()
	if len(args) == 1 {
		c, err := pattern.ParseCategory(args[0])
		if err != nil {
			return err
		}
		levels = cat.ByCategory(c)
	}

	fmt.Printf("Pattern Island levels (seed %d):\n\n", s)
	fmt.Printf("%-4s  %-9s  %-5s  %-13s  %-4s  %s\n", "ID", "CATEGORY", "LEVEL", "TIER", "BOSS", "INSTRUCTION")
	fmt.Printf("%-4s  %-9s  %-5s  %-13s  %-4s  %s\n", "--", "--------", "-----", "----", "----", "-----------")
	for _, l := range levels {
		boss := ""
		if l.IsBoss {
			boss = "yes"
		}
		fmt.Printf("%-4d  %-9s  %-5s  %-13s  %-4s  %s\n",
			l.ID, l.Category, fmt.Sprintf("%d/%d", l.LevelInGroup, pattern.LevelsPerCategory),
			l.Tier, boss, l.Instruction)
	}
	return nil
}
