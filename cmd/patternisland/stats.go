package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var flagRecent int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a profile's progress",
	Long: `Prints stars, XP, rank, daily quests, badges and the most recent
completed levels of a profile.

Examples:
  patternisland stats
  patternisland stats --profile ada --recent 20`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runStats(); err != nil {
			fatal(err)
		}
	},
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent levels to show")
}

func runStats() error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := a.svc.Report(context.Background(), flagProfile, flagRecent)
	if err != nil {
		return err
	}
	s := r.Stats

	fmt.Printf("Profile: %s\n\n", r.Profile)
	fmt.Printf("  Rank:      %s (%d%%", r.Rank.Current.Title, r.Rank.Percent)
	if r.Rank.Next != nil {
		fmt.Printf(", %d XP to %s", r.Rank.ToNext, r.Rank.Next.Title)
	}
	fmt.Println(")")
	fmt.Printf("  Stars:     %d\n", s.Stars)
	fmt.Printf("  XP:        %d\n", s.XP)
	fmt.Printf("  Solved:    %d/%d (%d%%)\n", r.Explored.Completed, r.Explored.Total, r.Explored.Percent)
	fmt.Printf("  Streak:    %d (best %d)\n", s.Streak, s.BestStreak)
	fmt.Printf("  Bosses:    %d\n", s.BossesCompleted)
	fmt.Printf("  Perfect:   %d\n", s.PerfectCompletions)
	if s.FastestSolveMs != nil {
		fmt.Printf("  Fastest:   %.1fs\n", float64(*s.FastestSolveMs)/1000)
	}

	fmt.Println("\nDaily quests:")
	for _, q := range r.Quests {
		mark := " "
		if q.Done {
			mark = "x"
		}
		fmt.Printf("  [%s] %s (%d/%d)\n", mark, q.Label, q.Progress, q.Goal)
	}

	fmt.Println("\nBadges:")
	if len(r.Badges) == 0 {
		fmt.Println("  none yet")
	}
	for _, b := range r.Badges {
		fmt.Printf("  %s - %s\n", b.Label, b.Description)
	}

	fmt.Println("\nCategories:")
	for _, g := range r.Explored.Groups {
		fmt.Printf("  %-9s %2d/%d\n", g.Category.Title(), g.Completed, g.Total)
	}

	if len(r.Recent) > 0 {
		fmt.Println("\nRecent levels:")
		fmt.Printf("  %-5s  %-9s  %-7s  %-4s  %-4s  %-5s  %s\n", "LEVEL", "CATEGORY", "TIME", "MISS", "HINT", "XP", "DATE")
		for _, c := range r.Recent {
			used := "-"
			if c.UsedHint {
				used = "yes"
			}
			fmt.Printf("  %-5d  %-9s  %-7s  %-4d  %-4s  +%-4d  %s\n",
				c.LevelID, c.Category.Title(), fmt.Sprintf("%.1fs", float64(c.SolveMs)/1000),
				c.Mistakes, used, c.XPGain, c.CreatedAt.Local().Format("Jan 02 15:04"))
		}
	}
	return nil
}
