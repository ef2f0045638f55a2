package progression

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/vovakirdan/pattern-island/internal/pattern"
)

// Rank is a title unlocked at an XP floor.
type Rank struct {
	Title string `yaml:"title" json:"title"`
	MinXP int    `yaml:"min_xp" json:"minXp"`
}

// DefaultRanks returns the standard rank ladder.
func DefaultRanks() []Rank {
	return []Rank{
		{Title: "Explorer", MinXP: 0},
		{Title: "Pattern Scout", MinXP: 300},
		{Title: "Pattern Pro", MinXP: 900},
		{Title: "Pattern Hero", MinXP: 1800},
		{Title: "Pattern Master", MinXP: 3200},
	}
}

// maxRankSpan is the width of the progress bar once the top rank is reached.
const maxRankSpan = 600

// RankProgress locates an XP total on the rank ladder.
type RankProgress struct {
	Current Rank  `json:"current"`
	Next    *Rank `json:"next,omitempty"`
	// ToNext is the XP still missing for Next; 0 at the top rank.
	ToNext  int `json:"toNext"`
	Percent int `json:"percent"`
}

// RankFor returns the rank held at xp and the progress towards the next one.
func (r Rules) RankFor(xp int) RankProgress {
	ranks := r.Ranks
	if len(ranks) == 0 {
		ranks = DefaultRanks()
	}

	current := ranks[0]
	var next *Rank
	for i, rk := range ranks {
		if xp >= rk.MinXP {
			current = rk
			continue
		}
		next = &ranks[i]
		break
	}

	ceiling := current.MinXP + maxRankSpan
	out := RankProgress{Current: current}
	if next != nil {
		n := *next
		out.Next = &n
		out.ToNext = n.MinXP - xp
		ceiling = n.MinXP
	}
	out.Percent = percent(xp-current.MinXP, ceiling-current.MinXP)
	return out
}

// QuestGoals are the daily quest targets.
type QuestGoals struct {
	LevelsToday int `yaml:"levels_today"`
	Streak      int `yaml:"streak"`
	BossesToday int `yaml:"bosses_today"`
}

// Quest is one daily quest with its progress.
type Quest struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Progress int    `json:"progress"`
	Goal     int    `json:"goal"`
	Done     bool   `json:"done"`
}

// DailyQuests returns today's quests for a snapshot. Progress is capped at the goal.
func (r Rules) DailyQuests(s UserStats) []Quest {
	g := r.Quests
	build := func(id, label string, progress, goal int) Quest {
		return Quest{ID: id, Label: label, Progress: min(progress, goal), Goal: goal, Done: progress >= goal}
	}
	return []Quest{
		build("levels", plural("Complete %d level%s today", g.LevelsToday), s.Daily.CompletedToday, g.LevelsToday),
		build("streak", fmt.Sprintf("Reach streak x%d", g.Streak), s.Streak, g.Streak),
		build("boss", plural("Beat %d boss level%s today", g.BossesToday), s.Daily.BossesToday, g.BossesToday),
	}
}

// GroupProgress is the completion count of one category.
type GroupProgress struct {
	Category  pattern.Category `json:"category"`
	Completed int              `json:"completed"`
	Total     int              `json:"total"`
}

// Explored summarizes how much of a catalog a snapshot has completed.
type Explored struct {
	Groups    []GroupProgress `json:"groups"`
	Completed int             `json:"completed"`
	Total     int             `json:"total"`
	Percent   int             `json:"percent"`
}

// Explore counts completed levels per category.
func Explore(s UserStats, levels []pattern.Level) Explored {
	byCat := lo.GroupBy(levels, func(l pattern.Level) pattern.Category { return l.Category })
	out := Explored{Total: len(levels)}
	for _, cat := range pattern.Categories() {
		ls, ok := byCat[cat]
		if !ok {
			continue
		}
		done := lo.CountBy(ls, func(l pattern.Level) bool { return s.HasCompleted(l.ID) })
		out.Groups = append(out.Groups, GroupProgress{Category: cat, Completed: done, Total: len(ls)})
		out.Completed += done
	}
	out.Percent = percent(out.Completed, out.Total)
	return out
}

func plural(format string, n int) string {
	suffix := "s"
	if n == 1 {
		suffix = ""
	}
	return fmt.Sprintf(format, n, suffix)
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 100
	}
	p := (part*100 + whole/2) / whole
	return max(0, min(100, p))
}
