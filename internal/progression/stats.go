// Package progression turns level completions into player statistics.
// UserStats is a value snapshot; the Engine never mutates its input and
// persistence is left to the caller.
package progression

import (
	"slices"
	"time"

	"github.com/vovakirdan/pattern-island/internal/pattern"
)

// DailyStats are the counters behind the daily quests.
// They reset lazily when a different UTC day touches the snapshot.
type DailyStats struct {
	DateKey        string `json:"dateKey"`
	CompletedToday int    `json:"completedToday"`
	PerfectToday   int    `json:"perfectToday"`
	BossesToday    int    `json:"bossesToday"`
}

// UserStats is a player's durable profile.
type UserStats struct {
	Stars              int                `json:"stars"`
	Streak             int                `json:"streak"`
	BestStreak         int                `json:"bestStreak"`
	CompletedLevels    []int              `json:"completedLevels"`
	UnlockedGroups     []pattern.Category `json:"unlockedGroups"`
	LastPlayed         time.Time          `json:"lastPlayed"`
	XP                 int                `json:"xp"`
	Badges             []BadgeID          `json:"badges"`
	FastestSolveMs     *int64             `json:"fastestSolveMs"`
	BossesCompleted    int                `json:"bossesCompleted"`
	PerfectCompletions int                `json:"perfectCompletions"`
	Daily              DailyStats         `json:"daily"`
}

// DateKey formats the UTC calendar day of t.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Defaults returns the first-run profile: streak 1 and every category open.
func Defaults(now time.Time) UserStats {
	return UserStats{
		Streak:          1,
		BestStreak:      1,
		CompletedLevels: []int{},
		UnlockedGroups:  pattern.Categories(),
		LastPlayed:      now.UTC(),
		Badges:          []BadgeID{},
		Daily:           DailyStats{DateKey: DateKey(now)},
	}
}

// WithFreshDaily zeroes the daily counters when they belong to another day.
func (s UserStats) WithFreshDaily(now time.Time) UserStats {
	today := DateKey(now)
	if s.Daily.DateKey == today {
		return s
	}
	out := s.Clone()
	out.Daily = DailyStats{DateKey: today}
	return out
}

// Clone returns a deep copy of the snapshot.
func (s UserStats) Clone() UserStats {
	out := s
	out.CompletedLevels = slices.Clone(s.CompletedLevels)
	out.UnlockedGroups = slices.Clone(s.UnlockedGroups)
	out.Badges = slices.Clone(s.Badges)
	if s.FastestSolveMs != nil {
		v := *s.FastestSolveMs
		out.FastestSolveMs = &v
	}
	return out
}

// Normalize repairs a decoded snapshot: nil sets become empty, sets are
// sorted and deduplicated, level ids outside the catalog are dropped and
// streaks are at least 1.
func (s UserStats) Normalize() UserStats {
	out := s.Clone()
	if out.CompletedLevels == nil {
		out.CompletedLevels = []int{}
	}
	maxID := pattern.MaxLevelID()
	out.CompletedLevels = slices.DeleteFunc(out.CompletedLevels, func(id int) bool {
		return id < 1 || id > maxID
	})
	slices.Sort(out.CompletedLevels)
	out.CompletedLevels = slices.Compact(out.CompletedLevels)

	if len(out.UnlockedGroups) == 0 {
		out.UnlockedGroups = pattern.Categories()
	}
	if out.Badges == nil {
		out.Badges = []BadgeID{}
	}
	slices.Sort(out.Badges)
	out.Badges = slices.Compact(out.Badges)

	out.Streak = max(out.Streak, 1)
	out.BestStreak = max(out.BestStreak, out.Streak)
	return out
}

// HasCompleted reports whether a level id is in the completed set.
func (s UserStats) HasCompleted(levelID int) bool {
	_, found := slices.BinarySearch(s.CompletedLevels, levelID)
	return found
}

// HasBadge reports whether a badge has been earned.
func (s UserStats) HasBadge(id BadgeID) bool {
	return slices.Contains(s.Badges, id)
}
