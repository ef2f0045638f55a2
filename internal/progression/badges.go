package progression

import "github.com/samber/lo"

// BadgeID identifies an achievement.
type BadgeID string

const (
	BadgeFirstBoss     BadgeID = "first_boss"
	BadgeStreak10      BadgeID = "streak_10"
	BadgeSpeedster     BadgeID = "speedster"
	BadgePerfectionist BadgeID = "perfectionist"
)

// Badge describes an achievement for display.
type Badge struct {
	ID          BadgeID `json:"id"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
}

// AllBadges lists every badge in display order.
var AllBadges = []Badge{
	{ID: BadgeFirstBoss, Label: "First Boss Win", Description: "Beat a boss level"},
	{ID: BadgeStreak10, Label: "Streak x10", Description: "Ten mistake-free levels in a row"},
	{ID: BadgeSpeedster, Label: "Lightning Solver", Description: "Solve a level in seven seconds or less"},
	{ID: BadgePerfectionist, Label: "Perfect x20", Description: "Twenty perfect levels"},
}

// LabelFor returns the display label of a badge, or its id when unknown.
func LabelFor(id BadgeID) string {
	b, ok := lo.Find(AllBadges, func(b Badge) bool { return b.ID == id })
	if !ok {
		return string(id)
	}
	return b.Label
}

// qualifying returns the badges the stats satisfy under r.
func qualifying(s UserStats, r Rules) []BadgeID {
	var earned []BadgeID

	if s.BossesCompleted >= 1 {
		earned = append(earned, BadgeFirstBoss)
	}
	if s.BestStreak >= r.Badges.StreakAt {
		earned = append(earned, BadgeStreak10)
	}
	if s.FastestSolveMs != nil && *s.FastestSolveMs <= r.Badges.SpeedsterMs {
		earned = append(earned, BadgeSpeedster)
	}
	if s.PerfectCompletions >= r.Badges.PerfectionistAt {
		earned = append(earned, BadgePerfectionist)
	}

	return earned
}
