package progression

import (
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/pattern-island/internal/pattern"
)

// TierXP is the XP bonus per difficulty tier.
type TierXP struct {
	Beginner     int `yaml:"beginner"`
	Intermediate int `yaml:"intermediate"`
	Advanced     int `yaml:"advanced"`
}

// For returns the bonus for a tier.
func (t TierXP) For(tier pattern.Tier) int {
	switch tier {
	case pattern.TierBeginner:
		return t.Beginner
	case pattern.TierIntermediate:
		return t.Intermediate
	case pattern.TierAdvanced:
		return t.Advanced
	default:
		return 0
	}
}

// XPRules holds the XP award constants.
type XPRules struct {
	Base             int    `yaml:"base"`
	Tier             TierXP `yaml:"tier"`
	Boss             int    `yaml:"boss"`
	Speed            int    `yaml:"speed"`
	SpeedThresholdMs int64  `yaml:"speed_threshold_ms"`
	Perfect          int    `yaml:"perfect"`
}

// StarRules holds the star award constants.
type StarRules struct {
	NewLevel  int `yaml:"new_level"`
	BossBonus int `yaml:"boss_bonus"`
	Repeat    int `yaml:"repeat"`
}

// BadgeRules holds badge thresholds.
type BadgeRules struct {
	StreakAt        int   `yaml:"streak_at"`
	SpeedsterMs     int64 `yaml:"speedster_ms"`
	PerfectionistAt int   `yaml:"perfectionist_at"`
}

// Rules is every tunable constant of the progression engine.
type Rules struct {
	XP     XPRules    `yaml:"xp"`
	Stars  StarRules  `yaml:"stars"`
	Badges BadgeRules `yaml:"badges"`
	Quests QuestGoals `yaml:"quests"`
	Ranks  []Rank     `yaml:"ranks"`
}

// DefaultRules returns the standard award table.
func DefaultRules() Rules {
	return Rules{
		XP: XPRules{
			Base:             60,
			Tier:             TierXP{Beginner: 10, Intermediate: 25, Advanced: 45},
			Boss:             80,
			Speed:            20,
			SpeedThresholdMs: 7000,
			Perfect:          30,
		},
		Stars: StarRules{NewLevel: 50, BossBonus: 50, Repeat: 10},
		Badges: BadgeRules{
			StreakAt:        10,
			SpeedsterMs:     7000,
			PerfectionistAt: 20,
		},
		Quests: QuestGoals{LevelsToday: 5, Streak: 5, BossesToday: 1},
		Ranks:  DefaultRanks(),
	}
}

// Validate rejects award tables that would break monotonic progress.
func (r Rules) Validate() error {
	for name, v := range map[string]int{
		"xp.base": r.XP.Base, "xp.boss": r.XP.Boss, "xp.speed": r.XP.Speed, "xp.perfect": r.XP.Perfect,
		"xp.tier.beginner": r.XP.Tier.Beginner, "xp.tier.intermediate": r.XP.Tier.Intermediate,
		"xp.tier.advanced": r.XP.Tier.Advanced, "stars.new_level": r.Stars.NewLevel,
		"stars.boss_bonus": r.Stars.BossBonus, "stars.repeat": r.Stars.Repeat,
	} {
		if v < 0 {
			return fmt.Errorf("progression: %s must not be negative (got %d)", name, v)
		}
	}
	if r.Badges.StreakAt < 1 || r.Badges.PerfectionistAt < 1 {
		return fmt.Errorf("progression: badge thresholds must be positive")
	}
	if r.Quests.LevelsToday < 1 || r.Quests.Streak < 1 || r.Quests.BossesToday < 1 {
		return fmt.Errorf("progression: quest goals must be positive")
	}
	if len(r.Ranks) == 0 || r.Ranks[0].MinXP != 0 {
		return fmt.Errorf("progression: rank table must start at 0 XP")
	}
	for i := 1; i < len(r.Ranks); i++ {
		if r.Ranks[i].MinXP <= r.Ranks[i-1].MinXP {
			return fmt.Errorf("progression: rank %q must need more XP than %q", r.Ranks[i].Title, r.Ranks[i-1].Title)
		}
	}
	return nil
}

// Completion is what a finished level attempt reports.
type Completion struct {
	Mistakes int   `json:"mistakes"`
	UsedHint bool  `json:"usedHint"`
	SolveMs  int64 `json:"solveMs"`
}

// Perfect reports a mistake-free, hint-free completion.
func (c Completion) Perfect() bool {
	return c.Mistakes == 0 && !c.UsedHint
}

// Award is the breakdown of one transition.
type Award struct {
	LevelID   int       `json:"levelId"`
	NewLevel  bool      `json:"newLevel"`
	Perfect   bool      `json:"perfect"`
	XPGain    int       `json:"xpGain"`
	StarGain  int       `json:"starGain"`
	NewBadges []BadgeID `json:"newBadges"`
}

// Engine applies completions to snapshots.
type Engine struct {
	rules Rules
	now   func() time.Time
}

// NewEngine creates an engine. A nil clock uses time.Now.
func NewEngine(rules Rules, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{rules: rules, now: now}
}

// Rules returns the engine's award table.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Now returns the engine clock.
func (e *Engine) Now() time.Time {
	return e.now()
}

// Apply returns the snapshot after completing level.
func (e *Engine) Apply(prior UserStats, level pattern.Level, c Completion) UserStats {
	next, _ := e.Transition(prior, level, c)
	return next
}

// Transition computes the snapshot after completing level together with
// the award breakdown. prior is not modified.
func (e *Engine) Transition(prior UserStats, level pattern.Level, c Completion) (UserStats, Award) {
	now := e.now()
	c.Mistakes = max(c.Mistakes, 0)
	c.SolveMs = max(c.SolveMs, 0)

	next := prior.Normalize().WithFreshDaily(now).Clone()
	perfect := c.Perfect()
	award := Award{
		LevelID:  level.ID,
		NewLevel: !next.HasCompleted(level.ID),
		Perfect:  perfect,
		XPGain:   e.xpGain(level, c),
		StarGain: e.starGain(level, !next.HasCompleted(level.ID)),
	}

	next.Stars += award.StarGain
	next.XP += award.XPGain

	if c.Mistakes == 0 {
		next.Streak++
	} else {
		next.Streak = 1
	}
	next.BestStreak = max(next.BestStreak, next.Streak)

	if award.NewLevel {
		idx, _ := slices.BinarySearch(next.CompletedLevels, level.ID)
		next.CompletedLevels = slices.Insert(next.CompletedLevels, idx, level.ID)
	}

	fastest := c.SolveMs
	if next.FastestSolveMs != nil {
		fastest = min(*next.FastestSolveMs, c.SolveMs)
	}
	next.FastestSolveMs = &fastest

	next.Daily.CompletedToday++
	if level.IsBoss {
		next.BossesCompleted++
		next.Daily.BossesToday++
	}
	if perfect {
		next.PerfectCompletions++
		next.Daily.PerfectToday++
	}
	next.LastPlayed = now.UTC()

	for _, b := range qualifying(next, e.rules) {
		if !next.HasBadge(b) {
			next.Badges = append(next.Badges, b)
			award.NewBadges = append(award.NewBadges, b)
		}
	}
	slices.Sort(next.Badges)

	return next, award
}

func (e *Engine) xpGain(level pattern.Level, c Completion) int {
	x := e.rules.XP
	gain := x.Base + x.Tier.For(level.Tier)
	if level.IsBoss {
		gain += x.Boss
	}
	if c.SolveMs <= x.SpeedThresholdMs {
		gain += x.Speed
	}
	if c.Perfect() {
		gain += x.Perfect
	}
	return gain
}

func (e *Engine) starGain(level pattern.Level, isNew bool) int {
	s := e.rules.Stars
	if !isNew {
		return s.Repeat
	}
	if level.IsBoss {
		return s.NewLevel + s.BossBonus
	}
	return s.NewLevel
}
