package game

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/vovakirdan/pattern-island/internal/progression"
	"github.com/vovakirdan/pattern-island/internal/storage"
)

// History reads past completions. *storage.Store satisfies it.
type History interface {
	RecentCompletions(ctx context.Context, profile string, limit int) ([]storage.Completion, error)
	CategorySummaries(ctx context.Context, profile string) ([]storage.CategorySummary, error)
}

// Report is everything the stats screens show for a profile.
type Report struct {
	Profile    string                    `json:"profile"`
	Stats      progression.UserStats     `json:"stats"`
	Rank       progression.RankProgress  `json:"rank"`
	Quests     []progression.Quest       `json:"quests"`
	Badges     []progression.Badge       `json:"badges"`
	Explored   progression.Explored      `json:"explored"`
	Recent     []storage.Completion      `json:"recent"`
	Categories []storage.CategorySummary `json:"categories"`
}

// Report assembles a profile's report. History is included when the
// store keeps it; recent limits the number of past completions.
func (s *Service) Report(ctx context.Context, profile string, recent int) (Report, error) {
	stats := s.Stats(ctx, profile)
	rules := s.engine.Rules()

	r := Report{
		Profile:  profile,
		Stats:    stats,
		Rank:     rules.RankFor(stats.XP),
		Quests:   rules.DailyQuests(stats),
		Badges:   lo.Filter(progression.AllBadges, func(b progression.Badge, _ int) bool { return stats.HasBadge(b.ID) }),
		Explored: progression.Explore(stats, s.catalog.Levels()),
	}

	h, ok := s.store.(History)
	if !ok {
		return r, nil
	}
	var err error
	if r.Recent, err = h.RecentCompletions(ctx, profile, recent); err != nil {
		return r, fmt.Errorf("game: recent completions: %w", err)
	}
	if r.Categories, err = h.CategorySummaries(ctx, profile); err != nil {
		return r, fmt.Errorf("game: category summaries: %w", err)
	}
	return r, nil
}
