package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vovakirdan/pattern-island/internal/pattern"
)

// Completion is one solved level in a profile's history.
type Completion struct {
	ID        int64            `json:"id"`
	Profile   string           `json:"profile"`
	AttemptID string           `json:"attemptId"`
	LevelID   int              `json:"levelId"`
	Category  pattern.Category `json:"category"`
	Mistakes  int              `json:"mistakes"`
	UsedHint  bool             `json:"usedHint"`
	SolveMs   int64            `json:"solveMs"`
	XPGain    int              `json:"xpGain"`
	StarGain  int              `json:"starGain"`
	CreatedAt time.Time        `json:"createdAt"`
}

// CategorySummary aggregates a profile's completions of one category.
type CategorySummary struct {
	Category    pattern.Category `json:"category"`
	Plays       int              `json:"plays"`
	Perfect     int              `json:"perfect"`
	BestSolveMs int64            `json:"bestSolveMs"`
}

// RecordCompletion appends a completion to the history.
// Returns the ID of the inserted record.
func (s *Store) RecordCompletion(ctx context.Context, c Completion) (int64, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}

	query, args, err := sqlBuilder.
		Insert("completions").
		Columns("profile", "attempt_id", "level_id", "category", "mistakes", "used_hint",
			"solve_ms", "xp_gain", "star_gain", "created_at").
		Values(c.Profile, c.AttemptID, c.LevelID, string(c.Category), c.Mistakes, c.UsedHint,
			c.SolveMs, c.XPGain, c.StarGain, c.CreatedAt.UnixMilli()).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot build query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentCompletions returns a profile's latest completions, newest first.
func (s *Store) RecentCompletions(ctx context.Context, profile string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 20
	}

	query, args, err := sqlBuilder.
		Select("id", "profile", "attempt_id", "level_id", "category", "mistakes", "used_hint",
			"solve_ms", "xp_gain", "star_gain", "created_at").
		From("completions").
		Where(squirrel.Eq{"profile": profile}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		var category string
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.Profile, &c.AttemptID, &c.LevelID, &category, &c.Mistakes,
			&c.UsedHint, &c.SolveMs, &c.XPGain, &c.StarGain, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.Category = pattern.Category(category)
		c.CreatedAt = time.UnixMilli(createdAt).UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// CategorySummaries aggregates a profile's history per category, in
// catalog order. Categories never played are omitted.
func (s *Store) CategorySummaries(ctx context.Context, profile string) ([]CategorySummary, error) {
	query, args, err := sqlBuilder.
		Select("category", "COUNT(*)",
			"SUM(CASE WHEN mistakes = 0 AND used_hint = 0 THEN 1 ELSE 0 END)",
			"MIN(solve_ms)").
		From("completions").
		Where(squirrel.Eq{"profile": profile}).
		GroupBy("category").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query summaries: %w", err)
	}
	defer rows.Close()

	byCat := make(map[pattern.Category]CategorySummary)
	for rows.Next() {
		var sum CategorySummary
		var category string
		var best sql.NullInt64
		if err := rows.Scan(&category, &sum.Plays, &sum.Perfect, &best); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sum.Category = pattern.Category(category)
		sum.BestSolveMs = best.Int64
		byCat[sum.Category] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	var out []CategorySummary
	for _, c := range pattern.Categories() {
		if sum, ok := byCat[c]; ok {
			out = append(out, sum)
		}
	}
	return out, nil
}
