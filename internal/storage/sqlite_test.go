package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/pattern-island/internal/pattern"
	"github.com/vovakirdan/pattern-island/internal/progression"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStatsMissingProfile(t *testing.T) {
	store := openTestStore(t)
	base := progression.Defaults(time.Now())

	got, err := store.LoadStats(context.Background(), "nobody", base)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("LoadStats() error = %v, want ErrNotFound", err)
	}
	if got.Streak != base.Streak {
		t.Error("missing profile should return the base snapshot")
	}
}

func TestStatsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stats := progression.Defaults(time.Now())
	stats.Stars = 150
	stats.XP = 420
	stats.CompletedLevels = []int{1, 2, 5}
	stats.Badges = []progression.BadgeID{progression.BadgeFirstBoss}
	fastest := int64(4200)
	stats.FastestSolveMs = &fastest

	if err := store.SaveStats(ctx, "ada", stats); err != nil {
		t.Fatalf("SaveStats() failed: %v", err)
	}
	stats.Stars = 160
	if err := store.SaveStats(ctx, "ada", stats); err != nil {
		t.Fatalf("second SaveStats() failed: %v", err)
	}

	got, err := store.LoadStats(ctx, "ada", progression.Defaults(time.Now()))
	if err != nil {
		t.Fatalf("LoadStats() failed: %v", err)
	}
	if got.Stars != 160 || got.XP != 420 {
		t.Errorf("stars/xp = %d/%d, want 160/420", got.Stars, got.XP)
	}
	if len(got.CompletedLevels) != 3 || !got.HasCompleted(5) {
		t.Errorf("completed = %v", got.CompletedLevels)
	}
	if got.FastestSolveMs == nil || *got.FastestSolveMs != 4200 {
		t.Errorf("fastest = %v", got.FastestSolveMs)
	}
	if !got.HasBadge(progression.BadgeFirstBoss) {
		t.Errorf("badges = %v", got.Badges)
	}

	profiles, err := store.Profiles(ctx)
	if err != nil {
		t.Fatalf("Profiles() failed: %v", err)
	}
	if len(profiles) != 1 || profiles[0] != "ada" {
		t.Errorf("profiles = %v", profiles)
	}
}

func TestStatsLegacyKeyMergedOverDefaults(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// A legacy save predates daily counters and badges.
	_, err := store.db.Exec(
		"INSERT INTO player_stats (profile, storage_key, payload, updated_at) VALUES (?, ?, ?, ?)",
		"old", LegacyStatsKey, `{"stars": 90, "streak": 3, "completedLevels": [4, 2]}`, 0,
	)
	if err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}

	base := progression.Defaults(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	got, err := store.LoadStats(ctx, "old", base)
	if err != nil {
		t.Fatalf("LoadStats() failed: %v", err)
	}
	if got.Stars != 90 || got.Streak != 3 {
		t.Errorf("stars/streak = %d/%d", got.Stars, got.Streak)
	}
	if got.Daily.DateKey != "2025-01-02" {
		t.Errorf("daily should come from defaults, got %+v", got.Daily)
	}
	if len(got.UnlockedGroups) != 11 || got.Badges == nil {
		t.Error("missing sets should keep defaults")
	}
	if got.CompletedLevels[0] != 2 {
		t.Errorf("completed levels not normalized: %v", got.CompletedLevels)
	}

	// Saving writes the current key; the next load prefers it.
	got.Stars = 95
	if err := store.SaveStats(ctx, "old", got); err != nil {
		t.Fatalf("SaveStats() failed: %v", err)
	}
	again, err := store.LoadStats(ctx, "old", base)
	if err != nil || again.Stars != 95 {
		t.Errorf("reload = %d, %v; want 95", again.Stars, err)
	}
}

func TestStatsCorruptPayload(t *testing.T) {
	store := openTestStore(t)
	_, err := store.db.Exec(
		"INSERT INTO player_stats (profile, storage_key, payload, updated_at) VALUES (?, ?, ?, ?)",
		"broken", StatsKey, `{"stars": "lots"`, 0,
	)
	if err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}
	_, err = store.LoadStats(context.Background(), "broken", progression.Defaults(time.Now()))
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("LoadStats() error = %v, want decode error", err)
	}
}

func TestStatsUnknownLevelsDropped(t *testing.T) {
	store := openTestStore(t)
	_, err := store.db.Exec(
		"INSERT INTO player_stats (profile, storage_key, payload, updated_at) VALUES (?, ?, ?, ?)",
		"edited", StatsKey, `{"stars": 60, "completedLevels": [0, 3, 111, 42, -1]}`, 0,
	)
	if err != nil {
		t.Fatalf("insert edited row: %v", err)
	}

	got, err := store.LoadStats(context.Background(), "edited", progression.Defaults(time.Now()))
	if err != nil {
		t.Fatalf("LoadStats() failed: %v", err)
	}
	if len(got.CompletedLevels) != 2 || got.CompletedLevels[0] != 3 || got.CompletedLevels[1] != 42 {
		t.Errorf("completed = %v, want [3 42]", got.CompletedLevels)
	}
	if got.Stars != 60 {
		t.Errorf("stars = %d, want 60", got.Stars)
	}
}

func TestDeleteStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if err := store.SaveStats(ctx, "gone", progression.Defaults(time.Now())); err != nil {
		t.Fatalf("SaveStats() failed: %v", err)
	}
	if err := store.DeleteStats(ctx, "gone"); err != nil {
		t.Fatalf("DeleteStats() failed: %v", err)
	}
	if _, err := store.LoadStats(ctx, "gone", progression.Defaults(time.Now())); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete err = %v", err)
	}
}

func TestCompletionsHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	records := []Completion{
		{Profile: "ada", AttemptID: "a1", LevelID: 1, Category: pattern.CategoryColor, SolveMs: 9000, XPGain: 70, StarGain: 50},
		{Profile: "ada", AttemptID: "a2", LevelID: 2, Category: pattern.CategoryColor, Mistakes: 1, SolveMs: 5000, XPGain: 90, StarGain: 50},
		{Profile: "ada", AttemptID: "a3", LevelID: 11, Category: pattern.CategoryShape, UsedHint: true, SolveMs: 12000, XPGain: 70, StarGain: 50},
		{Profile: "bob", AttemptID: "b1", LevelID: 1, Category: pattern.CategoryColor, SolveMs: 1000},
	}
	for i, r := range records {
		r.CreatedAt = start.Add(time.Duration(i) * time.Minute)
		if _, err := store.RecordCompletion(ctx, r); err != nil {
			t.Fatalf("RecordCompletion(%s) failed: %v", r.AttemptID, err)
		}
	}

	recent, err := store.RecentCompletions(ctx, "ada", 2)
	if err != nil {
		t.Fatalf("RecentCompletions() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].AttemptID != "a3" || recent[1].AttemptID != "a2" {
		t.Fatalf("recent = %+v", recent)
	}
	if !recent[0].UsedHint || recent[1].Mistakes != 1 {
		t.Errorf("flags not preserved: %+v", recent)
	}
	if !recent[0].CreatedAt.Equal(start.Add(2 * time.Minute)) {
		t.Errorf("created_at = %v", recent[0].CreatedAt)
	}

	sums, err := store.CategorySummaries(ctx, "ada")
	if err != nil {
		t.Fatalf("CategorySummaries() failed: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("summaries = %+v", sums)
	}
	color := sums[0]
	if color.Category != pattern.CategoryColor || color.Plays != 2 || color.Perfect != 1 || color.BestSolveMs != 5000 {
		t.Errorf("color summary = %+v", color)
	}
	if sums[1].Category != pattern.CategoryShape || sums[1].Perfect != 0 {
		t.Errorf("shape summary = %+v", sums[1])
	}
}

func TestRecordCompletionRejectsDuplicateAttempt(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	c := Completion{Profile: "ada", AttemptID: "same", LevelID: 3, Category: pattern.CategoryColor}
	if _, err := store.RecordCompletion(ctx, c); err != nil {
		t.Fatalf("first RecordCompletion() failed: %v", err)
	}
	if _, err := store.RecordCompletion(ctx, c); err == nil {
		t.Error("expected unique violation for a replayed attempt")
	}
}
