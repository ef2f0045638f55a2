// Package storage provides SQLite-based persistence for player statistics
// and completion history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/pattern-island/internal/progression"
)

// Storage keys of the stats snapshot. Legacy keys are read when the
// current one is missing and are never written.
const (
	StatsKey       = "pattern_island_stats_v3"
	LegacyStatsKey = "pattern_island_stats_v2"
)

// ErrNotFound is returned when a profile has no saved snapshot.
var ErrNotFound = errors.New("storage: not found")

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Store manages the SQLite database connection.
type Store struct {
	db     *sql.DB
	key    string
	legacy []string
	now    func() time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer keeps SQLite from reporting SQLITE_BUSY across sessions.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{
		db:     db,
		key:    StatsKey,
		legacy: []string{LegacyStatsKey},
		now:    time.Now,
	}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// SetKeys overrides the snapshot key written and the legacy keys read.
func (s *Store) SetKeys(current string, legacy ...string) {
	s.key = current
	s.legacy = append([]string(nil), legacy...)
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS player_stats (
			profile TEXT NOT NULL,
			storage_key TEXT NOT NULL,
			payload TEXT NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (profile, storage_key)
		);

		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT NOT NULL,
			attempt_id TEXT NOT NULL,
			level_id INTEGER NOT NULL,
			category TEXT NOT NULL,
			mistakes INTEGER NOT NULL DEFAULT 0,
			used_hint INTEGER NOT NULL DEFAULT 0,
			solve_ms INTEGER NOT NULL DEFAULT 0,
			xp_gain INTEGER NOT NULL DEFAULT 0,
			star_gain INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_completions_profile ON completions(profile, created_at DESC);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_completions_attempt ON completions(attempt_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadStats reads a profile's snapshot, trying the current key then the
// legacy keys. The payload is decoded over base, so fields an older save
// lacks keep base's values. Returns ErrNotFound when no key has a row.
func (s *Store) LoadStats(ctx context.Context, profile string, base progression.UserStats) (progression.UserStats, error) {
	for _, key := range append([]string{s.key}, s.legacy...) {
		query, args, err := sqlBuilder.
			Select("payload").
			From("player_stats").
			Where(squirrel.Eq{"profile": profile, "storage_key": key}).
			ToSql()
		if err != nil {
			return base, fmt.Errorf("storage: cannot build query: %w", err)
		}

		var payload string
		err = s.db.QueryRowContext(ctx, query, args...).Scan(&payload)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return base, fmt.Errorf("storage: cannot query stats: %w", err)
		}

		stats := base.Clone()
		if err := json.Unmarshal([]byte(payload), &stats); err != nil {
			return base, fmt.Errorf("storage: corrupt stats for %q under %s: %w", profile, key, err)
		}
		return stats.Normalize(), nil
	}
	return base, ErrNotFound
}

// SaveStats writes a profile's snapshot under the current key.
func (s *Store) SaveStats(ctx context.Context, profile string, stats progression.UserStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("storage: cannot encode stats: %w", err)
	}

	query, args, err := sqlBuilder.
		Insert("player_stats").
		Columns("profile", "storage_key", "payload", "updated_at").
		Values(profile, s.key, string(payload), s.now().UnixMilli()).
		Suffix("ON CONFLICT(profile, storage_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("storage: cannot build query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("storage: cannot save stats: %w", err)
	}
	return nil
}

// DeleteStats removes every snapshot of a profile, legacy keys included.
func (s *Store) DeleteStats(ctx context.Context, profile string) error {
	query, args, err := sqlBuilder.Delete("player_stats").Where(squirrel.Eq{"profile": profile}).ToSql()
	if err != nil {
		return fmt.Errorf("storage: cannot build query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("storage: cannot delete stats: %w", err)
	}
	return nil
}

// Profiles lists every profile with a saved snapshot, sorted by name.
func (s *Store) Profiles(ctx context.Context) ([]string, error) {
	query, args, err := sqlBuilder.
		Select("DISTINCT profile").
		From("player_stats").
		OrderBy("profile").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
