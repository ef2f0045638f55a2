// Package game runs level attempts: it tracks choices and hints per attempt,
// applies completions to the player's statistics, persists them and
// announces what happened on the event bus.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/pattern-island/internal/catalog"
	"github.com/vovakirdan/pattern-island/internal/events"
	"github.com/vovakirdan/pattern-island/internal/hint"
	"github.com/vovakirdan/pattern-island/internal/pattern"
	"github.com/vovakirdan/pattern-island/internal/progression"
	"github.com/vovakirdan/pattern-island/internal/storage"
)

var (
	ErrUnknownLevel   = errors.New("game: unknown level")
	ErrUnknownAttempt = errors.New("game: unknown attempt")
	ErrHintPending    = errors.New("game: hint already requested")
	ErrAttemptSolved  = errors.New("game: attempt already solved")
)

// How long attempts are kept once nobody needs them.
const (
	DefaultSolvedTTL = 2 * time.Minute
	DefaultIdleTTL   = 30 * time.Minute
)

// Store persists statistics and completion history.
type Store interface {
	LoadStats(ctx context.Context, profile string, base progression.UserStats) (progression.UserStats, error)
	SaveStats(ctx context.Context, profile string, stats progression.UserStats) error
	RecordCompletion(ctx context.Context, c storage.Completion) (int64, error)
}

// Hinter resolves hints. *hint.Resolver satisfies it.
type Hinter interface {
	Resolve(ctx context.Context, level pattern.Level) hint.Result
}

// Options wires a Service. Catalog and Engine are required; a nil Store
// keeps statistics in memory only and a nil Hints answers locally.
type Options struct {
	Catalog *catalog.Catalog
	Engine  *progression.Engine
	Store   Store
	Hints   Hinter
	Bus     *events.Bus
	Logger  *log.Logger

	// SolvedTTL is how long a solved attempt stays readable after the
	// winning choice. IdleTTL drops unsolved attempts untouched for that
	// long. Zero uses the defaults.
	SolvedTTL time.Duration
	IdleTTL   time.Duration
}

// Service is safe for concurrent use by several front ends.
type Service struct {
	catalog *catalog.Catalog
	engine  *progression.Engine
	store   Store
	hints   Hinter
	bus     *events.Bus
	log     *log.Logger

	mu        sync.Mutex
	attempts  map[string]*Attempt
	solvedTTL time.Duration
	idleTTL   time.Duration

	// statsMu serializes transitions so each completion is applied and
	// written back before the next one starts.
	statsMu sync.Mutex
	stats   map[string]progression.UserStats
}

// NewService creates a game service.
func NewService(opts Options) (*Service, error) {
	if opts.Catalog == nil || opts.Engine == nil {
		return nil, errors.New("game: catalog and engine are required")
	}
	if opts.Hints == nil {
		opts.Hints = hint.NewResolver(nil, hint.Options{})
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.SolvedTTL <= 0 {
		opts.SolvedTTL = DefaultSolvedTTL
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = DefaultIdleTTL
	}
	return &Service{
		catalog:  opts.Catalog,
		engine:   opts.Engine,
		store:    opts.Store,
		hints:    opts.Hints,
		bus:      opts.Bus,
		log:      logger.WithPrefix("game"),
		attempts:  make(map[string]*Attempt),
		solvedTTL: opts.SolvedTTL,
		idleTTL:   opts.IdleTTL,
		stats:     make(map[string]progression.UserStats),
	}, nil
}

// Catalog returns the level catalog.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Rules returns the progression rules in effect.
func (s *Service) Rules() progression.Rules {
	return s.engine.Rules()
}

// Bus returns the event bus, which may be nil.
func (s *Service) Bus() *events.Bus {
	return s.bus
}

// Stats returns the profile's current snapshot with the daily counters
// reset when the day changed. A missing or unreadable save yields defaults.
func (s *Service) Stats(ctx context.Context, profile string) progression.UserStats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.loadLocked(ctx, profile).WithFreshDaily(s.engine.Now()).Clone()
}

func (s *Service) loadLocked(ctx context.Context, profile string) progression.UserStats {
	if st, ok := s.stats[profile]; ok {
		return st
	}
	base := progression.Defaults(s.engine.Now())
	st := base
	if s.store != nil {
		loaded, err := s.store.LoadStats(ctx, profile, base)
		switch {
		case err == nil:
			st = loaded
		case errors.Is(err, storage.ErrNotFound):
			s.log.Debug("no saved stats, starting fresh", "profile", profile)
		default:
			s.log.Warn("cannot load stats, using defaults", "profile", profile, "err", err)
		}
	}
	s.stats[profile] = st
	return st
}

// Start opens an attempt at a level for a profile.
func (s *Service) Start(profile string, levelID int) (Attempt, error) {
	level, ok := s.catalog.Level(levelID)
	if !ok {
		return Attempt{}, fmt.Errorf("%w: %d", ErrUnknownLevel, levelID)
	}
	now := s.engine.Now()
	a := &Attempt{
		ID:        uuid.NewString(),
		Profile:   profile,
		Level:     level,
		StartedAt: now,
		touched:   now,
	}

	s.mu.Lock()
	if n := s.pruneLocked(now); n > 0 {
		s.log.Debug("attempts evicted", "count", n, "open", len(s.attempts))
	}
	s.attempts[a.ID] = a
	s.mu.Unlock()

	s.log.Debug("attempt started", "profile", profile, "level", levelID, "attempt", a.ID)
	return a.snapshot(), nil
}

// Attempt returns a copy of an attempt's current state.
func (s *Service) Attempt(id string) (Attempt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[id]
	if !ok {
		return Attempt{}, false
	}
	return a.snapshot(), true
}

// End forgets an attempt. Unknown ids are ignored.
func (s *Service) End(id string) {
	s.mu.Lock()
	delete(s.attempts, id)
	s.mu.Unlock()
}

// Prune forgets solved attempts older than the solved TTL and unsolved
// attempts idle longer than the idle TTL. Start prunes on its own, so
// callers only need this to reclaim memory between starts. It returns the
// number of attempts removed.
func (s *Service) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneLocked(s.engine.Now())
}

func (s *Service) pruneLocked(now time.Time) int {
	n := 0
	for id, a := range s.attempts {
		switch {
		case a.hintPending:
			continue
		case a.Solved && now.Sub(a.SolvedAt) >= s.solvedTTL,
			!a.Solved && now.Sub(a.touched) >= s.idleTTL:
			delete(s.attempts, id)
			n++
		}
	}
	return n
}

// Choose submits an option for an attempt. Option ids the level does not
// offer and choices after the attempt was solved are ignored.
func (s *Service) Choose(ctx context.Context, attemptID, optionID string) (Result, error) {
	s.mu.Lock()
	a, ok := s.attempts[attemptID]
	if !ok {
		s.mu.Unlock()
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownAttempt, attemptID)
	}
	if a.Solved {
		res := Result{Outcome: OutcomeIgnored, Attempt: a.snapshot()}
		s.mu.Unlock()
		return res, nil
	}
	if _, ok := a.Level.Option(optionID); !ok {
		res := Result{Outcome: OutcomeIgnored, Attempt: a.snapshot()}
		s.mu.Unlock()
		return res, nil
	}

	a.touched = s.engine.Now()
	if !a.Level.IsCorrect(optionID) {
		a.Mistakes++
		res := Result{Outcome: OutcomeWrong, Attempt: a.snapshot()}
		s.mu.Unlock()

		s.bus.Publish(events.ChoiceWrong{
			Profile:   a.Profile,
			AttemptID: a.ID,
			LevelID:   a.Level.ID,
			OptionID:  optionID,
			Mistakes:  res.Attempt.Mistakes,
		})
		return res, nil
	}

	a.Solved = true
	a.SolvedAt = s.engine.Now()
	done := a.snapshot()
	s.mu.Unlock()

	s.bus.Publish(events.ChoiceCorrect{Profile: done.Profile, AttemptID: done.ID, LevelID: done.Level.ID})

	stats, award := s.complete(ctx, done)
	return Result{
		Outcome:     OutcomeCorrect,
		Attempt:     done,
		Award:       &award,
		Stats:       stats,
		NextLevelID: s.catalog.Next(done.Level.ID),
	}, nil
}

func (s *Service) complete(ctx context.Context, a Attempt) (progression.UserStats, progression.Award) {
	c := a.Completion()

	s.statsMu.Lock()
	prior := s.loadLocked(ctx, a.Profile)
	next, award := s.engine.Transition(prior, a.Level, c)
	s.stats[a.Profile] = next

	if s.store != nil {
		if err := s.store.SaveStats(ctx, a.Profile, next); err != nil {
			s.log.Error("cannot save stats", "profile", a.Profile, "err", err)
		}
		_, err := s.store.RecordCompletion(ctx, storage.Completion{
			Profile:   a.Profile,
			AttemptID: a.ID,
			LevelID:   a.Level.ID,
			Category:  a.Level.Category,
			Mistakes:  c.Mistakes,
			UsedHint:  c.UsedHint,
			SolveMs:   c.SolveMs,
			XPGain:    award.XPGain,
			StarGain:  award.StarGain,
			CreatedAt: a.SolvedAt,
		})
		if err != nil {
			s.log.Error("cannot record completion", "profile", a.Profile, "attempt", a.ID, "err", err)
		}
	}
	s.statsMu.Unlock()

	s.log.Info("level completed",
		"profile", a.Profile, "level", a.Level.ID, "mistakes", c.Mistakes,
		"hint", c.UsedHint, "ms", c.SolveMs, "xp", award.XPGain, "stars", award.StarGain)

	s.bus.Publish(events.LevelCompleted{
		Profile:   a.Profile,
		AttemptID: a.ID,
		LevelID:   a.Level.ID,
		Category:  a.Level.Category,
		Tier:      a.Level.Tier,
		Boss:      a.Level.IsBoss,
		Mistakes:  c.Mistakes,
		UsedHint:  c.UsedHint,
		SolveMs:   c.SolveMs,
		XPGain:    award.XPGain,
		StarGain:  award.StarGain,
	})
	for _, b := range award.NewBadges {
		s.bus.Publish(events.BadgeUnlocked{Profile: a.Profile, Badge: string(b), Label: progression.LabelFor(b)})
	}
	s.bus.Publish(events.Celebration{Profile: a.Profile, LevelID: a.Level.ID, Boss: a.Level.IsBoss})

	return next.Clone(), award
}

// Hint resolves a hint for an attempt and marks the attempt as hinted.
// Only one request per attempt may be in flight; later requests return
// the cached hint.
func (s *Service) Hint(ctx context.Context, attemptID string) (hint.Result, error) {
	s.mu.Lock()
	a, ok := s.attempts[attemptID]
	if !ok {
		s.mu.Unlock()
		return hint.Result{}, fmt.Errorf("%w: %s", ErrUnknownAttempt, attemptID)
	}
	switch {
	case a.Solved:
		s.mu.Unlock()
		return hint.Result{}, ErrAttemptSolved
	case a.hintPending:
		s.mu.Unlock()
		return hint.Result{}, ErrHintPending
	case a.Hint != nil:
		res := *a.Hint
		s.mu.Unlock()
		return res, nil
	}
	a.UsedHint = true
	a.hintPending = true
	a.touched = s.engine.Now()
	level, profile := a.Level, a.Profile
	s.mu.Unlock()

	s.bus.Publish(events.HintRequested{Profile: profile, AttemptID: attemptID, LevelID: level.ID})

	res := s.hints.Resolve(ctx, level)

	s.mu.Lock()
	a.hintPending = false
	a.Hint = &res
	s.mu.Unlock()

	s.bus.Publish(events.HintResolved{
		Profile:   profile,
		AttemptID: attemptID,
		LevelID:   level.ID,
		Source:    res.Source,
		Text:      res.Text,
	})
	return res, nil
}

// Click announces a button press for sound effects.
func (s *Service) Click(profile string) {
	s.bus.Publish(events.Click{Profile: profile})
}

// Hover announces the cursor moving onto an option.
func (s *Service) Hover(profile, optionID string) {
	s.bus.Publish(events.Hover{Profile: profile, OptionID: optionID})
}
