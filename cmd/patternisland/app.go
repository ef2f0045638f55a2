package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pattern-island/internal/catalog"
	"github.com/vovakirdan/pattern-island/internal/config"
	"github.com/vovakirdan/pattern-island/internal/events"
	"github.com/vovakirdan/pattern-island/internal/game"
	"github.com/vovakirdan/pattern-island/internal/hint"
	"github.com/vovakirdan/pattern-island/internal/logging"
	"github.com/vovakirdan/pattern-island/internal/progression"
	"github.com/vovakirdan/pattern-island/internal/storage"
)

// busBuffer is the per-subscriber queue of the event bus.
const busBuffer = 64

// app is everything a command needs, wired from the configuration.
type app struct {
	cfg     config.Config
	log     *log.Logger
	seed    int64
	catalog *catalog.Catalog
	store   *storage.Store
	hints   *hint.Resolver
	bus     *events.Bus
	svc     *game.Service
	closers []io.Closer
}

// loadConfig reads the configuration and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// seed returns the --seed flag, or a time-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// newApp builds the catalog, storage, hints and game service. Interactive
// commands log to the configured file so the terminal stays clean.
func newApp(interactive bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, seed: seed()}
	if interactive {
		logger, closer := logging.OpenFile(cfg.Log.File, cfg.Log.Level, "patternisland")
		a.log = logger
		a.closers = append(a.closers, closer)
	} else {
		a.log = logging.New(os.Stderr, cfg.Log.Level, "patternisland")
	}
	a.log.Debug("configuration loaded", "source", cfg.Source)

	a.catalog, err = catalog.Build(catalog.NewRand(a.seed))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.log.Info("catalog built", "levels", a.catalog.Len(), "seed", a.seed)

	opts := game.Options{
		Catalog: a.catalog,
		Engine:  progression.NewEngine(cfg.Progression, nil),
		Logger:  a.log,
	}

	// Continue without storage - the game still works, progress is not kept
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		a.log.Warn("could not open statistics database", "path", cfg.Storage.Path, "err", err)
	} else {
		store.SetKeys(cfg.Storage.Key, cfg.Storage.LegacyKeys...)
		a.store = store
		a.closers = append(a.closers, store)
		opts.Store = store
	}

	var remote hint.Source
	if cfg.HintEnabled() {
		remote = hint.NewGemini(hint.GeminiOptions{
			Endpoint:        cfg.Hint.Endpoint,
			Model:           cfg.Hint.Model,
			APIKey:          cfg.Hint.APIKey,
			Temperature:     cfg.Hint.Temperature,
			TopP:            cfg.Hint.TopP,
			MaxOutputTokens: cfg.Hint.MaxOutputTokens,
			WordCap:         cfg.Hint.WordCap,
			Logger:          a.log,
		})
		a.log.Debug("remote hints enabled", "model", cfg.Hint.Model)
	}
	a.hints = hint.NewResolver(remote, hint.Options{
		Timeout: cfg.Hint.Timeout,
		WordCap: cfg.Hint.WordCap,
		Generic: cfg.Hint.Generic,
		Logger:  a.log,
	})
	opts.Hints = a.hints

	a.bus = events.NewBus(busBuffer)
	opts.Bus = a.bus

	a.svc, err = game.NewService(opts)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("cannot create game service: %w", err)
	}
	return a, nil
}

// Close releases the event bus, the database and the log file.
func (a *app) Close() {
	if a.bus != nil {
		a.bus.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
}
