package audio

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/pattern-island/internal/events"
)

// Player turns bus events into sound. A player whose speaker could not be
// opened stays silent and keeps draining events.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	enabled     bool
	initialized bool
	log         *log.Logger
}

// NewPlayer creates a player. Volume is linear in [0,1].
func NewPlayer(enabled bool, volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer:   &beep.Mixer{},
		volume:  volume,
		enabled: enabled,
		log:     logger.WithPrefix("audio"),
	}
}

// Init opens the speaker. Failures are logged and leave the player silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		p.log.Warn("speaker unavailable, sound disabled", "err", err)
		p.enabled = false
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Active reports whether sounds reach the speaker.
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues the effect of an event kind.
func (p *Player) Play(kind events.Kind) {
	p.mu.Lock()
	active := p.initialized
	p.mu.Unlock()
	if !active {
		return
	}

	s := Effect(kind, SampleRate)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(withVolume(s, p.volume))
	speaker.Unlock()
}

// Run plays events from the bus until ctx is done or the bus closes.
func (p *Player) Run(ctx context.Context, bus *events.Bus) {
	if bus == nil {
		return
	}
	ch, cancel := bus.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			p.Play(ev.Kind())
		}
	}
}

// Close stops every queued sound.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
