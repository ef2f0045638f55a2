package audio

import (
	"context"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/pattern-island/internal/events"
)

func drainCount(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = max(peak, smp[0], -smp[0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never drained")
	return 0, 0
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	n, peak := drainCount(t, Tone(440, WaveSine, 100*time.Millisecond, 0.2, rate))
	if n != 4410 {
		t.Errorf("samples = %d, want 4410", n)
	}
	if peak > 0.2+1e-9 || peak == 0 {
		t.Errorf("peak = %f, want within (0, 0.2]", peak)
	}
}

func TestWavesStayInRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, w := range []Wave{WaveSine, WaveTriangle, WaveSaw} {
		s := Tone(330, w, 50*time.Millisecond, 1, rate)
		buf := make([][2]float64, 400)
		n, _ := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("wave %d sample %d out of range: %f", w, i, buf[i][0])
			}
		}
	}
}

func TestEffectLengths(t *testing.T) {
	rate := beep.SampleRate(44100)
	tests := []struct {
		kind events.Kind
		want int
	}{
		{events.KindClick, 4410},
		{events.KindHover, 2205},
		{events.KindHintRequested, 8820},
		{events.KindChoiceCorrect, 13230 + 22050}, // last note starts at 300ms
		{events.KindChoiceWrong, 6615 + 17640},    // G3 starts at 150ms
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			s := Effect(tt.kind, rate)
			if s == nil {
				t.Fatal("Effect() = nil")
			}
			if n, _ := drainCount(t, s); n != tt.want {
				t.Errorf("samples = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestSilentEvents(t *testing.T) {
	for _, k := range []events.Kind{events.KindLevelCompleted, events.KindBadgeUnlocked, events.KindHintResolved} {
		if Effect(k, SampleRate) != nil {
			t.Errorf("Effect(%s) should be silent", k)
		}
	}
}

func TestMutedVolume(t *testing.T) {
	s := withVolume(Tone(800, WaveSine, 10*time.Millisecond, 0.2, SampleRate), 0)
	if _, peak := drainCount(t, s); peak != 0 {
		t.Errorf("muted peak = %f", peak)
	}
}

func TestDisabledPlayerDrainsBus(t *testing.T) {
	p := NewPlayer(false, 0.5, nil)
	if err := p.Init(); err != nil {
		t.Fatalf("Init() on disabled player = %v", err)
	}
	if p.Active() {
		t.Fatal("disabled player should not be active")
	}

	bus := events.NewBus(4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx, bus)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for bus.Subscribers() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	bus.Publish(events.Click{})
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
