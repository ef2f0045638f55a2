// Package audio plays the game's short sound effects. Every effect is
// synthesized from plain oscillators, so no sound files ship with the game.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/pattern-island/internal/events"
)

// SampleRate is the output rate of every effect.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveTriangle
	WaveSaw
)

// floor is the gain a tone decays to by its end.
const floor = 0.0001

// tone is a single oscillator note whose gain ramps exponentially from
// its start volume down to floor.
type tone struct {
	freq   float64
	wave   Wave
	volume float64
	rate   beep.SampleRate
	phase  float64
	pos    int
	total  int
}

// Tone creates a decaying note of the given length.
func Tone(freq float64, wave Wave, d time.Duration, volume float64, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, wave: wave, volume: volume, rate: rate, total: rate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		var v float64
		switch t.wave {
		case WaveTriangle:
			v = 1 - 4*math.Abs(t.phase-0.5)
		case WaveSaw:
			v = 2*t.phase - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		v *= t.gain()

		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) gain() float64 {
	if t.volume <= floor || t.total == 0 {
		return t.volume
	}
	progress := float64(t.pos) / float64(t.total)
	return t.volume * math.Pow(floor/t.volume, progress)
}

func (t *tone) Err() error { return nil }

// cue places a streamer at a sample offset inside an arrangement.
type cue struct {
	at int
	s  beep.Streamer
}

// arrangement sums overlapping cues. It ends when its last cue ends.
type arrangement struct {
	cues []cue
	pos  int
	done []bool
	buf  [][2]float64
}

func arrange(cues ...cue) beep.Streamer {
	return &arrangement{cues: cues, done: make([]bool, len(cues))}
}

func (a *arrangement) Stream(samples [][2]float64) (n int, ok bool) {
	if len(a.buf) < len(samples) {
		a.buf = make([][2]float64, len(samples))
	}
	for i := range samples {
		samples[i] = [2]float64{}
	}

	live := false
	for ci, c := range a.cues {
		if a.done[ci] {
			continue
		}
		live = true
		skip := c.at - a.pos
		if skip >= len(samples) {
			n = len(samples)
			continue
		}
		skip = max(skip, 0)
		sn, sok := c.s.Stream(a.buf[:len(samples)-skip])
		for i := 0; i < sn; i++ {
			samples[skip+i][0] += a.buf[i][0]
			samples[skip+i][1] += a.buf[i][1]
		}
		n = max(n, skip+sn)
		if !sok || skip+sn < len(samples) {
			a.done[ci] = true
		}
	}
	if !live {
		return 0, false
	}
	a.pos += n
	return n, n > 0
}

func (a *arrangement) Err() error { return nil }

// Effect returns the sound for an event kind, or nil when the event is silent.
func Effect(kind events.Kind, rate beep.SampleRate) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	at := func(n int) int { return rate.N(ms(n)) }

	switch kind {
	case events.KindClick:
		return Tone(800, WaveSine, ms(100), 0.2, rate)
	case events.KindHover:
		return Tone(400, WaveSine, ms(50), 0.05, rate)
	case events.KindHintRequested:
		return Tone(600, WaveSine, ms(200), 0.1, rate)
	case events.KindChoiceCorrect:
		return arrange(
			cue{at(0), Tone(523.25, WaveTriangle, ms(500), 0.2, rate)},    // C5
			cue{at(100), Tone(659.25, WaveTriangle, ms(500), 0.2, rate)},  // E5
			cue{at(200), Tone(783.99, WaveTriangle, ms(500), 0.2, rate)},  // G5
			cue{at(300), Tone(1046.50, WaveTriangle, ms(500), 0.2, rate)}, // C6
		)
	case events.KindChoiceWrong:
		return arrange(
			cue{at(0), Tone(220, WaveSaw, ms(300), 0.1, rate)},   // A3
			cue{at(150), Tone(196, WaveSaw, ms(400), 0.1, rate)}, // G3
		)
	default:
		return nil
	}
}

// withVolume scales a streamer by a linear master volume.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
