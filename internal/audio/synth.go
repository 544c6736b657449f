// Package audio synthesizes short game sound cues and plays them through the
// system speaker.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// sweep is an oscillator whose frequency glides linearly from one value to
// another over its duration.
type sweep struct {
	from, to float64
	phase    float64
	total    int
	pos      int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewTone creates a fixed-frequency oscillator.
func NewTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, d, wave, rate)
}

// NewSweep creates an oscillator gliding from one frequency to another.
func NewSweep(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:  from,
		to:    to,
		total: rate.N(d),
		wave:  wave,
		rate:  rate,
		rng:   rand.New(rand.NewSource(1)),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}

		var v float64
		switch s.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			v = 1
			if s.phase >= 0.5 {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(s.phase-0.5) - 1
		case WaveNoise:
			v = s.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		freq := s.from + (s.to-s.from)*float64(s.pos)/float64(s.total)
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope fades a stream in over attack samples and out over release samples.
type envelope struct {
	s       beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

// NewEnvelope shapes s with a linear attack and release.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		s:       s,
		attack:  rate.N(attack),
		release: rate.N(release),
		total:   rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if start := e.total - e.release; e.release > 0 && e.pos >= start {
			vol = math.Max(0, float64(e.total-e.pos)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is a shaped tone with short default attack and release.
func note(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewSweep(from, to, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}
