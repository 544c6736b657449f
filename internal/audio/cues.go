package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue is a named game sound.
type Cue int

const (
	CueFlap Cue = iota
	CueScore
	CueCrash
	CueCorrect
	CueWrong
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueFlap:
		return "flap"
	case CueScore:
		return "score"
	case CueCrash:
		return "crash"
	case CueCorrect:
		return "correct"
	case CueWrong:
		return "wrong"
	default:
		return "unknown"
	}
}

// Build synthesizes a cue at the given rate and linear volume.
// It returns nil for an unknown cue.
func Build(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueFlap:
		// Quick upward chirp.
		s = note(420, 760, 70*time.Millisecond, WaveTriangle, rate)
	case CueScore:
		// Two-note ding.
		s = beep.Seq(
			note(988, 988, 60*time.Millisecond, WaveSquare, rate),
			note(1319, 1319, 120*time.Millisecond, WaveSquare, rate),
		)
	case CueCrash:
		// Noise thud under a falling tone.
		s = beep.Mix(
			withVolume(note(0, 0, 180*time.Millisecond, WaveNoise, rate), 0.5),
			note(220, 70, 260*time.Millisecond, WaveSquare, rate),
		)
	case CueCorrect:
		// Rising major arpeggio.
		s = beep.Seq(
			note(523, 523, 80*time.Millisecond, WaveSine, rate),
			note(659, 659, 80*time.Millisecond, WaveSine, rate),
			note(784, 784, 160*time.Millisecond, WaveSine, rate),
		)
	case CueWrong:
		// Low descending buzz.
		s = beep.Seq(
			note(196, 196, 140*time.Millisecond, WaveSquare, rate),
			note(147, 147, 240*time.Millisecond, WaveSquare, rate),
		)
	default:
		return nil
	}
	return withVolume(s, volume)
}
