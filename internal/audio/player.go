package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/flappy-quiz/internal/config"
)

// Player plays cues through the speaker. A disabled player accepts every call
// and does nothing, so callers never need to check.
type Player struct {
	mu      sync.Mutex
	enabled bool
	rate    beep.SampleRate
	volume  float64
	mixer   *beep.Mixer
	started bool

	// Cues replayed within minGap of their last start are dropped.
	minGap time.Duration
	last   map[Cue]time.Time
	now    func() time.Time
}

// NewPlayer creates a player from audio configuration. The speaker is not
// touched until Start.
func NewPlayer(cfg config.AudioConfig) *Player {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &Player{
		enabled: cfg.Enabled,
		rate:    beep.SampleRate(rate),
		volume:  cfg.Volume,
		mixer:   &beep.Mixer{},
		minGap:  40 * time.Millisecond,
		last:    make(map[Cue]time.Time),
		now:     time.Now,
	}
}

// Enabled reports whether the player makes sound.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Start opens the speaker. On failure the player disables itself and
// returns the error, so the game can continue silently.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.started {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		p.enabled = false
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Play queues a cue. It returns whether the cue was accepted.
func (p *Player) Play(c Cue) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return false
	}
	now := p.now()
	if last, ok := p.last[c]; ok && now.Sub(last) < p.minGap {
		return false
	}

	s := Build(c, p.rate, p.volume)
	if s == nil {
		return false
	}
	p.last[c] = now

	if !p.started {
		return true
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return true
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.started = false
}
