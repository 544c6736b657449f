package flappy

import (
	"math"
	"math/rand"
)

// Listener receives gameplay events synchronously from inside a frame.
// OnCrash may be called more than once in the same frame (pipe and ground).
// Implementations must not call Tick.
type Listener interface {
	OnCrash()
	OnScore(total int)
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are ignored.
type ListenerFuncs struct {
	Crash func()
	Score func(total int)
}

// OnCrash implements Listener.
func (f ListenerFuncs) OnCrash() {
	if f.Crash != nil {
		f.Crash()
	}
}

// OnScore implements Listener.
func (f ListenerFuncs) OnScore(total int) {
	if f.Score != nil {
		f.Score(total)
	}
}

// Loop owns the world and advances it one fixed frame at a time.
type Loop struct {
	tuning   Tuning
	world    World
	listener Listener

	ticking      bool
	resetPending bool
}

// NewLoop creates a loop with the world at its start position.
// Pipe heights are drawn from a generator seeded with seed.
func NewLoop(t Tuning, seed int64, l Listener) *Loop {
	lp := &Loop{
		tuning:   t,
		listener: l,
		world: World{
			Pipes: NewPipeField(t, rand.New(rand.NewSource(seed))),
		},
	}
	lp.world.Reset(t)
	return lp
}

// Tuning returns the loop's parameters.
func (l *Loop) Tuning() Tuning {
	return l.tuning
}

// Reset returns the world to its start state. Called from inside a frame
// (via a listener) the reset is applied once the frame finishes.
func (l *Loop) Reset() {
	if l.ticking {
		l.resetPending = true
		return
	}
	l.world.Reset(l.tuning)
}

// Reseed restarts the pipe height sequence.
func (l *Loop) Reseed(seed int64) {
	l.world.Pipes.rng = rand.New(rand.NewSource(seed))
}

// Flap replaces the bird's velocity with the jump impulse.
func (l *Loop) Flap() {
	l.world.Bird.flap(l.tuning)
}

// Tick runs one frame. Physics runs only while playing; a snapshot of the
// world is returned in every state. Re-entrant calls do nothing.
func (l *Loop) Tick(state State) Snapshot {
	if state == StatePlaying && !l.ticking {
		l.ticking = true
		l.step()
		l.ticking = false

		if l.resetPending {
			l.resetPending = false
			l.world.Reset(l.tuning)
		}
	}
	return l.Snapshot(state)
}

func (l *Loop) step() {
	t := l.tuning
	w := &l.world

	w.Bird.fall(t)

	w.FrameCount++
	if t.PipeSpawnRate > 0 && w.FrameCount%t.PipeSpawnRate == 0 {
		w.Pipes.Spawn()
	}

	hb := w.Bird.Hitbox(t)
	birdX := t.BirdX()

	pipes := w.Pipes.pipes
	for i := len(pipes) - 1; i >= 0; i-- {
		p := &pipes[i]
		p.X -= t.PipeSpeed

		if p.Hits(hb, t) {
			l.crash()
		}

		if !p.Passed && p.Right(t) < birdX {
			p.Passed = true
			w.Score++
			l.score(w.Score)
		}

		if p.X < -t.PipeWidth {
			pipes = append(pipes[:i], pipes[i+1:]...)
		}
	}
	w.Pipes.pipes = pipes

	groundY := t.GroundY()
	if w.Bird.Y+t.BirdSize >= groundY {
		w.Bird.Y = groundY - t.BirdSize
		l.crash()
	}
}

func (l *Loop) crash() {
	if l.listener != nil {
		l.listener.OnCrash()
	}
}

func (l *Loop) score(total int) {
	if l.listener != nil {
		l.listener.OnScore(total)
	}
}

// GroundOffset returns the horizontal scroll of the ground stripes for a frame.
func (t Tuning) GroundOffset(frame int) float64 {
	if t.GroundTile <= 0 {
		return 0
	}
	return math.Mod(float64(frame)*t.PipeSpeed, t.GroundTile)
}
