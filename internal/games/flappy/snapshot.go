package flappy

// PipeView is the renderer's copy of a pipe.
type PipeView struct {
	X         float64
	TopHeight float64
	Passed    bool
}

// Snapshot is an immutable copy of the world for one rendered frame.
type Snapshot struct {
	State      State
	Tuning     Tuning
	FrameCount int
	BirdX      float64
	BirdY      float64
	Velocity   float64
	Rotation   float64
	Pipes      []PipeView
	Score      int
	Best       int
}

// Snapshot copies the world for rendering.
func (l *Loop) Snapshot(state State) Snapshot {
	w := &l.world
	pipes := make([]PipeView, len(w.Pipes.pipes))
	for i, p := range w.Pipes.pipes {
		pipes[i] = PipeView{X: p.X, TopHeight: p.TopHeight, Passed: p.Passed}
	}

	return Snapshot{
		State:      state,
		Tuning:     l.tuning,
		FrameCount: w.FrameCount,
		BirdX:      l.tuning.BirdX(),
		BirdY:      w.Bird.Y,
		Velocity:   w.Bird.Velocity,
		Rotation:   w.Bird.Rotation,
		Pipes:      pipes,
		Score:      w.Score,
	}
}

// GroundOffset returns the ground stripe scroll for this frame.
func (s Snapshot) GroundOffset() float64 {
	return s.Tuning.GroundOffset(s.FrameCount)
}
