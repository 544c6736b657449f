package flappy

// World is the mutable entity state of one game session. It is owned by the
// Loop and only leaves it as a Snapshot copy.
type World struct {
	Bird       Bird
	Pipes      *PipeField
	FrameCount int
	Score      int
}

// Reset returns every entity to its run-start value.
func (w *World) Reset(t Tuning) {
	w.Bird.reset(t)
	w.Pipes.Reset()
	w.FrameCount = 0
	w.Score = 0
}
