package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/flappy-quiz/internal/core"
)

// Pipe is a paired top/bottom obstacle with a fixed gap between the segments.
type Pipe struct {
	X         float64 // left edge
	TopHeight float64 // bottom edge of the top segment
	Passed    bool    // already counted for scoring
}

// Right returns the pipe's trailing (right) edge.
func (p Pipe) Right(t Tuning) float64 {
	return p.X + t.PipeWidth
}

// GapBottom returns the y where the bottom segment starts.
func (p Pipe) GapBottom(t Tuning) float64 {
	return p.TopHeight + t.PipeGap
}

// TopRect returns the drawable box of the top segment.
func (p Pipe) TopRect(t Tuning) core.RectF {
	return core.NewRectF(p.X, 0, t.PipeWidth, p.TopHeight)
}

// BottomRect returns the drawable box of the bottom segment, down to the ground.
func (p Pipe) BottomRect(t Tuning) core.RectF {
	top := p.GapBottom(t)
	return core.NewRectF(p.X, top, t.PipeWidth, t.GroundY()-top)
}

// Hits reports whether a hitbox overlaps either segment. The segments are
// open-ended vertically, so a bird above the playfield still hits the top one.
func (p Pipe) Hits(hb core.RectF, t Tuning) bool {
	top := core.RectF{Left: p.X, Top: math.Inf(-1), Right: p.Right(t), Bottom: p.TopHeight}
	bottom := core.RectF{Left: p.X, Top: p.GapBottom(t), Right: p.Right(t), Bottom: math.Inf(1)}
	return hb.Intersects(top) || hb.Intersects(bottom)
}

// PipeField spawns pipes and owns their ordered list (spawn order = left to right).
type PipeField struct {
	pipes  []Pipe
	rng    *rand.Rand
	tuning Tuning
}

// NewPipeField creates an empty field drawing heights from rng.
func NewPipeField(t Tuning, rng *rand.Rand) *PipeField {
	return &PipeField{
		pipes:  make([]Pipe, 0, 8),
		rng:    rng,
		tuning: t,
	}
}

// Reset clears all pipes.
func (pf *PipeField) Reset() {
	pf.pipes = pf.pipes[:0]
}

// Pipes returns the live pipe list. Callers must not keep it across frames.
func (pf *PipeField) Pipes() []Pipe {
	return pf.pipes
}

// Len returns the number of live pipes.
func (pf *PipeField) Len() int {
	return len(pf.pipes)
}

// Spawn appends a pipe at the right edge with a top height drawn uniformly
// from the integer band [MinPipeHeight, MaxPipeHeight].
func (pf *PipeField) Spawn() Pipe {
	minH := pf.tuning.MinPipeHeight
	span := int(pf.tuning.MaxPipeHeight()-minH) + 1
	if span < 1 {
		span = 1
	}

	p := Pipe{
		X:         pf.tuning.Width,
		TopHeight: minH + float64(pf.rng.Intn(span)),
	}
	pf.pipes = append(pf.pipes, p)
	return p
}
