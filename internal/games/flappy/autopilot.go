package flappy

// Autopilot flaps whenever the bird's hitbox sinks below a line just above
// the next gap's bottom edge. Used by the simulate command and tests.
type Autopilot struct {
	// Margin keeps the hitbox this far above the gap bottom.
	Margin float64
}

// DefaultAutopilot returns an autopilot tuned for the default physics.
func DefaultAutopilot() Autopilot {
	return Autopilot{Margin: 14}
}

// ShouldFlap decides the jump input for the next frame.
func (a Autopilot) ShouldFlap(s Snapshot) bool {
	if s.State == StateMenu {
		return true
	}
	if s.State != StatePlaying {
		return false
	}

	t := s.Tuning
	hbLeft := s.BirdX + t.HitboxPadding
	hbBottom := s.BirdY + t.BirdSize - t.HitboxPadding

	line := t.GroundY() * 0.6
	for _, p := range s.Pipes {
		if p.X+t.PipeWidth >= hbLeft {
			line = p.TopHeight + t.PipeGap - a.Margin
			break
		}
	}
	return hbBottom > line
}
