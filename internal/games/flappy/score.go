package flappy

// ScoreTracker keeps the current run score and the best score of the process.
type ScoreTracker struct {
	current int
	best    int
}

// NewScoreTracker creates a tracker at zero.
func NewScoreTracker() *ScoreTracker {
	return &ScoreTracker{}
}

// Update sets the current score and raises the best if exceeded.
func (s *ScoreTracker) Update(n int) {
	s.current = n
	if n > s.best {
		s.best = n
	}
}

// Current returns the score of the run in progress (or the last run).
func (s *ScoreTracker) Current() int {
	return s.current
}

// Best returns the highest score seen. It never decreases.
func (s *ScoreTracker) Best() int {
	return s.best
}
