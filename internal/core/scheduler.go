package core

import (
	"context"
	"time"
)

// FrameFunc runs one complete update+render pass for the given frame number.
// Returning false stops the scheduler.
type FrameFunc func(frame uint64) bool

// Scheduler drives frames. Each callback is one full pass; frames never overlap.
type Scheduler interface {
	Run(ctx context.Context, fn FrameFunc) error
}

// FixedStep runs frames at a fixed rate using a ticker.
type FixedStep struct {
	TickRate int
}

// NewFixedStep creates a fixed-rate scheduler. Non-positive rates fall back to 60.
func NewFixedStep(tickRate int) FixedStep {
	if tickRate <= 0 {
		tickRate = 60
	}
	return FixedStep{TickRate: tickRate}
}

// Run blocks until fn returns false or ctx is cancelled.
// Cancellation returns ctx.Err(); a normal stop returns nil.
func (s FixedStep) Run(ctx context.Context, fn FrameFunc) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.TickRate))
	defer ticker.Stop()

	var frame uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			frame++
			if !fn(frame) {
				return nil
			}
		}
	}
}

// Immediate runs frames back to back with no waiting, up to MaxFrames
// (0 means unbounded). Used by headless simulation and tests.
type Immediate struct {
	MaxFrames uint64
}

// Run blocks until fn returns false, MaxFrames is reached, or ctx is cancelled.
func (s Immediate) Run(ctx context.Context, fn FrameFunc) error {
	for frame := uint64(1); s.MaxFrames == 0 || frame <= s.MaxFrames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !fn(frame) {
			return nil
		}
	}
	return nil
}
