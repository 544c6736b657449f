package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestImmediateRunsMaxFrames(t *testing.T) {
	var frames []uint64
	err := Immediate{MaxFrames: 5}.Run(context.Background(), func(frame uint64) bool {
		frames = append(frames, frame)
		return true
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(frames) != 5 || frames[0] != 1 || frames[4] != 5 {
		t.Errorf("frames = %v, expected 1..5", frames)
	}
}

func TestImmediateStopsWhenCallbackDeclines(t *testing.T) {
	count := 0
	err := Immediate{}.Run(context.Background(), func(frame uint64) bool {
		count++
		return frame < 3
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if count != 3 {
		t.Errorf("callback ran %d times, expected 3", count)
	}
}

func TestFixedStepCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ran := 0
	err := NewFixedStep(200).Run(ctx, func(uint64) bool {
		ran++
		return true
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, expected deadline exceeded", err)
	}
	if ran == 0 {
		t.Error("expected at least one frame before cancellation")
	}
}

func TestNewFixedStepDefaultRate(t *testing.T) {
	if got := NewFixedStep(0).TickRate; got != 60 {
		t.Errorf("NewFixedStep(0).TickRate = %d, expected 60", got)
	}
}
