package flappy

import (
	"math"

	"github.com/vovakirdan/flappy-quiz/internal/config"
)

// Playfield and physics constants, in logical pixels and per-frame units.
const (
	GameWidth     = 320
	GameHeight    = 480
	GroundHeight  = 112
	Gravity       = 0.4
	JumpStrength  = -6.5
	PipeSpeed     = 3
	PipeSpawnRate = 70 // frames between spawns (~210px apart)
	PipeGap       = 110
	PipeWidth     = 52
	PipeCapHeight = 26
	MinPipeHeight = 50
	BirdSize      = 34
	HitboxPadding = 6
	GroundTile    = 18 // period of the ground stripe pattern

	RotationUpDeg   = -25
	RotationStepDeg = 3
	RotationMaxDeg  = 90
)

// Tuning carries the simulation parameters. DefaultTuning matches the constants;
// configuration may override them.
type Tuning struct {
	Width        float64
	Height       float64
	GroundHeight float64

	Gravity      float64
	JumpStrength float64
	RotationUp   float64 // radians
	RotationStep float64 // radians per falling frame
	RotationMax  float64 // radians

	PipeSpeed     float64
	PipeSpawnRate int
	PipeGap       float64
	PipeWidth     float64
	PipeCapHeight float64
	MinPipeHeight float64

	BirdSize      float64
	HitboxPadding float64
	GroundTile    float64
}

// DefaultTuning returns the standard game tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Width:         GameWidth,
		Height:        GameHeight,
		GroundHeight:  GroundHeight,
		Gravity:       Gravity,
		JumpStrength:  JumpStrength,
		RotationUp:    deg(RotationUpDeg),
		RotationStep:  deg(RotationStepDeg),
		RotationMax:   deg(RotationMaxDeg),
		PipeSpeed:     PipeSpeed,
		PipeSpawnRate: PipeSpawnRate,
		PipeGap:       PipeGap,
		PipeWidth:     PipeWidth,
		PipeCapHeight: PipeCapHeight,
		MinPipeHeight: MinPipeHeight,
		BirdSize:      BirdSize,
		HitboxPadding: HitboxPadding,
		GroundTile:    GroundTile,
	}
}

// TuningFromConfig builds a tuning from loaded configuration.
func TuningFromConfig(cfg config.Config) Tuning {
	t := DefaultTuning()
	t.Width = float64(cfg.Playfield.Width)
	t.Height = float64(cfg.Playfield.Height)
	t.GroundHeight = float64(cfg.Playfield.GroundHeight)
	t.Gravity = cfg.Physics.Gravity
	t.JumpStrength = cfg.Physics.JumpStrength
	t.RotationUp = deg(cfg.Physics.RotationUpDeg)
	t.RotationStep = deg(cfg.Physics.RotationStepDeg)
	t.RotationMax = deg(cfg.Physics.RotationMaxDeg)
	t.PipeSpeed = cfg.Pipes.Speed
	t.PipeSpawnRate = cfg.Pipes.SpawnRate
	t.PipeGap = cfg.Pipes.Gap
	t.PipeWidth = cfg.Pipes.Width
	t.PipeCapHeight = cfg.Pipes.CapHeight
	t.MinPipeHeight = cfg.Pipes.MinHeight
	t.BirdSize = cfg.Bird.Size
	t.HitboxPadding = cfg.Bird.HitboxPadding
	return t
}

// GroundY returns the y coordinate of the ground line.
func (t Tuning) GroundY() float64 {
	return t.Height - t.GroundHeight
}

// BirdX returns the fixed left edge of the bird sprite (horizontally centred).
func (t Tuning) BirdX() float64 {
	return t.Width/2 - t.BirdSize/2
}

// StartY returns the bird's vertical start position.
func (t Tuning) StartY() float64 {
	return t.Height / 2
}

// MaxPipeHeight returns the upper bound of the top-segment fairness band.
func (t Tuning) MaxPipeHeight() float64 {
	return t.GroundY() - t.PipeGap - t.MinPipeHeight
}

func deg(d float64) float64 {
	return d * math.Pi / 180
}
