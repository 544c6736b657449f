package flappy

import "github.com/vovakirdan/flappy-quiz/internal/core"

// Bird is the player entity. X is fixed by the tuning; only vertical state moves.
type Bird struct {
	Y        float64 // top of the sprite, pixels
	Velocity float64 // px/frame, negative = up
	Rotation float64 // radians, within [RotationUp, RotationMax]
}

// reset puts the bird at the start position at rest.
func (b *Bird) reset(t Tuning) {
	b.Y = t.StartY()
	b.Velocity = 0
	b.Rotation = 0
}

// flap replaces the velocity with the jump impulse.
func (b *Bird) flap(t Tuning) {
	b.Velocity = t.JumpStrength
}

// fall applies one frame of gravity and the matching tilt.
func (b *Bird) fall(t Tuning) {
	b.Velocity += t.Gravity
	b.Y += b.Velocity

	if b.Velocity < 0 {
		b.Rotation = t.RotationUp
		return
	}
	b.Rotation = core.ClampF(b.Rotation+t.RotationStep, t.RotationUp, t.RotationMax)
}

// Bounds returns the nominal sprite box.
func (b Bird) Bounds(t Tuning) core.RectF {
	return core.NewRectF(t.BirdX(), b.Y, t.BirdSize, t.BirdSize)
}

// Hitbox returns the sprite box padded inward on all sides.
func (b Bird) Hitbox(t Tuning) core.RectF {
	return b.Bounds(t).Inset(t.HitboxPadding)
}
