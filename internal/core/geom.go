// Package core provides fundamental types and utilities shared by the game,
// the renderer and the terminal front end. It has no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

// Rect is an integer axis-aligned box, used for terminal-cell layout and hit tests.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// RectF is a float axis-aligned box in playfield pixels.
// Left/Top are inclusive, Right/Bottom are the far edges.
type RectF struct {
	Left, Top, Right, Bottom float64
}

// NewRectF creates a box from its top-left corner and size.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the horizontal extent.
func (r RectF) Width() float64 {
	return r.Right - r.Left
}

// Height returns the vertical extent.
func (r RectF) Height() float64 {
	return r.Bottom - r.Top
}

// Inset shrinks the box by pad on all four sides.
func (r RectF) Inset(pad float64) RectF {
	return RectF{
		Left:   r.Left + pad,
		Top:    r.Top + pad,
		Right:  r.Right - pad,
		Bottom: r.Bottom - pad,
	}
}

// OverlapsX reports whether the two boxes share horizontal extent.
// Touching edges do not count.
func (r RectF) OverlapsX(other RectF) bool {
	return r.Right > other.Left && r.Left < other.Right
}

// Intersects reports whether the two boxes overlap with positive area.
func (r RectF) Intersects(other RectF) bool {
	return r.OverlapsX(other) && r.Bottom > other.Top && r.Top < other.Bottom
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
