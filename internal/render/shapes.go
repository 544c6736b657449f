package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Outline width of shapes, in playfield pixels.
const strokeWidth = 3

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498

// xform maps shape-local coordinates to the raster: rotate, then translate.
type xform struct {
	cx, cy   float64
	sin, cos float64
}

func translate(cx, cy float64) xform {
	return xform{cx: cx, cy: cy, cos: 1}
}

func rotateAbout(cx, cy, angle float64) xform {
	return xform{cx: cx, cy: cy, sin: math.Sin(angle), cos: math.Cos(angle)}
}

func (t xform) apply(x, y float64) (float32, float32) {
	return float32(t.cx + x*t.cos - y*t.sin), float32(t.cy + x*t.sin + y*t.cos)
}

// painter draws filled shapes onto a fixed-size RGBA raster.
type painter struct {
	dst *image.RGBA
	z   *vector.Rasterizer
}

func newPainter(dst *image.RGBA) *painter {
	b := dst.Bounds()
	return &painter{dst: dst, z: vector.NewRasterizer(b.Dx(), b.Dy())}
}

func (p *painter) begin() {
	b := p.dst.Bounds()
	p.z.Reset(b.Dx(), b.Dy())
}

func (p *painter) fill(c color.RGBA) {
	p.z.Draw(p.dst, p.dst.Bounds(), image.NewUniform(c), image.Point{})
}

// rect fills an axis-aligned box; coordinates are rounded to whole pixels.
func (p *painter) rect(x, y, w, h float64, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
	draw.Draw(p.dst, r.Intersect(p.dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// outlinedRect fills a box with a centred outline of strokeWidth.
func (p *painter) outlinedRect(x, y, w, h float64, fill, outline color.RGBA) {
	half := strokeWidth / 2.0
	p.rect(x-half, y-half, w+strokeWidth, h+strokeWidth, outline)
	p.rect(x+half, y+half, w-strokeWidth, h-strokeWidth, fill)
}

// ellipse fills an ellipse centred at (ex, ey) in the local frame of t.
func (p *painter) ellipse(t xform, ex, ey, rx, ry float64, c color.RGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	pt := func(ux, uy float64) (float32, float32) {
		return t.apply(ex+ux*rx, ey+uy*ry)
	}

	// Four cubic quarters, counter-clockwise from (1, 0).
	quarters := [4][3][2]float64{
		{{1, kappa}, {kappa, 1}, {0, 1}},
		{{-kappa, 1}, {-1, kappa}, {-1, 0}},
		{{-1, -kappa}, {-kappa, -1}, {0, -1}},
		{{kappa, -1}, {1, -kappa}, {1, 0}},
	}

	p.begin()
	p.z.MoveTo(pt(1, 0))
	for _, q := range quarters {
		x1, y1 := pt(q[0][0], q[0][1])
		x2, y2 := pt(q[1][0], q[1][1])
		x3, y3 := pt(q[2][0], q[2][1])
		p.z.CubeTo(x1, y1, x2, y2, x3, y3)
	}
	p.z.ClosePath()
	p.fill(c)
}

// outlinedEllipse fills an ellipse with a centred outline of strokeWidth.
func (p *painter) outlinedEllipse(t xform, ex, ey, rx, ry float64, fill, outline color.RGBA) {
	half := strokeWidth / 2.0
	p.ellipse(t, ex, ey, rx+half, ry+half, outline)
	p.ellipse(t, ex, ey, rx-half, ry-half, fill)
}

// slant fills a parallelogram stroke from (x, y) to (x-dx, y+dy), w wide.
func (p *painter) slant(x, y, dx, dy, w float64, c color.RGBA) {
	half := w / 2
	p.begin()
	p.z.MoveTo(float32(x-half), float32(y))
	p.z.LineTo(float32(x+half), float32(y))
	p.z.LineTo(float32(x-dx+half), float32(y+dy))
	p.z.LineTo(float32(x-dx-half), float32(y+dy))
	p.z.ClosePath()
	p.fill(c)
}
