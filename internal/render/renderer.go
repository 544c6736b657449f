// Package render draws game snapshots onto an RGBA raster and downsamples
// the raster into terminal cells.
package render

import (
	"image"
	"image/color"
	"strconv"

	"github.com/aquilax/go-perlin"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/flappy-quiz/internal/core"
	"github.com/vovakirdan/flappy-quiz/internal/games/flappy"
)

// Fixed scenery, in playfield pixels.
var clouds = []struct{ x, y, w, h float64 }{
	{40, 300, 60, 20},
	{150, 350, 80, 24},
	{280, 280, 50, 18},
}

const (
	grassHeight  = 14
	stripeWidth  = 2
	stripeSlantX = 10
	capOverhang  = 2
	sandSpeckle  = 0.18 // noise threshold for darker sand grains
	sandScale    = 9.0  // noise wavelength, pixels
)

// Options configures a Renderer.
type Options struct {
	// Seed drives the sand texture.
	Seed int64
	// Labels draws text (start prompt, score) into the raster. Terminal
	// front ends leave it off and overlay text themselves.
	Labels bool
}

// Renderer paints snapshots. It is not safe for concurrent use.
type Renderer struct {
	opts Options
	face font.Face

	img  *image.RGBA
	p    *painter
	sand *sandTexture
}

// New creates a renderer.
func New(opts Options) *Renderer {
	return &Renderer{
		opts: opts,
		face: basicfont.Face7x13,
	}
}

// Draw renders the snapshot and returns the raster. The image is reused by
// the next call; copy it if it must outlive the frame.
func (r *Renderer) Draw(s flappy.Snapshot) *image.RGBA {
	t := s.Tuning
	w, h := int(t.Width), int(t.Height)
	if r.img == nil || r.img.Bounds().Dx() != w || r.img.Bounds().Dy() != h {
		r.img = image.NewRGBA(image.Rect(0, 0, w, h))
		r.p = newPainter(r.img)
		r.sand = newSandTexture(r.opts.Seed, w*2, int(t.GroundHeight)-grassHeight)
	}

	r.drawSky(t)
	for _, pv := range s.Pipes {
		r.drawPipe(t, pv)
	}
	r.drawGround(t, s.FrameCount)
	r.drawBird(t, s)

	if r.opts.Labels {
		r.drawLabels(s)
	}
	return r.img
}

func (r *Renderer) drawSky(t flappy.Tuning) {
	r.p.rect(0, 0, t.Width, t.Height, core.ColorSky)
	for _, c := range clouds {
		r.p.rect(c.x, c.y, c.w, c.h, core.ColorCloud)
	}
}

func (r *Renderer) drawPipe(t flappy.Tuning, pv flappy.PipeView) {
	p := r.p
	x, w, capH := pv.X, t.PipeWidth, t.PipeCapHeight

	// Top segment: body, cap at its lower end, then highlight and shadow strips.
	top := pv.TopHeight
	p.outlinedRect(x, 0, w, top, core.ColorPipe, core.ColorOutline)
	p.outlinedRect(x-capOverhang, top-capH, w+2*capOverhang, capH, core.ColorPipe, core.ColorOutline)
	p.rect(x+2, 0, 4, top-capH, core.ColorPipeLight)
	p.rect(x, top-capH+2, 4, capH-4, core.ColorPipeLight)
	p.rect(x+w-6, 0, 4, top-capH, core.ColorPipeDark)
	p.rect(x+w-4, top-capH+2, 4, capH-4, core.ColorPipeDark)

	// Bottom segment runs from the gap down to the ground.
	by := top + t.PipeGap
	bh := t.GroundY() - by
	p.outlinedRect(x, by, w, bh, core.ColorPipe, core.ColorOutline)
	p.outlinedRect(x-capOverhang, by, w+2*capOverhang, capH, core.ColorPipe, core.ColorOutline)
	p.rect(x+2, by+capH, 4, bh-capH, core.ColorPipeLight)
	p.rect(x, by+2, 4, capH-4, core.ColorPipeLight)
	p.rect(x+w-6, by+capH, 4, bh-capH, core.ColorPipeDark)
	p.rect(x+w-4, by+2, 4, capH-4, core.ColorPipeDark)
}

func (r *Renderer) drawGround(t flappy.Tuning, frame int) {
	p := r.p
	gy := t.GroundY()
	scroll := t.GroundOffset(frame)

	p.rect(0, gy, t.Width, t.GroundHeight, core.ColorGround)
	r.sand.paint(r.img, int(gy)+grassHeight, frame*int(t.PipeSpeed))

	p.rect(0, gy, t.Width, grassHeight, core.ColorGrass)
	if t.GroundTile > 0 {
		for i := -20.0; i < t.Width+20; i += t.GroundTile {
			p.slant(i-scroll, gy, stripeSlantX, grassHeight, stripeWidth, core.ColorGrassStripe)
		}
	}

	// Border lines above and below the grass.
	p.rect(0, gy-1.5, t.Width, strokeWidth, core.ColorOutline)
	p.rect(0, gy+grassHeight-1.5, t.Width, strokeWidth, core.ColorOutline)
}

func (r *Renderer) drawBird(t flappy.Tuning, s flappy.Snapshot) {
	p := r.p
	rad := t.BirdSize / 2
	tf := rotateAbout(s.BirdX+rad, s.BirdY+rad, s.Rotation)

	p.outlinedEllipse(tf, 0, 0, rad, rad*0.8, core.ColorBird, core.ColorOutline)
	p.outlinedEllipse(tf, rad/2, -rad/4, rad/2.2, rad/2.2, core.ColorEye, core.ColorOutline)
	p.ellipse(tf, rad/2+3, -rad/4, 2, 2, core.ColorPupil)
	p.outlinedEllipse(tf, -rad/3, rad/6, rad/2, rad/3, core.ColorWing, core.ColorOutline)
	p.outlinedEllipse(tf, rad/2, rad/4, rad/3, rad/5, core.ColorBeak, core.ColorOutline)
}

func (r *Renderer) drawLabels(s flappy.Snapshot) {
	t := s.Tuning
	switch s.State {
	case flappy.StateMenu:
		const msg = "TAP TO JUMP"
		tw := r.textWidth(msg)
		bw, bh := float64(tw+24), 28.0
		bx, by := (t.Width-bw)/2, t.Height/2-70
		r.p.outlinedRect(bx, by, bw, bh, core.ColorWhite, core.ColorBlack)
		r.text(msg, int(bx)+12, int(by)+19, core.ColorBlack)
	default:
		msg := strconv.Itoa(s.Score)
		x := int(t.Width)/2 - r.textWidth(msg)/2
		for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			r.text(msg, x+d[0], 30+d[1], core.ColorBlack)
		}
		r.text(msg, x, 30, core.ColorWhite)
	}
}

func (r *Renderer) text(s string, x, y int, c color.RGBA) {
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func (r *Renderer) textWidth(s string) int {
	return font.MeasureString(r.face, s).Ceil()
}

// sandTexture is a horizontally tileable grain mask for the sand strip.
type sandTexture struct {
	w, h int
	mask []bool
}

func newSandTexture(seed int64, w, h int) *sandTexture {
	if w <= 0 || h <= 0 {
		return &sandTexture{}
	}
	noise := perlin.NewPerlin(2, 2, 3, seed)
	st := &sandTexture{w: w, h: h, mask: make([]bool, w*h)}

	fw := float64(w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Blend with the copy one period to the left so the edges meet.
			fx := float64(x)
			a := noise.Noise2D(fx/sandScale, float64(y)/sandScale)
			b := noise.Noise2D((fx-fw)/sandScale, float64(y)/sandScale)
			v := ((fw-fx)*a + fx*b) / fw
			st.mask[y*w+x] = v > sandSpeckle
		}
	}
	return st
}

// paint darkens grains in rows [top, top+h) scrolled left by offset pixels.
func (st *sandTexture) paint(dst *image.RGBA, top, offset int) {
	if st.w == 0 {
		return
	}
	b := dst.Bounds()
	for y := 0; y < st.h; y++ {
		py := top + y
		if py < b.Min.Y || py >= b.Max.Y {
			continue
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			tx := (x + offset) % st.w
			if st.mask[y*st.w+tx] {
				dst.SetRGBA(x, py, core.ColorGroundDark)
			}
		}
	}
}

// PlayfieldRect returns where ToScreen places a w×h raster inside a
// cols×rows cell grid, in cells. Each cell covers two raster rows.
func PlayfieldRect(w, h, cols, rows int) core.Rect {
	if w <= 0 || h <= 0 || cols <= 0 || rows <= 0 {
		return core.Rect{}
	}
	// Pixel grid available: cols × 2*rows, square pixels.
	var pw, ph int
	if cols*h <= 2*rows*w {
		pw, ph = cols, cols*h/w
	} else {
		pw, ph = 2*rows*w/h, 2*rows
	}
	pw, ph = core.Max(1, pw), core.Max(2, ph)
	cw, ch := pw, (ph+1)/2
	return core.NewRect((cols-cw)/2, (rows-ch)/2, cw, ch)
}
