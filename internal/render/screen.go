package render

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/flappy-quiz/internal/core"
)

// HalfBlock is the upper half block; its foreground paints the top pixel of a
// cell and its background the bottom pixel.
const HalfBlock = '▀'

// Downsampler scales rasters into terminal cells. It keeps its scratch image
// between frames.
type Downsampler struct {
	scratch *image.RGBA
}

// ToScreen letterboxes src into dst, two raster rows per cell, and returns
// the cell rectangle the playfield occupies. Cells outside it are cleared.
func (d *Downsampler) ToScreen(src *image.RGBA, dst *core.Screen) core.Rect {
	sb := src.Bounds()
	area := PlayfieldRect(sb.Dx(), sb.Dy(), dst.Width(), dst.Height())
	dst.Clear()
	if area.W == 0 || area.H == 0 {
		return area
	}

	pw, ph := area.W, area.H*2
	if d.scratch == nil || d.scratch.Bounds().Dx() != pw || d.scratch.Bounds().Dy() != ph {
		d.scratch = image.NewRGBA(image.Rect(0, 0, pw, ph))
	}
	// BiLinear widens its kernel when shrinking, so each pixel averages its area.
	draw.BiLinear.Scale(d.scratch, d.scratch.Bounds(), src, sb, draw.Src, nil)

	for cy := 0; cy < area.H; cy++ {
		for cx := 0; cx < area.W; cx++ {
			dst.Set(area.X+cx, area.Y+cy, core.Cell{
				Rune: HalfBlock,
				FG:   d.scratch.RGBAAt(cx, cy*2),
				BG:   d.scratch.RGBAAt(cx, cy*2+1),
			})
		}
	}
	return area
}

// ToScreen is a one-shot Downsampler.ToScreen.
func ToScreen(src *image.RGBA, dst *core.Screen) core.Rect {
	var d Downsampler
	return d.ToScreen(src, dst)
}

// CellToPlayfield maps a cell inside area back to playfield pixel coordinates.
func CellToPlayfield(area core.Rect, cx, cy int, w, h int) (float64, float64, bool) {
	if !area.Contains(cx, cy) {
		return 0, 0, false
	}
	x := (float64(cx-area.X) + 0.5) * float64(w) / float64(area.W)
	y := (float64(cy-area.Y) + 0.5) * float64(h) / float64(area.H)
	return x, y, true
}
