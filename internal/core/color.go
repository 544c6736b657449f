package core

import (
	"fmt"
	"image/color"
)

// Palette shared by the raster renderer and the terminal panels.
var (
	ColorSky         = color.RGBA{0x70, 0xc5, 0xce, 0xff}
	ColorCloud       = color.RGBA{0xb7, 0xe8, 0xeb, 0xff}
	ColorGround      = color.RGBA{0xde, 0xd8, 0x95, 0xff}
	ColorGroundDark  = color.RGBA{0xc9, 0xc1, 0x7a, 0xff}
	ColorGrass       = color.RGBA{0x73, 0xbf, 0x2e, 0xff}
	ColorGrassStripe = color.RGBA{0x55, 0x8c, 0x22, 0xff}
	ColorOutline     = color.RGBA{0x54, 0x38, 0x47, 0xff}
	ColorPipe        = color.RGBA{0x73, 0xbf, 0x2e, 0xff}
	ColorPipeLight   = color.RGBA{0x9c, 0xe6, 0x59, 0xff}
	ColorPipeDark    = color.RGBA{0x55, 0x8c, 0x22, 0xff}
	ColorBird        = color.RGBA{0xf4, 0xce, 0x42, 0xff}
	ColorEye         = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColorPupil       = color.RGBA{0x00, 0x00, 0x00, 0xff}
	ColorWing        = color.RGBA{0xe8, 0xdf, 0xcd, 0xff}
	ColorBeak        = color.RGBA{0xf4, 0x63, 0x27, 0xff}
	ColorCorrect     = color.RGBA{0x73, 0xbf, 0x2e, 0xff}
	ColorWrong       = color.RGBA{0xe0, 0x48, 0x48, 0xff}
	ColorBlack       = color.RGBA{0x00, 0x00, 0x00, 0xff}
	ColorWhite       = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// Hex formats a colour as "#rrggbb" for terminal styling.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
