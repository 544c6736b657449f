package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-quiz/internal/core"
)

type cellColors struct {
	fg, bg color.RGBA
}

// styleCache memoizes lipgloss styles per colour pair. Frames reuse a small
// palette, so the cache stays small.
type styleCache map[cellColors]lipgloss.Style

func (c styleCache) style(k cellColors) lipgloss.Style {
	if s, ok := c[k]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if k.fg.A != 0 {
		s = s.Foreground(lipgloss.Color(core.Hex(k.fg)))
	}
	if k.bg.A != 0 {
		s = s.Background(lipgloss.Color(core.Hex(k.bg)))
	}
	c[k] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colours to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return renderScreen(s, make(styleCache))
}

func renderScreen(s *core.Screen, styles styleCache) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*8 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := cellColors{cell.FG, cell.BG}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (cellColors{cell.FG, cell.BG}) != start {
					break
				}
				r := cell.Rune
				if r == 0 {
					r = ' '
				}
				run.WriteRune(r)
				x++
			}

			sb.WriteString(styles.style(start).Render(run.String()))
		}
	}
	return sb.String()
}
