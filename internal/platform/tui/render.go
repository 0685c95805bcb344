package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bonsai/internal/core"
)

var palette = []core.Color{
	core.ColorDefault,
	core.ColorGreen,
	core.ColorYellow,
	core.ColorGray,
	core.ColorBrightGreen,
	core.ColorBrightYellow,
}

type styleKey struct {
	color core.Color
	bold  bool
}

// Styles maps cell colors to lipgloss styles for one output.
type Styles struct {
	styles map[styleKey]lipgloss.Style
}

// NewStyles builds the cell styles for renderer r. SSH sessions pass their
// own renderer so color support follows the client terminal.
func NewStyles(r *lipgloss.Renderer) *Styles {
	s := &Styles{styles: make(map[styleKey]lipgloss.Style)}
	for _, c := range palette {
		base := r.NewStyle()
		if code := c.ANSI(); code != "" {
			base = base.Foreground(lipgloss.Color(code))
		}
		s.styles[styleKey{c, false}] = base
		s.styles[styleKey{c, true}] = base.Bold(true)
	}
	return s
}

// DefaultStyles returns styles for the process's standard output.
func DefaultStyles() *Styles {
	return NewStyles(lipgloss.DefaultRenderer())
}

func (s *Styles) style(c core.Cell) lipgloss.Style {
	if st, ok := s.styles[styleKey{c.Color, c.Bold}]; ok {
		return st
	}
	return s.styles[styleKey{core.ColorDefault, false}]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, styles *Styles) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(renderRow(s, y, s.Width(), styles))
	}
	return sb.String()
}

// renderRow renders the first width cells of row y.
func renderRow(s *core.Screen, y, width int, styles *Styles) string {
	var sb strings.Builder
	x := 0
	for x < width {
		start := s.GetCell(x, y)
		key := styleKey{start.Color, start.Bold}

		// Collect consecutive cells with the same style
		var run strings.Builder
		for x < width {
			cell := s.GetCell(x, y)
			if (styleKey{cell.Color, cell.Bold}) != key {
				break
			}
			if cell.Glyph == 0 {
				run.WriteRune(' ')
			} else {
				run.WriteRune(cell.Glyph)
			}
			x++
		}
		sb.WriteString(styles.style(start).Render(run.String()))
	}
	return sb.String()
}
