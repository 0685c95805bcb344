package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/bonsai/internal/bonsai"
	"github.com/vovakirdan/bonsai/internal/core"
)

// DrawScene draws the pot centered on the bottom rows of s and returns the
// window above it that the tree grows in.
func DrawScene(s *core.Screen, baseType int) core.Rect {
	w, h := s.Width(), s.Height()
	bw, bh := bonsai.BaseSize(baseType)
	bh = core.Clamp(bh, 0, h)

	if bh > 0 {
		origin := core.NewRect(w/2-bw/2, h-bh, bw, bh)
		bonsai.Bases[baseType].Draw(s.Region(origin))
	}
	return core.NewRect(0, 0, w, h-bh)
}

// messageRect returns where the message text goes on a screen of the given
// size: a box at 70% across and down, as wide as the message when it fits
// in a quarter of the screen.
func messageRect(msg string, width, height int) core.Rect {
	n := utf8.RuneCountInString(msg)
	maxWidth := width / 4

	boxWidth := maxWidth
	if n+3 <= maxWidth {
		boxWidth = n + 1
	}
	return core.NewRect(width*7/10, height*7/10, max(boxWidth, 1), 0)
}

// MessageLayer returns a transparent layer holding the bordered message
// panel, or nil when there is no message. Wrapping is done by lipgloss.
func MessageLayer(msg string, width, height int) *core.Screen {
	if msg == "" || width <= 0 || height <= 0 {
		return nil
	}
	r := messageRect(msg, width, height)

	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(0, 1).
		Width(r.W + 2).
		Render(msg)

	layer := core.NewLayer(width, height)
	for i, line := range strings.Split(ansi.Strip(box), "\n") {
		y := r.Y - 1 + i
		color := core.ColorDefault
		if i == 0 || i == strings.Count(box, "\n") {
			color = core.ColorGray
		}
		x := r.X - 2
		for j, g := range line {
			c := color
			if j == 0 || j == len(line)-utf8.RuneLen(g) {
				c = core.ColorGray
			}
			layer.SetCell(x, y, core.Cell{Glyph: g, Color: c})
			x++
		}
	}
	return layer
}

// StatsLayer returns a transparent layer with the tree counters drawn in
// the top-left corner.
func StatsLayer(st bonsai.State, seed int64, width, height int) *core.Screen {
	layer := core.NewLayer(width, height)
	lines := []string{
		fmt.Sprintf("maxX: %03d, maxY: %03d", width, height),
		fmt.Sprintf("seed: %d", seed),
		fmt.Sprintf("branches: %03d", st.Branches),
		fmt.Sprintf("shoots: %02d", st.Shoots),
		fmt.Sprintf("trunks: %02d", st.Trunks),
	}
	for i, l := range lines {
		layer.DrawText(5, 2+i, l)
	}
	return layer
}
