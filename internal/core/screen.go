package core

import (
	"strings"
)

// Cell is a single character cell on the screen.
// A zero Glyph marks a transparent cell in overlay layers.
type Cell struct {
	Glyph rune
	Color Color
	Bold  bool
}

var blank = Cell{Glyph: ' '}

// Screen is a 2D cell buffer the tree is drawn into.
// It decouples drawing from the terminal: the engine writes glyphs and
// colors, and the platform turns the buffer into styled output.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer filled with spaces.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

// NewLayer creates a transparent screen used as an overlay.
func NewLayer(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	copyW := min(oldW, width)
	copyH := min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blank
		}
	}
}

// SetCell places a cell at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) SetCell(x, y int, c Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = c
}

// GetCell returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blank
	}
	return s.cells[y][x]
}

// Get returns the glyph at the given position.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Glyph
}

// Put writes glyph horizontally starting at (x, y) with one color.
// Runes that fall outside the screen are clipped.
func (s *Screen) Put(x, y int, glyph string, color Color, bold bool) {
	i := 0
	for _, r := range glyph {
		s.SetCell(x+i, y, Cell{Glyph: r, Color: color, Bold: bold})
		i++
	}
}

// DrawText writes uncolored text starting at (x, y).
func (s *Screen) DrawText(x, y int, text string) {
	s.Put(x, y, text, ColorDefault, false)
}

// Compose copies every non-transparent cell of top onto s, aligned at the origin.
func (s *Screen) Compose(top *Screen) {
	h := min(s.height, top.height)
	w := min(s.width, top.width)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c := top.cells[y][x]; c.Glyph != 0 {
				s.cells[y][x] = c
			}
		}
	}
}

// Clone returns a deep copy of the screen.
func (s *Screen) Clone() *Screen {
	c := &Screen{width: s.width, height: s.height}
	c.allocate()
	for y := range s.cells {
		copy(c.cells[y], s.cells[y])
	}
	return c
}

// String converts the screen buffer to plain text without styling.
// Each row is joined with newlines; transparent cells become spaces.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		if c.Glyph == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(c.Glyph)
	}
	return sb.String()
}

// Region returns a clipped window onto s covering r.
func (s *Screen) Region(r Rect) *Region {
	return &Region{screen: s, rect: r}
}

// Region is a rectangular window onto a Screen with its own origin.
// Writes outside the rectangle are dropped.
type Region struct {
	screen *Screen
	rect   Rect
}

// Width returns the region width.
func (r *Region) Width() int {
	return r.rect.W
}

// Height returns the region height.
func (r *Region) Height() int {
	return r.rect.H
}

// Put writes glyph at region-relative (x, y), clipping to the region.
func (r *Region) Put(x, y int, glyph string, color Color, bold bool) {
	if r.rect.Empty() {
		return
	}
	p := Point{X: r.rect.X + x, Y: r.rect.Y + y}
	for _, g := range glyph {
		if r.rect.Contains(p.X, p.Y) {
			r.screen.SetCell(p.X, p.Y, Cell{Glyph: g, Color: color, Bold: bold})
		}
		p = p.Add(1, 0)
	}
}
