package tui

import (
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/bonsai/internal/bonsai"
	"github.com/vovakirdan/bonsai/internal/core"
)

// SharedCanvas is a screen written by the growth goroutine and read by the
// Bubble Tea loop. The engine sees only the tree window; the rest of the
// screen holds the pot.
type SharedCanvas struct {
	mu     sync.Mutex
	screen *core.Screen
	tree   core.Rect
	stats  bonsai.State
}

var _ bonsai.Canvas = (*SharedCanvas)(nil)

// NewSharedCanvas creates a blank canvas of the given size.
func NewSharedCanvas(width, height int) *SharedCanvas {
	return &SharedCanvas{
		screen: core.NewScreen(width, height),
		tree:   core.NewRect(0, 0, width, height),
	}
}

// Width returns the width of the tree window.
func (c *SharedCanvas) Width() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.W
}

// Height returns the height of the tree window.
func (c *SharedCanvas) Height() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.H
}

// Put writes a glyph into the tree window.
func (c *SharedCanvas) Put(x, y int, glyph string, color core.Color, bold bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen.Region(c.tree).Put(x, y, glyph, color, bold)
}

// Reset resizes and clears the screen and lays out a new scene: the pot
// is drawn and the tree window is set above it.
func (c *SharedCanvas) Reset(width, height, baseType int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen.Resize(width, height)
	c.screen.Clear()
	c.tree = DrawScene(c.screen, baseType)
	c.stats = bonsai.State{}
}

// Resize changes the screen size, keeping what was drawn.
func (c *SharedCanvas) Resize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen.Resize(width, height)
}

// SetStats records the latest counters for the verbose overlay.
func (c *SharedCanvas) SetStats(s bonsai.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = s
}

// Snapshot returns a copy of the screen and the latest counters.
func (c *SharedCanvas) Snapshot() (*core.Screen, bonsai.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen.Clone(), c.stats
}

// QuitFlag is set by the UI when the user asks to stop and polled by the
// growth goroutine.
type QuitFlag struct {
	quit atomic.Bool
}

var _ bonsai.Input = (*QuitFlag)(nil)

// Set requests a stop.
func (q *QuitFlag) Set() {
	q.quit.Store(true)
}

// PollQuit reports whether a stop was requested.
func (q *QuitFlag) PollQuit() bool {
	return q.quit.Load()
}
