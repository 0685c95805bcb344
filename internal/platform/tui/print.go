package tui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bonsai/internal/bonsai"
	"github.com/vovakirdan/bonsai/internal/core"
)

// Grow grows one tree without animation onto a fresh screen of the given
// size, laid out with the pot and message panel.
func Grow(cfg bonsai.Config, width, height int, logger *log.Logger) (*core.Screen, *bonsai.State, error) {
	cfg.Live = false
	if logger == nil {
		logger = log.Default()
	}
	screen := core.NewScreen(width, height)
	tree := DrawScene(screen, cfg.BaseType)

	e := bonsai.NewEngine(cfg, rand.New(rand.NewSource(cfg.Seed)), screen.Region(tree), bonsai.WithLogger(logger))
	st, err := e.GrowTree()
	if err != nil {
		return nil, nil, err
	}

	if layer := MessageLayer(cfg.Message, width, height); layer != nil {
		screen.Compose(layer)
	}
	return screen, st, nil
}

// Print grows one tree and writes the finished scene to w. Blank rows
// above the tree and trailing blanks on each row are left out.
func Print(w io.Writer, cfg bonsai.Config, width, height int, styles *Styles, logger *log.Logger) (*bonsai.State, error) {
	if styles == nil {
		styles = DefaultStyles()
	}
	screen, st, err := Grow(cfg, width, height, logger)
	if err != nil {
		return nil, err
	}

	first := 0
	for first < screen.Height() && strings.TrimSpace(screen.Row(first)) == "" {
		first++
	}
	for y := first; y < screen.Height(); y++ {
		end := len([]rune(strings.TrimRight(screen.Row(y), " ")))
		if _, err := fmt.Fprintln(w, renderRow(screen, y, end, styles)); err != nil {
			return st, fmt.Errorf("print: %w", err)
		}
	}
	return st, nil
}
