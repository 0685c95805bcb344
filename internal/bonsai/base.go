package bonsai

import (
	"unicode/utf8"

	"github.com/vovakirdan/bonsai/internal/core"
)

type segment struct {
	text  string
	color core.Color
	bold  bool
}

// Base is the ASCII-art pot drawn under the tree.
type Base struct {
	Width  int
	Height int
	lines  [][]segment
}

// Bases lists the available pots by base type. Type 0 means no pot.
var Bases = map[int]Base{
	1: {
		Width:  31,
		Height: 4,
		lines: [][]segment{
			{
				{":", core.ColorGray, true},
				{"___________", core.ColorGreen, true},
				{"./~~~\\.", core.ColorBrightYellow, true},
				{"___________", core.ColorGreen, true},
				{":", core.ColorGray, true},
			},
			{{" \\                           / ", core.ColorGray, true}},
			{{"  \\_________________________/ ", core.ColorGray, true}},
			{{"  (_)                     (_)", core.ColorGray, true}},
		},
	},
	2: {
		Width:  15,
		Height: 3,
		lines: [][]segment{
			{
				{"(", core.ColorGray, false},
				{"---", core.ColorGreen, false},
				{"./~~~\\.", core.ColorBrightYellow, false},
				{"---", core.ColorGreen, false},
				{")", core.ColorGray, false},
			},
			{{" (           ) ", core.ColorGray, false}},
			{{"  (_________)  ", core.ColorGray, false}},
		},
	},
}

// BaseSize returns the pot dimensions for baseType, or zero for no pot.
func BaseSize(baseType int) (width, height int) {
	b, ok := Bases[baseType]
	if !ok {
		return 0, 0
	}
	return b.Width, b.Height
}

// Draw writes the pot onto c with its top-left corner at the canvas origin.
func (b Base) Draw(c Canvas) {
	for y, line := range b.lines {
		x := 0
		for _, seg := range line {
			c.Put(x, y, seg.text, seg.color, seg.bold)
			x += utf8.RuneCountInString(seg.text)
		}
	}
}
