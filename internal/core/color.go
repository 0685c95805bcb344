package core

// Color is an abstract foreground color for a screen cell.
// The platform layer decides how each value maps to a terminal color.
type Color uint8

// Palette used by the tree, the pot and the message panel.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorYellow
	ColorGray
	ColorBrightGreen
	ColorBrightYellow
)

// ANSI returns the ANSI color code for c, or "" for the terminal default.
func (c Color) ANSI() string {
	switch c {
	case ColorGreen:
		return "2"
	case ColorYellow:
		return "3"
	case ColorGray:
		return "8"
	case ColorBrightGreen:
		return "10"
	case ColorBrightYellow:
		return "11"
	default:
		return ""
	}
}

// String returns a human-readable name for the color.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorGray:
		return "gray"
	case ColorBrightGreen:
		return "bright-green"
	case ColorBrightYellow:
		return "bright-yellow"
	default:
		return "unknown"
	}
}
