package bonsai

import "github.com/vovakirdan/bonsai/internal/core"

// Glyph returns the string drawn for one step of a branch.
// Branches with less than 4 life left, and dying or dead branches, draw
// a random leaf instead of a branch glyph.
func Glyph(rng Rand, typ BranchType, life, dx, dy int, leaves []string) string {
	if life < 4 || typ >= Dying {
		return leaves[rng.Intn(len(leaves))]
	}

	switch typ {
	case Trunk:
		switch {
		case dy == 0:
			return "/~"
		case dx < 0:
			return "\\|"
		case dx == 0:
			return "/|\\"
		default:
			return "|/"
		}
	case ShootLeft:
		switch {
		case dy > 0:
			return "\\"
		case dy == 0:
			return "\\_"
		case dx < 0:
			return "\\|"
		case dx == 0:
			return "/|"
		default:
			return "/"
		}
	case ShootRight:
		switch {
		case dy > 0:
			return "/"
		case dy == 0:
			return "_/"
		case dx < 0:
			return "\\|"
		case dx == 0:
			return "/|"
		default:
			return "/"
		}
	}
	return "?"
}

// ChooseColor picks the color and emphasis for a step of a branch of the
// given nominal type.
func ChooseColor(rng Rand, typ BranchType) (core.Color, bool) {
	switch typ {
	case Trunk, ShootLeft, ShootRight:
		if rng.Intn(2) == 0 {
			return core.ColorBrightYellow, true
		}
		return core.ColorYellow, false
	case Dying:
		return core.ColorGreen, rng.Intn(10) == 0
	case Dead:
		return core.ColorBrightGreen, rng.Intn(3) == 0
	}
	return core.ColorDefault, false
}
