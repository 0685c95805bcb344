package bonsai

// face maps a run of die faces to a movement value.
type face struct {
	value  int
	weight int
}

// die is a weighted die. Faces are assigned in order: a die of
// {{-1, 2}, {0, 6}, {1, 2}} rolls Intn(10) and maps 0-1 to -1, 2-7 to 0
// and 8-9 to 1.
type die []face

func (d die) sides() int {
	n := 0
	for _, f := range d {
		n += f.weight
	}
	return n
}

func (d die) roll(rng Rand) int {
	n := rng.Intn(d.sides())
	for _, f := range d {
		if n < f.weight {
			return f.value
		}
		n -= f.weight
	}
	return d[len(d)-1].value
}

var (
	youngTrunkDX  = die{{-2, 1}, {-1, 3}, {0, 2}, {1, 3}, {2, 1}}
	matureTrunkDY = die{{0, 3}, {-1, 7}}

	shootDY      = die{{-1, 2}, {0, 6}, {1, 2}}
	shootLeftDX  = die{{-2, 2}, {-1, 4}, {0, 3}, {1, 1}}
	shootRightDX = die{{2, 2}, {1, 4}, {0, 3}, {-1, 1}}

	dyingDY = die{{-1, 2}, {0, 7}, {1, 1}}
	dyingDX = die{{-3, 1}, {-2, 2}, {-1, 3}, {0, 3}, {1, 3}, {2, 2}, {3, 1}}

	deadDY = die{{-1, 3}, {0, 4}, {1, 3}}
)

// wobble draws uniformly from {-1, 0, 1}.
func wobble(rng Rand) int {
	return rng.Intn(3) - 1
}

// raiseInterval is how often, in steps, a young trunk climbs one row.
// Multipliers below 2 would give a zero interval; they are clamped to 1.
func raiseInterval(multiplier int) int {
	return max(1, multiplier/2)
}

// Deltas returns the next move of a branch. When both components are
// random, dy is drawn before dx.
func Deltas(rng Rand, typ BranchType, life, age, multiplier int) (dx, dy int) {
	switch typ {
	case Trunk:
		switch {
		case age <= 2 || life < 4:
			// new or dying trunk
			dx = wobble(rng)
		case age < multiplier*3:
			// young trunk grows wide and climbs every few steps
			if age%raiseInterval(multiplier) == 0 {
				dy = -1
			}
			dx = youngTrunkDX.roll(rng)
		default:
			dy = matureTrunkDY.roll(rng)
			dx = wobble(rng)
		}
	case ShootLeft:
		dy = shootDY.roll(rng)
		dx = shootLeftDX.roll(rng)
	case ShootRight:
		dy = shootDY.roll(rng)
		dx = shootRightDX.roll(rng)
	case Dying:
		dy = dyingDY.roll(rng)
		dx = dyingDX.roll(rng)
	case Dead:
		dy = deadDY.roll(rng)
		dx = wobble(rng)
	}
	return dx, dy
}

// clampFloor keeps a branch at row y from sinking into the ground of a
// canvas with the given height.
func clampFloor(y, dy, height int) int {
	if dy > 0 && y > height-2 {
		dy--
	}
	return dy
}
