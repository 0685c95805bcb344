package bonsai

import "time"

// State holds the counters of one growing tree. It is created fresh for
// every tree and owned by the engine until the tree is finished.
type State struct {
	Branches     int       // Branches started so far, including the trunk
	Shoots       int       // Shoots spawned
	ShootCounter int       // Parity picks the side of the next shoot
	Trunks       int       // Trunks, counting the first one
	LastSave     time.Time // Time of the last autosave
}

// NewState creates the counters for a new tree. The shoot counter starts
// at a random parity so the first shoot may go either way.
func NewState(rng Rand, now time.Time) *State {
	return &State{
		ShootCounter: rng.Intn(2),
		Trunks:       1,
		LastSave:     now,
	}
}

// shootType returns the side of a shoot for the given counter value.
func shootType(counter int) BranchType {
	if counter%2 == 0 {
		return ShootLeft
	}
	return ShootRight
}
