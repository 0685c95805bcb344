package bonsai

import (
	"time"

	"github.com/vovakirdan/bonsai/internal/core"
)

// Rand is the random source the engine draws from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Canvas receives the cells the engine draws.
type Canvas interface {
	Width() int
	Height() int
	Put(x, y int, glyph string, color core.Color, bold bool)
}

// Input reports whether the user asked to stop. It must not block.
type Input interface {
	PollQuit() bool
}

// Clock provides time for live pacing and autosave.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SaveState is a persisted growth position: the seed and how many
// branches had been grown when it was saved.
type SaveState struct {
	Seed     int64
	Branches int
}

// Persistence loads and saves resume points.
type Persistence interface {
	Save(seed int64, branches int) error
	Load() (SaveState, error)
}

// SystemClock is a Clock backed by the time package.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep pauses the calling goroutine for d.
func (SystemClock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

type neverQuit struct{}

func (neverQuit) PollQuit() bool { return false }
