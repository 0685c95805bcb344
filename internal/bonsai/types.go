// Package bonsai grows ASCII-art bonsai trees.
//
// A tree starts as a single trunk that is grown step by step. Each step
// draws a direction from a per-branch-type distribution, may spawn child
// branches (new trunks, shoots, or dying leaf clusters), and writes one
// glyph to a Canvas. Every random draw goes through a seeded source in a
// fixed order, so replaying a seed reproduces the same tree cell for cell.
// Resuming a saved tree relies on that: the engine regrows it from the seed
// and only skips the live pacing until the saved branch count is reached.
package bonsai

import (
	"errors"
	"fmt"
	"time"
)

// BranchType determines how a branch moves and which glyphs it draws.
// Branches only ever spawn children of the same or a later type.
type BranchType int

const (
	Trunk BranchType = iota
	ShootLeft
	ShootRight
	Dying
	Dead
)

// String returns a human-readable name for the branch type.
func (t BranchType) String() string {
	switch t {
	case Trunk:
		return "trunk"
	case ShootLeft:
		return "shoot-left"
	case ShootRight:
		return "shoot-right"
	case Dying:
		return "dying"
	case Dead:
		return "dead"
	default:
		return fmt.Sprintf("BranchType(%d)", int(t))
	}
}

// Valid reports whether t is one of the defined branch types.
func (t BranchType) Valid() bool {
	return t >= Trunk && t <= Dead
}

// IsShoot reports whether t is a left or right shoot.
func (t BranchType) IsShoot() bool {
	return t == ShootLeft || t == ShootRight
}

// Timing constants for live growth.
const (
	// AutosaveInterval is the minimum time between two autosaves.
	AutosaveInterval = 10 * time.Second

	// FastForwardDelay is the per-step delay while replaying up to a resume target.
	FastForwardDelay = time.Millisecond

	// worklistLife and worklistMultiplier are the limits above which
	// GrowTree switches to the explicit-stack engine.
	worklistLife       = 200
	worklistMultiplier = 20
)

var (
	// ErrQuit is returned by the growth functions when the user asked to stop.
	ErrQuit = errors.New("bonsai: quit requested")

	// ErrNoLeaves means the leaf set is empty.
	ErrNoLeaves = errors.New("bonsai: leaf set is empty")

	// ErrBadMultiplier means the multiplier is below 1.
	ErrBadMultiplier = errors.New("bonsai: multiplier must be at least 1")

	// ErrBadLife means the starting life is negative.
	ErrBadLife = errors.New("bonsai: life must not be negative")

	// ErrBadTime means a step or wait duration is negative.
	ErrBadTime = errors.New("bonsai: time must not be negative")

	// ErrBadBase means the base type is not a known pot.
	ErrBadBase = errors.New("bonsai: unknown base type")
)

// Config holds the growth parameters. The engine never modifies it.
type Config struct {
	LifeStart  int      // Life of the initial trunk
	Multiplier int      // Branching frequency and cooldown length
	BaseType   int      // Pot art: 0 none, 1 large, 2 small
	Leaves     []string // Glyphs chosen at random for leaves

	Live        bool          // Pace each step for animation
	TimeStep    time.Duration // Delay between live steps
	Infinite    bool          // Keep growing new trees
	TimeWait    time.Duration // Pause between trees in infinite mode
	Screensaver bool          // Any key quits

	Seed           int64 // Seed the tree is grown from, persisted on autosave
	TargetBranches int   // Resume target; 0 means no fast-forward

	Message string // Optional text shown next to the tree
	Verbose bool

	// UseWorklist forces the explicit-stack engine regardless of size.
	UseWorklist bool
}

// Validate rejects configurations the engine cannot grow.
func (c Config) Validate() error {
	if len(c.Leaves) == 0 {
		return ErrNoLeaves
	}
	for i, l := range c.Leaves {
		if l == "" {
			return fmt.Errorf("%w: leaf %d is blank", ErrNoLeaves, i)
		}
	}
	if c.Multiplier < 1 {
		return fmt.Errorf("%w: got %d", ErrBadMultiplier, c.Multiplier)
	}
	if c.LifeStart < 0 {
		return fmt.Errorf("%w: got %d", ErrBadLife, c.LifeStart)
	}
	if c.TimeStep < 0 || c.TimeWait < 0 {
		return ErrBadTime
	}
	if _, ok := Bases[c.BaseType]; !ok && c.BaseType != 0 {
		return fmt.Errorf("%w: %d", ErrBadBase, c.BaseType)
	}
	return nil
}

// worklist reports whether the tree is large enough to grow on an explicit stack.
func (c Config) worklist() bool {
	return c.UseWorklist || c.LifeStart > worklistLife || c.Multiplier > worklistMultiplier
}
