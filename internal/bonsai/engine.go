package bonsai

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bonsai/internal/core"
)

// Engine grows trees onto a Canvas.
type Engine struct {
	cfg    Config
	rng    Rand
	canvas Canvas
	input  Input
	clock  Clock
	store  Persistence
	logger *log.Logger
	onStep func(State)
}

// Option configures an Engine.
type Option func(*Engine)

// WithInput sets the quit poller. The default never quits.
func WithInput(in Input) Option {
	return func(e *Engine) { e.input = in }
}

// WithClock sets the clock used for pacing and autosave.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithPersistence enables autosave in live mode.
func WithPersistence(p Persistence) Option {
	return func(e *Engine) { e.store = p }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithStepHook registers a function called with a copy of the counters
// after every drawn step.
func WithStepHook(fn func(State)) Option {
	return func(e *Engine) { e.onStep = fn }
}

// NewEngine creates an engine drawing onto canvas with randomness from rng.
func NewEngine(cfg Config, rng Rand, canvas Canvas, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		rng:    rng,
		canvas: canvas,
		input:  neverQuit{},
		clock:  SystemClock{},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// frame is the state of one branch being grown.
type frame struct {
	pos      core.Point
	typ      BranchType
	life     int
	cooldown int // steps until this branch may spawn a shoot
	dx, dy   int
	pending  bool // a child is growing; finish the step when it returns
}

// spawn describes a child branch.
type spawn struct {
	typ  BranchType
	life int
}

// GrowTree grows one tree from the bottom center of the canvas with fresh
// counters and returns them.
func (e *Engine) GrowTree() (*State, error) {
	st := NewState(e.rng, e.clock.Now())
	start := core.Point{X: e.canvas.Width() / 2, Y: e.canvas.Height() - 1}

	grow := e.Grow
	if e.cfg.worklist() {
		grow = e.GrowIterative
	}
	err := grow(st, start, Trunk, e.cfg.LifeStart)
	return st, err
}

// Grow grows one branch and, recursively, everything it spawns.
// It returns ErrQuit as soon as the input reports a quit request; nothing
// is drawn or saved after that.
func (e *Engine) Grow(st *State, pos core.Point, typ BranchType, life int) error {
	if !typ.Valid() {
		return fmt.Errorf("bonsai: invalid branch type %d", int(typ))
	}
	f := e.enter(st, pos, typ, life)
	return e.grow(st, &f)
}

func (e *Engine) grow(st *State, f *frame) error {
	for f.life > 0 {
		child, ok, err := e.begin(st, f)
		if err != nil {
			return err
		}
		if ok {
			c := e.enter(st, f.pos, child.typ, child.life)
			if err := e.grow(st, &c); err != nil {
				return err
			}
		}
		e.finish(st, f)
	}
	return nil
}

// enter counts a new branch and sets up its frame.
func (e *Engine) enter(st *State, pos core.Point, typ BranchType, life int) frame {
	st.Branches++
	return frame{
		pos:      pos,
		typ:      typ,
		life:     life,
		cooldown: e.cfg.Multiplier,
	}
}

// begin runs the first half of a step: quit check, movement draw and the
// spawn policy. It reports the child to grow before the step is finished.
func (e *Engine) begin(st *State, f *frame) (spawn, bool, error) {
	if e.input.PollQuit() {
		return spawn{}, false, ErrQuit
	}
	f.life--
	age := e.cfg.LifeStart - f.life

	f.dx, f.dy = Deltas(e.rng, f.typ, f.life, age, e.cfg.Multiplier)
	f.dy = clampFloor(f.pos.Y, f.dy, e.canvas.Height())

	child, ok := e.spawnPolicy(st, f.typ, f.life, &f.cooldown)
	return child, ok, nil
}

// spawnPolicy decides whether a branch forks at this step.
func (e *Engine) spawnPolicy(st *State, typ BranchType, life int, cooldown *int) (spawn, bool) {
	m := e.cfg.Multiplier

	switch {
	case life < 3:
		// near-dead branches burst into leaves
		return spawn{typ: Dead, life: life}, true
	case typ == Trunk && life < m+2:
		return spawn{typ: Dying, life: life}, true
	case typ.IsShoot() && life < m+2:
		return spawn{typ: Dying, life: life}, true
	case typ == Trunk && (e.rng.Intn(3) == 0 || (m > 0 && life%m == 0)):
		if e.rng.Intn(8) == 0 && life > 7 {
			*cooldown = m * 2
			st.Trunks++
			return spawn{typ: Trunk, life: life + e.rng.Intn(5) - 2}, true
		}
		if *cooldown <= 0 {
			*cooldown = m * 2
			st.Shoots++
			st.ShootCounter++
			return spawn{typ: shootType(st.ShootCounter), life: life + m}, true
		}
	}
	return spawn{}, false
}

// finish runs the second half of a step: move, draw, and pace.
func (e *Engine) finish(st *State, f *frame) {
	f.cooldown--
	f.pos = f.pos.Add(f.dx, f.dy)

	// Color keys on the nominal type, so a trunk or shoot drawing leaves
	// near the end of its life stays yellow.
	color, bold := ChooseColor(e.rng, f.typ)
	glyph := Glyph(e.rng, f.typ, f.life, f.dx, f.dy, e.cfg.Leaves)
	e.canvas.Put(f.pos.X, f.pos.Y, glyph, color, bold)

	if e.onStep != nil {
		e.onStep(*st)
	}
	if e.cfg.Live {
		e.pace(st)
	}
}

// pace sleeps between live steps. Until the resume target is reached the
// tree is replayed quickly and nothing is saved.
func (e *Engine) pace(st *State) {
	if st.Branches < e.cfg.TargetBranches {
		e.clock.Sleep(FastForwardDelay)
		return
	}
	e.clock.Sleep(e.cfg.TimeStep)

	if e.store == nil {
		return
	}
	now := e.clock.Now()
	if now.Sub(st.LastSave) <= AutosaveInterval {
		return
	}
	if err := e.store.Save(e.cfg.Seed, st.Branches); err != nil {
		e.logger.Warn("autosave failed", "err", err)
	} else {
		e.logger.Debug("autosaved", "seed", e.cfg.Seed, "branches", st.Branches)
	}
	st.LastSave = now
}
