package tui

import (
	"context"
	"errors"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bonsai/internal/bonsai"
	"github.com/vovakirdan/bonsai/internal/storage"
)

// HistoryRecorder records finished trees. *storage.Store implements it.
type HistoryRecorder interface {
	SaveTree(r storage.TreeRecord) (int64, error)
}

// GrowOptions configures a growth view.
type GrowOptions struct {
	Config  bonsai.Config
	Save    bonsai.Persistence // nil disables autosave
	History HistoryRecorder    // nil disables the tree history
	Logger  *log.Logger
	Styles  *Styles
	Clock   bonsai.Clock

	// Context stops growth when it is done, as if the user quit. SSH
	// sessions pass their connection context. Nil never stops.
	Context context.Context

	// Initial screen size. When zero the first tree starts on the first
	// WindowSizeMsg.
	Width, Height int
	FPS           int
}

// treeDoneMsg is sent by the growth goroutine when a tree is finished or stopped.
type treeDoneMsg struct {
	gen   int
	seed  int64
	state *bonsai.State
	err   error
}

// nextTreeMsg starts the next tree in infinite mode.
type nextTreeMsg struct {
	gen int
}

// GrowModel is the Bubble Tea model that shows trees while they grow.
// Growth runs in a command goroutine drawing into a SharedCanvas; the
// model redraws from it on every tick.
type GrowModel struct {
	opts   GrowOptions
	cfg    bonsai.Config // config of the current tree
	canvas *SharedCanvas
	quit   *QuitFlag
	keys   GrowKeyMap

	width, height int
	gen           int // identifies the current tree
	started       bool
	growing       bool
	done          bool // a single tree has finished
	quitting      bool
	trees         int
	err           error
}

// NewGrowModel creates a growth view.
func NewGrowModel(opts GrowOptions) GrowModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Styles == nil {
		opts.Styles = DefaultStyles()
	}
	if opts.Clock == nil {
		opts.Clock = bonsai.SystemClock{}
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	// Seed 0 asks for a random tree, unless it is the saved seed of a
	// tree being resumed.
	if opts.Config.Seed == 0 && opts.Config.TargetBranches == 0 {
		opts.Config.Seed = opts.Clock.Now().UnixNano()
	}

	m := GrowModel{
		opts:   opts,
		cfg:    opts.Config,
		canvas: NewSharedCanvas(opts.Width, opts.Height),
		quit:   &QuitFlag{},
		keys:   DefaultGrowKeyMap(),
		width:  opts.Width,
		height: opts.Height,
	}
	if m.width > 0 && m.height > 0 {
		m.layout()
	}
	return m
}

// Init starts the redraw loop and, when the size is known, the first tree.
func (m GrowModel) Init() tea.Cmd {
	if m.started {
		return tea.Batch(tickCmd(m.opts.FPS), m.growCmd())
	}
	return tickCmd(m.opts.FPS)
}

// layout prepares the canvas for a new tree.
func (m *GrowModel) layout() {
	m.gen++
	m.canvas.Reset(m.width, m.height, m.cfg.BaseType)
	m.started = true
	m.growing = true
	m.done = false
}

// growCmd grows the current tree on a separate goroutine.
func (m GrowModel) growCmd() tea.Cmd {
	cfg, gen := m.cfg, m.gen
	canvas, quit, opts := m.canvas, m.quit, m.opts

	return func() tea.Msg {
		if ctx := opts.Context; ctx != nil {
			if ctx.Err() != nil {
				quit.Set()
			}
			stop := context.AfterFunc(ctx, quit.Set)
			defer stop()
		}

		engineOpts := []bonsai.Option{
			bonsai.WithInput(quit),
			bonsai.WithClock(opts.Clock),
			bonsai.WithLogger(opts.Logger),
			bonsai.WithStepHook(canvas.SetStats),
		}
		if opts.Save != nil {
			engineOpts = append(engineOpts, bonsai.WithPersistence(opts.Save))
		}

		opts.Logger.Debug("growing tree", "seed", cfg.Seed, "target", cfg.TargetBranches)
		e := bonsai.NewEngine(cfg, rand.New(rand.NewSource(cfg.Seed)), canvas, engineOpts...)
		st, err := e.GrowTree()
		return treeDoneMsg{gen: gen, seed: cfg.Seed, state: st, err: err}
	}
}

// Update handles messages and updates the model state.
func (m GrowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m, tickCmd(m.opts.FPS)

	case treeDoneMsg:
		return m.handleTreeDone(msg)

	case nextTreeMsg:
		if msg.gen != m.gen || m.quitting {
			return m, nil
		}
		m.cfg.Seed = m.opts.Clock.Now().UnixNano()
		m.cfg.TargetBranches = 0
		m.layout()
		return m, m.growCmd()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GrowModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.keys.quitRequested(msg, m.cfg.Screensaver || m.done) {
		return m, nil
	}
	m.quit.Set()
	m.quitting = true
	if m.growing {
		// Wait for the engine to stop so nothing is saved afterwards.
		return m, nil
	}
	return m, tea.Quit
}

// handleResize processes window resize events. A tree keeps its layout
// until it is finished; the next tree uses the new size.
func (m GrowModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	if !m.started {
		m.layout()
		return m, m.growCmd()
	}
	m.canvas.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTreeDone records a finished tree and decides what comes next.
func (m GrowModel) handleTreeDone(msg treeDoneMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.growing = false

	if errors.Is(msg.err, bonsai.ErrQuit) {
		return m, tea.Quit
	}
	if msg.err != nil {
		m.err = msg.err
		return m, tea.Quit
	}

	m.trees++
	m.record(msg)

	if m.quitting {
		return m, tea.Quit
	}
	if m.cfg.Infinite {
		gen := m.gen
		return m, tea.Tick(m.cfg.TimeWait, func(time.Time) tea.Msg {
			return nextTreeMsg{gen: gen}
		})
	}
	m.done = true
	return m, nil
}

// record adds a finished tree to the history.
func (m GrowModel) record(msg treeDoneMsg) {
	st := msg.state
	m.opts.Logger.Debug("tree finished", "seed", msg.seed, "branches", st.Branches, "shoots", st.Shoots, "trunks", st.Trunks)
	if m.opts.History == nil {
		return
	}
	_, err := m.opts.History.SaveTree(storage.TreeRecord{
		Seed:       msg.seed,
		Life:       m.cfg.LifeStart,
		Multiplier: m.cfg.Multiplier,
		Branches:   st.Branches,
		Shoots:     st.Shoots,
		Trunks:     st.Trunks,
	})
	if err != nil {
		m.opts.Logger.Warn("could not record tree", "err", err)
	}
}

// View renders the current state to a string for display.
func (m GrowModel) View() string {
	if m.quitting && !m.growing {
		return ""
	}

	screen, st := m.canvas.Snapshot()
	if layer := MessageLayer(m.cfg.Message, screen.Width(), screen.Height()); layer != nil {
		screen.Compose(layer)
	}
	if m.cfg.Verbose {
		screen.Compose(StatsLayer(st, m.cfg.Seed, screen.Width(), screen.Height()))
	}
	return RenderScreen(screen, m.opts.Styles)
}

// Err returns the error that stopped growth, if any. A user quit is not an error.
func (m GrowModel) Err() error {
	return m.err
}

// Trees returns how many trees were finished.
func (m GrowModel) Trees() int {
	return m.trees
}

// Run starts the Bubble Tea program with a growth view.
func Run(opts GrowOptions, progOpts ...tea.ProgramOption) error {
	model := NewGrowModel(opts)

	p := tea.NewProgram(
		model,
		append([]tea.ProgramOption{tea.WithAltScreen()}, progOpts...)...,
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(GrowModel); ok {
		return m.Err()
	}
	return nil
}
