package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bonsai/internal/bonsai"
	"github.com/vovakirdan/bonsai/internal/platform/tui"
	"github.com/vovakirdan/bonsai/internal/storage"
)

func runGrow(cmd *cobra.Command, _ []string) {
	cfg := loadConfig(cmd)
	if err := grow.apply(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tree, err := cfg.Bonsai()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Display.Verbose)

	if tree.Seed == 0 {
		tree.Seed = time.Now().UnixNano()
	}
	if path := grow.loadPath(); path != "" {
		if err := resume(&tree, path, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	var save bonsai.Persistence
	if path := grow.savePath(cfg); path != "" {
		sf, err := storage.NewSaveFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		save = sf
	}

	// Open tree history
	var store *storage.Store
	if cfg.Storage.History {
		store, err = storage.Open(cfg.Storage.Database)
		if err != nil {
			logger.Warn("could not open tree history", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	width, height := terminalSize()
	printMode := cfg.Display.Print
	if !printMode && !isTerminal(os.Stdout) {
		logger.Debug("stdout is not a terminal, printing the tree")
		printMode = true
	}

	if printMode {
		runPrint(tree, width, height, store, logger)
		return
	}

	// The TUI owns the screen; logs go to a file.
	logFile, err := openLogFile(cfg.Storage.LogFile)
	if err != nil {
		logger.Warn("could not open log file, logging disabled", "error", err)
		logger.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
		logger.SetOutput(logFile)
	}

	opts := tui.GrowOptions{
		Config: tree,
		Save:   save,
		Logger: logger,
		Width:  width,
		Height: height,
	}
	if store != nil {
		opts.History = store
	}

	if err := tui.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runPrint grows the tree without animation and prints it to stdout.
func runPrint(tree bonsai.Config, width, height int, store *storage.Store, logger *log.Logger) {
	st, err := tui.Print(os.Stdout, tree, width, height, nil, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("tree finished", "seed", tree.Seed, "branches", st.Branches, "shoots", st.Shoots, "trunks", st.Trunks)

	if store == nil {
		return
	}
	_, err = store.SaveTree(storage.TreeRecord{
		Seed:       tree.Seed,
		Life:       tree.LifeStart,
		Multiplier: tree.Multiplier,
		Branches:   st.Branches,
		Shoots:     st.Shoots,
		Trunks:     st.Trunks,
	})
	if err != nil {
		logger.Warn("could not record tree", "error", err)
	}
}

// resume points tree at the saved seed and branch count in path. A missing
// or unreadable file starts a fresh tree; a malformed one is an error.
func resume(tree *bonsai.Config, path string, logger *log.Logger) error {
	sf, err := storage.NewSaveFile(path)
	if err != nil {
		return err
	}

	saved, err := sf.Load()
	switch {
	case errors.Is(err, storage.ErrMalformedSave):
		return fmt.Errorf("cannot load %s: %w", sf.Path(), err)
	case errors.Is(err, storage.ErrNoSave):
		logger.Warn("no saved tree, growing a new one", "path", sf.Path())
		return nil
	case err != nil:
		logger.Warn("could not read saved tree, growing a new one", "error", err)
		return nil
	}

	logger.Debug("resuming tree", "seed", saved.Seed, "branches", saved.Branches)
	tree.Seed = saved.Seed
	tree.TargetBranches = saved.Branches
	return nil
}

// terminalSize returns the size of the terminal on stdout, or 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		width, height = w, h
	}
	return width, height
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// openLogFile opens the log file for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, errors.New("no log file configured")
	}
	p, err := storage.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
