package main

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/spf13/pflag"

	"github.com/vovakirdan/bonsai/internal/bonsai"
	"github.com/vovakirdan/bonsai/internal/config"
	"github.com/vovakirdan/bonsai/internal/storage"
)

// errBadSeed means the seed flag is negative.
var errBadSeed = errors.New("seed must not be negative")

// growFlags holds the tree options of the root command. They override the
// config file only when given on the command line.
type growFlags struct {
	fs *pflag.FlagSet

	live        bool
	step        float64 // seconds
	infinite    bool
	wait        float64 // seconds
	screensaver bool
	message     string
	base        int
	leaves      string
	multiplier  int
	life        int
	print       bool
	seed        int64
	save        string
	load        string
	noHistory   bool

	configSave string // save file named by the config, before any override
}

// register adds the tree options to fs.
func (f *growFlags) register(fs *pflag.FlagSet) {
	f.fs = fs

	fs.BoolVarP(&f.live, "live", "l", false, "Live mode: show each step of growth")
	fs.Float64VarP(&f.step, "time", "t", 0.03, "In live mode, wait TIME secs between steps of growth")
	fs.BoolVarP(&f.infinite, "infinite", "i", false, "Infinite mode: keep growing trees")
	fs.Float64VarP(&f.wait, "wait", "w", 4, "In infinite mode, wait TIME secs between each tree")
	fs.BoolVarP(&f.screensaver, "screensaver", "S", false, "Screensaver mode: live and infinite, quit on any key")
	fs.StringVarP(&f.message, "message", "m", "", "Attach message next to the tree")
	fs.IntVarP(&f.base, "base", "b", 1, "ASCII-art plant base to use, 0 is none")
	fs.StringVarP(&f.leaves, "leaf", "c", "&", "Comma-separated list of strings randomly chosen for leaves")
	fs.IntVarP(&f.multiplier, "multiplier", "M", 5, "Branch multiplier; higher is more branching (0-20)")
	fs.IntVarP(&f.life, "life", "L", 32, "Life; higher is more growth (0-200)")
	fs.BoolVarP(&f.print, "print", "p", false, "Print tree to terminal when finished")
	fs.Int64VarP(&f.seed, "seed", "s", 0, "Seed random number generator (0 = random based on time)")
	fs.StringVarP(&f.save, "save", "W", "", "Save progress to file")
	fs.StringVarP(&f.load, "load", "C", "", "Load progress from file")
	fs.BoolVar(&f.noHistory, "no-history", false, "Do not record the tree in the history database")

	fs.Lookup("save").NoOptDefVal = storage.DefaultSavePath
	fs.Lookup("load").NoOptDefVal = storage.DefaultSavePath
}

// apply overrides cfg with every flag that was set.
func (f *growFlags) apply(cfg *config.Config) error {
	changed := f.fs.Changed
	f.configSave = cfg.Storage.SaveFile

	if changed("live") {
		cfg.Live.Enabled = f.live
	}
	if changed("time") {
		d, err := seconds(f.step)
		if err != nil {
			return fmt.Errorf("invalid step time %v: %w", f.step, err)
		}
		cfg.Live.Step = d
	}
	if changed("infinite") {
		cfg.Live.Infinite = f.infinite
	}
	if changed("wait") {
		d, err := seconds(f.wait)
		if err != nil {
			return fmt.Errorf("invalid wait time %v: %w", f.wait, err)
		}
		cfg.Live.Wait = d
	}
	if changed("screensaver") {
		cfg.Live.Screensaver = f.screensaver
	}
	if changed("message") {
		cfg.Display.Message = f.message
	}
	if changed("base") {
		cfg.Tree.Base = f.base
	}
	if changed("leaf") {
		cfg.Tree.Leaves = f.leaves
	}
	if changed("multiplier") {
		cfg.Tree.Multiplier = f.multiplier
	}
	if changed("life") {
		cfg.Tree.Life = f.life
	}
	if changed("print") {
		cfg.Display.Print = f.print
	}
	if changed("seed") {
		if f.seed < 0 {
			return fmt.Errorf("invalid seed %d: %w", f.seed, errBadSeed)
		}
		cfg.Tree.Seed = f.seed
	}
	if changed("save") && f.save != storage.DefaultSavePath {
		cfg.Storage.SaveFile = f.save
	}
	if changed("load") && f.load != storage.DefaultSavePath && !changed("save") {
		cfg.Storage.SaveFile = f.load
	}
	if changed("no-history") {
		cfg.Storage.History = !f.noHistory
	}
	return nil
}

// loadPath returns the file to resume from, or "" when --load was not
// given. A bare --load reads the save file named by the config.
func (f *growFlags) loadPath() string {
	if !f.fs.Changed("load") {
		return ""
	}
	if f.load == storage.DefaultSavePath {
		return f.configSave
	}
	return f.load
}

// savePath returns the autosave file, or "" when autosave is off. Loading
// a tree keeps saving to the same file unless --save names another one.
func (f *growFlags) savePath(cfg config.Config) string {
	if !f.fs.Changed("save") && !f.fs.Changed("load") {
		return ""
	}
	return cfg.Storage.SaveFile
}

// seconds converts a flag value in seconds to a duration.
func seconds(v float64) (time.Duration, error) {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, bonsai.ErrBadTime
	}
	return time.Duration(math.Round(v * float64(time.Second))), nil
}

// minutes converts a flag value in minutes to a duration.
func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
