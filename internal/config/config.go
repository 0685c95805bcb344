// Package config provides YAML-based configuration loading for bonsai.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/bonsai/internal/bonsai"
)

// MaxLeaves is the largest number of leaf glyphs a tree may use.
const MaxLeaves = 64

// ErrTooManyLeaves means the leaf list has more than MaxLeaves entries.
var ErrTooManyLeaves = errors.New("config: too many leaves")

// Config contains all bonsai configuration.
type Config struct {
	Tree    TreeConfig    `yaml:"tree"`
	Live    LiveConfig    `yaml:"live"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// TreeConfig defines the shape of the grown tree.
type TreeConfig struct {
	Life       int    `yaml:"life"`       // 0-200; higher grows more
	Multiplier int    `yaml:"multiplier"` // 0-20; higher branches more
	Base       int    `yaml:"base"`       // 0 none, 1 large pot, 2 small pot
	Leaves     string `yaml:"leaves"`     // Comma-separated leaf glyphs
	Seed       int64  `yaml:"seed"`       // 0 = seeded from the clock
}

// LiveConfig defines animation parameters.
type LiveConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Step        time.Duration `yaml:"step"`
	Infinite    bool          `yaml:"infinite"`
	Wait        time.Duration `yaml:"wait"`
	Screensaver bool          `yaml:"screensaver"`
}

// DisplayConfig defines what is shown besides the tree.
type DisplayConfig struct {
	Message string `yaml:"message"`
	Print   bool   `yaml:"print"`
	Verbose bool   `yaml:"verbose"`
}

// StorageConfig defines where state is kept on disk.
type StorageConfig struct {
	SaveFile string `yaml:"save_file"`
	Database string `yaml:"database"`
	History  bool   `yaml:"history"`
	LogFile  string `yaml:"log_file"`
}

// ServerConfig defines the SSH screensaver server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// ParseLeaves splits a comma-separated leaf list. Empty items are skipped.
func ParseLeaves(s string) ([]string, error) {
	var leaves []string
	for _, leaf := range strings.Split(s, ",") {
		if leaf == "" {
			continue
		}
		leaves = append(leaves, leaf)
	}
	if len(leaves) == 0 {
		return nil, bonsai.ErrNoLeaves
	}
	if len(leaves) > MaxLeaves {
		return nil, fmt.Errorf("%w: %d, at most %d", ErrTooManyLeaves, len(leaves), MaxLeaves)
	}
	return leaves, nil
}

// Validate checks the configuration without building the engine config.
func (c Config) Validate() error {
	_, err := c.Bonsai()
	return err
}

// Bonsai converts the file configuration into a validated engine config.
// Screensaver mode implies live and infinite growth.
func (c Config) Bonsai() (bonsai.Config, error) {
	leaves, err := ParseLeaves(c.Tree.Leaves)
	if err != nil {
		return bonsai.Config{}, err
	}

	bc := bonsai.Config{
		LifeStart:   c.Tree.Life,
		Multiplier:  c.Tree.Multiplier,
		BaseType:    c.Tree.Base,
		Leaves:      leaves,
		Live:        c.Live.Enabled || c.Live.Screensaver,
		TimeStep:    c.Live.Step,
		Infinite:    c.Live.Infinite || c.Live.Screensaver,
		TimeWait:    c.Live.Wait,
		Screensaver: c.Live.Screensaver,
		Seed:        c.Tree.Seed,
		Message:     c.Display.Message,
		Verbose:     c.Display.Verbose,
	}
	if err := bc.Validate(); err != nil {
		return bonsai.Config{}, err
	}
	return bc, nil
}
