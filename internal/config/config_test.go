package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/bonsai/internal/bonsai"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(defaultBonsaiYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("embedded YAML and DefaultConfig disagree (-code +yaml):\n%s", diff)
	}
}

func TestDefaultIsValid(t *testing.T) {
	bc, err := DefaultConfig().Bonsai()
	if err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if bc.LifeStart != 32 || bc.Multiplier != 5 || bc.BaseType != 1 {
		t.Errorf("unexpected defaults: %+v", bc)
	}
	if diff := cmp.Diff([]string{"&"}, bc.Leaves); diff != "" {
		t.Errorf("default leaves (-want +got):\n%s", diff)
	}
	if bc.TimeStep != 30*time.Millisecond || bc.TimeWait != 4*time.Second {
		t.Errorf("unexpected timing: step %v wait %v", bc.TimeStep, bc.TimeWait)
	}
}

func TestParseLeaves(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
		err      error
	}{
		{"&", []string{"&"}, nil},
		{"&,*,@", []string{"&", "*", "@"}, nil},
		{",&,,*,", []string{"&", "*"}, nil},
		{"long leaf", []string{"long leaf"}, nil},
		{"", nil, bonsai.ErrNoLeaves},
		{",,,", nil, bonsai.ErrNoLeaves},
		{strings.Repeat("x,", MaxLeaves), nil, nil},
		{strings.Repeat("x,", MaxLeaves+1), nil, ErrTooManyLeaves},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			leaves, err := ParseLeaves(tc.input)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Errorf("ParseLeaves(%q) error = %v, expected %v", tc.input, err, tc.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLeaves(%q) failed: %v", tc.input, err)
			}
			if tc.expected != nil {
				if diff := cmp.Diff(tc.expected, leaves); diff != "" {
					t.Errorf("ParseLeaves(%q) (-want +got):\n%s", tc.input, diff)
				}
			}
		})
	}
}

func TestBonsaiConversion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Live.Screensaver = true
	cfg.Tree.Seed = 99
	cfg.Display.Message = "hello"

	bc, err := cfg.Bonsai()
	if err != nil {
		t.Fatalf("Bonsai() failed: %v", err)
	}
	if !bc.Live || !bc.Infinite || !bc.Screensaver {
		t.Errorf("screensaver should imply live and infinite: %+v", bc)
	}
	if bc.Seed != 99 || bc.Message != "hello" {
		t.Errorf("seed or message lost: %+v", bc)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		err    error
	}{
		{"default", func(*Config) {}, nil},
		{"no leaves", func(c *Config) { c.Tree.Leaves = "," }, bonsai.ErrNoLeaves},
		{"zero multiplier", func(c *Config) { c.Tree.Multiplier = 0 }, bonsai.ErrBadMultiplier},
		{"negative life", func(c *Config) { c.Tree.Life = -3 }, bonsai.ErrBadLife},
		{"negative step", func(c *Config) { c.Live.Step = -time.Millisecond }, bonsai.ErrBadTime},
		{"negative wait", func(c *Config) { c.Live.Wait = -time.Second }, bonsai.ErrBadTime},
		{"bad base", func(c *Config) { c.Tree.Base = 5 }, bonsai.ErrBadBase},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.err == nil && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Errorf("Validate() = %v, expected %v", err, tc.err)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}

	// Local file beats embedded
	writeFile(t, filepath.Join(work, LocalPath), "tree:\n  life: 50\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Tree.Life != 50 {
		t.Errorf("local config not used: life %d", cfg.Tree.Life)
	}
	if cfg.Tree.Multiplier != 5 {
		t.Errorf("missing keys should keep defaults, multiplier %d", cfg.Tree.Multiplier)
	}

	// User file beats local
	writeFile(t, filepath.Join(home, ".bonsai", "config.yaml"), "tree:\n  life: 60\n  leaves: \"&,*\"\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Tree.Life != 60 || cfg.Tree.Leaves != "&,*" {
		t.Errorf("user config not used: %+v", cfg.Tree)
	}

	// Custom path beats everything
	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "tree:\n  life: 70\nlive:\n  step: 100ms\n")
	cfg, err = Load(custom)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Tree.Life != 70 || cfg.Live.Step != 100*time.Millisecond {
		t.Errorf("custom config not used: %+v %+v", cfg.Tree, cfg.Live)
	}
}

func TestLoadBrokenUserFileFallsThrough(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	writeFile(t, filepath.Join(home, ".bonsai", "config.yaml"), "tree: [not, a, map\n")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Tree.Life != DefaultConfig().Tree.Life {
		t.Errorf("broken user file should fall back to defaults, life %d", cfg.Tree.Life)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "live:\n  step: soon\n")
	if _, err := Load(bad); err == nil {
		t.Error("expected an error for an unparsable duration")
	}
}
