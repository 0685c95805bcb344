package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/bonsai/internal/bonsai"
	"github.com/vovakirdan/bonsai/internal/config"
	"github.com/vovakirdan/bonsai/internal/storage"
)

func parseFlags(t *testing.T, args ...string) *growFlags {
	t.Helper()
	f := &growFlags{}
	fs := pflag.NewFlagSet("bonsai", pflag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) failed: %v", args, err)
	}
	return f
}

func TestApplyOnlyChangedFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tree.Life = 90
	cfg.Tree.Leaves = "*,@"

	f := parseFlags(t, "-M", "8", "-t", "0.5", "-S", "-m", "hello")
	if err := f.apply(&cfg); err != nil {
		t.Fatalf("apply() failed: %v", err)
	}

	expected := config.DefaultConfig()
	expected.Tree.Life = 90
	expected.Tree.Leaves = "*,@"
	expected.Tree.Multiplier = 8
	expected.Live.Step = 500 * time.Millisecond
	expected.Live.Screensaver = true
	expected.Display.Message = "hello"

	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyRejectsBadValues(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected error
	}{
		{"negative time", []string{"-t", "-1"}, bonsai.ErrBadTime},
		{"negative wait", []string{"--wait=-2"}, bonsai.ErrBadTime},
		{"negative seed", []string{"--seed=-5"}, errBadSeed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			err := parseFlags(t, tc.args...).apply(&cfg)
			if !errors.Is(err, tc.expected) {
				t.Errorf("apply() error = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestSaveLoadPaths(t *testing.T) {
	tests := []struct {
		name string
		args []string
		load string
		save string
	}{
		{"neither", nil, "", ""},
		{"bare save", []string{"--save"}, "", "~/cfg-save"},
		{"save to file", []string{"--save=/tmp/a"}, "", "/tmp/a"},
		{"bare load", []string{"--load"}, "~/cfg-save", "~/cfg-save"},
		{"load from file keeps saving there", []string{"--load=/tmp/b"}, "/tmp/b", "/tmp/b"},
		{"load and save elsewhere", []string{"--load", "--save=/tmp/c"}, "~/cfg-save", "/tmp/c"},
		{"short flags", []string{"-C", "-W"}, "~/cfg-save", "~/cfg-save"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Storage.SaveFile = "~/cfg-save"
			f := parseFlags(t, tc.args...)
			if err := f.apply(&cfg); err != nil {
				t.Fatalf("apply() failed: %v", err)
			}
			if got := f.loadPath(); got != tc.load {
				t.Errorf("loadPath() = %q, expected %q", got, tc.load)
			}
			if got := f.savePath(cfg); got != tc.save {
				t.Errorf("savePath() = %q, expected %q", got, tc.save)
			}
		})
	}
}

func TestNoHistoryFlag(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := parseFlags(t, "--no-history").apply(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.History {
		t.Error("--no-history should disable the history")
	}
}

func TestResume(t *testing.T) {
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)
	dir := t.TempDir()

	good := filepath.Join(dir, "good")
	if err := os.WriteFile(good, []byte("1234 56\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad")
	if err := os.WriteFile(bad, []byte("1234"), 0o644); err != nil {
		t.Fatal(err)
	}

	tree := bonsai.Config{Seed: 7}
	if err := resume(&tree, good, logger); err != nil {
		t.Fatalf("resume() failed: %v", err)
	}
	if tree.Seed != 1234 || tree.TargetBranches != 56 {
		t.Errorf("resumed to seed %d, target %d", tree.Seed, tree.TargetBranches)
	}

	tree = bonsai.Config{Seed: 7}
	if err := resume(&tree, filepath.Join(dir, "missing"), logger); err != nil {
		t.Errorf("a missing save should start fresh, got %v", err)
	}
	if tree.Seed != 7 || tree.TargetBranches != 0 {
		t.Error("a missing save must not change the tree")
	}

	zero := filepath.Join(dir, "zero")
	if err := os.WriteFile(zero, []byte("0 12"), 0o644); err != nil {
		t.Fatal(err)
	}
	tree = bonsai.Config{Seed: 7}
	if err := resume(&tree, zero, logger); err != nil {
		t.Fatalf("resume() failed: %v", err)
	}
	if tree.Seed != 0 || tree.TargetBranches != 12 {
		t.Errorf("resumed to seed %d, target %d, expected the saved seed 0", tree.Seed, tree.TargetBranches)
	}

	if err := resume(&tree, bad, logger); !errors.Is(err, storage.ErrMalformedSave) {
		t.Errorf("resume() error = %v, expected ErrMalformedSave", err)
	}
}

func TestBranchGraph(t *testing.T) {
	if got := branchGraph(nil); got != "No trees recorded yet." {
		t.Errorf("empty graph = %q", got)
	}

	trees := []storage.TreeRecord{{Branches: 30}, {Branches: 10}}
	graph := branchGraph(trees)
	if !strings.Contains(graph, "branches of the last 2 trees") {
		t.Errorf("graph missing caption:\n%s", graph)
	}
	if !strings.Contains(graph, "30") || !strings.Contains(graph, "10") {
		t.Errorf("graph missing axis labels:\n%s", graph)
	}

	if single := branchGraph(trees[:1]); single == "" {
		t.Error("a single tree should still be charted")
	}
}

func TestSeconds(t *testing.T) {
	if d, err := seconds(0.03); err != nil || d != 30*time.Millisecond {
		t.Errorf("seconds(0.03) = %v, %v", d, err)
	}
	if _, err := seconds(-0.1); !errors.Is(err, bonsai.ErrBadTime) {
		t.Errorf("seconds(-0.1) error = %v", err)
	}
}

func TestConnectHint(t *testing.T) {
	tests := []struct {
		addr     string
		expected string
	}{
		{":23234", "ssh localhost -p 23234"},
		{":2222", "ssh localhost -p 2222"},
		{"0.0.0.0:2200", "ssh localhost -p 2200"},
		{"[::]:2201", "ssh localhost -p 2201"},
		{"bonsai.example.com:2222", "ssh bonsai.example.com -p 2222"},
		{"10.0.0.5:22", "ssh 10.0.0.5"},
		{"no-port", "ssh no-port"},
	}

	for _, tc := range tests {
		t.Run(tc.addr, func(t *testing.T) {
			if got := connectHint(tc.addr); got != tc.expected {
				t.Errorf("connectHint(%q) = %q, expected %q", tc.addr, got, tc.expected)
			}
		})
	}
}
