package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bonsai/internal/bonsai"
)

func testServerConfig(t *testing.T) SSHServerConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")
	cfg.DBPath = filepath.Join(dir, "history.db")
	return cfg
}

func quietServerLogger() *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)
	return logger
}

func TestNewSSHServer(t *testing.T) {
	cfg := testServerConfig(t)
	srv, err := NewSSHServer(cfg, quietServerLogger())
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	defer srv.Shutdown()

	if !srv.config.Tree.Screensaver || !srv.config.Tree.Live || !srv.config.Tree.Infinite {
		t.Error("sessions should always run as a screensaver")
	}
	if srv.store == nil {
		t.Error("expected the history store to be open")
	}
	if _, err := os.Stat(filepath.Dir(cfg.HostKeyPath)); err != nil {
		t.Errorf("host key directory not created: %v", err)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}

	opts := srv.sessionOptions(100, 40)
	if opts.Width != 100 || opts.Height != 40 {
		t.Errorf("session size %dx%d", opts.Width, opts.Height)
	}
	if opts.Config.Seed == 0 {
		t.Error("each session should get a seed")
	}
	if opts.History == nil {
		t.Error("sessions should record trees")
	}
}

func TestNewSSHServerWithoutHistory(t *testing.T) {
	cfg := testServerConfig(t)
	cfg.DBPath = ""

	srv, err := NewSSHServer(cfg, quietServerLogger())
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	defer srv.Shutdown()

	if opts := srv.sessionOptions(80, 24); opts.History != nil {
		t.Error("expected no history recorder without a database")
	}
}

func TestNewSSHServerRejectsBadTree(t *testing.T) {
	cfg := testServerConfig(t)
	cfg.Tree.Leaves = nil

	if _, err := NewSSHServer(cfg, quietServerLogger()); !errors.Is(err, bonsai.ErrNoLeaves) {
		t.Errorf("NewSSHServer() error = %v, expected ErrNoLeaves", err)
	}
}
