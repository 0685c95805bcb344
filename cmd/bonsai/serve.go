package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bonsai/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bonsai SSH server",
	Long: `Start an SSH server that shows a bonsai screensaver to every visitor.

Each SSH connection gets its own trees, grown from a fresh seed and sized
to the visitor's terminal. Any key ends the session. Grown trees are
recorded in the server's history database.

Tree options (life, multiplier, leaves, base, message) come from the
config file.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bonsai/host_key

Examples:
  bonsai serve                           # Listen on :23234 with auto-generated key
  bonsai serve --ssh :2222               # Listen on port 2222
  bonsai serve --host-key ./my_host_key  # Use specific host key
  bonsai serve --db ./history.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg := loadConfig(cmd)
	if cmd.Flags().Changed("ssh") {
		cfg.Server.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		cfg.Server.HostKey = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		cfg.Server.IdleTimeout = minutes(flagIdleTimeout)
	}

	tree, err := cfg.Bonsai()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	serverCfg := tui.SSHServerConfig{
		Address:     cfg.Server.Address,
		HostKeyPath: cfg.Server.HostKey,
		IdleTimeout: cfg.Server.IdleTimeout,
		Tree:        tree,
	}
	if cfg.Storage.History {
		serverCfg.DBPath = cfg.Storage.Database
	}

	logger := newLogger(cfg.Display.Verbose)
	logger.SetPrefix("bonsai-ssh")

	server, err := tui.NewSSHServer(serverCfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting bonsai SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: %s\n", connectHint(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// connectHint returns the ssh command that reaches a server listening on
// addr. Wildcard and empty hosts are reached through localhost.
func connectHint(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "ssh " + addr
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	if port == "22" {
		return "ssh " + host
	}
	return "ssh " + host + " -p " + port
}
