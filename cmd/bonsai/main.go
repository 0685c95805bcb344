// bonsai grows ASCII-art bonsai trees in the terminal.
//
// Usage:
//
//	bonsai                  - Grow a tree
//	bonsai -l               - Watch the tree grow
//	bonsai -S               - Screensaver: grow trees until a key is pressed
//	bonsai -p               - Print the finished tree and exit
//	bonsai history          - List grown trees
//	bonsai serve            - Start SSH server with a bonsai screensaver
//
// Global flags:
//
//	--config <path> - Set config file (default: ~/.bonsai/config.yaml)
//	--db <path>     - Set history database path (default: ~/.bonsai/history.db)
//	-v, --verbose   - Show debug logs and tree counters
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bonsai/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagVerbose bool

	grow = &growFlags{}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bonsai",
	Short: "Grow ASCII-art bonsai trees in your terminal",
	Long: `bonsai procedurally grows a bonsai tree out of ASCII characters.

Every tree is grown from a seed, so the same seed and options always grow
the same tree. Finished trees are recorded in a history database.

Controls:
  Q/Ctrl+C   - Stop growing
  Any key    - Exit once the tree is done (or at any time in screensaver mode)

Examples:
  bonsai -l
  bonsai -l -t 0.01 -M 8 -L 60
  bonsai -S -m "stay calm"
  bonsai -p -s 42 -c "&,@"
  bonsai -l --save            # autosave to ~/.bonsai/savefile
  bonsai -l --load            # resume the saved tree
  bonsai history --graph
  bonsai serve --ssh :2222`,
	Args: cobra.NoArgs,
	Run:  runGrow,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to tree history database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging and tree counters")

	grow.register(rootCmd.Flags())

	// Add subcommands
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the configuration file and applies the global flags.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cmd.Flags().Changed("db") {
		cfg.Storage.Database = flagDBPath
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Display.Verbose = flagVerbose
	}
	return cfg
}

// newLogger returns the command-line logger.
func newLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bonsai",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
