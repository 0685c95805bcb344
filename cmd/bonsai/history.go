package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bonsai/internal/config"
	"github.com/vovakirdan/bonsai/internal/platform/tui"
	"github.com/vovakirdan/bonsai/internal/storage"
)

var (
	flagHistoryLimit int
	flagGraph        bool
	flagBrowse       bool
	flagClear        bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously grown trees",
	Long: `List the most recently grown trees with their seeds and sizes.

Any tree can be grown again with 'bonsai -s <seed> -L <life> -M <mult>'.

Examples:
  bonsai history
  bonsai history --limit 50
  bonsai history --graph     # chart branch counts
  bonsai history --browse    # pick a tree and regrow it
  bonsai history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Number of trees to list")
	historyCmd.Flags().BoolVar(&flagGraph, "graph", false, "Chart branch counts of recent trees")
	historyCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse trees interactively and regrow one")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded trees")
}

func runHistory(cmd *cobra.Command, _ []string) {
	cfg := loadConfig(cmd)

	// Open tree history
	store, err := storage.Open(cfg.Storage.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearTrees(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")

	case flagBrowse:
		browseHistory(cfg, store)

	default:
		trees, err := store.RecentTrees(flagHistoryLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving trees: %v\n", err)
			os.Exit(1)
		}
		stats, err := store.Stats()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			os.Exit(1)
		}
		if flagGraph {
			fmt.Println(branchGraph(trees))
			return
		}
		printHistory(trees, stats)
	}
}

// printHistory writes the tree list and totals to stdout.
func printHistory(trees []storage.TreeRecord, stats *storage.TreeStats) {
	fmt.Println("Grown trees")
	fmt.Println()

	if len(trees) == 0 {
		fmt.Println("No trees recorded yet.")
		fmt.Println()
		fmt.Println("Run 'bonsai' to grow the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-5s  %-20s  %-4s  %-4s  %-8s  %-6s  %s\n", "#", "Seed", "Life", "Mult", "Branches", "Shoots", "Date")
	fmt.Printf("  %-5s  %-20s  %-4s  %-4s  %-8s  %-6s  %s\n", "-", "----", "----", "----", "--------", "------", "----")

	for _, t := range trees {
		dateStr := t.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-5d  %-20d  %-4d  %-4d  %-8d  %-6d  %s\n",
			t.ID, t.Seed, t.Life, t.Multiplier, t.Branches, t.Shoots, dateStr)
	}

	fmt.Println()
	fmt.Printf("Total: %d trees, average %.1f branches, %d shoots\n",
		stats.Count, stats.AvgBranches, stats.TotalShoots)
	fmt.Printf("Largest: %d branches (seed %d)\n", stats.MaxBranches, stats.LargestSeed)
}

// branchGraph charts the branch counts of trees, oldest first.
func branchGraph(trees []storage.TreeRecord) string {
	if len(trees) == 0 {
		return "No trees recorded yet."
	}

	data := make([]float64, 0, len(trees))
	for _, t := range slices.Backward(trees) {
		data = append(data, float64(t.Branches))
	}

	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("branches of the last %d trees", len(trees))),
	)
}

// browseHistory lets the user pick a recorded tree and grows it again.
func browseHistory(cfg config.Config, store *storage.Store) {
	width, height := terminalSize()

	rec, err := tui.RunHistory(store, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		return
	}

	cfg.Tree.Seed = rec.Seed
	cfg.Tree.Life = rec.Life
	cfg.Tree.Multiplier = rec.Multiplier
	cfg.Live.Infinite = false
	cfg.Live.Screensaver = false

	tree, err := cfg.Bonsai()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Display.Verbose)
	logger.SetOutput(io.Discard)
	if logFile, err := openLogFile(cfg.Storage.LogFile); err == nil {
		defer logFile.Close()
		logger.SetOutput(logFile)
	}

	if err := tui.Run(tui.GrowOptions{Config: tree, Logger: logger, Width: width, Height: height}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
