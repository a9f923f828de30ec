package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-physlab/internal/platform/tui"
	"github.com/vovakirdan/tui-physlab/internal/storage"
)

var flagPlain bool

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded runs",
	Long: `Show the runs recorded with --record, newest first, next to a plot of
the selected actor's height.

Examples:
  physlab runs
  physlab runs --plain
  physlab runs --db ./runs.db`,
	Run: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the run list as text")
}

func runRuns(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	store, err := storage.Open(cfg.Recording.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if !flagPlain {
		width, height := terminalSize()
		if _, err := tui.RunRunsBoard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	runs, err := store.ListRuns(20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'physlab --record' to keep one.")
		return
	}

	// Print header
	fmt.Printf("  %-5s  %-10s  %-9s  %-8s  %s\n", "Run", "Scene", "Step", "Frames", "Started")
	fmt.Printf("  %-5s  %-10s  %-9s  %-8s  %s\n", "---", "-----", "----", "------", "-------")

	for _, r := range runs {
		fmt.Printf("  %-5d  %-10s  %-9s  %-8d  %s\n",
			r.ID, r.Preset, r.Timestep, r.Frames, r.StartedAt.Format("2006-01-02 15:04"))
	}
}
