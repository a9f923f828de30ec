package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-physlab/internal/platform/tui"
	"github.com/vovakirdan/tui-physlab/internal/storage"
)

var (
	flagActor  string
	flagWidth  int
	flagHeight int
)

var traceCmd = &cobra.Command{
	Use:   "trace <run>",
	Short: "Plot an actor's height over a recorded run",
	Long: `Draw the height of one actor across a recorded run as a line chart.

Examples:
  physlab trace 3
  physlab trace 3 --actor box2 --width 100`,
	Args: cobra.ExactArgs(1),
	Run:  runTrace,
}

func init() {
	traceCmd.Flags().StringVar(&flagActor, "actor", "", "Actor to plot (default: first recorded actor)")
	traceCmd.Flags().IntVar(&flagWidth, "width", 70, "Plot width in columns")
	traceCmd.Flags().IntVar(&flagHeight, "height", 15, "Plot height in rows")
}

func runTrace(_ *cobra.Command, args []string) {
	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid run id %q\n", args[0])
		os.Exit(1)
	}

	cfg := mustLoadConfig()
	store, err := storage.Open(cfg.Recording.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	out, err := traceRun(store, runID, flagActor, flagWidth, flagHeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println(out)
}

// traceRun renders the height plot of actor in a run. An empty actor
// picks the first one recorded.
func traceRun(store *storage.Store, runID int64, actor string, width, height int) (string, error) {
	run, err := store.Run(runID)
	if err != nil {
		return "", err
	}
	if run == nil {
		return "", fmt.Errorf("run #%d not found", runID)
	}

	if actor == "" {
		actors, err := store.Actors(runID)
		if err != nil {
			return "", err
		}
		if len(actors) == 0 {
			return "", fmt.Errorf("run #%d has no samples", runID)
		}
		actor = actors[0]
	}

	samples, err := store.Samples(runID, actor)
	if err != nil {
		return "", err
	}
	caption := fmt.Sprintf("run #%d %s: %s height", run.ID, run.Preset, actor)
	return tui.TracePlot(tui.Heights(samples), width, height, caption), nil
}
