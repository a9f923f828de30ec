package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-physlab/internal/render"
	"github.com/vovakirdan/tui-physlab/internal/sim"
)

var (
	flagFrames int
	flagSleep  int
	flagTrack  string
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the simulation without a display",
	Long: `Run the driver loop without a terminal UI. Every frame prints the
pose and velocity of the tracked actor:

  pos x y z :: vel x y z

The run ends after --frames frames, or on Ctrl+C when --frames is 0.

Examples:
  physlab headless --frames 600
  physlab headless --scene basic --sleep 16
  physlab headless --track box2 --record`,
	Run: runHeadless,
}

func init() {
	headlessCmd.Flags().IntVar(&flagFrames, "frames", 600, "Frames to run (0 = until interrupted)")
	headlessCmd.Flags().IntVar(&flagSleep, "sleep", 0, "Milliseconds between frames")
	headlessCmd.Flags().StringVar(&flagTrack, "track", "", "Actor to print (default: first dynamic actor)")
}

func runHeadless(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	logger := newLogger(os.Stderr, cfg.Log, "headless")

	s := newSession(cfg, logger)
	defer s.Close()

	store, rec := startRecorder(cfg, logger)
	defer stopRecorder(store, rec, logger)

	d := sim.NewDriver(s, render.NewConsoleRenderer(os.Stdout, flagTrack))
	if rec != nil {
		d.AddObserver(rec)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := d.Run(ctx, flagFrames, time.Duration(flagSleep)*time.Millisecond)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	logger.Info("finished", "frames", d.FrameCount(), "sim_time", d.SimTime())
}
