package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-physlab/internal/platform/tui"
	"github.com/vovakirdan/tui-physlab/internal/sim"
)

func runInteractive(_ *cobra.Command, _ []string) {
	sim.PrintControls(os.Stdout)

	cfg := mustLoadConfig()

	logger, closeLog, err := fileLogger(cfg.Log, "physlab")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := newSession(cfg, logger)
	store, rec := startRecorder(cfg, logger)

	opts := tui.Options{
		Runtime:      runtimeConfig(cfg),
		ReleaseAfter: time.Duration(cfg.Input.ReleaseAfterMs) * time.Millisecond,
	}
	if rec != nil {
		opts.Observers = append(opts.Observers, rec)
	}

	runErr := tui.Run(s, opts)

	// Release everything before choosing the exit code
	stopRecorder(store, rec, logger)
	resetErr := s.ResetErr()
	s.Close()
	closeLog()

	if code := exitCode(runErr, resetErr); code != 0 {
		os.Exit(code)
	}
}

// exitCode reports the outcome of an interactive run. A failed reset is an
// engine initialisation failure like a failed start.
func exitCode(runErr, resetErr error) int {
	switch {
	case resetErr != nil:
		fmt.Fprintf(os.Stderr, "Could not initialise physics engine: %v\n", resetErr)
		return 1
	case runErr != nil:
		fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", runErr)
		return 1
	}
	return 0
}
