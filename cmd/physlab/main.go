// physlab is a terminal harness for an interactive rigid-body workshop.
//
// Usage:
//
//	physlab                  - Run the configured scene interactively
//	physlab list             - List scene presets
//	physlab headless         - Run without a display, printing the tracked actor
//	physlab runs             - Browse recorded runs
//	physlab trace <run>      - Plot an actor's height over a recorded run
//	physlab serve            - Start SSH server for remote sessions
//	physlab pvd              - Start the remote visual debugger viewer
//
// Global flags:
//
//	--config <path>    - Config YAML (default: ~/.physlab/config.yaml)
//	--scene <id>       - Scene preset (default: workshop)
//	--fps <rate>       - Set tick rate (default: 60)
//	--timestep <name>  - fixed, coarse or realtime
//	--db <path>        - Runs database (default: ~/.physlab/runs.db)
//	--record           - Record the run to the database
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import presets to register them
	_ "github.com/vovakirdan/tui-physlab/internal/scenes/basic"
	_ "github.com/vovakirdan/tui-physlab/internal/scenes/stack"
	_ "github.com/vovakirdan/tui-physlab/internal/scenes/workshop"
)

var (
	// Global flags
	flagConfig   string
	flagScene    string
	flagFPS      int
	flagTimestep string
	flagDBPath   string
	flagRecord   bool
)

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "physlab",
	Short: "physlab - Rigid-body workshop in your terminal",
	Long: `physlab drives a rigid-body simulation and draws it in the terminal.
Fly the camera, push the selected box around and watch it settle.

Available commands:
  list      - Show all scene presets
  headless  - Run without a display
  runs      - Browse recorded runs
  trace     - Plot a recorded actor's height
  serve     - Start SSH server for remote sessions
  pvd       - Start the remote visual debugger viewer

Examples:
  physlab
  physlab --scene stack --record
  physlab headless --frames 600
  physlab trace 3 --actor box`,
	Args: cobra.NoArgs,
	Run:  runInteractive,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML (env PHYSLAB_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagScene, "scene", "", "Scene preset (see 'physlab list')")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagTimestep, "timestep", "", "Timestep preset: fixed, coarse, realtime")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database (env PHYSLAB_DB)")
	rootCmd.PersistentFlags().BoolVar(&flagRecord, "record", false, "Record the run to the database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(pvdCmd)
}
