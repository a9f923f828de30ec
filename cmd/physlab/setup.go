package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-physlab/internal/config"
	"github.com/vovakirdan/tui-physlab/internal/core"
	"github.com/vovakirdan/tui-physlab/internal/sim"
	"github.com/vovakirdan/tui-physlab/internal/storage"
)

// overrides are the command-line settings layered over the config file.
type overrides struct {
	configPath string
	scene      string
	fps        int
	timestep   string
	dbPath     string
	record     bool
}

// flagOverrides collects the global flags, falling back to the
// environment for the config and database paths.
func flagOverrides() overrides {
	o := overrides{
		configPath: flagConfig,
		scene:      flagScene,
		fps:        flagFPS,
		timestep:   flagTimestep,
		dbPath:     flagDBPath,
		record:     flagRecord,
	}
	if o.configPath == "" {
		o.configPath = os.Getenv("PHYSLAB_CONFIG")
	}
	if o.dbPath == "" {
		o.dbPath = os.Getenv("PHYSLAB_DB")
	}
	return o
}

// loadConfig loads the config and applies o.
func loadConfig(o overrides) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}

	if o.scene != "" {
		cfg.Scene.Preset = o.scene
	}
	if o.fps > 0 {
		cfg.Driver.TickRate = o.fps
	}
	if o.timestep != "" {
		p, err := config.ParseTimestepPreset(o.timestep)
		if err != nil {
			return cfg, err
		}
		config.ApplyTimestepPreset(&cfg, p)
	}
	if o.dbPath != "" {
		cfg.Recording.DB = o.dbPath
	}
	if o.record {
		cfg.Recording.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mustLoadConfig loads the config from the global flags or exits.
func mustLoadConfig() config.Config {
	cfg, err := loadConfig(flagOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(w io.Writer, lc config.LogConfig, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(lc.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// fileLogger opens the configured log file so the alternate screen stays
// clean. Without a file the logger discards everything.
func fileLogger(lc config.LogConfig, prefix string) (*log.Logger, func(), error) {
	if lc.File == "" {
		return newLogger(io.Discard, lc, prefix), func() {}, nil
	}
	path, err := config.ExpandHome(lc.File)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLogger(f, lc, prefix), func() { f.Close() }, nil
}

// startRecorder opens the runs database and starts recording when enabled.
// Failures are logged and the run continues unrecorded.
func startRecorder(cfg config.Config, logger *log.Logger) (*storage.Store, *storage.Recorder) {
	if !cfg.Recording.Enabled {
		return nil, nil
	}
	store, err := storage.Open(cfg.Recording.DB)
	if err != nil {
		logger.Warn("recording disabled", "error", err)
		return nil, nil
	}
	rec, err := storage.StartRecorder(store, cfg.Scene.Preset, cfg.Driver.Timestep, cfg.Driver.RecordedDt(), cfg.Recording.FlushEvery, logger)
	if err != nil {
		logger.Warn("recording disabled", "error", err)
		store.Close()
		return nil, nil
	}
	return store, rec
}

// stopRecorder finishes the run and closes the database.
func stopRecorder(store *storage.Store, rec *storage.Recorder, logger *log.Logger) {
	if rec != nil {
		if err := rec.Close(); err != nil {
			logger.Warn("could not finish run", "error", err)
		} else {
			logger.Info("run recorded", "run", rec.RunID())
		}
	}
	if store != nil {
		store.Close()
	}
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// newSession creates the session or exits with the initialisation error.
func newSession(cfg config.Config, logger *log.Logger) *sim.Session {
	s, err := sim.NewSession(sim.Options{Config: cfg, Logger: logger})
	if err != nil {
		logger.Error("could not start session", "error", err)
		fmt.Fprintf(os.Stderr, "Could not initialise physics engine: %v\n", err)
		os.Exit(1)
	}
	return s
}

// runtimeConfig returns the terminal settings for the driver host.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	width, height := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Driver.TickRate,
	}
}
