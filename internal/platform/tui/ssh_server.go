package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-physlab/internal/config"
	"github.com/vovakirdan/tui-physlab/internal/core"
	"github.com/vovakirdan/tui-physlab/internal/sim"
	"github.com/vovakirdan/tui-physlab/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.physlab/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Sim is the configuration every session starts from.
	Sim config.Config

	// Logger receives server events. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
		Sim:         config.DefaultConfig(),
	}
}

// SSHServer wraps a Wish SSH server. Each connection gets its own engine
// and session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "physlab-ssh",
		})
	}

	// Open storage when sessions are recorded
	var store *storage.Store
	if cfg.Sim.Recording.Enabled {
		var err error
		store, err = storage.Open(cfg.Sim.Recording.DB)
		if err != nil {
			logger.Warn("could not open runs database", "error", err)
			// Continue without recording
		}
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".physlab", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rc := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.Sim.Driver.TickRate,
	}
	logger := s.logger.With("user", sshSession.User())
	model := NewSessionModel(s.config.Sim, s.store, rc, logger)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages one remote visitor: menu -> simulation -> menu,
// with the runs board one key away.
type SessionModel struct {
	cfg      config.Config
	store    *storage.Store
	runtime  core.RuntimeConfig
	logger   *log.Logger
	menu     MenuModel
	runs     *RunsModel
	sim      *Model
	session  *sim.Session
	recorder *storage.Recorder
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg config.Config, store *storage.Store, rc core.RuntimeConfig, logger *log.Logger) SessionModel {
	return SessionModel{
		cfg:     cfg,
		store:   store,
		runtime: rc,
		logger:  logger,
		menu:    NewMenuModel(rc),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	switch {
	case m.sim != nil:
		return m.updateSim(msg)
	case m.runs != nil:
		return m.updateRuns(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsRuns():
		runs := NewRunsModel(m.store, m.runtime.ScreenW, m.runtime.ScreenH)
		m.runs = &runs
		return m, m.runs.Init()

	case m.menu.Selected() != nil:
		return m.startSim(m.menu.Selected().ID)
	}
	return m, cmd
}

// startSim creates a fresh engine and session for the preset.
func (m SessionModel) startSim(preset string) (tea.Model, tea.Cmd) {
	cfg := m.cfg
	cfg.Scene.Preset = preset

	s, err := sim.NewSession(sim.Options{Config: cfg, Logger: m.logger})
	if err != nil {
		m.logger.Error("could not start session", "preset", preset, "error", err)
		m.menu = NewMenuModel(m.runtime).WithMessage("Could not initialise physics engine: " + err.Error())
		return m, nil
	}
	m.session = s

	var observers []sim.FrameObserver
	if m.store != nil {
		rec, recErr := storage.StartRecorder(m.store, preset, cfg.Driver.Timestep, cfg.Driver.RecordedDt(), cfg.Recording.FlushEvery, m.logger)
		if recErr != nil {
			m.logger.Warn("recording disabled", "error", recErr)
		} else {
			m.recorder = rec
			observers = append(observers, rec)
		}
	}

	model := NewModel(s, Options{
		Runtime:      m.runtime,
		ReleaseAfter: time.Duration(cfg.Input.ReleaseAfterMs) * time.Millisecond,
		Embedded:     true,
		Observers:    observers,
	})
	m.sim = &model
	return m, m.sim.Init()
}

// updateSim handles updates while a simulation runs.
func (m SessionModel) updateSim(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.sim.Update(msg)
	if simModel, ok := newModel.(Model); ok {
		m.sim = &simModel
	}

	if m.sim.Done() {
		var msg string
		if err := m.session.ResetErr(); err != nil {
			msg = "Could not initialise physics engine: " + err.Error()
		}
		m.stopSim()
		m.menu = NewMenuModel(m.runtime).WithMessage(msg)
		return m, m.menu.Init()
	}
	return m, cmd
}

// stopSim finishes recording and releases the engine.
func (m *SessionModel) stopSim() {
	if m.recorder != nil {
		if err := m.recorder.Close(); err != nil {
			m.logger.Warn("could not finish run", "error", err)
		}
		m.recorder = nil
	}
	if m.session != nil {
		m.session.Close()
		m.session = nil
	}
	m.sim = nil
}

// updateRuns handles updates while the runs board is shown.
func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.runs.Update(msg)
	if runsModel, ok := newModel.(RunsModel); ok {
		m.runs = &runsModel
	}

	switch {
	case m.runs.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.runs.IsGoingBack():
		m.runs = nil
		m.menu = NewMenuModel(m.runtime)
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.sim != nil:
		return m.sim.View()
	case m.runs != nil:
		return m.runs.View()
	}
	return m.menu.View()
}
