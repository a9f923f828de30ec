package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-physlab/internal/config"
	"github.com/vovakirdan/tui-physlab/internal/core"
	"github.com/vovakirdan/tui-physlab/internal/render"
	"github.com/vovakirdan/tui-physlab/internal/sim"
)

// footerHeight is the number of rows reserved for the help footer.
const footerHeight = 1

// Options configures a simulation Model.
type Options struct {
	Runtime core.RuntimeConfig

	// ReleaseAfter is how long a held key survives without a repeat.
	ReleaseAfter time.Duration

	// Embedded models end with Done instead of quitting the program,
	// so a parent model can take over.
	Embedded bool

	// Observers receive every fetched frame, e.g. a recorder.
	Observers []sim.FrameObserver

	// Now is the clock used for key latching. Nil uses time.Now.
	Now func() time.Time
}

// Model is the Bubble Tea model hosting one simulation session.
type Model struct {
	driver   *sim.Driver
	screen   *core.Screen
	latch    *KeyLatch
	keys     *KeyMapper
	help     help.Model
	helpKeys SimKeyMap
	opts     Options
	done     bool
}

// NewModel creates a model driving s.
func NewModel(s *sim.Session, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	screen := core.NewScreen(opts.Runtime.ScreenW, core.Max(opts.Runtime.ScreenH-footerHeight, 0))
	s.SetAspect(core.AspectRatio(screen.Width(), screen.Height()))

	d := sim.NewDriver(s, render.NewScreenRenderer(screen))
	for _, o := range opts.Observers {
		d.AddObserver(o)
	}

	h := help.New()
	h.Width = opts.Runtime.ScreenW

	return Model{
		driver:   d,
		screen:   screen,
		latch:    NewKeyLatch(opts.ReleaseAfter),
		keys:     NewKeyMapper(),
		help:     h,
		helpKeys: DefaultSimKeyMap(),
		opts:     opts,
	}
}

// Init primes the first physics step and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.driver.Start()
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey feeds a key press into the session. Hold keys stay down until
// the latch expires; one-shot keys are released at once so the next press
// fires again.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	k, isQuit := m.keys.MapKey(msg)
	if isQuit {
		return m.finish()
	}
	if k == core.KeyNone {
		return m, nil
	}

	s := m.driver.Session()
	s.KeyPress(k)
	if sim.IsHoldKey(k) {
		m.latch.Press(k, m.opts.Now())
	} else {
		s.KeyRelease(k)
	}

	if s.QuitRequested() {
		return m.finish()
	}
	return m, nil
}

// handleMouse turns left-button drags into camera rotation.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	s := m.driver.Session()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			s.MouseButton(msg.X, msg.Y)
		}
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft {
			s.MouseMotion(msg.X, msg.Y)
		}
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(msg.Height-footerHeight, 0))
	m.driver.Session().SetAspect(core.AspectRatio(m.screen.Width(), m.screen.Height()))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick releases expired keys and runs one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	s := m.driver.Session()
	for _, k := range m.latch.Expire(m.opts.Now()) {
		s.KeyRelease(k)
	}

	m.driver.Frame()
	if s.QuitRequested() {
		return m.finish()
	}

	// Continue ticking
	return m, tickCmd(m.opts.Runtime.TickRate)
}

// finish ends the session's program, or hands control back when embedded.
func (m Model) finish() (tea.Model, tea.Cmd) {
	m.done = true
	if m.opts.Embedded {
		return m, nil
	}
	return m, tea.Quit
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Create screenshots directory
	dir, err := config.ExpandHome("~/.physlab/screenshots")
	if err != nil {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.driver.Session().Preset().ID(), timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, simulation continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// Done reports whether the session has ended.
func (m Model) Done() bool {
	return m.done
}

// Driver returns the frame driver.
func (m Model) Driver() *sim.Driver {
	return m.driver
}

// Screen returns the frame buffer.
func (m Model) Screen() *core.Screen {
	return m.screen
}

// View renders the last frame and the help footer.
func (m Model) View() string {
	if m.done {
		return ""
	}

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render(m.help.View(m.helpKeys))
	return RenderScreen(m.screen) + "\n" + footer
}

// Run starts the Bubble Tea program for s and blocks until it ends.
func Run(s *sim.Session, opts Options) error {
	model := NewModel(s, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drag to look around
	)

	_, err := p.Run()
	return err
}
