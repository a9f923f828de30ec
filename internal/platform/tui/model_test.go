package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/config"
	"github.com/vovakirdan/tui-physlab/internal/core"
	"github.com/vovakirdan/tui-physlab/internal/sim"

	_ "github.com/vovakirdan/tui-physlab/internal/scenes/stack"
	_ "github.com/vovakirdan/tui-physlab/internal/scenes/workshop"
)

// fakeClock is a settable time source for key latching.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Physics.Hardware = false
	return cfg
}

func newTestModel(t *testing.T, embedded bool) (Model, *sim.Session, *fakeClock) {
	t.Helper()
	s, err := sim.NewSession(sim.Options{Config: testConfig()})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(s.Close)

	clock := &fakeClock{t: time.Unix(1000, 0)}
	m := NewModel(s, Options{
		Runtime:      core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60},
		ReleaseAfter: 550 * time.Millisecond,
		Embedded:     embedded,
		Now:          clock.Now,
	})
	return m, s, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelReservesFooter(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	if m.Screen().Width() != 80 || m.Screen().Height() != 24 {
		t.Errorf("screen = %dx%d, want 80x24", m.Screen().Width(), m.Screen().Height())
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 31})
	if m.Screen().Width() != 100 || m.Screen().Height() != 30 {
		t.Errorf("screen after resize = %dx%d, want 100x30", m.Screen().Width(), m.Screen().Height())
	}
}

func TestModelTickRunsFrame(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should start the tick loop")
	}

	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if got := m.Driver().FrameCount(); got != 1 {
		t.Errorf("FrameCount() = %d, want 1", got)
	}
	if !strings.Contains(m.Screen().String(), "Software Scene") {
		t.Error("frame not rendered to the screen")
	}
	if !strings.Contains(m.View(), "fly") {
		t.Error("help footer missing")
	}
}

func TestModelHoldKeyIsLatched(t *testing.T) {
	m, s, clock := newTestModel(t, false)
	m.Init()
	start := s.Camera().Position

	m, _ = update(t, m, runeKey('w'))
	if !s.Input().Held(sim.KeyForward) {
		t.Fatal("w should be held after a press")
	}

	clock.Advance(300 * time.Millisecond)
	m, _ = update(t, m, TickMsg(clock.Now()))
	if !s.Input().Held(sim.KeyForward) {
		t.Error("w released before the latch expired")
	}
	moved := s.Camera().Position
	if moved == start {
		t.Error("camera did not move while w was held")
	}

	clock.Advance(300 * time.Millisecond)
	m, _ = update(t, m, TickMsg(clock.Now()))
	if s.Input().Held(sim.KeyForward) {
		t.Error("w still held after the latch expired")
	}
	stopped := s.Camera().Position
	update(t, m, TickMsg(clock.Now()))
	if s.Camera().Position != stopped {
		t.Error("camera moved after w was released")
	}
}

func TestModelResetKeepsAspect(t *testing.T) {
	s, err := sim.NewSession(sim.Options{Config: testConfig()})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(s.Close)

	m := NewModel(s, Options{Runtime: core.RuntimeConfig{ScreenW: 120, ScreenH: 31, TickRate: 60}})
	m.Init()
	want := core.AspectRatio(120, 30)
	if got := s.Camera().Aspect; got != want {
		t.Fatalf("aspect = %v, want %v", got, want)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF10})
	update(t, m, TickMsg(time.Now()))
	if got := s.Camera().Aspect; got != want {
		t.Errorf("aspect after F10 = %v, want %v", got, want)
	}
	if s.Camera().Position != mgl64.Vec3(testConfig().Camera.Position) {
		t.Errorf("camera not reset: %v", s.Camera().Position)
	}
}

func TestModelOneShotKeys(t *testing.T) {
	m, s, _ := newTestModel(t, false)

	m, _ = update(t, m, runeKey('b'))
	if s.Mode() != sim.RenderWireframe {
		t.Errorf("mode = %v, want wireframe", s.Mode())
	}
	if s.Input().Held(sim.KeyMode) {
		t.Error("one-shot key left held")
	}
	update(t, m, runeKey('b'))
	if s.Mode() != sim.RenderBoth {
		t.Errorf("second press: mode = %v, want both", s.Mode())
	}
}

func TestModelEscape(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.Done() || cmd == nil {
		t.Errorf("Esc: done=%v cmd=%v, want quit", m.Done(), cmd)
	}
	if m.View() != "" {
		t.Error("finished model should render nothing")
	}

	// Embedded models hand control back instead of quitting
	em, _, _ := newTestModel(t, true)
	em, cmd = update(t, em, tea.KeyMsg{Type: tea.KeyEsc})
	if !em.Done() || cmd != nil {
		t.Errorf("embedded Esc: done=%v cmd=%v, want done without quit", em.Done(), cmd)
	}
}

func TestModelMouseDrag(t *testing.T) {
	m, s, _ := newTestModel(t, false)
	m, _ = update(t, m, tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	update(t, m, tea.MouseMsg{X: 30, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})

	if f := s.Camera().Forward; f.X() <= 0 || f.ApproxEqual(mgl64.Vec3{0, 0, 1}) {
		t.Errorf("forward after drag = %v", f)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "box", core.ColorBrightCyan)
	s.DrawText(0, 1, "ground", core.ColorDarkGray)

	out := RenderScreen(s)
	if !strings.Contains(out, "box") || !strings.Contains(out, "ground") {
		t.Errorf("RenderScreen() = %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}

func TestSessionModelFlow(t *testing.T) {
	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60}
	m := NewSessionModel(testConfig(), nil, rc, log.New(io.Discard))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)
	if m.sim == nil || m.session == nil {
		t.Fatal("Enter should start a simulation")
	}
	if got, want := m.session.Preset().ID(), m.menu.items[0].ID; got != want {
		t.Errorf("preset = %s, want %s", got, want)
	}
	session := m.session

	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(SessionModel)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	if m.sim != nil || m.session != nil {
		t.Error("Esc should return to the menu")
	}
	if session.Engine() != nil {
		t.Error("session not released after leaving the simulation")
	}
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Error("leaving the simulation should not quit the program")
		}
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(SessionModel)
	if m.runs == nil {
		t.Fatal("Tab should open the runs board")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	if m.runs != nil {
		t.Error("Esc should leave the runs board")
	}

	next, cmd = m.Update(runeKey('q'))
	m = next.(SessionModel)
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should quit")
	}
}

func TestSessionModelReportsInitFailure(t *testing.T) {
	cfg := testConfig()
	cfg.Scene.Box.Density = 0
	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 25}
	m := NewSessionModel(cfg, nil, rc, log.New(io.Discard))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)
	if m.sim != nil {
		t.Fatal("simulation started with an invalid box")
	}
	if !strings.Contains(m.View(), "Could not initialise physics engine") {
		t.Error("menu should show the failure")
	}
}
