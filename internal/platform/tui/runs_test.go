package tui

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func recordRun(t *testing.T, store *storage.Store, preset string, frames int) int64 {
	t.Helper()
	id, err := store.CreateRun(preset, "fixed", 1.0/60)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	var samples []storage.Sample
	for i := 1; i <= frames; i++ {
		y := 3.5 - 0.05*float64(i)
		samples = append(samples,
			storage.Sample{Frame: int64(i), SimTime: float64(i) / 60, Actor: "box", Position: mgl64.Vec3{0, y, 0}},
			storage.Sample{Frame: int64(i), SimTime: float64(i) / 60, Actor: "box2", Position: mgl64.Vec3{2, y + 1, 0}},
		)
	}
	if err := store.AppendSamples(id, samples); err != nil {
		t.Fatalf("AppendSamples: %v", err)
	}
	if err := store.FinishRun(id, int64(frames)); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}
	return id
}

func TestRunsModelEmpty(t *testing.T) {
	m := NewRunsModel(nil, 120, 40)
	view := m.View()
	if !strings.Contains(view, "RECORDED RUNS") {
		t.Error("title missing")
	}
	if !strings.Contains(view, "No runs recorded yet") {
		t.Error("empty message missing")
	}
}

func TestRunsModelListsAndTraces(t *testing.T) {
	store := newTestStore(t)
	recordRun(t, store, "workshop", 20)
	newest := recordRun(t, store, "stack", 20)

	m := NewRunsModel(store, 120, 40)
	if len(m.runs) != 2 || m.runs[0].ID != newest {
		t.Fatalf("runs = %+v, want newest first", m.runs)
	}
	if len(m.actors) != 2 || m.actors[0] != "box" {
		t.Fatalf("actors = %v, want [box box2]", m.actors)
	}
	if len(m.trace) != 20 || math.Abs(m.trace[0]-3.45) > 1e-9 {
		t.Errorf("trace = %v", m.trace)
	}
	if !strings.Contains(m.View(), "box height") {
		t.Error("trace caption missing")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunsModel)
	if m.actor != 1 || !strings.Contains(m.View(), "box2 height") {
		t.Errorf("tab should select box2, got actor %d", m.actor)
	}
}

func TestRunsModelDelete(t *testing.T) {
	store := newTestStore(t)
	recordRun(t, store, "workshop", 5)

	m := NewRunsModel(store, 120, 40)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = next.(RunsModel)
	if m.err != nil {
		t.Fatalf("delete: %v", m.err)
	}
	if len(m.runs) != 0 {
		t.Errorf("runs after delete = %d, want 0", len(m.runs))
	}
	runs, err := store.ListRuns(0)
	if err != nil || len(runs) != 0 {
		t.Errorf("store still lists %d runs (err %v)", len(runs), err)
	}
}

func TestRunsModelBackAndQuit(t *testing.T) {
	m := NewRunsModel(nil, 80, 24)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if rm := next.(RunsModel); !rm.IsGoingBack() || rm.IsQuitting() {
		t.Error("esc should go back")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if rm := next.(RunsModel); !rm.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestTracePlot(t *testing.T) {
	if got := TracePlot([]float64{1}, 40, 5, "box height"); got != "box height: not enough samples" {
		t.Errorf("TracePlot(1 point) = %q", got)
	}

	out := TracePlot([]float64{3.5, 2, 1, 0.45, 0.45}, 40, 5, "box height")
	if !strings.Contains(out, "box height") {
		t.Error("caption missing")
	}
	if lines := strings.Count(out, "\n"); lines < 5 {
		t.Errorf("plot has %d lines, want at least 5", lines)
	}
}

func TestHeights(t *testing.T) {
	samples := []storage.Sample{
		{Position: mgl64.Vec3{1, 3.5, 2}},
		{Position: mgl64.Vec3{1, 0.45, 2}},
	}
	got := Heights(samples)
	if len(got) != 2 || got[0] != 3.5 || got[1] != 0.45 {
		t.Errorf("Heights() = %v", got)
	}
}
