package sim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/config"
	"github.com/vovakirdan/tui-physlab/internal/core"
	"github.com/vovakirdan/tui-physlab/internal/physics"

	_ "github.com/vovakirdan/tui-physlab/internal/scenes/stack"
	_ "github.com/vovakirdan/tui-physlab/internal/scenes/workshop"
)

const testDt = 1.0 / 60

// newTestSession builds a software-only session on a fixed 1/60 step.
func newTestSession(t *testing.T, preset string, mutate func(*config.Config)) *Session {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Scene.Preset = preset
	cfg.Physics.Hardware = false
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewSession(Options{Config: cfg})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func near(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() < 1e-9
}

// recorder is a Renderer that remembers what it was asked to draw.
type recorder struct {
	frames  int
	actors  []string
	lights  map[string]Light
	shadows int
	debug   int
	arrows  [][2]mgl64.Vec3
	texts   []string
	ended   int
}

func newRecorder() *recorder {
	return &recorder{lights: make(map[string]Light)}
}

func (r *recorder) BeginFrame(CameraView) {
	r.frames++
	r.actors = nil
	r.shadows = 0
	r.debug = 0
	r.arrows = nil
	r.texts = nil
}

func (r *recorder) DrawActor(a physics.Actor, light Light) {
	r.actors = append(r.actors, a.Name())
	r.lights[a.Name()] = light
}

func (r *recorder) DrawShadow(physics.Actor) { r.shadows++ }
func (r *recorder) DrawDebug(*physics.DebugRenderable) { r.debug++ }
func (r *recorder) DrawText(text string, _, _ float64) { r.texts = append(r.texts, text) }
func (r *recorder) EndFrame() { r.ended++ }
func (r *recorder) DrawArrow(from, to mgl64.Vec3, _ core.Color) {
	r.arrows = append(r.arrows, [2]mgl64.Vec3{from, to})
}

// stubActor is a minimal actor for selection tests.
type stubActor struct {
	name    string
	dynamic bool
	trigger bool
}

func (a *stubActor) Name() string { return a.name }
func (a *stubActor) IsDynamic() bool { return a.dynamic }
func (a *stubActor) Shapes() []physics.Shape {
	s := physics.BoxShape(mgl64.Vec3{1, 1, 1})
	s.Trigger = a.trigger
	return []physics.Shape{s}
}
func (a *stubActor) Mass() float64 { return 1 }
func (a *stubActor) GlobalPosition() mgl64.Vec3 { return mgl64.Vec3{} }
func (a *stubActor) SetGlobalPosition(mgl64.Vec3) {}
func (a *stubActor) LinearVelocity() mgl64.Vec3 { return mgl64.Vec3{} }
func (a *stubActor) SetLinearVelocity(mgl64.Vec3) {}
func (a *stubActor) CMassGlobalPosition() mgl64.Vec3 { return mgl64.Vec3{} }
func (a *stubActor) AddForce(mgl64.Vec3) {}
