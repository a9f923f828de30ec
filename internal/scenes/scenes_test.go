package scenes_test

import (
	"testing"

	"github.com/vovakirdan/tui-physlab/internal/config"
	"github.com/vovakirdan/tui-physlab/internal/physics"
	"github.com/vovakirdan/tui-physlab/internal/physics/rigid"
	"github.com/vovakirdan/tui-physlab/internal/registry"
	"github.com/vovakirdan/tui-physlab/internal/scenes"

	_ "github.com/vovakirdan/tui-physlab/internal/scenes/basic"
	_ "github.com/vovakirdan/tui-physlab/internal/scenes/stack"
	_ "github.com/vovakirdan/tui-physlab/internal/scenes/workshop"
)

func newScene(t *testing.T) physics.Scene {
	t.Helper()
	e, err := rigid.New(rigid.DefaultOptions())
	if err != nil {
		t.Fatalf("rigid.New: %v", err)
	}
	t.Cleanup(e.Release)
	s, err := e.CreateScene(physics.SceneDesc{Gravity: scenes.Vec(config.DefaultConfig().Physics.Gravity)})
	if err != nil {
		t.Fatalf("CreateScene: %v", err)
	}
	return s
}

func populate(t *testing.T, id string, cfg config.SceneConfig) (registry.Preset, physics.Scene, []physics.Actor) {
	t.Helper()
	p, err := registry.Create(id)
	if err != nil {
		t.Fatalf("Create(%q): %v", id, err)
	}
	s := newScene(t)
	actors, err := p.Populate(s, cfg)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	return p, s, actors
}

func TestPresetsRegistered(t *testing.T) {
	for _, id := range []string{"workshop", "basic", "stack"} {
		if !registry.Exists(id) {
			t.Errorf("preset %q not registered", id)
		}
	}
}

func TestWorkshopPopulate(t *testing.T) {
	_, s, actors := populate(t, "workshop", config.DefaultConfig().Scene)

	if len(actors) != 2 || len(s.Actors()) != 2 {
		t.Fatalf("got %d actors, want ground and box", len(actors))
	}
	ground, box := actors[0], actors[1]
	if ground.IsDynamic() || ground.Name() != scenes.GroundName {
		t.Errorf("first actor should be the static ground, got %q", ground.Name())
	}
	if !box.IsDynamic() || box.Name() != scenes.BoxName {
		t.Errorf("second actor should be the dynamic box, got %q", box.Name())
	}
	if y := box.GlobalPosition().Y(); y != 3.5 {
		t.Errorf("box height = %v, want 3.5", y)
	}
	if m := box.Mass(); m < 9.999 || m > 10.001 {
		t.Errorf("box mass = %v, want 10", m)
	}
}

func TestStackPopulate(t *testing.T) {
	_, _, actors := populate(t, "stack", config.DefaultConfig().Scene)

	if len(actors) != 6 {
		t.Fatalf("got %d actors, want 6", len(actors))
	}
	sensor := scenes.Find(actors, "sensor")
	if sensor == nil || !physics.HasTrigger(sensor) {
		t.Error("sensor should carry a trigger shape")
	}
	crate := scenes.Find(actors, "crate")
	if crate == nil || crate.IsDynamic() {
		t.Error("crate should be static")
	}
	ball := scenes.Find(actors, "ball")
	if ball == nil || ball.Shapes()[0].Kind != physics.ShapeSphere {
		t.Error("ball should be a sphere")
	}
}

func TestBasicPushAndStop(t *testing.T) {
	cfg := config.DefaultConfig().Scene
	p, s, actors := populate(t, "basic", cfg)
	box := scenes.Find(actors, scenes.BoxName)

	if err := s.Simulate(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	s.FetchResults(physics.RigidBodyFinished, true)
	if vx := box.LinearVelocity().X(); vx <= 0 {
		t.Fatalf("box should move along +X after the push, vx = %v", vx)
	}

	// Below the marker the velocity is untouched
	p.Update(s, actors, 1.0/60)
	if box.LinearVelocity().X() == 0 {
		t.Error("box stopped before reaching the marker")
	}

	// Past the marker it stops
	box.SetGlobalPosition(box.GlobalPosition().Add([3]float64{cfg.Basic.StopAtX, 0, 0}))
	p.Update(s, actors, 1.0/60)
	if v := box.LinearVelocity(); v.Len() != 0 {
		t.Errorf("velocity past marker = %v, want zero", v)
	}
}

func TestExtraRejectsBadShape(t *testing.T) {
	s := newScene(t)
	_, err := scenes.Extra(s, config.ExtraConfig{Name: "flat", Kind: config.KindBox, Density: 1})
	if err == nil {
		t.Error("expected error for zero half extents")
	}
}
