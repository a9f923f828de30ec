// Package scenes holds the actor builders shared by the scene presets.
// The presets themselves live in subpackages and register with the
// registry on import.
package scenes

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/config"
	"github.com/vovakirdan/tui-physlab/internal/physics"
)

// Actor names used by the presets.
const (
	GroundName = "ground"
	BoxName    = "box"
)

// Vec converts a config triple to a vector.
func Vec(v config.Vec3) mgl64.Vec3 {
	return mgl64.Vec3(v)
}

// Ground creates the static ground plane: normal +Y through the origin.
func Ground(scene physics.Scene) (physics.Actor, error) {
	a, err := scene.CreateActor(physics.ActorDesc{
		Name:   GroundName,
		Shapes: []physics.Shape{physics.PlaneShape()},
	})
	if err != nil {
		return nil, fmt.Errorf("create ground: %w", err)
	}
	return a, nil
}

// Box creates the dynamic workshop box with its centre at height y.
func Box(scene physics.Scene, cfg config.BoxConfig, y float64) (physics.Actor, error) {
	a, err := scene.CreateActor(physics.ActorDesc{
		Name:     BoxName,
		Shapes:   []physics.Shape{physics.BoxShape(Vec(cfg.HalfExtents))},
		Body:     &physics.BodyDesc{},
		Density:  cfg.Density,
		Position: mgl64.Vec3{0, y, 0},
	})
	if err != nil {
		return nil, fmt.Errorf("create box: %w", err)
	}
	return a, nil
}

// Extra creates an additional actor described in the configuration.
func Extra(scene physics.Scene, e config.ExtraConfig) (physics.Actor, error) {
	var shape physics.Shape
	switch e.Kind {
	case config.KindSphere:
		shape = physics.SphereShape(e.Radius)
	default:
		shape = physics.BoxShape(Vec(e.HalfExtents))
	}
	shape.Trigger = e.Trigger

	desc := physics.ActorDesc{
		Name:     e.Name,
		Shapes:   []physics.Shape{shape},
		Position: Vec(e.Position),
	}
	if !e.Static {
		desc.Body = &physics.BodyDesc{}
		desc.Density = e.Density
	}

	a, err := scene.CreateActor(desc)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", e.Name, err)
	}
	return a, nil
}

// Find returns the actor with the given name, or nil.
func Find(actors []physics.Actor, name string) physics.Actor {
	for _, a := range actors {
		if a.Name() == name {
			return a
		}
	}
	return nil
}
