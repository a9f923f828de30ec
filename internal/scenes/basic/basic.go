// Package basic implements the console scene: a box resting on the ground
// is pushed once and stopped when it passes a marker on the X axis.
package basic

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/config"
	"github.com/vovakirdan/tui-physlab/internal/physics"
	"github.com/vovakirdan/tui-physlab/internal/registry"
	"github.com/vovakirdan/tui-physlab/internal/scenes"
)

// ID is the preset identifier.
const ID = "basic"

// Preset is the basic scene.
type Preset struct {
	stopAtX float64
}

// New creates a basic preset.
func New() *Preset {
	return &Preset{}
}

func init() {
	registry.Register(ID, func() registry.Preset { return New() })
}

// ID returns the preset identifier.
func (p *Preset) ID() string { return ID }

// Title returns the display name.
func (p *Preset) Title() string { return "Basic: push and stop" }

// Populate creates the ground and the box, then pushes the box.
func (p *Preset) Populate(scene physics.Scene, cfg config.SceneConfig) ([]physics.Actor, error) {
	p.stopAtX = cfg.Basic.StopAtX

	ground, err := scenes.Ground(scene)
	if err != nil {
		return nil, err
	}
	box, err := scenes.Box(scene, cfg.Box, cfg.Basic.Height)
	if err != nil {
		return nil, err
	}
	box.AddForce(scenes.Vec(cfg.Basic.InitialForce))
	return []physics.Actor{ground, box}, nil
}

// Update stops the box once it reaches the marker.
func (p *Preset) Update(_ physics.Scene, actors []physics.Actor, _ float64) {
	box := scenes.Find(actors, scenes.BoxName)
	if box == nil {
		return
	}
	if box.GlobalPosition().X() >= p.stopAtX {
		box.SetLinearVelocity(mgl64.Vec3{})
	}
}
