// Package workshop implements the default scene: a ground plane and a box
// dropped from a height.
package workshop

import (
	"github.com/vovakirdan/tui-physlab/internal/config"
	"github.com/vovakirdan/tui-physlab/internal/physics"
	"github.com/vovakirdan/tui-physlab/internal/registry"
	"github.com/vovakirdan/tui-physlab/internal/scenes"
)

// ID is the preset identifier.
const ID = "workshop"

// Preset is the workshop scene.
type Preset struct{}

// New creates a workshop preset.
func New() *Preset {
	return &Preset{}
}

func init() {
	registry.Register(ID, func() registry.Preset { return New() })
}

// ID returns the preset identifier.
func (p *Preset) ID() string { return ID }

// Title returns the display name.
func (p *Preset) Title() string { return "Workshop: falling box" }

// Populate creates the ground and the box.
func (p *Preset) Populate(scene physics.Scene, cfg config.SceneConfig) ([]physics.Actor, error) {
	ground, err := scenes.Ground(scene)
	if err != nil {
		return nil, err
	}
	box, err := scenes.Box(scene, cfg.Box, cfg.Box.Height)
	if err != nil {
		return nil, err
	}
	return []physics.Actor{ground, box}, nil
}

// Update is a no-op extension point.
func (p *Preset) Update(physics.Scene, []physics.Actor, float64) {}
