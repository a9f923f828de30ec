// Package stack implements a crowded scene: the workshop box plus the
// configured extras, including a trigger volume and a static crate that
// selection skips.
package stack

import (
	"github.com/vovakirdan/tui-physlab/internal/config"
	"github.com/vovakirdan/tui-physlab/internal/physics"
	"github.com/vovakirdan/tui-physlab/internal/registry"
	"github.com/vovakirdan/tui-physlab/internal/scenes"
)

// ID is the preset identifier.
const ID = "stack"

// Preset is the stack scene.
type Preset struct{}

// New creates a stack preset.
func New() *Preset {
	return &Preset{}
}

func init() {
	registry.Register(ID, func() registry.Preset { return New() })
}

// ID returns the preset identifier.
func (p *Preset) ID() string { return ID }

// Title returns the display name.
func (p *Preset) Title() string { return "Stack: mixed actors" }

// Populate creates the ground, the box and every extra.
func (p *Preset) Populate(scene physics.Scene, cfg config.SceneConfig) ([]physics.Actor, error) {
	ground, err := scenes.Ground(scene)
	if err != nil {
		return nil, err
	}
	box, err := scenes.Box(scene, cfg.Box, cfg.Box.Height)
	if err != nil {
		return nil, err
	}

	actors := []physics.Actor{ground, box}
	for _, e := range cfg.Extras {
		a, err := scenes.Extra(scene, e)
		if err != nil {
			return nil, err
		}
		actors = append(actors, a)
	}
	return actors, nil
}

// Update is a no-op extension point.
func (p *Preset) Update(physics.Scene, []physics.Actor, float64) {}
