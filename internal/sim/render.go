package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/config"
	"github.com/vovakirdan/tui-physlab/internal/core"
	"github.com/vovakirdan/tui-physlab/internal/physics"
)

// Renderer draws what the session decides to show. Implementations own
// rasterisation, lighting and text placement.
type Renderer interface {
	BeginFrame(view CameraView)
	DrawActor(a physics.Actor, light Light)
	DrawShadow(a physics.Actor)
	DrawDebug(dr *physics.DebugRenderable)
	DrawArrow(from, to mgl64.Vec3, c core.Color)
	DrawText(text string, x, y float64)
	EndFrame()
}

// Light selects how an actor is lit.
type Light int

const (
	LightDefault Light = iota
	LightSelected
)

// RenderMode selects solid geometry, the debug wireframe or both.
type RenderMode int

const (
	RenderSolid RenderMode = iota
	RenderWireframe
	RenderBoth
)

// Next cycles solid -> wireframe -> both -> solid.
func (m RenderMode) Next() RenderMode {
	switch m {
	case RenderSolid:
		return RenderWireframe
	case RenderWireframe:
		return RenderBoth
	default:
		return RenderSolid
	}
}

// String returns the config name of the mode.
func (m RenderMode) String() string {
	switch m {
	case RenderWireframe:
		return config.RenderWireframe
	case RenderBoth:
		return config.RenderBoth
	default:
		return config.RenderSolid
	}
}

// ParseRenderMode parses a config render mode.
func ParseRenderMode(s string) (RenderMode, error) {
	switch s {
	case config.RenderSolid:
		return RenderSolid, nil
	case config.RenderWireframe:
		return RenderWireframe, nil
	case config.RenderBoth:
		return RenderBoth, nil
	default:
		return RenderSolid, fmt.Errorf("unknown render mode %q", s)
	}
}

// ForceArrowColor is the colour of the applied-force arrow.
const ForceArrowColor = core.ColorYellow

// render draws the current known state.
func (s *Session) render(r Renderer) {
	r.BeginFrame(s.camera.View())

	if s.mode != RenderWireframe && s.scene != nil {
		for _, a := range s.actors {
			if a == s.selected {
				r.DrawActor(a, LightSelected)
				s.drawForce(r)
			} else {
				r.DrawActor(a, LightDefault)
			}
			if s.shadows {
				r.DrawShadow(a)
			}
		}
	}

	if s.debug != nil {
		r.DrawDebug(s.debug)
	}

	for _, l := range s.hud.Lines() {
		if l.Text != "" {
			r.DrawText(l.Text, l.X, l.Y)
		}
	}

	r.EndFrame()
}

// drawForce draws the force arrow on the selected actor when the force
// is large enough.
func (s *Session) drawForce(r Renderer) {
	f := s.force.Force()
	mag := f.Len()
	if s.selected == nil || mag < s.cfg.Force.ArrowThreshold || mag == 0 {
		return
	}
	pos := s.selected.CMassGlobalPosition()
	r.DrawArrow(pos, pos.Add(f.Mul(s.cfg.Force.ArrowLength/mag)), ForceArrowColor)
}
