package render

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/core"
	"github.com/vovakirdan/tui-physlab/internal/physics"
	"github.com/vovakirdan/tui-physlab/internal/sim"
)

var _ sim.Renderer = (*ConsoleRenderer)(nil)

// ConsoleRenderer prints the pose and velocity of one tracked actor per
// frame. Everything else is ignored.
type ConsoleRenderer struct {
	w     io.Writer
	track string

	actor physics.Actor
}

// NewConsoleRenderer prints to w. track names the actor to follow; empty
// follows the first dynamic actor drawn in each frame.
func NewConsoleRenderer(w io.Writer, track string) *ConsoleRenderer {
	return &ConsoleRenderer{w: w, track: track}
}

// BeginFrame forgets the previous frame's actor.
func (r *ConsoleRenderer) BeginFrame(sim.CameraView) {
	r.actor = nil
}

// DrawActor remembers a if it is the tracked actor.
func (r *ConsoleRenderer) DrawActor(a physics.Actor, _ sim.Light) {
	if r.actor != nil {
		return
	}
	if r.track != "" {
		if a.Name() == r.track {
			r.actor = a
		}
		return
	}
	if a.IsDynamic() {
		r.actor = a
	}
}

func (r *ConsoleRenderer) DrawShadow(physics.Actor) {}
func (r *ConsoleRenderer) DrawDebug(*physics.DebugRenderable) {}
func (r *ConsoleRenderer) DrawArrow(_, _ mgl64.Vec3, _ core.Color) {}
func (r *ConsoleRenderer) DrawText(string, float64, float64) {}

// EndFrame prints the tracked actor's state.
func (r *ConsoleRenderer) EndFrame() {
	if r.actor == nil {
		return
	}
	pos := r.actor.GlobalPosition()
	vel := r.actor.LinearVelocity()
	fmt.Fprintf(r.w, "pos %.2f %.2f %.2f :: vel %.2f %.2f %.2f\n",
		pos.X(), pos.Y(), pos.Z(), vel.X(), vel.Y(), vel.Z())
}
