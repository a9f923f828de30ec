package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/physics"
)

// ForceController applies key-driven forces and remembers the last one for display.
type ForceController struct {
	Strength float64
	force    mgl64.Vec3
}

// Apply pushes actor along dir with Strength*dt and records the force.
// A nil actor only updates the displayed force.
func (f *ForceController) Apply(actor physics.Actor, dir mgl64.Vec3, dt float64) mgl64.Vec3 {
	v := dir.Mul(f.Strength * dt)
	if actor != nil {
		actor.AddForce(v)
	}
	f.force = v
	return v
}

// Force returns the displayed force.
func (f *ForceController) Force() mgl64.Vec3 { return f.force }

// Clear zeroes the displayed force.
func (f *ForceController) Clear() { f.force = mgl64.Vec3{} }
