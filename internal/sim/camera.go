package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/config"
)

// WorldUp is the camera's up axis.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Camera is a free-flying camera. Right is derived from Forward on every
// rotation and is never an independent source of truth.
type Camera struct {
	Position mgl64.Vec3
	Forward  mgl64.Vec3
	Right    mgl64.Vec3
	Speed    float64
	Aspect   float64
	FovY     float64

	degreesPerCell float64
	defaults       config.CameraConfig
}

// CameraView is what a renderer needs to set up its projection.
type CameraView struct {
	Position mgl64.Vec3
	Forward  mgl64.Vec3
	Up       mgl64.Vec3
	Aspect   float64
	FovY     float64 // degrees
}

// NewCamera creates a camera at its configured defaults.
func NewCamera(cfg config.CameraConfig) *Camera {
	c := &Camera{defaults: cfg, Aspect: 1}
	c.Reset()
	return c
}

// Reset restores the default pose. The aspect ratio belongs to the
// viewport and is kept.
func (c *Camera) Reset() {
	c.Position = mgl64.Vec3(c.defaults.Position)
	c.Forward = mgl64.Vec3(c.defaults.Forward)
	c.Right = mgl64.Vec3(c.defaults.Right)
	c.Speed = c.defaults.Speed
	c.FovY = c.defaults.FovY
	c.degreesPerCell = c.defaults.MouseDegreesPerCell
}

// Move translates the camera along dir by Speed*dt.
func (c *Camera) Move(dir mgl64.Vec3, dt float64) {
	c.Position = c.Position.Add(dir.Mul(c.Speed * dt))
}

// Rotate turns the view by a mouse drag of (dx, dy) cells: yaw about world
// up, then pitch about the camera's right vector. Forward and Right stay
// unit length.
func (c *Camera) Rotate(dx, dy float64) {
	c.Forward = c.Forward.Normalize()

	yaw := mgl64.QuatRotate(mgl64.DegToRad(c.degreesPerCell*dx), WorldUp)
	c.Forward = yaw.Rotate(c.Forward)
	c.updateRight()

	pitch := mgl64.QuatRotate(mgl64.DegToRad(c.degreesPerCell*dy), c.Right)
	c.Forward = pitch.Rotate(c.Forward).Normalize()
	c.updateRight()
}

// updateRight derives Right from Forward. Looking straight up or down
// leaves the previous Right in place.
func (c *Camera) updateRight() {
	r := c.Forward.Cross(WorldUp)
	if r.Len() < 1e-9 {
		return
	}
	c.Right = r.Normalize()
}

// View returns the camera as seen by a renderer.
func (c *Camera) View() CameraView {
	return CameraView{
		Position: c.Position,
		Forward:  c.Forward,
		Up:       WorldUp,
		Aspect:   c.Aspect,
		FovY:     c.FovY,
	}
}
