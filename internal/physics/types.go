package physics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// SDKVersion is the contract version engines are built against.
const SDKVersion = 283

// SimType selects where a scene is simulated.
type SimType int

const (
	SimSoftware SimType = iota
	SimHardware
)

// String returns a human-readable name for the simulation type.
func (t SimType) String() string {
	switch t {
	case SimSoftware:
		return "software"
	case SimHardware:
		return "hardware"
	default:
		return "unknown"
	}
}

// Granularity selects which part of a step FetchResults waits for.
type Granularity int

const (
	// RigidBodyFinished waits until rigid body poses and velocities are final.
	RigidBodyFinished Granularity = iota
	// AllFinished waits for every subsystem of the step.
	AllFinished
)

// Parameter is an engine-wide tuning knob.
type Parameter int

const (
	VisualizationScale Parameter = iota
	VisualizeCollisionShapes
	VisualizeActorAxes
)

// EventMask filters what the remote debugger receives.
type EventMask uint32

const (
	EventFrames EventMask = 1 << iota
	EventActors

	EventEverything EventMask = 0xffffffff
)

// ShapeKind identifies a collision shape.
type ShapeKind int

const (
	ShapePlane ShapeKind = iota
	ShapeBox
	ShapeSphere
)

// String returns the shape name.
func (k ShapeKind) String() string {
	switch k {
	case ShapePlane:
		return "plane"
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Shape describes one collision shape attached to an actor.
// Plane shapes are infinite: Normal·p = Distance.
type Shape struct {
	Kind        ShapeKind
	HalfExtents mgl64.Vec3 // box only
	Radius      float64    // sphere only
	Normal      mgl64.Vec3 // plane only
	Distance    float64    // plane only
	Trigger     bool       // reports overlaps but never collides
}

// PlaneShape returns the default ground plane: normal +Y through the origin.
func PlaneShape() Shape {
	return Shape{Kind: ShapePlane, Normal: mgl64.Vec3{0, 1, 0}}
}

// BoxShape returns a box with the given half extents.
func BoxShape(half mgl64.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: half}
}

// SphereShape returns a sphere with the given radius.
func SphereShape(radius float64) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// Volume returns the shape volume; planes have none.
func (s Shape) Volume() float64 {
	switch s.Kind {
	case ShapeBox:
		h := s.HalfExtents
		return 8 * h.X() * h.Y() * h.Z()
	case ShapeSphere:
		return 4.0 / 3.0 * 3.141592653589793 * s.Radius * s.Radius * s.Radius
	default:
		return 0
	}
}

// BodyDesc marks an actor as dynamic and carries its initial motion.
type BodyDesc struct {
	LinearVelocity mgl64.Vec3
	LinearDamping  float64
}

// ActorDesc describes an actor to create. A nil Body makes the actor static.
type ActorDesc struct {
	Name     string
	Shapes   []Shape
	Body     *BodyDesc
	Density  float64    // kg/m^3, dynamic actors only
	Position mgl64.Vec3 // global pose translation
}

// Validate checks the descriptor the way the engine will.
func (d ActorDesc) Validate() error {
	if len(d.Shapes) == 0 {
		return fmt.Errorf("%w: actor %q has no shapes", ErrInvalidDesc, d.Name)
	}
	for i, s := range d.Shapes {
		switch s.Kind {
		case ShapePlane:
			if d.Body != nil {
				return fmt.Errorf("%w: actor %q: plane shapes must be static", ErrInvalidDesc, d.Name)
			}
			if s.Normal.Len() == 0 {
				return fmt.Errorf("%w: actor %q: shape %d has zero normal", ErrInvalidDesc, d.Name, i)
			}
		case ShapeBox:
			h := s.HalfExtents
			if h.X() <= 0 || h.Y() <= 0 || h.Z() <= 0 {
				return fmt.Errorf("%w: actor %q: shape %d has non-positive half extents", ErrInvalidDesc, d.Name, i)
			}
		case ShapeSphere:
			if s.Radius <= 0 {
				return fmt.Errorf("%w: actor %q: shape %d has non-positive radius", ErrInvalidDesc, d.Name, i)
			}
		default:
			return fmt.Errorf("%w: actor %q: shape %d has unknown kind", ErrInvalidDesc, d.Name, i)
		}
	}
	if d.Body != nil && d.Density <= 0 {
		return fmt.Errorf("%w: actor %q: dynamic actors need a positive density", ErrInvalidDesc, d.Name)
	}
	return nil
}

// SceneDesc describes a scene to create.
type SceneDesc struct {
	Gravity mgl64.Vec3
	SimType SimType
}

// DebugLine is one segment of the engine's debug visualisation.
// Color is packed 0xRRGGBB.
type DebugLine struct {
	From, To mgl64.Vec3
	Color    uint32
}

// DebugRenderable is the wireframe the engine produces for debugging.
type DebugRenderable struct {
	Lines []DebugLine
}

// Debug colours.
const (
	DebugColorShape  uint32 = 0xffffff
	DebugColorAxisX  uint32 = 0xff0000
	DebugColorAxisY  uint32 = 0x00ff00
	DebugColorAxisZ  uint32 = 0x0000ff
	DebugColorStatic uint32 = 0x808080
)

// BoxCorners returns the eight corners of an axis-aligned box.
func BoxCorners(center, half mgl64.Vec3) [8]mgl64.Vec3 {
	var c [8]mgl64.Vec3
	for i := 0; i < 8; i++ {
		sx, sy, sz := -1.0, -1.0, -1.0
		if i&1 != 0 {
			sx = 1
		}
		if i&2 != 0 {
			sy = 1
		}
		if i&4 != 0 {
			sz = 1
		}
		c[i] = center.Add(mgl64.Vec3{sx * half.X(), sy * half.Y(), sz * half.Z()})
	}
	return c
}

// BoxEdges lists corner index pairs of the twelve edges of BoxCorners.
var BoxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}
