package rigid

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/physics"
)

// Actor is a rigid body owned by a Scene. All state is guarded by the
// scene's mutex.
type Actor struct {
	scene   *Scene
	name    string
	dynamic bool
	shapes  []physics.Shape
	mass    float64
	invMass float64
	damping float64
	bounds  bounds

	// Last fetched results.
	pos mgl64.Vec3
	vel mgl64.Vec3

	asleep     bool
	sleepTimer float64

	// Writes made while a step is in flight.
	pendingPos *mgl64.Vec3
	pendingVel *mgl64.Vec3

	force mgl64.Vec3
}

func newActor(s *Scene, desc physics.ActorDesc) *Actor {
	a := &Actor{
		scene:  s,
		name:   desc.Name,
		shapes: append([]physics.Shape(nil), desc.Shapes...),
		pos:    desc.Position,
		bounds: boundsOf(desc.Shapes),
	}
	if desc.Body != nil {
		a.dynamic = true
		a.vel = desc.Body.LinearVelocity
		a.damping = desc.Body.LinearDamping
		for _, sh := range desc.Shapes {
			if !sh.Trigger {
				a.mass += sh.Volume() * desc.Density
			}
		}
		if a.mass > 0 {
			a.invMass = 1 / a.mass
		}
	}
	return a
}

// Name returns the actor's name.
func (a *Actor) Name() string { return a.name }

// IsDynamic reports whether the actor has a body.
func (a *Actor) IsDynamic() bool { return a.dynamic }

// Shapes returns a copy of the actor's shapes.
func (a *Actor) Shapes() []physics.Shape {
	return append([]physics.Shape(nil), a.shapes...)
}

// Mass returns the mass derived from shape volumes and density.
func (a *Actor) Mass() float64 { return a.mass }

// GlobalPosition returns the last fetched position.
func (a *Actor) GlobalPosition() mgl64.Vec3 {
	a.scene.mu.Lock()
	defer a.scene.mu.Unlock()
	return a.pos
}

// CMassGlobalPosition returns the centre of mass. Shapes are centred on
// the actor, so this is its position.
func (a *Actor) CMassGlobalPosition() mgl64.Vec3 {
	return a.GlobalPosition()
}

// LinearVelocity returns the last fetched velocity.
func (a *Actor) LinearVelocity() mgl64.Vec3 {
	a.scene.mu.Lock()
	defer a.scene.mu.Unlock()
	return a.vel
}

// SetGlobalPosition teleports the actor, deferred until fetch if a step is in flight.
func (a *Actor) SetGlobalPosition(p mgl64.Vec3) {
	a.scene.mu.Lock()
	defer a.scene.mu.Unlock()
	if a.scene.released {
		return
	}
	if a.scene.pending != nil {
		a.pendingPos = &p
		return
	}
	a.pos = p
	a.wake()
}

// SetLinearVelocity sets the velocity, deferred until fetch if a step is in flight.
func (a *Actor) SetLinearVelocity(v mgl64.Vec3) {
	a.scene.mu.Lock()
	defer a.scene.mu.Unlock()
	if a.scene.released || !a.dynamic {
		return
	}
	if a.scene.pending != nil {
		a.pendingVel = &v
		return
	}
	a.vel = v
	a.wake()
}

// AddForce accumulates a force for the next submitted step.
func (a *Actor) AddForce(f mgl64.Vec3) {
	a.scene.mu.Lock()
	defer a.scene.mu.Unlock()
	if a.scene.released || !a.dynamic {
		return
	}
	a.force = a.force.Add(f)
}

// applyPending flushes buffered writes after a fetch.
func (a *Actor) applyPending() {
	if a.pendingPos != nil {
		a.pos = *a.pendingPos
		a.pendingPos = nil
		a.wake()
	}
	if a.pendingVel != nil {
		a.vel = *a.pendingVel
		a.pendingVel = nil
		a.wake()
	}
}

func (a *Actor) wake() {
	a.asleep = false
	a.sleepTimer = 0
}

var _ physics.Actor = (*Actor)(nil)
