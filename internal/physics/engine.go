package physics

import "github.com/go-gl/mathgl/mgl64"

// Engine is the top-level physics SDK handle.
type Engine interface {
	// CreateScene creates a simulation world.
	CreateScene(desc SceneDesc) (Scene, error)
	// ReleaseScene destroys a scene and every actor it owns.
	ReleaseScene(s Scene)
	// SetParameter sets an engine-wide parameter.
	SetParameter(p Parameter, v float64)
	// Parameter returns the current value of a parameter.
	Parameter(p Parameter) float64
	// RemoteDebugger returns the debugger attachment, or nil if the engine has none.
	RemoteDebugger() RemoteDebugger
	// Release frees the engine. Scenes must be released first.
	Release()
}

// Factory creates an engine for the given SDK version.
type Factory func(version int) (Engine, error)

// Scene is one simulated world.
type Scene interface {
	SimType() SimType
	Gravity() mgl64.Vec3

	// CreateActor adds an actor to the scene.
	CreateActor(desc ActorDesc) (Actor, error)
	// Actors returns every actor in creation order.
	Actors() []Actor

	// Simulate starts advancing the world by dt seconds.
	// It returns immediately; the step runs until FetchResults collects it.
	Simulate(dt float64) error
	// FetchResults collects the in-flight step. It returns false when no
	// step is in flight, or when block is false and the step is unfinished.
	FetchResults(g Granularity, block bool) bool

	// DebugRenderable returns the debug wireframe of the last fetched
	// results, or nil when visualisation is disabled.
	DebugRenderable() *DebugRenderable
}

// Actor is a single rigid body.
type Actor interface {
	Name() string
	IsDynamic() bool
	Shapes() []Shape
	Mass() float64

	GlobalPosition() mgl64.Vec3
	SetGlobalPosition(p mgl64.Vec3)
	LinearVelocity() mgl64.Vec3
	SetLinearVelocity(v mgl64.Vec3)
	CMassGlobalPosition() mgl64.Vec3

	// AddForce accumulates a force applied during the next step.
	AddForce(f mgl64.Vec3)
}

// RemoteDebugger streams simulation events to an external viewer.
type RemoteDebugger interface {
	Connect(host string, port int, mask EventMask) error
	Connected() bool
	Disconnect()
}

// HasTrigger reports whether any of the actor's shapes is trigger-only.
func HasTrigger(a Actor) bool {
	for _, s := range a.Shapes() {
		if s.Trigger {
			return true
		}
	}
	return false
}
