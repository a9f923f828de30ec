package rigid

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/physics"
	"github.com/vovakirdan/tui-physlab/internal/pvd"
)

// Scene is a simulated world. Its actors are only mutated by the fetch that
// publishes a finished step, never by the step goroutine.
type Scene struct {
	engine *Engine
	desc   physics.SceneDesc

	mu       sync.Mutex
	actors   []*Actor
	pending  *step
	released bool
	time     float64
	frame    uint64
	debug    *physics.DebugRenderable
}

func newScene(e *Engine, desc physics.SceneDesc) *Scene {
	return &Scene{engine: e, desc: desc}
}

// SimType returns the scene's simulation type.
func (s *Scene) SimType() physics.SimType { return s.desc.SimType }

// Gravity returns the scene's gravity.
func (s *Scene) Gravity() mgl64.Vec3 { return s.desc.Gravity }

// Time returns the simulated seconds published so far.
func (s *Scene) Time() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.time
}

// Frame returns the number of fetched steps.
func (s *Scene) Frame() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// CreateActor validates desc and adds an actor.
func (s *Scene) CreateActor(desc physics.ActorDesc) (physics.Actor, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil, physics.ErrSceneReleased
	}
	if s.pending != nil {
		return nil, fmt.Errorf("create actor %q: %w", desc.Name, physics.ErrStepPending)
	}

	a := newActor(s, desc)
	s.actors = append(s.actors, a)
	return a, nil
}

// Actors returns every actor in creation order.
func (s *Scene) Actors() []physics.Actor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]physics.Actor, len(s.actors))
	for i, a := range s.actors {
		out[i] = a
	}
	return out
}

// Simulate snapshots the world and starts a step of dt seconds.
func (s *Scene) Simulate(dt float64) error {
	if dt < 0 {
		return fmt.Errorf("simulate: negative dt %v", dt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return physics.ErrSceneReleased
	}
	if s.pending != nil {
		return physics.ErrStepPending
	}

	st := &step{
		dt:     dt,
		bodies: make([]body, len(s.actors)),
		done:   make(chan struct{}),
	}
	for i, a := range s.actors {
		if a.force != (mgl64.Vec3{}) {
			a.wake()
		}
		st.bodies[i] = body{
			dynamic:    a.dynamic,
			pos:        a.pos,
			vel:        a.vel,
			force:      a.force,
			invMass:    a.invMass,
			damping:    a.damping,
			bounds:     a.bounds,
			asleep:     a.asleep,
			sleepTimer: a.sleepTimer,
		}
		// Forces apply to this step only
		a.force = mgl64.Vec3{}
	}

	workers := 1
	if s.desc.SimType == physics.SimHardware {
		workers = s.engine.opts.Workers
	}
	opts := s.engine.opts
	gravity := s.desc.Gravity

	s.pending = st
	go func() {
		defer close(st.done)
		st.run(opts, gravity, workers)
	}()
	return nil
}

// FetchResults publishes the in-flight step. Both granularities wait for
// the complete step, since rigid bodies finish last.
func (s *Scene) FetchResults(_ physics.Granularity, block bool) bool {
	s.mu.Lock()
	st := s.pending
	released := s.released
	s.mu.Unlock()
	if released || st == nil {
		return false
	}

	if block {
		<-st.done
	} else {
		select {
		case <-st.done:
		default:
			return false
		}
	}

	s.mu.Lock()
	if s.pending != st {
		// Released while we waited
		s.mu.Unlock()
		return false
	}
	for i, a := range s.actors {
		if i >= len(st.bodies) {
			break
		}
		b := st.bodies[i]
		a.pos = b.pos
		a.vel = b.vel
		a.asleep = b.asleep
		a.sleepTimer = b.sleepTimer
		a.applyPending()
	}
	s.pending = nil
	s.time += st.dt
	s.frame++
	s.debug = s.buildDebugLocked()
	frame := s.frameEventLocked()
	s.mu.Unlock()

	if s.engine.debugger.Connected() {
		// Best effort; a failed write drops the link
		_ = s.engine.debugger.SendFrame(frame)
	}
	return true
}

// DebugRenderable returns the wireframe built at the last fetch.
func (s *Scene) DebugRenderable() *physics.DebugRenderable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debug
}

func (s *Scene) frameEventLocked() pvd.Frame {
	f := pvd.Frame{
		Frame:  s.frame,
		Time:   s.time,
		Actors: make([]pvd.ActorState, len(s.actors)),
	}
	for i, a := range s.actors {
		f.Actors[i] = pvd.ActorState{
			Name:     a.name,
			Dynamic:  a.dynamic,
			Position: pvd.Vec3(a.pos),
			Velocity: pvd.Vec3(a.vel),
		}
	}
	return f
}

// release waits for an in-flight step and drops every actor.
func (s *Scene) release() {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return
	}
	s.released = true
	st := s.pending
	s.pending = nil
	s.mu.Unlock()

	if st != nil {
		<-st.done
	}

	s.mu.Lock()
	s.actors = nil
	s.debug = nil
	s.mu.Unlock()
}

var _ physics.Scene = (*Scene)(nil)
