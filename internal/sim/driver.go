package sim

import (
	"context"
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/physics"
)

// ActorSample is one actor's state in a FrameReport.
type ActorSample struct {
	Name     string
	Dynamic  bool
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// FrameReport describes the results fetched in one frame.
type FrameReport struct {
	Frame   uint64  // fetched steps so far
	SimTime float64 // simulated seconds since the scene was built
	Dt      float64 // delta of the step just submitted
	Actors  []ActorSample
}

// FrameObserver receives a report after every frame that fetched results.
type FrameObserver interface {
	ObserveFrame(r FrameReport)
}

// FrameObserverFunc adapts a function to FrameObserver.
type FrameObserverFunc func(r FrameReport)

// ObserveFrame calls f(r).
func (f FrameObserverFunc) ObserveFrame(r FrameReport) { f(r) }

// Driver runs the frame loop of a Session. Each unpaused frame collects
// the step submitted by the previous frame, so the engine computes while
// the caller renders.
type Driver struct {
	session   *Session
	renderer  Renderer
	observers []FrameObserver

	frame     uint64
	simTime   float64
	pendingDt float64
	resets    int // session resets seen
}

// NewDriver creates a driver rendering through r.
func NewDriver(s *Session, r Renderer) *Driver {
	return &Driver{session: s, renderer: r}
}

// AddObserver registers an observer for fetched frames.
func (d *Driver) AddObserver(o FrameObserver) {
	d.observers = append(d.observers, o)
}

// Session returns the driven session.
func (d *Driver) Session() *Session { return d.session }

// Start submits the first step so the first frame has results to fetch.
func (d *Driver) Start() {
	s := d.session
	s.time.Mark()
	if s.paused || s.scene == nil {
		return
	}
	d.submit(s.time.Next())
}

// Frame runs one iteration of the loop:
//
//  1. fetch the in-flight step, blocking until rigid bodies finish
//  2. capture the debug renderable unless the mode is solid
//  3. run the preset's per-frame hook
//  4. apply held keys
//  5. submit the next step
//  6. notify observers
//  7. render
//
// While paused only the render runs, drawing the last known state.
func (d *Driver) Frame() {
	s := d.session
	if d.resets != s.resets {
		// A reset rebuilt the scene; its clock starts over
		d.resets = s.resets
		d.simTime = 0
		d.pendingDt = 0
	}
	if !s.paused && s.scene != nil {
		fetched := s.scene.FetchResults(physics.RigidBodyFinished, true)
		if fetched {
			d.frame++
			d.simTime += d.pendingDt
		}

		s.debug = nil
		if s.mode != RenderSolid {
			s.debug = s.scene.DebugRenderable()
		}

		s.preset.Update(s.scene, s.actors, d.pendingDt)

		dt := s.time.Next()
		s.keyHold(dt)
		d.submit(dt)

		if fetched {
			d.notify(dt)
		}
	}

	if d.renderer != nil {
		s.render(d.renderer)
	}
}

// submit starts a step of dt. A reset or release between frames leaves
// nothing in flight, so a pending step here is unexpected and only logged.
func (d *Driver) submit(dt float64) {
	s := d.session
	if err := s.scene.Simulate(dt); err != nil {
		if !errors.Is(err, physics.ErrStepPending) {
			s.logger.Warn("simulate failed", "error", err)
		}
		return
	}
	d.pendingDt = dt
}

func (d *Driver) notify(dt float64) {
	if len(d.observers) == 0 {
		return
	}
	r := FrameReport{
		Frame:   d.frame,
		SimTime: d.simTime,
		Dt:      dt,
		Actors:  make([]ActorSample, len(d.session.actors)),
	}
	for i, a := range d.session.actors {
		r.Actors[i] = ActorSample{
			Name:     a.Name(),
			Dynamic:  a.IsDynamic(),
			Position: a.GlobalPosition(),
			Velocity: a.LinearVelocity(),
		}
	}
	for _, o := range d.observers {
		o.ObserveFrame(r)
	}
}

// FrameCount returns the number of fetched steps. It keeps counting
// across resets so recorded frames stay ordered.
func (d *Driver) FrameCount() uint64 { return d.frame }

// SimTime returns the simulated seconds fetched since the scene was built.
func (d *Driver) SimTime() float64 { return d.simTime }

// Run loops until quit is requested, ctx is cancelled or maxFrames frames
// have run (0 means no limit). interval paces the loop; zero runs flat out.
func (d *Driver) Run(ctx context.Context, maxFrames int, interval time.Duration) error {
	d.Start()

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for n := 0; maxFrames == 0 || n < maxFrames; n++ {
		if d.session.QuitRequested() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		d.Frame()

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
	return nil
}
