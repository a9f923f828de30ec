package rigid

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-physlab/internal/physics"
	"github.com/vovakirdan/tui-physlab/internal/pvd"
)

// Engine is the top-level handle of the reference engine.
type Engine struct {
	opts     Options
	debugger *pvd.Client

	mu       sync.Mutex
	params   map[physics.Parameter]float64
	scenes   []*Scene
	released bool
}

// New creates an engine. It fails with physics.ErrVersionMismatch when
// opts.Version differs from physics.SDKVersion.
func New(opts Options) (*Engine, error) {
	if opts.Version != physics.SDKVersion {
		return nil, fmt.Errorf("%w: got %d, engine is %d", physics.ErrVersionMismatch, opts.Version, physics.SDKVersion)
	}
	return &Engine{
		opts:     opts.withDefaults(),
		debugger: pvd.NewClient(opts.Version),
		params:   make(map[physics.Parameter]float64),
	}, nil
}

// CreateScene creates a scene. Hardware scenes need at least two workers.
func (e *Engine) CreateScene(desc physics.SceneDesc) (physics.Scene, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.released {
		return nil, physics.ErrEngineReleased
	}
	if desc.SimType == physics.SimHardware && e.opts.Workers < 2 {
		return nil, physics.ErrHardwareUnavailable
	}

	s := newScene(e, desc)
	e.scenes = append(e.scenes, s)
	e.debugger.SetSimType(desc.SimType)
	return s, nil
}

// ReleaseScene waits for any in-flight step and drops the scene's actors.
func (e *Engine) ReleaseScene(ps physics.Scene) {
	s, ok := ps.(*Scene)
	if !ok || s == nil {
		return
	}
	s.release()

	e.mu.Lock()
	defer e.mu.Unlock()
	for i, cur := range e.scenes {
		if cur == s {
			e.scenes = append(e.scenes[:i], e.scenes[i+1:]...)
			break
		}
	}
}

// SetParameter sets an engine-wide parameter.
func (e *Engine) SetParameter(p physics.Parameter, v float64) {
	e.mu.Lock()
	e.params[p] = v
	e.mu.Unlock()
}

// Parameter returns a parameter value; unset parameters are zero.
func (e *Engine) Parameter(p physics.Parameter) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params[p]
}

// RemoteDebugger returns the engine's debugger link.
func (e *Engine) RemoteDebugger() physics.RemoteDebugger {
	return e.debugger
}

// Release frees the engine, releasing any scenes still alive.
func (e *Engine) Release() {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return
	}
	e.released = true
	scenes := e.scenes
	e.scenes = nil
	e.mu.Unlock()

	for _, s := range scenes {
		s.release()
	}
	e.debugger.Disconnect()
}

// Workers returns the number of integration workers.
func (e *Engine) Workers() int {
	return e.opts.Workers
}

var _ physics.Engine = (*Engine)(nil)
