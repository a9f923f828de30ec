// Package sim drives a black-box physics engine and a renderer in lock
// step. A Session owns the engine, scene, camera, input and render state;
// a Driver runs its frames.
package sim

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/config"
	"github.com/vovakirdan/tui-physlab/internal/core"
	"github.com/vovakirdan/tui-physlab/internal/physics"
	"github.com/vovakirdan/tui-physlab/internal/physics/rigid"
	"github.com/vovakirdan/tui-physlab/internal/registry"
)

// HUD placement.
const (
	PausedText = "Paused - Hit \"p\" to Unpause"

	simTypeX, simTypeY = 0.74, 0.92
	pauseX, pauseY     = 0.3, 0.55
	pauseLine          = 1
)

// Options configures a Session.
type Options struct {
	Config config.Config

	// Factory creates the engine. Nil uses the in-process rigid engine.
	Factory physics.Factory

	// Logger receives session events. Nil discards them.
	Logger *log.Logger

	// Clock feeds the realtime time source. Nil uses time.Now.
	Clock func() time.Time
}

// Session is the context object of one simulation: engine and scene
// handles, the actors they own, input, camera, selection and render state.
type Session struct {
	cfg     config.Config
	factory physics.Factory
	logger  *log.Logger

	engine physics.Engine
	scene  physics.Scene
	preset registry.Preset
	actors []physics.Actor

	input    core.InputState
	camera   *Camera
	force    *ForceController
	selected physics.Actor
	time     TimeSource

	hud     HUD
	mode    RenderMode
	shadows bool
	paused  bool
	quit    bool
	debug   *physics.DebugRenderable

	mouseX, mouseY int

	resets   int   // successful resets
	resetErr error // set when a reset failed
}

// DefaultFactory returns a factory for the rigid engine tuned by cfg.
func DefaultFactory(cfg config.PhysicsConfig) physics.Factory {
	opts := rigid.DefaultOptions()
	opts.Workers = cfg.Workers
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	opts.Substeps = cfg.Substeps
	opts.SkinWidth = cfg.SkinWidth
	opts.Friction = cfg.Friction
	opts.SleepVelocity = cfg.SleepVelocity
	opts.SleepTime = cfg.SleepTime
	return rigid.Factory(opts)
}

// NewSession creates the engine, scene and preset actors. On failure every
// partially acquired resource is released before the error is returned.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	mode, err := ParseRenderMode(cfg.Render.Mode)
	if err != nil {
		return nil, err
	}
	preset, err := registry.Create(cfg.Scene.Preset)
	if err != nil {
		return nil, err
	}

	factory := opts.Factory
	if factory == nil {
		factory = DefaultFactory(cfg.Physics)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		cfg:     cfg,
		factory: factory,
		logger:  logger,
		preset:  preset,
		camera:  NewCamera(cfg.Camera),
		force:   &ForceController{Strength: cfg.Force.Strength},
		time:    NewTimeSource(cfg.Driver, opts.Clock),
		mode:    mode,
		shadows: cfg.Render.Shadows,
	}

	if err := s.initPhysics(); err != nil {
		return nil, err
	}
	s.camera.Rotate(0, 0)
	s.initHUD()
	return s, nil
}

// initPhysics creates the engine, attaches the debugger, creates the scene
// and populates it.
func (s *Session) initPhysics() error {
	engine, err := s.factory(physics.SDKVersion)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	s.engine = engine

	// Debug visualisation parameters
	vis := s.cfg.Physics.Visualization
	engine.SetParameter(physics.VisualizationScale, vis.Scale)
	engine.SetParameter(physics.VisualizeCollisionShapes, boolParam(vis.CollisionShapes))
	engine.SetParameter(physics.VisualizeActorAxes, boolParam(vis.ActorAxes))

	// Remote debugger is best effort
	if dbg := s.cfg.Debugger; dbg.Enabled {
		if rd := engine.RemoteDebugger(); rd != nil {
			if err := rd.Connect(dbg.Host, dbg.Port, physics.EventEverything); err != nil {
				s.logger.Warn("remote debugger unavailable", "host", dbg.Host, "port", dbg.Port, "error", err)
			} else {
				s.logger.Info("remote debugger connected", "host", dbg.Host, "port", dbg.Port)
			}
		}
	}

	desc := physics.SceneDesc{Gravity: mgl64.Vec3(s.cfg.Physics.Gravity), SimType: physics.SimSoftware}
	if s.cfg.Physics.Hardware {
		desc.SimType = physics.SimHardware
	}
	scene, err := engine.CreateScene(desc)
	if errors.Is(err, physics.ErrHardwareUnavailable) {
		s.logger.Info("hardware scene unavailable, using software")
		desc.SimType = physics.SimSoftware
		scene, err = engine.CreateScene(desc)
	}
	if err != nil {
		s.releasePhysics()
		return fmt.Errorf("create scene: %w", err)
	}
	s.scene = scene

	actors, err := s.preset.Populate(scene, s.cfg.Scene)
	if err != nil {
		s.releasePhysics()
		return fmt.Errorf("populate %s: %w", s.preset.ID(), err)
	}
	s.actors = actors

	s.logger.Info("scene ready",
		"preset", s.preset.ID(),
		"sim", scene.SimType().String(),
		"actors", len(actors),
	)
	return nil
}

// releasePhysics releases the scene and engine. Safe on partial init.
func (s *Session) releasePhysics() {
	if s.engine != nil {
		if s.scene != nil {
			s.engine.ReleaseScene(s.scene)
		}
		if rd := s.engine.RemoteDebugger(); rd != nil && rd.Connected() {
			rd.Disconnect()
		}
		s.engine.Release()
	}
	s.engine = nil
	s.scene = nil
	s.actors = nil
	s.selected = nil
	s.debug = nil
}

func boolParam(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// initHUD shows the simulation type and the pause line.
func (s *Session) initHUD() {
	s.hud.Clear()
	label := "Software Scene"
	if s.scene != nil && s.scene.SimType() == physics.SimHardware {
		label = "Hardware Scene"
	}
	s.hud.Add(label, simTypeX, simTypeY)
	s.hud.Add("", pauseX, pauseY)
	if s.paused {
		s.hud.Set(pauseLine, PausedText, pauseX, pauseY)
	}
}

// Reset rebuilds the engine and scene and restores the camera and
// selection defaults.
func (s *Session) Reset() error {
	s.releasePhysics()
	s.force.Clear()
	if err := s.initPhysics(); err != nil {
		return err
	}
	s.camera.Reset()
	s.selected = nil
	s.time.Mark()
	s.initHUD()
	s.resets++
	return nil
}

// Close releases the engine and scene.
func (s *Session) Close() {
	s.releasePhysics()
}

// KeyPress marks k held and runs its one-shot action on the first press.
func (s *Session) KeyPress(k core.Key) {
	if s.input.Press(k) {
		s.keyPress(k)
	}
}

// KeyRelease clears k. Releasing a force key zeroes the displayed force.
func (s *Session) KeyRelease(k core.Key) {
	s.input.Release(k)
	if IsForceKey(k) {
		s.force.Clear()
	}
}

// MouseButton records the drag origin.
func (s *Session) MouseButton(x, y int) {
	s.mouseX, s.mouseY = x, y
}

// MouseMotion rotates the camera by the drag since the last mouse event.
func (s *Session) MouseMotion(x, y int) {
	dx := s.mouseX - x
	dy := s.mouseY - y
	s.camera.Rotate(float64(dx), float64(dy))
	s.mouseX, s.mouseY = x, y
}

// SetAspect updates the camera aspect ratio after a resize.
func (s *Session) SetAspect(aspect float64) {
	if aspect > 0 {
		s.camera.Aspect = aspect
	}
}

// TogglePause flips pause, updates the HUD and re-marks the time source.
func (s *Session) TogglePause() {
	s.paused = !s.paused
	if s.paused {
		s.hud.Set(pauseLine, PausedText, pauseX, pauseY)
	} else {
		s.hud.Set(pauseLine, "", pauseX, pauseY)
	}
	s.time.Mark()
}

// SelectNext advances the selection to the next selectable actor.
func (s *Session) SelectNext() {
	s.selected = NextSelectable(s.actors, s.selected)
}

// Select sets the selection if a is selectable and owned by the scene.
func (s *Session) Select(a physics.Actor) bool {
	if !IsSelectable(a) {
		return false
	}
	for _, cur := range s.actors {
		if cur == a {
			s.selected = a
			return true
		}
	}
	return false
}

// Config returns the session configuration.
func (s *Session) Config() config.Config { return s.cfg }

// Preset returns the scene preset.
func (s *Session) Preset() registry.Preset { return s.preset }

// Engine returns the live engine.
func (s *Session) Engine() physics.Engine { return s.engine }

// Scene returns the live scene.
func (s *Session) Scene() physics.Scene { return s.scene }

// Actors returns the preset actors in creation order.
func (s *Session) Actors() []physics.Actor { return s.actors }

// Camera returns the camera.
func (s *Session) Camera() *Camera { return s.camera }

// Force returns the displayed force.
func (s *Session) Force() mgl64.Vec3 { return s.force.Force() }

// Selected returns the selected actor, or nil.
func (s *Session) Selected() physics.Actor { return s.selected }

// Paused reports whether simulation is paused.
func (s *Session) Paused() bool { return s.paused }

// QuitRequested reports whether Esc was pressed or a reset failed.
func (s *Session) QuitRequested() bool { return s.quit }

// ResetErr returns the error of a failed F10 reset. The session has no
// engine afterwards and the program must end with a failure.
func (s *Session) ResetErr() error { return s.resetErr }

// Mode returns the render mode.
func (s *Session) Mode() RenderMode { return s.mode }

// Shadows reports whether shadows are drawn.
func (s *Session) Shadows() bool { return s.shadows }

// HUD returns the overlay lines.
func (s *Session) HUD() []HUDLine { return s.hud.Lines() }

// Input returns the held key set.
func (s *Session) Input() *core.InputState { return &s.input }

// Debug returns the captured debug renderable, or nil.
func (s *Session) Debug() *physics.DebugRenderable { return s.debug }
