// Package config provides YAML-based configuration loading and timestep
// presets for physlab.
package config

import (
	"errors"
	"fmt"
)

// Vec3 is a YAML triple such as [0, -9.8, 0].
type Vec3 [3]float64

// Config is the complete physlab configuration.
type Config struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Scene     SceneConfig     `yaml:"scene"`
	Camera    CameraConfig    `yaml:"camera"`
	Force     ForceConfig     `yaml:"force"`
	Driver    DriverConfig    `yaml:"driver"`
	Input     InputConfig     `yaml:"input"`
	Render    RenderConfig    `yaml:"render"`
	Debugger  DebuggerConfig  `yaml:"debugger"`
	Recording RecordingConfig `yaml:"recording"`
	Log       LogConfig       `yaml:"log"`
}

// PhysicsConfig configures the engine and scene creation.
type PhysicsConfig struct {
	Gravity       Vec3                `yaml:"gravity"`
	Hardware      bool                `yaml:"hardware"` // try a hardware scene first
	Workers       int                 `yaml:"workers"`  // 0 = one per CPU
	Substeps      int                 `yaml:"substeps"`
	SkinWidth     float64             `yaml:"skin_width"`
	Friction      float64             `yaml:"friction"`
	SleepVelocity float64             `yaml:"sleep_velocity"`
	SleepTime     float64             `yaml:"sleep_time"`
	Visualization VisualizationConfig `yaml:"visualization"`
}

// VisualizationConfig sets the engine's debug visualisation parameters.
type VisualizationConfig struct {
	Scale           float64 `yaml:"scale"`
	CollisionShapes bool    `yaml:"collision_shapes"`
	ActorAxes       bool    `yaml:"actor_axes"`
}

// SceneConfig selects and parameterises the scene preset.
type SceneConfig struct {
	Preset string        `yaml:"preset"`
	Box    BoxConfig     `yaml:"box"`
	Basic  BasicConfig   `yaml:"basic"`
	Extras []ExtraConfig `yaml:"extras"`
}

// BoxConfig describes the workshop box.
type BoxConfig struct {
	HalfExtents Vec3    `yaml:"half_extents"`
	Density     float64 `yaml:"density"`
	Height      float64 `yaml:"height"` // initial height of the box centre
}

// BasicConfig holds the parameters of the basic preset.
type BasicConfig struct {
	Height       float64 `yaml:"height"`
	InitialForce Vec3    `yaml:"initial_force"`
	StopAtX      float64 `yaml:"stop_at_x"`
}

// ExtraConfig describes an additional actor of the stack preset.
type ExtraConfig struct {
	Name        string  `yaml:"name"`
	Kind        string  `yaml:"kind"` // box or sphere
	HalfExtents Vec3    `yaml:"half_extents"`
	Radius      float64 `yaml:"radius"`
	Density     float64 `yaml:"density"`
	Position    Vec3    `yaml:"position"`
	Static      bool    `yaml:"static"`
	Trigger     bool    `yaml:"trigger"`
}

// CameraConfig holds the camera defaults restored on reset.
type CameraConfig struct {
	Position            Vec3    `yaml:"position"`
	Forward             Vec3    `yaml:"forward"`
	Right               Vec3    `yaml:"right"`
	Speed               float64 `yaml:"speed"`
	FovY                float64 `yaml:"fov_y"` // degrees
	MouseDegreesPerCell float64 `yaml:"mouse_degrees_per_cell"`
}

// ForceConfig configures force application and the force arrow.
type ForceConfig struct {
	Strength       float64 `yaml:"strength"`
	ArrowThreshold float64 `yaml:"arrow_threshold"`
	ArrowLength    float64 `yaml:"arrow_length"`
}

// DriverConfig configures the driver loop.
type DriverConfig struct {
	Timestep string  `yaml:"timestep"` // fixed, coarse or realtime
	FixedDt  float64 `yaml:"fixed_dt"`
	MaxDelta float64 `yaml:"max_delta"` // wall clock clamp
	TickRate int     `yaml:"tick_rate"` // frames per second
}

// InputConfig configures key handling.
type InputConfig struct {
	// ReleaseAfterMs is how long a held key survives without a repeat
	// before it is treated as released. Terminals report no key-up events.
	ReleaseAfterMs int `yaml:"release_after_ms"`
}

// RenderConfig holds the initial render state.
type RenderConfig struct {
	Mode    string `yaml:"mode"` // solid, wireframe or both
	Shadows bool   `yaml:"shadows"`
}

// DebuggerConfig configures the remote visual debugger link.
type DebuggerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// RecordingConfig configures run recording.
type RecordingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	DB         string `yaml:"db"`
	FlushEvery int    `yaml:"flush_every"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // used by the interactive program
}

// Render modes.
const (
	RenderSolid     = "solid"
	RenderWireframe = "wireframe"
	RenderBoth      = "both"
)

// Shape kinds accepted in extras.
const (
	KindBox    = "box"
	KindSphere = "sphere"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks the configuration for values the simulation cannot run with.
func (c Config) Validate() error {
	if _, err := ParseTimestepPreset(c.Driver.Timestep); err != nil {
		return err
	}
	if c.Driver.FixedDt <= 0 {
		return fmt.Errorf("%w: driver.fixed_dt must be positive, got %v", ErrInvalid, c.Driver.FixedDt)
	}
	if c.Driver.TickRate <= 0 {
		return fmt.Errorf("%w: driver.tick_rate must be positive, got %d", ErrInvalid, c.Driver.TickRate)
	}
	if c.Driver.MaxDelta < 0 {
		return fmt.Errorf("%w: driver.max_delta must not be negative", ErrInvalid)
	}
	if c.Force.Strength <= 0 {
		return fmt.Errorf("%w: force.strength must be positive, got %v", ErrInvalid, c.Force.Strength)
	}
	switch c.Render.Mode {
	case RenderSolid, RenderWireframe, RenderBoth:
	default:
		return fmt.Errorf("%w: unknown render.mode %q", ErrInvalid, c.Render.Mode)
	}
	if c.Scene.Preset == "" {
		return fmt.Errorf("%w: scene.preset is empty", ErrInvalid)
	}
	if c.Scene.Box.Density <= 0 {
		return fmt.Errorf("%w: scene.box.density must be positive", ErrInvalid)
	}
	for i, e := range c.Scene.Extras {
		switch e.Kind {
		case KindBox, KindSphere:
		default:
			return fmt.Errorf("%w: scene.extras[%d]: unknown kind %q", ErrInvalid, i, e.Kind)
		}
	}
	if c.Physics.Substeps <= 0 {
		return fmt.Errorf("%w: physics.substeps must be positive", ErrInvalid)
	}
	if c.Debugger.Enabled && (c.Debugger.Port <= 0 || c.Debugger.Port > 65535) {
		return fmt.Errorf("%w: debugger.port %d out of range", ErrInvalid, c.Debugger.Port)
	}
	if c.Recording.FlushEvery < 0 {
		return fmt.Errorf("%w: recording.flush_every must not be negative", ErrInvalid)
	}
	return nil
}
