package config

import (
	_ "embed"
)

//go:embed defaults/physlab.yaml
var defaultYAML []byte

// DefaultConfig returns the default physlab configuration.
func DefaultConfig() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:       Vec3{0, -9.8, 0},
			Hardware:      true,
			Workers:       0,
			Substeps:      4,
			SkinWidth:     0.05,
			Friction:      0.5,
			SleepVelocity: 0.05,
			SleepTime:     0.5,
			Visualization: VisualizationConfig{
				Scale:           1,
				CollisionShapes: true,
				ActorAxes:       true,
			},
		},
		Scene: SceneConfig{
			Preset: "workshop",
			Box: BoxConfig{
				HalfExtents: Vec3{0.5, 0.5, 0.5},
				Density:     10,
				Height:      3.5,
			},
			Basic: BasicConfig{
				Height:       0.45,
				InitialForce: Vec3{1000, 1000, 1000},
				StopAtX:      1,
			},
			Extras: []ExtraConfig{
				{Name: "box2", Kind: KindBox, HalfExtents: Vec3{0.5, 0.5, 0.5}, Density: 10, Position: Vec3{2, 5, 0}},
				{Name: "ball", Kind: KindSphere, Radius: 0.5, Density: 10, Position: Vec3{-2, 4, 0}},
				{Name: "sensor", Kind: KindBox, HalfExtents: Vec3{1, 0.25, 1}, Density: 10, Position: Vec3{0, 1.5, 3}, Trigger: true},
				{Name: "crate", Kind: KindBox, HalfExtents: Vec3{1, 1, 1}, Position: Vec3{4, 1, 2}, Static: true},
			},
		},
		Camera: CameraConfig{
			Position:            Vec3{0, 5, -15},
			Forward:             Vec3{0, 0, 1},
			Right:               Vec3{-1, 0, 0},
			Speed:               10,
			FovY:                60,
			MouseDegreesPerCell: 0.3490658503988659, // pi * 20 / 180
		},
		Force: ForceConfig{
			Strength:       20000,
			ArrowThreshold: 0.1,
			ArrowLength:    2,
		},
		Driver: DriverConfig{
			Timestep: string(TimestepFixed),
			FixedDt:  1.0 / 60.0,
			MaxDelta: 0.25,
			TickRate: 60,
		},
		Input: InputConfig{
			ReleaseAfterMs: 550,
		},
		Render: RenderConfig{
			Mode:    RenderSolid,
			Shadows: true,
		},
		Debugger: DebuggerConfig{
			Enabled: false,
			Host:    "localhost",
			Port:    5425,
		},
		Recording: RecordingConfig{
			Enabled:    false,
			DB:         "~/.physlab/runs.db",
			FlushEvery: 30,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.physlab/physlab.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
