package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-physlab/internal/config"
	"github.com/vovakirdan/tui-physlab/internal/storage"
)

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig(overrides{
		scene:    "stack",
		fps:      30,
		timestep: "coarse",
		dbPath:   "/tmp/runs.db",
		record:   true,
	})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Scene.Preset != "stack" {
		t.Errorf("preset = %q, want stack", cfg.Scene.Preset)
	}
	if cfg.Driver.TickRate != 30 {
		t.Errorf("tick rate = %d, want 30", cfg.Driver.TickRate)
	}
	if cfg.Driver.Timestep != "coarse" || cfg.Driver.FixedDt != 0.1 {
		t.Errorf("driver = %+v, want coarse 0.1", cfg.Driver)
	}
	if !cfg.Recording.Enabled || cfg.Recording.DB != "/tmp/runs.db" {
		t.Errorf("recording = %+v", cfg.Recording)
	}
}

func TestLoadConfigRejectsBadTimestep(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := loadConfig(overrides{timestep: "sometimes"})
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("loadConfig() error = %v, want ErrInvalid", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	path := filepath.Join(dir, "physlab.yaml")
	if err := os.WriteFile(path, []byte("scene:\n  preset: basic\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(overrides{configPath: path})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Scene.Preset != "basic" {
		t.Errorf("preset = %q, want basic", cfg.Scene.Preset)
	}
	if cfg.Force.Strength != 20000 {
		t.Errorf("unset fields should keep defaults, strength = %v", cfg.Force.Strength)
	}
}

func TestFlagOverridesFromEnv(t *testing.T) {
	t.Setenv("PHYSLAB_CONFIG", "/etc/physlab.yaml")
	t.Setenv("PHYSLAB_DB", "/var/lib/physlab/runs.db")

	o := flagOverrides()
	if o.configPath != "/etc/physlab.yaml" || o.dbPath != "/var/lib/physlab/runs.db" {
		t.Errorf("overrides = %+v", o)
	}
}

func TestTraceRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	id, err := store.CreateRun("workshop", "fixed", 1.0/60)
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	var samples []storage.Sample
	for i := 1; i <= 30; i++ {
		samples = append(samples, storage.Sample{
			Frame:    int64(i),
			Actor:    "box",
			Position: mgl64.Vec3{0, 3.5 - 0.1*float64(i), 0},
		})
	}
	if err := store.AppendSamples(id, samples); err != nil {
		t.Fatalf("AppendSamples: %v", err)
	}

	out, err := traceRun(store, id, "", 40, 8)
	if err != nil {
		t.Fatalf("traceRun: %v", err)
	}
	if !strings.Contains(out, "workshop: box height") {
		t.Errorf("caption missing from %q", out)
	}

	if _, err := traceRun(store, id+1, "", 40, 8); err == nil {
		t.Error("missing run should fail")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name     string
		runErr   error
		resetErr error
		want     int
	}{
		{"clean quit", nil, nil, 0},
		{"reset failed", nil, errors.New("device lost"), 1},
		{"program failed", errors.New("tty closed"), nil, 1},
	}
	for _, tt := range tests {
		if got := exitCode(tt.runErr, tt.resetErr); got != tt.want {
			t.Errorf("%s: exitCode() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
