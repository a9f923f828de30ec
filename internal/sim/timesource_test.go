package sim

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-physlab/internal/config"
)

func TestFixedStep(t *testing.T) {
	ts := FixedStep{Dt: 0.1}
	ts.Mark()
	for i := 0; i < 3; i++ {
		if got := ts.Next(); got != 0.1 {
			t.Fatalf("Next() = %v, want 0.1", got)
		}
	}
}

func TestWallClock(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }
	wc := NewWallClock(0.25, clock)

	if got := wc.Next(); got != 0 {
		t.Errorf("first Next() without Mark = %v, want 0", got)
	}

	now = now.Add(20 * time.Millisecond)
	if got := wc.Next(); got < 0.0199 || got > 0.0201 {
		t.Errorf("Next() = %v, want 0.02", got)
	}

	// Long stalls are clamped
	now = now.Add(3 * time.Second)
	if got := wc.Next(); got != 0.25 {
		t.Errorf("clamped Next() = %v, want 0.25", got)
	}

	// Mark discards time spent paused
	now = now.Add(10 * time.Second)
	wc.Mark()
	now = now.Add(5 * time.Millisecond)
	if got := wc.Next(); got < 0.0049 || got > 0.0051 {
		t.Errorf("Next() after Mark = %v, want 0.005", got)
	}
}

func TestNewTimeSource(t *testing.T) {
	cfg := config.DefaultConfig().Driver
	if _, ok := NewTimeSource(cfg, nil).(FixedStep); !ok {
		t.Error("fixed preset should give a FixedStep")
	}
	cfg.Timestep = string(config.TimestepRealtime)
	if _, ok := NewTimeSource(cfg, nil).(*WallClock); !ok {
		t.Error("realtime preset should give a WallClock")
	}
}
