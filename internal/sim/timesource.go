package sim

import (
	"time"

	"github.com/vovakirdan/tui-physlab/internal/config"
)

// TimeSource supplies the step delta for each frame.
type TimeSource interface {
	// Next returns the delta for the next step in seconds.
	Next() float64
	// Mark restarts measurement from now. Called when pause toggles.
	Mark()
}

// FixedStep always advances by Dt.
type FixedStep struct {
	Dt float64
}

// Next returns Dt.
func (f FixedStep) Next() float64 { return f.Dt }

// Mark is a no-op.
func (f FixedStep) Mark() {}

// WallClock measures the real time elapsed between calls.
type WallClock struct {
	// MaxDelta clamps long frames, e.g. after a stall. Zero disables the clamp.
	MaxDelta float64

	now  func() time.Time
	last time.Time
}

// NewWallClock creates a wall clock. A nil now uses time.Now.
func NewWallClock(maxDelta float64, now func() time.Time) *WallClock {
	if now == nil {
		now = time.Now
	}
	return &WallClock{MaxDelta: maxDelta, now: now}
}

// Next returns the seconds since the previous call or Mark.
// The first call without a Mark returns 0.
func (w *WallClock) Next() float64 {
	now := w.now()
	if w.last.IsZero() {
		w.last = now
		return 0
	}
	dt := now.Sub(w.last).Seconds()
	w.last = now
	if dt < 0 {
		return 0
	}
	if w.MaxDelta > 0 && dt > w.MaxDelta {
		return w.MaxDelta
	}
	return dt
}

// Mark restarts measurement from now.
func (w *WallClock) Mark() {
	w.last = w.now()
}

// NewTimeSource builds the time source selected by the driver config.
func NewTimeSource(cfg config.DriverConfig, now func() time.Time) TimeSource {
	if config.IsRealtimePreset(config.TimestepPreset(cfg.Timestep)) {
		return NewWallClock(cfg.MaxDelta, now)
	}
	return FixedStep{Dt: cfg.FixedDt}
}
