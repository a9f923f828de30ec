package config

import (
	"fmt"
	"strings"
)

// TimestepPreset names how the driver measures the step delta.
type TimestepPreset string

const (
	TimestepFixed    TimestepPreset = "fixed"
	TimestepCoarse   TimestepPreset = "coarse"
	TimestepRealtime TimestepPreset = "realtime"
)

// TimestepPresets lists every preset in display order.
var TimestepPresets = []TimestepPreset{TimestepFixed, TimestepCoarse, TimestepRealtime}

// ParseTimestepPreset parses a preset name, case-insensitively.
func ParseTimestepPreset(s string) (TimestepPreset, error) {
	p := TimestepPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range TimestepPresets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown timestep %q (want fixed, coarse or realtime)", ErrInvalid, s)
}

// DtForPreset returns the fixed step of a preset, or 0 for realtime.
func DtForPreset(p TimestepPreset) float64 {
	switch p {
	case TimestepFixed:
		return 1.0 / 60.0
	case TimestepCoarse:
		return 1.0 / 10.0
	default:
		return 0
	}
}

// IsRealtimePreset returns true if the preset measures wall-clock time.
func IsRealtimePreset(p TimestepPreset) bool {
	return p == TimestepRealtime
}

// ApplyTimestepPreset modifies the driver config for a preset.
// Realtime keeps fixed_dt as the step used before the first measurement.
func ApplyTimestepPreset(cfg *Config, p TimestepPreset) {
	cfg.Driver.Timestep = string(p)
	if dt := DtForPreset(p); dt > 0 {
		cfg.Driver.FixedDt = dt
	}
}

// RecordedDt returns the step recorded for a run: fixed_dt, or 0 when the
// step follows the wall clock.
func (d DriverConfig) RecordedDt() float64 {
	if IsRealtimePreset(TimestepPreset(d.Timestep)) {
		return 0
	}
	return d.FixedDt
}
