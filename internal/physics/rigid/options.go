// Package rigid is an in-process rigid-body engine implementing the physics
// contract. Steps run on a worker goroutine between Simulate and
// FetchResults; hardware scenes integrate bodies across parallel workers.
package rigid

import (
	"runtime"

	"github.com/vovakirdan/tui-physlab/internal/physics"
)

// Options configures the engine.
type Options struct {
	Version       int     // SDK version the caller was built against
	Workers       int     // parallel integration workers; <2 disables hardware scenes
	Substeps      int     // integration substeps per Simulate
	SkinWidth     float64 // contact depth at which a body rests on a plane
	Friction      float64 // Coulomb coefficient for plane contacts
	SleepVelocity float64 // speed below which a body starts to fall asleep
	SleepTime     float64 // seconds below SleepVelocity before sleeping
}

// DefaultOptions returns the options used by physlab.
func DefaultOptions() Options {
	return Options{
		Version:       physics.SDKVersion,
		Workers:       runtime.NumCPU(),
		Substeps:      4,
		SkinWidth:     0.05,
		Friction:      0.5,
		SleepVelocity: 0.05,
		SleepTime:     0.5,
	}
}

// withDefaults fills zero values that would make the engine unusable.
func (o Options) withDefaults() Options {
	if o.Substeps <= 0 {
		o.Substeps = 1
	}
	if o.SkinWidth < 0 {
		o.SkinWidth = 0
	}
	if o.Friction < 0 {
		o.Friction = 0
	}
	return o
}

// Factory returns a physics.Factory creating engines with opts.
func Factory(opts Options) physics.Factory {
	return func(version int) (physics.Engine, error) {
		o := opts
		o.Version = version
		return New(o)
	}
}
