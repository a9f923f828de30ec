package storage

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-physlab/internal/sim"
)

var _ sim.FrameObserver = (*Recorder)(nil)

// Recorder stores the dynamic actors of every reported frame. Samples are
// buffered and written every flushEvery frames. A write failure is logged
// and stops recording; the simulation is not affected.
//
// Recorder is not safe for concurrent use.
type Recorder struct {
	store      *Store
	runID      int64
	flushEvery int
	logger     *log.Logger

	buf     []Sample
	frames  int64
	stopped bool
}

// StartRecorder creates a run and returns a recorder writing into it.
func StartRecorder(store *Store, preset, timestep string, dt float64, flushEvery int, logger *log.Logger) (*Recorder, error) {
	id, err := store.CreateRun(preset, timestep, dt)
	if err != nil {
		return nil, err
	}
	if flushEvery <= 0 {
		flushEvery = 1
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{
		store:      store,
		runID:      id,
		flushEvery: flushEvery,
		logger:     logger,
	}, nil
}

// RunID returns the run being recorded.
func (r *Recorder) RunID() int64 { return r.runID }

// Stopped reports whether recording gave up after an error.
func (r *Recorder) Stopped() bool { return r.stopped }

// ObserveFrame buffers the frame and flushes when the batch is full.
func (r *Recorder) ObserveFrame(f sim.FrameReport) {
	if r.stopped {
		return
	}
	r.frames = int64(f.Frame)
	for _, a := range f.Actors {
		if !a.Dynamic {
			continue
		}
		r.buf = append(r.buf, Sample{
			Frame:    int64(f.Frame),
			SimTime:  f.SimTime,
			Actor:    a.Name,
			Position: a.Position,
			Velocity: a.Velocity,
		})
	}
	if f.Frame%uint64(r.flushEvery) == 0 {
		r.flush()
	}
}

func (r *Recorder) flush() {
	err := r.store.AppendSamples(r.runID, r.buf)
	r.buf = r.buf[:0]
	if err != nil {
		r.logger.Error("recording stopped", "run", r.runID, "error", err)
		r.stopped = true
	}
}

// Close flushes buffered samples and records the frame count.
func (r *Recorder) Close() error {
	if !r.stopped {
		r.flush()
	}
	return r.store.FinishRun(r.runID, r.frames)
}
