package journal

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
	"github.com/vovakirdan/lane-dodge/internal/registry"
)

// DefaultFlushEvery is the number of buffered frames written per transaction.
const DefaultFlushEvery = 120

// Recorder buffers the frames of one run and writes them in batches.
// It runs on the caller's goroutine; nothing is written in the background.
type Recorder struct {
	store      *Store
	runID      uuid.UUID
	buf        []Frame
	next       int
	flushEvery int
	finished   bool
}

// NewRecorder begins a run in the store and returns a recorder for it.
func NewRecorder(store *Store, gameID string, seed int64, cfg config.DodgeConfig) (*Recorder, error) {
	id, err := store.BeginRun(gameID, seed, cfg)
	if err != nil {
		return nil, err
	}
	return &Recorder{
		store:      store,
		runID:      id,
		buf:        make([]Frame, 0, DefaultFlushEvery),
		flushEvery: DefaultFlushEvery,
	}, nil
}

// RunID returns the journal ID of the run being recorded.
func (r *Recorder) RunID() uuid.UUID {
	return r.runID
}

// Record appends one frame. The input is copied.
func (r *Recorder) Record(in core.InputFrame, elapsed time.Duration) error {
	if r.finished {
		return fmt.Errorf("journal: run %s already finished", r.runID)
	}

	copied := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			copied.Set(a)
		}
	}
	r.buf = append(r.buf, Frame{Index: r.next, Elapsed: elapsed, Input: copied})
	r.next++

	if len(r.buf) >= r.flushEvery {
		return r.Flush()
	}
	return nil
}

// Flush writes buffered frames.
func (r *Recorder) Flush() error {
	if err := r.store.AppendFrames(r.runID, r.buf); err != nil {
		return err
	}
	r.buf = r.buf[:0]
	return nil
}

// Finish flushes remaining frames and stores the final score.
// Calling it more than once is a no-op.
func (r *Recorder) Finish(score int) error {
	if r.finished {
		return nil
	}
	if err := r.Flush(); err != nil {
		return err
	}
	r.finished = true
	return r.store.FinishRun(r.runID, score)
}

// Replay resets g with seed and feeds it the recorded frames, returning the
// state after the last frame.
func Replay(g registry.Game, runtime core.RuntimeConfig, frames []Frame) (core.GameState, error) {
	if err := g.Reset(runtime); err != nil {
		return core.GameState{}, fmt.Errorf("journal: replay reset: %w", err)
	}

	state := g.State()
	for _, f := range frames {
		state = g.Step(f.Input, f.Elapsed).State
	}
	return state, nil
}
