package recorder

import (
	"sync"

	"github.com/Indra-jith/failure-aware-vision/internal/telemetry"
	"github.com/Indra-jith/failure-aware-vision/internal/trust"
)

// #region recorder-struct

// Recorder is an append-only sink: it accepts every TickSnapshot and
// ExcursionEvent the engine produces and exposes them for export as two
// typed sequences. Record never blocks the engine: the tick ring
// overwrites its oldest entry on overflow rather than growing.
type Recorder struct {
	mu  sync.Mutex
	cfg Config

	ticks    []trust.TickSnapshot
	tickHead int
	tickSize int

	excursions []trust.ExcursionEvent

	counters *telemetry.Counters
}

// NewRecorder constructs a Recorder with the given buffering config.
// counters may be nil, in which case BufferFull conditions go uncounted.
func NewRecorder(cfg Config, counters *telemetry.Counters) *Recorder {
	return &Recorder{
		cfg:      cfg,
		ticks:    make([]trust.TickSnapshot, cfg.TickCapacity),
		counters: counters,
	}
}

// #endregion recorder-struct

// #region record

// RecordTick appends a tick snapshot, evicting the oldest entry once the
// ring is full.
func (r *Recorder) RecordTick(snap trust.TickSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cap := len(r.ticks)
	if cap == 0 {
		return
	}

	tail := (r.tickHead + r.tickSize) % cap
	if r.tickSize < cap {
		r.ticks[tail] = snap
		r.tickSize++
		return
	}

	r.ticks[r.tickHead] = snap
	r.tickHead = (r.tickHead + 1) % cap
	if r.counters != nil {
		r.counters.RecordTickBufferFull()
	}
}

// RecordExcursion appends a closed excursion event, dropping the newest
// event once the cap is reached.
func (r *Recorder) RecordExcursion(ev trust.ExcursionEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.excursions) >= r.cfg.ExcursionCapacity {
		if r.counters != nil {
			r.counters.RecordExcursionDropped()
		}
		return
	}
	r.excursions = append(r.excursions, ev)
}

// Ingest folds a TickSnapshot's recorder-relevant events into the buffers
// in one call: the tick itself, and, if present, a closed excursion.
func (r *Recorder) Ingest(snap trust.TickSnapshot) {
	r.RecordTick(snap)
	if snap.ClosedExcursion != nil {
		r.RecordExcursion(*snap.ClosedExcursion)
	}
}

// #endregion record

// #region export

// Ticks returns a copy-on-read snapshot of the buffered tick log in
// insertion order, so an exporter never observes engine writes mid-copy.
func (r *Recorder) Ticks() []trust.TickSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]trust.TickSnapshot, r.tickSize)
	cap := len(r.ticks)
	for i := 0; i < r.tickSize; i++ {
		out[i] = r.ticks[(r.tickHead+i)%cap]
	}
	return out
}

// Excursions returns a copy-on-read snapshot of the closed excursion log.
func (r *Recorder) Excursions() []trust.ExcursionEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]trust.ExcursionEvent, len(r.excursions))
	copy(out, r.excursions)
	return out
}

// #endregion export

// #region reset

// Reset clears both in-memory buffers.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ticks = make([]trust.TickSnapshot, r.cfg.TickCapacity)
	r.tickHead = 0
	r.tickSize = 0
	r.excursions = nil
}

// #endregion reset
