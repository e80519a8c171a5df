package telemetry

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// #region counters

// Counters tracks the pipeline's recoverable conditions: clock
// regressions, bad anomaly values, and two buffer-full variants (tick
// snapshot eviction and excursion cap drop). Nothing in the pipeline is
// fatal; every recoverable condition is counted rather than propagated as
// an error the driver loop must handle.
type Counters struct {
	clockRegression  atomic.Int64
	badAnomalyValue  atomic.Int64
	tickBufferFull   atomic.Int64
	excursionDropped atomic.Int64

	mu   sync.Mutex
	diag []string
}

const maxDiagLines = 64

// NewCounters returns a zeroed Counters.
func NewCounters() *Counters {
	return &Counters{}
}

// RecordClockRegression logs a dt < 0 correction.
func (c *Counters) RecordClockRegression(dt float64) {
	c.clockRegression.Add(1)
	c.logf("[TELEMETRY] clock regression: dt=%.6f clamped to 0", dt)
}

// RecordBadAnomalyValue logs a NaN/negative/infinite anomaly coercion.
func (c *Counters) RecordBadAnomalyValue(raw float64) {
	c.badAnomalyValue.Add(1)
	c.logf("[TELEMETRY] bad anomaly value %v coerced to 0", raw)
}

// RecordTickBufferFull logs an oldest-tick eviction.
func (c *Counters) RecordTickBufferFull() {
	c.tickBufferFull.Add(1)
	c.logf("[TELEMETRY] tick ring buffer full; oldest snapshot evicted")
}

// RecordExcursionDropped logs a dropped excursion event past the cap.
func (c *Counters) RecordExcursionDropped() {
	c.excursionDropped.Add(1)
	c.logf("[TELEMETRY] excursion cap exceeded; newest event dropped")
}

func (c *Counters) logf(format string, args ...any) {
	log.Printf(format, args...)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.diag = append(c.diag, fmt.Sprintf(format, args...))
	if len(c.diag) > maxDiagLines {
		c.diag = c.diag[len(c.diag)-maxDiagLines:]
	}
}

// Snapshot is a value-type copy of the counters for export.
type Snapshot struct {
	ClockRegression  int64
	BadAnomalyValue  int64
	TickBufferFull   int64
	ExcursionDropped int64
	Diagnostics      []string
}

// Snapshot returns a copy of the current counter values and the most
// recent diagnostic lines.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	diag := make([]string, len(c.diag))
	copy(diag, c.diag)
	c.mu.Unlock()

	return Snapshot{
		ClockRegression:  c.clockRegression.Load(),
		BadAnomalyValue:  c.badAnomalyValue.Load(),
		TickBufferFull:   c.tickBufferFull.Load(),
		ExcursionDropped: c.excursionDropped.Load(),
		Diagnostics:      diag,
	}
}

// #endregion counters
