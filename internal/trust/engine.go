package trust

import (
	"math"
	"sync"

	"github.com/Indra-jith/failure-aware-vision/internal/signal"
	"github.com/Indra-jith/failure-aware-vision/internal/telemetry"
)

// #region engine

// Engine is the stateful heart of the supervisor. It is the sole mutator of
// its ReliabilityState, guarded by a single mutex held only for the tick's
// duration.
type Engine struct {
	mu       sync.Mutex
	cfg      Config
	state    ReliabilityState
	counters *telemetry.Counters

	excursion      *excursionInProgress
	contradictions []contradictionSample
}

// NewEngine constructs an Engine with the given config. counters may be
// nil, in which case recoverable conditions are silently uncounted.
func NewEngine(cfg Config, counters *telemetry.Counters) *Engine {
	return &Engine{
		cfg:      cfg,
		state:    initialState(cfg),
		counters: counters,
	}
}

// Reset reinitializes the engine to its default state.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = initialState(e.cfg)
	e.excursion = nil
	e.contradictions = nil
}

// State returns a copy of the current reliability state.
func (e *Engine) State() ReliabilityState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// #endregion engine

// #region tick

// Tick advances the engine by one frame's worth of (timestamp, status,
// anomaly) and returns the resulting snapshot. Tick never fails on the
// value stream: clock regressions and bad anomaly values are coerced, not
// rejected.
func (e *Engine) Tick(timestamp float64, status signal.VisionStatus, anomaly float64) TickSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	dt := e.computeDT(timestamp)
	anomaly = e.coerceAnomaly(anomaly)

	prevReliability := e.state.Reliability
	e.applyBaseAndAnomalyTerms(status, anomaly, dt)
	e.state.Reliability = clamp01f(e.state.Reliability)

	e.updateVelocity(prevReliability, dt)

	var buf []contradictionSample
	buf, e.state.ContradictionDetected = updateContradiction(e.contradictions, e.cfg, status, anomaly)
	e.contradictions = buf
	if e.state.ContradictionDetected {
		e.state.ContradictionCount++
	}

	policyChanged := e.derivePolicy(timestamp)
	declining := e.state.Policy == PolicyAllowed && e.state.TrustVelocity < -e.cfg.DecliningEpsilon

	closedExcursion := e.trackExcursion(timestamp, status, dt, anomaly)

	e.state.TickCount++
	e.state.LastTimestamp = timestamp
	e.state.Initialized = true

	return TickSnapshot{
		Timestamp:             timestamp,
		TickCount:             e.state.TickCount,
		Status:                status,
		Reliability:           e.state.Reliability,
		Anomaly:               anomaly,
		AnomalyIntegral:       e.state.AnomalyIntegral,
		Policy:                e.state.Policy,
		PreviousPolicy:        e.state.PreviousPolicy,
		Declining:             declining,
		TrustVelocity:         e.state.TrustVelocity,
		RecoveryDebt:          e.state.RecoveryDebt,
		RecoveryCoeff:         e.state.RecoveryCoeff,
		MLInfluenceActive:     status == signal.StatusOK && e.state.AnomalyIntegral > 0,
		ContradictionDetected: e.state.ContradictionDetected,
		ContradictionCount:    e.state.ContradictionCount,
		PolicyChanged:         policyChanged,
		ClosedExcursion:       closedExcursion,
	}
}

// computeDT clamps dt to [0, DTMax], pins it to 0 on the very first tick,
// and counts clock regressions. A gap longer than DTMax is treated as
// DTMax of elapsed dynamics, with no catch-up.
func (e *Engine) computeDT(timestamp float64) float64 {
	if !e.state.Initialized {
		return 0
	}
	dt := timestamp - e.state.LastTimestamp
	if dt < 0 {
		if e.counters != nil {
			e.counters.RecordClockRegression(dt)
		}
		dt = 0
	}
	if dt > e.cfg.DTMax {
		dt = e.cfg.DTMax
	}
	return dt
}

// coerceAnomaly substitutes 0 for NaN, infinite, or negative scores.
func (e *Engine) coerceAnomaly(anomaly float64) float64 {
	if math.IsNaN(anomaly) || math.IsInf(anomaly, 0) || anomaly < 0 {
		if e.counters != nil {
			e.counters.RecordBadAnomalyValue(anomaly)
		}
		return 0
	}
	return anomaly
}

// applyBaseAndAnomalyTerms applies the per-status base rate and, under OK
// only, the leaky anomaly integral. A non-OK status hard-resets the
// integral, so ML influence can only reduce reliability and never survives
// an explicit failure.
func (e *Engine) applyBaseAndAnomalyTerms(status signal.VisionStatus, anomaly, dt float64) {
	switch status {
	case signal.StatusOK:
		e.state.RecoveryDebt = math.Max(0, e.state.RecoveryDebt-e.cfg.RecoveryDebtDrain*dt)
		e.state.RecoveryCoeff = math.Max(e.cfg.RecoveryMinCoeff, e.cfg.RRecover-e.cfg.RecoveryDebtGain*e.state.RecoveryDebt)
		e.state.Reliability += e.state.RecoveryCoeff * dt

		e.state.AnomalyIntegral += anomaly * dt
		e.state.AnomalyIntegral -= e.cfg.Leak * e.state.AnomalyIntegral * dt
		if e.state.AnomalyIntegral < 0 {
			e.state.AnomalyIntegral = 0
		}
		e.state.Reliability -= e.cfg.Gain * e.state.AnomalyIntegral * dt

	case signal.StatusFrozen:
		e.accrueDebt(dt)
		e.state.Reliability -= e.cfg.RFrozen * dt
		e.state.AnomalyIntegral = 0

	case signal.StatusBlank:
		e.accrueDebt(dt)
		e.state.Reliability -= e.cfg.RBlank * dt
		e.state.AnomalyIntegral = 0

	case signal.StatusCorrupted:
		e.accrueDebt(dt)
		e.state.Reliability -= e.cfg.RCorrupt * dt
		e.state.AnomalyIntegral = 0
	}
}

func (e *Engine) accrueDebt(dt float64) {
	debtRate := math.Max(0, e.cfg.AllowedThreshold-e.state.Reliability)
	e.state.RecoveryDebt = math.Min(e.cfg.RecoveryDebtMax, e.state.RecoveryDebt+debtRate*dt)
}

// updateVelocity maintains an EMA-smoothed trust velocity; an
// instantaneous derivative is too noisy at 30 Hz to compare against a
// fixed epsilon.
func (e *Engine) updateVelocity(prevReliability, dt float64) {
	denom := dt
	if denom < 0.001 {
		denom = 0.001
	}
	raw := (e.state.Reliability - prevReliability) / denom
	e.state.TrustVelocity = e.cfg.VelocityEMAAlpha*raw + (1-e.cfg.VelocityEMAAlpha)*e.state.TrustVelocity
}

// derivePolicy maps clamped reliability onto the policy gate: sharp
// thresholds, no hysteresis, edge-triggered PolicyChanged emission.
func (e *Engine) derivePolicy(timestamp float64) *PolicyChangedEvent {
	prevPolicy := e.state.Policy

	var newPolicy Policy
	switch {
	case e.state.Reliability >= e.cfg.AllowedThreshold:
		newPolicy = PolicyAllowed
	case e.state.Reliability >= e.cfg.BlockedThreshold:
		newPolicy = PolicyDegraded
	default:
		newPolicy = PolicyBlocked
	}

	e.state.PreviousPolicy = prevPolicy
	e.state.Policy = newPolicy

	if newPolicy == prevPolicy {
		return nil
	}
	return &PolicyChangedEvent{Previous: prevPolicy, Current: newPolicy, Timestamp: timestamp}
}

// trackExcursion opens an excursion when reliability first drops below the
// open threshold and closes it once reliability recovers past the higher
// close threshold; the asymmetry prevents flapping.
func (e *Engine) trackExcursion(timestamp float64, status signal.VisionStatus, dt, anomaly float64) *ExcursionEvent {
	if e.excursion == nil && e.state.Reliability < e.cfg.ExcursionOpenThreshold {
		e.excursion = openExcursion(timestamp, e.state.Reliability)
	}
	if e.excursion == nil {
		return nil
	}

	e.excursion.accumulate(status, dt, e.state.Reliability, anomaly)

	if e.state.Reliability >= e.cfg.ExcursionCloseThreshold {
		closed := e.excursion.close(timestamp)
		e.excursion = nil
		return &closed
	}
	return nil
}

func clamp01f(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// #endregion tick
