package replay

import (
	"github.com/Indra-jith/failure-aware-vision/internal/signal"
	"github.com/Indra-jith/failure-aware-vision/internal/telemetry"
	"github.com/Indra-jith/failure-aware-vision/internal/trust"
)

// #region types

// TickInput is a single recorded (timestamp, status, anomaly) triple.
type TickInput struct {
	Timestamp float64
	Status    signal.VisionStatus
	Anomaly   float64
}

// RunResult captures the outcome of replaying a tick sequence through a
// bare trust.Engine. No analyzer or anomaly source is involved, since a
// fixture already supplies their output directly.
type RunResult struct {
	Snapshots  []trust.TickSnapshot
	Excursions []trust.ExcursionEvent
	Final      trust.ReliabilityState
	Telemetry  telemetry.Snapshot
}

// #endregion types

// #region run

// Run replays ticks through a fresh Engine constructed with cfg and
// returns every snapshot plus the closed excursions along the way. Two
// independent calls to Run with the same cfg and ticks produce
// byte-identical tick CSVs because the engine's dynamics are a pure
// function of (timestamp, status, anomaly) and cfg.
func Run(cfg trust.Config, ticks []TickInput) RunResult {
	counters := telemetry.NewCounters()
	engine := trust.NewEngine(cfg, counters)

	result := RunResult{
		Snapshots: make([]trust.TickSnapshot, 0, len(ticks)),
	}

	for _, in := range ticks {
		snap := engine.Tick(in.Timestamp, in.Status, in.Anomaly)
		result.Snapshots = append(result.Snapshots, snap)
		if snap.ClosedExcursion != nil {
			result.Excursions = append(result.Excursions, *snap.ClosedExcursion)
		}
	}

	result.Final = engine.State()
	result.Telemetry = counters.Snapshot()
	return result
}

// #endregion run

// #region summary

// Summary aggregates a run's outcome for comparison against a fixture's
// expected results.
type Summary struct {
	FinalPolicy       trust.Policy
	FinalReliability  float64
	ExcursionCount    int
	DominantCauses    []signal.VisionStatus
	PolicyTransitions int
}

// Summarize reduces a RunResult to the fields a fixture's expected block
// asserts against.
func Summarize(r RunResult) Summary {
	s := Summary{
		ExcursionCount: len(r.Excursions),
		FinalPolicy:    r.Final.Policy,
	}
	if n := len(r.Snapshots); n > 0 {
		s.FinalReliability = r.Snapshots[n-1].Reliability
	}
	for _, e := range r.Excursions {
		s.DominantCauses = append(s.DominantCauses, e.DominantCause)
	}
	for _, snap := range r.Snapshots {
		if snap.PolicyChanged != nil {
			s.PolicyTransitions++
		}
	}
	return s
}

// #endregion summary
