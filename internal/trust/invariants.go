package trust

import (
	"fmt"

	"github.com/Indra-jith/failure-aware-vision/internal/signal"
)

// #region invariants

// Report is a pass/fail verdict plus the specific violations found, for
// diagnostic use in tests rather than as a gating mechanism.
type Report struct {
	Passed     bool
	Violations []string
}

// CheckInvariants verifies the engine's always-hold properties across a
// sequence of snapshots produced by repeated calls to Engine.Tick:
// reliability bounded to [0,1], the anomaly integral non-negative and
// zeroed on every non-OK tick, failures never raising trust, and clean OK
// ticks never lowering it.
func CheckInvariants(snapshots []TickSnapshot) Report {
	var violations []string

	var prev *TickSnapshot
	for i, snap := range snapshots {
		if snap.Reliability < 0 || snap.Reliability > 1 {
			violations = append(violations, fmt.Sprintf("tick %d: reliability %f out of [0,1]", i, snap.Reliability))
		}
		if snap.AnomalyIntegral < 0 {
			violations = append(violations, fmt.Sprintf("tick %d: anomaly_integral %f < 0", i, snap.AnomalyIntegral))
		}
		violations = append(violations, checkNonOKResetsIntegral(i, snap)...)
		violations = append(violations, checkNonOKNeverRaisesReliability(i, prev, snap)...)
		violations = append(violations, checkOKZeroAnomalyNeverLowersReliability(i, prev, snap)...)

		prev = &snapshots[i]
	}

	return Report{Passed: len(violations) == 0, Violations: violations}
}

func checkNonOKResetsIntegral(i int, snap TickSnapshot) []string {
	if snap.Status != signal.StatusOK && snap.AnomalyIntegral != 0 {
		return []string{fmt.Sprintf("tick %d: non-OK status left anomaly_integral=%f, expected 0", i, snap.AnomalyIntegral)}
	}
	return nil
}

func checkNonOKNeverRaisesReliability(i int, prev *TickSnapshot, snap TickSnapshot) []string {
	if prev == nil || snap.Status == signal.StatusOK {
		return nil
	}
	if snap.Reliability > prev.Reliability {
		return []string{fmt.Sprintf("tick %d: non-OK status raised reliability %f -> %f", i, prev.Reliability, snap.Reliability)}
	}
	return nil
}

func checkOKZeroAnomalyNeverLowersReliability(i int, prev *TickSnapshot, snap TickSnapshot) []string {
	if prev == nil || snap.Status != signal.StatusOK || snap.Anomaly != 0 {
		return nil
	}
	if snap.Reliability < prev.Reliability {
		return []string{fmt.Sprintf("tick %d: OK with zero anomaly lowered reliability %f -> %f", i, prev.Reliability, snap.Reliability)}
	}
	return nil
}

// #endregion invariants
