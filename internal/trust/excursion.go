package trust

import "github.com/Indra-jith/failure-aware-vision/internal/signal"

// #region excursion

// openExcursion starts a new in-progress excursion accumulator at the
// given timestamp and reliability floor.
func openExcursion(timestamp, reliability float64) *excursionInProgress {
	return &excursionInProgress{
		startTS:        timestamp,
		minReliability: reliability,
		dwell:          make(map[signal.VisionStatus]float64),
	}
}

// accumulate folds one tick's (status, dt, reliability, anomaly) into the
// in-progress excursion. Dwell time per status is weighted by dt, not by
// tick count, so variable frame rates attribute fairly.
func (e *excursionInProgress) accumulate(status signal.VisionStatus, dt, reliability, anomaly float64) {
	e.dwell[status] += dt
	if reliability < e.minReliability {
		e.minReliability = reliability
	}
	if anomaly > e.peakAnomaly {
		e.peakAnomaly = anomaly
	}
}

// close finalizes the excursion into an immutable ExcursionEvent. The
// dominant cause is chosen by dominantCause: the explicit failure status
// with the highest dwell time, ties broken by VisionStatus.Priority().
func (e *excursionInProgress) close(endTS float64) ExcursionEvent {
	histogram := make(map[signal.VisionStatus]float64, len(e.dwell))
	for status, dwell := range e.dwell {
		histogram[status] = dwell
	}

	return ExcursionEvent{
		StartTS:        e.startTS,
		EndTS:          endTS,
		MinReliability: e.minReliability,
		DominantCause:  dominantCause(e.dwell),
		CauseHistogram: histogram,
		PeakAnomaly:    e.peakAnomaly,
	}
}

// dominantCause picks the argmax-dwell status among the explicit failure
// statuses (CORRUPTED, BLANK, FROZEN), ties broken by priority. OK dwell
// is excluded from the race: an excursion stays open until reliability
// climbs back to the close threshold, so its OK-status recovery tail would
// otherwise dwarf a short, severe failure dip in raw dwell time and the
// recovery phase would "dominate" its own cause. OK only wins when no
// explicit failure status was seen at all (a purely ML-anomaly-driven
// dip).
func dominantCause(dwell map[signal.VisionStatus]float64) signal.VisionStatus {
	var best signal.VisionStatus = signal.StatusOK
	var bestDwell float64 = -1
	sawFailure := false

	for status, d := range dwell {
		if status == signal.StatusOK {
			continue
		}
		sawFailure = true
		if d > bestDwell ||
			(d == bestDwell && status.Priority() > best.Priority()) {
			best = status
			bestDwell = d
		}
	}

	if !sawFailure {
		return signal.StatusOK
	}
	return best
}

// #endregion excursion
