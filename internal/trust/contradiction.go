package trust

import (
	"math"

	"github.com/Indra-jith/failure-aware-vision/internal/signal"
)

// #region contradiction

// contradictionSample is one entry in the engine's rolling (status,
// anomaly) buffer, used to detect when the ML anomaly score is a
// statistical outlier versus the rule-based status. This is a pure
// telemetry annotation: it never feeds back into reliability or policy.
type contradictionSample struct {
	status  signal.VisionStatus
	anomaly float64
}

// updateContradiction appends the current sample to the rolling buffer and
// recomputes whether the current OK+anomaly reading is a statistical
// outlier against same-status history.
func updateContradiction(buf []contradictionSample, cfg Config, status signal.VisionStatus, anomaly float64) ([]contradictionSample, bool) {
	buf = append(buf, contradictionSample{status: status, anomaly: anomaly})
	if len(buf) > cfg.ContradictionBufferSize {
		buf = buf[len(buf)-cfg.ContradictionBufferSize:]
	}

	if len(buf) < cfg.ContradictionMinSamples {
		return buf, false
	}

	var sameStatus []float64
	for _, s := range buf {
		if s.status == status {
			sameStatus = append(sameStatus, s.anomaly)
		}
	}
	if len(sameStatus) < cfg.ContradictionMinSameStatus {
		return buf, false
	}

	mean := meanOf(sameStatus)
	std := stdDevOf(sameStatus, mean)
	if std < 0.001 {
		std = 0.001
	}

	z := (anomaly - mean) / std
	detected := status == signal.StatusOK && z > cfg.ContradictionZThreshold
	return buf, detected
}

func meanOf(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func stdDevOf(vals []float64, mean float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var sumSq float64
	for _, v := range vals {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(vals)-1))
}

// #endregion contradiction
