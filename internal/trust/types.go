package trust

import "github.com/Indra-jith/failure-aware-vision/internal/signal"

// #region policy

// Policy is the closed set of actuation gates derived solely from
// reliability thresholds. DECLINING is never a member of this set; it is
// carried as a non-gating boolean label on TickSnapshot.
type Policy int

const (
	PolicyAllowed Policy = iota
	PolicyDegraded
	PolicyBlocked
)

func (p Policy) String() string {
	switch p {
	case PolicyAllowed:
		return "VISION_ALLOWED"
	case PolicyDegraded:
		return "VISION_DEGRADED"
	case PolicyBlocked:
		return "VISION_BLOCKED"
	default:
		return "VISION_UNKNOWN"
	}
}

// #endregion policy

// #region config

// Config holds the engine's design-time constants: per-status reliability
// rates, anomaly-integral dynamics, policy thresholds, and the recovery-debt
// and contradiction-detector tuning.
type Config struct {
	RRecover float64 // reliability gain per second while OK
	RFrozen  float64 // reliability loss per second while FROZEN
	RBlank   float64 // reliability loss per second while BLANK
	RCorrupt float64 // reliability loss per second while CORRUPTED

	Leak float64 // anomaly integral leak rate
	Gain float64 // anomaly integral -> reliability penalty gain

	DTMax float64 // maximum single-tick time step

	AllowedThreshold float64 // >= this => ALLOWED
	BlockedThreshold float64 // < this => BLOCKED, else DEGRADED

	ExcursionOpenThreshold  float64 // excursion opens when reliability drops below this
	ExcursionCloseThreshold float64 // excursion closes when reliability reaches this

	DecliningEpsilon float64 // trust velocity below -epsilon => DECLINING label
	VelocityEMAAlpha float64 // EMA smoothing factor for trust velocity

	RecoveryDebtMax   float64
	RecoveryDebtGain  float64
	RecoveryMinCoeff  float64
	RecoveryDebtDrain float64

	ContradictionBufferSize    int     // rolling sample window
	ContradictionMinSamples    int     // minimum total samples before flagging
	ContradictionMinSameStatus int     // minimum same-status samples before flagging
	ContradictionZThreshold    float64 // z-score above which OK + high anomaly is a contradiction
}

// DefaultConfig returns the reference constants.
func DefaultConfig() Config {
	return Config{
		RRecover: 0.10,
		RFrozen:  0.30,
		RBlank:   0.60,
		RCorrupt: 1.00,

		Leak: 0.5,
		Gain: 0.15,

		DTMax: 0.5,

		AllowedThreshold: 0.7,
		BlockedThreshold: 0.3,

		ExcursionOpenThreshold:  0.7,
		ExcursionCloseThreshold: 0.95,

		DecliningEpsilon: 0.02,
		VelocityEMAAlpha: 0.12,

		RecoveryDebtMax:   10.0,
		RecoveryDebtGain:  0.008,
		RecoveryMinCoeff:  0.03,
		RecoveryDebtDrain: 0.10,

		ContradictionBufferSize:    60,
		ContradictionMinSamples:    30,
		ContradictionMinSameStatus: 10,
		ContradictionZThreshold:    3.0,
	}
}

// #endregion config

// #region state

// ReliabilityState is the trust engine's sole long-lived state. It is
// exported in full so callers such as replay.RunResult can carry a copy of
// it; the engine offers no way to restore it.
type ReliabilityState struct {
	Reliability     float64
	AnomalyIntegral float64
	Policy          Policy
	PreviousPolicy  Policy
	TickCount       int64
	LastTimestamp   float64
	Initialized     bool

	TrustVelocity float64
	RecoveryDebt  float64
	RecoveryCoeff float64

	ContradictionDetected bool
	ContradictionCount    int64
}

func initialState(cfg Config) ReliabilityState {
	return ReliabilityState{
		Reliability:    1.0,
		Policy:         PolicyAllowed,
		PreviousPolicy: PolicyAllowed,
		RecoveryCoeff:  cfg.RRecover,
	}
}

// #endregion state

// #region events

// PolicyChangedEvent is emitted exactly once per threshold crossing,
// never on ticks where the policy holds.
type PolicyChangedEvent struct {
	Previous  Policy
	Current   Policy
	Timestamp float64
}

// ExcursionEvent is a closed, immutable record describing one trust dip.
type ExcursionEvent struct {
	StartTS        float64
	EndTS          float64
	MinReliability float64
	DominantCause  signal.VisionStatus
	CauseHistogram map[signal.VisionStatus]float64
	PeakAnomaly    float64
}

// excursionInProgress is the engine's private open-excursion accumulator.
type excursionInProgress struct {
	startTS        float64
	minReliability float64
	peakAnomaly    float64
	dwell          map[signal.VisionStatus]float64
}

// #endregion events

// #region snapshot

// TickSnapshot is the engine's per-tick outbound record.
type TickSnapshot struct {
	Timestamp       float64
	TickCount       int64
	Status          signal.VisionStatus
	Reliability     float64
	Anomaly         float64
	AnomalyIntegral float64
	Policy          Policy
	PreviousPolicy  Policy
	Declining       bool
	TrustVelocity   float64
	RecoveryDebt    float64
	RecoveryCoeff   float64

	MLInfluenceActive     bool
	ContradictionDetected bool
	ContradictionCount    int64

	PolicyChanged   *PolicyChangedEvent
	ClosedExcursion *ExcursionEvent
}

// #endregion snapshot
