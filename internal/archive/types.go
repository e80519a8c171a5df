package archive

import "time"

// #region session

// Session identifies one recorded supervisor run.
type Session struct {
	ID        string
	StartedAt time.Time
	Note      string
}

// #endregion session

// #region tick-row

// TickRow is one archived TickSnapshot, flattened for SQLite storage.
type TickRow struct {
	SessionID       string
	Timestamp       float64
	TickCount       int64
	Status          string
	Reliability     float64
	Anomaly         float64
	AnomalyIntegral float64
	Policy          string
	TrustVelocity   float64
	RecoveryDebt    float64
	MLInfluence     bool
	CreatedAt       time.Time
}

// #endregion tick-row

// #region excursion-row

// ExcursionRow is one archived ExcursionEvent, flattened for SQLite
// storage.
type ExcursionRow struct {
	SessionID      string
	StartTS        float64
	EndTS          float64
	MinReliability float64
	DominantCause  string
	PeakAnomaly    float64
	CreatedAt      time.Time
}

// #endregion excursion-row
