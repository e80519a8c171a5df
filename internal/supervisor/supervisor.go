package supervisor

import (
	"context"
	"log"
	"sync"

	"github.com/Indra-jith/failure-aware-vision/internal/recorder"
	"github.com/Indra-jith/failure-aware-vision/internal/signal"
	"github.com/Indra-jith/failure-aware-vision/internal/telemetry"
	"github.com/Indra-jith/failure-aware-vision/internal/trust"
)

// #region scorer

// AnomalyScorer is the narrow contract the anomaly-scoring collaborator
// must satisfy. *anomaly.Client implements it; tests substitute a constant
// scorer, and a nil scorer means every score is 0.
type AnomalyScorer interface {
	Score(ctx context.Context, frameID string, width, height int, luma []byte, timestamp float64) (float64, error)
}

// #endregion scorer

// #region supervisor-struct

// Supervisor is a purely orchestrating coordinator: it owns no trust
// semantics of its own and drives the analyzer, anomaly scorer, trust
// engine, and recorder through one serialized per-tick lifecycle
// (analyze, score, tick, record). Control commands travel through the
// same mutex-serialized path as ticks.
type Supervisor struct {
	mu sync.Mutex

	analyzer *signal.Analyzer
	engine   *trust.Engine
	recorder *recorder.Recorder
	counters *telemetry.Counters
	scorer   AnomalyScorer

	mode SourceMode
}

// New constructs a fully wired Supervisor. scorer may be nil, in which
// case every tick's anomaly score is treated as 0.
func New(scorer AnomalyScorer, mode SourceMode) *Supervisor {
	counters := telemetry.NewCounters()
	return &Supervisor{
		analyzer: signal.NewAnalyzer(signal.DefaultConfig()),
		engine:   trust.NewEngine(trust.DefaultConfig(), counters),
		recorder: recorder.NewRecorder(recorder.DefaultConfig(), counters),
		counters: counters,
		scorer:   scorer,
		mode:     mode,
	}
}

// Engine, Recorder, and Counters expose the wired components read-only for
// the CLI layer's export/archive paths.
func (s *Supervisor) Engine() *trust.Engine         { return s.engine }
func (s *Supervisor) Recorder() *recorder.Recorder  { return s.recorder }
func (s *Supervisor) Counters() *telemetry.Counters { return s.counters }

// #endregion supervisor-struct

// #region process-frame

// ProcessFrame runs one tick of the full pipeline: analyze the frame,
// score it against the anomaly source (substituting 0 on failure or a nil
// scorer), advance the trust engine, and ingest the result into the
// recorder. A frame that fails analysis does not advance engine state;
// the tick is skipped, never retried.
func (s *Supervisor) ProcessFrame(ctx context.Context, frameID string, frame signal.Frame) (trust.TickSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, _, err := s.analyzer.Analyze(frame)
	if err != nil {
		log.Printf("[SUPERVISOR] invalid frame %s skipped: %v", frameID, err)
		return trust.TickSnapshot{}, err
	}

	anomaly := s.score(ctx, frameID, frame)

	snap := s.engine.Tick(frame.Timestamp, status, anomaly)
	s.recorder.Ingest(snap)

	if snap.PolicyChanged != nil {
		log.Printf("[SUPERVISOR] policy %s -> %s @ t=%.3f",
			snap.PolicyChanged.Previous, snap.PolicyChanged.Current, snap.PolicyChanged.Timestamp)
	}
	if snap.ClosedExcursion != nil {
		log.Printf("[SUPERVISOR] excursion closed: dominant_cause=%s min_reliability=%.3f",
			snap.ClosedExcursion.DominantCause, snap.ClosedExcursion.MinReliability)
	}

	return snap, nil
}

// score substitutes 0 for an unavailable source or an RPC error.
func (s *Supervisor) score(ctx context.Context, frameID string, frame signal.Frame) float64 {
	if s.scorer == nil {
		return 0
	}
	v, err := s.scorer.Score(ctx, frameID, frame.Width, frame.Height, frame.Luma, frame.Timestamp)
	if err != nil {
		log.Printf("[SUPERVISOR] anomaly source unavailable for frame %s: %v", frameID, err)
		return 0
	}
	return v
}

// #endregion process-frame

// #region control-commands

// Reset reinitializes analyzer, engine, and recorder state to defaults.
func (s *Supervisor) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Reset()
	s.recorder.Reset()
	s.analyzer = signal.NewAnalyzer(signal.DefaultConfig())
	log.Printf("[SUPERVISOR] reset")
}

// SetSourceMode changes which frame source the driver loop reads from.
// The tick pipeline itself is indifferent to mode.
func (s *Supervisor) SetSourceMode(mode SourceMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = mode
	log.Printf("[SUPERVISOR] source mode -> %s", mode)
}

// SourceMode returns the current source mode.
func (s *Supervisor) SourceMode() SourceMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// #endregion control-commands
