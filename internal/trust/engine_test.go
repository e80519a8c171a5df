package trust

import (
	"math"
	"testing"

	"github.com/Indra-jith/failure-aware-vision/internal/signal"
)

func TestEngineInitialState(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	s := e.State()
	if s.Reliability != 1.0 {
		t.Fatalf("expected initial reliability 1.0, got %f", s.Reliability)
	}
	if s.Policy != PolicyAllowed {
		t.Fatalf("expected initial policy ALLOWED, got %s", s.Policy)
	}
}

func TestEngineFirstTickAppliesNoDynamics(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	snap := e.Tick(10.0, signal.StatusOK, 0.5)
	if snap.Reliability != 1.0 {
		t.Fatalf("expected dt=0 on first tick to leave reliability unchanged, got %f", snap.Reliability)
	}
}

func TestEngineStableOKStaysAboveNinetyFive(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	var last TickSnapshot
	for i := 0; i < 300; i++ {
		last = e.Tick(float64(i)/30.0, signal.StatusOK, 0.02)
		if last.Reliability < 0.95 {
			t.Fatalf("tick %d: reliability dropped below 0.95: %f", i, last.Reliability)
		}
		if i > 0 && !last.MLInfluenceActive {
			t.Fatalf("tick %d: expected ml_influence_active once the integral is charged", i)
		}
	}
	if last.Policy != PolicyAllowed {
		t.Fatalf("expected ALLOWED throughout stable OK, got %s", last.Policy)
	}
}

func TestEngineHardFreezeThenRecover(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	ts := 0.0
	dt := 1.0 / 30.0

	for i := 0; i < 60; i++ {
		ts += dt
		e.Tick(ts, signal.StatusOK, 0.02)
	}
	var last TickSnapshot
	for i := 0; i < 90; i++ {
		ts += dt
		last = e.Tick(ts, signal.StatusFrozen, 0.02)
	}
	if math.Abs(last.Reliability-0.10) > 0.02 {
		t.Fatalf("expected reliability near 0.10 after 3s of FROZEN decay, got %f", last.Reliability)
	}
	if last.Policy != PolicyBlocked {
		t.Fatalf("expected BLOCKED at end of freeze window, got %s", last.Policy)
	}

	closedExcursions := 0
	for i := 0; i < 300; i++ {
		ts += dt
		snap := e.Tick(ts, signal.StatusOK, 0.02)
		if snap.ClosedExcursion != nil {
			closedExcursions++
			if snap.ClosedExcursion.DominantCause != signal.StatusFrozen {
				t.Fatalf("expected dominant cause FROZEN, got %s", snap.ClosedExcursion.DominantCause)
			}
		}
	}
	if closedExcursions != 1 {
		t.Fatalf("expected exactly one excursion to close during recovery, got %d", closedExcursions)
	}
}

func TestEngineBlankSuppressesAnomalyIntegral(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	ts := 0.0
	dt := 1.0 / 30.0
	for i := 0; i < 30; i++ {
		ts += dt
		snap := e.Tick(ts, signal.StatusBlank, 0.5)
		if snap.AnomalyIntegral != 0 {
			t.Fatalf("tick %d: expected anomaly_integral=0 during BLANK, got %f", i, snap.AnomalyIntegral)
		}
	}
}

func TestEngineClockRegressionClampedToZero(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	timestamps := []float64{0.00, 0.03, 0.02, 0.07}
	var snaps []TickSnapshot
	for _, ts := range timestamps {
		snaps = append(snaps, e.Tick(ts, signal.StatusOK, 0))
	}
	if snaps[1].Reliability != snaps[2].Reliability {
		t.Fatalf("expected no reliability change across the clock regression tick: %f != %f", snaps[1].Reliability, snaps[2].Reliability)
	}
}

func TestEnginePriorityOrderingCorruptedWins(t *testing.T) {
	if signal.StatusCorrupted.Priority() <= signal.StatusBlank.Priority() ||
		signal.StatusBlank.Priority() <= signal.StatusFrozen.Priority() ||
		signal.StatusFrozen.Priority() <= signal.StatusOK.Priority() {
		t.Fatal("expected strict priority order CORRUPTED > BLANK > FROZEN > OK")
	}
}

func TestEngineResetRestoresDefaults(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	for i := 0; i < 30; i++ {
		e.Tick(float64(i)/30.0, signal.StatusCorrupted, 0)
	}
	e.Reset()
	s := e.State()
	if s.Reliability != 1.0 || s.Policy != PolicyAllowed {
		t.Fatalf("expected reset to restore defaults, got reliability=%f policy=%s", s.Reliability, s.Policy)
	}
}

func TestEngineBadAnomalyValueCoercedToZero(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	e.Tick(0, signal.StatusOK, 0)
	snap := e.Tick(1.0/30.0, signal.StatusOK, math.NaN())
	if snap.Anomaly != 0 {
		t.Fatalf("expected NaN anomaly coerced to 0, got %f", snap.Anomaly)
	}
}

func TestEngineCorruptedDecaysAtFullRateToZero(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	e.Tick(0, signal.StatusCorrupted, 0)

	prev := 1.0
	var snap TickSnapshot
	for i := 1; i <= 45; i++ {
		snap = e.Tick(float64(i)/30.0, signal.StatusCorrupted, 0)
		if snap.Reliability > prev {
			t.Fatalf("tick %d: reliability rose under CORRUPTED: %f -> %f", i, prev, snap.Reliability)
		}
		prev = snap.Reliability
	}
	// 1.5 s at 1.0/s crosses zero and clamps.
	if snap.Reliability != 0 {
		t.Fatalf("expected reliability clamped to 0 after sustained CORRUPTED, got %f", snap.Reliability)
	}
}

func TestEngineResetThenSameSequenceMatchesFreshEngine(t *testing.T) {
	seq := func(e *Engine) []TickSnapshot {
		var out []TickSnapshot
		for i := 0; i < 120; i++ {
			status := signal.StatusOK
			if i >= 40 && i < 70 {
				status = signal.StatusFrozen
			}
			out = append(out, e.Tick(float64(i)/30.0, status, 0.05))
		}
		return out
	}

	dirty := NewEngine(DefaultConfig(), nil)
	for i := 0; i < 50; i++ {
		dirty.Tick(float64(i)/30.0, signal.StatusBlank, 0.3)
	}
	dirty.Reset()

	got := seq(dirty)
	want := seq(NewEngine(DefaultConfig(), nil))

	for i := range want {
		if got[i].Reliability != want[i].Reliability || got[i].Policy != want[i].Policy {
			t.Fatalf("tick %d diverged after reset: reliability %f vs %f, policy %s vs %s",
				i, got[i].Reliability, want[i].Reliability, got[i].Policy, want[i].Policy)
		}
	}
}

func TestEngineDecliningLabelOnlyWhileAllowed(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)

	sawDecliningWhileAllowed := false
	for i := 0; i < 200; i++ {
		snap := e.Tick(float64(i)/30.0, signal.StatusOK, 0.8)
		if snap.Declining {
			if snap.Policy != PolicyAllowed {
				t.Fatalf("tick %d: DECLINING labeled outside ALLOWED (policy=%s)", i, snap.Policy)
			}
			if snap.TrustVelocity >= -DefaultConfig().DecliningEpsilon {
				t.Fatalf("tick %d: DECLINING labeled with velocity %f", i, snap.TrustVelocity)
			}
			sawDecliningWhileAllowed = true
		}
	}
	if !sawDecliningWhileAllowed {
		t.Fatal("expected the DECLINING label during the ML-driven slide while still ALLOWED")
	}
}

func TestEnginePolicyEventsMatchThresholdCrossings(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)

	var events int
	var prevPolicy = PolicyAllowed
	ts := 0.0
	feed := func(n int, status signal.VisionStatus) {
		for i := 0; i < n; i++ {
			ts += 1.0 / 30.0
			snap := e.Tick(ts, status, 0)
			if (snap.Policy != prevPolicy) != (snap.PolicyChanged != nil) {
				t.Fatalf("t=%.3f: edge trigger out of sync with policy change", ts)
			}
			if snap.PolicyChanged != nil {
				events++
			}
			prevPolicy = snap.Policy
		}
	}

	feed(30, signal.StatusOK)
	feed(90, signal.StatusBlank)  // 3 s at 0.60/s: ALLOWED -> DEGRADED -> BLOCKED
	feed(450, signal.StatusOK)    // recovery: BLOCKED -> DEGRADED -> ALLOWED
	if events != 4 {
		t.Fatalf("expected 4 edge-triggered policy events, got %d", events)
	}
}

func TestCheckInvariantsOverStableRun(t *testing.T) {
	e := NewEngine(DefaultConfig(), nil)
	var snaps []TickSnapshot
	for i := 0; i < 100; i++ {
		snaps = append(snaps, e.Tick(float64(i)/30.0, signal.StatusOK, 0.02))
	}
	report := CheckInvariants(snaps)
	if !report.Passed {
		t.Fatalf("expected invariants to hold, violations: %v", report.Violations)
	}
}
