package signal

import "testing"

func solidFrame(val byte, w, h int, ts float64) Frame {
	luma := make([]byte, w*h)
	for i := range luma {
		luma[i] = val
	}
	f, err := NewFrame(w, h, luma, ts)
	if err != nil {
		panic(err)
	}
	return f
}

func TestAnalyzeFirstFrameNeverFrozenOrCorrupted(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	status, _, err := a.Analyze(solidFrame(128, 4, 4, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusOK {
		t.Fatalf("expected OK on first frame, got %s", status)
	}
}

func TestAnalyzeBlankOnLowMeanLuminance(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	status, _, err := a.Analyze(solidFrame(2, 4, 4, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusBlank {
		t.Fatalf("expected BLANK, got %s", status)
	}
}

func TestAnalyzeCorruptedOnDimensionMismatch(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	if _, _, err := a.Analyze(solidFrame(128, 4, 4, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	status, _, err := a.Analyze(solidFrame(128, 8, 4, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusCorrupted {
		t.Fatalf("expected CORRUPTED, got %s", status)
	}
}

func TestAnalyzeCorruptedDominatesBlankAndFrozen(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	for i := 0; i < 6; i++ {
		if _, _, err := a.Analyze(solidFrame(2, 4, 4, float64(i))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// A shape-mismatched frame that is also dark and identical in content
	// to the previous sequence must still classify CORRUPTED.
	status, _, err := a.Analyze(solidFrame(2, 4, 8, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != StatusCorrupted {
		t.Fatalf("expected CORRUPTED to dominate BLANK and FROZEN, got %s", status)
	}
}

func TestAnalyzeFrozenRequiresFiveConsecutiveDiffs(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	var last VisionStatus
	// 6 identical frames produce 5 consecutive near-zero diffs.
	for i := 0; i < 6; i++ {
		status, _, err := a.Analyze(solidFrame(128, 4, 4, float64(i)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		last = status
		if i < 5 && status == StatusFrozen {
			t.Fatalf("tick %d: FROZEN fired before 5-diff confirmation window elapsed", i)
		}
	}
	if last != StatusFrozen {
		t.Fatalf("expected FROZEN once 5 consecutive diffs confirm, got %s", last)
	}
}

func TestAnalyzeFrozenResetsAfterMotion(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	for i := 0; i < 5; i++ {
		if _, _, err := a.Analyze(solidFrame(128, 4, 4, float64(i))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// Motion on the 6th frame should prevent confirmation.
	status, _, err := a.Analyze(solidFrame(60, 4, 4, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status == StatusFrozen {
		t.Fatal("motion frame should not be classified FROZEN")
	}
}

func TestAnalyzeInvalidFrameRejected(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	_, _, err := a.Analyze(Frame{Width: 0, Height: 0})
	if err == nil {
		t.Fatal("expected error for zero-sized frame")
	}
}

func TestNewFrameValidatesLumaLength(t *testing.T) {
	if _, err := NewFrame(4, 4, make([]byte, 3), 0); err == nil {
		t.Fatal("expected error for mismatched luma length")
	}
}

func TestSignalChannelsAreNormalized(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	_, metrics, err := a.Analyze(solidFrame(128, 4, 4, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for name, v := range map[string]float64{
		"blur": metrics.Blur, "brightness": metrics.Brightness,
		"freeze": metrics.Freeze, "entropy": metrics.Entropy,
	} {
		if v < 0 || v > 1 {
			t.Fatalf("%s out of [0,1]: %f", name, v)
		}
	}
}
