package recorder

import (
	"strings"
	"testing"

	"github.com/Indra-jith/failure-aware-vision/internal/telemetry"
	"github.com/Indra-jith/failure-aware-vision/internal/trust"
)

func snap(ts float64, reliability float64) trust.TickSnapshot {
	return trust.TickSnapshot{
		Timestamp:       ts,
		Reliability:     reliability,
		Policy:          trust.PolicyAllowed,
		Anomaly:         0.02,
		AnomalyIntegral: 0.001,
	}
}

func TestRecorderOrderPreserved(t *testing.T) {
	r := NewRecorder(Config{TickCapacity: 4, ExcursionCapacity: 4}, nil)
	for i := 0; i < 3; i++ {
		r.RecordTick(snap(float64(i), 1.0))
	}
	ticks := r.Ticks()
	if len(ticks) != 3 {
		t.Fatalf("expected 3 ticks, got %d", len(ticks))
	}
	for i, tk := range ticks {
		if tk.Timestamp != float64(i) {
			t.Errorf("tick %d: expected timestamp %d, got %f", i, i, tk.Timestamp)
		}
	}
}

func TestRecorderEvictsOldestOnOverflow(t *testing.T) {
	counters := telemetry.NewCounters()
	r := NewRecorder(Config{TickCapacity: 3, ExcursionCapacity: 1}, counters)
	for i := 0; i < 5; i++ {
		r.RecordTick(snap(float64(i), 1.0))
	}
	ticks := r.Ticks()
	if len(ticks) != 3 {
		t.Fatalf("expected ring capped at 3, got %d", len(ticks))
	}
	if ticks[0].Timestamp != 2 {
		t.Errorf("expected oldest surviving tick at ts=2, got %f", ticks[0].Timestamp)
	}
	if snap := counters.Snapshot(); snap.TickBufferFull != 2 {
		t.Errorf("expected 2 evictions counted, got %d", snap.TickBufferFull)
	}
}

func TestRecorderExcursionCapDropsNewest(t *testing.T) {
	counters := telemetry.NewCounters()
	r := NewRecorder(Config{TickCapacity: 10, ExcursionCapacity: 1}, counters)
	r.RecordExcursion(trust.ExcursionEvent{StartTS: 0, EndTS: 1})
	r.RecordExcursion(trust.ExcursionEvent{StartTS: 2, EndTS: 3})

	exc := r.Excursions()
	if len(exc) != 1 {
		t.Fatalf("expected cap of 1 excursion, got %d", len(exc))
	}
	if exc[0].StartTS != 0 {
		t.Errorf("expected the first excursion to survive, got start_ts=%f", exc[0].StartTS)
	}
	if snap := counters.Snapshot(); snap.ExcursionDropped != 1 {
		t.Errorf("expected 1 drop counted, got %d", snap.ExcursionDropped)
	}
}

func TestRecorderReset(t *testing.T) {
	r := NewRecorder(DefaultConfig(), nil)
	r.RecordTick(snap(0, 1.0))
	r.RecordExcursion(trust.ExcursionEvent{StartTS: 0, EndTS: 1})
	r.Reset()

	if len(r.Ticks()) != 0 || len(r.Excursions()) != 0 {
		t.Fatal("expected empty buffers after Reset")
	}
}

func TestExportTickCSVFormat(t *testing.T) {
	r := NewRecorder(DefaultConfig(), nil)
	r.RecordTick(trust.TickSnapshot{
		Timestamp:       1.5,
		Reliability:     0.987654,
		Policy:          trust.PolicyDegraded,
		Anomaly:         0.0234567,
		AnomalyIntegral: 0.1,
	})

	out := string(r.ExportTickCSV())
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "timestamp,reliability,policy_state,anomaly,anomaly_integral" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "1.500,0.988,VISION_DEGRADED,0.023457,0.100000" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestExportExcursionCSVFormat(t *testing.T) {
	r := NewRecorder(DefaultConfig(), nil)
	r.RecordExcursion(trust.ExcursionEvent{
		StartTS:        1.0,
		EndTS:          3.5,
		MinReliability: 0.41,
		DominantCause:  0, // signal.StatusOK has zero value, the cause of a purely ML-driven excursion
		PeakAnomaly:    0.5,
	})

	out := string(r.ExportExcursionCSV())
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "start_ts,end_ts,duration_s,min_reliability,dominant_cause,peak_anomaly" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1.000,3.500,2.500,0.410,") {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestTwoIndependentRecordersProduceByteIdenticalCSV(t *testing.T) {
	a := NewRecorder(DefaultConfig(), nil)
	b := NewRecorder(DefaultConfig(), nil)
	for i := 0; i < 50; i++ {
		s := snap(float64(i)/30.0, 1.0-float64(i)*0.001)
		a.RecordTick(s)
		b.RecordTick(s)
	}
	if string(a.ExportTickCSV()) != string(b.ExportTickCSV()) {
		t.Fatal("expected byte-identical CSVs from identical input sequences")
	}
}
