package telemetry

import "testing"

func TestCountersAccumulate(t *testing.T) {
	c := NewCounters()
	c.RecordClockRegression(-0.01)
	c.RecordClockRegression(-0.02)
	c.RecordBadAnomalyValue(-1)
	c.RecordTickBufferFull()
	c.RecordExcursionDropped()

	snap := c.Snapshot()
	if snap.ClockRegression != 2 {
		t.Errorf("expected 2 clock regressions, got %d", snap.ClockRegression)
	}
	if snap.BadAnomalyValue != 1 {
		t.Errorf("expected 1 bad anomaly value, got %d", snap.BadAnomalyValue)
	}
	if snap.TickBufferFull != 1 {
		t.Errorf("expected 1 tick buffer full, got %d", snap.TickBufferFull)
	}
	if snap.ExcursionDropped != 1 {
		t.Errorf("expected 1 excursion dropped, got %d", snap.ExcursionDropped)
	}
	if len(snap.Diagnostics) != 5 {
		t.Errorf("expected 5 diagnostic lines, got %d", len(snap.Diagnostics))
	}
}

func TestCountersSnapshotIsIndependentCopy(t *testing.T) {
	c := NewCounters()
	c.RecordClockRegression(-1)
	snap := c.Snapshot()
	c.RecordClockRegression(-1)
	if snap.ClockRegression != 1 {
		t.Fatalf("snapshot should not observe later mutations, got %d", snap.ClockRegression)
	}
}
