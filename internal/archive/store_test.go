package archive

import (
	"path/filepath"
	"testing"

	"github.com/Indra-jith/failure-aware-vision/internal/signal"
	"github.com/Indra-jith/failure-aware-vision/internal/trust"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStartSessionMintsID(t *testing.T) {
	s := tempStore(t)
	sess, err := s.StartSession("unit test")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("expected non-empty session ID")
	}

	sessions, err := s.ListSessions(10)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != sess.ID {
		t.Fatalf("expected session %s to be listed, got %+v", sess.ID, sessions)
	}
}

func TestRecordAndListTicks(t *testing.T) {
	s := tempStore(t)
	sess, _ := s.StartSession("")

	for i := 0; i < 5; i++ {
		snap := trust.TickSnapshot{
			Timestamp:   float64(i) / 30.0,
			TickCount:   int64(i),
			Status:      signal.StatusOK,
			Reliability: 1.0,
			Policy:      trust.PolicyAllowed,
		}
		if err := s.RecordTick(sess.ID, snap); err != nil {
			t.Fatalf("RecordTick: %v", err)
		}
	}

	rows, err := s.ListTicks(sess.ID, 100)
	if err != nil {
		t.Fatalf("ListTicks: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if r.TickCount != int64(i) {
			t.Errorf("row %d: expected tick_count=%d, got %d (order not preserved)", i, i, r.TickCount)
		}
	}
}

func TestRecordAndListExcursions(t *testing.T) {
	s := tempStore(t)
	sess, _ := s.StartSession("")

	ev := trust.ExcursionEvent{
		StartTS:        1.0,
		EndTS:          4.0,
		MinReliability: 0.2,
		DominantCause:  signal.StatusFrozen,
		PeakAnomaly:    0.08,
	}
	if err := s.RecordExcursion(sess.ID, ev); err != nil {
		t.Fatalf("RecordExcursion: %v", err)
	}

	rows, err := s.ListExcursions(sess.ID, 10)
	if err != nil {
		t.Fatalf("ListExcursions: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 excursion, got %d", len(rows))
	}
	if rows[0].DominantCause != "VISION_FROZEN" {
		t.Errorf("expected dominant_cause=VISION_FROZEN, got %s", rows[0].DominantCause)
	}
}
