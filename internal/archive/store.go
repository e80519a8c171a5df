package archive

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Indra-jith/failure-aware-vision/internal/trust"
)

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id  TEXT PRIMARY KEY,
	started_at  TEXT NOT NULL,
	note        TEXT
);

CREATE TABLE IF NOT EXISTS tick_snapshots (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id       TEXT NOT NULL,
	timestamp        REAL NOT NULL,
	tick_count       INTEGER NOT NULL,
	status           TEXT NOT NULL,
	reliability      REAL NOT NULL,
	anomaly          REAL NOT NULL,
	anomaly_integral REAL NOT NULL,
	policy           TEXT NOT NULL,
	trust_velocity   REAL NOT NULL,
	recovery_debt    REAL NOT NULL,
	ml_influence     INTEGER NOT NULL,
	created_at       TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE TABLE IF NOT EXISTS excursion_events (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id      TEXT NOT NULL,
	start_ts        REAL NOT NULL,
	end_ts          REAL NOT NULL,
	min_reliability REAL NOT NULL,
	dominant_cause  TEXT NOT NULL,
	peak_anomaly    REAL NOT NULL,
	created_at      TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE INDEX IF NOT EXISTS idx_tick_session ON tick_snapshots(session_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_excursion_session ON excursion_events(session_id, start_ts);
`

// #endregion schema

// #region store-struct

// Store wraps a SQLite-backed session archive: every tick and excursion
// the CLI layer observes is appended here. The trust pipeline never opens
// a Store itself.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the archive database at dbPath and
// applies migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open archive db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate archive: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for callers that need raw access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion store-struct

// #region session

// StartSession mints a new session row and returns it.
func (s *Store) StartSession(note string) (Session, error) {
	sess := Session{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
		Note:      note,
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (session_id, started_at, note) VALUES (?, ?, ?)`,
		sess.ID, sess.StartedAt.Format(time.RFC3339Nano), nullIfEmpty(note),
	)
	if err != nil {
		return Session{}, fmt.Errorf("start session: %w", err)
	}
	return sess, nil
}

// ListSessions returns the most recently started sessions.
func (s *Store) ListSessions(limit int) ([]Session, error) {
	rows, err := s.db.Query(
		`SELECT session_id, started_at, note FROM sessions ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var started string
		var note sql.NullString
		if err := rows.Scan(&sess.ID, &started, &note); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if note.Valid {
			sess.Note = note.String
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// #endregion session

// #region record-tick

// RecordTick archives a single TickSnapshot against sessionID.
func (s *Store) RecordTick(sessionID string, snap trust.TickSnapshot) error {
	_, err := s.db.Exec(
		`INSERT INTO tick_snapshots
		 (session_id, timestamp, tick_count, status, reliability, anomaly, anomaly_integral,
		  policy, trust_velocity, recovery_debt, ml_influence, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, snap.Timestamp, snap.TickCount, snap.Status.String(), snap.Reliability,
		snap.Anomaly, snap.AnomalyIntegral, snap.Policy.String(), snap.TrustVelocity,
		snap.RecoveryDebt, boolToInt(snap.MLInfluenceActive), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record tick: %w", err)
	}
	return nil
}

// ListTicks returns the most recent N archived ticks for a session, oldest
// first (cmd/fixture-export's window for converting archive rows back into
// a replay fixture).
func (s *Store) ListTicks(sessionID string, limit int) ([]TickRow, error) {
	rows, err := s.db.Query(
		`SELECT session_id, timestamp, tick_count, status, reliability, anomaly, anomaly_integral,
		        policy, trust_velocity, recovery_debt, ml_influence, created_at
		 FROM tick_snapshots WHERE session_id = ? ORDER BY timestamp DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list ticks: %w", err)
	}
	defer rows.Close()

	var out []TickRow
	for rows.Next() {
		var r TickRow
		var createdStr string
		var mlInfluence int
		if err := rows.Scan(&r.SessionID, &r.Timestamp, &r.TickCount, &r.Status, &r.Reliability,
			&r.Anomaly, &r.AnomalyIntegral, &r.Policy, &r.TrustVelocity, &r.RecoveryDebt,
			&mlInfluence, &createdStr); err != nil {
			return nil, fmt.Errorf("scan tick: %w", err)
		}
		r.MLInfluence = mlInfluence != 0
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, r)
	}
	reverse(out)
	return out, rows.Err()
}

// #endregion record-tick

// #region record-excursion

// RecordExcursion archives a single closed ExcursionEvent against
// sessionID.
func (s *Store) RecordExcursion(sessionID string, ev trust.ExcursionEvent) error {
	_, err := s.db.Exec(
		`INSERT INTO excursion_events
		 (session_id, start_ts, end_ts, min_reliability, dominant_cause, peak_anomaly, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sessionID, ev.StartTS, ev.EndTS, ev.MinReliability, ev.DominantCause.String(),
		ev.PeakAnomaly, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record excursion: %w", err)
	}
	return nil
}

// ListExcursions returns the most recent N archived excursions for a
// session, oldest first.
func (s *Store) ListExcursions(sessionID string, limit int) ([]ExcursionRow, error) {
	rows, err := s.db.Query(
		`SELECT session_id, start_ts, end_ts, min_reliability, dominant_cause, peak_anomaly, created_at
		 FROM excursion_events WHERE session_id = ? ORDER BY start_ts DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list excursions: %w", err)
	}
	defer rows.Close()

	var out []ExcursionRow
	for rows.Next() {
		var r ExcursionRow
		var createdStr string
		if err := rows.Scan(&r.SessionID, &r.StartTS, &r.EndTS, &r.MinReliability,
			&r.DominantCause, &r.PeakAnomaly, &createdStr); err != nil {
			return nil, fmt.Errorf("scan excursion: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, r)
	}
	reverse(out)
	return out, rows.Err()
}

// #endregion record-excursion

// #region helpers

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// #endregion helpers
