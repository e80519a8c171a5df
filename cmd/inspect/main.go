package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Indra-jith/failure-aware-vision/internal/archive"
)

// #region main

// cmd/inspect queries the session archive: with no --session it lists
// recent sessions; with --session it shows that session's tick and
// excursion history, optionally filtered to the last N ticks and rendered
// as JSON.
func main() {
	dbPath := flag.String("db", "", "path to the session archive db")
	sessionID := flag.String("session", "", "show tick/excursion detail for one session")
	last := flag.Int("last", 20, "show N most recent ticks and excursions (sessions, without --session)")
	jsonOut := flag.Bool("json", false, "output as JSON instead of a table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/vision_trust.db [--session id] [--last N] [--json]")
		os.Exit(2)
	}

	store, err := archive.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var runErr error
	if *sessionID != "" {
		runErr = runDetailMode(store, *sessionID, *last, *jsonOut)
	} else {
		runErr = runListMode(store, *last, *jsonOut)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

func runListMode(store *archive.Store, last int, jsonOut bool) error {
	sessions, err := store.ListSessions(last)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}

	if jsonOut {
		return printJSON(sessions)
	}

	fmt.Printf("%-10s  %-20s  %s\n", "Session", "Started", "Note")
	fmt.Printf("%-10s  %-20s  %s\n", "----------", "--------------------", "----")
	for _, s := range sessions {
		fmt.Printf("%-10s  %-20s  %s\n", shortID(s.ID), s.StartedAt.Format("2006-01-02T15:04:05Z"), s.Note)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type sessionDetail struct {
	SessionID  string                 `json:"session_id"`
	Ticks      []archive.TickRow      `json:"ticks"`
	Excursions []archive.ExcursionRow `json:"excursions"`
	Summary    sessionSummary         `json:"summary"`
}

type sessionSummary struct {
	TickCount        int     `json:"tick_count"`
	ExcursionCount   int     `json:"excursion_count"`
	FinalReliability float64 `json:"final_reliability"`
	FinalPolicy      string  `json:"final_policy"`
}

func runDetailMode(store *archive.Store, sessionID string, last int, jsonOut bool) error {
	ticks, err := store.ListTicks(sessionID, last)
	if err != nil {
		return err
	}
	if len(ticks) == 0 {
		return fmt.Errorf("no ticks found for session %s", sessionID)
	}
	excursions, err := store.ListExcursions(sessionID, last)
	if err != nil {
		return err
	}

	lastTick := ticks[len(ticks)-1]
	detail := sessionDetail{
		SessionID:  sessionID,
		Ticks:      ticks,
		Excursions: excursions,
		Summary: sessionSummary{
			TickCount:        len(ticks),
			ExcursionCount:   len(excursions),
			FinalReliability: lastTick.Reliability,
			FinalPolicy:      lastTick.Policy,
		},
	}

	if jsonOut {
		return printJSON(detail)
	}

	fmt.Printf("Session:     %s\n", sessionID)
	fmt.Printf("Ticks:       %d\n", detail.Summary.TickCount)
	fmt.Printf("Excursions:  %d\n", detail.Summary.ExcursionCount)
	fmt.Printf("Final state: reliability=%.3f policy=%s\n\n", detail.Summary.FinalReliability, detail.Summary.FinalPolicy)

	fmt.Printf("%-10s  %-10s  %-16s  %-8s  %s\n", "Timestamp", "Status", "Policy", "Reliab.", "Anomaly")
	fmt.Printf("%-10s  %-10s  %-16s  %-8s  %s\n", "----------", "----------", "----------------", "--------", "-------")
	for _, t := range ticks {
		fmt.Printf("%10.3f  %-10s  %-16s  %8.3f  %.6f\n", t.Timestamp, t.Status, t.Policy, t.Reliability, t.Anomaly)
	}

	if len(excursions) > 0 {
		fmt.Printf("\n%-10s  %-10s  %-8s  %-16s  %s\n", "Start", "End", "Min Rel", "Cause", "Peak Anomaly")
		fmt.Printf("%-10s  %-10s  %-8s  %-16s  %s\n", "----------", "----------", "--------", "----------------", "------------")
		for _, e := range excursions {
			fmt.Printf("%10.3f  %10.3f  %8.3f  %-16s  %.6f\n", e.StartTS, e.EndTS, e.MinReliability, e.DominantCause, e.PeakAnomaly)
		}
	}
	return nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
