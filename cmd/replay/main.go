package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Indra-jith/failure-aware-vision/internal/archive"
	"github.com/Indra-jith/failure-aware-vision/internal/replay"
	"github.com/Indra-jith/failure-aware-vision/internal/signal"
	"github.com/Indra-jith/failure-aware-vision/internal/trust"
)

// #region main

// cmd/replay re-runs a tick sequence through a fresh trust.Engine and
// checks the outcome, either against a fixture's expected block or against
// a previously archived session. A matching replay demonstrates the
// engine's determinism; a divergence flags drift between the archived run
// and the current dynamics.
func main() {
	dbPath := flag.String("db", "", "path to the session archive db (archive mode)")
	sessionID := flag.String("session", "", "session id to replay (archive mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/vision_trust.db --session id")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runArchiveMode(*dbPath, *sessionID)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	failures, err := f.Check()
	if err != nil {
		fmt.Fprintf(os.Stderr, "run fixture: %v\n", err)
		return 2
	}

	fmt.Printf("%s\n", f.Description)
	if len(failures) == 0 {
		fmt.Println("PASS")
		return 0
	}
	for _, msg := range failures {
		fmt.Printf("FAIL: %s\n", msg)
	}
	return 1
}

// #endregion fixture-mode

// #region archive-mode

// runArchiveMode re-plays an archived session's ticks through a fresh
// engine at default config and prints a per-tick comparison table against
// what was actually archived, flagging any policy divergence.
func runArchiveMode(dbPath, sessionID string) int {
	if sessionID == "" {
		fmt.Fprintln(os.Stderr, "archive mode requires --session")
		return 2
	}

	store, err := archive.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer store.Close()

	rows, err := store.ListTicks(sessionID, 1_000_000)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list ticks: %v\n", err)
		return 2
	}
	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "no ticks found for session %s\n", sessionID)
		return 2
	}

	ticksIn := make([]replay.TickInput, len(rows))
	for i, r := range rows {
		status, err := signal.ParseVisionStatus(r.Status)
		if err != nil {
			fmt.Fprintf(os.Stderr, "row %d: %v\n", i, err)
			return 2
		}
		ticksIn[i] = replay.TickInput{Timestamp: r.Timestamp, Status: status, Anomaly: r.Anomaly}
	}

	result := replay.Run(trust.DefaultConfig(), ticksIn)
	return printComparison(rows, result.Snapshots)
}

// #endregion archive-mode

// #region output

// printComparison prints a per-tick archived-vs-replayed policy table and
// returns the process exit code: 0 if every tick's policy matches, 1 if
// any diverges.
func printComparison(archived []archive.TickRow, replayed []trust.TickSnapshot) int {
	fmt.Printf("%-10s  %-16s  %-16s  %s\n", "Timestamp", "Archived", "Replayed", "Match")
	fmt.Printf("%-10s  %-16s  %-16s  %s\n", "----------", "----------------", "----------------", "-----")

	n := len(archived)
	if len(replayed) < n {
		n = len(replayed)
	}

	matches := 0
	for i := 0; i < n; i++ {
		want := archived[i].Policy
		got := replayed[i].Policy.String()
		match := "DIFF"
		if want == got {
			match = "OK"
			matches++
		}
		fmt.Printf("%10.3f  %-16s  %-16s  %s\n", archived[i].Timestamp, want, got, match)
	}

	diverge := n - matches
	fmt.Printf("\nSummary: %d ticks, %d match, %d diverge\n", n, matches, diverge)
	if diverge > 0 {
		return 1
	}
	return 0
}

// #endregion output
