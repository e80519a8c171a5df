package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Indra-jith/failure-aware-vision/internal/archive"
	"github.com/Indra-jith/failure-aware-vision/internal/replay"
)

// #region main

// cmd/fixture-export converts a window of an archived session's ticks back
// into a replay fixture, the inverse of cmd/replay's fixture mode: useful
// for turning a production run into a regression fixture under
// internal/replay/testdata.
func main() {
	dbPath := flag.String("db", "", "path to the session archive db")
	sessionID := flag.String("session", "", "session id to export")
	last := flag.Int("last", 300, "number of most recent ticks to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *sessionID == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/vision_trust.db --session id --out path/to/fixture.json [--last N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *sessionID, *last, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath, sessionID string, last int, outPath string) error {
	store, err := archive.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	ticks, err := store.ListTicks(sessionID, last)
	if err != nil {
		return fmt.Errorf("list ticks: %w", err)
	}
	if len(ticks) == 0 {
		return fmt.Errorf("no ticks found for session %s", sessionID)
	}

	excursions, err := store.ListExcursions(sessionID, last)
	if err != nil {
		return fmt.Errorf("list excursions: %w", err)
	}

	fixture := buildFixture(sessionID, ticks, excursions)
	return writeFixture(fixture, outPath)
}

func buildFixture(sessionID string, ticks []archive.TickRow, excursions []archive.ExcursionRow) replay.Fixture {
	fixtureTicks := make([]replay.FixtureTick, len(ticks))
	for i, t := range ticks {
		fixtureTicks[i] = replay.FixtureTick{T: t.Timestamp, Status: t.Status, Anomaly: t.Anomaly}
	}

	last := ticks[len(ticks)-1]
	causes := make([]string, 0, len(excursions))
	for _, e := range excursions {
		causes = append(causes, e.DominantCause)
	}

	return replay.Fixture{
		Description: fmt.Sprintf("exported from session %s (%d ticks)", sessionID, len(ticks)),
		Config:      replay.FixtureConfig{},
		Ticks:       fixtureTicks,
		Expected: replay.FixtureExpectedResult{
			FinalPolicy:    last.Policy,
			ExcursionCount: len(excursions),
			DominantCauses: causes,
		},
	}
}

func writeFixture(fixture replay.Fixture, outPath string) error {
	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Printf("wrote fixture to %s (%d bytes, %d ticks)\n", outPath, len(data), len(fixture.Ticks))
	return nil
}

// #endregion export
