package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/Indra-jith/failure-aware-vision/internal/anomaly"
	"github.com/Indra-jith/failure-aware-vision/internal/archive"
	"github.com/Indra-jith/failure-aware-vision/internal/recorder"
	"github.com/Indra-jith/failure-aware-vision/internal/replay"
	"github.com/Indra-jith/failure-aware-vision/internal/signal"
	"github.com/Indra-jith/failure-aware-vision/internal/supervisor"
)

// #region main

// cmd/supervisor is the live/replay/synthetic driver loop: it wires a
// frame source, the anomaly gRPC service, and the trust pipeline through a
// single serialized per-tick path, archiving every tick and excursion as
// it runs.
func main() {
	mode := flag.String("mode", envOr("VISION_MODE", "synthetic"), "frame source: live | replay | synthetic")
	dbPath := flag.String("db", envOr("VISION_DB", "vision_trust.db"), "path to the session archive db")
	anomalyAddr := flag.String("anomaly-addr", envOr("ANOMALY_ADDR", ""), "anomaly-source gRPC address (empty = treat score as 0)")
	frameDir := flag.String("frame-dir", "", "directory of raw 8-bit luminance frames (live mode)")
	width := flag.Int("width", 64, "frame width in pixels (live mode raw frames)")
	height := flag.Int("height", 64, "frame height in pixels (live mode raw frames)")
	fixturePath := flag.String("fixture", "", "replay fixture JSON path (replay mode)")
	rate := flag.Float64("rate", 30.0, "tick cadence in Hz (synthetic and live modes)")
	ticks := flag.Int("ticks", 300, "number of ticks to generate (synthetic mode)")
	note := flag.String("note", "", "freeform session note recorded in the archive")
	flag.Parse()

	sourceMode, err := supervisor.ParseSourceMode(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	store, err := archive.NewStore(*dbPath)
	if err != nil {
		log.Fatalf("open archive: %v", err)
	}
	defer store.Close()

	sess, err := store.StartSession(*note)
	if err != nil {
		log.Fatalf("start session: %v", err)
	}
	fmt.Printf("session %s started (mode=%s db=%s)\n", sess.ID, sourceMode, *dbPath)

	if sourceMode == supervisor.SourceModeReplay {
		runReplay(store, sess.ID, *fixturePath)
		return
	}
	runFrameDriven(store, sess.ID, sourceMode, *anomalyAddr, *frameDir, *width, *height, *rate, *ticks)
}

// #endregion main

// #region frame-driven

// runFrameDriven covers both "live" (frames read from disk) and
// "synthetic" (procedurally generated frames) modes: both flow through the
// full Signal Analyzer -> Anomaly Source -> Trust Engine -> Recorder
// pipeline via internal/supervisor.
func runFrameDriven(store *archive.Store, sessionID string, mode supervisor.SourceMode, anomalyAddr, frameDir string, width, height int, rate float64, syntheticTicks int) {
	var scorer supervisor.AnomalyScorer
	if anomalyAddr != "" {
		client, err := anomaly.NewClient(anomalyAddr)
		if err != nil {
			log.Printf("[SUPERVISOR] anomaly source unreachable, proceeding with score=0: %v", err)
		} else {
			defer client.Close()
			scorer = client
		}
	}

	sup := supervisor.New(scorer, mode)
	ctx := context.Background()

	var frames []signal.Frame
	var err error
	if mode == supervisor.SourceModeLive {
		frames, err = loadFrameDir(frameDir, width, height, rate)
	} else {
		frames = syntheticFrames(width, height, rate, syntheticTicks)
	}
	if err != nil {
		log.Fatalf("load frames: %v", err)
	}

	for i, f := range frames {
		snap, err := sup.ProcessFrame(ctx, fmt.Sprintf("frame-%d", i), f)
		if err != nil {
			log.Printf("[SUPERVISOR] skipped frame %d: %v", i, err)
			continue
		}
		if err := store.RecordTick(sessionID, snap); err != nil {
			log.Printf("[SUPERVISOR] archive tick failed: %v", err)
		}
		if snap.ClosedExcursion != nil {
			if err := store.RecordExcursion(sessionID, *snap.ClosedExcursion); err != nil {
				log.Printf("[SUPERVISOR] archive excursion failed: %v", err)
			}
		}
	}

	printSummary(sup.Recorder())
}

// syntheticFrames generates a gently drifting brightness pattern around
// mid-grey. The pipeline cannot tell a synthetic source from a camera.
func syntheticFrames(width, height int, rate float64, n int) []signal.Frame {
	frames := make([]signal.Frame, 0, n)
	for i := 0; i < n; i++ {
		ts := float64(i) / rate
		level := 128 + 6*math.Sin(float64(i)/37.0)
		luma := make([]byte, width*height)
		for j := range luma {
			v := level + float64((j*7+i*13)%11) - 5
			luma[j] = clampByte(v)
		}
		f, _ := signal.NewFrame(width, height, luma, ts)
		frames = append(frames, f)
	}
	return frames
}

// loadFrameDir reads raw width*height luminance files from dir in sorted
// filename order, assigning timestamps at the given cadence. This is the
// narrowest possible frame source, not a general image loader.
func loadFrameDir(dir string, width, height int, rate float64) ([]signal.Frame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frame dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	frames := make([]signal.Frame, 0, len(names))
	for i, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read frame %s: %w", name, err)
		}
		f, err := signal.NewFrame(width, height, data, float64(i)/rate)
		if err != nil {
			return nil, fmt.Errorf("frame %s: %w", name, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// #endregion frame-driven

// #region replay-mode

// runReplay drives a fixture's (status, anomaly) triples straight through
// a bare trust.Engine via internal/replay, bypassing the analyzer and
// anomaly source entirely, since the fixture already supplies their
// output.
func runReplay(store *archive.Store, sessionID, fixturePath string) {
	if fixturePath == "" {
		log.Fatal("replay mode requires --fixture")
	}
	f, err := replay.LoadFixture(fixturePath)
	if err != nil {
		log.Fatalf("load fixture: %v", err)
	}

	ticksIn, err := f.ToTickInputs()
	if err != nil {
		log.Fatalf("parse fixture ticks: %v", err)
	}
	result := replay.Run(f.Config.ToTrustConfig(), ticksIn)

	for _, snap := range result.Snapshots {
		if err := store.RecordTick(sessionID, snap); err != nil {
			log.Printf("[SUPERVISOR] archive tick failed: %v", err)
		}
	}
	for _, ev := range result.Excursions {
		if err := store.RecordExcursion(sessionID, ev); err != nil {
			log.Printf("[SUPERVISOR] archive excursion failed: %v", err)
		}
	}

	summary := replay.Summarize(result)
	fmt.Printf("replayed %q: %d ticks, final policy=%s, excursions=%d\n",
		f.Description, len(result.Snapshots), summary.FinalPolicy, summary.ExcursionCount)
}

// #endregion replay-mode

// #region output

func printSummary(rec *recorder.Recorder) {
	ticks := rec.Ticks()
	if len(ticks) == 0 {
		fmt.Println("no ticks recorded")
		return
	}
	last := ticks[len(ticks)-1]
	fmt.Printf("ticks=%d final_reliability=%.3f final_policy=%s excursions=%d\n",
		len(ticks), last.Reliability, last.Policy, len(rec.Excursions()))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion output
