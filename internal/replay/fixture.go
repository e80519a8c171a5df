package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Indra-jith/failure-aware-vision/internal/signal"
	"github.com/Indra-jith/failure-aware-vision/internal/trust"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a recorded
// tick sequence, optional config overrides, and the assertions the replay
// outcome must satisfy.
type Fixture struct {
	Description string                `json:"description"`
	Config      FixtureConfig         `json:"config"`
	Ticks       []FixtureTick         `json:"ticks"`
	Expected    FixtureExpectedResult `json:"expected"`
}

// FixtureTick mirrors TickInput with JSON tags and a string status tag.
type FixtureTick struct {
	T       float64 `json:"t"`
	Status  string  `json:"status"`
	Anomaly float64 `json:"anomaly"`
}

// FixtureConfig overrides individual trust.Config fields; zero-valued
// fields fall back to trust.DefaultConfig(). A pointer-free struct keeps
// fixture JSON terse for the common "just override one constant" case, at
// the cost of being unable to express "explicitly zero". No reference
// constant is legitimately zero, so this is safe.
type FixtureConfig struct {
	RRecover float64 `json:"r_recover,omitempty"`
	RFrozen  float64 `json:"r_frozen,omitempty"`
	RBlank   float64 `json:"r_blank,omitempty"`
	RCorrupt float64 `json:"r_corrupt,omitempty"`
	Leak     float64 `json:"leak,omitempty"`
	Gain     float64 `json:"gain,omitempty"`
	DTMax    float64 `json:"dt_max,omitempty"`
}

// FixtureExpectedResult captures the assertions a fixture makes about its
// replay outcome.
type FixtureExpectedResult struct {
	FinalPolicy         string   `json:"final_policy"`
	MinReliabilityGTE   *float64 `json:"min_reliability_gte,omitempty"`
	FinalReliabilityGTE *float64 `json:"final_reliability_gte,omitempty"`
	FinalReliabilityLTE *float64 `json:"final_reliability_lte,omitempty"`
	ExcursionCount      int      `json:"excursion_count"`
	DominantCauses      []string `json:"dominant_causes,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToTickInputs converts the fixture's tick list into engine-ready
// TickInputs, resolving each status tag via signal.ParseVisionStatus.
func (f *Fixture) ToTickInputs() ([]TickInput, error) {
	out := make([]TickInput, len(f.Ticks))
	for i, ft := range f.Ticks {
		status, err := signal.ParseVisionStatus(ft.Status)
		if err != nil {
			return nil, fmt.Errorf("tick %d: %w", i, err)
		}
		out[i] = TickInput{Timestamp: ft.T, Status: status, Anomaly: ft.Anomaly}
	}
	return out, nil
}

// ToTrustConfig overlays non-zero fixture overrides onto trust.DefaultConfig().
func (fc *FixtureConfig) ToTrustConfig() trust.Config {
	cfg := trust.DefaultConfig()
	if fc.RRecover != 0 {
		cfg.RRecover = fc.RRecover
	}
	if fc.RFrozen != 0 {
		cfg.RFrozen = fc.RFrozen
	}
	if fc.RBlank != 0 {
		cfg.RBlank = fc.RBlank
	}
	if fc.RCorrupt != 0 {
		cfg.RCorrupt = fc.RCorrupt
	}
	if fc.Leak != 0 {
		cfg.Leak = fc.Leak
	}
	if fc.Gain != 0 {
		cfg.Gain = fc.Gain
	}
	if fc.DTMax != 0 {
		cfg.DTMax = fc.DTMax
	}
	return cfg
}

// #endregion fixture-loader

// #region assertions

// Check runs the fixture's ticks and reports every expectation that
// failed to hold; an empty result means the fixture passed.
func (f *Fixture) Check() ([]string, error) {
	ticks, err := f.ToTickInputs()
	if err != nil {
		return nil, err
	}
	result := Run(f.Config.ToTrustConfig(), ticks)
	summary := Summarize(result)

	var failures []string

	wantPolicy, err := parsePolicy(f.Expected.FinalPolicy)
	if err != nil {
		return nil, err
	}
	if summary.FinalPolicy != wantPolicy {
		failures = append(failures, fmt.Sprintf("final policy: want %s, got %s", wantPolicy, summary.FinalPolicy))
	}
	if summary.ExcursionCount != f.Expected.ExcursionCount {
		failures = append(failures, fmt.Sprintf("excursion count: want %d, got %d", f.Expected.ExcursionCount, summary.ExcursionCount))
	}
	if f.Expected.MinReliabilityGTE != nil {
		min := minReliability(result)
		if min < *f.Expected.MinReliabilityGTE {
			failures = append(failures, fmt.Sprintf("min reliability: want >= %f, got %f", *f.Expected.MinReliabilityGTE, min))
		}
	}
	if f.Expected.FinalReliabilityGTE != nil && summary.FinalReliability < *f.Expected.FinalReliabilityGTE {
		failures = append(failures, fmt.Sprintf("final reliability: want >= %f, got %f", *f.Expected.FinalReliabilityGTE, summary.FinalReliability))
	}
	if f.Expected.FinalReliabilityLTE != nil && summary.FinalReliability > *f.Expected.FinalReliabilityLTE {
		failures = append(failures, fmt.Sprintf("final reliability: want <= %f, got %f", *f.Expected.FinalReliabilityLTE, summary.FinalReliability))
	}
	for i, want := range f.Expected.DominantCauses {
		if i >= len(summary.DominantCauses) {
			failures = append(failures, fmt.Sprintf("dominant cause %d: want %s, got none", i, want))
			continue
		}
		if summary.DominantCauses[i].String() != want && statusTag(summary.DominantCauses[i]) != want {
			failures = append(failures, fmt.Sprintf("dominant cause %d: want %s, got %s", i, want, summary.DominantCauses[i]))
		}
	}

	return failures, nil
}

func minReliability(r RunResult) float64 {
	min := 1.0
	for _, s := range r.Snapshots {
		if s.Reliability < min {
			min = s.Reliability
		}
	}
	return min
}

func statusTag(s signal.VisionStatus) string {
	switch s {
	case signal.StatusOK:
		return "OK"
	case signal.StatusFrozen:
		return "FROZEN"
	case signal.StatusBlank:
		return "BLANK"
	case signal.StatusCorrupted:
		return "CORRUPTED"
	default:
		return "UNKNOWN"
	}
}

func parsePolicy(s string) (trust.Policy, error) {
	switch s {
	case "ALLOWED", "VISION_ALLOWED":
		return trust.PolicyAllowed, nil
	case "DEGRADED", "VISION_DEGRADED":
		return trust.PolicyDegraded, nil
	case "BLOCKED", "VISION_BLOCKED":
		return trust.PolicyBlocked, nil
	default:
		return 0, fmt.Errorf("replay: unknown policy %q", s)
	}
}

// #endregion assertions
