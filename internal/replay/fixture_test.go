package replay

import (
	"path/filepath"
	"testing"
)

func loadTestdata(t *testing.T, name string) *Fixture {
	t.Helper()
	f, err := LoadFixture(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("LoadFixture(%s): %v", name, err)
	}
	return f
}

func TestFixtures(t *testing.T) {
	names := []string{
		"stable_ok.json",
		"hard_freeze.json",
		"blank_dominance.json",
		"ml_decay.json",
		"clock_regression.json",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			f := loadTestdata(t, name)
			failures, err := f.Check()
			if err != nil {
				t.Fatalf("Check: %v", err)
			}
			if len(failures) != 0 {
				t.Fatalf("fixture failed: %v", failures)
			}
		})
	}
}

func TestFixtureConfigOverridesOnlyNonZeroFields(t *testing.T) {
	fc := FixtureConfig{RBlank: 0.9}
	cfg := fc.ToTrustConfig()
	if cfg.RBlank != 0.9 {
		t.Fatalf("expected override to apply, got %f", cfg.RBlank)
	}
	if cfg.RFrozen != 0.30 {
		t.Fatalf("expected RFrozen to fall back to default 0.30, got %f", cfg.RFrozen)
	}
}

func TestLoadFixtureMissingFile(t *testing.T) {
	if _, err := LoadFixture("testdata/does_not_exist.json"); err == nil {
		t.Fatal("expected error for missing fixture file")
	}
}
