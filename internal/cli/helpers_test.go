package cli

import (
	"testing"

	"github.com/splitkit/splitkit/internal/store"
)

func TestParseVariants(t *testing.T) {
	got := parseVariants(" control , treatment ,")
	if len(got) != 2 || got[0] != "control" || got[1] != "treatment" {
		t.Errorf("parseVariants = %v, want [control treatment]", got)
	}
}

func TestParseWeights(t *testing.T) {
	got, err := parseWeights("9, 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != 9 || got[1] != 1 {
		t.Errorf("parseWeights = %v, want [9 1]", got)
	}

	if empty, err := parseWeights(""); err != nil || empty != nil {
		t.Errorf("parseWeights(\"\") = %v, %v; want nil, nil", empty, err)
	}

	if _, err := parseWeights("1,abc"); err == nil {
		t.Error("expected error for a non-numeric weight")
	}
}

func TestBuildExperiment(t *testing.T) {
	seed := int64(42)
	stored := &store.Experiment{
		Name:     "rebuild",
		Variants: []string{"a", "b"},
		Weights:  []float64{3, 1},
		Seed:     &seed,
	}

	exp, err := buildExperiment(stored)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(exp.Variants) != 2 {
		t.Fatalf("got %d variants, want 2", len(exp.Variants))
	}
	if exp.Variants[0].Weight != 0.75 || exp.Variants[1].Weight != 0.25 {
		t.Errorf("normalized weights = [%f %f], want [0.75 0.25]",
			exp.Variants[0].Weight, exp.Variants[1].Weight)
	}

	// Rebuilt instances must route subjects identically.
	other, err := buildExperiment(stored)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range []string{"u1", "u2", "u3", "u4"} {
		if exp.Assign(id).Name != other.Assign(id).Name {
			t.Errorf("subject %s routed differently across rebuilds", id)
		}
	}
}

func TestBuildExperiment_InvalidStored(t *testing.T) {
	stored := &store.Experiment{
		Name:     "broken",
		Variants: []string{"only"},
	}
	if _, err := buildExperiment(stored); err == nil {
		t.Error("expected error for a single-variant definition")
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[int]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		12345:   "12,345",
		1234567: "1,234,567",
	}
	for n, want := range cases {
		if got := formatNumber(n); got != want {
			t.Errorf("formatNumber(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(0); got != "0%" {
		t.Errorf("formatPercent(0) = %s, want 0%%", got)
	}
	if got := formatPercent(0.1234); got != "12.34%" {
		t.Errorf("formatPercent(0.1234) = %s, want 12.34%%", got)
	}
}
