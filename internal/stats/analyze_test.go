package stats_test

import (
	"testing"

	"github.com/splitkit/splitkit/internal/stats"
	"github.com/splitkit/splitkit/internal/store"
)

func TestAnalyze_ClearWinner(t *testing.T) {
	exp := &store.Experiment{
		Name:     "hero",
		Variants: []string{"control", "treatment"},
	}
	variantStats := []store.VariantStats{
		{Variant: "control", Exposures: 1000, Conversions: 50},
		{Variant: "treatment", Exposures: 1000, Conversions: 100},
	}

	result := stats.Analyze(exp, variantStats)

	if result.Leader != 1 {
		t.Errorf("leader = %d, want 1 (treatment)", result.Leader)
	}
	if !result.Confident {
		t.Errorf("expected a confident result, confidence was %f", result.ConfidenceLevel)
	}
	if result.ConfidenceLevel < 0.95 {
		t.Errorf("confidence %f, want >= 0.95", result.ConfidenceLevel)
	}
}

func TestAnalyze_NoData(t *testing.T) {
	exp := &store.Experiment{
		Name:     "empty",
		Variants: []string{"a", "b"},
	}

	result := stats.Analyze(exp, nil)

	if result.Confident {
		t.Error("no data must not be confident")
	}
	if result.ConfidenceLevel != 0.5 {
		t.Errorf("confidence %f, want 0.5 with no data", result.ConfidenceLevel)
	}
	for _, v := range result.Variants {
		if v.Rate != 0 || v.Exposures != 0 {
			t.Errorf("variant %s has nonzero numbers without events", v.Name)
		}
	}
}

func TestAnalyze_SmallSampleNotConfident(t *testing.T) {
	exp := &store.Experiment{
		Name:     "tiny",
		Variants: []string{"control", "treatment"},
	}
	variantStats := []store.VariantStats{
		{Variant: "control", Exposures: 20, Conversions: 2},
		{Variant: "treatment", Exposures: 20, Conversions: 5},
	}

	result := stats.Analyze(exp, variantStats)

	if result.Confident {
		t.Errorf("small sample should not be confident, confidence was %f", result.ConfidenceLevel)
	}
	if result.Leader != 1 {
		t.Errorf("leader = %d, want 1", result.Leader)
	}
}

func TestAnalyze_ControlLeadingComparesBestChallenger(t *testing.T) {
	exp := &store.Experiment{
		Name:     "three-way",
		Variants: []string{"control", "b", "c"},
	}
	variantStats := []store.VariantStats{
		{Variant: "control", Exposures: 1000, Conversions: 200},
		{Variant: "b", Exposures: 1000, Conversions: 90},
		{Variant: "c", Exposures: 1000, Conversions: 110},
	}

	result := stats.Analyze(exp, variantStats)

	if result.Leader != 0 {
		t.Errorf("leader = %d, want 0 (control)", result.Leader)
	}
	// Control is far ahead of even the best challenger.
	if result.ConfidenceLevel < 0.95 {
		t.Errorf("confidence %f, want >= 0.95", result.ConfidenceLevel)
	}
}

func TestAnalyze_IntervalsBracketRates(t *testing.T) {
	exp := &store.Experiment{
		Name:     "ci",
		Variants: []string{"a", "b"},
	}
	variantStats := []store.VariantStats{
		{Variant: "a", Exposures: 500, Conversions: 40},
		{Variant: "b", Exposures: 400, Conversions: 36},
	}

	result := stats.Analyze(exp, variantStats)

	for _, v := range result.Variants {
		if v.Rate < v.CILower || v.Rate > v.CIUpper {
			t.Errorf("variant %s rate %f outside its interval [%f, %f]", v.Name, v.Rate, v.CILower, v.CIUpper)
		}
	}
}
