package stats

import (
	"github.com/splitkit/splitkit/internal/store"
)

// Result represents the statistical readout of a stored experiment.
type Result struct {
	Variants        []VariantResult
	Confident       bool    // leader beats the comparison at >= 95%
	ConfidenceLevel float64 // 0-1, one-sided confidence that the leader is ahead
	Leader          int     // index into Variants
}

// VariantResult contains the per-variant numbers shown in reports.
type VariantResult struct {
	Name        string
	Exposures   int
	Conversions int
	Rate        float64
	CILower     float64
	CIUpper     float64
}

// Analyze computes rates, 95% Wilson intervals, the leading variant, and
// the confidence that the leader genuinely beats its comparison. The
// first variant is treated as the control: when a challenger leads it is
// compared against the control, and when the control leads it is compared
// against the best challenger.
func Analyze(exp *store.Experiment, variantStats []store.VariantStats) *Result {
	statsByName := make(map[string]store.VariantStats, len(variantStats))
	for _, s := range variantStats {
		statsByName[s.Variant] = s
	}

	variants := make([]VariantResult, len(exp.Variants))
	maxRate := 0.0
	leader := 0

	for i, name := range exp.Variants {
		stat := statsByName[name] // zero-valued when the variant has no events

		rate := 0.0
		if stat.Exposures > 0 {
			rate = float64(stat.Conversions) / float64(stat.Exposures)
		}

		var ciLower, ciUpper float64
		if stat.Exposures > 0 {
			if ci, err := WilsonInterval(stat.Conversions, stat.Exposures, 0.95); err == nil {
				ciLower, ciUpper = ci.Lower, ci.Upper
			}
		}

		variants[i] = VariantResult{
			Name:        name,
			Exposures:   stat.Exposures,
			Conversions: stat.Conversions,
			Rate:        rate,
			CILower:     ciLower,
			CIUpper:     ciUpper,
		}

		if rate > maxRate {
			maxRate = rate
			leader = i
		}
	}

	var confidence float64
	if len(variants) >= 2 {
		comparison := 0
		if leader == 0 {
			// Control leads, compare against the best challenger.
			comparison = 1
			bestRate := variants[1].Rate
			for i := 2; i < len(variants); i++ {
				if variants[i].Rate > bestRate {
					bestRate = variants[i].Rate
					comparison = i
				}
			}
		}
		confidence = leaderConfidence(variants[leader], variants[comparison])
	}

	return &Result{
		Variants:        variants,
		Confident:       confidence >= 0.95,
		ConfidenceLevel: confidence,
		Leader:          leader,
	}
}

// leaderConfidence returns the one-sided confidence that variant a's true
// rate exceeds variant b's, i.e. the complement of the one-tailed
// two-proportion p-value. With no data on either side there is nothing to
// compare and the answer is an even 0.5.
func leaderConfidence(a, b VariantResult) float64 {
	if a.Exposures == 0 || b.Exposures == 0 {
		return 0.5
	}

	res, err := ZTestProportions(a.Conversions, a.Exposures, b.Conversions, b.Exposures, false)
	if err != nil {
		return 0.5
	}
	if res.StdError == 0 {
		return 0.5
	}
	return 1 - res.PValue
}
