package stats

import (
	"fmt"
	"math"
)

// Interval is a two-sided confidence interval for a proportion, with both
// bounds clamped to [0, 1].
type Interval struct {
	Lower float64
	Upper float64
}

// WilsonInterval calculates the Wilson score confidence interval for a
// binomial proportion. It's more accurate for small samples than the
// normal approximation and always contains the point estimate.
func WilsonInterval(conversions, exposures int, confidence float64) (Interval, error) {
	if exposures <= 0 {
		return Interval{}, fmt.Errorf("exposures must be positive, got %d", exposures)
	}
	if conversions < 0 || conversions > exposures {
		return Interval{}, fmt.Errorf("conversions must be between 0 and %d, got %d", exposures, conversions)
	}
	if confidence <= 0 || confidence >= 1 {
		return Interval{}, fmt.Errorf("confidence level must be between 0 and 1, got %g", confidence)
	}

	p := float64(conversions) / float64(exposures)
	n := float64(exposures)
	z := stdNormal.Quantile(1 - (1-confidence)/2)

	denominator := 1 + z*z/n
	center := (p + z*z/(2*n)) / denominator
	spread := (z / denominator) * math.Sqrt(p*(1-p)/n+z*z/(4*n*n))

	lower := math.Max(0, center-spread)
	upper := math.Min(1, center+spread)

	// At p = 0 and p = 1 the bound equals p algebraically, but the
	// rounding of center-spread can land a hair past it. Pin the bounds
	// so the interval always contains the point estimate.
	lower = math.Min(lower, p)
	upper = math.Max(upper, p)

	return Interval{Lower: lower, Upper: upper}, nil
}
