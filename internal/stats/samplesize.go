package stats

import (
	"fmt"
	"math"
)

// SampleSize calculates the required sample size per group to detect a
// minimum relative effect over a baseline conversion rate, using the
// standard two-proportion power formula. The result is rounded up.
//
// baselineRate and the derived treatment rate must lie in (0, 1), mde
// must be positive (0.2 means a 20% relative lift), and alpha and power
// must lie in (0, 1).
func SampleSize(baselineRate, mde, alpha, power float64, twoTailed bool) (int, error) {
	if baselineRate <= 0 || baselineRate >= 1 {
		return 0, fmt.Errorf("baseline rate must be between 0 and 1, got %g", baselineRate)
	}
	if mde <= 0 {
		return 0, fmt.Errorf("minimum detectable effect must be positive, got %g", mde)
	}
	if alpha <= 0 || alpha >= 1 {
		return 0, fmt.Errorf("alpha must be between 0 and 1, got %g", alpha)
	}
	if power <= 0 || power >= 1 {
		return 0, fmt.Errorf("power must be between 0 and 1, got %g", power)
	}

	treatmentRate := baselineRate * (1 + mde)
	if treatmentRate >= 1 {
		return 0, fmt.Errorf("treatment rate %g would reach or exceed 1", treatmentRate)
	}

	var zAlpha float64
	if twoTailed {
		zAlpha = stdNormal.Quantile(1 - alpha/2)
	} else {
		zAlpha = stdNormal.Quantile(1 - alpha)
	}
	zBeta := stdNormal.Quantile(power)

	p1 := baselineRate
	p2 := treatmentRate
	pAvg := (p1 + p2) / 2

	numerator := zAlpha*math.Sqrt(2*pAvg*(1-pAvg)) + zBeta*math.Sqrt(p1*(1-p1)+p2*(1-p2))
	numerator *= numerator
	denominator := (p2 - p1) * (p2 - p1)

	return int(math.Ceil(numerator / denominator)), nil
}
