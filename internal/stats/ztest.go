package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// ZTestResult holds the outcome of a two-proportion z-test.
type ZTestResult struct {
	ZScore   float64
	PValue   float64
	StdError float64 // pooled standard error of the rate difference
}

// ZTestProportions tests whether two conversion rates differ, using the
// pooled-proportion standard error. With twoTailed the p-value covers
// differences in either direction; otherwise it is the upper-tail
// probability of A exceeding B.
//
// When the pooled standard error is exactly 0 (both rates 0 or both 1)
// there is no evidence of a difference and the result is (0, 1, 0).
func ZTestProportions(convA, expA, convB, expB int, twoTailed bool) (ZTestResult, error) {
	if expA <= 0 || expB <= 0 {
		return ZTestResult{}, fmt.Errorf("exposures must be positive, got %d and %d", expA, expB)
	}

	pA := float64(convA) / float64(expA)
	pB := float64(convB) / float64(expB)

	pooled := float64(convA+convB) / float64(expA+expB)
	se := math.Sqrt(pooled * (1 - pooled) * (1/float64(expA) + 1/float64(expB)))

	if se == 0 {
		return ZTestResult{ZScore: 0, PValue: 1, StdError: 0}, nil
	}

	z := (pA - pB) / se

	var p float64
	if twoTailed {
		p = 2 * stdNormal.Survival(math.Abs(z))
	} else {
		p = stdNormal.Survival(z)
	}

	return ZTestResult{ZScore: z, PValue: p, StdError: se}, nil
}

// RelativeUplift returns the signed relative difference of the treatment
// rate over the control rate, e.g. 0.10 -> 0.12 is a 0.20 uplift. It
// fails when the control rate is exactly 0, since the ratio is undefined.
func RelativeUplift(controlRate, treatmentRate float64) (float64, error) {
	if controlRate == 0 {
		return 0, fmt.Errorf("control rate cannot be zero")
	}
	return (treatmentRate - controlRate) / controlRate, nil
}

// IsStatisticallySignificant reports whether a p-value clears the
// significance level. The boundary is exclusive: p equal to alpha is not
// significant.
func IsStatisticallySignificant(pValue, alpha float64) bool {
	return pValue < alpha
}
