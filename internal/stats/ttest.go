package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult holds the outcome of a two-sample t-test on means.
type TTestResult struct {
	Statistic float64
	PValue    float64
}

// TTestMeans compares the means of two samples, for continuous metrics
// like revenue per visitor. With equalVar it pools the variances
// (Student's t); otherwise it uses Welch's unequal-variance form with the
// Welch–Satterthwaite degrees of freedom. The p-value is always
// two-tailed.
//
// Identical constant samples have zero standard error; as with the
// z-test, that reports (0, 1) rather than propagating a NaN.
func TTestMeans(a, b []float64, equalVar bool) (TTestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return TTestResult{}, fmt.Errorf("each sample must have at least 2 values, got %d and %d", len(a), len(b))
	}

	na := float64(len(a))
	nb := float64(len(b))
	meanA := stat.Mean(a, nil)
	meanB := stat.Mean(b, nil)
	varA := stat.Variance(a, nil)
	varB := stat.Variance(b, nil)

	var se, df float64
	if equalVar {
		pooled := ((na-1)*varA + (nb-1)*varB) / (na + nb - 2)
		se = math.Sqrt(pooled * (1/na + 1/nb))
		df = na + nb - 2
	} else {
		vA := varA / na
		vB := varB / nb
		se = math.Sqrt(vA + vB)
		df = (vA + vB) * (vA + vB) / (vA*vA/(na-1) + vB*vB/(nb-1))
	}

	if se == 0 {
		return TTestResult{Statistic: 0, PValue: 1}, nil
	}

	t := (meanA - meanB) / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))

	return TTestResult{Statistic: t, PValue: p}, nil
}
