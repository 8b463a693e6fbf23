package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquareResult holds the outcome of a chi-square independence test.
type ChiSquareResult struct {
	Statistic float64
	PValue    float64
	DF        int
}

// ChiSquareTest runs a chi-square test for independence over a
// contingency table of observed counts, at least 2x2, e.g.
//
//	[[conversionsA, nonConversionsA],
//	 [conversionsB, nonConversionsB]]
//
// Expected counts come from the row/column marginals. The table must be
// rectangular with non-negative entries and a positive grand total.
//
// On 2x2 tables (one degree of freedom) the Yates continuity correction
// is applied, shrinking each |observed - expected| by 0.5 before
// squaring.
func ChiSquareTest(table [][]float64) (ChiSquareResult, error) {
	if len(table) < 2 || len(table[0]) < 2 {
		return ChiSquareResult{}, fmt.Errorf("contingency table must be at least 2x2")
	}

	rows := len(table)
	cols := len(table[0])

	rowSums := make([]float64, rows)
	colSums := make([]float64, cols)
	total := 0.0

	for i, row := range table {
		if len(row) != cols {
			return ChiSquareResult{}, fmt.Errorf("contingency table rows must all have %d columns, row %d has %d", cols, i, len(row))
		}
		for j, observed := range row {
			if observed < 0 {
				return ChiSquareResult{}, fmt.Errorf("contingency table counts must be non-negative, got %g at [%d][%d]", observed, i, j)
			}
			rowSums[i] += observed
			colSums[j] += observed
			total += observed
		}
	}

	if total == 0 {
		return ChiSquareResult{}, fmt.Errorf("contingency table must have a positive total count")
	}

	df := (rows - 1) * (cols - 1)
	yates := df == 1

	chi2 := 0.0
	for i, row := range table {
		for j, observed := range row {
			expected := rowSums[i] * colSums[j] / total
			if expected == 0 {
				continue
			}
			diff := math.Abs(observed - expected)
			if yates {
				diff = math.Max(0, diff-0.5)
			}
			chi2 += diff * diff / expected
		}
	}

	dist := distuv.ChiSquared{K: float64(df)}
	p := dist.Survival(chi2)

	return ChiSquareResult{Statistic: chi2, PValue: p, DF: df}, nil
}
