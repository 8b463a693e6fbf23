package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/splitkit/splitkit/internal/experiment"
	"github.com/splitkit/splitkit/internal/store"
)

// withStore opens the database, executes the function, and handles cleanup.
func withStore(fn func(*store.SQLiteStore) error) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	return fn(s)
}

// parseVariants splits a comma-separated variant list and trims each name.
func parseVariants(list string) []string {
	parts := strings.Split(list, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// parseWeights parses a comma-separated weight list like "9,1" or
// "0.5,0.3,0.2".
func parseWeights(list string) ([]float64, error) {
	if list == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	weights := make([]float64, len(parts))
	for i, p := range parts {
		w, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", strings.TrimSpace(p), err)
		}
		weights[i] = w
	}
	return weights, nil
}

// buildExperiment reconstructs the in-memory experiment from a stored
// definition. Assignment determinism only depends on the experiment name
// and variant configuration, so the rebuilt instance routes subjects
// exactly as any previous invocation did.
func buildExperiment(se *store.Experiment) (*experiment.Experiment, error) {
	variants := make([]*experiment.Variant, len(se.Variants))
	for i, name := range se.Variants {
		weight := 1.0
		if i < len(se.Weights) {
			weight = se.Weights[i]
		}
		variants[i] = experiment.NewWeightedVariant(name, weight)
	}

	var opts []experiment.Option
	if se.Seed != nil {
		opts = append(opts, experiment.WithSeed(*se.Seed))
	}

	exp, err := experiment.New(se.Name, variants, opts...)
	if err != nil {
		return nil, fmt.Errorf("stored experiment %q is invalid: %w", se.Name, err)
	}
	return exp, nil
}

func formatPercent(rate float64) string {
	if rate == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", rate*100)
}

func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%d,%03d", n/1000, n%1000)
	}
	return fmt.Sprintf("%d,%03d,%03d", n/1000000, (n/1000)%1000, n%1000)
}
