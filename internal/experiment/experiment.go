package experiment

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"
)

var (
	ErrTooFewVariants    = errors.New("experiment needs at least 2 variants")
	ErrNonPositiveWeight = errors.New("total variant weight must be positive")
)

// assignmentBuckets is the resolution of deterministic assignment: the
// subject hash is reduced to one of this many buckets before being mapped
// onto the cumulative weight line.
const assignmentBuckets = 10000

// Experiment owns an ordered set of weighted variants and assigns
// subjects to them. Deterministic assignment depends only on the subject
// id and the experiment name, so two independently constructed experiments
// with the same name and variant list route subjects identically. Random
// assignment uses an experiment-owned generator so a fixed seed replays
// the same sequence.
type Experiment struct {
	Name      string
	Variants  []*Variant
	CreatedAt time.Time

	rng *rand.Rand
}

// Option configures an experiment at construction time.
type Option func(*Experiment)

// WithSeed seeds the experiment's random generator, making unseeded
// (random) assignment reproducible in sequence.
func WithSeed(seed int64) Option {
	return func(e *Experiment) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// New validates the variant set, normalizes weights to sum to 1, and
// returns a ready experiment. It fails when fewer than 2 variants are
// supplied or the total weight is not positive.
func New(name string, variants []*Variant, opts ...Option) (*Experiment, error) {
	if len(variants) < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewVariants, len(variants))
	}

	total := 0.0
	for _, v := range variants {
		total += v.Weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w, got %g", ErrNonPositiveWeight, total)
	}
	for _, v := range variants {
		v.Weight /= total
	}

	e := &Experiment{
		Name:      name,
		Variants:  variants,
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return e, nil
}

// Assign deterministically assigns a subject to a variant and records an
// exposure. The bucket is the FNV-1a 64-bit hash of the subject id
// concatenated with the experiment name, reduced modulo 10000, so the
// same (subject, experiment name) pair lands on the same variant across
// calls, restarts, and separately constructed instances.
//
// An empty subject id falls back to AssignRandom.
func (e *Experiment) Assign(subjectID string) *Variant {
	if subjectID == "" {
		return e.AssignRandom()
	}

	h := fnv.New64a()
	h.Write([]byte(subjectID))
	h.Write([]byte(e.Name))
	point := float64(h.Sum64()%assignmentBuckets) / assignmentBuckets

	return e.assignAt(point)
}

// AssignRandom assigns using the experiment's own random generator and
// records an exposure.
func (e *Experiment) AssignRandom() *Variant {
	return e.assignAt(e.rng.Float64())
}

// assignAt maps a point in [0, 1) onto the cumulative weight line and
// picks the first variant whose upper boundary covers it. Rounding can
// leave the final cumulative sum a hair under 1, so the last variant
// catches anything left over.
func (e *Experiment) assignAt(point float64) *Variant {
	cumulative := 0.0
	for _, v := range e.Variants {
		cumulative += v.Weight
		if point <= cumulative {
			v.recordExposure()
			return v
		}
	}

	last := e.Variants[len(e.Variants)-1]
	last.recordExposure()
	return last
}

// RecordConversion increments the named variant's conversion counter.
// It reports false, without mutating anything, when no variant has that
// name.
func (e *Experiment) RecordConversion(name string) bool {
	v := e.Variant(name)
	if v == nil {
		return false
	}
	v.recordConversion()
	return true
}

// Variant returns the named variant, or nil if the experiment has none by
// that name.
func (e *Experiment) Variant(name string) *Variant {
	for _, v := range e.Variants {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// VariantResult is a point-in-time snapshot of one variant's counters.
type VariantResult struct {
	Exposures      int
	Conversions    int
	ConversionRate float64
	Weight         float64
}

// Results returns a snapshot of every variant keyed by name. The snapshot
// does not track later mutations.
func (e *Experiment) Results() map[string]VariantResult {
	results := make(map[string]VariantResult, len(e.Variants))
	for _, v := range e.Variants {
		results[v.Name] = VariantResult{
			Exposures:      v.Exposures,
			Conversions:    v.Conversions,
			ConversionRate: v.ConversionRate(),
			Weight:         v.Weight,
		}
	}
	return results
}

// Summary renders a human-readable report of the experiment's current
// counters, in variant order.
func (e *Experiment) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Experiment: %s\n", e.Name)
	fmt.Fprintf(&b, "Created: %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Variants: %d\n\n", len(e.Variants))

	for _, v := range e.Variants {
		fmt.Fprintf(&b, "  %s:\n", v.Name)
		fmt.Fprintf(&b, "    Exposures: %d\n", v.Exposures)
		fmt.Fprintf(&b, "    Conversions: %d\n", v.Conversions)
		fmt.Fprintf(&b, "    Conversion Rate: %.2f%%\n\n", v.ConversionRate()*100)
	}

	return b.String()
}

// VariantNames returns the variant names in experiment order.
func (e *Experiment) VariantNames() []string {
	names := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		names[i] = v.Name
	}
	return names
}
