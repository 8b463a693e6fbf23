package store

import "time"

type ExperimentState string

const (
	StateRunning   ExperimentState = "running"
	StateCompleted ExperimentState = "completed"
)

const (
	EventExposure   = "exposure"
	EventConversion = "conversion"
)

// Experiment is a stored experiment definition. Variants and Weights are
// parallel, in assignment order; Weights is empty when every variant
// carries the default weight. Seed, when set, makes the random assignment
// path reproducible across CLI invocations.
type Experiment struct {
	ID        int64
	Name      string
	Variants  []string  // decoded from JSON
	Weights   []float64 // optional, decoded from JSON
	Seed      *int64
	State     ExperimentState
	Winner    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Event struct {
	ID         int64
	Experiment string
	Variant    string
	EventType  string // "exposure" or "conversion"
	SubjectID  string
	CreatedAt  time.Time
}

// VariantStats is the aggregated event count for one variant.
type VariantStats struct {
	Variant     string
	Exposures   int
	Conversions int
}
