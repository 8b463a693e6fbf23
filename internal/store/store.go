package store

import "context"

// Store defines the interface for experiment storage operations.
type Store interface {
	// Experiment operations
	CreateExperiment(ctx context.Context, name string, variants []string, weights []float64, seed *int64) (*Experiment, error)
	GetExperiment(ctx context.Context, name string) (*Experiment, error)
	ListExperiments(ctx context.Context) ([]*Experiment, error)
	SetWinner(ctx context.Context, name string, variant string) error
	DeleteExperiment(ctx context.Context, name string) error

	// Event operations
	RecordEvent(ctx context.Context, experiment, variant, eventType, subjectID string) error
	VariantStats(ctx context.Context, experiment string) ([]VariantStats, error)
	GetEvents(ctx context.Context, experiment string) ([]*Event, error)

	// Lifecycle
	Close() error
}
