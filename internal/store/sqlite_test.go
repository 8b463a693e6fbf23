package store_test

import (
	"context"
	"testing"

	"github.com/splitkit/splitkit/internal/store"
	"github.com/splitkit/splitkit/internal/testutil"
)

func TestCreateAndGetExperiment(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	seed := int64(42)
	created, err := s.CreateExperiment(ctx, "button-color", []string{"control", "treatment"}, []float64{9, 1}, &seed)
	if err != nil {
		t.Fatalf("failed to create experiment: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected a nonzero id")
	}

	got, err := s.GetExperiment(ctx, "button-color")
	if err != nil {
		t.Fatalf("failed to get experiment: %v", err)
	}

	if got.Name != "button-color" {
		t.Errorf("name = %s, want button-color", got.Name)
	}
	if len(got.Variants) != 2 || got.Variants[0] != "control" || got.Variants[1] != "treatment" {
		t.Errorf("variants = %v, want [control treatment]", got.Variants)
	}
	if len(got.Weights) != 2 || got.Weights[0] != 9 || got.Weights[1] != 1 {
		t.Errorf("weights = %v, want [9 1]", got.Weights)
	}
	if got.Seed == nil || *got.Seed != 42 {
		t.Errorf("seed = %v, want 42", got.Seed)
	}
	if got.State != store.StateRunning {
		t.Errorf("state = %s, want running", got.State)
	}
	if got.Winner != nil {
		t.Errorf("winner = %v, want nil", got.Winner)
	}
}

func TestCreateExperiment_NoWeightsNoSeed(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateExperiment(ctx, "plain", []string{"a", "b"}, nil, nil); err != nil {
		t.Fatalf("failed to create experiment: %v", err)
	}

	got, err := s.GetExperiment(ctx, "plain")
	if err != nil {
		t.Fatalf("failed to get experiment: %v", err)
	}
	if got.Weights != nil {
		t.Errorf("weights = %v, want nil", got.Weights)
	}
	if got.Seed != nil {
		t.Errorf("seed = %v, want nil", got.Seed)
	}
}

func TestCreateExperiment_DuplicateName(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateExperiment(ctx, "dup", []string{"a", "b"}, nil, nil); err != nil {
		t.Fatalf("failed to create experiment: %v", err)
	}
	if _, err := s.CreateExperiment(ctx, "dup", []string{"a", "b"}, nil, nil); err == nil {
		t.Error("expected error for duplicate name")
	}
}

func TestGetExperiment_NotFound(t *testing.T) {
	s := testutil.SetupTestStore(t)

	_, err := s.GetExperiment(context.Background(), "missing")
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListExperiments(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	if experiments, err := s.ListExperiments(ctx); err != nil || len(experiments) != 0 {
		t.Fatalf("expected empty list, got %v (err %v)", experiments, err)
	}

	for _, name := range []string{"one", "two", "three"} {
		if _, err := s.CreateExperiment(ctx, name, []string{"a", "b"}, nil, nil); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	experiments, err := s.ListExperiments(ctx)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(experiments) != 3 {
		t.Errorf("got %d experiments, want 3", len(experiments))
	}
}

func TestSetWinner(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateExperiment(ctx, "race", []string{"a", "b"}, nil, nil); err != nil {
		t.Fatalf("failed to create experiment: %v", err)
	}

	if err := s.SetWinner(ctx, "race", "b"); err != nil {
		t.Fatalf("failed to set winner: %v", err)
	}

	got, err := s.GetExperiment(ctx, "race")
	if err != nil {
		t.Fatalf("failed to get experiment: %v", err)
	}
	if got.State != store.StateCompleted {
		t.Errorf("state = %s, want completed", got.State)
	}
	if got.Winner == nil || *got.Winner != "b" {
		t.Errorf("winner = %v, want b", got.Winner)
	}

	if err := s.SetWinner(ctx, "missing", "a"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound for missing experiment, got %v", err)
	}
}

func TestDeleteExperiment(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateExperiment(ctx, "gone", []string{"a", "b"}, nil, nil); err != nil {
		t.Fatalf("failed to create experiment: %v", err)
	}
	if err := s.RecordEvent(ctx, "gone", "a", store.EventExposure, "u1"); err != nil {
		t.Fatalf("failed to record event: %v", err)
	}

	if err := s.DeleteExperiment(ctx, "gone"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	if _, err := s.GetExperiment(ctx, "gone"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	events, err := s.GetEvents(ctx, "gone")
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events after delete, want 0", len(events))
	}

	if err := s.DeleteExperiment(ctx, "gone"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound for repeated delete, got %v", err)
	}
}

func TestVariantStats_Aggregation(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateExperiment(ctx, "agg", []string{"a", "b"}, nil, nil); err != nil {
		t.Fatalf("failed to create experiment: %v", err)
	}

	// Repeated exposures count individually, unlike unique-visitor schemes.
	for i := 0; i < 3; i++ {
		if err := s.RecordEvent(ctx, "agg", "a", store.EventExposure, "u1"); err != nil {
			t.Fatalf("failed to record exposure: %v", err)
		}
	}
	if err := s.RecordEvent(ctx, "agg", "a", store.EventConversion, "u1"); err != nil {
		t.Fatalf("failed to record conversion: %v", err)
	}
	if err := s.RecordEvent(ctx, "agg", "b", store.EventExposure, "u2"); err != nil {
		t.Fatalf("failed to record exposure: %v", err)
	}

	stats, err := s.VariantStats(ctx, "agg")
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d variant rows, want 2", len(stats))
	}

	byName := map[string]store.VariantStats{}
	for _, vs := range stats {
		byName[vs.Variant] = vs
	}

	if a := byName["a"]; a.Exposures != 3 || a.Conversions != 1 {
		t.Errorf("variant a stats = %+v, want 3 exposures and 1 conversion", a)
	}
	if b := byName["b"]; b.Exposures != 1 || b.Conversions != 0 {
		t.Errorf("variant b stats = %+v, want 1 exposure and 0 conversions", b)
	}
}

func TestGetEvents(t *testing.T) {
	s := testutil.SetupTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateExperiment(ctx, "ev", []string{"a", "b"}, nil, nil); err != nil {
		t.Fatalf("failed to create experiment: %v", err)
	}

	if err := s.RecordEvent(ctx, "ev", "a", store.EventExposure, "u1"); err != nil {
		t.Fatalf("failed to record event: %v", err)
	}
	if err := s.RecordEvent(ctx, "ev", "b", store.EventConversion, "u2"); err != nil {
		t.Fatalf("failed to record event: %v", err)
	}

	events, err := s.GetEvents(ctx, "ev")
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	for _, e := range events {
		if e.Experiment != "ev" {
			t.Errorf("event experiment = %s, want ev", e.Experiment)
		}
		if e.EventType != store.EventExposure && e.EventType != store.EventConversion {
			t.Errorf("unexpected event type %s", e.EventType)
		}
	}
}
