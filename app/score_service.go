package app

import (
	"context"

	"github.com/danielxmed/nobra-calculator/domain/score"
	"github.com/danielxmed/nobra-calculator/internal"
)

// ScoreService is the single entry point for "compute scorer X with input
// Y". It composes snapshot lookup, input validation, invocation and result
// normalization.
type ScoreService struct {
	registry *Registry
	logger   *internal.Logger
}

// NewScoreService creates a score service over the given registry.
func NewScoreService(registry *Registry, logger *internal.Logger) *ScoreService {
	return &ScoreService{registry: registry, logger: logger}
}

// Dispatch validates and executes one scorer invocation. The snapshot
// current at call start is used for the entire request, even if a reload
// completes mid-request.
func (s *ScoreService) Dispatch(ctx context.Context, id string, raw map[string]interface{}) (*score.Result, error) {
	snap := s.registry.Current()

	descriptor, binding, ok := snap.Lookup(id)
	if !ok {
		return nil, &score.UnknownScoreError{ID: id}
	}

	inputs, err := score.ValidateInputs(descriptor, raw)
	if err != nil {
		return nil, err
	}

	rawResult, err := binding.Invoke(ctx, inputs)
	if err != nil {
		s.logger.Warn("score %q computation failed: %v", id, err)
		return nil, &score.ComputationError{ID: id, Cause: err}
	}

	result, err := descriptor.Normalize(rawResult)
	if err != nil {
		s.logger.Error("score %q: %v", id, err)
		return nil, err
	}
	return result, nil
}

// Get returns the full descriptor for an id from the current snapshot.
func (s *ScoreService) Get(id string) (*score.Descriptor, error) {
	descriptor, _, ok := s.registry.Current().Lookup(id)
	if !ok {
		return nil, &score.UnknownScoreError{ID: id}
	}
	return descriptor, nil
}

// List returns catalogue summaries, optionally filtered by category and a
// keyword search.
func (s *ScoreService) List(category, search string) []score.Info {
	snap := s.registry.Current()
	if category == "" && search == "" {
		return snap.List()
	}
	return snap.ListFiltered(category, search)
}
