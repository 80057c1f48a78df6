package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danielxmed/nobra-calculator/internal"
	"github.com/danielxmed/nobra-calculator/ports"
)

// Registry owns the current catalogue snapshot and its replacement. Readers
// take no lock: the published snapshot lives behind a single atomic pointer
// and every dispatch captures one reference for its whole request lifecycle.
// Reloads are serialized so two overlapping rebuilds can never race to
// publish inconsistent views.
type Registry struct {
	source  ports.DescriptorSource
	calcs   ports.CalculatorRegistry
	logger  *internal.Logger
	current atomic.Pointer[Snapshot]

	reloadMu sync.Mutex
}

// NewRegistry creates a registry serving an empty catalogue until the first
// successful Reload.
func NewRegistry(source ports.DescriptorSource, calcs ports.CalculatorRegistry, logger *internal.Logger) *Registry {
	r := &Registry{
		source: source,
		calcs:  calcs,
		logger: logger,
	}
	r.current.Store(emptySnapshot())
	return r
}

// Current returns the snapshot to serve this request against. Callers must
// hold the returned reference for the entire request; a reload completing
// mid-request does not affect it.
func (r *Registry) Current() *Snapshot {
	return r.current.Load()
}

// ReloadOutcome summarizes a successful catalogue rebuild.
type ReloadOutcome struct {
	ScoreCount int           `json:"score_count"`
	Took       time.Duration `json:"-"`
}

// ReloadError reports a failed reload attempt. The previously published
// snapshot keeps serving traffic unchanged.
type ReloadError struct {
	Stage string // "enumerate" or "build"
	Cause error
}

func (e *ReloadError) Error() string {
	return fmt.Sprintf("reload failed during %s: %v", e.Stage, e.Cause)
}

func (e *ReloadError) Unwrap() error {
	return e.Cause
}

// FailedIDs returns the descriptor ids that failed the build, when the
// failure was a build failure.
func (e *ReloadError) FailedIDs() []string {
	if be, ok := e.Cause.(*BuildError); ok {
		return be.FailedIDs()
	}
	return nil
}

// Reload rebuilds the catalogue from the descriptor source fully off the
// hot path and publishes it atomically on success. It is idempotent and
// best-effort: on any failure the live snapshot is left untouched.
func (r *Registry) Reload(ctx context.Context) (*ReloadOutcome, error) {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	start := time.Now()

	raws, err := r.source.Enumerate(ctx)
	if err != nil {
		r.logger.Error("reload: descriptor source enumeration failed: %v", err)
		return nil, &ReloadError{Stage: "enumerate", Cause: err}
	}

	snap, err := buildSnapshot(ctx, raws, r.calcs)
	if err != nil {
		r.logger.Error("reload: catalogue build failed, previous snapshot stays live: %v", err)
		return nil, &ReloadError{Stage: "build", Cause: err}
	}

	r.current.Store(snap)

	outcome := &ReloadOutcome{ScoreCount: snap.Count(), Took: time.Since(start)}
	r.logger.Info("reload: published catalogue with %d scores in %s", outcome.ScoreCount, outcome.Took)
	return outcome, nil
}
