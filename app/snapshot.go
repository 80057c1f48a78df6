package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielxmed/nobra-calculator/domain/score"
	"github.com/danielxmed/nobra-calculator/ports"
)

// Snapshot is an immutable, fully consistent view of the whole catalogue:
// every descriptor paired with its verified binding. Snapshots are created
// wholesale by buildSnapshot and never mutated after publication; all
// concurrent dispatchers share them read-only.
type Snapshot struct {
	entries map[string]entry
	ids     []string // sorted
	builtAt time.Time
}

type entry struct {
	descriptor *score.Descriptor
	binding    *Binding
}

// BuildError aggregates every descriptor that could not enter the snapshot.
// A build with even one failure produces no snapshot at all: a partial
// catalogue would non-deterministically change which scorers are reachable.
type BuildError struct {
	Failures map[string]error // descriptor id (or record position) -> cause
}

func (e *BuildError) Error() string {
	ids := e.FailedIDs()
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s: %v", id, e.Failures[id]))
	}
	return fmt.Sprintf("catalogue build failed for %d descriptor(s): %s",
		len(ids), strings.Join(parts, "; "))
}

// FailedIDs returns the ids that failed, sorted for stable reporting.
func (e *BuildError) FailedIDs() []string {
	ids := make([]string, 0, len(e.Failures))
	for id := range e.Failures {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// buildSnapshot parses and binds every raw record, all-or-nothing. Records
// are processed concurrently; every failure is collected so the operator
// sees the full damage in one report.
func buildSnapshot(ctx context.Context, raws []ports.RawDescriptor, calcs ports.CalculatorRegistry) (*Snapshot, error) {
	type built struct {
		descriptor *score.Descriptor
		binding    *Binding
	}

	results := make([]built, len(raws))
	var mu sync.Mutex
	failures := make(map[string]error)

	fail := func(key string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if _, exists := failures[key]; !exists {
			failures[key] = err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, raw := range raws {
		i, raw := i, raw
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := score.Parse(raw)
			if err != nil {
				fail(recordKey(raw, i), err)
				return nil
			}
			b, err := bind(d, calcs)
			if err != nil {
				fail(d.ID, err)
				return nil
			}
			results[i] = built{descriptor: d, binding: b}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Cancellation: a half-finished build is never published.
		return nil, err
	}

	entries := make(map[string]entry, len(results))
	for _, r := range results {
		if r.descriptor == nil {
			continue
		}
		if _, dup := entries[r.descriptor.ID]; dup {
			failures[r.descriptor.ID] = fmt.Errorf("duplicate descriptor id %q", r.descriptor.ID)
			continue
		}
		entries[r.descriptor.ID] = entry{descriptor: r.descriptor, binding: r.binding}
	}

	if len(failures) > 0 {
		return nil, &BuildError{Failures: failures}
	}

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &Snapshot{entries: entries, ids: ids, builtAt: time.Now()}, nil
}

func recordKey(raw ports.RawDescriptor, idx int) string {
	if id, ok := raw["id"].(string); ok && id != "" {
		return id
	}
	return fmt.Sprintf("record[%d]", idx)
}

// emptySnapshot is the catalogue before the first successful reload.
func emptySnapshot() *Snapshot {
	return &Snapshot{entries: map[string]entry{}, builtAt: time.Now()}
}

// Lookup returns the descriptor and binding for an id.
func (s *Snapshot) Lookup(id string) (*score.Descriptor, *Binding, bool) {
	e, ok := s.entries[id]
	if !ok {
		return nil, nil, false
	}
	return e.descriptor, e.binding, true
}

// Count returns the number of scorers in the snapshot.
func (s *Snapshot) Count() int {
	return len(s.entries)
}

// List returns descriptor summaries ordered by id. Each call produces a
// fresh slice; the snapshot itself never changes underfoot.
func (s *Snapshot) List() []score.Info {
	out := make([]score.Info, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.entries[id].descriptor.Summary())
	}
	return out
}

// ListFiltered returns summaries matching a category and/or a keyword
// search over id, title and description. Empty filters match everything.
func (s *Snapshot) ListFiltered(category, search string) []score.Info {
	search = strings.ToLower(search)
	out := make([]score.Info, 0, len(s.ids))
	for _, id := range s.ids {
		d := s.entries[id].descriptor
		if category != "" && !strings.EqualFold(d.Category, category) {
			continue
		}
		if search != "" && !matchesSearch(d, search) {
			continue
		}
		out = append(out, d.Summary())
	}
	return out
}

func matchesSearch(d *score.Descriptor, lowered string) bool {
	return strings.Contains(strings.ToLower(d.ID), lowered) ||
		strings.Contains(strings.ToLower(d.Title), lowered) ||
		strings.Contains(strings.ToLower(d.Description), lowered)
}
