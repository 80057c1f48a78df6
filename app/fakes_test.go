package app

import (
	"context"
	"sync"

	"github.com/danielxmed/nobra-calculator/domain/score"
	"github.com/danielxmed/nobra-calculator/internal"
	"github.com/danielxmed/nobra-calculator/ports"
)

// Shared test doubles for the engine tests in this package.

type fakeCalculator struct {
	id     string
	params []string
	fn     func(ctx context.Context, in score.Inputs) (*score.RawResult, error)
}

func (c *fakeCalculator) ID() string       { return c.id }
func (c *fakeCalculator) Params() []string { return c.params }

func (c *fakeCalculator) Calculate(ctx context.Context, in score.Inputs) (*score.RawResult, error) {
	return c.fn(ctx, in)
}

type fakeCalcRegistry struct {
	calcs map[string]ports.Calculator
}

func newFakeCalcRegistry(calcs ...ports.Calculator) *fakeCalcRegistry {
	r := &fakeCalcRegistry{calcs: make(map[string]ports.Calculator)}
	for _, c := range calcs {
		r.calcs[c.ID()] = c
	}
	return r
}

func (r *fakeCalcRegistry) Resolve(id string) (ports.Calculator, bool) {
	c, ok := r.calcs[id]
	return c, ok
}

// fakeSource serves a swappable record set so tests can simulate
// descriptor-source edits between reloads.
type fakeSource struct {
	mu      sync.Mutex
	records []ports.RawDescriptor
	err     error
}

func (s *fakeSource) Enumerate(ctx context.Context) ([]ports.RawDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]ports.RawDescriptor, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *fakeSource) set(records []ports.RawDescriptor, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.err = err
}

func testLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError)
}

// bmiCalculator is the reference executable used across engine tests.
func bmiCalculator() *fakeCalculator {
	return &fakeCalculator{
		id:     "bmi",
		params: []string{"weight_kg", "height_m"},
		fn: func(_ context.Context, in score.Inputs) (*score.RawResult, error) {
			w := in.Float("weight_kg")
			h := in.Float("height_m")
			return &score.RawResult{Value: w / (h * h), Unit: "kg/m²"}, nil
		},
	}
}

// bmiRaw returns the raw bmi descriptor record with the given bounds on
// weight_kg, so tests can simulate a reload that changes the contract.
func bmiRaw(weightMin, weightMax float64) ports.RawDescriptor {
	return ports.RawDescriptor{
		"id":    "bmi",
		"title": "Body Mass Index",
		"parameters": []interface{}{
			map[string]interface{}{
				"name": "weight_kg", "type": "float", "required": true,
				"validation": map[string]interface{}{"min": weightMin, "max": weightMax},
			},
			map[string]interface{}{
				"name": "height_m", "type": "float", "required": true,
				"validation": map[string]interface{}{"min": 0.3, "max": 2.5},
			},
		},
		"result": map[string]interface{}{"name": "bmi", "type": "float", "unit": "kg/m²"},
		"interpretation": map[string]interface{}{"ranges": []interface{}{
			map[string]interface{}{"min": 0.0, "max": 18.5, "stage": "Underweight", "interpretation": "below normal"},
			map[string]interface{}{"min": 18.5, "max": 25.0, "stage": "Normal", "interpretation": "normal"},
			map[string]interface{}{"min": 25.0, "stage": "Overweight", "interpretation": "above normal"},
		}},
	}
}
