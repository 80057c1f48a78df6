// Package calculators holds the executable implementations behind the score
// catalogue. Every calculator is registered under the descriptor id it
// serves; the registry is populated once at startup and the binder verifies
// each id-to-code link at build time instead of resolving it per request.
package calculators

import (
	"fmt"

	"github.com/danielxmed/nobra-calculator/ports"
)

// Registry is the in-process executable registry: descriptor id -> calculator.
type Registry struct {
	calcs map[string]ports.Calculator
}

// NewRegistry creates a registry with every built-in calculator registered.
func NewRegistry() *Registry {
	r := &Registry{calcs: make(map[string]ports.Calculator)}
	r.Register(NewBMI())
	r.Register(NewCKDEpi2021())
	r.Register(NewCHADS2())
	r.Register(NewLDLCalculated())
	r.Register(NewMeanArterialPressure())
	r.Register(NewCorrectedQT())
	r.Register(NewDescriptiveStatistics())
	r.Register(NewGrowthPercentile())
	return r
}

// Register adds a calculator under its id.
func (r *Registry) Register(c ports.Calculator) {
	if _, exists := r.calcs[c.ID()]; exists {
		panic(fmt.Sprintf("calculator with id %q already registered", c.ID()))
	}
	r.calcs[c.ID()] = c
}

// Resolve returns the calculator registered for an id.
func (r *Registry) Resolve(id string) (ports.Calculator, bool) {
	c, ok := r.calcs[id]
	return c, ok
}
