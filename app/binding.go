package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/danielxmed/nobra-calculator/domain/score"
	"github.com/danielxmed/nobra-calculator/ports"
)

// Binding is the verified association between a descriptor and its
// calculator. It wraps the calculator behind a uniform call convention.
type Binding struct {
	calc ports.Calculator
}

// Invoke runs the bound calculator against a normalized input map.
func (b *Binding) Invoke(ctx context.Context, in score.Inputs) (*score.RawResult, error) {
	return b.calc.Calculate(ctx, in)
}

// BindErrorKind classifies why a descriptor could not be bound.
type BindErrorKind string

const (
	ImplementationMissing BindErrorKind = "implementation_missing"
	SignatureMismatch     BindErrorKind = "signature_mismatch"
)

// BindError reports a descriptor/calculator consistency failure found at
// build time — a descriptor without an implementation is a dangling
// advertisement and must never be published.
type BindError struct {
	Kind          BindErrorKind
	ID            string
	MissingParams []string
}

func (e *BindError) Error() string {
	switch e.Kind {
	case ImplementationMissing:
		return fmt.Sprintf("score %q has no registered calculator", e.ID)
	case SignatureMismatch:
		return fmt.Sprintf("score %q calculator does not accept parameters: %s",
			e.ID, strings.Join(e.MissingParams, ", "))
	}
	return fmt.Sprintf("score %q cannot be bound", e.ID)
}

// bind attaches a calculator to a descriptor and checks structural
// compatibility: the calculator's accepted parameter names must cover every
// parameter the descriptor declares. Extra calculator parameters are
// tolerated.
func bind(d *score.Descriptor, registry ports.CalculatorRegistry) (*Binding, error) {
	calc, ok := registry.Resolve(d.ID)
	if !ok {
		return nil, &BindError{Kind: ImplementationMissing, ID: d.ID}
	}

	accepted := make(map[string]struct{})
	for _, name := range calc.Params() {
		accepted[name] = struct{}{}
	}

	var missing []string
	for _, p := range d.Parameters {
		if _, ok := accepted[p.Name]; !ok {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &BindError{Kind: SignatureMismatch, ID: d.ID, MissingParams: missing}
	}

	return &Binding{calc: calc}, nil
}
