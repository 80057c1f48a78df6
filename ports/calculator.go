package ports

import (
	"context"

	"github.com/danielxmed/nobra-calculator/domain/score"
)

// Calculator is one executable scorer implementation. Params declares the
// parameter names the implementation accepts; the binder verifies at build
// time that they cover every parameter the descriptor declares.
type Calculator interface {
	ID() string
	Params() []string
	Calculate(ctx context.Context, in score.Inputs) (*score.RawResult, error)
}

// CalculatorRegistry resolves a descriptor id to its candidate calculator.
type CalculatorRegistry interface {
	Resolve(id string) (Calculator, bool)
}
