package calculators

import (
	"context"
	"fmt"
	"math"

	"github.com/danielxmed/nobra-calculator/domain/score"
)

// CorrectedQT adjusts a measured QT interval for heart rate using the
// Bazett or Fridericia formula.
type CorrectedQT struct{}

// NewCorrectedQT creates the QTc calculator.
func NewCorrectedQT() *CorrectedQT {
	return &CorrectedQT{}
}

func (c *CorrectedQT) ID() string {
	return "corrected_qt_interval"
}

func (c *CorrectedQT) Params() []string {
	return []string{"qt_interval", "heart_rate", "formula"}
}

func (c *CorrectedQT) Calculate(_ context.Context, in score.Inputs) (*score.RawResult, error) {
	qt := in.Float("qt_interval")
	heartRate := in.Float("heart_rate")

	formula := in.String("formula")
	if formula == "" {
		formula = "bazett"
	}

	// RR interval in seconds; QT stays in milliseconds.
	rr := 60.0 / heartRate

	var qtc float64
	switch formula {
	case "bazett":
		qtc = qt / math.Sqrt(rr)
	case "fridericia":
		qtc = qt / math.Cbrt(rr)
	default:
		return nil, fmt.Errorf("formula must be bazett or fridericia, got %q", formula)
	}

	return &score.RawResult{
		Value: math.Round(qtc*10) / 10,
		Unit:  "ms",
	}, nil
}
