package calculators

import (
	"context"
	"fmt"
	"math"

	"github.com/danielxmed/nobra-calculator/domain/score"
)

// MeanArterialPressure estimates MAP from systolic and diastolic pressure:
// MAP = (SBP + 2·DBP) / 3.
type MeanArterialPressure struct{}

// NewMeanArterialPressure creates the MAP calculator.
func NewMeanArterialPressure() *MeanArterialPressure {
	return &MeanArterialPressure{}
}

func (c *MeanArterialPressure) ID() string {
	return "mean_arterial_pressure"
}

func (c *MeanArterialPressure) Params() []string {
	return []string{"systolic_bp", "diastolic_bp"}
}

func (c *MeanArterialPressure) Calculate(_ context.Context, in score.Inputs) (*score.RawResult, error) {
	systolic := in.Float("systolic_bp")
	diastolic := in.Float("diastolic_bp")

	if diastolic > systolic {
		return nil, fmt.Errorf("diastolic pressure %.0f exceeds systolic pressure %.0f", diastolic, systolic)
	}

	mapValue := (systolic + 2*diastolic) / 3

	return &score.RawResult{
		Value: math.Round(mapValue*10) / 10,
		Unit:  "mmHg",
	}, nil
}
