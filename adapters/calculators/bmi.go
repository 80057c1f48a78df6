package calculators

import (
	"context"

	"github.com/danielxmed/nobra-calculator/domain/score"
)

// BMI calculates body mass index from weight and height.
type BMI struct{}

// NewBMI creates the BMI calculator.
func NewBMI() *BMI {
	return &BMI{}
}

func (c *BMI) ID() string {
	return "bmi"
}

func (c *BMI) Params() []string {
	return []string{"weight_kg", "height_m"}
}

func (c *BMI) Calculate(_ context.Context, in score.Inputs) (*score.RawResult, error) {
	weight := in.Float("weight_kg")
	height := in.Float("height_m")

	bmi := weight / (height * height)

	return &score.RawResult{
		Value: bmi,
		Unit:  "kg/m²",
	}, nil
}
