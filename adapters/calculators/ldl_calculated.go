package calculators

import (
	"context"
	"fmt"

	"github.com/danielxmed/nobra-calculator/domain/score"
)

// triglycerideAccuracyLimit is the Friedewald validity ceiling in mg/dL;
// above it the formula underestimates LDL unpredictably.
const triglycerideAccuracyLimit = 400.0

// LDLCalculated estimates LDL cholesterol with the Friedewald formula:
// LDL = total cholesterol − HDL − triglycerides/5.
type LDLCalculated struct{}

// NewLDLCalculated creates the calculated-LDL calculator.
func NewLDLCalculated() *LDLCalculated {
	return &LDLCalculated{}
}

func (c *LDLCalculated) ID() string {
	return "ldl_calculated"
}

func (c *LDLCalculated) Params() []string {
	return []string{"total_cholesterol", "hdl_cholesterol", "triglycerides"}
}

func (c *LDLCalculated) Calculate(_ context.Context, in score.Inputs) (*score.RawResult, error) {
	total := in.Float("total_cholesterol")
	hdl := in.Float("hdl_cholesterol")
	triglycerides := in.Float("triglycerides")

	if triglycerides > triglycerideAccuracyLimit {
		return nil, fmt.Errorf(
			"triglycerides %.0f mg/dL exceed %0.f mg/dL; the Friedewald formula is not valid — request a direct LDL measurement",
			triglycerides, triglycerideAccuracyLimit)
	}

	ldl := total - hdl - triglycerides/5.0

	return &score.RawResult{
		Value: ldl,
		Unit:  "mg/dL",
	}, nil
}
