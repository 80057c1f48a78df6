package calculators

import (
	"context"
	"fmt"
	"math"

	"github.com/danielxmed/nobra-calculator/domain/score"
)

// CKDEpi2021 estimates glomerular filtration rate using the race-free
// CKD-EPI 2021 creatinine equation.
type CKDEpi2021 struct{}

// NewCKDEpi2021 creates the CKD-EPI 2021 eGFR calculator.
func NewCKDEpi2021() *CKDEpi2021 {
	return &CKDEpi2021{}
}

func (c *CKDEpi2021) ID() string {
	return "ckd_epi_2021"
}

func (c *CKDEpi2021) Params() []string {
	return []string{"sex", "age", "serum_creatinine"}
}

func (c *CKDEpi2021) Calculate(_ context.Context, in score.Inputs) (*score.RawResult, error) {
	sex := in.String("sex")
	age := in.Float("age")
	creatinine := in.Float("serum_creatinine")

	// eGFR = 142 × min(Scr/κ, 1)^α × max(Scr/κ, 1)^-1.200 × 0.9938^age × 1.012 [if female]
	var kappa, alpha, sexFactor float64
	switch sex {
	case "female":
		kappa, alpha, sexFactor = 0.7, -0.241, 1.012
	case "male":
		kappa, alpha, sexFactor = 0.9, -0.302, 1.0
	default:
		return nil, fmt.Errorf("sex must be male or female, got %q", sex)
	}

	ratio := creatinine / kappa
	egfr := 142 *
		math.Pow(math.Min(ratio, 1), alpha) *
		math.Pow(math.Max(ratio, 1), -1.200) *
		math.Pow(0.9938, age) *
		sexFactor

	return &score.RawResult{
		Value: math.Round(egfr*10) / 10,
		Unit:  "mL/min/1.73 m²",
	}, nil
}
