package calculators

import (
	"context"

	"github.com/danielxmed/nobra-calculator/domain/score"
)

// CHADS2 estimates annual stroke risk in nonvalvular atrial fibrillation.
// Each risk factor scores one point; prior stroke or TIA scores two.
type CHADS2 struct{}

// NewCHADS2 creates the CHADS₂ score calculator.
func NewCHADS2() *CHADS2 {
	return &CHADS2{}
}

func (c *CHADS2) ID() string {
	return "chads2_score"
}

func (c *CHADS2) Params() []string {
	return []string{
		"congestive_heart_failure",
		"hypertension",
		"age_75_or_older",
		"diabetes_mellitus",
		"stroke_tia_history",
	}
}

func (c *CHADS2) Calculate(_ context.Context, in score.Inputs) (*score.RawResult, error) {
	total := 0.0
	for _, factor := range []string{
		"congestive_heart_failure",
		"hypertension",
		"age_75_or_older",
		"diabetes_mellitus",
	} {
		if in.String(factor) == "yes" {
			total++
		}
	}
	if in.String("stroke_tia_history") == "yes" {
		total += 2
	}

	return &score.RawResult{
		Value: total,
		Unit:  "points",
	}, nil
}
