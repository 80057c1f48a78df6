package calculators

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/danielxmed/nobra-calculator/domain/score"
)

// GrowthPercentile converts an anthropometric z-score (weight-for-age,
// height-for-age) into its population percentile via the standard normal
// distribution.
type GrowthPercentile struct {
	normal distuv.Normal
}

// NewGrowthPercentile creates the growth percentile calculator.
func NewGrowthPercentile() *GrowthPercentile {
	return &GrowthPercentile{
		normal: distuv.Normal{Mu: 0, Sigma: 1},
	}
}

func (c *GrowthPercentile) ID() string {
	return "growth_percentile"
}

func (c *GrowthPercentile) Params() []string {
	return []string{"z_score"}
}

func (c *GrowthPercentile) Calculate(_ context.Context, in score.Inputs) (*score.RawResult, error) {
	z := in.Float("z_score")

	percentile := c.normal.CDF(z) * 100

	return &score.RawResult{
		Value: math.Round(percentile*10) / 10,
		Unit:  "percentile",
	}, nil
}
