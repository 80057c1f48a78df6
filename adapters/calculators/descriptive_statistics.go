package calculators

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/danielxmed/nobra-calculator/domain/score"
)

// DescriptiveStatistics computes a single summary statistic over a
// comma-separated series of measurements.
type DescriptiveStatistics struct{}

// NewDescriptiveStatistics creates the descriptive statistics calculator.
func NewDescriptiveStatistics() *DescriptiveStatistics {
	return &DescriptiveStatistics{}
}

func (c *DescriptiveStatistics) ID() string {
	return "descriptive_statistics"
}

func (c *DescriptiveStatistics) Params() []string {
	return []string{"values", "statistic"}
}

func (c *DescriptiveStatistics) Calculate(_ context.Context, in score.Inputs) (*score.RawResult, error) {
	series, err := parseSeries(in.String("values"))
	if err != nil {
		return nil, err
	}

	statistic := in.String("statistic")
	var value float64
	switch statistic {
	case "mean":
		value, err = stats.Mean(series)
	case "median":
		value, err = stats.Median(series)
	case "std_dev":
		value, err = stats.StandardDeviationSample(series)
	case "min":
		value, err = stats.Min(series)
	case "max":
		value, err = stats.Max(series)
	default:
		return nil, fmt.Errorf("unsupported statistic %q", statistic)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot compute %s over %d value(s): %w", statistic, len(series), err)
	}

	return &score.RawResult{
		Value: value,
		Unit:  "same as input",
		Interpretation: fmt.Sprintf("%s of %d values is %.4g",
			statistic, len(series), value),
		Stage: statistic,
	}, nil
}

func parseSeries(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	series := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("values must be a comma-separated list of numbers: %q is not numeric", p)
		}
		series = append(series, f)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("values must contain at least one number")
	}
	return series, nil
}
