package score

import "math"

var negInf = math.Inf(-1)

// MatchBand finds the interpretation band covering value. Bands are
// half-open [min, max); a nil bound is unbounded on that side.
func (d *Descriptor) MatchBand(value float64) (InterpretationBand, bool) {
	for _, b := range d.Interpretation {
		if b.Min != nil && value < *b.Min {
			continue
		}
		if b.Max != nil && value >= *b.Max {
			continue
		}
		return b, true
	}
	return InterpretationBand{}, false
}

// Normalize shapes a calculator's raw outcome into the uniform Result. When
// the calculator supplied no stage label, the value is matched against the
// descriptor's interpretation bands; a value outside every band is a
// data-quality defect reported as NoMatchingBandError.
func (d *Descriptor) Normalize(rr *RawResult) (*Result, error) {
	res := &Result{
		Value:            rr.Value,
		Unit:             rr.Unit,
		Interpretation:   rr.Interpretation,
		Stage:            rr.Stage,
		StageDescription: rr.StageDescription,
	}
	if res.Unit == "" {
		res.Unit = d.Result.Unit
	}

	if res.Stage == "" && len(d.Interpretation) > 0 {
		band, ok := d.MatchBand(rr.Value)
		if !ok {
			return nil, &NoMatchingBandError{ID: d.ID, Value: rr.Value}
		}
		res.Stage = band.Stage
		res.StageDescription = band.Description
		if res.Interpretation == "" {
			res.Interpretation = band.Interpretation
		}
	}

	return res, nil
}
