package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielxmed/nobra-calculator/domain/score"
	"github.com/danielxmed/nobra-calculator/ports"
)

func newTestService(t *testing.T, calcs ports.CalculatorRegistry, records ...ports.RawDescriptor) *ScoreService {
	t.Helper()
	registry := NewRegistry(&fakeSource{records: records}, calcs, testLogger())
	_, err := registry.Reload(context.Background())
	require.NoError(t, err)
	return NewScoreService(registry, testLogger())
}

func TestDispatch_BMI(t *testing.T) {
	service := newTestService(t, newFakeCalcRegistry(bmiCalculator()), bmiRaw(1, 500))

	res, err := service.Dispatch(context.Background(), "bmi",
		map[string]interface{}{"weight_kg": 70.0, "height_m": 1.75})
	require.NoError(t, err)

	assert.InDelta(t, 22.86, res.Value, 0.01)
	assert.Equal(t, "kg/m²", res.Unit)
	assert.Equal(t, "Normal", res.Stage)
	assert.Equal(t, "normal", res.Interpretation)
}

func TestDispatch_MissingRequiredParameter(t *testing.T) {
	service := newTestService(t, newFakeCalcRegistry(bmiCalculator()), bmiRaw(1, 500))

	_, err := service.Dispatch(context.Background(), "bmi",
		map[string]interface{}{"weight_kg": 70.0})

	var verr *score.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, score.MissingRequired, verr.Violations[0].Kind)
	assert.Equal(t, "height_m", verr.Violations[0].Param)
}

func TestDispatch_UnknownScore(t *testing.T) {
	service := newTestService(t, newFakeCalcRegistry(bmiCalculator()), bmiRaw(1, 500))

	_, err := service.Dispatch(context.Background(), "apgar", map[string]interface{}{})

	var unknown *score.UnknownScoreError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "apgar", unknown.ID)
}

func TestDispatch_ComputationFailure(t *testing.T) {
	failing := &fakeCalculator{
		id:     "bmi",
		params: []string{"weight_kg", "height_m"},
		fn: func(context.Context, score.Inputs) (*score.RawResult, error) {
			return nil, errors.New("inputs outside model validity")
		},
	}
	service := newTestService(t, newFakeCalcRegistry(failing), bmiRaw(1, 500))

	_, err := service.Dispatch(context.Background(), "bmi",
		map[string]interface{}{"weight_kg": 70.0, "height_m": 1.75})

	var cerr *score.ComputationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "bmi", cerr.ID)
	assert.Contains(t, cerr.Error(), "inputs outside model validity")
}

func TestDispatch_NoMatchingBand(t *testing.T) {
	negative := &fakeCalculator{
		id:     "bmi",
		params: []string{"weight_kg", "height_m"},
		fn: func(context.Context, score.Inputs) (*score.RawResult, error) {
			return &score.RawResult{Value: -1}, nil
		},
	}
	service := newTestService(t, newFakeCalcRegistry(negative), bmiRaw(1, 500))

	_, err := service.Dispatch(context.Background(), "bmi",
		map[string]interface{}{"weight_kg": 70.0, "height_m": 1.75})

	var nmb *score.NoMatchingBandError
	require.ErrorAs(t, err, &nmb)
}

func TestGet(t *testing.T) {
	service := newTestService(t, newFakeCalcRegistry(bmiCalculator()), bmiRaw(1, 500))

	d, err := service.Get("bmi")
	require.NoError(t, err)
	assert.Equal(t, "Body Mass Index", d.Title)

	_, err = service.Get("nope")
	var unknown *score.UnknownScoreError
	assert.ErrorAs(t, err, &unknown)
}

func TestList(t *testing.T) {
	service := newTestService(t, newFakeCalcRegistry(bmiCalculator()), bmiRaw(1, 500))

	infos := service.List("", "")
	require.Len(t, infos, 1)
	assert.Equal(t, "bmi", infos[0].ID)

	assert.Empty(t, service.List("cardiology", ""))
	assert.Len(t, service.List("", "mass"), 1)
}
