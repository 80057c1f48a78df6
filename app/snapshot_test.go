package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielxmed/nobra-calculator/ports"
)

func TestBuildSnapshot_Success(t *testing.T) {
	snap, err := buildSnapshot(context.Background(),
		[]ports.RawDescriptor{bmiRaw(1, 500)},
		newFakeCalcRegistry(bmiCalculator()))
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Count())

	d, binding, ok := snap.Lookup("bmi")
	require.True(t, ok)
	assert.Equal(t, "bmi", d.ID)
	assert.NotNil(t, binding)
}

func TestBuildSnapshot_MissingImplementationFailsWholeBuild(t *testing.T) {
	dangling := ports.RawDescriptor{
		"id": "x", "title": "Dangling",
		"parameters": []interface{}{},
		"result":     map[string]interface{}{"name": "x"},
	}

	snap, err := buildSnapshot(context.Background(),
		[]ports.RawDescriptor{bmiRaw(1, 500), dangling},
		newFakeCalcRegistry(bmiCalculator()))

	// No partial snapshot: the one bindable descriptor is not published either.
	assert.Nil(t, snap)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, []string{"x"}, buildErr.FailedIDs())

	var bindErr *BindError
	require.ErrorAs(t, buildErr.Failures["x"], &bindErr)
	assert.Equal(t, ImplementationMissing, bindErr.Kind)
}

func TestBuildSnapshot_SignatureMismatch(t *testing.T) {
	// Calculator accepts only weight_kg; the descriptor also declares height_m.
	partial := &fakeCalculator{id: "bmi", params: []string{"weight_kg"}}

	_, err := buildSnapshot(context.Background(),
		[]ports.RawDescriptor{bmiRaw(1, 500)},
		newFakeCalcRegistry(partial))

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)

	var bindErr *BindError
	require.ErrorAs(t, buildErr.Failures["bmi"], &bindErr)
	assert.Equal(t, SignatureMismatch, bindErr.Kind)
	assert.Equal(t, []string{"height_m"}, bindErr.MissingParams)
}

func TestBuildSnapshot_ExtraCalculatorParamsTolerated(t *testing.T) {
	generous := &fakeCalculator{
		id:     "bmi",
		params: []string{"weight_kg", "height_m", "age", "sex"},
		fn:     bmiCalculator().fn,
	}

	snap, err := buildSnapshot(context.Background(),
		[]ports.RawDescriptor{bmiRaw(1, 500)},
		newFakeCalcRegistry(generous))
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Count())
}

func TestBuildSnapshot_MalformedDescriptorFailsWholeBuild(t *testing.T) {
	malformed := ports.RawDescriptor{"title": "No ID"}

	snap, err := buildSnapshot(context.Background(),
		[]ports.RawDescriptor{bmiRaw(1, 500), malformed},
		newFakeCalcRegistry(bmiCalculator()))
	assert.Nil(t, snap)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, []string{"record[1]"}, buildErr.FailedIDs())
}

func TestBuildSnapshot_DuplicateIDRejected(t *testing.T) {
	snap, err := buildSnapshot(context.Background(),
		[]ports.RawDescriptor{bmiRaw(1, 500), bmiRaw(1, 400)},
		newFakeCalcRegistry(bmiCalculator()))
	assert.Nil(t, snap)

	var buildErr *BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Contains(t, buildErr.FailedIDs(), "bmi")
}

func TestBuildSnapshot_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := buildSnapshot(ctx,
		[]ports.RawDescriptor{bmiRaw(1, 500)},
		newFakeCalcRegistry(bmiCalculator()))
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSnapshot_ListIsSortedAndFresh(t *testing.T) {
	zzz := ports.RawDescriptor{
		"id": "zzz", "title": "Last", "category": "cardiology",
		"parameters": []interface{}{},
		"result":     map[string]interface{}{"name": "v"},
	}
	aaa := ports.RawDescriptor{
		"id": "aaa", "title": "First", "category": "nephrology",
		"parameters": []interface{}{},
		"result":     map[string]interface{}{"name": "v"},
	}
	noop := func(id string) *fakeCalculator {
		return &fakeCalculator{id: id, params: nil}
	}

	snap, err := buildSnapshot(context.Background(),
		[]ports.RawDescriptor{zzz, aaa},
		newFakeCalcRegistry(noop("zzz"), noop("aaa")))
	require.NoError(t, err)

	list := snap.List()
	require.Len(t, list, 2)
	assert.Equal(t, "aaa", list[0].ID)
	assert.Equal(t, "zzz", list[1].ID)

	// Each call is a fresh pass; mutating one result must not leak.
	list[0].Title = "mutated"
	assert.Equal(t, "First", snap.List()[0].Title)
}

func TestSnapshot_ListFiltered(t *testing.T) {
	records := []ports.RawDescriptor{
		{
			"id": "chads2_score", "title": "CHADS2 Stroke Risk", "category": "cardiology",
			"description": "stroke risk in atrial fibrillation",
			"parameters":  []interface{}{},
			"result":      map[string]interface{}{"name": "v"},
		},
		{
			"id": "ckd_epi_2021", "title": "CKD-EPI 2021", "category": "nephrology",
			"description": "estimated glomerular filtration rate",
			"parameters":  []interface{}{},
			"result":      map[string]interface{}{"name": "v"},
		},
	}
	reg := newFakeCalcRegistry(
		&fakeCalculator{id: "chads2_score"},
		&fakeCalculator{id: "ckd_epi_2021"},
	)

	snap, err := buildSnapshot(context.Background(), records, reg)
	require.NoError(t, err)

	cardio := snap.ListFiltered("cardiology", "")
	require.Len(t, cardio, 1)
	assert.Equal(t, "chads2_score", cardio[0].ID)

	stroke := snap.ListFiltered("", "stroke")
	require.Len(t, stroke, 1)
	assert.Equal(t, "chads2_score", stroke[0].ID)

	none := snap.ListFiltered("cardiology", "filtration")
	assert.Empty(t, none)
}

func TestSnapshot_LookupUnknown(t *testing.T) {
	snap := emptySnapshot()
	_, _, ok := snap.Lookup("nope")
	assert.False(t, ok)
	assert.Equal(t, 0, snap.Count())
	assert.Empty(t, snap.List())
}
