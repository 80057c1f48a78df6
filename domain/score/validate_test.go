package score

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func boundedDescriptor() *Descriptor {
	return &Descriptor{
		ID:    "bounded",
		Title: "Bounded",
		Parameters: []ParameterSpec{
			{Name: "level", Type: ParamFloat, Required: true, Min: floatPtr(0), Max: floatPtr(10)},
		},
		Result: ResultSpec{Name: "level"},
	}
}

func enumDescriptor() *Descriptor {
	return &Descriptor{
		ID:    "enum",
		Title: "Enum",
		Parameters: []ParameterSpec{
			{Name: "intensity", Type: ParamString, Required: true, Enum: []string{"low", "high"}},
		},
		Result: ResultSpec{Name: "intensity"},
	}
}

func TestValidateInputs_MissingRequired(t *testing.T) {
	d := boundedDescriptor()

	_, err := ValidateInputs(d, map[string]interface{}{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, MissingRequired, verr.Violations[0].Kind)
	assert.Equal(t, "level", verr.Violations[0].Param)
}

func TestValidateInputs_OptionalParameterMayBeAbsent(t *testing.T) {
	d := &Descriptor{
		ID:    "opt",
		Title: "Opt",
		Parameters: []ParameterSpec{
			{Name: "mode", Type: ParamString, Required: false},
		},
	}

	in, err := ValidateInputs(d, map[string]interface{}{})
	require.NoError(t, err)
	assert.False(t, in.Has("mode"))
}

func TestValidateInputs_InclusiveBounds(t *testing.T) {
	d := boundedDescriptor()

	for _, v := range []float64{0, 10, 5.5} {
		in, err := ValidateInputs(d, map[string]interface{}{"level": v})
		require.NoError(t, err, "value %v should be accepted", v)
		assert.Equal(t, v, in.Float("level"))
	}

	for _, v := range []float64{-0.0001, 10.0001} {
		_, err := ValidateInputs(d, map[string]interface{}{"level": v})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "value %v should be rejected", v)
		require.Len(t, verr.Violations, 1)
		assert.Equal(t, OutOfRange, verr.Violations[0].Kind)
	}
}

func TestValidateInputs_EnumRoundTrip(t *testing.T) {
	d := enumDescriptor()

	for _, v := range []string{"low", "high"} {
		in, err := ValidateInputs(d, map[string]interface{}{"intensity": v})
		require.NoError(t, err)
		assert.Equal(t, v, in.String("intensity"))
	}

	// Everything else is rejected, including case variants.
	for _, v := range []string{"Low", "HIGH", "medium", ""} {
		_, err := ValidateInputs(d, map[string]interface{}{"intensity": v})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "value %q should be rejected", v)
		require.Len(t, verr.Violations, 1)
		assert.Equal(t, NotInEnum, verr.Violations[0].Kind)
		assert.Equal(t, []string{"low", "high"}, verr.Violations[0].Allowed)
	}
}

func TestValidateInputs_IntegerCoercion(t *testing.T) {
	d := &Descriptor{
		ID:    "int",
		Title: "Int",
		Parameters: []ParameterSpec{
			{Name: "age", Type: ParamInteger, Required: true},
		},
	}

	// Integral values are accepted regardless of arrival type.
	for _, v := range []interface{}{65, int64(65), float64(65), json.Number("65")} {
		in, err := ValidateInputs(d, map[string]interface{}{"age": v})
		require.NoError(t, err, "value %v (%T) should be accepted", v, v)
		assert.Equal(t, int64(65), in.Int("age"))
	}

	// A fractional number where an integer is declared is a type error,
	// never a round.
	for _, v := range []interface{}{65.5, json.Number("65.5"), "65", true} {
		_, err := ValidateInputs(d, map[string]interface{}{"age": v})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "value %v (%T) should be rejected", v, v)
		assert.Equal(t, TypeMismatch, verr.Violations[0].Kind)
		assert.Equal(t, "integer", verr.Violations[0].Expected)
	}
}

func TestValidateInputs_FloatCoercion(t *testing.T) {
	d := boundedDescriptor()

	// Integers are valid floats.
	in, err := ValidateInputs(d, map[string]interface{}{"level": 7})
	require.NoError(t, err)
	assert.Equal(t, 7.0, in.Float("level"))

	// Strings are never silently parsed into numbers.
	_, err = ValidateInputs(d, map[string]interface{}{"level": "7"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, TypeMismatch, verr.Violations[0].Kind)
	assert.Equal(t, "string", verr.Violations[0].Got)
}

func TestValidateInputs_UnknownKeysIgnored(t *testing.T) {
	d := boundedDescriptor()

	in, err := ValidateInputs(d, map[string]interface{}{
		"level":      5.0,
		"extraneous": "anything",
		"another":    42,
	})
	require.NoError(t, err)
	assert.True(t, in.Has("level"))
	assert.False(t, in.Has("extraneous"))
}

func TestValidateInputs_CollectsAllViolations(t *testing.T) {
	d := &Descriptor{
		ID:    "multi",
		Title: "Multi",
		Parameters: []ParameterSpec{
			{Name: "a", Type: ParamFloat, Required: true},
			{Name: "b", Type: ParamInteger, Required: true},
			{Name: "c", Type: ParamString, Required: true, Enum: []string{"x", "y"}},
			{Name: "d", Type: ParamFloat, Required: true, Min: floatPtr(0), Max: floatPtr(1)},
		},
	}

	_, err := ValidateInputs(d, map[string]interface{}{
		"b": 1.5, // type mismatch
		"c": "z", // not in enum
		"d": 2.0, // out of range
		// a missing
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 4)

	kinds := make(map[ViolationKind]string)
	for _, v := range verr.Violations {
		kinds[v.Kind] = v.Param
	}
	assert.Equal(t, "a", kinds[MissingRequired])
	assert.Equal(t, "b", kinds[TypeMismatch])
	assert.Equal(t, "c", kinds[NotInEnum])
	assert.Equal(t, "d", kinds[OutOfRange])
}

func TestValidateInputs_SatisfyingInputNeverFails(t *testing.T) {
	raw := validRaw()
	d, err := Parse(raw)
	require.NoError(t, err)

	in, err := ValidateInputs(d, map[string]interface{}{
		"weight_kg": 70.0,
		"height_m":  1.75,
	})
	require.NoError(t, err)
	assert.Equal(t, 70.0, in.Float("weight_kg"))
	assert.Equal(t, 1.75, in.Float("height_m"))
}
