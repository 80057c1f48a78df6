package score

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ValidateInputs checks a raw input map against the descriptor's parameter
// contract and returns a normalized, type-coerced Inputs map. Every
// violation in the payload is collected and returned together so a caller
// can fix all of them in one round trip. Keys not declared on the
// descriptor are ignored.
func ValidateInputs(d *Descriptor, raw map[string]interface{}) (Inputs, error) {
	normalized := make(Inputs, len(d.Parameters))
	var violations []Violation

	for _, spec := range d.Parameters {
		value, present := raw[spec.Name]
		if !present {
			if spec.Required {
				violations = append(violations, Violation{
					Kind:  MissingRequired,
					Param: spec.Name,
				})
			}
			continue
		}

		coerced, v := coerceValue(spec, value)
		if v != nil {
			violations = append(violations, *v)
			continue
		}
		normalized[spec.Name] = coerced
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return normalized, nil
}

// coerceValue applies the declared type, enum and range constraints to one
// supplied value.
func coerceValue(spec ParameterSpec, value interface{}) (interface{}, *Violation) {
	switch spec.Type {
	case ParamString:
		s, ok := value.(string)
		if !ok {
			return nil, &Violation{Kind: TypeMismatch, Param: spec.Name,
				Expected: string(ParamString), Got: kindOf(value)}
		}
		if len(spec.Enum) > 0 && !enumContains(spec.Enum, s) {
			return nil, &Violation{Kind: NotInEnum, Param: spec.Name,
				Value: s, Allowed: spec.Enum}
		}
		return s, nil

	case ParamInteger:
		n, ok := coerceInteger(value)
		if !ok {
			return nil, &Violation{Kind: TypeMismatch, Param: spec.Name,
				Expected: string(ParamInteger), Got: kindOf(value)}
		}
		if v := checkRange(spec, float64(n)); v != nil {
			return nil, v
		}
		return n, nil

	case ParamFloat:
		f, ok := coerceFloat(value)
		if !ok {
			return nil, &Violation{Kind: TypeMismatch, Param: spec.Name,
				Expected: string(ParamFloat), Got: kindOf(value)}
		}
		if v := checkRange(spec, f); v != nil {
			return nil, v
		}
		return f, nil
	}

	return nil, &Violation{Kind: TypeMismatch, Param: spec.Name,
		Expected: string(spec.Type), Got: kindOf(value)}
}

// coerceInteger accepts integer kinds only. A float with a fractional part
// declared where an integer is expected is a type error, not a round.
func coerceInteger(value interface{}) (int64, bool) {
	switch n := value.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		// JSON decodes every number to float64; accept only integral values.
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func coerceFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// checkRange verifies a numeric value against declared inclusive bounds.
func checkRange(spec ParameterSpec, v float64) *Violation {
	if (spec.Min != nil && v < *spec.Min) || (spec.Max != nil && v > *spec.Max) {
		return &Violation{Kind: OutOfRange, Param: spec.Name,
			Value: v, Min: spec.Min, Max: spec.Max}
	}
	return nil
}

func kindOf(value interface{}) string {
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, json.Number:
		return "number"
	case int, int32, int64:
		return "integer"
	case nil:
		return "null"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	}
	return fmt.Sprintf("%T", value)
}
