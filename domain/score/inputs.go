package score

// Inputs is a normalized, type-coerced parameter map. Values are always one
// of string, int64 or float64 — calculators never see raw untyped payloads.
type Inputs map[string]interface{}

// String returns the string value of a parameter, or "" when absent.
func (in Inputs) String(name string) string {
	if v, ok := in[name].(string); ok {
		return v
	}
	return ""
}

// Int returns the integer value of a parameter, or 0 when absent.
func (in Inputs) Int(name string) int64 {
	if v, ok := in[name].(int64); ok {
		return v
	}
	return 0
}

// Float returns the numeric value of a parameter as a float64, accepting
// both integer- and float-typed values. Returns 0 when absent.
func (in Inputs) Float(name string) float64 {
	switch v := in[name].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

// Has reports whether a parameter was supplied.
func (in Inputs) Has(name string) bool {
	_, ok := in[name]
	return ok
}
