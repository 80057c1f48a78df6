package score

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Parse turns a raw descriptor record into a validated Descriptor, or fails
// deterministically. Any single violation rejects the entire descriptor: a
// scorer with silently-dropped parameters would compute against fewer
// constraints than documented.
func Parse(raw map[string]interface{}) (*Descriptor, error) {
	if raw == nil {
		return nil, &DescriptorError{Kind: MalformedShape, Reason: "record is empty"}
	}

	id, ok := stringField(raw, "id")
	if !ok || id == "" {
		return nil, &DescriptorError{Kind: MalformedShape, Reason: "missing or empty id"}
	}

	title, ok := stringField(raw, "title")
	if !ok || title == "" {
		return nil, &DescriptorError{Kind: MalformedShape, ID: id, Reason: "missing or empty title"}
	}

	paramsRaw, ok := raw["parameters"].([]interface{})
	if !ok {
		return nil, &DescriptorError{Kind: MalformedShape, ID: id, Reason: "parameters must be a list"}
	}

	resultRaw, ok := raw["result"].(map[string]interface{})
	if !ok {
		return nil, &DescriptorError{Kind: MalformedShape, ID: id, Reason: "result must be an object"}
	}

	d := &Descriptor{
		ID:          id,
		Title:       title,
		Description: optionalString(raw, "description"),
		Category:    optionalString(raw, "category"),
		Version:     optionalString(raw, "version"),
	}

	seen := make(map[string]struct{}, len(paramsRaw))
	for i, pr := range paramsRaw {
		pm, ok := pr.(map[string]interface{})
		if !ok {
			return nil, &DescriptorError{Kind: MalformedShape, ID: id,
				Reason: fmt.Sprintf("parameter %d must be an object", i)}
		}
		spec, err := parseParameter(id, i, pm)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[spec.Name]; dup {
			return nil, &DescriptorError{Kind: InvalidParameterSpec, ID: id, Param: spec.Name,
				Reason: "duplicate parameter name"}
		}
		seen[spec.Name] = struct{}{}
		d.Parameters = append(d.Parameters, spec)
	}

	res, err := parseResult(id, resultRaw)
	if err != nil {
		return nil, err
	}
	d.Result = res

	bands, err := parseBands(id, raw)
	if err != nil {
		return nil, err
	}
	d.Interpretation = bands

	d.Notes = optionalStringList(raw, "notes")
	d.References = optionalStringList(raw, "references")

	return d, nil
}

func parseParameter(id string, idx int, raw map[string]interface{}) (ParameterSpec, *DescriptorError) {
	name, ok := stringField(raw, "name")
	if !ok || name == "" {
		return ParameterSpec{}, &DescriptorError{Kind: InvalidParameterSpec, ID: id,
			Param: fmt.Sprintf("#%d", idx), Reason: "missing parameter name"}
	}

	fail := func(reason string) (ParameterSpec, *DescriptorError) {
		return ParameterSpec{}, &DescriptorError{Kind: InvalidParameterSpec, ID: id, Param: name, Reason: reason}
	}

	typeStr, ok := stringField(raw, "type")
	if !ok {
		return fail("missing parameter type")
	}
	ptype := ParamType(typeStr)
	switch ptype {
	case ParamString, ParamInteger, ParamFloat:
	default:
		return fail(fmt.Sprintf("unknown type %q", typeStr))
	}

	spec := ParameterSpec{
		Name:        name,
		Type:        ptype,
		Description: optionalString(raw, "description"),
		Unit:        optionalString(raw, "unit"),
		Default:     raw["default"],
		Example:     raw["example"],
	}
	if req, ok := raw["required"].(bool); ok {
		spec.Required = req
	}

	if optsRaw, present := raw["options"]; present {
		opts, ok := stringList(optsRaw)
		if !ok || len(opts) == 0 {
			return fail("options must be a non-empty list of strings")
		}
		if ptype != ParamString {
			return fail("options are only valid for string parameters")
		}
		spec.Enum = opts
		if spec.Default != nil && !enumContains(opts, spec.Default) {
			return fail(fmt.Sprintf("default %v is not one of the declared options", spec.Default))
		}
		if spec.Example != nil && !enumContains(opts, spec.Example) {
			return fail(fmt.Sprintf("example %v is not one of the declared options", spec.Example))
		}
	}

	if valRaw, present := raw["validation"]; present {
		vm, ok := valRaw.(map[string]interface{})
		if !ok {
			return fail("validation must be an object")
		}
		min, minOK, minErr := optionalNumber(vm, "min")
		max, maxOK, maxErr := optionalNumber(vm, "max")
		if minErr != nil || maxErr != nil {
			return fail("validation bounds must be numeric")
		}
		if minOK || maxOK {
			if ptype == ParamString {
				return fail("numeric bounds are only valid for integer or float parameters")
			}
			if minOK && maxOK && *min > *max {
				return fail(fmt.Sprintf("min %v exceeds max %v", *min, *max))
			}
			spec.Min = min
			spec.Max = max
		}
	}

	return spec, nil
}

func parseResult(id string, raw map[string]interface{}) (ResultSpec, *DescriptorError) {
	name, ok := stringField(raw, "name")
	if !ok || name == "" {
		return ResultSpec{}, &DescriptorError{Kind: MalformedShape, ID: id, Reason: "result missing name"}
	}
	return ResultSpec{
		Name:        name,
		Type:        optionalString(raw, "type"),
		Unit:        optionalString(raw, "unit"),
		Description: optionalString(raw, "description"),
	}, nil
}

func parseBands(id string, raw map[string]interface{}) ([]InterpretationBand, *DescriptorError) {
	interpRaw, present := raw["interpretation"]
	if !present {
		return nil, nil
	}
	im, ok := interpRaw.(map[string]interface{})
	if !ok {
		return nil, &DescriptorError{Kind: MalformedShape, ID: id, Reason: "interpretation must be an object"}
	}
	rangesRaw, present := im["ranges"]
	if !present {
		return nil, nil
	}
	list, ok := rangesRaw.([]interface{})
	if !ok {
		return nil, &DescriptorError{Kind: MalformedShape, ID: id, Reason: "interpretation ranges must be a list"}
	}

	var bands []InterpretationBand
	for i, br := range list {
		bm, ok := br.(map[string]interface{})
		if !ok {
			return nil, &DescriptorError{Kind: MalformedShape, ID: id,
				Reason: fmt.Sprintf("interpretation range %d must be an object", i)}
		}
		min, _, minErr := optionalNumber(bm, "min")
		max, _, maxErr := optionalNumber(bm, "max")
		if minErr != nil || maxErr != nil {
			return nil, &DescriptorError{Kind: MalformedShape, ID: id,
				Reason: fmt.Sprintf("interpretation range %d has non-numeric bounds", i)}
		}
		stage, ok := stringField(bm, "stage")
		if !ok || stage == "" {
			return nil, &DescriptorError{Kind: MalformedShape, ID: id,
				Reason: fmt.Sprintf("interpretation range %d missing stage", i)}
		}
		if min != nil && max != nil && *min >= *max {
			return nil, &DescriptorError{Kind: MalformedShape, ID: id,
				Reason: fmt.Sprintf("interpretation range %d has min >= max", i)}
		}
		bands = append(bands, InterpretationBand{
			Min:            min,
			Max:            max,
			Stage:          stage,
			Description:    optionalString(bm, "description"),
			Interpretation: optionalString(bm, "interpretation"),
		})
	}

	if err := checkBandOverlap(id, bands); err != nil {
		return nil, err
	}
	return bands, nil
}

// checkBandOverlap verifies that no two bands of one descriptor cover the
// same value. Bands are half-open [min, max), so adjacent bands may share
// a boundary.
func checkBandOverlap(id string, bands []InterpretationBand) *DescriptorError {
	if len(bands) < 2 {
		return nil
	}
	sorted := make([]InterpretationBand, len(bands))
	copy(sorted, bands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lowerBound(sorted[i]) < lowerBound(sorted[j])
	})
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.Min == nil {
			return overlapError(id, prev, cur)
		}
		if prev.Max == nil || *cur.Min < *prev.Max {
			return overlapError(id, prev, cur)
		}
	}
	return nil
}

func overlapError(id string, a, b InterpretationBand) *DescriptorError {
	return &DescriptorError{Kind: OverlappingBands, ID: id,
		Reason: fmt.Sprintf("bands %q and %q overlap", a.Stage, b.Stage)}
}

func lowerBound(b InterpretationBand) float64 {
	if b.Min == nil {
		return negInf
	}
	return *b.Min
}

func stringField(raw map[string]interface{}, key string) (string, bool) {
	v, ok := raw[key].(string)
	return v, ok
}

func optionalString(raw map[string]interface{}, key string) string {
	v, _ := raw[key].(string)
	return v
}

func stringList(v interface{}) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func optionalStringList(raw map[string]interface{}, key string) []string {
	v, present := raw[key]
	if !present {
		return nil
	}
	list, _ := stringList(v)
	return list
}

// optionalNumber extracts a numeric field. Returns (nil, false, nil) when
// absent and an error when present but not a number.
func optionalNumber(raw map[string]interface{}, key string) (*float64, bool, error) {
	v, present := raw[key]
	if !present || v == nil {
		return nil, false, nil
	}
	f, ok := asNumber(v)
	if !ok {
		return nil, false, fmt.Errorf("field %q is not numeric", key)
	}
	return &f, true, nil
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
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

func enumContains(opts []string, v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, o := range opts {
		if o == s {
			return true
		}
	}
	return false
}
