package score

// ParamType is the declared type of a descriptor parameter.
type ParamType string

const (
	ParamString  ParamType = "string"
	ParamInteger ParamType = "integer"
	ParamFloat   ParamType = "float"
)

// ParameterSpec describes one input of a scorer: its declared type, whether
// it is required, and optional enum or numeric-range constraints.
type ParameterSpec struct {
	Name        string      `json:"name"`
	Type        ParamType   `json:"type"`
	Required    bool        `json:"required"`
	Description string      `json:"description,omitempty"`
	Unit        string      `json:"unit,omitempty"`
	Enum        []string    `json:"options,omitempty"`
	Min         *float64    `json:"min,omitempty"`
	Max         *float64    `json:"max,omitempty"`
	Default     interface{} `json:"default,omitempty"`
	Example     interface{} `json:"example,omitempty"`
}

// ResultSpec describes the shape of a scorer's output value.
type ResultSpec struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Unit        string `json:"unit,omitempty"`
	Description string `json:"description,omitempty"`
}

// InterpretationBand maps a numeric range [Min, Max) onto a clinical stage.
// A nil bound means unbounded on that side.
type InterpretationBand struct {
	Min            *float64 `json:"min,omitempty"`
	Max            *float64 `json:"max,omitempty"`
	Stage          string   `json:"stage"`
	Description    string   `json:"description,omitempty"`
	Interpretation string   `json:"interpretation"`
}

// Descriptor is the declarative contract for one scorer. It is immutable
// once published into a snapshot.
type Descriptor struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description,omitempty"`
	Category       string               `json:"category,omitempty"`
	Version        string               `json:"version,omitempty"`
	Parameters     []ParameterSpec      `json:"parameters"`
	Result         ResultSpec           `json:"result"`
	Interpretation []InterpretationBand `json:"interpretation,omitempty"`
	Notes          []string             `json:"notes,omitempty"`
	References     []string             `json:"references,omitempty"`
}

// RequiredParams returns the names of all required parameters.
func (d *Descriptor) RequiredParams() []string {
	var names []string
	for _, p := range d.Parameters {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// Param returns the spec for a parameter name, if declared.
func (d *Descriptor) Param(name string) (ParameterSpec, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

// Info is the summary view of a descriptor used for catalogue listings.
type Info struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Version     string `json:"version,omitempty"`
}

// Summary returns the listing view of the descriptor.
func (d *Descriptor) Summary() Info {
	return Info{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Version:     d.Version,
	}
}

// RawResult is what a calculator returns before normalization. Stage and
// StageDescription may be left empty for scorers whose staging comes from
// the descriptor's interpretation bands.
type RawResult struct {
	Value            float64
	Unit             string
	Interpretation   string
	Stage            string
	StageDescription string
}

// Result is the normalized outcome of one dispatch.
type Result struct {
	Value            float64 `json:"result"`
	Unit             string  `json:"unit"`
	Interpretation   string  `json:"interpretation"`
	Stage            string  `json:"stage,omitempty"`
	StageDescription string  `json:"stage_description,omitempty"`
}
