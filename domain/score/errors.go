package score

import (
	"fmt"
	"strings"
)

// DescriptorErrorKind classifies why a raw descriptor record was rejected.
type DescriptorErrorKind string

const (
	MalformedShape       DescriptorErrorKind = "malformed_shape"
	InvalidParameterSpec DescriptorErrorKind = "invalid_parameter_spec"
	OverlappingBands     DescriptorErrorKind = "overlapping_bands"
)

// DescriptorError reports a catalogue entry that failed to parse. A single
// violation rejects the whole descriptor — partial descriptors must never
// reach a snapshot.
type DescriptorError struct {
	Kind   DescriptorErrorKind
	ID     string // may be empty when the id itself is missing
	Param  string // offending parameter name, when applicable
	Reason string
}

func (e *DescriptorError) Error() string {
	id := e.ID
	if id == "" {
		id = "<unknown>"
	}
	if e.Param != "" {
		return fmt.Sprintf("descriptor %q: %s: parameter %q: %s", id, e.Kind, e.Param, e.Reason)
	}
	return fmt.Sprintf("descriptor %q: %s: %s", id, e.Kind, e.Reason)
}

// ViolationKind classifies a single input validation failure.
type ViolationKind string

const (
	MissingRequired ViolationKind = "missing_required"
	TypeMismatch    ViolationKind = "type_mismatch"
	NotInEnum       ViolationKind = "not_in_enum"
	OutOfRange      ViolationKind = "out_of_range"
)

// Violation is one structured input validation failure. It carries enough
// detail to be actionable without consulting logs.
type Violation struct {
	Kind     ViolationKind `json:"kind"`
	Param    string        `json:"param"`
	Expected string        `json:"expected,omitempty"`
	Got      string        `json:"got,omitempty"`
	Value    interface{}   `json:"value,omitempty"`
	Allowed  []string      `json:"allowed,omitempty"`
	Min      *float64      `json:"min,omitempty"`
	Max      *float64      `json:"max,omitempty"`
}

func (v Violation) String() string {
	switch v.Kind {
	case MissingRequired:
		return fmt.Sprintf("%s: required parameter is missing", v.Param)
	case TypeMismatch:
		return fmt.Sprintf("%s: expected %s, got %s", v.Param, v.Expected, v.Got)
	case NotInEnum:
		return fmt.Sprintf("%s: value %v is not one of [%s]", v.Param, v.Value, strings.Join(v.Allowed, ", "))
	case OutOfRange:
		return fmt.Sprintf("%s: value %v is outside [%v, %v]", v.Param, v.Value, bound(v.Min), bound(v.Max))
	}
	return fmt.Sprintf("%s: invalid", v.Param)
}

func bound(b *float64) interface{} {
	if b == nil {
		return "unbounded"
	}
	return *b
}

// ValidationError aggregates every violation found in one input map so a
// caller can fix all problems in a single round trip.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("invalid input: %s", strings.Join(msgs, "; "))
}

// UnknownScoreError reports a dispatch against an id absent from the
// current snapshot.
type UnknownScoreError struct {
	ID string
}

func (e *UnknownScoreError) Error() string {
	return fmt.Sprintf("unknown score %q", e.ID)
}

// ComputationError wraps a domain failure raised inside a calculator. It is
// surfaced to the caller, never silently defaulted.
type ComputationError struct {
	ID    string
	Cause error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("score %q computation failed: %v", e.ID, e.Cause)
}

func (e *ComputationError) Unwrap() error {
	return e.Cause
}

// NoMatchingBandError reports a computed value not covered by any
// interpretation band — a data-quality defect surfaced at runtime rather
// than hidden.
type NoMatchingBandError struct {
	ID    string
	Value float64
}

func (e *NoMatchingBandError) Error() string {
	return fmt.Sprintf("score %q: no interpretation band covers value %v", e.ID, e.Value)
}
