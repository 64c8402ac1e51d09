package domain

import (
	"fmt"
	"strings"
)

// Error codes carried in API error envelopes.
const (
	ErrCodeInvalidFieldsFormat = "invalid_fields_format"
	ErrCodeValidationFailed    = "validation_failed"
	ErrCodeGenerationFailed    = "generation_failed"
)

// Per-field violation codes.
const (
	FieldErrEmptyName        = "empty_name"
	FieldErrUnknownType      = "unknown_type"
	FieldErrInvalidEnumValue = "invalid_enum_value"
	FieldErrCountOutOfRange  = "count_out_of_range"
	FieldErrInvalidSeed      = "invalid_seed"
)

// FieldError locates one validation violation: the field index in the
// submitted schema, its name when known, a stable code and a message.
type FieldError struct {
	Index   int    `json:"index"`
	Name    string `json:"name,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	if e.Name != "" {
		return fmt.Sprintf("fields[%d] (%s): %s", e.Index, e.Name, e.Message)
	}
	return fmt.Sprintf("fields[%d]: %s", e.Index, e.Message)
}

// ValidationError aggregates every violation found in one request,
// not just the first.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.String()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// InvalidFieldsError reports a fields parameter that could not be
// resolved into a sequence of field objects under either encoding.
type InvalidFieldsError struct {
	Reason string
}

func (e *InvalidFieldsError) Error() string {
	return "invalid fields format: " + e.Reason
}

// GenerationError wraps an unexpected failure inside the generation
// pipeline. It is still surfaced as a structured response, never as a
// transport fault.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
