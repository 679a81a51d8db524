package entity

import (
	"errors"
	"fmt"
)

// GenerationRequest is built once from a complete answer record and is
// immutable afterwards. Schema carries the declared output shape so the
// connector can request schema-constrained output.
type GenerationRequest struct {
	System     string        `json:"system"`
	Prompt     string        `json:"prompt"`
	SchemaName string        `json:"schema_name"`
	Schema     *OutputSchema `json:"schema"`
}

// OutputSchema is a JSON-schema shaped declaration of the structure the
// generative service must return.
type OutputSchema struct {
	Type        string                   `json:"type"`
	Description string                   `json:"description,omitempty"`
	Properties  map[string]*OutputSchema `json:"properties,omitempty"`
	Items       *OutputSchema            `json:"items,omitempty"`
	Required    []string                 `json:"required,omitempty"`
	MinItems    int                      `json:"minItems,omitempty"`
}

// FailureKind classifies a failed generation attempt. All kinds are
// retryable by a user-triggered re-invocation.
type FailureKind string

const (
	// FailureServiceUnavailable - network error, timeout or non-2xx reply.
	FailureServiceUnavailable FailureKind = "SERVICE_UNAVAILABLE"
	// FailureMalformedResponse - reply text does not parse as JSON.
	FailureMalformedResponse FailureKind = "MALFORMED_RESPONSE"
	// FailureSchemaViolation - parsed but does not satisfy the declared shape.
	FailureSchemaViolation FailureKind = "SCHEMA_VIOLATION"
)

// GenerationError is the typed failure returned by the generation client.
type GenerationError struct {
	Kind  FailureKind
	Cause error
}

func (e *GenerationError) Error() string {
	if e.Cause == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// NewGenerationError wraps cause with a failure classification.
func NewGenerationError(kind FailureKind, cause error) *GenerationError {
	return &GenerationError{Kind: kind, Cause: cause}
}

// FailureKindOf extracts the classification from an error chain.
// Unclassified errors count as ServiceUnavailable.
func FailureKindOf(err error) FailureKind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return FailureServiceUnavailable
}
