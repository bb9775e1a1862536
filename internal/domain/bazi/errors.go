package bazi

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks against the typed errors below.
var (
	// ErrInvalidInput is matched by every ValidationError.
	ErrInvalidInput = errors.New("invalid chart input")

	// ErrDegenerateInput is matched by every DegenerateInputError.
	ErrDegenerateInput = errors.New("degenerate element scores")
)

// Field names reported by ValidationError.
const (
	FieldYear  = "year"
	FieldMonth = "month"
	FieldDay   = "day"
	FieldHour  = "hour"
)

// ValidationError reports a malformed or out-of-range calendar input.
// It names the offending field and value so callers can build a precise
// user-facing message.
type ValidationError struct {
	Field  string
	Value  int
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func newValidationError(field string, value int, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// DegenerateInputError is returned when aggregation yields an all-zero raw
// score vector, which cannot be normalized.
type DegenerateInputError struct {
	Pillars FourPillars
}

// Error implements the error interface.
func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("element scores sum to zero for pillars %s", e.Pillars)
}

// Is lets errors.Is(err, ErrDegenerateInput) match any DegenerateInputError.
func (e *DegenerateInputError) Is(target error) bool {
	return target == ErrDegenerateInput
}
