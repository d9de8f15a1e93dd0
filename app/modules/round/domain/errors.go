package rounddomain

import (
	"errors"
	"fmt"
)

// Domain errors for round submission.
// Both are rejected synchronously and never coerced into a valid value.
var (
	// ErrInputOutOfRange indicates a submitted field is outside its configured bounds.
	ErrInputOutOfRange = errors.New("input out of range")

	// ErrUnknownPlayer indicates the player has no week-0 baseline row.
	ErrUnknownPlayer = errors.New("unknown player")
)

// ValidationError carries the offending field alongside the domain error.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Field, e.Reason, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func outOfRange(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...), Err: ErrInputOutOfRange}
}
