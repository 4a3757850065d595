package field

import (
	"errors"
	"fmt"
)

// Domain errors for field synthesis.
var (
	// ErrSampleCount indicates a non-positive number of frequency modes.
	ErrSampleCount = errors.New("field: sample count must be positive")

	// ErrCutoff indicates a non-positive or non-finite frequency cutoff.
	ErrCutoff = errors.New("field: cutoff frequency must be positive and finite")

	// ErrStep indicates a non-positive spatial step.
	ErrStep = errors.New("field: spatial step must be positive")

	// ErrExtent indicates a non-positive region length.
	ErrExtent = errors.New("field: extent must be positive")

	// ErrGridTooLarge indicates a grid exceeding the configured point budget.
	ErrGridTooLarge = errors.New("field: grid exceeds point budget")

	// ErrShapeMismatch indicates arrays that cannot be combined elementwise.
	ErrShapeMismatch = errors.New("field: array shape mismatch")

	// ErrLengthMismatch indicates per-mode arrays of different lengths.
	ErrLengthMismatch = errors.New("field: per-mode array length mismatch")
)

// ParamError wraps a domain error with the offending parameter.
type ParamError struct {
	Name    string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s=%g: %v", e.Name, e.Value, e.Wrapped)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}

func paramError(name string, value float64, err error) error {
	return &ParamError{Name: name, Value: value, Wrapped: err}
}
