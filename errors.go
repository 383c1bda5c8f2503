package manybody

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSection is returned when the input document lacks a
	// required top-level section.
	ErrMissingSection = errors.New("missing input section")

	// ErrExclusiveFields is returned when mutually exclusive fields are
	// both present.
	ErrExclusiveFields = errors.New("mutually exclusive fields")
)

// ErrUnknownName indicates a dispatch name the builder does not recognize.
type ErrUnknownName struct {
	Kind string
	Name string
}

func (e *ErrUnknownName) Error() string {
	return fmt.Sprintf("unknown %s name %q", e.Kind, e.Name)
}

// ErrOperatorCount indicates a mismatch between the number of custom
// operator matrices and the number of site lists they act on.
type ErrOperatorCount struct {
	Operators int
	ActingOn  int
}

func (e *ErrOperatorCount) Error() string {
	return fmt.Sprintf("operator count mismatch: %d operators, %d site lists", e.Operators, e.ActingOn)
}
