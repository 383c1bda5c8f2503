package hilbert

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when a space would have no sites.
	ErrInvalidSize = errors.New("site count must be positive")

	// ErrInvalidSpin is returned when the spin value is not a positive
	// integer or half-integer.
	ErrInvalidSpin = errors.New("spin must be a positive integer or half-integer")

	// ErrInvalidNmax is returned when the maximum occupation number is not
	// positive.
	ErrInvalidNmax = errors.New("maximum occupation number must be positive")

	// ErrInvalidLocalStates is returned when a custom space is given an
	// empty or non-ascending local state set.
	ErrInvalidLocalStates = errors.New("local states must be non-empty and strictly ascending")

	// ErrConstraintViolated is returned by UpdateConf when the updated
	// configuration no longer satisfies the active global constraint.
	ErrConstraintViolated = errors.New("configuration violates the global constraint")

	// ErrStateNotFound is returned by StateToNumber when the configuration
	// is not a member of the indexed set.
	ErrStateNotFound = errors.New("configuration is not part of the indexed set")

	// ErrNotDiscrete is returned when an index is requested for a space
	// without a finite local state set.
	ErrNotDiscrete = errors.New("space does not have a discrete local basis")
)

// ErrUnsatisfiableConstraint indicates a global constraint that no
// configuration of the space can satisfy.
type ErrUnsatisfiableConstraint struct {
	Reason string
}

func (e *ErrUnsatisfiableConstraint) Error() string {
	return fmt.Sprintf("unsatisfiable constraint: %s", e.Reason)
}

// ErrSizeMismatch indicates a configuration or update of the wrong length.
type ErrSizeMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrSizeMismatch) Error() string {
	return fmt.Sprintf("size mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidSite indicates an update targeting a site outside the lattice.
type ErrInvalidSite struct {
	Site int
	Size int
}

func (e *ErrInvalidSite) Error() string {
	return fmt.Sprintf("invalid site %d: space has %d sites", e.Site, e.Size)
}

// ErrInvalidLocalValue indicates a value outside the local state set.
type ErrInvalidLocalValue struct {
	Site  int
	Value float64
}

func (e *ErrInvalidLocalValue) Error() string {
	return fmt.Sprintf("value %v at site %d is not a local state", e.Value, e.Site)
}

// ErrIndexOutOfRange indicates a state number outside [0, NStates).
type ErrIndexOutOfRange struct {
	Index   int
	NStates int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("state number %d out of range: index holds %d states", e.Index, e.NStates)
}

// ErrSpaceTooLarge indicates a space whose full enumeration would exceed
// MaxStates, for which building an index is refused.
type ErrSpaceTooLarge struct {
	Size      int
	LocalSize int
}

func (e *ErrSpaceTooLarge) Error() string {
	return fmt.Sprintf("space too large to index: %d^%d exceeds %d states", e.LocalSize, e.Size, MaxStates)
}
