// Package operator provides quantum operators acting on discrete Hilbert
// spaces: local operators on site tuples and Hamiltonians built from sums
// of them.
package operator

import (
	"errors"
	"fmt"

	"github.com/qubitlab/manybody/hilbert"
)

var (
	// ErrNoOperators is returned when a sum would contain no terms.
	ErrNoOperators = errors.New("operator sum must contain at least one term")

	// ErrNotTwoLevel is returned by Hamiltonian builders requiring a
	// two-level local basis.
	ErrNotTwoLevel = errors.New("hamiltonian requires a two-level local basis")
)

// ErrInvalidSites indicates an operator acting on sites outside the
// lattice or on no sites at all.
type ErrInvalidSites struct {
	Sites []int
}

func (e *ErrInvalidSites) Error() string {
	return fmt.Sprintf("operator acts on an invalid set of sites: %v", e.Sites)
}

// ErrMatrixShape indicates an operator matrix inconsistent with the local
// Hilbert space dimension of its site tuple.
type ErrMatrixShape struct {
	Expected int
	Actual   int
}

func (e *ErrMatrixShape) Error() string {
	return fmt.Sprintf("operator matrix shape inconsistent with Hilbert space: expected %d, got %d", e.Expected, e.Actual)
}

// Conn lists the configurations connected to a reference configuration by
// an operator, with the corresponding matrix elements.
//
// Entry 0 is always the diagonal element: an empty change-site list and the
// accumulated diagonal matrix element. Every further entry carries the
// sites to change and the new local values producing the connected
// configuration.
//
// Sites and NewConfs entries may alias operator-internal storage and must
// not be modified.
type Conn struct {
	Mels     []complex128
	Sites    [][]int
	NewConfs [][]float64
}

// Len returns the number of entries, including the diagonal.
func (c *Conn) Len() int { return len(c.Mels) }

// Operator computes matrix elements between basis configurations of a
// discrete Hilbert space.
//
// Implementations are immutable after construction and safe for concurrent
// use.
type Operator interface {
	// Space returns the Hilbert space the operator acts on.
	Space() hilbert.Space

	// FindConn returns the configurations connected to v along with the
	// matrix elements <v|O|v'>.
	FindConn(v []float64) (*Conn, error)

	// AddConn accumulates the connected configurations of v into c,
	// folding the diagonal element into entry 0.
	AddConn(v []float64, c *Conn) error
}

// Compile-time check that Sum satisfies the Operator interface.
var _ Operator = (*Sum)(nil)

// Sum is an operator formed as the sum of other operators, typically a
// Hamiltonian built from local terms.
type Sum struct {
	space hilbert.Space
	terms []Operator
}

// NewSum constructs the sum of the given operators over a common space.
func NewSum(space hilbert.Space, terms ...Operator) (*Sum, error) {
	if len(terms) == 0 {
		return nil, ErrNoOperators
	}

	return &Sum{space: space, terms: terms}, nil
}

// Space returns the Hilbert space the sum acts on.
func (s *Sum) Space() hilbert.Space { return s.space }

// Terms returns the summed operators.
func (s *Sum) Terms() []Operator { return s.terms }

// FindConn returns the configurations connected to v by any term.
func (s *Sum) FindConn(v []float64) (*Conn, error) {
	c := &Conn{}
	if err := s.AddConn(v, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddConn accumulates the connected configurations of every term into c.
func (s *Sum) AddConn(v []float64, c *Conn) error {
	for _, term := range s.terms {
		if err := term.AddConn(v, c); err != nil {
			return err
		}
	}
	return nil
}
