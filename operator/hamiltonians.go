package operator

import (
	"github.com/qubitlab/manybody/graph"
	"github.com/qubitlab/manybody/hilbert"
)

// TransverseFieldIsing builds the transverse-field Ising Hamiltonian
//
//	H = -h Σ_i σ^x_i - J Σ_<ij> σ^z_i σ^z_j
//
// on the space's lattice, with one bond term per graph edge. The local
// basis must be two-level; the σ^z eigenvalues are the local state values
// themselves (±1 in the raw spin representation).
func TransverseFieldIsing(space hilbert.Space, h, j float64) (*Sum, error) {
	if space.LocalSize() != 2 {
		return nil, ErrNotTwoLevel
	}

	local := space.LocalStates()

	field := [][]complex128{
		{0, complex(-h, 0)},
		{complex(-h, 0), 0},
	}

	bond := make([][]complex128, 4)
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			row := make([]complex128, 4)
			row[a*2+b] = complex(-j*local[a]*local[b], 0)
			bond[a*2+b] = row
		}
	}

	var terms []Operator
	for site := 0; site < space.Size(); site++ {
		op, err := NewLocal(space, field, []int{site})
		if err != nil {
			return nil, err
		}
		terms = append(terms, op)
	}
	for _, edge := range graph.Edges(space.Graph()) {
		op, err := NewLocal(space, bond, []int{edge[0], edge[1]})
		if err != nil {
			return nil, err
		}
		terms = append(terms, op)
	}

	return NewSum(space, terms...)
}

// Heisenberg builds the spin-1/2 Heisenberg Hamiltonian
//
//	H = J Σ_<ij> [ σ^z_i σ^z_j + 2 (σ^+_i σ^-_j + σ^-_i σ^+_j) ]
//
// on the space's lattice, with one bond term per graph edge. In this raw
// (±1) representation the two-site ground state has energy -3J.
func Heisenberg(space hilbert.Space, j float64) (*Sum, error) {
	if space.LocalSize() != 2 {
		return nil, ErrNotTwoLevel
	}

	local := space.LocalStates()

	bond := make([][]complex128, 4)
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			row := make([]complex128, 4)
			row[a*2+b] = complex(j*local[a]*local[b], 0)
			bond[a*2+b] = row
		}
	}
	// Exchange between the anti-aligned tuple states.
	bond[1][2] = complex(2*j, 0)
	bond[2][1] = complex(2*j, 0)

	var terms []Operator
	for _, edge := range graph.Edges(space.Graph()) {
		op, err := NewLocal(space, bond, []int{edge[0], edge[1]})
		if err != nil {
			return nil, err
		}
		terms = append(terms, op)
	}

	return NewSum(space, terms...)
}
