package hilbert

import (
	"math/rand"

	"github.com/qubitlab/manybody/graph"
)

// Compile-time check that Qubit satisfies the Space interface.
var _ Space = (*Qubit)(nil)

// Qubit is the Hilbert space of qubits, with local states 0 and 1 and no
// global constraint.
type Qubit struct {
	g graph.Graph

	local  []float64
	lookup map[float64]int
	nsites int
}

// NewQubit constructs a qubit space on the given lattice.
func NewQubit(g graph.Graph) (*Qubit, error) {
	nsites := g.Nsites()
	if nsites <= 0 {
		return nil, ErrInvalidSize
	}

	local := []float64{0, 1}

	return &Qubit{
		g:      g,
		local:  local,
		lookup: localIndex(local),
		nsites: nsites,
	}, nil
}

// IsDiscrete reports true: qubit spaces have a finite local basis.
func (h *Qubit) IsDiscrete() bool { return true }

// LocalSize returns 2.
func (h *Qubit) LocalSize() int { return 2 }

// Size returns the number of qubits.
func (h *Qubit) Size() int { return h.nsites }

// LocalStates returns 0, 1.
func (h *Qubit) LocalStates() []float64 { return h.local }

// Graph returns the lattice the space is defined on.
func (h *Qubit) Graph() graph.Graph { return h.g }

// CheckConstraint always reports true: qubit spaces are unconstrained.
func (h *Qubit) CheckConstraint(_ []float64) bool { return true }

// RandomVals fills v drawing every site independently and uniformly.
func (h *Qubit) RandomVals(v []float64, rng *rand.Rand) error {
	if len(v) != h.nsites {
		return &ErrSizeMismatch{Expected: h.nsites, Actual: len(v)}
	}

	for i := range v {
		v[i] = float64(rng.Intn(2))
	}

	return nil
}

// UpdateConf writes vals at the given sites.
func (h *Qubit) UpdateConf(v []float64, sites []int, vals []float64) error {
	return applyUpdate(v, sites, vals, h.nsites, h.lookup)
}
