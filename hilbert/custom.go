package hilbert

import (
	"math/rand"

	"github.com/qubitlab/manybody/graph"
)

// Compile-time check that Custom satisfies the Space interface.
var _ Space = (*Custom)(nil)

// Custom is a Hilbert space with a caller-defined local state set and no
// global constraint.
type Custom struct {
	g graph.Graph

	local  []float64
	lookup map[float64]int

	localSize int
	nsites    int
}

// NewCustomSpace constructs a space whose sites take the given local
// states. The states must be non-empty and strictly ascending.
func NewCustomSpace(g graph.Graph, localStates []float64) (*Custom, error) {
	nsites := g.Nsites()
	if nsites <= 0 {
		return nil, ErrInvalidSize
	}

	if len(localStates) == 0 {
		return nil, ErrInvalidLocalStates
	}
	for i := 1; i < len(localStates); i++ {
		if localStates[i] <= localStates[i-1] {
			return nil, ErrInvalidLocalStates
		}
	}

	local := make([]float64, len(localStates))
	copy(local, localStates)

	return &Custom{
		g:         g,
		local:     local,
		lookup:    localIndex(local),
		localSize: len(local),
		nsites:    nsites,
	}, nil
}

// IsDiscrete reports true: custom spaces have a finite local basis.
func (h *Custom) IsDiscrete() bool { return true }

// LocalSize returns the number of local states.
func (h *Custom) LocalSize() int { return h.localSize }

// Size returns the number of sites.
func (h *Custom) Size() int { return h.nsites }

// LocalStates returns the local states in ascending order.
func (h *Custom) LocalStates() []float64 { return h.local }

// Graph returns the lattice the space is defined on.
func (h *Custom) Graph() graph.Graph { return h.g }

// CheckConstraint always reports true: custom spaces are unconstrained.
func (h *Custom) CheckConstraint(_ []float64) bool { return true }

// RandomVals fills v drawing every site independently and uniformly.
func (h *Custom) RandomVals(v []float64, rng *rand.Rand) error {
	if len(v) != h.nsites {
		return &ErrSizeMismatch{Expected: h.nsites, Actual: len(v)}
	}

	for i := range v {
		v[i] = h.local[rng.Intn(h.localSize)]
	}

	return nil
}

// UpdateConf writes vals at the given sites.
func (h *Custom) UpdateConf(v []float64, sites []int, vals []float64) error {
	return applyUpdate(v, sites, vals, h.nsites, h.lookup)
}
