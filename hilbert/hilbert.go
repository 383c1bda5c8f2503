// Package hilbert models the discrete configuration space of a many-body
// lattice system.
//
// A Space assigns every lattice site a finite, ordered set of local quantum
// numbers and optionally a global constraint (fixed total magnetization,
// fixed particle number) restricting which full configurations are valid.
// Spaces are immutable after construction; configurations are owned by
// callers and mutated in place through UpdateConf.
package hilbert

import (
	"math/rand"

	"github.com/qubitlab/manybody/graph"
)

// Space is the local degree-of-freedom model of a lattice system.
//
// Implementations are immutable after construction and safe for concurrent
// read use. Randomness is always supplied by the caller; callers sampling
// in parallel must use one generator per goroutine.
type Space interface {
	// IsDiscrete reports whether the local basis is a finite set.
	IsDiscrete() bool

	// LocalSize returns the number of distinct per-site values.
	LocalSize() int

	// Size returns the number of lattice sites.
	Size() int

	// LocalStates returns the allowed per-site values in ascending order.
	// The returned slice must not be modified.
	LocalStates() []float64

	// RandomVals fills v with a random configuration drawn from the local
	// states, honoring the active global constraint.
	RandomVals(v []float64, rng *rand.Rand) error

	// UpdateConf writes vals at the given sites. Every written value must
	// be a local state; when a global constraint is active the whole
	// configuration is re-validated afterwards and ErrConstraintViolated
	// is returned on violation. The update is never silently repaired: on
	// a constraint error v retains the written values.
	UpdateConf(v []float64, sites []int, vals []float64) error

	// CheckConstraint reports whether v satisfies the space's global
	// constraint. Spaces without an active constraint accept every
	// configuration.
	CheckConstraint(v []float64) bool

	// Graph returns the lattice the space is defined on.
	Graph() graph.Graph
}

// localIndex maps a local state value back to its position in the local
// state set. Local states are exact small integers stored as float64, so
// map equality on the raw values is stable.
func localIndex(local []float64) map[float64]int {
	idx := make(map[float64]int, len(local))
	for i, v := range local {
		idx[v] = i
	}
	return idx
}

// applyUpdate validates and applies a partial configuration update shared
// by all discrete space variants.
func applyUpdate(v []float64, sites []int, vals []float64, size int, lookup map[float64]int) error {
	if len(v) != size {
		return &ErrSizeMismatch{Expected: size, Actual: len(v)}
	}
	if len(sites) != len(vals) {
		return &ErrSizeMismatch{Expected: len(sites), Actual: len(vals)}
	}

	for i, site := range sites {
		if site < 0 || site >= size {
			return &ErrInvalidSite{Site: site, Size: size}
		}
		if _, ok := lookup[vals[i]]; !ok {
			return &ErrInvalidLocalValue{Site: site, Value: vals[i]}
		}
	}

	for i, site := range sites {
		v[site] = vals[i]
	}

	return nil
}
