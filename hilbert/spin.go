package hilbert

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/qubitlab/manybody/graph"
)

// Compile-time check that Spin satisfies the Space interface.
var _ Space = (*Spin)(nil)

// SpinOption configures a spin space.
type SpinOption func(*spinConfig)

type spinConfig struct {
	totalSz     float64
	constrained bool
}

// WithTotalSz fixes the total spin projection of every sampled or indexed
// configuration. The value is in physical units; with the integer
// representation of the local states the constrained configurations satisfy
// sum(v) == 2*totalSz.
func WithTotalSz(totalSz float64) SpinOption {
	return func(c *spinConfig) {
		c.totalSz = totalSz
		c.constrained = true
	}
}

// Spin is the Hilbert space of integer or half-integer spins.
//
// Local quantum numbers use the integer representation: for S=3/2 the
// allowed values are -3,-1,1,3, and for S=1 they are -2,0,2. Callers
// interpret the scaling.
type Spin struct {
	g graph.Graph

	s           float64
	totalSz     float64
	constrained bool

	local  []float64
	lookup map[float64]int

	localSize int
	nspins    int

	// Precomputed sampling parameters for the constrained paths.
	nup    int // S=1/2: sites at +1
	ndown  int // S=1/2: sites at -1
	raises int // S>1/2: number of unit raises from the all-minimum state
}

// NewSpin constructs a spin space on the given lattice. s must be a
// positive integer or half-integer.
func NewSpin(g graph.Graph, s float64, optFns ...SpinOption) (*Spin, error) {
	var cfg spinConfig
	for _, fn := range optFns {
		if fn != nil {
			fn(&cfg)
		}
	}

	nspins := g.Nsites()
	if nspins <= 0 {
		return nil, ErrInvalidSize
	}
	if s <= 0 || math.Floor(2*s) != 2*s {
		return nil, ErrInvalidSpin
	}

	localSize := int(math.Floor(2*s)) + 1
	local := make([]float64, localSize)
	sp := -math.Floor(2 * s)
	for i := range local {
		local[i] = sp
		sp += 2
	}

	sub := &Spin{
		g:           g,
		s:           s,
		totalSz:     cfg.totalSz,
		constrained: cfg.constrained,
		local:       local,
		lookup:      localIndex(local),
		localSize:   localSize,
		nspins:      nspins,
	}

	if cfg.constrained {
		if err := sub.initConstraint(); err != nil {
			return nil, err
		}
	}

	return sub, nil
}

// initConstraint validates the TotalSz constraint against the lattice size
// and precomputes the sampling parameters.
func (h *Spin) initConstraint() error {
	m := 2 * h.totalSz
	if m != math.Trunc(m) {
		return &ErrUnsatisfiableConstraint{
			Reason: fmt.Sprintf("2*TotalSz = %v is not an integer", m),
		}
	}

	if h.s == 0.5 {
		mi := int(m)
		if mi < 0 {
			mi = -mi
		}
		if mi > h.nspins {
			return &ErrUnsatisfiableConstraint{
				Reason: "2|TotalSz| cannot exceed the number of spins",
			}
		}
		if (h.nspins+int(m))%2 != 0 {
			return &ErrUnsatisfiableConstraint{
				Reason: "Nspins + 2*TotalSz must be even",
			}
		}
		h.nup = (h.nspins + int(m)) / 2
		h.ndown = h.nspins - h.nup
		return nil
	}

	raises := h.s*float64(h.nspins) + h.totalSz
	if raises != math.Trunc(raises) {
		return &ErrUnsatisfiableConstraint{
			Reason: fmt.Sprintf("S*Nspins + TotalSz = %v is not an integer", raises),
		}
	}
	if raises < 0 || raises > 2*h.s*float64(h.nspins) {
		return &ErrUnsatisfiableConstraint{
			Reason: "TotalSz is outside the reachable magnetization range",
		}
	}
	h.raises = int(raises)

	return nil
}

// IsDiscrete reports true: spin spaces have a finite local basis.
func (h *Spin) IsDiscrete() bool { return true }

// LocalSize returns 2S+1.
func (h *Spin) LocalSize() int { return h.localSize }

// Size returns the number of spins.
func (h *Spin) Size() int { return h.nspins }

// LocalStates returns -2S, -2S+2, ..., +2S.
func (h *Spin) LocalStates() []float64 { return h.local }

// S returns the spin value.
func (h *Spin) S() float64 { return h.s }

// TotalSz returns the fixed total spin projection and whether the
// constraint is active.
func (h *Spin) TotalSz() (float64, bool) { return h.totalSz, h.constrained }

// Constrained reports whether the TotalSz constraint is active.
func (h *Spin) Constrained() bool { return h.constrained }

// Graph returns the lattice the space is defined on.
func (h *Spin) Graph() graph.Graph { return h.g }

// CheckConstraint reports whether the total magnetization of v matches the
// fixed TotalSz. Unconstrained spaces accept every configuration.
func (h *Spin) CheckConstraint(v []float64) bool {
	if !h.constrained {
		return true
	}

	total := 0.0
	for _, s := range v {
		total += s
	}

	return total == 2*h.totalSz
}

// RandomVals fills v with a random spin configuration.
//
// Without a constraint every site is drawn independently and uniformly.
// For S=1/2 with fixed TotalSz the exact number of up and down spins is
// laid out and shuffled, which samples uniformly over the constrained set.
// For S>1/2 the configuration starts at the all-minimum state and performs
// random unit raises on unsaturated sites until the target magnetization is
// reached; this satisfies the constraint exactly but is not guaranteed to
// be uniform over the constrained set.
func (h *Spin) RandomVals(v []float64, rng *rand.Rand) error {
	if len(v) != h.nspins {
		return &ErrSizeMismatch{Expected: h.nspins, Actual: len(v)}
	}

	switch {
	case !h.constrained:
		for i := range v {
			v[i] = h.local[rng.Intn(h.localSize)]
		}

	case h.s == 0.5:
		for i := 0; i < h.nup; i++ {
			v[i] = 1
		}
		for i := h.nup; i < h.nspins; i++ {
			v[i] = -1
		}
		rng.Shuffle(h.nspins, func(i, j int) {
			v[i], v[j] = v[j], v[i]
		})

	default:
		sites := make([]int, h.nspins)
		for i := range sites {
			sites[i] = i
			v[i] = -2 * h.s
		}

		for i := 0; i < h.raises; i++ {
			k := rng.Intn(len(sites))
			v[sites[k]] += 2
			if v[sites[k]] > 2*h.s-1 {
				sites[k] = sites[len(sites)-1]
				sites = sites[:len(sites)-1]
			}
		}
	}

	return nil
}

// UpdateConf writes vals at the given sites and re-validates the TotalSz
// constraint when active.
func (h *Spin) UpdateConf(v []float64, sites []int, vals []float64) error {
	if err := applyUpdate(v, sites, vals, h.nspins, h.lookup); err != nil {
		return err
	}

	if !h.CheckConstraint(v) {
		return ErrConstraintViolated
	}

	return nil
}
