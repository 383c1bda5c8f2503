package hilbert

import (
	"math/rand"

	"github.com/qubitlab/manybody/graph"
)

// Compile-time check that Boson satisfies the Space interface.
var _ Space = (*Boson)(nil)

// BosonOption configures a boson space.
type BosonOption func(*bosonConfig)

type bosonConfig struct {
	nbosons     int
	constrained bool
}

// WithNbosons fixes the total number of bosons of every sampled or indexed
// configuration.
func WithNbosons(nbosons int) BosonOption {
	return func(c *bosonConfig) {
		c.nbosons = nbosons
		c.constrained = true
	}
}

// Boson is the Hilbert space of lattice bosons truncated to a maximum
// occupation number per site.
type Boson struct {
	g graph.Graph

	nmax        int
	nbosons     int
	constrained bool

	local  []float64
	lookup map[float64]int

	localSize int
	nsites    int
}

// NewBoson constructs a boson space on the given lattice with local
// occupations 0..nmax.
func NewBoson(g graph.Graph, nmax int, optFns ...BosonOption) (*Boson, error) {
	var cfg bosonConfig
	for _, fn := range optFns {
		if fn != nil {
			fn(&cfg)
		}
	}

	nsites := g.Nsites()
	if nsites <= 0 {
		return nil, ErrInvalidSize
	}
	if nmax <= 0 {
		return nil, ErrInvalidNmax
	}

	if cfg.constrained {
		if cfg.nbosons < 0 || cfg.nbosons > nsites*nmax {
			return nil, &ErrUnsatisfiableConstraint{
				Reason: "Nbosons must be between 0 and Nsites*Nmax",
			}
		}
	}

	localSize := nmax + 1
	local := make([]float64, localSize)
	for i := range local {
		local[i] = float64(i)
	}

	return &Boson{
		g:           g,
		nmax:        nmax,
		nbosons:     cfg.nbosons,
		constrained: cfg.constrained,
		local:       local,
		lookup:      localIndex(local),
		localSize:   localSize,
		nsites:      nsites,
	}, nil
}

// IsDiscrete reports true: boson spaces have a finite local basis.
func (h *Boson) IsDiscrete() bool { return true }

// LocalSize returns Nmax+1.
func (h *Boson) LocalSize() int { return h.localSize }

// Size returns the number of sites.
func (h *Boson) Size() int { return h.nsites }

// LocalStates returns 0, 1, ..., Nmax.
func (h *Boson) LocalStates() []float64 { return h.local }

// Nmax returns the maximum local occupation number.
func (h *Boson) Nmax() int { return h.nmax }

// Nbosons returns the fixed total boson number and whether the constraint
// is active.
func (h *Boson) Nbosons() (int, bool) { return h.nbosons, h.constrained }

// Constrained reports whether the Nbosons constraint is active.
func (h *Boson) Constrained() bool { return h.constrained }

// Graph returns the lattice the space is defined on.
func (h *Boson) Graph() graph.Graph { return h.g }

// CheckConstraint reports whether the total occupation of v matches the
// fixed Nbosons. Unconstrained spaces accept every configuration.
func (h *Boson) CheckConstraint(v []float64) bool {
	if !h.constrained {
		return true
	}

	total := 0
	for _, n := range v {
		total += int(n)
	}

	return total == h.nbosons
}

// RandomVals fills v with a random occupation configuration.
//
// Without a constraint every site is drawn independently and uniformly.
// With fixed Nbosons the configuration starts empty and bosons are added
// one at a time to a uniformly chosen site, re-drawing when the site is
// already at Nmax. The walk terminates because total capacity exceeds the
// target by construction, but it is not guaranteed to be uniform over the
// constrained set.
func (h *Boson) RandomVals(v []float64, rng *rand.Rand) error {
	if len(v) != h.nsites {
		return &ErrSizeMismatch{Expected: h.nsites, Actual: len(v)}
	}

	if !h.constrained {
		for i := range v {
			v[i] = h.local[rng.Intn(h.localSize)]
		}
		return nil
	}

	for i := range v {
		v[i] = 0
	}

	for i := 0; i < h.nbosons; i++ {
		site := rng.Intn(h.nsites)
		for v[site] >= float64(h.nmax) {
			site = rng.Intn(h.nsites)
		}
		v[site]++
	}

	return nil
}

// UpdateConf writes vals at the given sites and re-validates the Nbosons
// constraint when active.
func (h *Boson) UpdateConf(v []float64, sites []int, vals []float64) error {
	if err := applyUpdate(v, sites, vals, h.nsites, h.lookup); err != nil {
		return err
	}

	if !h.CheckConstraint(v) {
		return ErrConstraintViolated
	}

	return nil
}
