package graph

import (
	"errors"
	"fmt"
)

// ErrInvalidLength indicates an invalid hypercube side length or dimension.
type ErrInvalidLength struct {
	Length    int
	Dimension int
}

func (e *ErrInvalidLength) Error() string {
	return fmt.Sprintf("invalid hypercube: length %d, dimension %d", e.Length, e.Dimension)
}

// ErrPeriodicTooSmall is returned when periodic boundary conditions are
// requested for a hypercube with side length two or less, where the wrapped
// neighbors coincide with the open ones.
var ErrPeriodicTooSmall = errors.New("hypercubes with L<=2 cannot have periodic boundary conditions")

// Compile-time check that Hypercube satisfies the Graph interface.
var _ Graph = (*Hypercube)(nil)

// Hypercube is a d-dimensional hypercubic lattice of side length L, with
// either open or periodic boundary conditions.
type Hypercube struct {
	length int
	ndim   int
	pbc    bool

	sites  [][]int
	adj    [][]int
	colors map[[2]int]int
	nsites int
}

// NewHypercube constructs a hypercubic lattice with L sites per side and
// ndim dimensions. With pbc, each dimension wraps around.
func NewHypercube(length, ndim int, pbc bool) (*Hypercube, error) {
	if length <= 0 || ndim <= 0 {
		return nil, &ErrInvalidLength{Length: length, Dimension: ndim}
	}
	if pbc && length <= 2 {
		return nil, ErrPeriodicTooSmall
	}

	h := &Hypercube{
		length: length,
		ndim:   ndim,
		pbc:    pbc,
	}
	h.generateSites()
	h.generateAdjacency()
	h.colors = defaultEdgeColors(h.adj)

	return h, nil
}

// generateSites enumerates lattice coordinates in mixed-radix order, last
// coordinate fastest, so that coordToSite is pure arithmetic.
func (h *Hypercube) generateSites() {
	h.nsites = 1
	for d := 0; d < h.ndim; d++ {
		h.nsites *= h.length
	}

	h.sites = make([][]int, h.nsites)
	for i := 0; i < h.nsites; i++ {
		coord := make([]int, h.ndim)
		rem := i
		for d := h.ndim - 1; d >= 0; d-- {
			coord[d] = rem % h.length
			rem /= h.length
		}
		h.sites[i] = coord
	}
}

func (h *Hypercube) generateAdjacency() {
	h.adj = make([][]int, h.nsites)

	neigh := make([]int, h.ndim)
	for i := 0; i < h.nsites; i++ {
		copy(neigh, h.sites[i])

		for d := 0; d < h.ndim; d++ {
			if h.pbc {
				neigh[d] = (h.sites[i][d] + 1) % h.length
				h.adj[i] = append(h.adj[i], h.coordToSite(neigh))
				neigh[d] = ((h.sites[i][d]-1)%h.length + h.length) % h.length
				h.adj[i] = append(h.adj[i], h.coordToSite(neigh))
			} else if h.sites[i][d]+1 < h.length {
				neigh[d] = h.sites[i][d] + 1
				j := h.coordToSite(neigh)
				h.adj[i] = append(h.adj[i], j)
				h.adj[j] = append(h.adj[j], i)
			}

			neigh[d] = h.sites[i][d]
		}
	}
}

func (h *Hypercube) coordToSite(coord []int) int {
	site := 0
	for d := 0; d < h.ndim; d++ {
		site = site*h.length + coord[d]
	}
	return site
}

// Nsites returns the number of lattice sites, L^ndim.
func (h *Hypercube) Nsites() int { return h.nsites }

// Length returns the side length of the hypercube.
func (h *Hypercube) Length() int { return h.length }

// Ndim returns the number of dimensions.
func (h *Hypercube) Ndim() int { return h.ndim }

// SiteCoord returns the lattice coordinates of site i.
func (h *Hypercube) SiteCoord(i int) []int { return h.sites[i] }

// CoordToSite returns the site index of the given lattice coordinates.
func (h *Hypercube) CoordToSite(coord []int) int { return h.coordToSite(coord) }

// AdjacencyList returns, for every site, the list of its neighbors.
func (h *Hypercube) AdjacencyList() [][]int { return h.adj }

// EdgeColors returns the edge colors. All hypercube edges carry color 0.
func (h *Hypercube) EdgeColors() map[[2]int]int { return h.colors }

// IsBipartite reports whether the lattice is bipartite. Open hypercubic
// lattices always are; periodic ones only for even side lengths, since an
// odd ring is an odd cycle.
func (h *Hypercube) IsBipartite() bool { return !h.pbc || h.length%2 == 0 }

// IsConnected always reports true for hypercubic lattices.
func (h *Hypercube) IsConnected() bool { return true }

// SymmetryTable returns the site permutations generated by lattice
// translations. Translations are only symmetries under periodic boundary
// conditions; without them ErrNoSymmetry is returned.
func (h *Hypercube) SymmetryTable() ([][]int, error) {
	if !h.pbc {
		return nil, ErrNoSymmetry
	}

	table := make([][]int, 0, h.nsites)
	ts := make([]int, h.ndim)

	for i := 0; i < h.nsites; i++ {
		perm := make([]int, h.nsites)
		for p := 0; p < h.nsites; p++ {
			for d := 0; d < h.ndim; d++ {
				ts[d] = (h.sites[i][d] + h.sites[p][d]) % h.length
			}
			perm[p] = h.coordToSite(ts)
		}
		table = append(table, perm)
	}

	return table, nil
}
