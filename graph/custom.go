package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGraph is returned when a custom graph would have no sites.
	ErrEmptyGraph = errors.New("graph must have at least one site")
)

// ErrInvalidNeighbor indicates an adjacency entry referring to a site
// outside the graph.
type ErrInvalidNeighbor struct {
	Site     int
	Neighbor int
}

func (e *ErrInvalidNeighbor) Error() string {
	return fmt.Sprintf("site %d has out-of-range neighbor %d", e.Site, e.Neighbor)
}

// ErrInvalidAutomorphism indicates an automorphism row that is not a
// permutation of the sites.
type ErrInvalidAutomorphism struct {
	Row int
}

func (e *ErrInvalidAutomorphism) Error() string {
	return fmt.Sprintf("automorphism %d is not a permutation of the sites", e.Row)
}

// Compile-time check that Custom satisfies the Graph interface.
var _ Graph = (*Custom)(nil)

// CustomOption configures a custom graph.
type CustomOption func(*customConfig)

type customConfig struct {
	automorphisms [][]int
	bipartite     bool
	colorList     [][]int
}

// WithAutomorphisms declares the site permutations under which the graph is
// invariant. They are returned verbatim by SymmetryTable.
func WithAutomorphisms(perms [][]int) CustomOption {
	return func(c *customConfig) {
		c.automorphisms = perms
	}
}

// WithBipartite marks the graph as bipartite. Bipartiteness of custom
// graphs is declared, not computed.
func WithBipartite(bipartite bool) CustomOption {
	return func(c *customConfig) {
		c.bipartite = bipartite
	}
}

// WithEdgeColors assigns colors to edges. Each entry is a triple
// {site1, site2, color}. Edges not listed keep color 0.
func WithEdgeColors(colorList [][]int) CustomOption {
	return func(c *customConfig) {
		c.colorList = colorList
	}
}

// Custom is a user-defined graph built from an adjacency list, an edge list
// or a bare site count.
type Custom struct {
	adj           [][]int
	colors        map[[2]int]int
	automorphisms [][]int
	bipartite     bool
	connected     bool
	nsites        int
}

// NewCustom constructs a graph from an explicit adjacency list.
func NewCustom(adjacency [][]int, optFns ...CustomOption) (*Custom, error) {
	cfg := applyCustomOptions(optFns)
	return newCustom(adjacency, cfg)
}

// NewCustomFromEdges constructs a graph from an edge list. Each edge is a
// pair of site indices; the site count is inferred from the largest index.
func NewCustomFromEdges(edges [][]int, optFns ...CustomOption) (*Custom, error) {
	cfg := applyCustomOptions(optFns)

	adj, err := adjacencyFromEdges(edges)
	if err != nil {
		return nil, err
	}

	return newCustom(adj, cfg)
}

// NewCustomFromSize constructs an edgeless graph with the given number of
// sites.
func NewCustomFromSize(size int, optFns ...CustomOption) (*Custom, error) {
	if size < 1 {
		return nil, ErrEmptyGraph
	}

	cfg := applyCustomOptions(optFns)
	return newCustom(make([][]int, size), cfg)
}

func applyCustomOptions(optFns []CustomOption) customConfig {
	var cfg customConfig
	for _, fn := range optFns {
		if fn != nil {
			fn(&cfg)
		}
	}
	return cfg
}

func newCustom(adjacency [][]int, cfg customConfig) (*Custom, error) {
	nsites := len(adjacency)
	if nsites == 0 {
		return nil, ErrEmptyGraph
	}

	g := &Custom{
		adj:           adjacency,
		automorphisms: cfg.automorphisms,
		bipartite:     cfg.bipartite,
		nsites:        nsites,
	}

	if err := g.check(); err != nil {
		return nil, err
	}

	g.colors = defaultEdgeColors(adjacency)
	for _, entry := range cfg.colorList {
		if len(entry) != 3 {
			return nil, &ErrInvalidEdge{Edge: entry}
		}
		a, b := entry[0], entry[1]
		if a > b {
			a, b = b, a
		}
		g.colors[[2]int{a, b}] = entry[2]
	}

	g.connected = isConnected(adjacency, nsites)

	return g, nil
}

func (g *Custom) check() error {
	for site, neighbors := range g.adj {
		for _, n := range neighbors {
			if n < 0 || n >= g.nsites {
				return &ErrInvalidNeighbor{Site: site, Neighbor: n}
			}
		}
	}

	for row, perm := range g.automorphisms {
		if len(perm) != g.nsites {
			return &ErrInvalidAutomorphism{Row: row}
		}
		seen := make([]bool, g.nsites)
		for _, p := range perm {
			if p < 0 || p >= g.nsites || seen[p] {
				return &ErrInvalidAutomorphism{Row: row}
			}
			seen[p] = true
		}
	}

	return nil
}

// Nsites returns the number of sites.
func (g *Custom) Nsites() int { return g.nsites }

// AdjacencyList returns, for every site, the list of its neighbors.
func (g *Custom) AdjacencyList() [][]int { return g.adj }

// EdgeColors returns the color assigned to each edge.
func (g *Custom) EdgeColors() map[[2]int]int { return g.colors }

// IsBipartite reports the declared bipartiteness of the graph.
func (g *Custom) IsBipartite() bool { return g.bipartite }

// IsConnected reports whether every site is reachable from site 0.
func (g *Custom) IsConnected() bool { return g.connected }

// SymmetryTable returns the declared automorphisms. ErrNoSymmetry is
// returned when none were declared.
func (g *Custom) SymmetryTable() ([][]int, error) {
	if len(g.automorphisms) == 0 {
		return nil, ErrNoSymmetry
	}
	return g.automorphisms, nil
}
