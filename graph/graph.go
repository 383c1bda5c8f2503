// Package graph provides lattice graphs for many-body models: site sets,
// adjacency, traversal and symmetry information.
package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSymmetry is returned when a symmetry table is requested from a
	// graph that has no translation symmetries.
	ErrNoSymmetry = errors.New("graph has no translation symmetries")
)

// ErrInvalidEdge indicates a malformed entry in an edge list.
type ErrInvalidEdge struct {
	Edge []int
}

func (e *ErrInvalidEdge) Error() string {
	return fmt.Sprintf("invalid edge %v: edges must connect exactly two non-negative sites", e.Edge)
}

// Graph describes a lattice: a set of sites and the bonds between them.
//
// Implementations are immutable after construction and safe for concurrent
// use.
type Graph interface {
	// Nsites returns the number of lattice sites.
	Nsites() int

	// AdjacencyList returns, for every site, the list of its neighbors.
	AdjacencyList() [][]int

	// EdgeColors returns the color assigned to each edge. Edges are keyed
	// with the smaller site first.
	EdgeColors() map[[2]int]int

	// SymmetryTable returns a list of site permutations under which the
	// graph is invariant.
	SymmetryTable() ([][]int, error)

	// IsBipartite reports whether the graph is bipartite.
	IsBipartite() bool

	// IsConnected reports whether every site is reachable from every other.
	IsConnected() bool
}

// BreadthFirstSearch visits all sites reachable from start up to maxDepth
// bonds away, calling visit with the site and its distance from start.
// Every reachable site is visited exactly once.
func BreadthFirstSearch(g Graph, start, maxDepth int, visit func(site, depth int)) {
	seen := make([]bool, g.Nsites())
	breadthFirstSearch(g.AdjacencyList(), start, maxDepth, seen, visit)
}

type bfsEntry struct {
	site  int
	depth int
}

func breadthFirstSearch(adj [][]int, start, maxDepth int, seen []bool, visit func(site, depth int)) {
	queue := []bfsEntry{{site: start, depth: 0}}
	seen[start] = true

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		if e.depth > maxDepth {
			continue
		}

		visit(e.site, e.depth)

		for _, n := range adj[e.site] {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, bfsEntry{site: n, depth: e.depth + 1})
			}
		}
	}
}

// Distances returns the bond distance from root to every site. Sites not
// reachable from root have distance -1.
func Distances(g Graph, root int) []int {
	dists := make([]int, g.Nsites())
	for i := range dists {
		dists[i] = -1
	}

	BreadthFirstSearch(g, root, g.Nsites(), func(site, depth int) {
		dists[site] = depth
	})

	return dists
}

// AllDistances returns the pairwise bond distances between all sites.
func AllDistances(g Graph) [][]int {
	dists := make([][]int, 0, g.Nsites())
	for i := 0; i < g.Nsites(); i++ {
		dists = append(dists, Distances(g, i))
	}
	return dists
}

// Edges returns the unique edges of g, smaller site first, in ascending
// order of appearance in the adjacency list.
func Edges(g Graph) [][2]int {
	var edges [][2]int
	for i, neighbors := range g.AdjacencyList() {
		for _, j := range neighbors {
			if i < j {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return edges
}

// isConnected reports whether all nsites sites are reachable from site 0.
func isConnected(adj [][]int, nsites int) bool {
	if nsites == 0 {
		return false
	}

	seen := make([]bool, nsites)
	count := 0
	breadthFirstSearch(adj, 0, nsites, seen, func(int, int) {
		count++
	})

	return count == nsites
}

// adjacencyFromEdges converts an edge list to a symmetric adjacency list.
// The number of sites is inferred from the largest site index.
func adjacencyFromEdges(edges [][]int) ([][]int, error) {
	nsites := 0
	for _, edge := range edges {
		if len(edge) != 2 || edge[0] < 0 || edge[1] < 0 {
			return nil, &ErrInvalidEdge{Edge: edge}
		}
		if edge[0] > nsites {
			nsites = edge[0]
		}
		if edge[1] > nsites {
			nsites = edge[1]
		}
	}
	nsites++

	adj := make([][]int, nsites)
	for _, edge := range edges {
		adj[edge[0]] = append(adj[edge[0]], edge[1])
		adj[edge[1]] = append(adj[edge[1]], edge[0])
	}

	return adj, nil
}

// defaultEdgeColors assigns color 0 to every edge in the adjacency list.
func defaultEdgeColors(adj [][]int) map[[2]int]int {
	colors := make(map[[2]int]int)
	for i, neighbors := range adj {
		for _, j := range neighbors {
			if i < j {
				colors[[2]int{i, j}] = 0
			} else {
				colors[[2]int{j, i}] = 0
			}
		}
	}
	return colors
}
