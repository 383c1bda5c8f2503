package manybody

import (
	"fmt"

	"github.com/qubitlab/manybody/graph"
	"github.com/qubitlab/manybody/hilbert"
	"github.com/qubitlab/manybody/operator"
	"github.com/qubitlab/manybody/params"
)

// BuildGraph constructs a lattice graph from its parameter section. The
// "Name" field selects the graph type.
func BuildGraph(p params.Params) (graph.Graph, error) {
	name, err := p.String("Name")
	if err != nil {
		return nil, err
	}

	switch name {
	case "Hypercube":
		length, err := p.Int("L")
		if err != nil {
			return nil, err
		}
		ndim, err := p.IntOr("Dimension", 1)
		if err != nil {
			return nil, err
		}
		pbc, err := p.BoolOr("Pbc", true)
		if err != nil {
			return nil, err
		}
		return graph.NewHypercube(length, ndim, pbc)

	case "Custom":
		return buildCustomGraph(p)

	default:
		return nil, &ErrUnknownName{Kind: "graph", Name: name}
	}
}

func buildCustomGraph(p params.Params) (graph.Graph, error) {
	if p.Has("Edges") && p.Has("AdjacencyList") {
		return nil, fmt.Errorf("%w: Edges and AdjacencyList", ErrExclusiveFields)
	}

	var optFns []graph.CustomOption

	if p.Has("Automorphisms") {
		perms, err := p.IntMatrix("Automorphisms")
		if err != nil {
			return nil, err
		}
		optFns = append(optFns, graph.WithAutomorphisms(perms))
	}
	if p.Has("IsBipartite") {
		bipartite, err := p.Bool("IsBipartite")
		if err != nil {
			return nil, err
		}
		optFns = append(optFns, graph.WithBipartite(bipartite))
	}
	if p.Has("EdgeColors") {
		colors, err := p.IntMatrix("EdgeColors")
		if err != nil {
			return nil, err
		}
		optFns = append(optFns, graph.WithEdgeColors(colors))
	}

	switch {
	case p.Has("Edges"):
		edges, err := p.IntMatrix("Edges")
		if err != nil {
			return nil, err
		}
		return graph.NewCustomFromEdges(edges, optFns...)

	case p.Has("AdjacencyList"):
		adjacency, err := p.IntMatrix("AdjacencyList")
		if err != nil {
			return nil, err
		}
		return graph.NewCustom(adjacency, optFns...)

	case p.Has("Size"):
		size, err := p.Int("Size")
		if err != nil {
			return nil, err
		}
		return graph.NewCustomFromSize(size, optFns...)

	default:
		return nil, &params.ErrFieldMissing{Field: "Edges"}
	}
}

// BuildSpace constructs a Hilbert space over the given graph from its
// parameter section.
func BuildSpace(p params.Params, g graph.Graph) (hilbert.Space, error) {
	name, err := p.String("Name")
	if err != nil {
		return nil, err
	}

	switch name {
	case "Spin":
		s, err := p.Float("S")
		if err != nil {
			return nil, err
		}
		var optFns []hilbert.SpinOption
		if p.Has("TotalSz") {
			totalSz, err := p.Float("TotalSz")
			if err != nil {
				return nil, err
			}
			optFns = append(optFns, hilbert.WithTotalSz(totalSz))
		}
		return hilbert.NewSpin(g, s, optFns...)

	case "Boson":
		nmax, err := p.Int("Nmax")
		if err != nil {
			return nil, err
		}
		var optFns []hilbert.BosonOption
		if p.Has("Nbosons") {
			nbosons, err := p.Int("Nbosons")
			if err != nil {
				return nil, err
			}
			optFns = append(optFns, hilbert.WithNbosons(nbosons))
		}
		return hilbert.NewBoson(g, nmax, optFns...)

	case "Qubit":
		return hilbert.NewQubit(g)

	case "Custom":
		localStates, err := p.Floats("LocalStates")
		if err != nil {
			return nil, err
		}
		return hilbert.NewCustomSpace(g, localStates)

	default:
		return nil, &ErrUnknownName{Kind: "hilbert space", Name: name}
	}
}

// BuildHamiltonian constructs a Hamiltonian over the given space from its
// parameter section.
func BuildHamiltonian(p params.Params, space hilbert.Space) (operator.Operator, error) {
	name, err := p.String("Name")
	if err != nil {
		return nil, err
	}

	switch name {
	case "Ising":
		h, err := p.Float("h")
		if err != nil {
			return nil, err
		}
		j, err := p.FloatOr("J", 1)
		if err != nil {
			return nil, err
		}
		return operator.TransverseFieldIsing(space, h, j)

	case "Heisenberg":
		j, err := p.FloatOr("J", 1)
		if err != nil {
			return nil, err
		}
		return operator.Heisenberg(space, j)

	case "Custom":
		return buildCustomOperator(p, space)

	default:
		return nil, &ErrUnknownName{Kind: "hamiltonian", Name: name}
	}
}

// buildCustomOperator assembles a sum of local operators from parallel
// "Operators" and "ActingOn" lists.
func buildCustomOperator(p params.Params, space hilbert.Space) (operator.Operator, error) {
	mats, err := p.ComplexMatrices("Operators")
	if err != nil {
		return nil, err
	}
	actingOn, err := p.IntMatrix("ActingOn")
	if err != nil {
		return nil, err
	}
	if len(mats) != len(actingOn) {
		return nil, &ErrOperatorCount{Operators: len(mats), ActingOn: len(actingOn)}
	}

	terms := make([]operator.Operator, len(mats))
	for i := range mats {
		local, err := operator.NewLocal(space, mats[i], actingOn[i])
		if err != nil {
			return nil, err
		}
		terms[i] = local
	}

	return operator.NewSum(space, terms...)
}

// BuildObservable constructs a labeled custom operator from an entry of the
// "Observables" list.
func BuildObservable(p params.Params, space hilbert.Space) (string, operator.Operator, error) {
	label, err := p.String("Name")
	if err != nil {
		return "", nil, err
	}

	op, err := buildCustomOperator(p, space)
	if err != nil {
		return "", nil, err
	}

	return label, op, nil
}
