// Package manybody drives exact computations on quantum lattice models: it
// decodes a JSON input document, builds the lattice graph, the Hilbert space
// and the Hamiltonian, and runs full diagonalization or real-time evolution,
// streaming observer records and artifacts to a pluggable store.
//
// Basic usage:
//
//	p, err := params.Decode(inputFile)
//	if err != nil { ... }
//
//	store, err := output.NewLocalStore("./run")
//	if err != nil { ... }
//
//	result, err := manybody.Run(ctx, p,
//		manybody.WithStore(store),
//		manybody.WithLogLevel(slog.LevelInfo),
//	)
//
// The building blocks are exported from the subpackages (graph, hilbert,
// operator, exact, params, output) for programs that need more control than
// the document-driven entry point offers.
package manybody
