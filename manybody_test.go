package manybody

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qubitlab/manybody/graph"
	"github.com/qubitlab/manybody/hilbert"
	"github.com/qubitlab/manybody/output"
	"github.com/qubitlab/manybody/params"
)

func decode(t *testing.T, doc string) params.Params {
	t.Helper()

	p, err := params.Decode(strings.NewReader(doc))
	require.NoError(t, err)

	return p
}

func TestBuildGraph(t *testing.T) {
	g, err := BuildGraph(params.Params{"Name": "Hypercube", "L": 4.0, "Pbc": false})
	require.NoError(t, err)
	assert.Equal(t, 4, g.Nsites())

	g, err = BuildGraph(decode(t, `{"Name": "Custom", "Edges": [[0, 1], [1, 2]]}`))
	require.NoError(t, err)
	assert.Equal(t, 3, g.Nsites())

	_, err = BuildGraph(params.Params{"Name": "Honeycomb"})
	var unknown *ErrUnknownName
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "graph", unknown.Kind)

	_, err = BuildGraph(decode(t, `{
		"Name": "Custom",
		"Edges": [[0, 1]],
		"AdjacencyList": [[1], [0]]
	}`))
	assert.ErrorIs(t, err, ErrExclusiveFields)

	var missing *params.ErrFieldMissing
	_, err = BuildGraph(params.Params{"Name": "Custom"})
	assert.ErrorAs(t, err, &missing)
}

func TestBuildSpace(t *testing.T) {
	g, err := graph.NewHypercube(3, 1, false)
	require.NoError(t, err)

	s, err := BuildSpace(params.Params{"Name": "Spin", "S": 0.5}, g)
	require.NoError(t, err)
	assert.Equal(t, 2, s.LocalSize())

	s, err = BuildSpace(params.Params{"Name": "Spin", "S": 0.5, "TotalSz": 0.5}, g)
	require.NoError(t, err)
	assert.True(t, s.CheckConstraint([]float64{1, 1, -1}))
	assert.False(t, s.CheckConstraint([]float64{1, 1, 1}))

	s, err = BuildSpace(params.Params{"Name": "Boson", "Nmax": 2.0, "Nbosons": 3.0}, g)
	require.NoError(t, err)
	assert.Equal(t, 3, s.LocalSize())

	s, err = BuildSpace(params.Params{"Name": "Qubit"}, g)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, s.LocalStates())

	s, err = BuildSpace(decode(t, `{"Name": "Custom", "LocalStates": [-2, 0, 2]}`), g)
	require.NoError(t, err)
	assert.Equal(t, 3, s.LocalSize())

	var unknown *ErrUnknownName
	_, err = BuildSpace(params.Params{"Name": "Fermion"}, g)
	assert.ErrorAs(t, err, &unknown)
}

func TestBuildHamiltonian(t *testing.T) {
	g, err := graph.NewHypercube(2, 1, false)
	require.NoError(t, err)
	s, err := hilbert.NewSpin(g, 0.5)
	require.NoError(t, err)

	h, err := BuildHamiltonian(params.Params{"Name": "Ising", "h": 1.0, "J": 0.5}, s)
	require.NoError(t, err)
	assert.NotNil(t, h)

	h, err = BuildHamiltonian(params.Params{"Name": "Heisenberg"}, s)
	require.NoError(t, err)
	assert.NotNil(t, h)

	h, err = BuildHamiltonian(decode(t, `{
		"Name": "Custom",
		"Operators": [[[0, 1], [1, 0]]],
		"ActingOn": [[0]]
	}`), s)
	require.NoError(t, err)
	assert.NotNil(t, h)

	var count *ErrOperatorCount
	_, err = BuildHamiltonian(decode(t, `{
		"Name": "Custom",
		"Operators": [[[0, 1], [1, 0]]],
		"ActingOn": [[0], [1]]
	}`), s)
	assert.ErrorAs(t, err, &count)

	var unknown *ErrUnknownName
	_, err = BuildHamiltonian(params.Params{"Name": "Hubbard"}, s)
	assert.ErrorAs(t, err, &unknown)
}

func TestBuildModel(t *testing.T) {
	p := decode(t, `{
		"Graph": {"Name": "Hypercube", "L": 2, "Pbc": false},
		"Hilbert": {"Name": "Spin", "S": 0.5},
		"Hamiltonian": {"Name": "Heisenberg", "J": 1}
	}`)

	m, err := BuildModel(p)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Index.NStates())
	assert.Empty(t, m.Observables)

	delete(p, "Hamiltonian")
	_, err = BuildModel(p)
	assert.ErrorIs(t, err, ErrMissingSection)
}

func TestRunDiagonalization(t *testing.T) {
	ctx := context.Background()

	store, err := output.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	p := decode(t, `{
		"Graph": {"Name": "Hypercube", "L": 2, "Pbc": false},
		"Hilbert": {"Name": "Spin", "S": 0.5},
		"Hamiltonian": {"Name": "Heisenberg", "J": 1},
		"Observables": [
			{
				"Name": "SzSz",
				"Operators": [[[1, 0, 0, 0], [0, -1, 0, 0], [0, 0, -1, 0], [0, 0, 0, 1]]],
				"ActingOn": [[0, 1]]
			}
		]
	}`)

	result, err := Run(ctx, p, WithStore(store))
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	require.Len(t, result.Eigenvalues, 4)
	assert.InDelta(t, -3.0, result.GroundStateEnergy, 1e-10)
	require.Len(t, result.Records, 1)
	assert.InDelta(t, -3.0, result.Records[0].Observables["Energy"], 1e-10)
	assert.InDelta(t, -1.0, result.Records[0].Observables["SzSz"], 1e-10)

	manifest, err := output.LoadManifest(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, result.RunID, manifest.RunID)
	assert.Equal(t, []string{RunLogName, SnapshotName}, manifest.Artifacts)

	rc, err := store.Open(ctx, RunLogName)
	require.NoError(t, err)
	defer rc.Close()
	records, err := output.ReadRunLog(rc)
	require.NoError(t, err)
	assert.Equal(t, result.Records, records)

	sc, err := store.Open(ctx, SnapshotName)
	require.NoError(t, err)
	defer sc.Close()
	psi, err := output.LoadWavefunction(sc)
	require.NoError(t, err)
	assert.Equal(t, result.State, psi)
}

func TestRunTimeEvolution(t *testing.T) {
	ctx := context.Background()

	store, err := output.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	p := decode(t, `{
		"Graph": {"Name": "Hypercube", "L": 2, "Pbc": false},
		"Hilbert": {"Name": "Spin", "S": 0.5},
		"Hamiltonian": {"Name": "Heisenberg", "J": 1},
		"TimeEvolution": {
			"Dt": 0.1,
			"Tmax": 0.5,
			"InitialState": [0, 1, 0, 0]
		}
	}`)

	result, err := Run(ctx, p, WithStore(store), WithCompressedLogs())
	require.NoError(t, err)

	assert.Nil(t, result.Eigenvalues)
	require.Len(t, result.Records, 6)
	for _, rec := range result.Records {
		assert.InDelta(t, -1.0, rec.Observables["Energy"], 1e-6)
	}
	assert.Len(t, result.State, 4)

	manifest, err := output.LoadManifest(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, []string{CompressedRunLogName, SnapshotName}, manifest.Artifacts)

	rc, err := store.Open(ctx, CompressedRunLogName)
	require.NoError(t, err)
	defer rc.Close()
	records, err := output.ReadRunLog(rc)
	require.NoError(t, err)
	assert.Equal(t, result.Records, records)
}

func TestRunWithoutStore(t *testing.T) {
	p := decode(t, `{
		"Graph": {"Name": "Hypercube", "L": 2, "Pbc": false},
		"Hilbert": {"Name": "Spin", "S": 0.5},
		"Hamiltonian": {"Name": "Ising", "h": 1, "J": 0}
	}`)

	result, err := Run(context.Background(), p)
	require.NoError(t, err)
	assert.InDelta(t, -2.0, result.GroundStateEnergy, 1e-10)
}
