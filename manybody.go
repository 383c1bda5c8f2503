package manybody

import (
	"bytes"
	"context"
	"fmt"

	"github.com/qubitlab/manybody/exact"
	"github.com/qubitlab/manybody/graph"
	"github.com/qubitlab/manybody/hilbert"
	"github.com/qubitlab/manybody/operator"
	"github.com/qubitlab/manybody/output"
	"github.com/qubitlab/manybody/params"
)

// Artifact names used by the document-driven runner.
const (
	RunLogName           = "run.log"
	CompressedRunLogName = "run.log.gz"
	SnapshotName         = "wavefunction.lz4"
)

// Observable is a labeled operator whose expectation value is recorded at
// every observer step.
type Observable struct {
	Name     string
	Operator operator.Operator
}

// Model is the fully built computational setup described by an input
// document.
type Model struct {
	Graph       graph.Graph
	Space       hilbert.Space
	Hamiltonian operator.Operator
	Index       *hilbert.Index
	Observables []Observable
}

// BuildModel builds the graph, Hilbert space, Hamiltonian, state index and
// observables from an input document.
func BuildModel(p params.Params) (*Model, error) {
	for _, section := range []string{"Graph", "Hilbert", "Hamiltonian"} {
		if !p.Has(section) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSection, section)
		}
	}

	gp, err := p.Object("Graph")
	if err != nil {
		return nil, err
	}
	g, err := BuildGraph(gp)
	if err != nil {
		return nil, err
	}

	sp, err := p.Object("Hilbert")
	if err != nil {
		return nil, err
	}
	space, err := BuildSpace(sp, g)
	if err != nil {
		return nil, err
	}

	hp, err := p.Object("Hamiltonian")
	if err != nil {
		return nil, err
	}
	h, err := BuildHamiltonian(hp, space)
	if err != nil {
		return nil, err
	}

	idx, err := hilbert.NewIndex(space)
	if err != nil {
		return nil, err
	}

	m := &Model{
		Graph:       g,
		Space:       space,
		Hamiltonian: h,
		Index:       idx,
	}

	if p.Has("Observables") {
		obs, err := p.Objects("Observables")
		if err != nil {
			return nil, err
		}
		for _, op := range obs {
			name, o, err := BuildObservable(op, space)
			if err != nil {
				return nil, err
			}
			m.Observables = append(m.Observables, Observable{Name: name, Operator: o})
		}
	}

	return m, nil
}

// Result is the outcome of a document-driven run.
type Result struct {
	// RunID identifies the run and its manifest.
	RunID string

	// Eigenvalues are the ascending eigenvalues of the Hamiltonian, when
	// a diagonalization was performed.
	Eigenvalues []float64

	// GroundStateEnergy is the lowest eigenvalue.
	GroundStateEnergy float64

	// State is the final state vector: the ground state for
	// diagonalization runs, the evolved state for time evolution runs.
	State []complex128

	// Records are the observer records of the run, in order.
	Records []output.Record
}

// Run executes the computation described by the input document: full
// diagonalization by default, real-time evolution when a "TimeEvolution"
// section is present. Artifacts are written to the configured store.
func Run(ctx context.Context, p params.Params, optFns ...Option) (*Result, error) {
	opts := applyOptions(optFns)

	manifest, err := output.NewManifest(p)
	if err != nil {
		return nil, err
	}
	logger := opts.logger.WithRunID(manifest.RunID)

	model, err := BuildModel(p)
	if err != nil {
		logger.LogBuild(ctx, "model", "", err)
		return nil, err
	}
	logger.LogBuild(ctx, "model", "", nil)

	result := &Result{RunID: manifest.RunID}

	if p.Has("TimeEvolution") {
		err = runEvolution(ctx, p, model, result, logger)
	} else {
		err = runDiagonalization(ctx, model, result, logger)
	}
	if err != nil {
		return nil, err
	}

	if opts.store != nil {
		if err := writeArtifacts(ctx, opts, manifest, result, logger); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// record evaluates the energy and all observables of psi.
func record(model *Model, iteration int, t float64, psi []complex128) (output.Record, error) {
	observables := make(map[string]float64, len(model.Observables)+1)

	energy, err := exact.Expectation(model.Index, model.Hamiltonian, psi)
	if err != nil {
		return output.Record{}, err
	}
	observables["Energy"] = real(energy)

	for _, obs := range model.Observables {
		value, err := exact.Expectation(model.Index, obs.Operator, psi)
		if err != nil {
			return output.Record{}, err
		}
		observables[obs.Name] = real(value)
	}

	return output.Record{
		Iteration:   iteration,
		Time:        t,
		Observables: observables,
	}, nil
}

func runDiagonalization(ctx context.Context, model *Model, result *Result, logger *Logger) error {
	res, err := exact.Eigensolve(model.Index, model.Hamiltonian, true)
	logger.LogDiagonalization(ctx, model.Index.NStates(), err)
	if err != nil {
		return err
	}

	result.Eigenvalues = res.Values
	result.GroundStateEnergy = res.GroundStateEnergy()
	result.State = res.GroundState()

	rec, err := record(model, 0, 0, result.State)
	if err != nil {
		return err
	}
	result.Records = append(result.Records, rec)

	return nil
}

func runEvolution(ctx context.Context, p params.Params, model *Model, result *Result, logger *Logger) error {
	te, err := p.Object("TimeEvolution")
	if err != nil {
		return err
	}

	dt, err := te.Float("Dt")
	if err != nil {
		return err
	}
	tmax, err := te.Float("Tmax")
	if err != nil {
		return err
	}
	t0, err := te.FloatOr("T0", 0)
	if err != nil {
		return err
	}

	psi, err := initialState(te, model)
	if err != nil {
		return err
	}

	ev, err := exact.NewEvolution(model.Index, model.Hamiltonian, dt)
	if err != nil {
		return err
	}

	iteration := 0
	err = ev.Run(psi, t0, tmax, func(t float64, state []complex128) error {
		rec, err := record(model, iteration, t, state)
		if err != nil {
			return err
		}
		result.Records = append(result.Records, rec)
		iteration++
		return nil
	})
	logger.LogEvolution(ctx, model.Index.NStates(), tmax, err)
	if err != nil {
		return err
	}

	result.State = psi

	return nil
}

// initialState resolves the starting vector of a time evolution: an
// explicit "InitialState" amplitude list, or the Hamiltonian's ground state
// when absent.
func initialState(te params.Params, model *Model) ([]complex128, error) {
	if te.Has("InitialState") {
		psi, err := te.Complexes("InitialState")
		if err != nil {
			return nil, err
		}
		if len(psi) != model.Index.NStates() {
			return nil, &hilbert.ErrSizeMismatch{Expected: model.Index.NStates(), Actual: len(psi)}
		}
		return psi, nil
	}

	res, err := exact.Eigensolve(model.Index, model.Hamiltonian, true)
	if err != nil {
		return nil, err
	}

	return res.GroundState(), nil
}

func writeArtifacts(ctx context.Context, opts options, manifest *output.Manifest, result *Result, logger *Logger) error {
	logName := RunLogName
	var logOpts []output.RunLogOption
	if opts.compressLogs {
		logName = CompressedRunLogName
		logOpts = append(logOpts, output.WithCompression())
	}

	var buf bytes.Buffer

	log := output.NewRunLog(&buf, logOpts...)
	for _, rec := range result.Records {
		if err := log.Write(rec); err != nil {
			return err
		}
	}
	if err := log.Close(); err != nil {
		return err
	}

	if err := opts.store.Put(ctx, logName, &buf); err != nil {
		logger.LogArtifact(ctx, logName, err)
		return err
	}
	logger.LogArtifact(ctx, logName, nil)
	manifest.AddArtifact(logName)

	var snap bytes.Buffer
	if err := output.SaveWavefunction(&snap, result.State); err != nil {
		return err
	}
	if err := opts.store.Put(ctx, SnapshotName, &snap); err != nil {
		logger.LogArtifact(ctx, SnapshotName, err)
		return err
	}
	logger.LogArtifact(ctx, SnapshotName, nil)
	manifest.AddArtifact(SnapshotName)

	if err := manifest.Save(ctx, opts.store); err != nil {
		logger.LogArtifact(ctx, output.ManifestName, err)
		return err
	}
	logger.LogArtifact(ctx, output.ManifestName, nil)

	return nil
}
