// Package exact provides enumeration-based solvers over an indexed Hilbert
// space: dense Hamiltonian assembly, matrix-free operator application,
// expectation values, full diagonalization and real-time evolution.
//
// All of it is bounded by the index's MaxStates guard; these solvers are
// for spaces small enough to enumerate.
package exact

import (
	"errors"
	"math"
	"math/cmplx"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/qubitlab/manybody/hilbert"
	"github.com/qubitlab/manybody/operator"
)

var (
	// ErrNotSymmetric is returned by Eigensolve when the Hamiltonian
	// matrix is not real symmetric.
	ErrNotSymmetric = errors.New("hamiltonian matrix is not real symmetric")

	// ErrZeroState is returned when an expectation value is requested for
	// a state with zero norm.
	ErrZeroState = errors.New("state has zero norm")
)

// symmetryTolerance bounds the deviation from real symmetry accepted by
// Eigensolve.
const symmetryTolerance = 1e-10

// row fills one row of the dense matrix: out[j] = <v_i|O|v_j> for the
// basis configuration v_i with state number i.
func row(idx *hilbert.Index, op operator.Operator, i int, out []complex128) error {
	v, err := idx.NumberToState(i)
	if err != nil {
		return err
	}

	c, err := op.FindConn(v)
	if err != nil {
		return err
	}

	scratch := make([]float64, len(v))
	for e := 0; e < c.Len(); e++ {
		copy(scratch, v)
		for k, site := range c.Sites[e] {
			scratch[site] = c.NewConfs[e][k]
		}

		j, err := idx.StateToNumber(scratch)
		if err != nil {
			// A connected configuration outside the indexed set, e.g.
			// in a constrained sector the operator does not preserve.
			if errors.Is(err, hilbert.ErrStateNotFound) {
				continue
			}
			return err
		}

		out[j] += c.Mels[e]
	}

	return nil
}

// Matrix assembles the dense NStates x NStates matrix of op over the
// indexed basis, row-major. Rows are filled in parallel.
func Matrix(idx *hilbert.Index, op operator.Operator) ([]complex128, error) {
	n := idx.NStates()
	mat := make([]complex128, n*n)

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < n; i++ {
		g.Go(func() error {
			return row(idx, op, i, mat[i*n:(i+1)*n])
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mat, nil
}

// Apply computes op applied to psi matrix-free, without assembling the
// dense matrix.
func Apply(idx *hilbert.Index, op operator.Operator, psi []complex128) ([]complex128, error) {
	n := idx.NStates()
	if len(psi) != n {
		return nil, &hilbert.ErrSizeMismatch{Expected: n, Actual: len(psi)}
	}

	out := make([]complex128, n)
	rowBuf := make([]complex128, n)

	for i := 0; i < n; i++ {
		for j := range rowBuf {
			rowBuf[j] = 0
		}
		if err := row(idx, op, i, rowBuf); err != nil {
			return nil, err
		}
		for j, m := range rowBuf {
			if m != 0 {
				out[i] += m * psi[j]
			}
		}
	}

	return out, nil
}

// Expectation computes <psi|op|psi> / <psi|psi>.
func Expectation(idx *hilbert.Index, op operator.Operator, psi []complex128) (complex128, error) {
	applied, err := Apply(idx, op, psi)
	if err != nil {
		return 0, err
	}

	var num, norm complex128
	for i := range psi {
		num += cmplx.Conj(psi[i]) * applied[i]
		norm += cmplx.Conj(psi[i]) * psi[i]
	}

	if norm == 0 {
		return 0, ErrZeroState
	}

	return num / norm, nil
}

// Norm returns the Euclidean norm of psi.
func Norm(psi []complex128) float64 {
	total := 0.0
	for _, c := range psi {
		total += real(c)*real(c) + imag(c)*imag(c)
	}
	return math.Sqrt(total)
}
