package exact

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/qubitlab/manybody/hilbert"
	"github.com/qubitlab/manybody/operator"
)

// EigenResult holds the spectrum of a Hamiltonian over an indexed basis.
type EigenResult struct {
	// Values are the eigenvalues in ascending order.
	Values []float64

	// Vectors holds the eigenvector for each eigenvalue, in the indexed
	// basis. Nil when vectors were not requested.
	Vectors [][]float64
}

// GroundStateEnergy returns the lowest eigenvalue.
func (r *EigenResult) GroundStateEnergy() float64 { return r.Values[0] }

// GroundState returns the eigenvector of the lowest eigenvalue as a
// complex state vector, or nil when vectors were not computed.
func (r *EigenResult) GroundState() []complex128 {
	if r.Vectors == nil {
		return nil
	}

	psi := make([]complex128, len(r.Vectors[0]))
	for i, x := range r.Vectors[0] {
		psi[i] = complex(x, 0)
	}
	return psi
}

// Eigensolve assembles the dense Hamiltonian over the indexed basis and
// fully diagonalizes it. Only real-symmetric Hamiltonians are supported;
// ErrNotSymmetric is returned otherwise.
func Eigensolve(idx *hilbert.Index, op operator.Operator, vectors bool) (*EigenResult, error) {
	dense, err := Matrix(idx, op)
	if err != nil {
		return nil, err
	}

	n := idx.NStates()

	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			e := dense[i*n+j]
			if math.Abs(imag(e)) > symmetryTolerance {
				return nil, ErrNotSymmetric
			}
			if math.Abs(real(e)-real(dense[j*n+i])) > symmetryTolerance {
				return nil, ErrNotSymmetric
			}
			data[i*n+j] = real(e)
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(mat.NewSymDense(n, data), vectors); !ok {
		return nil, ErrNotSymmetric
	}

	result := &EigenResult{
		Values: eig.Values(nil),
	}

	if vectors {
		var vecs mat.Dense
		eig.VectorsTo(&vecs)

		result.Vectors = make([][]float64, n)
		for k := 0; k < n; k++ {
			result.Vectors[k] = mat.Col(nil, k, &vecs)
		}
	}

	return result, nil
}
