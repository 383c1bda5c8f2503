package exact

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qubitlab/manybody/graph"
	"github.com/qubitlab/manybody/hilbert"
	"github.com/qubitlab/manybody/operator"
)

func heisenbergPair(t *testing.T) (*hilbert.Index, operator.Operator) {
	t.Helper()

	g, err := graph.NewHypercube(2, 1, false)
	require.NoError(t, err)
	s, err := hilbert.NewSpin(g, 0.5)
	require.NoError(t, err)
	h, err := operator.Heisenberg(s, 1.0)
	require.NoError(t, err)
	idx, err := hilbert.NewIndex(s)
	require.NoError(t, err)

	return idx, h
}

func TestMatrix(t *testing.T) {
	idx, h := heisenbergPair(t)

	dense, err := Matrix(idx, h)
	require.NoError(t, err)
	require.Len(t, dense, 16)

	// Basis order: (-1,-1), (-1,1), (1,-1), (1,1).
	want := []complex128{
		1, 0, 0, 0,
		0, -1, 2, 0,
		0, 2, -1, 0,
		0, 0, 0, 1,
	}
	assert.Equal(t, want, dense)
}

func TestApplyMatchesMatrix(t *testing.T) {
	g, err := graph.NewHypercube(4, 1, true)
	require.NoError(t, err)
	s, err := hilbert.NewSpin(g, 0.5)
	require.NoError(t, err)
	h, err := operator.TransverseFieldIsing(s, 0.7, 1.3)
	require.NoError(t, err)
	idx, err := hilbert.NewIndex(s)
	require.NoError(t, err)

	n := idx.NStates()
	psi := make([]complex128, n)
	for i := range psi {
		psi[i] = complex(float64(i+1), float64(n-i))
	}

	applied, err := Apply(idx, h, psi)
	require.NoError(t, err)

	dense, err := Matrix(idx, h)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		var want complex128
		for j := 0; j < n; j++ {
			want += dense[i*n+j] * psi[j]
		}
		assert.InDelta(t, real(want), real(applied[i]), 1e-12)
		assert.InDelta(t, imag(want), imag(applied[i]), 1e-12)
	}
}

func TestEigensolve(t *testing.T) {
	t.Run("HeisenbergPair", func(t *testing.T) {
		idx, h := heisenbergPair(t)

		res, err := Eigensolve(idx, h, true)
		require.NoError(t, err)

		require.Len(t, res.Values, 4)
		assert.InDelta(t, -3.0, res.Values[0], 1e-10)
		assert.InDelta(t, 1.0, res.Values[1], 1e-10)
		assert.InDelta(t, 1.0, res.Values[2], 1e-10)
		assert.InDelta(t, 1.0, res.Values[3], 1e-10)
		assert.InDelta(t, -3.0, res.GroundStateEnergy(), 1e-10)

		// Singlet: equal weight on the anti-aligned pair, none on the
		// aligned ones.
		ground := res.GroundState()
		require.Len(t, ground, 4)
		assert.InDelta(t, 0, real(ground[0]), 1e-10)
		assert.InDelta(t, 0, real(ground[3]), 1e-10)
		assert.InDelta(t, 1/math.Sqrt2, math.Abs(real(ground[1])), 1e-10)
		assert.InDelta(t, 1/math.Sqrt2, math.Abs(real(ground[2])), 1e-10)
	})

	t.Run("HeisenbergRingSzZero", func(t *testing.T) {
		// 4-site periodic chain in the Sz=0 sector. In this raw (±1)
		// representation the ground energy is -8J.
		g, err := graph.NewHypercube(4, 1, true)
		require.NoError(t, err)
		s, err := hilbert.NewSpin(g, 0.5, hilbert.WithTotalSz(0))
		require.NoError(t, err)
		h, err := operator.Heisenberg(s, 1.0)
		require.NoError(t, err)
		idx, err := hilbert.NewIndex(s)
		require.NoError(t, err)

		require.Equal(t, 6, idx.NStates())

		res, err := Eigensolve(idx, h, false)
		require.NoError(t, err)
		assert.InDelta(t, -8.0, res.GroundStateEnergy(), 1e-10)
		assert.Nil(t, res.Vectors)
	})

	t.Run("IsingFieldOnly", func(t *testing.T) {
		g, err := graph.NewHypercube(2, 1, false)
		require.NoError(t, err)
		s, err := hilbert.NewSpin(g, 0.5)
		require.NoError(t, err)
		h, err := operator.TransverseFieldIsing(s, 1.0, 0)
		require.NoError(t, err)
		idx, err := hilbert.NewIndex(s)
		require.NoError(t, err)

		res, err := Eigensolve(idx, h, false)
		require.NoError(t, err)
		assert.InDelta(t, -2.0, res.Values[0], 1e-10)
		assert.InDelta(t, 0.0, res.Values[1], 1e-10)
		assert.InDelta(t, 0.0, res.Values[2], 1e-10)
		assert.InDelta(t, 2.0, res.Values[3], 1e-10)
	})
}

func TestExpectation(t *testing.T) {
	idx, h := heisenbergPair(t)

	// The aligned basis state (1,1) has <H> = 1.
	psi := []complex128{0, 0, 0, 1}
	e, err := Expectation(idx, h, psi)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, real(e), 1e-12)

	// Normalization is taken care of internally.
	psi = []complex128{0, 0, 0, 2}
	e, err = Expectation(idx, h, psi)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, real(e), 1e-12)

	_, err = Expectation(idx, h, make([]complex128, 4))
	assert.ErrorIs(t, err, ErrZeroState)

	_, err = Expectation(idx, h, make([]complex128, 3))
	var sizeErr *hilbert.ErrSizeMismatch
	assert.ErrorAs(t, err, &sizeErr)
}

func TestEvolution(t *testing.T) {
	idx, h := heisenbergPair(t)

	t.Run("ConservesNormAndEnergy", func(t *testing.T) {
		ev, err := NewEvolution(idx, h, 0.01)
		require.NoError(t, err)

		psi := []complex128{0, complex(1, 0), 0, 0}
		steps := 0

		err = ev.Run(psi, 0, 1, func(tm float64, state []complex128) error {
			steps++
			assert.InDelta(t, 1.0, Norm(state), 1e-6)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 101, steps)

		e, err := Expectation(idx, h, psi)
		require.NoError(t, err)
		// <H> of the initial anti-aligned state is -1 and is conserved.
		assert.InDelta(t, -1.0, real(e), 1e-6)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		_, err := NewEvolution(idx, h, 0)
		assert.ErrorIs(t, err, ErrInvalidTimeStep)

		ev, err := NewEvolution(idx, h, 0.1)
		require.NoError(t, err)

		err = ev.Run(make([]complex128, 3), 0, 1, nil)
		var sizeErr *hilbert.ErrSizeMismatch
		assert.ErrorAs(t, err, &sizeErr)

		err = ev.Run(make([]complex128, 4), 1, 0, nil)
		assert.ErrorIs(t, err, ErrInvalidTimeStep)
	})
}
