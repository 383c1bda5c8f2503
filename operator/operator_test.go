package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qubitlab/manybody/graph"
	"github.com/qubitlab/manybody/hilbert"
)

func spinChain(t *testing.T, size int) hilbert.Space {
	t.Helper()

	g, err := graph.NewHypercube(size, 1, false)
	require.NoError(t, err)

	s, err := hilbert.NewSpin(g, 0.5)
	require.NoError(t, err)

	return s
}

func TestLocal(t *testing.T) {
	t.Run("SingleSiteFlip", func(t *testing.T) {
		s := spinChain(t, 3)

		// Pauli X on site 1.
		op, err := NewLocal(s, [][]complex128{
			{0, 1},
			{1, 0},
		}, []int{1})
		require.NoError(t, err)

		c, err := op.FindConn([]float64{-1, -1, 1})
		require.NoError(t, err)
		require.Equal(t, 2, c.Len())

		assert.Equal(t, complex128(0), c.Mels[0])
		assert.Empty(t, c.Sites[0])

		assert.Equal(t, complex128(1), c.Mels[1])
		assert.Equal(t, []int{1}, c.Sites[1])
		assert.Equal(t, []float64{1}, c.NewConfs[1])
	})

	t.Run("TwoSiteDiagonal", func(t *testing.T) {
		s := spinChain(t, 2)

		// sigma^z sigma^z: diagonal in the tuple basis
		// (-1,-1), (-1,1), (1,-1), (1,1).
		op, err := NewLocal(s, [][]complex128{
			{1, 0, 0, 0},
			{0, -1, 0, 0},
			{0, 0, -1, 0},
			{0, 0, 0, 1},
		}, []int{0, 1})
		require.NoError(t, err)

		c, err := op.FindConn([]float64{-1, 1})
		require.NoError(t, err)
		require.Equal(t, 1, c.Len())
		assert.Equal(t, complex128(-1), c.Mels[0])

		c, err = op.FindConn([]float64{1, 1})
		require.NoError(t, err)
		assert.Equal(t, complex128(1), c.Mels[0])
	})

	t.Run("InvalidInput", func(t *testing.T) {
		s := spinChain(t, 2)

		flip := [][]complex128{{0, 1}, {1, 0}}

		var sitesErr *ErrInvalidSites
		_, err := NewLocal(s, flip, nil)
		assert.ErrorAs(t, err, &sitesErr)

		_, err = NewLocal(s, flip, []int{2})
		assert.ErrorAs(t, err, &sitesErr)

		var shapeErr *ErrMatrixShape
		_, err = NewLocal(s, flip, []int{0, 1})
		assert.ErrorAs(t, err, &shapeErr)

		_, err = NewLocal(s, [][]complex128{{0, 1}, {1}}, []int{0})
		assert.ErrorAs(t, err, &shapeErr)

		op, err := NewLocal(s, flip, []int{0})
		require.NoError(t, err)

		var sizeErr *hilbert.ErrSizeMismatch
		_, err = op.FindConn([]float64{-1})
		assert.ErrorAs(t, err, &sizeErr)

		var valErr *hilbert.ErrInvalidLocalValue
		_, err = op.FindConn([]float64{-1, 0.25})
		assert.ErrorAs(t, err, &valErr)
	})
}

func TestSum(t *testing.T) {
	s := spinChain(t, 2)

	flip0, err := NewLocal(s, [][]complex128{{0, 1}, {1, 0}}, []int{0})
	require.NoError(t, err)
	flip1, err := NewLocal(s, [][]complex128{{0, 1}, {1, 0}}, []int{1})
	require.NoError(t, err)

	sum, err := NewSum(s, flip0, flip1)
	require.NoError(t, err)

	c, err := sum.FindConn([]float64{-1, -1})
	require.NoError(t, err)

	// Diagonal plus one flip per site.
	require.Equal(t, 3, c.Len())
	assert.Equal(t, complex128(0), c.Mels[0])
	assert.Equal(t, []int{0}, c.Sites[1])
	assert.Equal(t, []int{1}, c.Sites[2])

	_, err = NewSum(s)
	assert.ErrorIs(t, err, ErrNoOperators)
}

func TestHamiltonians(t *testing.T) {
	t.Run("TransverseFieldIsing", func(t *testing.T) {
		s := spinChain(t, 2)

		h, err := TransverseFieldIsing(s, 1.0, 0.5)
		require.NoError(t, err)
		// One field term per site plus one bond.
		assert.Len(t, h.Terms(), 3)

		c, err := h.FindConn([]float64{-1, -1})
		require.NoError(t, err)

		// Diagonal: -J*(-1)*(-1) = -0.5; off-diagonal: one -h flip per site.
		require.Equal(t, 3, c.Len())
		assert.Equal(t, complex(-0.5, 0), c.Mels[0])
		assert.Equal(t, complex(-1.0, 0), c.Mels[1])
		assert.Equal(t, complex(-1.0, 0), c.Mels[2])
	})

	t.Run("Heisenberg", func(t *testing.T) {
		s := spinChain(t, 2)

		h, err := Heisenberg(s, 1.0)
		require.NoError(t, err)
		assert.Len(t, h.Terms(), 1)

		// Anti-aligned pair: diagonal -J, exchange 2J.
		c, err := h.FindConn([]float64{-1, 1})
		require.NoError(t, err)
		require.Equal(t, 2, c.Len())
		assert.Equal(t, complex(-1.0, 0), c.Mels[0])
		assert.Equal(t, complex(2.0, 0), c.Mels[1])
		assert.Equal(t, []float64{1, -1}, c.NewConfs[1])

		// Aligned pair: diagonal J, no exchange.
		c, err = h.FindConn([]float64{1, 1})
		require.NoError(t, err)
		require.Equal(t, 1, c.Len())
		assert.Equal(t, complex(1.0, 0), c.Mels[0])
	})

	t.Run("NotTwoLevel", func(t *testing.T) {
		g, err := graph.NewHypercube(2, 1, false)
		require.NoError(t, err)
		s, err := hilbert.NewSpin(g, 1)
		require.NoError(t, err)

		_, err = TransverseFieldIsing(s, 1, 1)
		assert.ErrorIs(t, err, ErrNotTwoLevel)

		_, err = Heisenberg(s, 1)
		assert.ErrorIs(t, err, ErrNotTwoLevel)
	})
}
