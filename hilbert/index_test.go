package hilbert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexUnconstrained(t *testing.T) {
	g := lattice(t, 3)
	s, err := NewSpin(g, 0.5)
	require.NoError(t, err)

	idx, err := NewIndex(s)
	require.NoError(t, err)

	assert.Equal(t, 8, idx.NStates())

	// Mixed-radix enumeration, most-significant site first.
	first, err := idx.NumberToState(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -1, -1}, first)

	second, err := idx.NumberToState(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -1, 1}, second)

	last, err := idx.NumberToState(7)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, last)
}

func TestIndexRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		space func(t *testing.T) Space
	}{
		{
			name: "SpinHalf",
			space: func(t *testing.T) Space {
				s, err := NewSpin(lattice(t, 4), 0.5)
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "SpinOneConstrained",
			space: func(t *testing.T) Space {
				s, err := NewSpin(lattice(t, 3), 1, WithTotalSz(0))
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "BosonConstrained",
			space: func(t *testing.T) Space {
				b, err := NewBoson(lattice(t, 4), 3, WithNbosons(5))
				require.NoError(t, err)
				return b
			},
		},
		{
			name: "Qubit",
			space: func(t *testing.T) Space {
				q, err := NewQubit(lattice(t, 5))
				require.NoError(t, err)
				return q
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := tt.space(t)
			idx, err := NewIndex(sp)
			require.NoError(t, err)

			for k := 0; k < idx.NStates(); k++ {
				state, err := idx.NumberToState(k)
				require.NoError(t, err)
				assert.True(t, sp.CheckConstraint(state))

				back, err := idx.StateToNumber(state)
				require.NoError(t, err)
				assert.Equal(t, k, back)

				// Idempotence.
				again, err := idx.NumberToState(k)
				require.NoError(t, err)
				assert.Equal(t, state, again)
			}
		})
	}
}

func TestIndexConstrainedCounts(t *testing.T) {
	t.Run("SpinHalfSzZero", func(t *testing.T) {
		// 4 spins, TotalSz=0: C(4,2) = 6 states.
		s, err := NewSpin(lattice(t, 4), 0.5, WithTotalSz(0))
		require.NoError(t, err)

		idx, err := NewIndex(s)
		require.NoError(t, err)
		assert.Equal(t, 6, idx.NStates())
	})

	t.Run("HardcoreBosons", func(t *testing.T) {
		// Nmax=1, 3 sites, 2 bosons: C(3,2) = 3 states.
		b, err := NewBoson(lattice(t, 3), 1, WithNbosons(2))
		require.NoError(t, err)

		idx, err := NewIndex(b)
		require.NoError(t, err)
		assert.Equal(t, 3, idx.NStates())
	})

	t.Run("SpinOneSzZero", func(t *testing.T) {
		// 3 spin-1 sites summing to zero: 7 states.
		s, err := NewSpin(lattice(t, 3), 1, WithTotalSz(0))
		require.NoError(t, err)

		idx, err := NewIndex(s)
		require.NoError(t, err)
		assert.Equal(t, 7, idx.NStates())
	})
}

func TestIndexErrors(t *testing.T) {
	s, err := NewSpin(lattice(t, 4), 0.5, WithTotalSz(0))
	require.NoError(t, err)

	idx, err := NewIndex(s)
	require.NoError(t, err)

	t.Run("OutOfRange", func(t *testing.T) {
		var rangeErr *ErrIndexOutOfRange
		_, err := idx.NumberToState(idx.NStates())
		assert.ErrorAs(t, err, &rangeErr)

		_, err = idx.NumberToState(-1)
		assert.ErrorAs(t, err, &rangeErr)
	})

	t.Run("StateNotFound", func(t *testing.T) {
		// Wrong length.
		_, err := idx.StateToNumber([]float64{-1, 1})
		assert.ErrorIs(t, err, ErrStateNotFound)

		// Out-of-range local value.
		_, err = idx.StateToNumber([]float64{-1, 1, 2, -1})
		assert.ErrorIs(t, err, ErrStateNotFound)

		// Valid values but constraint violated.
		_, err = idx.StateToNumber([]float64{1, 1, 1, 1})
		assert.ErrorIs(t, err, ErrStateNotFound)
	})

	t.Run("TooLarge", func(t *testing.T) {
		big, err := NewSpin(lattice(t, 16), 0.5)
		require.NoError(t, err)

		assert.False(t, Indexable(big))

		var tooLarge *ErrSpaceTooLarge
		_, err = NewIndex(big)
		assert.ErrorAs(t, err, &tooLarge)

		small, err := NewSpin(lattice(t, 10), 0.5)
		require.NoError(t, err)
		assert.True(t, Indexable(small))
	})
}
