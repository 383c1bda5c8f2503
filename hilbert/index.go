package hilbert

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// MaxStates is the largest full enumeration an Index will perform. Spaces
// whose LocalSize^Size exceeds this bound are refused at construction:
// brute enumeration at that scale is intractable and callers should switch
// to sampling-based methods instead.
const MaxStates = 1 << 15

// Indexable reports whether an Index can be built for the space, using the
// feasibility predicate Size*log(LocalSize) < log(MaxStates). Callers
// should check it before requesting an index for spaces of unknown size.
func Indexable(s Space) bool {
	return float64(s.Size())*math.Log(float64(s.LocalSize())) < math.Log(MaxStates)
}

// Index is a bijection between the dense range [0, NStates) and the valid
// configurations of a discrete space.
//
// Configurations are enumerated in a fixed deterministic order: mixed-radix
// counting over the local states per site, most-significant site first.
// Unconstrained spaces index every configuration; constrained spaces skip
// configurations failing the constraint and assign dense numbers to the
// survivors in enumeration order.
//
// An Index is built eagerly, is immutable afterwards, and borrows the Space
// it was built from. Both lookup directions are sub-linear: configurations
// are encoded to an exact integer mixed-radix code, and constrained
// membership is resolved through rank/select queries on a Roaring bitmap of
// valid codes. No floating-point values are ever hashed.
type Index struct {
	space Space

	local  []float64
	lookup map[float64]int

	size      int
	localSize int
	total     int
	nstates   int

	// members holds the mixed-radix codes of the valid configurations.
	// It is nil for unconstrained spaces, where code and state number
	// coincide.
	members *roaring.Bitmap
}

// NewIndex builds the state index of a discrete space. It fails with
// ErrSpaceTooLarge when the full enumeration would exceed MaxStates.
func NewIndex(s Space) (*Index, error) {
	if !s.IsDiscrete() {
		return nil, ErrNotDiscrete
	}

	size := s.Size()
	localSize := s.LocalSize()

	total := 1
	for i := 0; i < size; i++ {
		total *= localSize
		if total > MaxStates {
			return nil, &ErrSpaceTooLarge{Size: size, LocalSize: localSize}
		}
	}

	idx := &Index{
		space:     s,
		local:     s.LocalStates(),
		lookup:    localIndex(s.LocalStates()),
		size:      size,
		localSize: localSize,
		total:     total,
	}

	if constrained(s) {
		idx.members = roaring.New()
		v := make([]float64, size)
		for code := 0; code < total; code++ {
			idx.decode(code, v)
			if s.CheckConstraint(v) {
				idx.members.Add(uint32(code))
			}
		}
		idx.nstates = int(idx.members.GetCardinality())
	} else {
		idx.nstates = total
	}

	return idx, nil
}

// Constrainable is an optional interface for Spaces carrying a global
// constraint.
type Constrainable interface {
	// Constrained reports whether the global constraint is active.
	Constrained() bool
}

// constrained reports whether the space has an active global constraint.
func constrained(s Space) bool {
	c, ok := s.(Constrainable)
	return ok && c.Constrained()
}

// NStates returns the number of valid configurations indexed.
func (idx *Index) NStates() int { return idx.nstates }

// NumberToState returns the configuration with state number k. The
// returned slice is freshly allocated on every call.
func (idx *Index) NumberToState(k int) ([]float64, error) {
	if k < 0 || k >= idx.nstates {
		return nil, &ErrIndexOutOfRange{Index: k, NStates: idx.nstates}
	}

	code := k
	if idx.members != nil {
		c, err := idx.members.Select(uint32(k))
		if err != nil {
			return nil, &ErrIndexOutOfRange{Index: k, NStates: idx.nstates}
		}
		code = int(c)
	}

	v := make([]float64, idx.size)
	idx.decode(code, v)

	return v, nil
}

// StateToNumber returns the state number of the configuration v. It fails
// with ErrStateNotFound when v has the wrong length, contains a value
// outside the local states, or violates the space's constraint.
func (idx *Index) StateToNumber(v []float64) (int, error) {
	if len(v) != idx.size {
		return 0, ErrStateNotFound
	}

	code, ok := idx.encode(v)
	if !ok {
		return 0, ErrStateNotFound
	}

	if idx.members == nil {
		return code, nil
	}

	if !idx.members.Contains(uint32(code)) {
		return 0, ErrStateNotFound
	}

	return int(idx.members.Rank(uint32(code))) - 1, nil
}

// decode writes the configuration with the given mixed-radix code into v.
func (idx *Index) decode(code int, v []float64) {
	for i := idx.size - 1; i >= 0; i-- {
		v[i] = idx.local[code%idx.localSize]
		code /= idx.localSize
	}
}

// encode returns the mixed-radix code of v, most-significant site first.
func (idx *Index) encode(v []float64) (int, bool) {
	code := 0
	for _, val := range v {
		digit, ok := idx.lookup[val]
		if !ok {
			return 0, false
		}
		code = code*idx.localSize + digit
	}
	return code, true
}
