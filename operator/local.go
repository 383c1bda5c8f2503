package operator

import (
	"math/cmplx"

	"github.com/qubitlab/manybody/hilbert"
)

// matrixEpsilon is the magnitude below which matrix elements are treated
// as structural zeros when precomputing connected entries.
const matrixEpsilon = 1e-6

// Compile-time check that Local satisfies the Operator interface.
var _ Operator = (*Local)(nil)

// Local is an operator acting on a tuple of sites of a discrete Hilbert
// space, defined by a dense matrix over the tuple's local basis.
//
// The tuple basis is ordered by mixed-radix counting over the local states,
// first site most significant, so for a two-site spin-1/2 tuple the basis
// is (-1,-1), (-1,1), (1,-1), (1,1).
type Local struct {
	space hilbert.Space
	mat   [][]complex128
	sites []int

	local  []float64
	lookup map[float64]int

	localSize int

	// states maps the tuple-basis index to the sub-configuration values.
	states [][]float64

	// connected lists, per tuple-basis index, the indices reachable
	// through non-zero off-diagonal matrix elements.
	connected [][]int
}

// NewLocal constructs a local operator from a dense matrix over the local
// basis of the given site tuple. The matrix must be square with dimension
// LocalSize^len(sites).
func NewLocal(space hilbert.Space, mat [][]complex128, sites []int) (*Local, error) {
	if !space.IsDiscrete() {
		return nil, hilbert.ErrNotDiscrete
	}

	if len(sites) == 0 {
		return nil, &ErrInvalidSites{Sites: sites}
	}
	for _, s := range sites {
		if s < 0 || s >= space.Size() {
			return nil, &ErrInvalidSites{Sites: sites}
		}
	}

	local := space.LocalStates()
	localSize := space.LocalSize()

	dim := 1
	for range sites {
		dim *= localSize
	}
	if len(mat) != dim {
		return nil, &ErrMatrixShape{Expected: dim, Actual: len(mat)}
	}
	for _, row := range mat {
		if len(row) != dim {
			return nil, &ErrMatrixShape{Expected: dim, Actual: len(row)}
		}
	}

	op := &Local{
		space:     space,
		mat:       mat,
		sites:     sites,
		local:     local,
		lookup:    make(map[float64]int, localSize),
		localSize: localSize,
	}
	for i, v := range local {
		op.lookup[v] = i
	}

	// Tuple basis: internal index -> sub-configuration.
	op.states = make([][]float64, dim)
	for i := 0; i < dim; i++ {
		st := make([]float64, len(sites))
		rem := i
		for k := len(sites) - 1; k >= 0; k-- {
			st[k] = local[rem%localSize]
			rem /= localSize
		}
		op.states[i] = st
	}

	// Structural non-zeros off the diagonal.
	op.connected = make([][]int, dim)
	for i := range mat {
		for j := range mat[i] {
			if i != j && cmplx.Abs(mat[i][j]) > matrixEpsilon {
				op.connected[i] = append(op.connected[i], j)
			}
		}
	}

	return op, nil
}

// Space returns the Hilbert space the operator acts on.
func (op *Local) Space() hilbert.Space { return op.space }

// ActingOn returns the site tuple the operator acts on.
func (op *Local) ActingOn() []int { return op.sites }

// FindConn returns the configurations connected to v along with the matrix
// elements <v|O|v'>. Entry 0 is the diagonal.
func (op *Local) FindConn(v []float64) (*Conn, error) {
	c := &Conn{}
	if err := op.AddConn(v, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddConn accumulates the connected configurations of v into c.
func (op *Local) AddConn(v []float64, c *Conn) error {
	if len(v) != op.space.Size() {
		return &hilbert.ErrSizeMismatch{Expected: op.space.Size(), Actual: len(v)}
	}

	if len(c.Mels) == 0 {
		c.Mels = append(c.Mels, 0)
		c.Sites = append(c.Sites, nil)
		c.NewConfs = append(c.NewConfs, nil)
	}

	idx, err := op.stateNumber(v)
	if err != nil {
		return err
	}

	c.Mels[0] += op.mat[idx][idx]

	for _, j := range op.connected[idx] {
		c.Mels = append(c.Mels, op.mat[idx][j])
		c.Sites = append(c.Sites, op.sites)
		c.NewConfs = append(c.NewConfs, op.states[j])
	}

	return nil
}

// stateNumber returns the tuple-basis index of the sub-configuration of v
// at the operator's sites.
func (op *Local) stateNumber(v []float64) (int, error) {
	code := 0
	for _, site := range op.sites {
		digit, ok := op.lookup[v[site]]
		if !ok {
			return 0, &hilbert.ErrInvalidLocalValue{Site: site, Value: v[site]}
		}
		code = code*op.localSize + digit
	}
	return code, nil
}
