package exact

import (
	"errors"
	"math"

	"github.com/qubitlab/manybody/hilbert"
	"github.com/qubitlab/manybody/operator"
)

// ErrInvalidTimeStep is returned for non-positive step sizes or inverted
// time ranges.
var ErrInvalidTimeStep = errors.New("invalid time range or step size")

// Observer is called after every accepted time step with the current time
// and state. The state slice is reused between calls and must be copied if
// retained. Returning an error aborts the evolution.
type Observer func(t float64, psi []complex128) error

// Evolution integrates the Schrödinger equation
//
//	i d/dt psi = H psi
//
// over an indexed basis with the classic fixed-step fourth-order
// Runge-Kutta scheme.
type Evolution struct {
	idx *hilbert.Index
	op  operator.Operator
	dt  float64
}

// NewEvolution creates a time evolution driver with the given step size.
func NewEvolution(idx *hilbert.Index, op operator.Operator, dt float64) (*Evolution, error) {
	if dt <= 0 {
		return nil, ErrInvalidTimeStep
	}

	return &Evolution{idx: idx, op: op, dt: dt}, nil
}

// Dimension returns the dimension of the indexed basis.
func (e *Evolution) Dimension() int { return e.idx.NStates() }

// Run evolves psi in place from t0 to tmax, invoking observe at t0 and
// after every step. The final partial step is shortened to land exactly on
// tmax.
func (e *Evolution) Run(psi []complex128, t0, tmax float64, observe Observer) error {
	n := e.idx.NStates()
	if len(psi) != n {
		return &hilbert.ErrSizeMismatch{Expected: n, Actual: len(psi)}
	}
	if tmax < t0 {
		return ErrInvalidTimeStep
	}

	if observe != nil {
		if err := observe(t0, psi); err != nil {
			return err
		}
	}

	// Step count is derived up front so accumulated floating-point error
	// in t cannot add or drop a step.
	nsteps := int(math.Ceil((tmax-t0)/e.dt - 1e-9))

	for i := 0; i < nsteps; i++ {
		start := t0 + float64(i)*e.dt
		end := start + e.dt
		if end > tmax {
			end = tmax
		}

		if err := e.step(psi, end-start); err != nil {
			return err
		}

		if observe != nil {
			if err := observe(end, psi); err != nil {
				return err
			}
		}
	}

	return nil
}

// step advances psi by dt with one RK4 stage evaluation of
// f(psi) = -i H psi.
func (e *Evolution) step(psi []complex128, dt float64) error {
	n := len(psi)

	k1, err := e.derivative(psi)
	if err != nil {
		return err
	}

	tmp := make([]complex128, n)

	for i := range tmp {
		tmp[i] = psi[i] + complex(dt/2, 0)*k1[i]
	}
	k2, err := e.derivative(tmp)
	if err != nil {
		return err
	}

	for i := range tmp {
		tmp[i] = psi[i] + complex(dt/2, 0)*k2[i]
	}
	k3, err := e.derivative(tmp)
	if err != nil {
		return err
	}

	for i := range tmp {
		tmp[i] = psi[i] + complex(dt, 0)*k3[i]
	}
	k4, err := e.derivative(tmp)
	if err != nil {
		return err
	}

	for i := range psi {
		psi[i] += complex(dt/6, 0) * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
	}

	return nil
}

// derivative computes -i H psi.
func (e *Evolution) derivative(psi []complex128) ([]complex128, error) {
	applied, err := Apply(e.idx, e.op, psi)
	if err != nil {
		return nil, err
	}

	for i := range applied {
		applied[i] *= complex(0, -1)
	}

	return applied, nil
}
