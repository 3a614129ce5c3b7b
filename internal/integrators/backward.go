package integrators

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/phys-sim/hamsim/internal/hamil"
)

// LinearSystem is a Hamiltonian system whose potential gradient is a fixed
// linear operator, ∇V(q) = L·q. For such a system the implicit Euler update
// is an exact linear solve rather than an iterative root-find.
type LinearSystem interface {
	hamil.System
	Stiffness() mat.SymBanded
}

// BackwardEuler is the implicit first-order scheme:
//
//	p' = (I + dt²·L)⁻¹ · (p − dt·L·q)
//	q' = q + dt·p'
//
// It is not symplectic: it systematically dissipates energy. The coefficient
// matrix I + dt²·L is step-invariant, so it is factorized once at
// construction and only the triangular solves run per step.
type BackwardEuler struct {
	dt   float64
	chol mat.BandCholesky
	grad hamil.Vec
	rhs  *mat.VecDense
	sol  *mat.VecDense
}

// NewBackwardEuler factorizes I + dt²·L. L positive-semidefinite makes the
// shifted matrix positive-definite for any dt, but the factorization is
// still checked: a failure surfaces as ErrSingularSystem.
func NewBackwardEuler(sys LinearSystem, dt float64) (*BackwardEuler, error) {
	l := sys.Stiffness()
	n, kb := l.SymBand()

	a := mat.NewSymBandDense(n, kb, nil)
	h2 := dt * dt
	for i := 0; i < n; i++ {
		a.SetSymBand(i, i, 1+h2*l.At(i, i))
		for j := i + 1; j <= i+kb && j < n; j++ {
			a.SetSymBand(i, j, h2*l.At(i, j))
		}
	}

	b := &BackwardEuler{
		dt:   dt,
		grad: make(hamil.Vec, n),
		rhs:  mat.NewVecDense(n, nil),
		sol:  mat.NewVecDense(n, nil),
	}
	if ok := b.chol.Factorize(a); !ok {
		return nil, fmt.Errorf("backward-euler: factorize I + dt²L (dt=%g): %w", dt, hamil.ErrSingularSystem)
	}
	return b, nil
}

func (b *BackwardEuler) Name() string { return "backward-euler" }
func (b *BackwardEuler) Dt() float64  { return b.dt }

func (b *BackwardEuler) Step(sys hamil.System, s *hamil.State) error {
	h := b.dt

	// rhs = p − dt·L·q, read entirely from the pre-step state.
	sys.Gradient(b.grad, s.Q)
	for i := range s.P {
		b.rhs.SetVec(i, s.P[i]-h*b.grad[i])
	}

	if err := b.chol.SolveVecTo(b.sol, b.rhs); err != nil {
		return fmt.Errorf("backward-euler: solve: %w", hamil.ErrSingularSystem)
	}

	for i := range s.P {
		p := b.sol.AtVec(i)
		s.Q[i] += h * p
		s.P[i] = p
	}

	if !s.IsFinite() {
		return hamil.ErrNonFiniteState
	}
	return nil
}
