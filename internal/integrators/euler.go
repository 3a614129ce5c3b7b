package integrators

import "github.com/phys-sim/hamsim/internal/hamil"

// ForwardEuler is the explicit first-order scheme. It is not symplectic: it
// systematically injects energy, with drift rate proportional to dt.
type ForwardEuler struct {
	dt   float64
	vel  hamil.Vec
	grad hamil.Vec
}

func NewForwardEuler(dt float64) *ForwardEuler {
	return &ForwardEuler{dt: dt}
}

func (e *ForwardEuler) Name() string { return "euler" }
func (e *ForwardEuler) Dt() float64  { return e.dt }

func (e *ForwardEuler) ensureScratch(n int) {
	if len(e.vel) != n {
		e.vel = make(hamil.Vec, n)
		e.grad = make(hamil.Vec, n)
	}
}

func (e *ForwardEuler) Step(sys hamil.System, s *hamil.State) error {
	n := sys.Dim()
	e.ensureScratch(n)
	h := e.dt

	// Both derivatives are evaluated at the pre-step state before either
	// vector is written; the momentum update must see the old q.
	sys.Velocity(e.vel, s.P)
	sys.Gradient(e.grad, s.Q)

	for i := range s.Q {
		s.Q[i] += h * e.vel[i]
	}
	for i := range s.P {
		s.P[i] -= h * e.grad[i]
	}

	if !s.IsFinite() {
		return hamil.ErrNonFiniteState
	}
	return nil
}
