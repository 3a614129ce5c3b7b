package hamil

import "math"

// Vec is a fixed-length coordinate vector.
type Vec []float64

func (v Vec) Clone() Vec {
	c := make(Vec, len(v))
	copy(c, v)
	return c
}

// IsFinite reports whether every component is a finite number.
func (v Vec) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vec) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Zero resets every component in place.
func (v Vec) Zero() {
	for i := range v {
		v[i] = 0
	}
}

// State is a phase-space point: generalized coordinates Q and conjugate
// momenta P, both of the system dimension.
type State struct {
	Q Vec
	P Vec
}

func NewState(n int) *State {
	return &State{Q: make(Vec, n), P: make(Vec, n)}
}

func (s *State) Clone() *State {
	return &State{Q: s.Q.Clone(), P: s.P.Clone()}
}

func (s *State) IsFinite() bool {
	return s.Q.IsFinite() && s.P.IsFinite()
}

// Trajectory holds one total-energy sample per completed step.
type Trajectory []float64

// System is a separable Hamiltonian H(q,p) = T(p) + V(q). Velocity and
// Gradient write into dst, which must not alias their input.
type System interface {
	Dim() int
	Velocity(dst, p Vec)
	Gradient(dst, q Vec)
	Kinetic(p Vec) float64
	Potential(q Vec) float64
}

// Energy is the total energy of s under sys.
func Energy(sys System, s *State) float64 {
	return sys.Kinetic(s.P) + sys.Potential(s.Q)
}

// CheckDim verifies that s matches the system dimension.
func CheckDim(sys System, s *State) error {
	if len(s.Q) != sys.Dim() || len(s.P) != sys.Dim() {
		return ErrDimensionMismatch
	}
	return nil
}

// Stepper advances a state by one time step. Implementations mutate s in
// place and must read the pre-step q and p before writing either; they are
// deterministic given (sys, s) and not safe for concurrent use.
type Stepper interface {
	Name() string
	Dt() float64
	Step(sys System, s *State) error
}

// Metric accumulates a scalar observation over a run.
type Metric interface {
	Name() string
	Observe(step int, energy float64)
	Value() float64
	Reset()
}
