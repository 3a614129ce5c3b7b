package chain

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/phys-sim/hamsim/internal/hamil"
)

func TestNew_InvalidDimension(t *testing.T) {
	for _, n := range []int{0, -1, -128} {
		if _, err := New(n); !errors.Is(err, hamil.ErrInvalidDimension) {
			t.Errorf("New(%d): expected ErrInvalidDimension, got %v", n, err)
		}
	}
}

func TestNew_SingleSpring(t *testing.T) {
	// n=2 is one spring pinned at one end: L = [[1,-1],[-1,1]].
	c, err := New(2)
	if err != nil {
		t.Fatalf("New(2) failed: %v", err)
	}

	want := [][]float64{{1, -1}, {-1, 1}}
	l := c.Stiffness()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if got := l.At(i, j); got != want[i][j] {
				t.Errorf("L[%d][%d] = %v, want %v", i, j, got, want[i][j])
			}
		}
	}
}

func TestNew_DegenerateZeroOperator(t *testing.T) {
	c, err := New(1)
	if err != nil {
		t.Fatalf("New(1) failed: %v", err)
	}
	if got := c.Stiffness().At(0, 0); got != 0 {
		t.Errorf("n=1 operator should be zero, got %v", got)
	}
	if e := c.Potential(hamil.Vec{3.0}); e != 0 {
		t.Errorf("n=1 potential should vanish, got %v", e)
	}
}

func TestStiffness_MatchesDifferenceProduct(t *testing.T) {
	// L must equal DᵀD for the pinned first-difference matrix D.
	const n = 6
	d := mat.NewDense(n, n, nil)
	for i := 1; i < n; i++ {
		d.Set(i, i, 1)
		d.Set(i, i-1, -1)
	}
	var want mat.Dense
	want.Mul(d.T(), d)

	c, err := New(n)
	if err != nil {
		t.Fatalf("New(%d) failed: %v", n, err)
	}
	l := c.Stiffness()

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(l.At(i, j)-want.At(i, j)) > 1e-12 {
				t.Errorf("L[%d][%d] = %v, want %v", i, j, l.At(i, j), want.At(i, j))
			}
		}
	}
}

func TestKinetic(t *testing.T) {
	c, _ := New(3)

	tests := []struct {
		p        hamil.Vec
		expected float64
	}{
		{hamil.Vec{0, 0, 0}, 0},
		{hamil.Vec{1, 0, 0}, 0.5},
		{hamil.Vec{1, 2, 2}, 4.5},
	}

	for _, tt := range tests {
		if got := c.Kinetic(tt.p); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Kinetic(%v) = %v, want %v", tt.p, got, tt.expected)
		}
	}
}

func TestPotential_ClosedForm(t *testing.T) {
	// n=2, q=(1,0): V = ½qᵀLq = ½·1 = 0.5.
	c, _ := New(2)
	if got := c.Potential(hamil.Vec{1, 0}); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Potential = %v, want 0.5", got)
	}
	// uniform displacement still stretches the pinned spring
	if got := c.Potential(hamil.Vec{1, 1}); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Potential = %v, want 0.5", got)
	}
}

func TestPotential_NonNegative(t *testing.T) {
	// L is positive-semidefinite, so V(q) ≥ 0 for any q.
	c, _ := New(16)
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		q := make(hamil.Vec, 16)
		for i := range q {
			q[i] = rng.NormFloat64() * 10
		}
		if v := c.Potential(q); v < 0 {
			t.Fatalf("negative potential %v for q=%v", v, q)
		}
	}
}

func TestGradient_MatchesOperator(t *testing.T) {
	c, _ := New(5)
	q := hamil.Vec{1, -2, 3, 0, 1}

	dst := make(hamil.Vec, 5)
	c.Gradient(dst, q)

	var want mat.VecDense
	want.MulVec(c.Stiffness(), mat.NewVecDense(5, q))

	for i := range dst {
		if math.Abs(dst[i]-want.AtVec(i)) > 1e-12 {
			t.Errorf("gradient[%d] = %v, want %v", i, dst[i], want.AtVec(i))
		}
	}
}

func TestVelocity_EqualsMomentum(t *testing.T) {
	c, _ := New(4)
	p := hamil.Vec{1, 2, 3, 4}

	dst := make(hamil.Vec, 4)
	c.Velocity(dst, p)

	for i := range p {
		if dst[i] != p[i] {
			t.Errorf("velocity[%d] = %v, want %v", i, dst[i], p[i])
		}
	}
}

func TestEnergy_Total(t *testing.T) {
	c, _ := New(2)
	s := &hamil.State{Q: hamil.Vec{1, 0}, P: hamil.Vec{0, 2}}

	// T = ½·4 = 2, V = ½·1 = 0.5
	if got := c.Energy(s); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("Energy = %v, want 2.5", got)
	}
}
