// Package chain models a chain of unit-mass harmonic oscillators coupled by
// unit springs, with coordinate 0 pinned.
//
// The stiffness operator is L = Dᵀ·D where D is the first-difference matrix
// with its first row zeroed (the pin). L is symmetric positive-semidefinite
// and tridiagonal, so only its band is stored.
package chain

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/phys-sim/hamsim/internal/hamil"
)

// Chain is an immutable oscillator chain: the size n and the stiffness
// operator L. All methods are pure functions of (state, L).
type Chain struct {
	n int
	l *mat.SymBandDense
}

// New builds the chain and its stiffness operator. n = 1 yields the
// degenerate zero operator (a single pinned coordinate).
func New(n int) (*Chain, error) {
	if n <= 0 {
		return nil, fmt.Errorf("chain: size %d: %w", n, hamil.ErrInvalidDimension)
	}

	kb := 1
	if n == 1 {
		kb = 0
	}
	l := mat.NewSymBandDense(n, kb, nil)

	// Each unpinned row i of D is (..., -1, 1, ...) in columns i-1, i.
	// Stamp its outer product into the band: L += dᵢ·dᵢᵀ.
	for i := 1; i < n; i++ {
		l.SetSymBand(i, i, l.At(i, i)+1)
		l.SetSymBand(i-1, i-1, l.At(i-1, i-1)+1)
		l.SetSymBand(i-1, i, l.At(i-1, i)-1)
	}

	return &Chain{n: n, l: l}, nil
}

func (c *Chain) Dim() int { return c.n }

// Stiffness exposes L for solvers that factorize the implicit system.
// The returned matrix must not be modified.
func (c *Chain) Stiffness() mat.SymBanded { return c.l }

// Kinetic is T(p) = ½·Σ pᵢ² (unit mass per coordinate).
func (c *Chain) Kinetic(p hamil.Vec) float64 {
	return 0.5 * floats.Dot(p, p)
}

// Potential is V(q) = ½·qᵀLq.
func (c *Chain) Potential(q hamil.Vec) float64 {
	qv := mat.NewVecDense(c.n, q)
	var lq mat.VecDense
	lq.MulVec(c.l, qv)
	return 0.5 * mat.Dot(qv, &lq)
}

// Gradient writes ∇V(q) = L·q into dst.
func (c *Chain) Gradient(dst, q hamil.Vec) {
	mat.NewVecDense(c.n, dst).MulVec(c.l, mat.NewVecDense(c.n, q))
}

// Velocity writes dq/dt = p into dst; unit mass makes velocity equal momentum.
func (c *Chain) Velocity(dst, p hamil.Vec) {
	copy(dst, p)
}

// Energy is the total energy of s.
func (c *Chain) Energy(s *hamil.State) float64 {
	return c.Kinetic(s.P) + c.Potential(s.Q)
}
