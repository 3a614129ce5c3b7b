package integrators

import (
	"testing"

	"github.com/phys-sim/hamsim/internal/chain"
)

func BenchmarkVerlet(b *testing.B) {
	sys, _ := chain.New(128)
	st := NewVerlet(0.01)
	s := noisyState(128, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.Step(sys, s)
	}
}

func BenchmarkForwardEuler(b *testing.B) {
	sys, _ := chain.New(128)
	st := NewForwardEuler(0.01)
	s := noisyState(128, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.Step(sys, s)
	}
}

func BenchmarkBackwardEuler(b *testing.B) {
	sys, _ := chain.New(128)
	st, err := NewBackwardEuler(sys, 0.01)
	if err != nil {
		b.Fatal(err)
	}
	s := noisyState(128, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.Step(sys, s)
	}
}
