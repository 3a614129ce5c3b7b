package sim

import (
	"math/rand"

	"github.com/phys-sim/hamsim/internal/hamil"
)

// NoisyState builds the shared initial condition: q drawn from independent
// standard-normal noise, p at rest. The same seed reproduces the state
// exactly, making repeated runs byte-identical.
func NoisyState(n int, seed int64) *hamil.State {
	rng := rand.New(rand.NewSource(seed))
	s := hamil.NewState(n)
	for i := range s.Q {
		s.Q[i] = rng.NormFloat64()
	}
	return s
}
