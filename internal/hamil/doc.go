// Package hamil provides the core primitives for Hamiltonian simulation of
// the coupled oscillator chain.
//
// The package defines the vocabulary shared by every other package:
//
//   - [Vec]: a coordinate vector (positions q or momenta p)
//   - [State]: a (q, p) phase-space point, mutated in place by steppers
//   - [System]: a separable Hamiltonian H(q,p) = T(p) + V(q)
//   - [Stepper]: a one-step time integrator
//   - [Trajectory]: the per-step total energy record of a run
//
// # Ownership
//
// A State is owned by exactly one run. Comparison runs clone the shared
// initial condition so the schemes never alias each other's state; the only
// shared object is the immutable stiffness operator inside the System.
package hamil
