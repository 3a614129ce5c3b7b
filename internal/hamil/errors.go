package hamil

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidDimension indicates a non-positive system size.
	ErrInvalidDimension = errors.New("hamil: invalid system dimension")

	// ErrDimensionMismatch indicates a state whose length differs from the system.
	ErrDimensionMismatch = errors.New("hamil: state dimension does not match system")

	// ErrNonFiniteState indicates the integration diverged (NaN or Inf in q or p).
	ErrNonFiniteState = errors.New("hamil: non-finite state (integration diverged)")

	// ErrSingularSystem indicates the implicit linear solve could not proceed.
	ErrSingularSystem = errors.New("hamil: singular implicit system")

	// ErrEmptyTrajectory indicates diagnostics on a zero-length trajectory.
	ErrEmptyTrajectory = errors.New("hamil: empty trajectory")

	// ErrDegenerateMean indicates a trajectory mean too close to zero to normalize by.
	ErrDegenerateMean = errors.New("hamil: trajectory mean is degenerate")
)

// StepError wraps a failure at a specific step of a run.
type StepError struct {
	Scheme string
	Step   int
	Time   float64
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %d (t=%.4f): %v", e.Scheme, e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
