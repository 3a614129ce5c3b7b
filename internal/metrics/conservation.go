// Package metrics scores integrator fidelity from energy trajectories.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phys-sim/hamsim/internal/hamil"
)

// degenerateMean is the threshold below which normalizing by the trajectory
// mean is meaningless.
const degenerateMean = 1e-12

// ConservationError is the dimensionless relative spread
// (max − min) / mean of an energy trajectory. Smaller is better.
func ConservationError(traj hamil.Trajectory) (float64, error) {
	if len(traj) == 0 {
		return 0, hamil.ErrEmptyTrajectory
	}
	mean := stat.Mean(traj, nil)
	if math.Abs(mean) < degenerateMean {
		return 0, hamil.ErrDegenerateMean
	}
	return (floats.Max(traj) - floats.Min(traj)) / mean, nil
}

// Drift is the signed relative change (last − first) / first. It separates
// the Euler variants: forward Euler drifts up, backward Euler drifts down,
// Verlet stays near zero.
func Drift(traj hamil.Trajectory) (float64, error) {
	if len(traj) == 0 {
		return 0, hamil.ErrEmptyTrajectory
	}
	first := traj[0]
	if math.Abs(first) < degenerateMean {
		return 0, hamil.ErrDegenerateMean
	}
	return (traj[len(traj)-1] - first) / first, nil
}

// Conservation is the streaming form of ConservationError, observed one
// energy sample at a time during a run.
type Conservation struct {
	min, max, sum float64
	samples       int
}

func NewConservation() *Conservation {
	return &Conservation{}
}

func (c *Conservation) Name() string { return "conservation_error" }

func (c *Conservation) Observe(step int, energy float64) {
	if c.samples == 0 {
		c.min, c.max = energy, energy
	} else {
		c.min = math.Min(c.min, energy)
		c.max = math.Max(c.max, energy)
	}
	c.sum += energy
	c.samples++
}

func (c *Conservation) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	mean := c.sum / float64(c.samples)
	if math.Abs(mean) < degenerateMean {
		return 0
	}
	return (c.max - c.min) / mean
}

func (c *Conservation) Reset() {
	c.min, c.max, c.sum = 0, 0, 0
	c.samples = 0
}
