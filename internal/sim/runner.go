// Package sim drives integrator runs and records their energy trajectories.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/phys-sim/hamsim/internal/hamil"
)

// Config holds the run parameters shared by every scheme.
type Config struct {
	N       int     // system size
	Dt      float64 // time step
	Steps   int     // explicit step count; 0 derives from Dt and Periods
	Periods int     // physical horizon in units of 2π; 0 means 1
	Seed    int64   // initial-condition noise seed
}

func DefaultConfig() Config {
	return Config{N: 128, Dt: 0.01, Periods: 1}
}

func (c Config) Validate() error {
	if c.N <= 0 {
		return fmt.Errorf("n must be positive, got %d: %w", c.N, hamil.ErrInvalidDimension)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Steps)
	}
	return nil
}

// NumSteps resolves the step count. When Steps is zero it is derived as
// round(2π/dt) per period, so runs with different dt cover the same physical
// time horizon.
func (c Config) NumSteps() int {
	if c.Steps > 0 {
		return c.Steps
	}
	periods := c.Periods
	if periods <= 0 {
		periods = 1
	}
	return periods * int(math.Round(2*math.Pi/c.Dt))
}

// Result is the record of one scheme's run.
type Result struct {
	Scheme     string
	Energies   hamil.Trajectory
	StepsTaken int
	Metrics    map[string]float64
}

// Runner executes single-scheme runs against one system.
type Runner struct {
	sys     hamil.System
	metrics []hamil.Metric
}

func New(sys hamil.System) *Runner {
	return &Runner{sys: sys}
}

func (r *Runner) AddMetric(m hamil.Metric) {
	r.metrics = append(r.metrics, m)
}

// Run advances a private clone of s0 for numSteps steps, recording the total
// energy after each. The first step error aborts the run: a trajectory is
// either complete or the run failed outright.
func (r *Runner) Run(ctx context.Context, stepper hamil.Stepper, s0 *hamil.State, numSteps int) (*Result, error) {
	if numSteps <= 0 {
		return nil, fmt.Errorf("numSteps must be positive, got %d", numSteps)
	}
	if err := hamil.CheckDim(r.sys, s0); err != nil {
		return nil, err
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	s := s0.Clone()
	result := &Result{
		Scheme:   stepper.Name(),
		Energies: make(hamil.Trajectory, 0, numSteps),
		Metrics:  make(map[string]float64),
	}

	for k := 0; k < numSteps; k++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := stepper.Step(r.sys, s); err != nil {
			return nil, &hamil.StepError{
				Scheme: stepper.Name(),
				Step:   k,
				Time:   float64(k) * stepper.Dt(),
				Err:    err,
			}
		}

		e := hamil.Energy(r.sys, s)
		result.Energies = append(result.Energies, e)
		result.StepsTaken++

		for _, m := range r.metrics {
			m.Observe(k, e)
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
