package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/phys-sim/hamsim/internal/hamil"
)

func TestConservationError(t *testing.T) {
	tests := []struct {
		name     string
		traj     hamil.Trajectory
		expected float64
	}{
		{"constant", hamil.Trajectory{2, 2, 2, 2}, 0},
		{"known spread", hamil.Trajectory{1, 2, 3}, 1.0},
		{"narrow band", hamil.Trajectory{10, 10.5, 9.5}, 0.1},
		{"single sample", hamil.Trajectory{5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConservationError(tt.traj)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("ConservationError = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConservationError_Empty(t *testing.T) {
	if _, err := ConservationError(nil); !errors.Is(err, hamil.ErrEmptyTrajectory) {
		t.Errorf("expected ErrEmptyTrajectory, got %v", err)
	}
}

func TestConservationError_DegenerateMean(t *testing.T) {
	zeros := hamil.Trajectory{0, 0, 0}
	if _, err := ConservationError(zeros); !errors.Is(err, hamil.ErrDegenerateMean) {
		t.Errorf("expected ErrDegenerateMean for all-zero energies, got %v", err)
	}

	tiny := hamil.Trajectory{1e-15, -1e-15, 1e-16}
	if _, err := ConservationError(tiny); !errors.Is(err, hamil.ErrDegenerateMean) {
		t.Errorf("expected ErrDegenerateMean near zero mean, got %v", err)
	}
}

func TestDrift(t *testing.T) {
	tests := []struct {
		name     string
		traj     hamil.Trajectory
		expected float64
	}{
		{"flat", hamil.Trajectory{4, 4, 4}, 0},
		{"growth", hamil.Trajectory{2, 3, 4}, 1.0},
		{"decay", hamil.Trajectory{4, 3, 2}, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Drift(tt.traj)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Drift = %v, want %v", got, tt.expected)
			}
		})
	}

	if _, err := Drift(nil); !errors.Is(err, hamil.ErrEmptyTrajectory) {
		t.Errorf("expected ErrEmptyTrajectory, got %v", err)
	}
}

func TestConservation_Streaming(t *testing.T) {
	c := NewConservation()

	if c.Name() != "conservation_error" {
		t.Errorf("unexpected metric name %q", c.Name())
	}

	for k, e := range []float64{1, 2, 3} {
		c.Observe(k, e)
	}
	if got := c.Value(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("streaming value = %v, want 1.0", got)
	}

	c.Reset()
	if got := c.Value(); got != 0 {
		t.Errorf("value after reset = %v, want 0", got)
	}

	// a single observation has zero spread
	c.Observe(0, 7)
	if got := c.Value(); got != 0 {
		t.Errorf("single-sample value = %v, want 0", got)
	}
}
