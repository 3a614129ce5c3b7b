package integrators

import (
	"fmt"

	"github.com/phys-sim/hamsim/internal/hamil"
)

// Schemes lists the available scheme names in report order.
func Schemes() []string {
	return []string{"verlet", "euler", "backward-euler"}
}

// ForScheme constructs the named stepper for sys and dt.
func ForScheme(name string, sys LinearSystem, dt float64) (hamil.Stepper, error) {
	switch name {
	case "verlet":
		return NewVerlet(dt), nil
	case "euler":
		return NewForwardEuler(dt), nil
	case "backward-euler":
		return NewBackwardEuler(sys, dt)
	default:
		return nil, fmt.Errorf("unknown scheme: %s", name)
	}
}
