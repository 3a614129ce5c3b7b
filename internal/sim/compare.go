package sim

import (
	"context"
	"sync"

	"github.com/phys-sim/hamsim/internal/hamil"
)

// Compare runs every stepper from the same initial condition and returns the
// results keyed by scheme name. Each run mutates its own clone of s0; the
// only shared object is the read-only system, so the runs execute
// concurrently and are order-insensitive. A Stepper must not be reused
// across concurrent runs.
func Compare(ctx context.Context, sys hamil.System, steppers []hamil.Stepper, s0 *hamil.State, numSteps int) (map[string]*Result, error) {
	results := make([]*Result, len(steppers))
	errs := make([]error, len(steppers))

	var wg sync.WaitGroup
	for i, st := range steppers {
		wg.Add(1)
		go func(i int, st hamil.Stepper) {
			defer wg.Done()
			results[i], errs[i] = New(sys).Run(ctx, st, s0.Clone(), numSteps)
		}(i, st)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	byScheme := make(map[string]*Result, len(results))
	for _, res := range results {
		byScheme[res.Scheme] = res
	}
	return byScheme, nil
}
