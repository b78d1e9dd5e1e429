package introspect

import "fmt"

// maxConvergenceRounds bounds the fixed-point iteration spec.md §4.9
// requires ("bounded by a fixed-point limit; non-convergence is a
// diagnostic"): at most five rounds.
const maxConvergenceRounds = 5

// Delayed is a show-rule output that depends on introspection state not
// yet known (e.g. "the page number of the next heading"). Resolve is
// re-invoked once per convergence round until it stops requesting another
// round.
type Delayed[T any] struct {
	// Resolve attempts to produce the final value given the introspector's
	// current state. ok is false if the value still depends on state that
	// has not stabilized yet.
	Resolve func(in *Introspector) (value T, ok bool)
}

// ErrNonConvergent reports that a delayed realization never stabilized
// within the round budget.
type ErrNonConvergent struct {
	Rounds int
}

func (e *ErrNonConvergent) Error() string {
	return fmt.Sprintf("introspection did not converge after %d rounds", e.Rounds)
}

// Converge repeatedly re-resolves every pending delayed value against the
// introspector, feeding each round's placements into the next, until every
// value resolves or the round budget is exhausted.
func Converge[T any](in *Introspector, pending []Delayed[T]) ([]T, error) {
	results := make([]T, len(pending))
	resolved := make([]bool, len(pending))
	remaining := len(pending)

	for round := 0; round < maxConvergenceRounds && remaining > 0; round++ {
		for i, d := range pending {
			if resolved[i] {
				continue
			}
			if v, ok := d.Resolve(in); ok {
				results[i] = v
				resolved[i] = true
				remaining--
			}
		}
	}

	if remaining > 0 {
		return nil, &ErrNonConvergent{Rounds: maxConvergenceRounds}
	}
	return results, nil
}
