package integrators

import "github.com/san-kum/powertrain/internal/dynamo"

// Euler is the explicit forward Euler stepper: derivatives are evaluated at
// the start of the interval only.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
