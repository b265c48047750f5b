package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a row with NaN or Inf values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidMode indicates an operating mode other than eco or boost.
	ErrInvalidMode = errors.New("dynamo: invalid operating mode")

	// ErrInvalidStep indicates a non-positive timestep or duration.
	ErrInvalidStep = errors.New("dynamo: timestep and duration must be positive")

	// ErrDiscontinuousCurve indicates the torque curve jumps at base RPM.
	ErrDiscontinuousCurve = errors.New("dynamo: torque curve discontinuous at base rpm")

	// ErrUnknownPreset indicates a preset, motor or integrator name that is not registered.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")
)

// ParamError names the parameter that failed validation.
type ParamError struct {
	Field string
	Value float64
	Rule  string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("dynamo: parameter %s=%g: %s", e.Field, e.Value, e.Rule)
}

func (e *ParamError) Unwrap() error {
	return ErrParameterBounds
}

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
