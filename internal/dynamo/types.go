package dynamo

import (
	"fmt"
	"math"
)

// State layout used by the longitudinal model.
const (
	IdxSpeed    = 0 // m/s
	IdxDistance = 1 // m
	IdxEnergy   = 2 // Wh at the motor shaft
	StateDim    = 3
)

type State []float64

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// Observer is notified once per produced row, in time order.
type Observer interface {
	OnRow(r Row)
}

// RollingPolicy selects how rolling resistance reacts to the road gradient.
type RollingPolicy string

const (
	// RollingFlat uses Cr·m·g regardless of gradient.
	RollingFlat RollingPolicy = "flat"
	// RollingCosine attenuates rolling resistance by cos θ.
	RollingCosine RollingPolicy = "cosine"
)

// ReversePolicy selects what happens when net force stays negative at rest.
type ReversePolicy string

const (
	// ReverseClamp holds speed at zero; the vehicle never rolls backwards.
	ReverseClamp ReversePolicy = "clamp"
	// ReverseAllow lets speed go negative.
	ReverseAllow ReversePolicy = "allow"
)

const (
	DefaultDt                  = 0.5
	DefaultDuration            = 120.0
	DefaultContinuityTolerance = 0.05
	// MaxRows caps the table length of a single run.
	MaxRows = 1_000_000
)

// RunConfig holds the run-time scalars of one simulation.
type RunConfig struct {
	Gradient            float64
	Mode                Mode
	Dt                  float64
	Duration            float64
	Rolling             RollingPolicy
	Reverse             ReversePolicy
	ContinuityTolerance float64
	StrictContinuity    bool
}

// WithDefaults fills zero values with the reference run settings.
func (c RunConfig) WithDefaults() RunConfig {
	if c.Mode == "" {
		c.Mode = Boost
	}
	if c.Dt == 0 {
		c.Dt = DefaultDt
	}
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}
	if c.Rolling == "" {
		c.Rolling = RollingFlat
	}
	if c.Reverse == "" {
		c.Reverse = ReverseClamp
	}
	if c.ContinuityTolerance == 0 {
		c.ContinuityTolerance = DefaultContinuityTolerance
	}
	return c
}

func (c RunConfig) Validate() error {
	if !(c.Dt > 0) || !(c.Duration > 0) || math.IsInf(c.Dt, 0) || math.IsInf(c.Duration, 0) {
		return ErrInvalidStep
	}
	if c.Duration/c.Dt >= MaxRows {
		return fmt.Errorf("%w: %.0f steps exceed the %d row limit", ErrInvalidStep, c.Duration/c.Dt, MaxRows)
	}
	if err := c.Mode.Validate(); err != nil {
		return err
	}
	if math.IsNaN(c.Gradient) || c.Gradient < -90 || c.Gradient > 90 {
		return &ParamError{Field: "gradient", Value: c.Gradient, Rule: "must be within [-90, 90] degrees"}
	}
	switch c.Rolling {
	case RollingFlat, RollingCosine:
	default:
		return &ParamError{Field: "rolling", Rule: "unknown rolling policy " + string(c.Rolling)}
	}
	switch c.Reverse {
	case ReverseClamp, ReverseAllow:
	default:
		return &ParamError{Field: "reverse", Rule: "unknown reverse policy " + string(c.Reverse)}
	}
	return nil
}

// Steps returns the number of integration steps; the table holds Steps()+1 rows.
func (c RunConfig) Steps() int {
	return int(math.Floor(c.Duration/c.Dt + 1e-9))
}
