package sizing

import (
	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/physics"
)

// AccelPower splits the power needed to reach an end speed in a given period.
type AccelPower struct {
	Kinetic float64 `json:"kinetic"` // W, includes rotary inertia
	Drag    float64 `json:"drag"`
	Rolling float64 `json:"rolling"`
	Total   float64 `json:"total"`
}

// InstantAcceleration is the single-point estimate at end speed v (m/s):
// 0.5·m·I·v²/t + 0.5·Cd·ρ·A·v³ + Cr·m·g·v.
func InstantAcceleration(p dynamo.Params, v, period float64) AccelPower {
	a := AccelPower{
		Kinetic: 0.5 * p.Mass * p.RotaryInertia * v * v / period,
		Drag:    0.5 * p.DragCoefficient * p.AirDensity * p.FrontalArea * v * v * v,
		Rolling: p.RollingResistance * p.Mass * dynamo.Gravity * v,
	}
	a.Total = a.Kinetic + a.Drag + a.Rolling
	return a
}

// AveragedAcceleration averages the load over the run-up. The kinetic term
// adds the vehicle speed at base rpm, drag and rolling are averaged over a
// linear speed ramp.
func AveragedAcceleration(p dynamo.Params, v, period float64) AccelPower {
	vb := physics.SpeedAtMotorRPM(p.Motor.BaseRPM, p)
	a := AccelPower{
		Kinetic: p.Mass * p.RotaryInertia / (2 * period) * (v*v + vb*vb),
		Drag:    p.DragCoefficient * p.AirDensity * p.FrontalArea * v * v * v / 5,
		Rolling: 2 * p.RollingResistance * p.Mass * dynamo.Gravity * v / 3,
	}
	a.Total = a.Kinetic + a.Drag + a.Rolling
	return a
}
