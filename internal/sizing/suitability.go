package sizing

import (
	"fmt"

	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/physics"
)

// AccelTimeMargin is the allowed overshoot on the acceleration period.
const AccelTimeMargin = 1.5

type Check struct {
	Name      string  `json:"name"`
	Pass      bool    `json:"pass"`
	Required  float64 `json:"required"`
	Available float64 `json:"available"`
	Unit      string  `json:"unit"`
	// Achievable is the best the motor can do when the check fails: km/h for
	// the flat check, degrees for gradeability, seconds for acceleration.
	Achievable float64 `json:"achievable,omitempty"`
}

func (c Check) String() string {
	status := "PASS"
	if !c.Pass {
		status = "FAIL"
	}
	s := fmt.Sprintf("%s: %s (required %.1f %s, available %.1f %s)", c.Name, status, c.Required, c.Unit, c.Available, c.Unit)
	if !c.Pass && c.Achievable != 0 {
		s += fmt.Sprintf(", achievable %.1f", c.Achievable)
	}
	return s
}

type Suitability struct {
	Motor    string  `json:"motor"`
	Mode     string  `json:"mode"`
	Motors   int     `json:"motors"`
	Checks   []Check `json:"checks"`
	Suitable bool    `json:"suitable"`
}

// CheckSuitability tests the motor against the flat max speed, gradeability
// and acceleration targets using the rating of in.Mode.
func CheckSuitability(in Input) (Suitability, error) {
	if err := in.Validate(); err != nil {
		return Suitability{}, err
	}
	mode := in.Mode
	if mode == "" {
		mode = dynamo.Boost
	}
	p, t := in.Params, in.Targets
	torque, power := p.Motor.Rating(mode)
	n := float64(p.Motors)
	roll := physics.Rolling(0, p, dynamo.RollingFlat)

	flat := Check{Name: "max speed on flat", Unit: "W"}
	vMax := kmh(t.MaxSpeed)
	flat.Required = (roll + physics.Drag(vMax, p)) * vMax
	flat.Available = power * n * p.GearEfficiency
	flat.Pass = flat.Available >= flat.Required
	if !flat.Pass {
		flat.Achievable = MaxSpeed(p, flat.Available)
	}

	grade := Check{Name: fmt.Sprintf("gradient %.0f deg at %.0f km/h", t.Gradeability, t.SlopeSpeed), Unit: "Nm/motor"}
	vSlope := kmh(t.SlopeSpeed)
	load := physics.Rolling(t.Gradeability, p, dynamo.RollingCosine) + physics.Drag(vSlope, p) + physics.Climb(t.Gradeability, p)
	grade.Required = load * p.WheelRadius / (p.GearRatio * p.GearEfficiency) / n
	grade.Available = torque
	grade.Pass = grade.Available >= grade.Required
	if !grade.Pass {
		grade.Achievable = MaxGradient(p, torque, vSlope)
	}

	accel := Check{Name: fmt.Sprintf("0-%.0f km/h in %.0f s", t.AccelEndSpeed, t.AccelPeriod), Unit: "s"}
	maxAccel := (physics.Tractive(torque*n, p) - roll) / p.Mass
	accel.Required = t.AccelPeriod * AccelTimeMargin
	if maxAccel > 0 {
		accel.Available = kmh(t.AccelEndSpeed) / maxAccel
	}
	// a vehicle that cannot pull away reports zero time and fails
	accel.Pass = maxAccel > 0 && accel.Available <= accel.Required
	if !accel.Pass && maxAccel > 0 {
		accel.Achievable = accel.Available
	}

	s := Suitability{
		Motor:  p.Motor.Name,
		Mode:   mode.Display(),
		Motors: p.Motors,
		Checks: []Check{flat, grade, accel},
	}
	s.Suitable = flat.Pass && grade.Pass && accel.Pass
	return s, nil
}

// MaxSpeed scans 1 km/h steps for the highest speed whose flat road load
// stays within power (W at the wheels).
func MaxSpeed(p dynamo.Params, power float64) float64 {
	roll := physics.Rolling(0, p, dynamo.RollingFlat)
	for kph := 1; kph < 200; kph++ {
		v := kmh(float64(kph))
		if (roll+physics.Drag(v, p))*v > power {
			return float64(kph - 1)
		}
	}
	return 200
}

// MaxGradient scans whole degrees for the steepest climb the per-motor
// torque can hold at speed v (m/s).
func MaxGradient(p dynamo.Params, torque, v float64) float64 {
	tractive := physics.Tractive(torque*float64(p.Motors), p)
	drag := physics.Drag(v, p)
	for deg := 0; deg < 90; deg++ {
		g := float64(deg)
		if physics.Rolling(g, p, dynamo.RollingCosine)+drag+physics.Climb(g, p) > tractive {
			return g - 1
		}
	}
	return 90
}
