package dynamo

import (
	"fmt"
	"math"
	"strings"
)

// Gravity is the gravitational acceleration used by every force term.
const Gravity = 9.81

type Mode string

const (
	Eco   Mode = "eco"
	Boost Mode = "boost"
)

// ParseMode accepts eco/boost in any case.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m Mode) Validate() error {
	switch m {
	case Eco, Boost:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidMode, string(m))
}

// Code is the numeric mode code written to the table (Eco-1, Boost-2).
func (m Mode) Code() int {
	if m == Boost {
		return 2
	}
	return 1
}

func (m Mode) Display() string {
	if m == Boost {
		return "Boost-2"
	}
	return "Eco-1"
}

// Motor describes one traction motor. Eco uses the continuous rating, Boost
// the peak rating.
type Motor struct {
	Name        string  `yaml:"name" json:"name"`
	EcoTorque   float64 `yaml:"eco_torque" json:"eco_torque"`     // Nm per motor
	BoostTorque float64 `yaml:"boost_torque" json:"boost_torque"` // Nm per motor
	EcoPower    float64 `yaml:"eco_power" json:"eco_power"`       // W per motor
	BoostPower  float64 `yaml:"boost_power" json:"boost_power"`   // W per motor
	BaseRPM     float64 `yaml:"base_rpm" json:"base_rpm"`
	MaxRPM      float64 `yaml:"max_rpm" json:"max_rpm"`
	Weight      float64 `yaml:"weight" json:"weight"` // kg
}

// Rating returns the constant torque and max power for a mode.
func (m Motor) Rating(mode Mode) (torque, power float64) {
	if mode == Boost {
		return m.BoostTorque, m.BoostPower
	}
	return m.EcoTorque, m.EcoPower
}

// UGV holds the parameters only tracked/skid-steer vehicles carry.
type UGV struct {
	TrackWidth      float64 `yaml:"track_width" json:"track_width"`           // m
	SkidCoefficient float64 `yaml:"skid_coefficient" json:"skid_coefficient"` // μ
	PoweredWheels   int     `yaml:"powered_wheels" json:"powered_wheels"`
	Wheels          int     `yaml:"wheels" json:"wheels"`
	StepHeight      float64 `yaml:"step_height" json:"step_height"` // m, informational
	SpinRate        float64 `yaml:"spin_rate" json:"spin_rate"`     // rad/s during skid turn
}

// Params is the immutable per-run vehicle snapshot.
type Params struct {
	DragCoefficient   float64
	RollingResistance float64
	AirDensity        float64
	FrontalArea       float64
	Mass              float64
	WheelRadius       float64
	GearRatio         float64
	GearEfficiency    float64
	MotorEfficiency   float64
	Motors            int
	Motor             Motor
	BatteryVoltage    float64
	RotaryInertia     float64

	// UGV is nil for wheeled EVs.
	UGV *UGV
}

// DefaultParams returns the reference EV: 150 kg vehicle + 10.5 kg battery,
// two 19/37 Nm motors.
func DefaultParams() Params {
	return Params{
		DragCoefficient:   0.8,
		RollingResistance: 0.02,
		AirDensity:        1.164,
		FrontalArea:       0.5,
		Mass:              160.5,
		WheelRadius:       0.559 / 2,
		GearRatio:         5.221,
		GearEfficiency:    0.95,
		MotorEfficiency:   0.85,
		Motors:            2,
		Motor:             DefaultMotor(),
		BatteryVoltage:    24,
		RotaryInertia:     1.06,
	}
}

// DefaultUGVParams returns the reference UGV: same drivetrain, four wheels of
// which two are powered.
func DefaultUGVParams() Params {
	p := DefaultParams()
	p.UGV = &UGV{
		TrackWidth:      0.6,
		SkidCoefficient: 0.7,
		PoweredWheels:   2,
		Wheels:          4,
		StepHeight:      0.1,
		SpinRate:        0.5,
	}
	return p
}

func DefaultMotor() Motor {
	return Motor{
		Name:        "default",
		EcoTorque:   19,
		BoostTorque: 37,
		EcoPower:    1000,
		BoostPower:  2000,
		BaseRPM:     500,
		MaxRPM:      7500,
	}
}

func (p Params) IsUGV() bool { return p.UGV != nil }

// Validate fails fast on any parameter the force model cannot divide by or
// that has no physical meaning.
func (p Params) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"drag_coefficient", p.DragCoefficient},
		{"rolling_resistance", p.RollingResistance},
		{"air_density", p.AirDensity},
		{"frontal_area", p.FrontalArea},
		{"mass", p.Mass},
		{"wheel_radius", p.WheelRadius},
		{"gear_ratio", p.GearRatio},
		{"battery_voltage", p.BatteryVoltage},
		{"motor.eco_torque", p.Motor.EcoTorque},
		{"motor.boost_torque", p.Motor.BoostTorque},
		{"motor.eco_power", p.Motor.EcoPower},
		{"motor.boost_power", p.Motor.BoostPower},
		{"motor.base_rpm", p.Motor.BaseRPM},
		{"rotary_inertia", p.RotaryInertia},
	}
	for _, f := range positive {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return &ParamError{Field: f.name, Value: f.v, Rule: "must be positive"}
		}
	}
	if p.Motors <= 0 {
		return &ParamError{Field: "motors", Value: float64(p.Motors), Rule: "must be positive"}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{{"gear_efficiency", p.GearEfficiency}, {"motor_efficiency", p.MotorEfficiency}} {
		if !(f.v > 0) || f.v > 1 {
			return &ParamError{Field: f.name, Value: f.v, Rule: "must be within (0, 1]"}
		}
	}
	if p.UGV != nil {
		u := p.UGV
		if !(u.TrackWidth > 0) || math.IsInf(u.TrackWidth, 0) {
			return &ParamError{Field: "ugv.track_width", Value: u.TrackWidth, Rule: "must be positive"}
		}
		for _, f := range []struct {
			name string
			v    float64
		}{
			{"ugv.skid_coefficient", u.SkidCoefficient},
			{"ugv.spin_rate", u.SpinRate},
			{"ugv.step_height", u.StepHeight},
		} {
			if !(f.v >= 0) || math.IsInf(f.v, 0) {
				return &ParamError{Field: f.name, Value: f.v, Rule: "must be finite and not negative"}
			}
		}
		if u.PoweredWheels <= 0 {
			return &ParamError{Field: "ugv.powered_wheels", Value: float64(u.PoweredWheels), Rule: "must be positive"}
		}
		if u.Wheels < u.PoweredWheels {
			return &ParamError{Field: "ugv.wheels", Value: float64(u.Wheels), Rule: "must be at least powered_wheels"}
		}
		// Each powered wheel has its own motor; per-motor shares divide by
		// powered_wheels while rows report motors as the driven count.
		if p.Motors != u.PoweredWheels {
			return &ParamError{Field: "ugv.powered_wheels", Value: float64(u.PoweredWheels), Rule: "must equal motors"}
		}
	}
	return nil
}
