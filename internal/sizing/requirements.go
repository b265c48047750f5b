package sizing

import (
	"math"

	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/physics"
)

// Cascade relates power at the wheel to power drawn by the motors.
type Cascade struct {
	Wheel       float64 `json:"wheel"`        // W
	MotorOutput float64 `json:"motor_output"` // W, wheel / η_g
	MotorInput  float64 `json:"motor_input"`  // W, wheel / (η_g·η_m)
}

func CascadeFromWheel(wheel float64, p dynamo.Params) Cascade {
	out := wheel / p.GearEfficiency
	return Cascade{
		Wheel:       wheel,
		MotorOutput: out,
		MotorInput:  out / p.MotorEfficiency,
	}
}

// Forces at the sizing targets.
type TargetForces struct {
	DragAtMax    float64 `json:"drag_at_max"`
	DragAtSlope  float64 `json:"drag_at_slope"`
	Roll         float64 `json:"roll"`
	ClimbAtGrade float64 `json:"climb_at_grade"`
}

func ForcesAtTargets(p dynamo.Params, t Targets) TargetForces {
	return TargetForces{
		DragAtMax:    physics.Drag(kmh(t.MaxSpeed), p),
		DragAtSlope:  physics.Drag(kmh(t.SlopeSpeed), p),
		Roll:         physics.Rolling(0, p, dynamo.RollingFlat),
		ClimbAtGrade: physics.Climb(t.Gradeability, p),
	}
}

// Requirement is the total drivetrain load of one design scenario.
type Requirement struct {
	Name        string  `json:"name"`
	SpeedKmh    float64 `json:"speed_kmh"`
	Power       Cascade `json:"power"`
	MotorRPM    float64 `json:"motor_rpm"`
	MotorTorque float64 `json:"motor_torque"` // Nm, all motors
	WheelRPM    float64 `json:"wheel_rpm"`
	WheelTorque float64 `json:"wheel_torque"` // Nm, all wheels
}

const (
	ScenarioMaxSpeed     = "zero-gradient max speed"
	ScenarioSlope        = "max slope at slope speed"
	ScenarioAcceleration = "acceleration"
)

// Requirements evaluates the flat max-speed, slope and acceleration
// scenarios. Acceleration uses the averaged power terms.
func Requirements(in Input) []Requirement {
	p, t := in.Params, in.Targets
	f := ForcesAtTargets(p, t)
	accel := AveragedAcceleration(p, kmh(t.AccelEndSpeed), t.AccelPeriod)

	return []Requirement{
		requirement(ScenarioMaxSpeed, t.MaxSpeed, (f.DragAtMax+f.Roll)*kmh(t.MaxSpeed), p),
		requirement(ScenarioSlope, t.SlopeSpeed, (f.DragAtSlope+f.Roll+f.ClimbAtGrade)*kmh(t.SlopeSpeed), p),
		requirement(ScenarioAcceleration, t.AccelEndSpeed, accel.Total, p),
	}
}

func requirement(name string, speedKmh, wheelPower float64, p dynamo.Params) Requirement {
	v := kmh(speedKmh)
	r := Requirement{
		Name:     name,
		SpeedKmh: speedKmh,
		Power:    CascadeFromWheel(wheelPower, p),
		MotorRPM: physics.MotorRPM(v, p),
		WheelRPM: physics.WheelRPM(v, p),
	}
	r.MotorTorque = torqueAt(r.Power.MotorOutput, r.MotorRPM)
	r.WheelTorque = torqueAt(r.Power.Wheel, r.WheelRPM)
	return r
}

// torqueAt is zero at standstill.
func torqueAt(power, rpm float64) float64 {
	if rpm <= 0 {
		return 0
	}
	return power * 60 / (2 * math.Pi * rpm)
}
