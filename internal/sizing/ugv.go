package sizing

import (
	"math"

	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/physics"
)

// Share is one scenario's load split over motors and wheels.
type Share struct {
	Scenario      string  `json:"scenario"`
	MotorPower    float64 `json:"motor_power"`  // W per driven motor
	MotorTorque   float64 `json:"motor_torque"` // Nm per driven motor
	PoweredWheel  float64 `json:"powered_wheel_power"`
	PoweredTorque float64 `json:"powered_wheel_torque"`
	WheelPower    float64 `json:"wheel_power"`  // W per wheel, all wheels
	WheelTorque   float64 `json:"wheel_torque"` // Nm per wheel, all wheels
}

// TurningLoad is the skid-steer spin-turn estimate.
type TurningLoad struct {
	SkidForce          float64 `json:"skid_force"`
	SkidPerWheel       float64 `json:"skid_per_wheel"`
	WheelSpeed         float64 `json:"wheel_speed"`
	PowerPerMotor      float64 `json:"power_per_motor"`
	TotalPower         float64 `json:"total_power"`
	WheelRPM           float64 `json:"wheel_rpm"`
	YawRateDeg         float64 `json:"yaw_rate_deg"`
	WheelTorque        float64 `json:"wheel_torque"`
	MotorTorque        float64 `json:"motor_torque"`
	MotorTorquePerUnit float64 `json:"motor_torque_per_motor"`
}

type UGVReport struct {
	Shares  []Share     `json:"shares"`
	Turning TurningLoad `json:"turning"`
	Step    StepLoad    `json:"step"`
}

// StepLoad is the torque a wheel needs to lift its share of the weight over
// an obstacle of the configured step height.
type StepLoad struct {
	LoadPerWheel float64 `json:"load_per_wheel"` // kg
	Torque       float64 `json:"torque"`         // Nm
}

func StepClimb(p dynamo.Params) StepLoad {
	if p.UGV == nil || p.UGV.Wheels == 0 {
		return StepLoad{}
	}
	load := p.Mass / float64(p.UGV.Wheels)
	return StepLoad{
		LoadPerWheel: load,
		Torque:       p.UGV.StepHeight * dynamo.Gravity * load,
	}
}

// Distribute divides each requirement equally across the driven motors and,
// separately, across the total wheel count. The two denominators differ
// whenever some wheels are unpowered. Params.Validate holds motors equal to
// powered_wheels for a UGV, so powered_wheels is the motor count here.
func Distribute(p dynamo.Params, reqs []Requirement) []Share {
	if p.UGV == nil {
		return nil
	}
	driven := float64(p.UGV.PoweredWheels)
	wheels := float64(p.UGV.Wheels)

	out := make([]Share, 0, len(reqs))
	for _, r := range reqs {
		s := Share{
			Scenario:      r.Name,
			MotorPower:    r.Power.MotorOutput / driven,
			MotorTorque:   r.MotorTorque / driven,
			PoweredWheel:  r.Power.Wheel / driven,
			PoweredTorque: r.WheelTorque / driven,
			WheelPower:    r.Power.Wheel / wheels,
			WheelTorque:   r.WheelTorque / wheels,
		}
		out = append(out, s)
	}
	return out
}

// Turning reflects the skid force through the wheel and gear to the motors.
func Turning(p dynamo.Params) (TurningLoad, bool) {
	skid := physics.Skid(p)
	if skid == nil {
		return TurningLoad{}, false
	}
	u := p.UGV
	wheelTorque := skid.SkidForce * p.WheelRadius
	motorTorque := wheelTorque / p.GearRatio
	return TurningLoad{
		SkidForce:          skid.SkidForce,
		SkidPerWheel:       skid.SkidPerWheel,
		WheelSpeed:         skid.WheelSpeed,
		PowerPerMotor:      skid.PowerPerMotor,
		TotalPower:         skid.SkidForce * skid.WheelSpeed,
		WheelRPM:           u.SpinRate * 60 / (2 * math.Pi),
		YawRateDeg:         physics.YawRateDeg(u.SpinRate),
		WheelTorque:        wheelTorque,
		MotorTorque:        motorTorque,
		MotorTorquePerUnit: motorTorque / float64(u.PoweredWheels),
	}, true
}
