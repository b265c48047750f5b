package physics

import (
	"math"

	"github.com/san-kum/powertrain/internal/dynamo"
)

func deg2rad(deg float64) float64 { return deg * math.Pi / 180 }

// MotorRPM maps vehicle speed (m/s) to motor shaft speed through the gear.
func MotorRPM(v float64, p dynamo.Params) float64 {
	return v * 60 * p.GearRatio / (2 * math.Pi * p.WheelRadius)
}

// WheelRPM maps vehicle speed (m/s) to wheel speed.
func WheelRPM(v float64, p dynamo.Params) float64 {
	return v * 60 / (2 * math.Pi * p.WheelRadius)
}

// SpeedAtMotorRPM is the inverse of MotorRPM.
func SpeedAtMotorRPM(rpm float64, p dynamo.Params) float64 {
	return rpm * 2 * math.Pi * p.WheelRadius / (60 * p.GearRatio)
}

// Drag opposes the direction of travel: 0.5·Cd·ρ·A·v·|v|.
func Drag(v float64, p dynamo.Params) float64 {
	return 0.5 * p.DragCoefficient * p.AirDensity * p.FrontalArea * v * math.Abs(v)
}

func Rolling(gradientDeg float64, p dynamo.Params, policy dynamo.RollingPolicy) float64 {
	f := p.RollingResistance * p.Mass * dynamo.Gravity
	if policy == dynamo.RollingCosine {
		f *= math.Cos(deg2rad(gradientDeg))
	}
	return f
}

// Climb is negative downhill.
func Climb(gradientDeg float64, p dynamo.Params) float64 {
	return p.Mass * dynamo.Gravity * math.Sin(deg2rad(gradientDeg))
}

// Tractive converts total motor torque into force at the contact patch.
func Tractive(totalTorque float64, p dynamo.Params) float64 {
	return totalTorque * p.GearEfficiency * p.GearRatio / p.WheelRadius
}

// ForceSet is every quantity the model derives at one instant.
type ForceSet struct {
	RPM            float64
	Regime         Regime
	PerMotorTorque float64
	TotalTorque    float64
	PerMotorPower  float64
	Tractive       float64
	Roll           float64
	Drag           float64
	Climb          float64
	Resistance     float64
	Net            float64
	Accel          float64
}

// Model binds the per-run constants of the force evaluation.
type Model struct {
	Params   dynamo.Params
	Mode     dynamo.Mode
	Gradient float64 // degrees
	Rolling  dynamo.RollingPolicy

	curve TorqueCurve
	roll  float64
	climb float64
}

func NewModel(p dynamo.Params, mode dynamo.Mode, gradientDeg float64, rolling dynamo.RollingPolicy) *Model {
	return &Model{
		Params:   p,
		Mode:     mode,
		Gradient: gradientDeg,
		Rolling:  rolling,
		curve:    CurveFor(p.Motor, mode),
		roll:     Rolling(gradientDeg, p, rolling),
		climb:    Climb(gradientDeg, p),
	}
}

func (m *Model) Curve() TorqueCurve { return m.curve }

// At evaluates the model at speed v (m/s).
func (m *Model) At(v float64) ForceSet {
	p := m.Params
	rpm := MotorRPM(v, p)
	torque, regime := m.curve.At(rpm)
	total := torque * float64(p.Motors)

	fs := ForceSet{
		RPM:            rpm,
		Regime:         regime,
		PerMotorTorque: torque,
		TotalTorque:    total,
		PerMotorPower:  PerMotorPower(rpm, torque),
		Tractive:       Tractive(total, p),
		Roll:           m.roll,
		Drag:           Drag(v, p),
		Climb:          m.climb,
	}
	fs.Resistance = fs.Roll + fs.Drag + fs.Climb
	fs.Net = fs.Tractive - fs.Resistance
	fs.Accel = fs.Net / p.Mass
	return fs
}

// Evaluate is a one-shot evaluation with flat rolling resistance.
func Evaluate(v, gradientDeg float64, mode dynamo.Mode, p dynamo.Params) ForceSet {
	return NewModel(p, mode, gradientDeg, dynamo.RollingFlat).At(v)
}
