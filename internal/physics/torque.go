package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/powertrain/internal/dynamo"
)

// Regime tags which branch of the torque curve is active.
type Regime int

const (
	ConstantTorque Regime = iota
	ConstantPower
)

func (r Regime) String() string {
	if r == ConstantPower {
		return "constant-power"
	}
	return "constant-torque"
}

// TorqueCurve is the per-motor torque characteristic for one mode.
type TorqueCurve struct {
	Torque  float64 // Nm below base rpm
	Power   float64 // W above base rpm
	BaseRPM float64
}

func CurveFor(m dynamo.Motor, mode dynamo.Mode) TorqueCurve {
	tq, p := m.Rating(mode)
	return TorqueCurve{Torque: tq, Power: p, BaseRPM: m.BaseRPM}
}

// Regime selects the branch on |rpm| so reverse rotation mirrors forward.
func (c TorqueCurve) Regime(rpm float64) Regime {
	if math.Abs(rpm) <= c.BaseRPM {
		return ConstantTorque
	}
	return ConstantPower
}

// At returns the per-motor torque and the active regime.
func (c TorqueCurve) At(rpm float64) (float64, Regime) {
	regime := c.Regime(rpm)
	if regime == ConstantTorque {
		return c.Torque, regime
	}
	a := math.Abs(rpm)
	if a <= 0 {
		// unreachable while BaseRPM >= 0
		return c.Torque, ConstantTorque
	}
	return c.Power * 60 / (2 * math.Pi * a), regime
}

// CornerTorque is the constant-power torque evaluated exactly at base rpm.
func (c TorqueCurve) CornerTorque() float64 {
	return c.Power * 60 / (2 * math.Pi * c.BaseRPM)
}

// ContinuityGap is the relative jump between the two branches at base rpm.
func (c TorqueCurve) ContinuityGap() float64 {
	if c.Torque == 0 {
		return math.Inf(1)
	}
	return math.Abs(c.Torque-c.CornerTorque()) / c.Torque
}

// CheckContinuity returns ErrDiscontinuousCurve when the gap exceeds tol.
func (c TorqueCurve) CheckContinuity(tol float64) error {
	gap := c.ContinuityGap()
	if gap > tol {
		return fmt.Errorf("%w: gap %.2f%% (%.2f Nm vs %.2f Nm) exceeds %.2f%%",
			dynamo.ErrDiscontinuousCurve, gap*100, c.Torque, c.CornerTorque(), tol*100)
	}
	return nil
}

// PerMotorPower converts shaft speed and torque into mechanical power in W.
func PerMotorPower(rpm, torque float64) float64 {
	return 2 * math.Pi * rpm * torque / 60
}
