package physics

import (
	"math"

	"github.com/san-kum/powertrain/internal/dynamo"
)

// Skid returns the skid-steer turning figures of a UGV, or nil for a wheeled EV.
//
// The per-wheel skid force is divided by the powered wheel count, not the
// total wheel count: unpowered wheels are dragged through the turn and the
// powered ones carry the whole lateral scrub. One motor drives each powered
// wheel, so the same count splits the turning power per motor.
func Skid(p dynamo.Params) *dynamo.Turning {
	if p.UGV == nil {
		return nil
	}
	u := p.UGV
	force := p.Mass * dynamo.Gravity * u.SkidCoefficient
	wheelSpeed := u.SpinRate * u.TrackWidth / 2
	return &dynamo.Turning{
		SkidForce:     force,
		SkidPerWheel:  force / float64(u.PoweredWheels),
		WheelSpeed:    wheelSpeed,
		PowerPerMotor: force * wheelSpeed / float64(u.PoweredWheels),
	}
}

// YawRateDeg converts a spin rate in rad/s to deg/s.
func YawRateDeg(spin float64) float64 {
	return spin * 180 / math.Pi
}
