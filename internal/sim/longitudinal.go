package sim

import (
	"math"

	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/physics"
)

// Longitudinal is the straight-line vehicle as a dynamo.System over
// [speed, distance, energy].
type Longitudinal struct {
	model *physics.Model
}

func NewLongitudinal(model *physics.Model) *Longitudinal {
	return &Longitudinal{model: model}
}

func (l *Longitudinal) StateDim() int { return dynamo.StateDim }

func (l *Longitudinal) Derive(x dynamo.State, t float64) dynamo.State {
	v := x[dynamo.IdxSpeed]
	fs := l.model.At(v)
	return dynamo.State{
		dynamo.IdxSpeed:    fs.Accel,
		dynamo.IdxDistance: v,
		dynamo.IdxEnergy:   shaftPower(fs, l.model.Params) / 3600,
	}
}

// shaftPower is the total motoring power in W; regeneration is not credited.
func shaftPower(fs physics.ForceSet, p dynamo.Params) float64 {
	return math.Max(fs.PerMotorPower*float64(p.Motors), 0)
}
