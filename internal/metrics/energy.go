package metrics

import (
	"math"

	"github.com/san-kum/powertrain/internal/dynamo"
)

// EnergyPerKm reports Wh/km from the last observed accumulators; zero until
// the vehicle has moved.
type EnergyPerKm struct {
	name     string
	distance float64
	energy   float64
}

func NewEnergyPerKm() *EnergyPerKm {
	return &EnergyPerKm{name: "energy_per_km"}
}

func (e *EnergyPerKm) Name() string { return e.name }

func (e *EnergyPerKm) Observe(r dynamo.Row) {
	e.distance = r.Distance
	e.energy = r.Energy
}

func (e *EnergyPerKm) Value() float64 {
	return perKm(e.energy, e.distance)
}

func (e *EnergyPerKm) Reset() {
	e.distance = 0
	e.energy = 0
}

func perKm(energyWh, distanceM float64) float64 {
	if math.Abs(distanceM) < 1e-9 {
		return 0
	}
	return energyWh / (math.Abs(distanceM) / 1000)
}

// Peak tracks the maximum of one row field.
type Peak struct {
	name    string
	pick    func(dynamo.Row) float64
	max     float64
	samples int
}

func NewPeak(name string, pick func(dynamo.Row) float64) *Peak {
	return &Peak{name: name, pick: pick}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(r dynamo.Row) {
	v := p.pick(r)
	if p.samples == 0 || v > p.max {
		p.max = v
	}
	p.samples++
}

func (p *Peak) Value() float64 { return p.max }

func (p *Peak) Reset() {
	p.max = 0
	p.samples = 0
}

// ClimbShare is the fraction of total resistance due to the gradient at the
// last observed row.
type ClimbShare struct {
	last dynamo.Row
}

func NewClimbShare() *ClimbShare { return &ClimbShare{} }

func (c *ClimbShare) Name() string { return "climb_share" }

func (c *ClimbShare) Observe(r dynamo.Row) { c.last = r }

func (c *ClimbShare) Value() float64 {
	if c.last.Resistance == 0 {
		return 0
	}
	return c.last.Climb / c.last.Resistance
}

func (c *ClimbShare) Reset() { c.last = dynamo.Row{} }
