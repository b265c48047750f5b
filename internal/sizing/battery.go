package sizing

import (
	"math"

	"github.com/san-kum/powertrain/internal/dynamo"
)

// SafetyMargin is applied on top of the plain Ah figure.
const SafetyMargin = 1.05

// Capacity is the plain current × time battery estimate.
type Capacity struct {
	Current float64 `json:"current"`  // A
	Ah      float64 `json:"ah"`       // current × hours
	FinalAh float64 `json:"final_ah"` // Ah with SafetyMargin
}

// SizeBattery derives current from motor input power and voltage.
func SizeBattery(motorInput, voltage, hours float64) Capacity {
	c := Capacity{Current: motorInput / voltage}
	c.Ah = c.Current * hours
	c.FinalAh = c.Ah * SafetyMargin
	return c
}

// PeukertAh corrects a nominal Ah figure for discharge current.
func PeukertAh(ah, current, hours, k float64) float64 {
	if ah <= 0 {
		return 0
	}
	return math.Pow(ah*math.Pow(current*hours, k-1), 1/k)
}

// BatteryAnalysis sizes the pack for the range at constant max speed.
type BatteryAnalysis struct {
	Voltage   float64  `json:"voltage"`
	Current   float64  `json:"current"`    // A at constant max speed
	TrueWh    float64  `json:"true_wh"`    // usable energy for the range
	TrueAh    float64  `json:"true_ah"`
	PeukertAh float64  `json:"peukert_ah"` // tentative Ah at the discharge rate
	PeukertWh float64  `json:"peukert_wh"`
	Weight    float64  `json:"weight"` // kg
	Margin    Capacity `json:"margin"`
}

func AnalyzeBattery(in Input, maxSpeed Requirement) BatteryAnalysis {
	p, b := in.Params, in.Battery
	input := maxSpeed.Power.MotorInput

	a := BatteryAnalysis{
		Voltage: p.BatteryVoltage,
		Current: input / p.BatteryVoltage,
		TrueWh:  in.Targets.Range * input / (in.Targets.MaxSpeed * b.DoD),
		Margin:  SizeBattery(input, p.BatteryVoltage, b.DischargeHours),
	}
	a.TrueAh = a.TrueWh / p.BatteryVoltage
	a.PeukertAh = PeukertAh(a.TrueAh, a.Current, b.DischargeHours, b.Peukert)
	a.PeukertWh = a.PeukertAh * p.BatteryVoltage
	a.Weight = a.PeukertWh * b.WeightPerWh
	return a
}

// batteryCurrent is shared by the pattern slabs.
func batteryCurrent(motorInput float64, p dynamo.Params) float64 {
	return motorInput / p.BatteryVoltage
}
