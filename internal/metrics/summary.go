package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/powertrain/internal/dynamo"
)

// PlateauEpsilon is the per-step speed change (m/s) below which a run is
// considered settled.
const PlateauEpsilon = 1e-5

// Summary condenses a table into the figures shown after a run.
type Summary struct {
	MaxSpeedKmh      float64 `json:"max_speed_kmh"`
	AvgSpeedKmh      float64 `json:"avg_speed_kmh"`
	FinalSpeedKmh    float64 `json:"final_speed_kmh"`
	MaxAccel         float64 `json:"max_acceleration"`
	MaxMotorRPM      float64 `json:"max_motor_rpm"`
	MaxTotalTorque   float64 `json:"max_total_torque"`
	MaxPerMotorPower float64 `json:"max_per_motor_power"`
	AvgTotalPower    float64 `json:"avg_total_power"`
	DistanceKm       float64 `json:"distance_km"`
	EnergyWh         float64 `json:"energy_wh"`
	BatteryEnergyWh  float64 `json:"battery_energy_wh"`
	EnergyPerKm      float64 `json:"energy_per_km"`
	PeakCurrent      float64 `json:"peak_current"`
	ClimbShare       float64 `json:"climb_share"`
	Plateau          bool    `json:"plateau"`
	// PlateauTime is the first time after which speed stays settled; -1 if never.
	PlateauTime float64 `json:"plateau_time"`
}

func Summarize(t *dynamo.Table) Summary {
	if t == nil || t.Len() == 0 {
		return Summary{PlateauTime: -1}
	}
	n := float64(t.Params.Motors)
	speed := t.Series(func(r dynamo.Row) float64 { return r.SpeedKmh })
	power := t.Series(func(r dynamo.Row) float64 { return r.PerMotorPower * n })
	last := t.Last()

	s := Summary{
		MaxSpeedKmh:      floats.Max(speed),
		AvgSpeedKmh:      stat.Mean(speed, nil),
		FinalSpeedKmh:    last.SpeedKmh,
		MaxAccel:         floats.Max(t.Series(func(r dynamo.Row) float64 { return r.Accel })),
		MaxMotorRPM:      floats.Max(t.Series(func(r dynamo.Row) float64 { return r.MotorRPM })),
		MaxTotalTorque:   floats.Max(t.Series(func(r dynamo.Row) float64 { return r.TotalTorque })),
		MaxPerMotorPower: floats.Max(t.Series(func(r dynamo.Row) float64 { return r.PerMotorPower })),
		AvgTotalPower:    stat.Mean(power, nil),
		DistanceKm:       last.Distance / 1000,
		EnergyWh:         last.Energy,
		BatteryEnergyWh:  last.BatteryEnergy,
		EnergyPerKm:      perKm(last.Energy, last.Distance),
		PeakCurrent:      floats.Max(t.Series(func(r dynamo.Row) float64 { return r.BatteryCurrent })),
	}
	if last.Resistance != 0 {
		s.ClimbShare = last.Climb / last.Resistance
	}
	s.PlateauTime = plateauTime(t)
	s.Plateau = s.PlateauTime >= 0
	return s
}

func plateauTime(t *dynamo.Table) float64 {
	rows := t.Rows
	if len(rows) < 2 {
		return -1
	}
	i := len(rows) - 1
	for i > 0 && math.Abs(rows[i].Speed-rows[i-1].Speed) < PlateauEpsilon {
		i--
	}
	if i == len(rows)-1 {
		return -1
	}
	return rows[i].Time
}
