package sizing

import (
	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/physics"
)

type SlabResult struct {
	Slab       Slab    `json:"slab"`
	DistanceKm float64 `json:"distance_km"`
	Drag       float64 `json:"drag"`
	Roll       float64 `json:"roll"`
	Climb      float64 `json:"climb"`
	Power      Cascade `json:"power"`
	Current    float64 `json:"current"`
	EnergyWh   float64 `json:"energy_wh"`
	TrueAh     float64 `json:"true_ah"`
	FinalAh    float64 `json:"final_ah"`
}

type Pattern struct {
	Slabs        []SlabResult `json:"slabs"`
	TotalWh      float64      `json:"total_wh"`
	TotalTrueAh  float64      `json:"total_true_ah"`
	TotalFinalAh float64      `json:"total_final_ah"`
}

// DrivePattern sizes the battery for a range split across speed slabs.
func DrivePattern(in Input) Pattern {
	p, b := in.Params, in.Battery
	var pat Pattern
	for _, s := range in.slabs() {
		v := kmh(s.Speed)
		r := SlabResult{
			Slab:       s,
			DistanceKm: in.Targets.Range * s.Share,
			Drag:       physics.Drag(v, p),
			Roll:       physics.Rolling(0, p, dynamo.RollingFlat),
			Climb:      physics.Climb(s.Gradient, p),
		}
		r.Power = CascadeFromWheel((r.Drag+r.Roll+r.Climb)*v, p)
		r.Current = batteryCurrent(r.Power.MotorInput, p)
		r.EnergyWh = r.Power.MotorInput * r.DistanceKm / (s.Speed * b.DoD)
		r.TrueAh = r.EnergyWh / p.BatteryVoltage
		r.FinalAh = PeukertAh(r.TrueAh, r.Current, b.DischargeHours, b.Peukert)

		pat.Slabs = append(pat.Slabs, r)
		pat.TotalWh += r.EnergyWh
		pat.TotalTrueAh += r.TrueAh
		pat.TotalFinalAh += r.FinalAh
	}
	return pat
}
