package sizing

import (
	"github.com/san-kum/powertrain/internal/dynamo"
)

// Targets are the design requirements the vehicle is sized against.
type Targets struct {
	MaxSpeed      float64 `yaml:"max_speed" json:"max_speed"`             // km/h, flat
	SlopeSpeed    float64 `yaml:"slope_speed" json:"slope_speed"`         // km/h, at gradeability
	Gradeability  float64 `yaml:"gradeability" json:"gradeability"`       // degrees
	AccelEndSpeed float64 `yaml:"accel_end_speed" json:"accel_end_speed"` // km/h
	AccelPeriod   float64 `yaml:"accel_period" json:"accel_period"`       // s
	Range         float64 `yaml:"range" json:"range"`                     // km
}

// BatterySpec holds the battery chemistry assumptions.
type BatterySpec struct {
	DoD            float64 `yaml:"dod" json:"dod"` // fraction of capacity usable
	DischargeHours float64 `yaml:"discharge_hours" json:"discharge_hours"`
	Peukert        float64 `yaml:"peukert" json:"peukert"`
	WeightPerWh    float64 `yaml:"weight_per_wh" json:"weight_per_wh"` // kg/Wh
}

// Slab is one segment of the drive pattern.
type Slab struct {
	Name     string  `yaml:"name" json:"name"`
	Speed    float64 `yaml:"speed" json:"speed"` // km/h
	Share    float64 `yaml:"share" json:"share"` // fraction of range
	Gradient float64 `yaml:"gradient" json:"gradient"`
}

type Input struct {
	Params  dynamo.Params
	Mode    dynamo.Mode
	Targets Targets
	Battery BatterySpec
	// Slabs defaults to DefaultSlabs(Targets) when empty.
	Slabs []Slab
}

func DefaultTargets() Targets {
	return Targets{
		MaxSpeed:      50,
		SlopeSpeed:    5,
		Gradeability:  30,
		AccelEndSpeed: 50,
		AccelPeriod:   5,
		Range:         70,
	}
}

func DefaultBattery() BatterySpec {
	return BatterySpec{
		DoD:            1.0,
		DischargeHours: 2,
		Peukert:        1.05,
		WeightPerWh:    0.0065,
	}
}

// DefaultSlabs splits the range into max, 0.7x and 0.5x max speed on the flat
// and a short climb at slope speed.
func DefaultSlabs(t Targets) []Slab {
	return []Slab{
		{Name: "Slab-1 Max Speed", Speed: t.MaxSpeed, Share: 0.35},
		{Name: "Slab-2 Speed", Speed: t.MaxSpeed * 0.7, Share: 0.40},
		{Name: "Slab-3 Speed", Speed: t.MaxSpeed * 0.5, Share: 0.20},
		{Name: "Slab-4 Speed", Speed: t.SlopeSpeed, Share: 0.05, Gradient: t.Gradeability},
	}
}

func DefaultInput() Input {
	return Input{
		Params:  dynamo.DefaultParams(),
		Mode:    dynamo.Boost,
		Targets: DefaultTargets(),
		Battery: DefaultBattery(),
	}
}

func (in Input) slabs() []Slab {
	if len(in.Slabs) > 0 {
		return in.Slabs
	}
	return DefaultSlabs(in.Targets)
}

func (in Input) Validate() error {
	if err := in.Params.Validate(); err != nil {
		return err
	}
	if in.Mode != "" {
		if err := in.Mode.Validate(); err != nil {
			return err
		}
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"targets.max_speed", in.Targets.MaxSpeed},
		{"targets.slope_speed", in.Targets.SlopeSpeed},
		{"targets.accel_end_speed", in.Targets.AccelEndSpeed},
		{"targets.accel_period", in.Targets.AccelPeriod},
		{"targets.range", in.Targets.Range},
		{"battery.discharge_hours", in.Battery.DischargeHours},
		{"battery.peukert", in.Battery.Peukert},
	} {
		if !(f.v > 0) {
			return &dynamo.ParamError{Field: f.name, Value: f.v, Rule: "must be positive"}
		}
	}
	if !(in.Battery.DoD > 0) || in.Battery.DoD > 1 {
		return &dynamo.ParamError{Field: "battery.dod", Value: in.Battery.DoD, Rule: "must be within (0, 1]"}
	}
	if in.Targets.Gradeability < -90 || in.Targets.Gradeability > 90 {
		return &dynamo.ParamError{Field: "targets.gradeability", Value: in.Targets.Gradeability, Rule: "must be within [-90, 90] degrees"}
	}
	for _, s := range in.slabs() {
		if !(s.Speed > 0) {
			return &dynamo.ParamError{Field: "slabs." + s.Name + ".speed", Value: s.Speed, Rule: "must be positive"}
		}
		if s.Share < 0 {
			return &dynamo.ParamError{Field: "slabs." + s.Name + ".share", Value: s.Share, Rule: "must not be negative"}
		}
	}
	return nil
}

func kmh(v float64) float64 { return v / 3.6 }
