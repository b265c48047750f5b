package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultParamsValid(t *testing.T) {
	for name, p := range map[string]Params{"ev": DefaultParams(), "ugv": DefaultUGVParams()} {
		if err := p.Validate(); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
	}
}

func TestParamsValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"zero mass", func(p *Params) { p.Mass = 0 }, "mass"},
		{"negative radius", func(p *Params) { p.WheelRadius = -0.1 }, "wheel_radius"},
		{"zero gear", func(p *Params) { p.GearRatio = 0 }, "gear_ratio"},
		{"zero voltage", func(p *Params) { p.BatteryVoltage = 0 }, "battery_voltage"},
		{"nan drag", func(p *Params) { p.DragCoefficient = math.NaN() }, "drag_coefficient"},
		{"no motors", func(p *Params) { p.Motors = 0 }, "motors"},
		{"efficiency above one", func(p *Params) { p.GearEfficiency = 1.2 }, "gear_efficiency"},
		{"powered exceeds wheels", func(p *Params) {
			p.UGV = &UGV{TrackWidth: 0.6, PoweredWheels: 4, Wheels: 2}
		}, "ugv.wheels"},
		{"nan skid", func(p *Params) {
			p.UGV = DefaultUGVParams().UGV
			p.UGV.SkidCoefficient = math.NaN()
		}, "ugv.skid_coefficient"},
		{"infinite spin", func(p *Params) {
			p.UGV = DefaultUGVParams().UGV
			p.UGV.SpinRate = math.Inf(1)
		}, "ugv.spin_rate"},
		{"negative step", func(p *Params) {
			p.UGV = DefaultUGVParams().UGV
			p.UGV.StepHeight = -0.1
		}, "ugv.step_height"},
		{"nan track", func(p *Params) {
			p.UGV = DefaultUGVParams().UGV
			p.UGV.TrackWidth = math.NaN()
		}, "ugv.track_width"},
		{"motors differ from powered wheels", func(p *Params) {
			p.UGV = DefaultUGVParams().UGV
			p.UGV.PoweredWheels = 4
		}, "ugv.powered_wheels"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, ErrParameterBounds) {
				t.Fatalf("expected ErrParameterBounds, got %v", err)
			}
			var pe *ParamError
			if !errors.As(err, &pe) || pe.Field != tt.field {
				t.Errorf("expected field %q, got %v", tt.field, err)
			}
		})
	}
}

func TestModeDisplay(t *testing.T) {
	if Eco.Display() != "Eco-1" || Boost.Display() != "Boost-2" {
		t.Errorf("unexpected display: %s %s", Eco.Display(), Boost.Display())
	}
	if Eco.Code() != 1 || Boost.Code() != 2 {
		t.Errorf("unexpected codes: %d %d", Eco.Code(), Boost.Code())
	}

	m, err := ParseMode(" BOOST ")
	if err != nil || m != Boost {
		t.Errorf("ParseMode: got %q, %v", m, err)
	}
	if _, err := ParseMode("sport"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode, got %v", err)
	}
}

func TestMotorRating(t *testing.T) {
	m := DefaultMotor()
	if tq, p := m.Rating(Eco); tq != 19 || p != 1000 {
		t.Errorf("eco rating: %v %v", tq, p)
	}
	if tq, p := m.Rating(Boost); tq != 37 || p != 2000 {
		t.Errorf("boost rating: %v %v", tq, p)
	}
}

func TestRunConfigDefaults(t *testing.T) {
	cfg := RunConfig{}.WithDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Steps() + 1; got != 241 {
		t.Errorf("expected 241 rows, got %d", got)
	}
}

func TestRunConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  RunConfig
		want error
	}{
		{"zero dt", RunConfig{Mode: Boost, Dt: 0, Duration: 1}, ErrInvalidStep},
		{"negative duration", RunConfig{Mode: Boost, Dt: 0.5, Duration: -1}, ErrInvalidStep},
		{"infinite duration", RunConfig{Mode: Boost, Dt: 0.5, Duration: math.Inf(1)}, ErrInvalidStep},
		{"infinite dt", RunConfig{Mode: Boost, Dt: math.Inf(1), Duration: 1}, ErrInvalidStep},
		{"nan dt", RunConfig{Mode: Boost, Dt: math.NaN(), Duration: 1}, ErrInvalidStep},
		{"too many rows", RunConfig{Mode: Boost, Dt: 0.5, Duration: 1e19}, ErrInvalidStep},
		{"bad mode", RunConfig{Mode: "sport", Dt: 0.5, Duration: 1}, ErrInvalidMode},
		{"steep", RunConfig{Mode: Eco, Dt: 0.5, Duration: 1, Gradient: 91, Rolling: RollingFlat, Reverse: ReverseClamp}, ErrParameterBounds},
		{"bad rolling", RunConfig{Mode: Eco, Dt: 0.5, Duration: 1, Rolling: "sine", Reverse: ReverseClamp}, ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestTableColumns(t *testing.T) {
	ev := &Table{Params: DefaultParams()}
	if got := len(ev.Columns(false)); got != 17 {
		t.Errorf("expected 17 base columns, got %d", got)
	}
	ugv := &Table{Params: DefaultUGVParams()}
	if got := len(ugv.Columns(true)); got != 25 {
		t.Errorf("expected 25 extended ugv columns, got %d", got)
	}

	r := Row{Mode: Boost, Turning: &Turning{SkidForce: 1}}
	if got := len(r.Cells(true)); got != 25 {
		t.Errorf("expected 25 cells, got %d", got)
	}
	if r.Cells(false)[5] != "Boost-2" {
		t.Errorf("mode cell: %v", r.Cells(false)[5])
	}
}
