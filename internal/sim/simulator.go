package sim

import (
	"errors"
	"math"

	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/integrators"
	"github.com/san-kum/powertrain/internal/logger"
	"github.com/san-kum/powertrain/internal/physics"
)

type Options struct {
	// Integrator defaults to explicit Euler.
	Integrator dynamo.Integrator
	Logger     logger.Logger
	Observers  []dynamo.Observer
}

type Simulator struct {
	integrator dynamo.Integrator
	log        logger.Logger
	observers  []dynamo.Observer
}

func New(opts Options) *Simulator {
	s := &Simulator{
		integrator: opts.Integrator,
		log:        opts.Logger,
		observers:  append([]dynamo.Observer(nil), opts.Observers...),
	}
	if s.integrator == nil {
		s.integrator = integrators.NewEuler()
	}
	if s.log == nil {
		s.log = logger.Nop
	}
	return s
}

// Run integrates one open-loop trajectory from rest. The table is only
// returned when every row is finite.
func (s *Simulator) Run(p dynamo.Params, cfg dynamo.RunConfig) (*dynamo.Table, error) {
	if err := s.validate(p, cfg); err != nil {
		return nil, err
	}

	model := physics.NewModel(p, cfg.Mode, cfg.Gradient, cfg.Rolling)
	if err := s.checkCurve(model.Curve(), cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	table := &dynamo.Table{
		Params: p,
		Config: cfg,
		Rows:   make([]dynamo.Row, 0, steps+1),
	}
	turning := physics.Skid(p)
	sys := NewLongitudinal(model)

	s.log.Debugw("run start", map[string]any{
		"gradient": cfg.Gradient,
		"mode":     string(cfg.Mode),
		"steps":    steps,
		"ugv":      p.IsUGV(),
	})

	x := make(dynamo.State, dynamo.StateDim)
	for i := 0; i <= steps; i++ {
		t := float64(i) * cfg.Dt
		row := buildRow(model, x, t, turning)
		if !rowFinite(row) {
			return nil, &dynamo.SimulationError{Step: i, Time: t, Wrapped: dynamo.ErrInvalidState}
		}
		table.Rows = append(table.Rows, row)
		for _, obs := range s.observers {
			obs.OnRow(row)
		}

		if i == steps {
			break
		}
		x = s.integrator.Step(sys, x, t, cfg.Dt)
		if cfg.Reverse == dynamo.ReverseClamp && x[dynamo.IdxSpeed] < 0 {
			x[dynamo.IdxSpeed] = 0
		}
		if !x.IsValid() {
			return nil, &dynamo.SimulationError{Step: i + 1, Time: t + cfg.Dt, Wrapped: dynamo.ErrInvalidState}
		}
	}

	s.log.Debugw("run done", map[string]any{
		"rows":      len(table.Rows),
		"final_kmh": table.Last().SpeedKmh,
	})
	return table, nil
}

func (s *Simulator) validate(p dynamo.Params, cfg dynamo.RunConfig) error {
	return errors.Join(p.Validate(), cfg.Validate())
}

func (s *Simulator) checkCurve(c physics.TorqueCurve, cfg dynamo.RunConfig) error {
	tol := cfg.ContinuityTolerance
	if tol <= 0 {
		tol = dynamo.DefaultContinuityTolerance
	}
	err := c.CheckContinuity(tol)
	if err == nil {
		return nil
	}
	if cfg.StrictContinuity {
		return err
	}
	s.log.Warnf("%v", err)
	return nil
}

func buildRow(m *physics.Model, x dynamo.State, t float64, turning *dynamo.Turning) dynamo.Row {
	p := m.Params
	v := x[dynamo.IdxSpeed]
	fs := m.At(v)
	energy := x[dynamo.IdxEnergy]
	current := shaftPower(fs, p) / (p.MotorEfficiency * p.BatteryVoltage)

	return dynamo.Row{
		Time:           t,
		Speed:          v,
		SpeedKmh:       v * 3.6,
		MotorRPM:       fs.RPM,
		Gradient:       m.Gradient,
		Mode:           m.Mode,
		TotalTorque:    fs.TotalTorque,
		DrivenWheels:   p.Motors,
		PerMotorTorque: fs.PerMotorTorque,
		PerMotorPower:  fs.PerMotorPower,
		Tractive:       fs.Tractive,
		Roll:           fs.Roll,
		Drag:           fs.Drag,
		Climb:          fs.Climb,
		Resistance:     fs.Resistance,
		Net:            fs.Net,
		Accel:          fs.Accel,
		Distance:       x[dynamo.IdxDistance],
		Energy:         energy,
		BatteryEnergy:  energy / p.MotorEfficiency,
		BatteryCurrent: current,
		Turning:        turning,
	}
}

func rowFinite(r dynamo.Row) bool {
	vals := []float64{r.Speed, r.MotorRPM, r.TotalTorque, r.PerMotorPower, r.Tractive, r.Resistance, r.Net, r.Accel, r.Distance, r.Energy}
	if t := r.Turning; t != nil {
		vals = append(vals, t.SkidForce, t.SkidPerWheel, t.WheelSpeed, t.PowerPerMotor)
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
