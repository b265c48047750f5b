package optim

import (
	"context"
	"fmt"

	"github.com/san-kum/powertrain/internal/config"
	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/experiment"
	"github.com/san-kum/powertrain/internal/logger"
	"github.com/san-kum/powertrain/internal/metrics"
	"github.com/san-kum/powertrain/internal/sizing"
)

// Candidate is one motor/mode pair after simulation and suitability check.
type Candidate struct {
	Motor       string             `json:"motor"`
	Mode        dynamo.Mode        `json:"mode"`
	Summary     metrics.Summary    `json:"summary"`
	Suitability sizing.Suitability `json:"suitability"`
	EnergyPerKm float64            `json:"energy_per_km"`
}

type Selection struct {
	Best       Candidate   `json:"best"`
	Candidates []Candidate `json:"candidates"`
}

// SelectMotor simulates every catalog motor in both modes on the base
// configuration, drops unsuitable pairs and picks the lowest Wh/km. Workers
// bounds the parallel runs; zero means one per CPU.
func SelectMotor(ctx context.Context, base *config.Config, motors []string, workers int, log logger.Logger) (*Selection, error) {
	if len(motors) == 0 {
		motors = config.ListMotors()
	}
	modes := []dynamo.Mode{dynamo.Eco, dynamo.Boost}

	idx := make([]float64, len(motors))
	for i := range motors {
		idx[i] = float64(i)
	}
	g := NewGridSearch([]string{"motor", "mode"}, [][]float64{idx, {0, 1}})
	g.Logger = log
	g.Workers = workers

	configFor := func(params map[string]float64) *config.Config {
		cfg := *base
		cfg.Vehicle.Motor = motors[int(params["motor"])]
		cfg.Vehicle.MotorSpec = nil
		cfg.Run.Mode = string(modes[int(params["mode"])])
		return &cfg
	}

	suit := make(map[string]sizing.Suitability)
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := configFor(params)
		name := fmt.Sprintf("%s/%s", cfg.Vehicle.Motor, cfg.Run.Mode)
		exp, err := experiment.New(name, cfg)
		if err != nil {
			return nil, err
		}
		in, err := cfg.SizingInput()
		if err != nil {
			return nil, err
		}
		s, err := sizing.CheckSuitability(in)
		if err != nil {
			return nil, err
		}
		suit[name] = s
		return exp, nil
	}

	score := func(exp *experiment.Experiment, table *dynamo.Table) (float64, bool) {
		sum := metrics.Summarize(table)
		if !suit[exp.Name].Suitable || sum.DistanceKm <= 0 {
			return sum.EnergyPerKm, false
		}
		return sum.EnergyPerKm, true
	}

	best, points, err := g.Search(ctx, build, score)
	sel := &Selection{}
	for _, pt := range points {
		sel.Candidates = append(sel.Candidates, candidate(motors, modes, pt, suit))
	}
	if err != nil {
		return sel, err
	}
	sel.Best = candidate(motors, modes, best, suit)
	return sel, nil
}

func candidate(motors []string, modes []dynamo.Mode, pt Point, suit map[string]sizing.Suitability) Candidate {
	motor := motors[int(pt.Params["motor"])]
	mode := modes[int(pt.Params["mode"])]
	return Candidate{
		Motor:       motor,
		Mode:        mode,
		Summary:     metrics.Summarize(pt.Table),
		Suitability: suit[fmt.Sprintf("%s/%s", motor, mode)],
		EnergyPerKm: pt.Value,
	}
}
