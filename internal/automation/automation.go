package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/powertrain/internal/config"
	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/experiment"
	"github.com/san-kum/powertrain/internal/logger"
	"github.com/san-kum/powertrain/internal/metrics"
	"github.com/san-kum/powertrain/internal/sim"
)

// Scenario is a batch of runs described in YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Workers     int            `yaml:"workers"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep overrides the base configuration for one run. Empty fields
// keep the base value.
type ScenarioStep struct {
	Name       string   `yaml:"name"`
	Vehicle    string   `yaml:"vehicle"`
	Motor      string   `yaml:"motor"`
	Mode       string   `yaml:"mode"`
	Gradient   *float64 `yaml:"gradient"`
	Terrain    string   `yaml:"terrain"`
	Integrator string   `yaml:"integrator"`
	Duration   float64  `yaml:"duration"`
	Dt         float64  `yaml:"dt"`
	Save       bool     `yaml:"save"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Config applies the step on top of base without modifying it.
func (s ScenarioStep) Config(base *config.Config) (*config.Config, error) {
	cfg := *base
	if s.Vehicle != "" {
		v, err := config.GetVehicle(s.Vehicle)
		if err != nil {
			return nil, err
		}
		cfg.Vehicle = v
	}
	if s.Motor != "" {
		cfg.Vehicle.Motor = s.Motor
		cfg.Vehicle.MotorSpec = nil
	}
	if s.Mode != "" {
		cfg.Run.Mode = s.Mode
	}
	if s.Gradient != nil {
		cfg.Run.Gradient = *s.Gradient
		cfg.Run.Terrain = ""
	}
	if s.Terrain != "" {
		cfg.Run.Terrain = s.Terrain
	}
	if s.Integrator != "" {
		cfg.Run.Integrator = s.Integrator
	}
	if s.Duration != 0 {
		cfg.Run.Duration = s.Duration
	}
	if s.Dt != 0 {
		cfg.Run.Dt = s.Dt
	}
	return &cfg, cfg.Validate()
}

type StepResult struct {
	Step       ScenarioStep
	Experiment *experiment.Experiment
	Table      *dynamo.Table
	Summary    metrics.Summary
}

// RunScenario resolves every step up front, then runs them concurrently.
// Results keep step order.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, log logger.Logger) ([]StepResult, error) {
	if log == nil {
		log = logger.Nop
	}
	exps := make([]*experiment.Experiment, len(scenario.Steps))
	jobs := make([]sim.Job, len(scenario.Steps))
	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("%s#%d", scenario.Name, i+1)
		}
		cfg, err := step.Config(base)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		exp, err := experiment.New(name, cfg)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		exps[i] = exp
		jobs[i] = exp.Job()
	}

	log.Infof("running scenario %s: %d steps", scenario.Name, len(jobs))
	out, err := sim.Sweep(ctx, jobs, scenario.Workers, log)
	if err != nil {
		return nil, err
	}

	results := make([]StepResult, len(out))
	for i, r := range out {
		results[i] = StepResult{
			Step:       scenario.Steps[i],
			Experiment: exps[i],
			Table:      r.Table,
			Summary:    metrics.Summarize(r.Table),
		}
	}
	return results, nil
}

// ParameterSweep varies one vehicle or run parameter over an even range.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Workers   int
}

type SweepResult struct {
	ParamValue float64
	Summary    metrics.Summary
}

// SweepParams lists the names accepted by SetParam.
var SweepParams = []string{
	"gradient", "mass", "gear_ratio", "wheel_radius", "drag_coefficient",
	"rolling_resistance", "frontal_area", "motors", "battery_voltage",
}

// SetParam writes a named parameter into cfg.
func SetParam(cfg *config.Config, name string, value float64) error {
	v := &cfg.Vehicle
	switch name {
	case "gradient":
		cfg.Run.Gradient = value
		cfg.Run.Terrain = ""
	case "mass":
		v.Mass = value
	case "gear_ratio":
		v.GearRatio = value
	case "wheel_radius":
		v.WheelRadius = value
	case "drag_coefficient":
		v.DragCoefficient = value
	case "rolling_resistance":
		v.RollingResistance = value
	case "frontal_area":
		v.FrontalArea = value
	case "motors":
		v.Motors = int(value)
		if v.UGV != nil {
			u := *v.UGV
			u.PoweredWheels = v.Motors
			u.Wheels = max(u.Wheels, u.PoweredWheels)
			v.UGV = &u
		}
	case "battery_voltage":
		v.BatteryVoltage = value
	default:
		return fmt.Errorf("%w: sweep parameter %q", dynamo.ErrUnknownPreset, name)
	}
	return nil
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, base *config.Config, log logger.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least 1 step, got %d", sweep.NumSteps)
	}
	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	values := make([]float64, sweep.NumSteps)
	jobs := make([]sim.Job, sweep.NumSteps)
	for i := range jobs {
		values[i] = sweep.ParamMin + float64(i)*paramStep
		cfg := *base
		if err := SetParam(&cfg, sweep.ParamName, values[i]); err != nil {
			return nil, err
		}
		exp, err := experiment.New(fmt.Sprintf("%s=%.4g", sweep.ParamName, values[i]), &cfg)
		if err != nil {
			return nil, err
		}
		jobs[i] = exp.Job()
	}

	out, err := sim.Sweep(ctx, jobs, sweep.Workers, log)
	if err != nil {
		return nil, err
	}
	results := make([]SweepResult, len(out))
	for i, r := range out {
		results[i] = SweepResult{ParamValue: values[i], Summary: metrics.Summarize(r.Table)}
	}
	return results, nil
}

// MonteCarloConfig perturbs the uncertain vehicle coefficients uniformly by
// ±Perturbation (a fraction of the nominal value).
type MonteCarloConfig struct {
	Perturbation float64
	NumTrials    int
	Seed         int64
	Workers      int
}

type MonteCarloResult struct {
	TrialID           int
	Mass              float64
	DragCoefficient   float64
	RollingResistance float64
	Summary           metrics.Summary
}

func RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig, base *config.Config, log logger.Logger) ([]MonteCarloResult, error) {
	nominal, err := base.Params()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(mc.Seed))
	if mc.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	perturb := func(v float64) float64 {
		return v * (1 + (rng.Float64()-0.5)*2*mc.Perturbation)
	}

	trials := make([]MonteCarloResult, mc.NumTrials)
	jobs := make([]sim.Job, mc.NumTrials)
	for trial := range trials {
		cfg := *base
		cfg.Vehicle.Mass = perturb(nominal.Mass)
		cfg.Vehicle.DragCoefficient = perturb(nominal.DragCoefficient)
		cfg.Vehicle.RollingResistance = perturb(nominal.RollingResistance)
		cfg.Vehicle.AddMotorWeight = false

		exp, err := experiment.New(fmt.Sprintf("trial-%d", trial), &cfg)
		if err != nil {
			return nil, err
		}
		jobs[trial] = exp.Job()
		trials[trial] = MonteCarloResult{
			TrialID:           trial,
			Mass:              cfg.Vehicle.Mass,
			DragCoefficient:   cfg.Vehicle.DragCoefficient,
			RollingResistance: cfg.Vehicle.RollingResistance,
		}
	}

	out, err := sim.Sweep(ctx, jobs, mc.Workers, log)
	if err != nil {
		return nil, err
	}
	for i, r := range out {
		trials[i].Summary = metrics.Summarize(r.Table)
	}
	return trials, nil
}

// Spread is the mean and standard deviation of one figure over trials.
type Spread struct {
	Mean   float64
	StdDev float64
}

type MonteCarloStats struct {
	FinalSpeedKmh Spread
	EnergyPerKm   Spread
	PeakCurrent   Spread
}

func Stats(results []MonteCarloResult) MonteCarloStats {
	spread := func(pick func(metrics.Summary) float64) Spread {
		xs := make([]float64, len(results))
		for i, r := range results {
			xs[i] = pick(r.Summary)
		}
		if len(xs) == 0 {
			return Spread{}
		}
		mean, std := stat.MeanStdDev(xs, nil)
		if len(xs) == 1 {
			std = 0
		}
		return Spread{Mean: mean, StdDev: std}
	}
	return MonteCarloStats{
		FinalSpeedKmh: spread(func(s metrics.Summary) float64 { return s.FinalSpeedKmh }),
		EnergyPerKm:   spread(func(s metrics.Summary) float64 { return s.EnergyPerKm }),
		PeakCurrent:   spread(func(s metrics.Summary) float64 { return s.PeakCurrent }),
	}
}
