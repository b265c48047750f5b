package experiment

import (
	"fmt"

	"github.com/san-kum/powertrain/internal/config"
	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/integrators"
	"github.com/san-kum/powertrain/internal/logger"
	"github.com/san-kum/powertrain/internal/sim"
)

// Experiment is one fully resolved simulation request.
type Experiment struct {
	Name       string
	Config     *config.Config
	Params     dynamo.Params
	Run        dynamo.RunConfig
	Integrator string
}

// New resolves cfg into engine inputs, failing on any invalid value.
func New(name string, cfg *config.Config) (*Experiment, error) {
	p, err := cfg.Params()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	rc, err := cfg.RunConfig()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if _, err := integrators.New(cfg.Run.Integrator); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Experiment{
		Name:       name,
		Config:     cfg,
		Params:     p,
		Run:        rc,
		Integrator: cfg.Run.Integrator,
	}, nil
}

func (e *Experiment) Job() sim.Job {
	return sim.Job{Name: e.Name, Params: e.Params, Config: e.Run, Integrator: e.Integrator}
}

// Execute runs the experiment on a fresh simulator.
func (e *Experiment) Execute(log logger.Logger, observers ...dynamo.Observer) (*dynamo.Table, error) {
	integ, err := integrators.New(e.Integrator)
	if err != nil {
		return nil, err
	}
	s := sim.New(sim.Options{Integrator: integ, Logger: log, Observers: observers})
	return s.Run(e.Params, e.Run)
}

// IntegratorName reports the stepper actually used.
func (e *Experiment) IntegratorName() string {
	if e.Integrator == "" {
		return integrators.Default
	}
	return e.Integrator
}
