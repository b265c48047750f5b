package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/sizing"
)

// EnvPrefix selects environment overrides, e.g. POWERTRAIN_RUN__GRADIENT=15.
const EnvPrefix = "POWERTRAIN_"

const DefaultStoreDir = "runs"

type Config struct {
	Vehicle VehicleConfig `yaml:"vehicle"`
	Run     RunConfig     `yaml:"run"`
	Sizing  SizingConfig  `yaml:"sizing"`
	Logging LoggingConfig `yaml:"logging"`
	Store   string        `yaml:"store"`
}

// Weights is the mass breakdown in kg.
type Weights struct {
	Vehicle         float64 `yaml:"vehicle"`
	Battery         float64 `yaml:"battery"`
	Passenger       float64 `yaml:"passenger"`
	MotorController float64 `yaml:"motor_controller"`
	Other           float64 `yaml:"other"`
	Generator       float64 `yaml:"generator"`
}

func (w Weights) Kerb() float64 { return w.Vehicle + w.Battery }

func (w Weights) GVW() float64 {
	return w.Kerb() + w.Passenger + w.MotorController + w.Other + w.Generator
}

type VehicleConfig struct {
	Type              string  `yaml:"type"`
	DragCoefficient   float64 `yaml:"drag_coefficient"`
	RollingResistance float64 `yaml:"rolling_resistance"`
	AirDensity        float64 `yaml:"air_density"`
	FrontalArea       float64 `yaml:"frontal_area"`
	WheelRadius       float64 `yaml:"wheel_radius"`
	GearRatio         float64 `yaml:"gear_ratio"`
	GearEfficiency    float64 `yaml:"gear_efficiency"`
	MotorEfficiency   float64 `yaml:"motor_efficiency"`
	Motors            int     `yaml:"motors"`
	BatteryVoltage    float64 `yaml:"battery_voltage"`
	RotaryInertia     float64 `yaml:"rotary_inertia"`
	Weights           Weights `yaml:"weights"`
	// Mass overrides the weight breakdown when positive.
	Mass float64 `yaml:"mass"`
	// Motor names a catalog entry; MotorSpec replaces it entirely when set.
	Motor          string        `yaml:"motor"`
	MotorSpec      *dynamo.Motor `yaml:"motor_spec,omitempty"`
	AddMotorWeight bool          `yaml:"add_motor_weight"`
	UGV            *dynamo.UGV   `yaml:"ugv,omitempty"`
}

// clone detaches the pointer fields so decoding never writes into a preset.
func (v VehicleConfig) clone() VehicleConfig {
	if v.MotorSpec != nil {
		m := *v.MotorSpec
		v.MotorSpec = &m
	}
	if v.UGV != nil {
		u := *v.UGV
		v.UGV = &u
	}
	return v
}

type RunConfig struct {
	Gradient float64 `yaml:"gradient"`
	// Terrain names a gradient preset and wins over Gradient when set.
	Terrain             string  `yaml:"terrain"`
	Mode                string  `yaml:"mode"`
	Dt                  float64 `yaml:"dt"`
	Duration            float64 `yaml:"duration"`
	Integrator          string  `yaml:"integrator"`
	Rolling             string  `yaml:"rolling"`
	Reverse             string  `yaml:"reverse"`
	ContinuityTolerance float64 `yaml:"continuity_tolerance"`
	StrictContinuity    bool    `yaml:"strict_continuity"`
}

type SizingConfig struct {
	Targets sizing.Targets     `yaml:"targets"`
	Battery sizing.BatterySpec `yaml:"battery"`
	Slabs   []sizing.Slab      `yaml:"slabs,omitempty"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Vehicle: Vehicles["ev"].clone(),
		Run: RunConfig{
			Mode:                string(dynamo.Boost),
			Dt:                  dynamo.DefaultDt,
			Duration:            dynamo.DefaultDuration,
			Integrator:          "euler",
			Rolling:             string(dynamo.RollingFlat),
			Reverse:             string(dynamo.ReverseClamp),
			ContinuityTolerance: dynamo.DefaultContinuityTolerance,
		},
		Sizing: SizingConfig{
			Targets: sizing.DefaultTargets(),
			Battery: sizing.DefaultBattery(),
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Store:   DefaultStoreDir,
	}
}

// Load reads a YAML or JSON file on top of the defaults and applies
// POWERTRAIN_<SECTION>__<KEY> environment overrides. An empty path loads
// defaults plus environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = kyaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if k.Exists("vehicle.type") {
		// a different vehicle type starts from that preset's defaults
		if base, err := GetVehicle(k.String("vehicle.type")); err == nil {
			cfg.Vehicle = base
		}
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate resolves everything once so bad names fail at load time.
func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}
	if _, err := c.RunConfig(); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Logging.Format)
	}
	return nil
}

// Params builds the immutable vehicle snapshot.
func (c *Config) Params() (dynamo.Params, error) {
	v := c.Vehicle
	motor, err := c.resolveMotor()
	if err != nil {
		return dynamo.Params{}, err
	}

	mass := v.Mass
	if mass <= 0 {
		mass = v.Weights.GVW()
	}
	if v.AddMotorWeight {
		mass += motor.Weight * float64(v.Motors)
	}

	p := dynamo.Params{
		DragCoefficient:   v.DragCoefficient,
		RollingResistance: v.RollingResistance,
		AirDensity:        v.AirDensity,
		FrontalArea:       v.FrontalArea,
		Mass:              mass,
		WheelRadius:       v.WheelRadius,
		GearRatio:         v.GearRatio,
		GearEfficiency:    v.GearEfficiency,
		MotorEfficiency:   v.MotorEfficiency,
		Motors:            v.Motors,
		Motor:             motor,
		BatteryVoltage:    v.BatteryVoltage,
		RotaryInertia:     v.RotaryInertia,
	}
	if strings.EqualFold(v.Type, "ugv") || v.UGV != nil {
		ugv := DefaultUGV()
		ugv.PoweredWheels = v.Motors
		ugv.Wheels = max(ugv.Wheels, ugv.PoweredWheels)
		if v.UGV != nil {
			ugv = *v.UGV
		}
		p.UGV = &ugv
	}
	return p, p.Validate()
}

func (c *Config) resolveMotor() (dynamo.Motor, error) {
	if c.Vehicle.MotorSpec != nil {
		return *c.Vehicle.MotorSpec, nil
	}
	return GetMotor(c.Vehicle.Motor)
}

// RunConfig resolves the run section into engine settings.
func (c *Config) RunConfig() (dynamo.RunConfig, error) {
	r := c.Run
	mode, err := dynamo.ParseMode(r.Mode)
	if err != nil {
		return dynamo.RunConfig{}, err
	}
	gradient := r.Gradient
	if r.Terrain != "" {
		if gradient, err = GetTerrain(r.Terrain); err != nil {
			return dynamo.RunConfig{}, err
		}
	}
	rc := dynamo.RunConfig{
		Gradient:            gradient,
		Mode:                mode,
		Dt:                  r.Dt,
		Duration:            r.Duration,
		Rolling:             dynamo.RollingPolicy(strings.ToLower(r.Rolling)),
		Reverse:             dynamo.ReversePolicy(strings.ToLower(r.Reverse)),
		ContinuityTolerance: r.ContinuityTolerance,
		StrictContinuity:    r.StrictContinuity,
	}
	if rc.Rolling == "" {
		rc.Rolling = dynamo.RollingFlat
	}
	if rc.Reverse == "" {
		rc.Reverse = dynamo.ReverseClamp
	}
	if rc.ContinuityTolerance == 0 {
		rc.ContinuityTolerance = dynamo.DefaultContinuityTolerance
	}
	return rc, rc.Validate()
}

// SizingInput bundles the vehicle and sizing sections for the calculator.
func (c *Config) SizingInput() (sizing.Input, error) {
	p, err := c.Params()
	if err != nil {
		return sizing.Input{}, err
	}
	mode, err := dynamo.ParseMode(c.Run.Mode)
	if err != nil {
		return sizing.Input{}, err
	}
	in := sizing.Input{
		Params:  p,
		Mode:    mode,
		Targets: c.Sizing.Targets,
		Battery: c.Sizing.Battery,
		Slabs:   c.Sizing.Slabs,
	}
	return in, in.Validate()
}
