package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/powertrain/internal/config"
	"github.com/san-kum/powertrain/internal/dynamo"
)

const scenarioYAML = `
name: hills
description: flat versus hill
workers: 2
steps:
  - name: flat-boost
    mode: boost
    gradient: 0
  - name: flat-eco
    mode: eco
  - name: hill
    terrain: hill
  - name: ugv
    vehicle: ugv
    integrator: rk4
`

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0644))
	return path
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t))
	require.NoError(t, err)
	require.Len(t, sc.Steps, 4)

	results, err := RunScenario(context.Background(), sc, config.DefaultConfig(), nil)
	require.NoError(t, err)
	require.Len(t, results, 4)

	boost, eco, hill, ugv := results[0], results[1], results[2], results[3]
	assert.Equal(t, "flat-boost", boost.Experiment.Name)
	assert.InDelta(t, 84.93, boost.Summary.FinalSpeedKmh, 0.05)
	assert.Less(t, eco.Summary.FinalSpeedKmh, boost.Summary.FinalSpeedKmh)
	assert.Less(t, hill.Summary.FinalSpeedKmh, boost.Summary.FinalSpeedKmh)
	assert.Equal(t, 15.0, hill.Table.Config.Gradient)
	assert.True(t, ugv.Table.Params.IsUGV())
	assert.Equal(t, "rk4", ugv.Experiment.IntegratorName())
}

func TestStepConfigLeavesBaseAlone(t *testing.T) {
	base := config.DefaultConfig()
	grad := 12.0
	cfg, err := ScenarioStep{Motor: "gpm50", Gradient: &grad}.Config(base)
	require.NoError(t, err)

	assert.Equal(t, "gpm50", cfg.Vehicle.Motor)
	assert.Equal(t, 12.0, cfg.Run.Gradient)
	assert.Equal(t, "default", base.Vehicle.Motor)
	assert.Zero(t, base.Run.Gradient)

	_, err = ScenarioStep{Motor: "warp"}.Config(base)
	assert.ErrorIs(t, err, dynamo.ErrUnknownPreset)
}

func TestLoadScenarioRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: empty\n"), 0644))
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestRunSweepGradient(t *testing.T) {
	sweep := &ParameterSweep{ParamName: "gradient", ParamMin: 0, ParamMax: 10, NumSteps: 3}
	results, err := RunSweep(context.Background(), sweep, config.DefaultConfig(), nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []float64{0, 5, 10}, []float64{results[0].ParamValue, results[1].ParamValue, results[2].ParamValue})
	for i := 1; i < len(results); i++ {
		assert.Less(t, results[i].Summary.FinalSpeedKmh, results[i-1].Summary.FinalSpeedKmh)
		assert.Greater(t, results[i].Summary.EnergyPerKm, results[i-1].Summary.EnergyPerKm)
	}
}

func TestSetParamMotorsFollowsPoweredWheels(t *testing.T) {
	base := config.DefaultConfig()
	v, err := config.GetVehicle("ugv")
	require.NoError(t, err)
	base.Vehicle = v

	cfg := *base
	require.NoError(t, SetParam(&cfg, "motors", 4))
	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, 4, p.UGV.PoweredWheels)
	assert.Equal(t, 2, base.Vehicle.UGV.PoweredWheels)
}

func TestRunSweepUnknownParam(t *testing.T) {
	sweep := &ParameterSweep{ParamName: "colour", NumSteps: 2}
	_, err := RunSweep(context.Background(), sweep, config.DefaultConfig(), nil)
	assert.True(t, errors.Is(err, dynamo.ErrUnknownPreset))
}

func TestMonteCarloDeterministic(t *testing.T) {
	mc := &MonteCarloConfig{Perturbation: 0.1, NumTrials: 6, Seed: 42}
	a, err := RunMonteCarlo(context.Background(), mc, config.DefaultConfig(), nil)
	require.NoError(t, err)
	b, err := RunMonteCarlo(context.Background(), mc, config.DefaultConfig(), nil)
	require.NoError(t, err)

	require.Len(t, a, 6)
	nominal, err := config.DefaultConfig().Params()
	require.NoError(t, err)
	for i := range a {
		assert.Equal(t, a[i].Mass, b[i].Mass)
		assert.InEpsilon(t, nominal.Mass, a[i].Mass, 0.1001)
		assert.InEpsilon(t, nominal.DragCoefficient, a[i].DragCoefficient, 0.1001)
	}

	st := Stats(a)
	assert.Positive(t, st.FinalSpeedKmh.Mean)
	assert.Positive(t, st.FinalSpeedKmh.StdDev)
	assert.Positive(t, st.EnergyPerKm.Mean)
	assert.Equal(t, Spread{}, Stats(nil).EnergyPerKm)
}
