package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/powertrain/internal/config"
	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/experiment"
)

func TestGridSearchVisitsEveryPoint(t *testing.T) {
	g := NewGridSearch([]string{"gradient", "mode"}, [][]float64{{0, 5, 10}, {0, 1}})
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := config.DefaultConfig()
		cfg.Run.Gradient = params["gradient"]
		if params["mode"] == 0 {
			cfg.Run.Mode = "eco"
		}
		return experiment.New("grid", cfg)
	}
	score := func(_ *experiment.Experiment, table *dynamo.Table) (float64, bool) {
		return -table.Last().SpeedKmh, true
	}

	best, points, err := g.Search(context.Background(), build, score)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(points))
	}
	if best.Params["gradient"] != 0 || best.Params["mode"] != 1 {
		t.Errorf("fastest point should be flat boost, got %v", best.Params)
	}

	ranked := Ranked(points)
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Value < ranked[i-1].Value {
			t.Fatal("ranked points out of order")
		}
	}
}

func TestGridSearchNoCandidate(t *testing.T) {
	g := NewGridSearch([]string{"gradient"}, [][]float64{{0}})
	build := func(map[string]float64) (*experiment.Experiment, error) {
		return experiment.New("x", config.DefaultConfig())
	}
	reject := func(*experiment.Experiment, *dynamo.Table) (float64, bool) { return 0, false }

	if _, _, err := g.Search(context.Background(), build, reject); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("expected ErrNoCandidate, got %v", err)
	}
}

func TestSelectMotorPrefersSuitableMode(t *testing.T) {
	sel, err := SelectMotor(context.Background(), config.DefaultConfig(), []string{"default"}, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(sel.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(sel.Candidates))
	}
	if sel.Best.Motor != "default" || sel.Best.Mode != dynamo.Boost {
		t.Errorf("eco fails gradeability, best should be boost: %+v", sel.Best)
	}
	if !sel.Best.Suitability.Suitable {
		t.Error("best candidate must be suitable")
	}
	if sel.Best.EnergyPerKm <= 0 {
		t.Errorf("energy per km: %v", sel.Best.EnergyPerKm)
	}
}

func TestSelectMotorSerialMatchesParallel(t *testing.T) {
	motors := []string{"default", "gpm50"}
	serial, err := SelectMotor(context.Background(), config.DefaultConfig(), motors, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := SelectMotor(context.Background(), config.DefaultConfig(), motors, 4, nil)
	if err != nil {
		t.Fatal(err)
	}
	if serial.Best.Motor != parallel.Best.Motor || serial.Best.Mode != parallel.Best.Mode {
		t.Errorf("best differs: serial %+v, parallel %+v", serial.Best, parallel.Best)
	}
	if len(serial.Candidates) != len(parallel.Candidates) {
		t.Errorf("candidate count differs: %d vs %d", len(serial.Candidates), len(parallel.Candidates))
	}
}
