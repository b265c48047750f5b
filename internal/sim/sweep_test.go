package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/powertrain/internal/dynamo"
)

func TestSweepKeepsOrder(t *testing.T) {
	jobs := []Job{
		{Name: "ev-flat", Params: dynamo.DefaultParams(), Config: dynamo.RunConfig{Mode: dynamo.Boost}.WithDefaults()},
		{Name: "ugv-hill", Params: dynamo.DefaultUGVParams(), Config: dynamo.RunConfig{Mode: dynamo.Eco, Gradient: 15}.WithDefaults(), Integrator: "rk4"},
		{Name: "ev-eco", Params: dynamo.DefaultParams(), Config: dynamo.RunConfig{Mode: dynamo.Eco}.WithDefaults()},
	}

	results, err := Sweep(context.Background(), jobs, 2, nil)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("expected %d results, got %d", len(jobs), len(results))
	}
	for i, r := range results {
		if r.Job.Name != jobs[i].Name {
			t.Errorf("result %d: expected %s, got %s", i, jobs[i].Name, r.Job.Name)
		}
		if r.Table.Len() != 241 {
			t.Errorf("%s: expected 241 rows, got %d", r.Job.Name, r.Table.Len())
		}
	}
	if results[1].Table.Rows[0].Turning == nil {
		t.Error("ugv job lost its turning columns")
	}
}

func TestSweepFailure(t *testing.T) {
	jobs := []Job{
		{Name: "ok", Params: dynamo.DefaultParams(), Config: dynamo.RunConfig{}.WithDefaults()},
		{Name: "bad", Params: dynamo.DefaultParams(), Config: dynamo.RunConfig{}.WithDefaults(), Integrator: "leapfrog"},
	}
	if _, err := Sweep(context.Background(), jobs, 1, nil); !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}
