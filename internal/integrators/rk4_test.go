package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/powertrain/internal/dynamo"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

type linearDecay struct{}

func (linearDecay) Derive(x dynamo.State, t float64) dynamo.State { return dynamo.State{-x[0]} }
func (linearDecay) StateDim() int                                 { return 1 }

func TestEulerSingleStep(t *testing.T) {
	x := NewEuler().Step(linearDecay{}, dynamo.State{2}, 0, 0.5)
	if x[0] != 1 {
		t.Errorf("expected 1, got %v", x[0])
	}
}

func TestEulerFirstOrder(t *testing.T) {
	integ := NewEuler()
	x := dynamo.State{1}
	for i := 0; i < 1000; i++ {
		x = integ.Step(linearDecay{}, x, float64(i)*0.001, 0.001)
	}
	if math.Abs(x[0]-math.Exp(-1)) > 1e-3 {
		t.Errorf("expected ~%.4f, got %.4f", math.Exp(-1), x[0])
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"", "euler", "rk4"} {
		if _, err := New(name); err != nil {
			t.Errorf("%q: unexpected error: %v", name, err)
		}
	}
	if _, err := New("verlet"); !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
	if names := Names(); len(names) != 2 || names[0] != "euler" {
		t.Errorf("unexpected names: %v", names)
	}
}
