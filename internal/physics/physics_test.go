package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/powertrain/internal/dynamo"
)

func TestTorqueCurveRegimes(t *testing.T) {
	c := CurveFor(dynamo.DefaultMotor(), dynamo.Boost)

	tests := []struct {
		name   string
		rpm    float64
		torque float64
		regime Regime
	}{
		{"rest", 0, 37, ConstantTorque},
		{"at base", 500, 37, ConstantTorque},
		{"reverse below base", -400, 37, ConstantTorque},
		{"double base", 1000, 2000 * 60 / (2 * math.Pi * 1000), ConstantPower},
		{"reverse above base", -1000, 2000 * 60 / (2 * math.Pi * 1000), ConstantPower},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, regime := c.At(tt.rpm)
			if math.Abs(got-tt.torque) > 1e-9 {
				t.Errorf("torque: expected %.6f, got %.6f", tt.torque, got)
			}
			if regime != tt.regime {
				t.Errorf("regime: expected %v, got %v", tt.regime, regime)
			}
		})
	}
}

func TestTorqueCurveContinuity(t *testing.T) {
	for _, mode := range []dynamo.Mode{dynamo.Eco, dynamo.Boost} {
		c := CurveFor(dynamo.DefaultMotor(), mode)
		eps := 1e-6
		below, _ := c.At(c.BaseRPM - eps)
		above, _ := c.At(c.BaseRPM + eps)
		if rel := math.Abs(below-above) / below; rel > dynamo.DefaultContinuityTolerance {
			t.Errorf("%s: jump at base rpm %.4f exceeds tolerance", mode, rel)
		}
		if err := c.CheckContinuity(0.05); err != nil {
			t.Errorf("%s: unexpected error: %v", mode, err)
		}
	}
}

func TestTorqueCurveDiscontinuous(t *testing.T) {
	c := TorqueCurve{Torque: 100, Power: 1000, BaseRPM: 500}
	if err := c.CheckContinuity(0.05); !errors.Is(err, dynamo.ErrDiscontinuousCurve) {
		t.Errorf("expected ErrDiscontinuousCurve, got %v", err)
	}
	if gap := c.ContinuityGap(); gap < 0.8 {
		t.Errorf("expected large gap, got %.3f", gap)
	}
}

func TestEvaluateAtRest(t *testing.T) {
	p := dynamo.DefaultParams()
	fs := Evaluate(0, 0, dynamo.Boost, p)

	if fs.RPM != 0 || fs.Drag != 0 {
		t.Errorf("expected zero rpm and drag at rest, got %v %v", fs.RPM, fs.Drag)
	}
	if fs.TotalTorque != 74 {
		t.Errorf("expected 74 Nm total torque, got %v", fs.TotalTorque)
	}
	want := (fs.Tractive - fs.Roll - fs.Climb) / p.Mass
	if fs.Accel != want {
		t.Errorf("expected accel %v, got %v", want, fs.Accel)
	}
	if math.Abs(fs.Accel-7.985662359910609) > 1e-9 {
		t.Errorf("unexpected accel %.12f", fs.Accel)
	}
}

func TestEvaluateConservation(t *testing.T) {
	p := dynamo.DefaultParams()
	for _, grad := range []float64{-90, -5, 0, 15, 60, 90} {
		for _, v := range []float64{0, 1, 5, 20, 40} {
			fs := Evaluate(v, grad, dynamo.Eco, p)
			resid := fs.Tractive - (fs.Roll + fs.Drag + fs.Climb) - fs.Net
			if math.Abs(resid) > 1e-9 {
				t.Errorf("grad=%v v=%v: residual %g", grad, v, resid)
			}
			for _, x := range []float64{fs.RPM, fs.PerMotorTorque, fs.Tractive, fs.Climb, fs.Net, fs.Accel} {
				if math.IsNaN(x) || math.IsInf(x, 0) {
					t.Fatalf("grad=%v v=%v: non-finite value in %+v", grad, v, fs)
				}
			}
		}
	}
}

func TestClimbSign(t *testing.T) {
	p := dynamo.DefaultParams()
	if Climb(10, p) <= 0 {
		t.Error("uphill climb force should be positive")
	}
	if Climb(-10, p) >= 0 {
		t.Error("downhill climb force should be negative")
	}
	if math.Abs(Climb(90, p)-p.Mass*dynamo.Gravity) > 1e-9 {
		t.Error("vertical climb should equal weight")
	}
}

func TestRollingPolicy(t *testing.T) {
	p := dynamo.DefaultParams()
	flat := Rolling(30, p, dynamo.RollingFlat)
	cos := Rolling(30, p, dynamo.RollingCosine)
	if math.Abs(flat-p.RollingResistance*p.Mass*dynamo.Gravity) > 1e-12 {
		t.Errorf("flat rolling: %v", flat)
	}
	if math.Abs(cos-flat*math.Cos(math.Pi/6)) > 1e-12 {
		t.Errorf("cosine rolling: %v", cos)
	}
}

func TestDragOpposesMotion(t *testing.T) {
	p := dynamo.DefaultParams()
	if Drag(10, p) <= 0 || Drag(-10, p) >= 0 {
		t.Error("drag must oppose direction of travel")
	}
	if math.Abs(Drag(10, p)-0.5*0.8*1.164*0.5*100) > 1e-9 {
		t.Errorf("unexpected drag %v", Drag(10, p))
	}
}

func TestMotorRPMRoundTrip(t *testing.T) {
	p := dynamo.DefaultParams()
	v := 13.7
	if got := SpeedAtMotorRPM(MotorRPM(v, p), p); math.Abs(got-v) > 1e-9 {
		t.Errorf("round trip: expected %v, got %v", v, got)
	}
}

func TestSkid(t *testing.T) {
	if Skid(dynamo.DefaultParams()) != nil {
		t.Error("wheeled EV should have no skid figures")
	}

	p := dynamo.DefaultUGVParams()
	s := Skid(p)
	force := p.Mass * dynamo.Gravity * 0.7
	if math.Abs(s.SkidForce-force) > 1e-9 {
		t.Errorf("skid force: %v", s.SkidForce)
	}
	if math.Abs(s.SkidPerWheel-force/2) > 1e-9 {
		t.Errorf("skid per powered wheel: %v", s.SkidPerWheel)
	}
	if math.Abs(s.WheelSpeed-0.15) > 1e-12 {
		t.Errorf("wheel speed: %v", s.WheelSpeed)
	}
	if math.Abs(s.PowerPerMotor-force*0.5*0.6/4) > 1e-9 {
		t.Errorf("power per motor: %v", s.PowerPerMotor)
	}
}
