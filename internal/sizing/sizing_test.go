package sizing_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/powertrain/internal/dynamo"
	"github.com/san-kum/powertrain/internal/sizing"
)

var _ = Describe("Acceleration power", func() {
	p := dynamo.DefaultParams()
	v := 50 / 3.6

	It("computes the instantaneous terms", func() {
		a := sizing.InstantAcceleration(p, v, 5)
		Expect(a.Kinetic).To(BeNumerically("~", 3281.8287, 1e-3))
		Expect(a.Drag).To(BeNumerically("~", 623.7140, 1e-3))
		Expect(a.Rolling).To(BeNumerically("~", 437.3625, 1e-3))
		Expect(a.Total).To(BeNumerically("~", a.Kinetic+a.Drag+a.Rolling, 1e-9))
	})

	It("keeps the averaged terms separate from the instantaneous ones", func() {
		avg := sizing.AveragedAcceleration(p, v, 5)
		Expect(avg.Kinetic).To(BeNumerically("~", 3415.4988, 1e-3))
		Expect(avg.Drag).To(BeNumerically("~", 249.4856, 1e-3))
		Expect(avg.Rolling).To(BeNumerically("~", 291.575, 1e-3))
		Expect(avg.Total).NotTo(BeNumerically("~", sizing.InstantAcceleration(p, v, 5).Total, 1))
	})
})

var _ = Describe("Power cascade", func() {
	It("divides by gear then motor efficiency", func() {
		c := sizing.CascadeFromWheel(950, dynamo.DefaultParams())
		Expect(c.MotorOutput).To(BeNumerically("~", 1000, 1e-9))
		Expect(c.MotorInput).To(BeNumerically("~", 1000/0.85, 1e-9))
	})
})

var _ = Describe("Requirements", func() {
	reqs := sizing.Requirements(sizing.DefaultInput())

	It("evaluates the three design scenarios", func() {
		Expect(reqs).To(HaveLen(3))
		Expect(reqs[0].Name).To(Equal(sizing.ScenarioMaxSpeed))
		Expect(reqs[0].Power.Wheel).To(BeNumerically("~", 1061.0765, 1e-3))
		Expect(reqs[0].Power.MotorInput).To(BeNumerically("~", 1314.0266, 1e-3))
		Expect(reqs[0].MotorRPM).To(BeNumerically("~", 2477.4835, 1e-3))
		Expect(reqs[0].MotorTorque).To(BeNumerically("~", 4.3051, 1e-3))
		Expect(reqs[1].Power.Wheel).To(BeNumerically("~", 1137.7662, 1e-3))
	})

	It("reports zero torque at standstill", func() {
		in := sizing.DefaultInput()
		in.Targets.SlopeSpeed = 0
		r := sizing.Requirements(in)[1]
		Expect(r.MotorRPM).To(BeZero())
		Expect(r.MotorTorque).To(BeZero())
		Expect(r.WheelTorque).To(BeZero())
	})
})

var _ = Describe("Battery", func() {
	It("applies the fixed safety margin", func() {
		c := sizing.SizeBattery(1200, 24, 2)
		Expect(c.Current).To(BeNumerically("~", 50, 1e-12))
		Expect(c.Ah).To(BeNumerically("~", 100, 1e-12))
		Expect(c.FinalAh).To(BeNumerically("~", 105, 1e-9))
	})

	It("sizes the pack for the range at max speed", func() {
		in := sizing.DefaultInput()
		a := sizing.AnalyzeBattery(in, sizing.Requirements(in)[0])
		Expect(a.Current).To(BeNumerically("~", 54.7511, 1e-3))
		Expect(a.TrueWh).To(BeNumerically("~", 1839.6373, 1e-3))
		Expect(a.TrueAh).To(BeNumerically("~", 76.6516, 1e-3))
		Expect(a.PeukertAh).To(BeNumerically("~", 77.9646, 1e-3))
		Expect(a.Weight).To(BeNumerically("~", 12.1625, 1e-3))
		Expect(a.Margin.FinalAh).To(BeNumerically("~", 114.9773, 1e-3))
	})

	It("leaves Ah unchanged when Peukert is one", func() {
		Expect(sizing.PeukertAh(80, 40, 2, 1)).To(BeNumerically("~", 80, 1e-12))
		Expect(sizing.PeukertAh(0, 40, 2, 1.05)).To(BeZero())
	})
})

var _ = Describe("Drive pattern", func() {
	pat := sizing.DrivePattern(sizing.DefaultInput())

	It("covers the whole range", func() {
		Expect(pat.Slabs).To(HaveLen(4))
		total := 0.0
		for _, s := range pat.Slabs {
			total += s.DistanceKm
		}
		Expect(total).To(BeNumerically("~", 70, 1e-9))
	})

	It("sums the slab capacities", func() {
		Expect(pat.TotalTrueAh).To(BeNumerically("~", 97.9647, 1e-3))
		Expect(pat.TotalFinalAh).To(BeNumerically("~", 103.4229, 1e-3))
		Expect(pat.Slabs[3].Climb).To(BeNumerically(">", 0))
	})
})

var _ = Describe("UGV distribution", func() {
	p := dynamo.DefaultUGVParams()
	in := sizing.DefaultInput()
	in.Params = p

	It("uses powered wheels for motors and total wheels for per-wheel figures", func() {
		reqs := sizing.Requirements(in)
		shares := sizing.Distribute(p, reqs)
		Expect(shares).To(HaveLen(3))
		Expect(shares[0].MotorPower).To(BeNumerically("~", reqs[0].Power.MotorOutput/2, 1e-9))
		Expect(shares[0].PoweredWheel).To(BeNumerically("~", reqs[0].Power.Wheel/2, 1e-9))
		Expect(shares[0].WheelPower).To(BeNumerically("~", reqs[0].Power.Wheel/4, 1e-9))
	})

	It("divides skid force by powered wheels", func() {
		tl, ok := sizing.Turning(p)
		Expect(ok).To(BeTrue())
		Expect(tl.SkidForce).To(BeNumerically("~", 1102.1535, 1e-6))
		Expect(tl.SkidPerWheel).To(BeNumerically("~", 551.07675, 1e-6))
		Expect(tl.WheelSpeed).To(BeNumerically("~", 0.15, 1e-12))
		Expect(tl.PowerPerMotor).To(BeNumerically("~", 82.6615, 1e-3))
		Expect(tl.TotalPower).To(BeNumerically("~", 165.3230, 1e-3))
		Expect(tl.WheelRPM).To(BeNumerically("~", 4.77465, 1e-4))
		Expect(tl.YawRateDeg).To(BeNumerically("~", 28.6479, 1e-3))
		Expect(tl.MotorTorque).To(BeNumerically("~", 59.0025, 1e-3))
		Expect(tl.MotorTorquePerUnit).To(BeNumerically("~", 29.5012, 1e-3))
	})

	It("has no turning load for a wheeled EV", func() {
		_, ok := sizing.Turning(dynamo.DefaultParams())
		Expect(ok).To(BeFalse())
		Expect(sizing.Distribute(dynamo.DefaultParams(), nil)).To(BeNil())
	})
})

var _ = Describe("Motor suitability", func() {
	It("accepts the default motor in boost", func() {
		s, err := sizing.CheckSuitability(sizing.DefaultInput())
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Suitable).To(BeTrue())
		Expect(s.Checks).To(HaveLen(3))
		Expect(s.Checks[0].Required).To(BeNumerically("~", 1061.0765, 1e-3))
		Expect(s.Checks[0].Available).To(BeNumerically("~", 3800, 1e-9))
		Expect(s.Checks[1].Required).To(BeNumerically("~", 22.9624, 1e-3))
		Expect(s.Checks[2].Available).To(BeNumerically("~", 1.7392, 1e-3))
	})

	It("reports the steepest climb when eco torque is short", func() {
		in := sizing.DefaultInput()
		in.Mode = dynamo.Eco
		s, err := sizing.CheckSuitability(in)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Suitable).To(BeFalse())
		Expect(s.Checks[0].Pass).To(BeTrue())
		Expect(s.Checks[1].Pass).To(BeFalse())
		Expect(s.Checks[1].Achievable).To(Equal(24.0))
		Expect(s.Checks[1].String()).To(ContainSubstring("FAIL"))
	})

	It("scans for the highest flat speed", func() {
		p := dynamo.DefaultParams()
		Expect(sizing.MaxSpeed(p, 3800)).To(Equal(84.0))
		Expect(sizing.MaxSpeed(p, 1900)).To(Equal(64.0))
		Expect(sizing.MaxGradient(p, 37, 5/3.6)).To(Equal(55.0))
	})

	It("fails an underpowered motor", func() {
		in := sizing.DefaultInput()
		in.Params.Motor.BoostPower = 300
		in.Params.Motor.BoostTorque = 2
		s, err := sizing.CheckSuitability(in)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Checks[0].Pass).To(BeFalse())
		Expect(s.Checks[0].Achievable).To(BeNumerically(">", 0))
		Expect(s.Checks[2].Pass).To(BeFalse())
	})
})

var _ = Describe("Compute", func() {
	It("bundles every output value", func() {
		rep, err := sizing.Compute(sizing.DefaultInput())
		Expect(err).NotTo(HaveOccurred())
		Expect(rep.RequiredPower).To(BeNumerically("~", 4899.7640, 1e-3))
		Expect(rep.Requirements).To(HaveLen(3))
		Expect(rep.UGV).To(BeNil())
		Expect(math.IsNaN(rep.Pattern.TotalFinalAh)).To(BeFalse())
	})

	It("adds the UGV section for tracked vehicles", func() {
		in := sizing.DefaultInput()
		in.Params = dynamo.DefaultUGVParams()
		rep, err := sizing.Compute(in)
		Expect(err).NotTo(HaveOccurred())
		Expect(rep.UGV).NotTo(BeNil())
		Expect(rep.UGV.Shares).To(HaveLen(3))
		Expect(rep.UGV.Step.LoadPerWheel).To(BeNumerically("~", 40.125, 1e-9))
		Expect(rep.UGV.Step.Torque).To(BeNumerically("~", 0.1*9.81*40.125, 1e-9))
	})

	It("rejects invalid input before computing", func() {
		in := sizing.DefaultInput()
		in.Params.WheelRadius = 0
		_, err := sizing.Compute(in)
		Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())

		in = sizing.DefaultInput()
		in.Battery.DoD = 0
		_, err = sizing.Compute(in)
		Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
	})
})
