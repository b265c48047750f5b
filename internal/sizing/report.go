package sizing

// Report bundles every output value for one design.
type Report struct {
	Forces        TargetForces    `json:"forces"`
	Instant       AccelPower      `json:"instant_acceleration"`
	Averaged      AccelPower      `json:"averaged_acceleration"`
	RequiredPower float64         `json:"required_power"` // W, averaged at the motor input
	Requirements  []Requirement   `json:"requirements"`
	Battery       BatteryAnalysis `json:"battery"`
	Pattern       Pattern         `json:"pattern"`
	UGV           *UGVReport      `json:"ugv,omitempty"`
}

func Compute(in Input) (*Report, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, t := in.Params, in.Targets
	vEnd := kmh(t.AccelEndSpeed)

	rep := &Report{
		Forces:       ForcesAtTargets(p, t),
		Instant:      InstantAcceleration(p, vEnd, t.AccelPeriod),
		Averaged:     AveragedAcceleration(p, vEnd, t.AccelPeriod),
		Requirements: Requirements(in),
		Pattern:      DrivePattern(in),
	}
	rep.RequiredPower = rep.Averaged.Total / (p.GearEfficiency * p.MotorEfficiency)
	rep.Battery = AnalyzeBattery(in, rep.Requirements[0])

	if turning, ok := Turning(p); ok {
		rep.UGV = &UGVReport{
			Shares:  Distribute(p, rep.Requirements),
			Turning: turning,
			Step:    StepClimb(p),
		}
	}
	return rep, nil
}
