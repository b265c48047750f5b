// Package sizing computes single-point output values for a vehicle design:
// acceleration power, per-scenario power and torque requirements, battery
// capacity, drive-pattern capacity, UGV per-motor distribution and skid-steer
// turning loads, and a pass/fail motor suitability check.
//
// None of these consume a simulation table. They are algebraic estimates
// from the same [dynamo.Params] and a set of [Targets]:
//
//	in := sizing.DefaultInput()
//	rep, err := sizing.Compute(in)
package sizing
