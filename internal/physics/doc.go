// Package physics provides the force and torque model of an electrically
// driven vehicle.
//
// Everything here is a pure function of the instantaneous speed, the road
// gradient, the operating mode and an immutable [dynamo.Params] snapshot:
//
//   - [TorqueCurve]: two-regime motor torque (constant torque, then constant power)
//   - [MotorRPM], [Drag], [Rolling], [Climb], [Tractive]: the individual terms
//   - [Model]: evaluates every term at once into a [ForceSet]
//   - [Skid]: constant skid-steer figures for tracked vehicles
//
// # Sign Conventions
//
// Resistive forces are positive when they oppose forward motion. A negative
// gradient yields a negative climb force that assists the vehicle:
//
//	fs := physics.Evaluate(v, -5, dynamo.Boost, params)
//	// fs.Climb < 0, fs.Net = fs.Tractive - fs.Resistance
package physics
