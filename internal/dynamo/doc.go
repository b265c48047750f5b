// Package dynamo provides the core types shared by the powertrain engine.
//
// The package defines the vocabulary every other package speaks:
//
//   - [Params]: immutable vehicle parameter snapshot (EV or UGV)
//   - [Mode]: discrete motor operating profile (Eco / Boost)
//   - [State]: integrated vector (speed, distance, energy)
//   - [System]: right-hand side dX/dt = f(X, t) of the longitudinal model
//   - [Integrator]: numerical stepper interface
//   - [Row] / [Table]: the simulation output consumed by exporters and plots
//
// # Example
//
//	p := dynamo.DefaultParams()
//	table, err := sim.New(sim.Options{}).Run(p, dynamo.RunConfig{Mode: dynamo.Boost}.WithDefaults())
//
// # Thread Safety
//
// Params and Table values are never mutated after construction and may be
// shared freely between goroutines.
package dynamo
