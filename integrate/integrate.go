// Copyright © 2026 Orrery contributors.

// Package integrate provides the three Integrator implementations named
// in §4.4: SemiImplicit (symplectic Euler), Leapfrog (kick-drift-kick),
// and RK4.
package integrate

import "github.com/orrery-sim/orrery"

// SemiImplicit is the symplectic Euler integrator: compute accelerations
// once, then update velocity and position from the same acceleration.
type SemiImplicit struct{}

// Step advances every non-absorbed body by subDt using symplectic Euler
// (§4.4): a = compute(bodies); v += a*dt; pos += v*dt.
func (SemiImplicit) Step(bodies []*orrery.Body, subDt float64, compute func([]*orrery.Body), diag *orrery.Diagnostics) {
	compute(bodies)
	for _, b := range bodies {
		if b.IsAbsorbed {
			continue
		}
		b.Velocity = b.Velocity.Add(b.Acceleration.Scale(subDt))
		b.Position = b.Position.Add(b.Velocity.Scale(subDt))
	}
	if diag != nil {
		diag.Steps.Inc()
	}
}

// Leapfrog is the kick-drift-kick integrator: second-order accurate,
// time-reversible, and symplectic for a fixed Δt. It is the default
// pairing with the BarnesHut backend for long-running scenes (§4.4).
type Leapfrog struct{}

// Step advances every non-absorbed body by subDt using kick-drift-kick:
// half-kick at t, full drift, recompute acceleration at t+dt, half-kick
// again.
func (Leapfrog) Step(bodies []*orrery.Body, subDt float64, compute func([]*orrery.Body), diag *orrery.Diagnostics) {
	compute(bodies)
	halfDt := subDt / 2
	for _, b := range bodies {
		if b.IsAbsorbed {
			continue
		}
		b.Velocity = b.Velocity.Add(b.Acceleration.Scale(halfDt))
		b.Position = b.Position.Add(b.Velocity.Scale(subDt))
	}
	compute(bodies)
	for _, b := range bodies {
		if b.IsAbsorbed {
			continue
		}
		b.Velocity = b.Velocity.Add(b.Acceleration.Scale(halfDt))
	}
	if diag != nil {
		diag.Steps.Inc()
	}
}
