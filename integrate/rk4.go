// Copyright © 2026 Orrery contributors.

package integrate

import (
	"github.com/orrery-sim/orrery"
	"github.com/orrery-sim/orrery/internal/pool"
)

// rk4Scratch holds the intermediate (pos, v) slots RK4 needs per call:
// the saved t0 state and the four k-stages for both position and
// velocity. Slices are grown (never shrunk) on reuse so a population
// that only gets bigger never reallocates.
type rk4Scratch struct {
	pos0, v0                   []orrery.Vector3D
	kPos1, kPos2, kPos3, kPos4 []orrery.Vector3D
	kVel1, kVel2, kVel3, kVel4 []orrery.Vector3D
}

func (s *rk4Scratch) reset() {
	s.pos0 = s.pos0[:0]
	s.v0 = s.v0[:0]
	s.kPos1, s.kPos2, s.kPos3, s.kPos4 = s.kPos1[:0], s.kPos2[:0], s.kPos3[:0], s.kPos4[:0]
	s.kVel1, s.kVel2, s.kVel3, s.kVel4 = s.kVel1[:0], s.kVel2[:0], s.kVel3[:0], s.kVel4[:0]
}

func (s *rk4Scratch) grow(n int) {
	s.pos0 = growTo(s.pos0, n)
	s.v0 = growTo(s.v0, n)
	s.kPos1 = growTo(s.kPos1, n)
	s.kPos2 = growTo(s.kPos2, n)
	s.kPos3 = growTo(s.kPos3, n)
	s.kPos4 = growTo(s.kPos4, n)
	s.kVel1 = growTo(s.kVel1, n)
	s.kVel2 = growTo(s.kVel2, n)
	s.kVel3 = growTo(s.kVel3, n)
	s.kVel4 = growTo(s.kVel4, n)
}

func growTo(s []orrery.Vector3D, n int) []orrery.Vector3D {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]orrery.Vector3D, n)
}

// rk4PoolCapacity bounds how many scratch buffers stay resident between
// calls; a library embedding multiple concurrently-stepping engines
// rents one scratch buffer per concurrent RK4 step in flight.
const rk4PoolCapacity = 64

var rk4Pool = pool.New[rk4Scratch](rk4PoolCapacity,
	func() *rk4Scratch { return &rk4Scratch{} },
	func(s *rk4Scratch) { s.reset() },
	nil,
)

// RK4 is the standard four-stage Runge-Kutta integrator over (pos, v),
// per §4.4: it samples acceleration at t, t+dt/2 (twice, from
// intermediate states), and t+dt.
type RK4 struct{}

// Step advances every non-absorbed body by subDt using classical RK4.
// Intermediate state is rented from a pooled allocator and returned by a
// deferred Put on every exit path, including a panic raised by compute.
func (RK4) Step(bodies []*orrery.Body, subDt float64, compute func([]*orrery.Body), diag *orrery.Diagnostics) {
	scratch := rk4Pool.Get()
	defer rk4Pool.Put(scratch)
	scratch.grow(len(bodies))

	for i, b := range bodies {
		scratch.pos0[i] = b.Position
		scratch.v0[i] = b.Velocity
	}

	// k1 at t.
	compute(bodies)
	for i, b := range bodies {
		if b.IsAbsorbed {
			continue
		}
		scratch.kVel1[i] = b.Acceleration
		scratch.kPos1[i] = b.Velocity
	}

	// k2 at t + dt/2, from state advanced by k1.
	half := subDt / 2
	for i, b := range bodies {
		if b.IsAbsorbed {
			continue
		}
		b.Position = scratch.pos0[i].Add(scratch.kPos1[i].Scale(half))
		b.Velocity = scratch.v0[i].Add(scratch.kVel1[i].Scale(half))
	}
	compute(bodies)
	for i, b := range bodies {
		if b.IsAbsorbed {
			continue
		}
		scratch.kVel2[i] = b.Acceleration
		scratch.kPos2[i] = b.Velocity
	}

	// k3 at t + dt/2, from state advanced by k2.
	for i, b := range bodies {
		if b.IsAbsorbed {
			continue
		}
		b.Position = scratch.pos0[i].Add(scratch.kPos2[i].Scale(half))
		b.Velocity = scratch.v0[i].Add(scratch.kVel2[i].Scale(half))
	}
	compute(bodies)
	for i, b := range bodies {
		if b.IsAbsorbed {
			continue
		}
		scratch.kVel3[i] = b.Acceleration
		scratch.kPos3[i] = b.Velocity
	}

	// k4 at t + dt, from state advanced by k3.
	for i, b := range bodies {
		if b.IsAbsorbed {
			continue
		}
		b.Position = scratch.pos0[i].Add(scratch.kPos3[i].Scale(subDt))
		b.Velocity = scratch.v0[i].Add(scratch.kVel3[i].Scale(subDt))
	}
	compute(bodies)
	for i, b := range bodies {
		if b.IsAbsorbed {
			continue
		}
		scratch.kVel4[i] = b.Acceleration
		scratch.kPos4[i] = b.Velocity
	}

	// Weighted combination: y(t+dt) = y0 + dt/6*(k1 + 2k2 + 2k3 + k4).
	for i, b := range bodies {
		if b.IsAbsorbed {
			continue
		}
		posSum := scratch.kPos1[i].
			Add(scratch.kPos2[i].Scale(2)).
			Add(scratch.kPos3[i].Scale(2)).
			Add(scratch.kPos4[i])
		velSum := scratch.kVel1[i].
			Add(scratch.kVel2[i].Scale(2)).
			Add(scratch.kVel3[i].Scale(2)).
			Add(scratch.kVel4[i])
		b.Position = scratch.pos0[i].Add(posSum.Scale(subDt / 6))
		b.Velocity = scratch.v0[i].Add(velSum.Scale(subDt / 6))
	}

	if diag != nil {
		diag.Steps.Inc()
	}
}
