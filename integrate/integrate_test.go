// Copyright © 2026 Orrery contributors.

package integrate

import (
	"testing"

	"github.com/orrery-sim/orrery"
)

func newFreeBody(id uint64, pos, vel orrery.Vector3D) *orrery.Body {
	b, err := orrery.NewBody(id, pos, vel, 1, 1)
	if err != nil {
		panic(err)
	}
	return &b
}

// zeroGravity leaves every body's Acceleration at Zero3, isolating the
// integrator's own kinematics from any force model.
func zeroGravity(bodies []*orrery.Body) {
	for _, b := range bodies {
		b.Acceleration = orrery.Zero3
	}
}

func TestSemiImplicitFreeDrift(t *testing.T) {
	b := newFreeBody(1, orrery.Zero3, orrery.NewVector3D(1, 0, 0))
	bodies := []*orrery.Body{b}

	SemiImplicit{}.Step(bodies, 2, zeroGravity, nil)

	want := orrery.NewVector3D(2, 0, 0)
	if b.Position != want {
		t.Errorf("Position = %v, want %v", b.Position, want)
	}
}

func TestSemiImplicitSkipsAbsorbedBodies(t *testing.T) {
	b := newFreeBody(1, orrery.Zero3, orrery.NewVector3D(1, 0, 0))
	b.IsAbsorbed = true
	bodies := []*orrery.Body{b}

	SemiImplicit{}.Step(bodies, 5, zeroGravity, nil)

	if b.Position != orrery.Zero3 {
		t.Errorf("absorbed body should not move, got %v", b.Position)
	}
}

func TestLeapfrogConstantAccelerationMatchesKinematics(t *testing.T) {
	b := newFreeBody(1, orrery.Zero3, orrery.Zero3)
	bodies := []*orrery.Body{b}
	accel := orrery.NewVector3D(0, -9.8, 0)
	compute := func(bs []*orrery.Body) {
		for _, body := range bs {
			body.Acceleration = accel
		}
	}

	const dt = 0.1
	const steps = 10
	for i := 0; i < steps; i++ {
		Leapfrog{}.Step(bodies, dt, compute, nil)
	}

	totalT := dt * steps
	wantY := 0.5 * accel.Y * totalT * totalT
	if diff := b.Position.Y - wantY; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("Position.Y = %v, want close to %v (kinematic analytic)", b.Position.Y, wantY)
	}
}

func TestLeapfrogCallsComputeTwicePerStep(t *testing.T) {
	b := newFreeBody(1, orrery.Zero3, orrery.Zero3)
	bodies := []*orrery.Body{b}
	calls := 0
	compute := func(bs []*orrery.Body) { calls++ }

	Leapfrog{}.Step(bodies, 1, compute, nil)

	if calls != 2 {
		t.Errorf("Leapfrog should call compute twice per step (a at t, a at t+dt), got %d", calls)
	}
}
