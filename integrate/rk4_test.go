// Copyright © 2026 Orrery contributors.

package integrate

import (
	"testing"

	"github.com/orrery-sim/orrery"
)

func TestRK4FreeDriftIsExact(t *testing.T) {
	b := newFreeBody(1, orrery.Zero3, orrery.NewVector3D(2, 0, 0))
	bodies := []*orrery.Body{b}

	RK4{}.Step(bodies, 3, zeroGravity, nil)

	want := orrery.NewVector3D(6, 0, 0)
	if b.Position != want {
		t.Errorf("Position = %v, want %v (RK4 is exact for uniform motion)", b.Position, want)
	}
}

func TestRK4ConstantAccelerationMatchesKinematics(t *testing.T) {
	b := newFreeBody(1, orrery.Zero3, orrery.Zero3)
	bodies := []*orrery.Body{b}
	accel := orrery.NewVector3D(0, -9.8, 0)
	compute := func(bs []*orrery.Body) {
		for _, body := range bs {
			body.Acceleration = accel
		}
	}

	const dt = 1.0
	RK4{}.Step(bodies, dt, compute, nil)

	wantY := 0.5 * accel.Y * dt * dt
	if diff := b.Position.Y - wantY; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Position.Y = %v, want %v (RK4 exact for constant acceleration)", b.Position.Y, wantY)
	}
	wantVy := accel.Y * dt
	if diff := b.Velocity.Y - wantVy; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Velocity.Y = %v, want %v", b.Velocity.Y, wantVy)
	}
}

func TestRK4ScratchPoolReuseAcrossDifferingPopulationSizes(t *testing.T) {
	small := []*orrery.Body{newFreeBody(1, orrery.Zero3, orrery.Zero3)}
	large := make([]*orrery.Body, 50)
	for i := range large {
		large[i] = newFreeBody(uint64(i+1), orrery.Zero3, orrery.NewVector3D(1, 0, 0))
	}

	RK4{}.Step(small, 1, zeroGravity, nil)
	RK4{}.Step(large, 1, zeroGravity, nil)
	RK4{}.Step(small, 1, zeroGravity, nil)

	for _, b := range large {
		if b.Position != orrery.NewVector3D(1, 0, 0) {
			t.Errorf("large population body drifted incorrectly: %v", b.Position)
		}
	}
}

func TestRK4SkipsAbsorbedBodies(t *testing.T) {
	b := newFreeBody(1, orrery.Zero3, orrery.NewVector3D(5, 0, 0))
	b.IsAbsorbed = true
	bodies := []*orrery.Body{b}

	RK4{}.Step(bodies, 1, zeroGravity, nil)

	if b.Position != orrery.Zero3 {
		t.Errorf("absorbed body should not move, got %v", b.Position)
	}
}
