// Copyright © 2026 Orrery contributors.

package gravity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orrery-sim/orrery"
)

func newTestBody(id uint64, x, y, z, mass float64) *orrery.Body {
	b, err := orrery.NewBody(id, orrery.NewVector3D(x, y, z), orrery.Zero3, 1, mass)
	if err != nil {
		panic(err)
	}
	return &b
}

func TestDirectTwoBodySymmetry(t *testing.T) {
	a := newTestBody(1, 0, 0, 0, 1e24)
	b := newTestBody(2, 10, 0, 0, 1e24)
	bodies := []*orrery.Body{a, b}

	Direct{}.ComputeAccelerations(bodies, nil)

	// Equal masses pull equally hard toward each other, in opposite
	// directions.
	assert.InDelta(t, a.Acceleration.Length(), b.Acceleration.Length(), 1e-20)
	assert.Greater(t, a.Acceleration.X, 0.0, "a should accelerate toward b")
	assert.Less(t, b.Acceleration.X, 0.0, "b should accelerate toward a")
}

func TestDirectSkipsAbsorbedBodies(t *testing.T) {
	a := newTestBody(1, 0, 0, 0, 1e24)
	b := newTestBody(2, 10, 0, 0, 1e24)
	b.IsAbsorbed = true
	bodies := []*orrery.Body{a, b}

	Direct{}.ComputeAccelerations(bodies, nil)

	assert.Equal(t, orrery.Zero3, a.Acceleration, "absorbed bodies must not contribute gravity")
}

func TestBarnesHutAgreesWithDirectAtAdaptiveTheta(t *testing.T) {
	var bodies []*orrery.Body
	for i := 0; i < 20; i++ {
		x := float64(i%5) * 7
		y := float64((i/5)%4) * 11
		z := float64(i) * 0.3
		bodies = append(bodies, newTestBody(uint64(i+1), x, y, z, 1e22*float64(1+i%3)))
	}

	direct := make([]*orrery.Body, len(bodies))
	for i, b := range bodies {
		clone := *b
		direct[i] = &clone
	}
	Direct{}.ComputeAccelerations(direct, nil)
	wantAccel := make([]orrery.Vector3D, len(bodies))
	for i, b := range direct {
		wantAccel[i] = b.Acceleration
	}

	bh := NewBarnesHut()
	// The backend picks theta from the population size, so N=20 runs at
	// theta=0.2 and is checked within a looser tolerance. The theta=0
	// agreement is covered at tree level by
	// octree.TestTreeAccelerationMatchesDirectAtThetaZero, and the schedule
	// itself by TestAdaptiveThetaSchedule.
	bh.ComputeAccelerations(bodies, nil)

	for i, b := range bodies {
		got := b.Acceleration
		want := wantAccel[i]
		rel := got.Distance(want) / math.Max(1e-30, want.Length())
		if rel > 0.2 {
			t.Errorf("body %d: BarnesHut accel %v too far from Direct %v (rel err %v)", b.Id, got, want, rel)
		}
	}
}

func TestAdaptiveThetaSchedule(t *testing.T) {
	cases := []struct {
		n    int
		want float64
	}{
		{1, 0}, {3, 0}, {4, 0.1}, {10, 0.1}, {11, 0.2}, {50, 0.2},
	}
	for _, c := range cases {
		bodies := make([]*orrery.Body, c.n)
		for i := range bodies {
			bodies[i] = newTestBody(uint64(i+1), float64(i), 0, 0, 1e20)
		}
		got := adaptiveTheta(bodies)
		if got != c.want {
			t.Errorf("adaptiveTheta(N=%d) = %v, want %v", c.n, got, c.want)
		}
	}
}

func TestAdaptiveThetaAboveFiftyIsBounded(t *testing.T) {
	bodies := make([]*orrery.Body, 200)
	for i := range bodies {
		bodies[i] = newTestBody(uint64(i+1), float64(i%20), float64(i/20), 0, 1e20)
	}
	theta := adaptiveTheta(bodies)
	if theta < 0.54 || theta > 1.32 {
		t.Errorf("adaptiveTheta(N=200) = %v, want within a mild band around [0.6,1.2]", theta)
	}
}
