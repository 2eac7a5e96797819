// Copyright © 2026 Orrery contributors.

package orrery

import (
	"math"
	"testing"
)

func TestNewBodyValidation(t *testing.T) {
	if _, err := NewBody(1, Zero3, Zero3, 1, 0); err == nil {
		t.Error("expected InvalidInput for zero mass")
	}
	if _, err := NewBody(1, Zero3, Zero3, 1, -1); err == nil {
		t.Error("expected InvalidInput for negative mass")
	}
	if _, err := NewBody(1, Zero3, Zero3, -1, 1); err == nil {
		t.Error("expected InvalidInput for negative radius")
	}
	if _, err := NewBody(1, NewVector3D(math.NaN(), 0, 0), Zero3, 1, 1); err == nil {
		t.Error("expected InvalidInput for non-finite position")
	}
	_, err := NewBody(1, Zero3, Zero3, 1, 0)
	if kind, ok := KindOf(err); !ok || kind != InvalidInput {
		t.Errorf("expected InvalidInput kind, got %v", kind)
	}
}

func TestBodyMomentumAndEnergy(t *testing.T) {
	b, err := NewBody(1, Zero3, NewVector3D(3, 4, 0), 1, 2)
	if err != nil {
		t.Fatalf("NewBody: %v", err)
	}
	if got := b.Momentum(); got != NewVector3D(6, 8, 0) {
		t.Errorf("Momentum() = %v, want {6 8 0}", got)
	}
	want := 0.5 * 2 * 25.0
	if got := b.KineticEnergy(); !AlmostEqual(got, want, 1e-9) {
		t.Errorf("KineticEnergy() = %v, want %v", got, want)
	}
}

func TestBodyAbsorbConservesVolumeAndMass(t *testing.T) {
	a, _ := NewBody(1, Zero3, Zero3, 2, 10)
	b, _ := NewBody(2, NewVector3D(1, 0, 0), Zero3, 3, 5)

	a.Absorb(&b)

	if a.Mass != 15 {
		t.Errorf("Mass after absorb = %v, want 15", a.Mass)
	}
	if !b.IsAbsorbed {
		t.Error("absorbed body should have IsAbsorbed set")
	}
	wantRadius := math.Cbrt(2*2*2 + 3*3*3)
	if !AlmostEqual(a.Radius, wantRadius, 1e-9) {
		t.Errorf("Radius after absorb = %v, want %v", a.Radius, wantRadius)
	}
	if !AlmostEqual(a.RadiusSquared, a.Radius*a.Radius, 1e-12) {
		t.Error("RadiusSquared invariant broken after Absorb")
	}
}

func TestBodyAbsorbNeverClearsIsAbsorbed(t *testing.T) {
	b, _ := NewBody(1, Zero3, Zero3, 1, 1)
	b.IsAbsorbed = true
	other, _ := NewBody(2, Zero3, Zero3, 1, 1)
	b.Absorb(&other)
	if !b.IsAbsorbed {
		t.Error("IsAbsorbed must never be cleared")
	}
}
