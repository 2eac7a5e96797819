// Copyright © 2026 Orrery contributors.

package orrery

import "math"

// Body is the central mutable entity simulated by the core. A Body's Id is
// assigned once at construction and never changes; every other field may
// be written by the pipeline stages (gravity writes Acceleration,
// integrators write Velocity/Position, the collision resolver writes
// Velocity and IsAbsorbed).
type Body struct {
	// Id is a stable, monotonically assigned identifier. Immutable.
	Id uint64

	Position     Vector3D `json:"Position"`
	Velocity     Vector3D `json:"v"`
	Acceleration Vector3D `json:"-"`

	// Radius and RadiusSquared are kept in lockstep: RadiusSquared always
	// equals Radius*Radius (§3 invariant). Use SetRadius to change Radius
	// so the cache stays consistent; writing Radius directly and
	// forgetting RadiusSquared is the classic way to break that invariant.
	Radius        float64 `json:"r"`
	RadiusSquared float64 `json:"-"`

	// Mass is strictly positive for any body that has not been absorbed.
	Mass float64 `json:"m"`

	// IsAbsorbed is a terminal state. Once true it is never cleared, and
	// the body must be ignored by gravity and collision passes. Removing
	// an absorbed body from the active population is World's job, not
	// Body's (§3).
	IsAbsorbed bool `json:"-"`

	// Presentational attributes. Carried through but never consulted by
	// physics.
	Color               Color
	AtmosphereColor     *Color
	AtmosphereThickness float64
	Name                *string
}

// NewBody constructs a Body with the given position, velocity, radius, and
// mass. It returns an InvalidInput error and a zero Body if mass is not
// strictly positive, radius is negative, or any component of position or
// velocity is non-finite.
func NewBody(id uint64, position, velocity Vector3D, radius, mass float64) (Body, error) {
	if mass <= 0 || math.IsNaN(mass) || math.IsInf(mass, 0) {
		return Body{}, NewInvalidInput("mass must be finite and strictly positive")
	}
	if radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return Body{}, NewInvalidInput("radius must be finite and non-negative")
	}
	if !position.IsFinite() {
		return Body{}, NewInvalidInput("position must be finite")
	}
	if !velocity.IsFinite() {
		return Body{}, NewInvalidInput("velocity must be finite")
	}
	return Body{
		Id:            id,
		Position:      position,
		Velocity:      velocity,
		Radius:        radius,
		RadiusSquared: radius * radius,
		Mass:          mass,
		Color:         Opaque(255, 255, 255),
	}, nil
}

// SetRadius updates Radius and its squared cache together.
func (b *Body) SetRadius(radius float64) { b.Radius = radius; b.RadiusSquared = radius * radius }

// Momentum returns m·v.
func (b *Body) Momentum() Vector3D { return b.Velocity.Scale(b.Mass) }

// KineticEnergy returns ½m|v|².
func (b *Body) KineticEnergy() float64 { return 0.5 * b.Mass * b.Velocity.LengthSquared() }

// AngularMomentum returns m·(r × v), the body's angular momentum about the
// origin. Used by invariant checks (§8 property 6); the core itself never
// needs the total beyond summing this per body.
func (b *Body) AngularMomentum() Vector3D {
	return b.Position.Cross(b.Velocity).Scale(b.Mass)
}

// Absorb merges other into b: b's mass grows by other's mass, b's radius
// grows so that the cube of the new radius equals the sum of the cubes of
// both radii (volume conservation), and other is marked absorbed. b's
// velocity is not touched here — callers that want momentum-conserving
// merge velocity (the collision resolver's inelastic response, §4.6.1)
// must set Velocity themselves before or after calling Absorb.
func (b *Body) Absorb(other *Body) {
	b.Mass += other.Mass
	sumCubes := b.Radius*b.Radius*b.Radius + other.Radius*other.Radius*other.Radius
	b.SetRadius(math.Cbrt(sumCubes))
	other.IsAbsorbed = true
}
