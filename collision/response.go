// Copyright © 2026 Orrery contributors.

package collision

import (
	"math"

	"github.com/orrery-sim/orrery"
)

// handleCollision implements §4.6.1's pair response. It returns true if
// the pair actually produced a response (not a no-op / stale pair), for
// diagnostics counting.
func handleCollision(b1, b2 *orrery.Body, elastic bool) bool {
	if b1.IsAbsorbed || b2.IsAbsorbed {
		return false
	}

	d := b1.Position.Sub(b2.Position)
	touch := b1.Radius + b2.Radius
	rSquared := d.LengthSquared()
	if rSquared >= touch*touch {
		return false // stale pair
	}

	r := math.Max(math.Sqrt(rSquared), orrery.EpsilonSeparation)
	normal := d.Scale(1 / r)

	if elastic {
		return resolveElastic(b1, b2, normal)
	}
	resolveMerge(b1, b2)
	return true
}

// resolveElastic applies the standard 1D impulse along normal. Does not
// separate overlapping bodies — separation would inject potential
// energy without removing kinetic energy and would drift the system;
// the gravity backend's singular-distance clamp (§4.3) handles the
// overlap instead.
func resolveElastic(b1, b2 *orrery.Body, normal orrery.Vector3D) bool {
	relativeVelocity := b1.Velocity.Sub(b2.Velocity)
	along := relativeVelocity.Dot(normal)
	if along >= 0 {
		return false // separating already
	}

	impulse := -2 * along / (1/b1.Mass + 1/b2.Mass)
	b1.Velocity = b1.Velocity.Add(normal.Scale(impulse / b1.Mass))
	b2.Velocity = b2.Velocity.Sub(normal.Scale(impulse / b2.Mass))
	return true
}

// resolveMerge absorbs the lighter body into the heavier one (ties
// broken in favor of b1), with the combined velocity conserving
// momentum.
func resolveMerge(b1, b2 *orrery.Body) {
	totalMass := b1.Mass + b2.Mass
	merged := b1.Velocity.Scale(b1.Mass).Add(b2.Velocity.Scale(b2.Mass)).Scale(1 / totalMass)

	absorber, absorbed := b1, b2
	if b2.Mass > b1.Mass {
		absorber, absorbed = b2, b1
	}
	absorber.Absorb(absorbed)
	absorber.Velocity = merged
}
