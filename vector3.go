// Copyright © 2026 Orrery contributors.

package orrery

// vector3.go provides the double precision 3D vector used throughout the
// simulation core. Unlike the mutate-through-pointer vectors found in most
// vu-family math libraries, Vector3D is a plain value: every method returns
// a new Vector3D rather than writing through a receiver. The core hands
// body positions and velocities to many goroutines during the parallel
// force-computation stage (package gravity), so a vector that could be
// mutated in place by one caller while another reads it would race.

import "math"

// Vector3D is an immutable triple of double-precision reals.
type Vector3D struct {
	X, Y, Z float64
}

// Zero3 is the additive identity.
var Zero3 = Vector3D{}

// NewVector3D builds a vector from its three components.
func NewVector3D(x, y, z float64) Vector3D { return Vector3D{X: x, Y: y, Z: z} }

// Add returns v + o.
func (v Vector3D) Add(o Vector3D) Vector3D {
	return Vector3D{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3D) Sub(o Vector3D) Vector3D {
	return Vector3D{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by the scalar s.
func (v Vector3D) Scale(s float64) Vector3D {
	return Vector3D{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns the additive inverse of v.
func (v Vector3D) Neg() Vector3D { return Vector3D{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product of v and o.
func (v Vector3D) Dot(o Vector3D) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v × o.
func (v Vector3D) Cross(o Vector3D) Vector3D {
	return Vector3D{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// LengthSquared returns |v|². Always non-negative.
func (v Vector3D) LengthSquared() float64 { return v.Dot(v) }

// Length returns |v|.
func (v Vector3D) Length() float64 { return math.Sqrt(v.LengthSquared()) }

// Normalized returns v scaled to unit length. Returns Zero3 for a
// zero-length vector rather than producing NaN components — callers
// that need to distinguish the degenerate case should check LengthSquared
// first. The octree's touch-radius clamp relies on this result: two
// coincident centers give a zero offset and so contribute no force (§7
// NumericalDegenerate).
func (v Vector3D) Normalized() Vector3D {
	l := v.Length()
	if l == 0 {
		return Zero3
	}
	return v.Scale(1 / l)
}

// Distance returns the Euclidean distance between v and o.
func (v Vector3D) Distance(o Vector3D) float64 { return v.Sub(o).Length() }

// DistanceSquared returns the squared Euclidean distance between v and o,
// avoiding the square root when only comparisons are needed.
func (v Vector3D) DistanceSquared(o Vector3D) float64 { return v.Sub(o).LengthSquared() }

// Lerp returns the linear interpolation from v to o at the given fraction.
func (v Vector3D) Lerp(o Vector3D, fraction float64) Vector3D {
	return v.Add(o.Sub(v).Scale(fraction))
}

// IsFinite reports whether all three components are finite (not NaN, not Inf).
func (v Vector3D) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
