// Copyright © 2026 Orrery contributors.

package orrery

// mathutil.go carries the handful of scalar helpers the pipeline stages
// need. Adapted from the Clamp/Aeq helpers in a vu-family math/lin
// package; the quaternion, matrix, and transform parts of that library are
// not ported here since rigid-body rotation is a non-goal (§1).

import "math"

// EpsilonDistanceSquared is the squared-distance gate used when two body
// centers are numerically coincident (§6 physical constants).
const EpsilonDistanceSquared = 1e-24

// EpsilonSeparation is the minimum separation used to avoid a singular
// normal when resolving an overlapping collision pair (§6).
const EpsilonSeparation = 1e-10

// Clamp constrains s to the closed interval [lb, ub].
func Clamp(s, lb, ub float64) float64 {
	switch {
	case s < lb:
		return lb
	case s > ub:
		return ub
	}
	return s
}

// AlmostEqual reports whether a and b differ by less than the given
// tolerance.
func AlmostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}
