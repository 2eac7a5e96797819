// Copyright © 2026 Orrery contributors.

package orrery

// G is the Newtonian gravitational constant, bit-exact per §6.
const G = 6.67430e-11
