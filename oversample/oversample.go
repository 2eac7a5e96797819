// Copyright © 2026 Orrery contributors.

// Package oversample provides the three Oversampler implementations
// named in §4.5: Static, MinDiameterCrossingTime, and HierarchicalBlock.
package oversample

import (
	"math"

	"github.com/orrery-sim/orrery"
)

// Static divides targetDt into a fixed number of equal substeps.
type Static struct {
	K int
}

// Oversample calls step k times with targetDt/k, per §4.5.
func (s Static) Oversample(world *orrery.World, bodies []*orrery.Body, targetDt float64, step orrery.StepFunc, diag *orrery.Diagnostics) int {
	k := s.K
	if k < 1 {
		k = 1
	}
	subDt := targetDt / float64(k)
	for i := 0; i < k; i++ {
		step(bodies, subDt)
	}
	recordSubsteps(diag, k)
	return k
}

// MinDiameterCrossingTime adaptively subdivides targetDt from the
// minimum body crossing time 2r/|v| observed each iteration, per §4.5.
type MinDiameterCrossingTime struct {
	MaxSteps int
	MinDt    float64
	Safety   float64
}

// Oversample loops, recomputing the crossing-time bound each iteration,
// until targetDt has been consumed or the (timescale-scaled) step cap is
// reached.
func (m MinDiameterCrossingTime) Oversample(world *orrery.World, bodies []*orrery.Body, targetDt float64, step orrery.StepFunc, diag *orrery.Diagnostics) int {
	maxSteps := effectiveMaxSteps(m.MaxSteps, world.Timescale)
	remaining := targetDt
	steps := 0
	for remaining > 0 && steps < maxSteps {
		tau := minCrossingTime(bodies)
		var subDt float64
		if math.IsInf(tau, 1) {
			subDt = remaining
		} else {
			subDt = math.Max(m.MinDt, math.Min(remaining, m.Safety*tau))
		}
		if subDt <= 0 {
			subDt = remaining
		}
		step(bodies, subDt)
		remaining -= subDt
		steps++
	}
	recordSubsteps(diag, steps)
	return steps
}

// minCrossingTime returns the minimum 2r/|v| over non-absorbed bodies
// with both r > 0 and |v| > 0, or +Inf if no body qualifies.
func minCrossingTime(bodies []*orrery.Body) float64 {
	min := math.Inf(1)
	for _, b := range bodies {
		if b.IsAbsorbed || b.Radius <= 0 {
			continue
		}
		speed := b.Velocity.Length()
		if speed <= 0 {
			continue
		}
		tau := 2 * b.Radius / speed
		if tau < min {
			min = tau
		}
	}
	return min
}

const hardStepCap = 4096

func effectiveMaxSteps(maxSteps int, timescale float64) int {
	scale := math.Max(1, timescale)
	n := int(float64(maxSteps) * scale)
	if n > hardStepCap {
		return hardStepCap
	}
	if n < 1 {
		return 1
	}
	return n
}

func recordSubsteps(diag *orrery.Diagnostics, n int) {
	if diag != nil && n > 0 {
		diag.Substeps.Add(float64(n))
	}
}
