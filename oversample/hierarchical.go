// Copyright © 2026 Orrery contributors.

package oversample

import (
	"math"

	"github.com/orrery-sim/orrery"
	"github.com/orrery-sim/orrery/internal/pool"
)

// HierarchicalBlock is the GADGET-style power-of-two block timestep
// scheduler (§4.5): each body is binned by how many base_dt multiples it
// can tolerate, and faster bins are stepped more often than slower ones
// within one targetDt.
type HierarchicalBlock struct {
	NumBins int
	MinDt   float64
	Safety  float64
}

const hierarchicalCycleCap = 128

// binScratch holds the per-bin body buckets reused across Oversample
// calls so a stable population never reallocates its bin buffers.
type binScratch struct {
	bins [][]*orrery.Body
}

func (s *binScratch) reset() {
	for i := range s.bins {
		s.bins[i] = s.bins[i][:0]
	}
}

const binScratchPoolCapacity = 32

var binPool = pool.New[binScratch](binScratchPoolCapacity,
	func() *binScratch { return &binScratch{} },
	func(s *binScratch) { s.reset() },
	nil,
)

// Oversample implements §4.5's four-step hierarchical block procedure.
func (h HierarchicalBlock) Oversample(world *orrery.World, bodies []*orrery.Body, targetDt float64, step orrery.StepFunc, diag *orrery.Diagnostics) int {
	numBins := h.NumBins
	if numBins < 1 {
		numBins = 1
	}

	baseDt := h.baseDt(bodies, targetDt)

	scratch := binPool.Get()
	defer binPool.Put(scratch)
	if len(scratch.bins) < numBins {
		scratch.bins = make([][]*orrery.Body, numBins)
	}
	for _, b := range bodies {
		bin := binFor(b, baseDt, numBins)
		scratch.bins[bin] = append(scratch.bins[bin], b)
	}

	// Enforce the hard cycle cap (§4.5 step 3) by raising baseDt so the
	// slowest bin's cadence still covers targetDt within the cap.
	totalCycles := int(math.Ceil(targetDt / baseDt))
	if totalCycles > hierarchicalCycleCap {
		baseDt = targetDt / float64(hierarchicalCycleCap)
		totalCycles = hierarchicalCycleCap
	}
	if totalCycles < 1 {
		totalCycles = 1
	}

	steps := 0
	elapsed := 0.0
	for cycle := 0; cycle < totalCycles && elapsed < targetDt; cycle++ {
		for bin := 0; bin < numBins; bin++ {
			period := 1 << uint(bin)
			if cycle%period != 0 {
				continue
			}
			bodiesInBin := scratch.bins[bin]
			if len(bodiesInBin) == 0 {
				continue
			}
			remaining := targetDt - elapsed
			subDt := math.Min(float64(period)*baseDt, remaining)
			if subDt <= 0 {
				continue
			}
			step(bodiesInBin, subDt)
			steps++
		}
		elapsed += baseDt
	}

	recordSubsteps(diag, steps)
	return steps
}

// baseDt computes Safety times the minimum crossing time over all bodies,
// with a targetDt/16 fallback, clamped to [MinDt, targetDt]; a
// non-positive MinDt is treated as 1e-9 (§4.5 step 1).
func (h HierarchicalBlock) baseDt(bodies []*orrery.Body, targetDt float64) float64 {
	tau := minCrossingTime(bodies)
	var dt float64
	if math.IsInf(tau, 1) {
		dt = targetDt / 16
	} else {
		dt = h.Safety * tau
	}
	lowerBound := h.MinDt
	if lowerBound <= 0 {
		lowerBound = 1e-9
	}
	return orrery.Clamp(dt, lowerBound, targetDt)
}

// binFor places body b in [0, numBins) by floor(log2(requiredDt/baseDt)),
// clamped to the valid range; bodies with no finite required timestep go
// to the slowest bin (§4.5 step 2).
func binFor(b *orrery.Body, baseDt float64, numBins int) int {
	if b.IsAbsorbed || b.Radius <= 0 {
		return numBins - 1
	}
	speed := b.Velocity.Length()
	if speed <= 0 {
		return numBins - 1
	}
	required := 2 * b.Radius / speed
	if !math.IsInf(required, 0) && required > 0 {
		bin := int(math.Floor(math.Log2(required / baseDt)))
		return int(orrery.Clamp(float64(bin), 0, float64(numBins-1)))
	}
	return numBins - 1
}
