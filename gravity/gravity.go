// Copyright © 2026 Orrery contributors.

// Package gravity provides the two GravityBackend implementations named
// in §4.2: Direct, the exact O(N²) pairwise sum, and BarnesHut, the
// O(N log N) octree approximation built on package octree.
package gravity

import (
	"math"
	"runtime"
	"sync"

	"github.com/orrery-sim/orrery"
)

// Direct computes exact pairwise gravitational acceleration. It is the
// reference backend: correct for any population, at O(N²) cost per call.
type Direct struct{}

// ComputeAccelerations overwrites every non-absorbed body's Acceleration
// with the sum of Newtonian pairwise contributions from every other
// non-absorbed body, per §4.2. Parallelized per target index i.
func (Direct) ComputeAccelerations(bodies []*orrery.Body, diag *orrery.Diagnostics) {
	active := activeIndices(bodies)
	forEachChunk(len(active), func(lo, hi int) {
		for _, i := range active[lo:hi] {
			body := bodies[i]
			accel := orrery.Zero3
			for _, j := range active {
				if j == i {
					continue
				}
				other := bodies[j]
				d := body.Position.Sub(other.Position)
				rSquared := d.LengthSquared()
				if rSquared < orrery.EpsilonDistanceSquared {
					continue
				}
				factor := -orrery.G * other.Mass / (rSquared * math.Sqrt(rSquared))
				accel = accel.Add(d.Scale(factor))
			}
			body.Acceleration = accel
		}
	})
}

func activeIndices(bodies []*orrery.Body) []int {
	idx := make([]int, 0, len(bodies))
	for i, b := range bodies {
		if !b.IsAbsorbed {
			idx = append(idx, i)
		}
	}
	return idx
}

// forEachChunk partitions [0, n) into contiguous chunks across
// runtime.GOMAXPROCS(0) workers and runs fn on each chunk, waiting for
// all of them to finish before returning (§5: disjoint writes, no
// locking needed).
func forEachChunk(n int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
