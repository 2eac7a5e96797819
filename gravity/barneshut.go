// Copyright © 2026 Orrery contributors.

package gravity

import (
	"log/slog"
	"math"

	"github.com/orrery-sim/orrery"
	"github.com/orrery-sim/orrery/octree"
)

// sampleSize bounds how many of the first bodies are sampled to estimate
// the minimum pairwise separation used by the geometry factor (§4.3).
const sampleSize = 8

// BarnesHut is the O(N log N) approximate gravity backend: it builds an
// octree once per call and queries it once per active body with an
// opening angle chosen adaptively from the population size.
type BarnesHut struct {
	tree *octree.Tree
}

// NewBarnesHut constructs a BarnesHut backend with its own octree
// instance, reused (rented and released) across calls.
func NewBarnesHut() *BarnesHut {
	return &BarnesHut{tree: octree.New()}
}

// ComputeAccelerations builds the octree over the active population and
// queries it once per non-absorbed body, per §4.2/§4.3.
func (g *BarnesHut) ComputeAccelerations(bodies []*orrery.Body, diag *orrery.Diagnostics) {
	diag = noopIfNil(diag)
	active := activeBodies(bodies)
	if len(active) == 0 {
		return
	}

	g.tree.Build(active, diag)
	defer g.tree.Release()

	theta := adaptiveTheta(active)

	forEachChunk(len(active), func(lo, hi int) {
		for _, b := range active[lo:hi] {
			b.Acceleration = g.tree.Acceleration(b, theta, diag)
		}
	})

	slog.Debug("barneshut pass complete", "bodies", len(active), "theta", theta)
}

func activeBodies(bodies []*orrery.Body) []*orrery.Body {
	active := make([]*orrery.Body, 0, len(bodies))
	for _, b := range bodies {
		if !b.IsAbsorbed {
			active = append(active, b)
		}
	}
	return active
}

func noopIfNil(d *orrery.Diagnostics) *orrery.Diagnostics {
	if d != nil {
		return d
	}
	return orrery.NewDiagnostics()
}

// adaptiveTheta chooses the opening angle per §4.3's schedule, scaled for
// N > 50 by a geometry factor derived from the ratio of the minimum
// sampled pair separation to the population's maximum box extent.
func adaptiveTheta(bodies []*orrery.Body) float64 {
	n := len(bodies)
	switch {
	case n <= 3:
		return 0
	case n <= 10:
		return 0.1
	case n <= 50:
		return 0.2
	}

	base := orrery.Clamp(0.62+0.22*math.Log10(float64(n)), 0.6, 1.2)
	return base * geometryFactor(bodies)
}

// geometryFactor samples the first few bodies' pairwise separations and
// the population's bounding box to derive a mild [0.9, 1.1] correction of
// 0.9 + 0.2*ratio: tightly packed populations (small min separation
// relative to the box) tighten the angle toward 0.9x for accuracy; sparse
// ones open it toward 1.1x to save work.
func geometryFactor(bodies []*orrery.Body) float64 {
	sampleN := sampleSize
	if sampleN > len(bodies) {
		sampleN = len(bodies)
	}
	sample := bodies[:sampleN]

	minSeparation := math.Inf(1)
	for i := 0; i < len(sample); i++ {
		for j := i + 1; j < len(sample); j++ {
			d := sample[i].Position.Distance(sample[j].Position)
			if d > 0 && d < minSeparation {
				minSeparation = d
			}
		}
	}
	if math.IsInf(minSeparation, 1) {
		return 1.0
	}

	min, max := bodies[0].Position, bodies[0].Position
	for _, b := range bodies[1:] {
		p := b.Position
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	extent := max.Sub(min)
	maxExtent := math.Max(extent.X, math.Max(extent.Y, extent.Z))
	if maxExtent <= 0 {
		return 1.0
	}

	ratio := minSeparation / maxExtent
	return orrery.Clamp(0.9+0.2*ratio, 0.9, 1.1)
}
