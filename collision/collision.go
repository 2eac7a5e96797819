// Copyright © 2026 Orrery contributors.

// Package collision implements the uniform-grid CollisionResolver named
// in §4.6: a persistent spatial hash with sparse clearing and
// half-space pair deduplication, plus the elastic/merge pair response
// of §4.6.1.
package collision

import (
	"math"
	"sort"

	"github.com/orrery-sim/orrery"
)

// DefaultScale is the cell-size multiplier used when Resolver.Scale is
// left at its zero value (§4.6: "scale ≈ 2.0").
const DefaultScale = 2.0

// Resolver is the uniform-grid broadphase collision resolver. Its
// bucket storage is persistent across Resolve calls: only cells touched
// by the previous call are cleared, per §4.6 step 2's sparse-clear note.
type Resolver struct {
	// Scale multiplies 2*base_r to get the cell size (§4.6). Defaults to
	// DefaultScale when zero.
	Scale float64

	buckets   map[int][]int
	usedCells []int
}

// NewResolver returns a Resolver with DefaultScale.
func NewResolver() *Resolver {
	return &Resolver{Scale: DefaultScale, buckets: make(map[int][]int)}
}

// Resolve detects overlapping non-absorbed body pairs and applies the
// elastic or merge response selected by world.ElasticCollisions, per
// §4.6/§4.6.1. The resolver is single-threaded within one call (§5): the
// grid structure is persistent and mutated sparsely.
func (r *Resolver) Resolve(world *orrery.World, bodies []*orrery.Body, diag *orrery.Diagnostics) {
	if r.Scale <= 0 {
		r.Scale = DefaultScale
	}
	if r.buckets == nil {
		r.buckets = make(map[int][]int)
	}

	active := make([]int, 0, len(bodies))
	for i, b := range bodies {
		if !b.IsAbsorbed {
			active = append(active, i)
		}
	}
	if len(active) < 2 {
		r.clearUsed()
		return
	}

	minP, maxP, rMax := bounds(bodies, active)
	cellSize := r.cellSize(bodies, active, rMax)
	cols, rows, depths := gridDims(minP, maxP, cellSize)

	key := func(p orrery.Vector3D) (int, int, int, int) {
		x := int((p.X - minP.X) / cellSize)
		y := int((p.Y - minP.Y) / cellSize)
		z := int((p.Z - minP.Z) / cellSize)
		x = clampInt(x, 0, cols-1)
		y = clampInt(y, 0, rows-1)
		z = clampInt(z, 0, depths-1)
		return x, y, z, z*cols*rows + y*cols + x
	}

	r.clearUsed()
	cellOf := make([]int, len(bodies))
	cellXYZ := make([][3]int, len(bodies))
	for _, i := range active {
		x, y, z, k := key(bodies[i].Position)
		cellOf[i] = k
		cellXYZ[i] = [3]int{x, y, z}
		r.buckets[k] = append(r.buckets[k], i)
		r.usedCells = append(r.usedCells, k)
	}

	checks := 0
	resolved := 0
	absorbed := 0
	for _, i := range active {
		body := bodies[i]
		cx, cy, cz := cellXYZ[i][0], cellXYZ[i][1], cellXYZ[i][2]
		reach := int(math.Ceil(body.Radius/cellSize)) + 1

		for dz := -reach; dz <= reach; dz++ {
			z := cz + dz
			if z < 0 || z >= depths {
				continue
			}
			for dy := -reach; dy <= reach; dy++ {
				y := cy + dy
				if y < 0 || y >= rows {
					continue
				}
				for dx := -reach; dx <= reach; dx++ {
					x := cx + dx
					if x < 0 || x >= cols {
						continue
					}
					if lexBefore(z, y, x, cz, cy, cx) {
						continue
					}
					k := z*cols*rows + y*cols + x
					for _, j := range r.buckets[k] {
						if k == cellOf[i] && j <= i {
							continue
						}
						if j == i {
							continue
						}
						other := bodies[j]
						checks++
						if !withinAABB(body, other) {
							continue
						}
						d := body.Position.Sub(other.Position)
						touch := body.Radius + other.Radius
						if d.LengthSquared() > touch*touch {
							continue
						}
						if handleCollision(body, other, world.ElasticCollisions) {
							resolved++
							if !world.ElasticCollisions {
								absorbed++
							}
						}
					}
				}
			}
		}
	}

	if diag != nil {
		if checks > 0 {
			diag.CollisionChecks.Add(float64(checks))
		}
		if resolved > 0 {
			diag.CollisionsResolved.Add(float64(resolved))
		}
		if absorbed > 0 {
			diag.Absorptions.Add(float64(absorbed))
		}
	}
}

func (r *Resolver) clearUsed() {
	for _, k := range r.usedCells {
		delete(r.buckets, k)
	}
	r.usedCells = r.usedCells[:0]
}

// lexBefore reports whether cell (z,y,x) sorts strictly before (cz,cy,cx)
// in (z, y, x) lexicographic order — the half-space dedup test of §4.6
// step 4.
func lexBefore(z, y, x, cz, cy, cx int) bool {
	if z != cz {
		return z < cz
	}
	if y != cy {
		return y < cy
	}
	return x < cx
}

func withinAABB(a, b *orrery.Body) bool {
	touch := a.Radius + b.Radius
	d := a.Position.Sub(b.Position)
	return math.Abs(d.X) <= touch && math.Abs(d.Y) <= touch && math.Abs(d.Z) <= touch
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func bounds(bodies []*orrery.Body, active []int) (min, max orrery.Vector3D, rMax float64) {
	first := bodies[active[0]].Position
	min, max = first, first
	for _, i := range active {
		b := bodies[i]
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
		if b.Radius > rMax {
			rMax = b.Radius
		}
	}
	return min, max, rMax
}

// cellSize derives the grid cell size from a sampled median radius and
// the maximum radius, per §4.6: cell_size = max(eps, 2*scale*base_r),
// base_r = min(r_max, max(median_r, 0.25*r_max)).
func (r *Resolver) cellSize(bodies []*orrery.Body, active []int, rMax float64) float64 {
	radii := make([]float64, len(active))
	for i, idx := range active {
		radii[i] = bodies[idx].Radius
	}
	sort.Float64s(radii)
	median := radii[len(radii)/2]

	baseR := math.Min(rMax, math.Max(median, 0.25*rMax))
	return math.Max(orrery.EpsilonSeparation, 2*r.Scale*baseR)
}

func gridDims(min, max orrery.Vector3D, cellSize float64) (cols, rows, depths int) {
	cols = int(math.Ceil((max.X-min.X)/cellSize)) + 1
	rows = int(math.Ceil((max.Y-min.Y)/cellSize)) + 1
	depths = int(math.Ceil((max.Z-min.Z)/cellSize)) + 1
	return
}
