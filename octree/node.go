// Copyright © 2026 Orrery contributors.

package octree

import (
	"sync/atomic"

	"github.com/orrery-sim/orrery"
	"github.com/orrery-sim/orrery/internal/pool"
)

// node is one cell of the octree. A node is either empty (body == nil,
// internal == false), a leaf holding exactly one body, or internal with up
// to eight children. Nodes never hold a back-pointer to their parent —
// the octree is a tree, not a graph, and traversal is always top-down
// (§9 "no back-pointers").
type node struct {
	min, max orrery.Vector3D // axis-aligned bounds of this node's octant

	body *orrery.Body // set on a leaf

	internal bool
	children [8]*node // nil slots are empty octants

	// Aggregated multipole data, computed once after all insertions
	// (aggregate). Only meaningful when internal is true.
	mass           float64
	centerOfMass   orrery.Vector3D
	negGM          float64 // cached -G*mass
	sideLenSquared float64 // cached squared side length of this node's box
}

func (n *node) reset() {
	*n = node{}
}

// nodePool is the process-wide bounded arena described in §4.3/§9: nodes
// are rented for the duration of one gravity pass and released together on
// completion. The cap bounds worst-case memory for very large populations;
// exceeding it falls back to a fresh allocation rather than blocking
// (§7 ResourceExhaustion).
const nodePoolCapacity = 1 << 20

// nodePoolFallbacks counts rents that missed the free list and fell back to
// a fresh allocation. Tree.Build drains the delta into its Diagnostics
// after each gravity pass.
var nodePoolFallbacks atomic.Uint64

var nodePool = pool.New[node](nodePoolCapacity,
	func() *node { return &node{} },
	func(n *node) { n.reset() },
	func() { nodePoolFallbacks.Add(1) },
)

func octantIndex(mid, p orrery.Vector3D) int {
	idx := 0
	if p.X >= mid.X {
		idx |= 1 << 2
	}
	if p.Y >= mid.Y {
		idx |= 1 << 1
	}
	if p.Z >= mid.Z {
		idx |= 1 << 0
	}
	return idx
}

// childBounds returns the bounds of octant idx within a node spanning
// [min, max].
func childBounds(min, max orrery.Vector3D, idx int) (cmin, cmax orrery.Vector3D) {
	mid := orrery.NewVector3D(
		(min.X+max.X)/2,
		(min.Y+max.Y)/2,
		(min.Z+max.Z)/2,
	)
	cmin, cmax = min, mid
	if idx&(1<<2) != 0 {
		cmin.X, cmax.X = mid.X, max.X
	}
	if idx&(1<<1) != 0 {
		cmin.Y, cmax.Y = mid.Y, max.Y
	}
	if idx&(1<<0) != 0 {
		cmin.Z, cmax.Z = mid.Z, max.Z
	}
	return cmin, cmax
}
