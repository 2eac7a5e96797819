// Copyright © 2026 Orrery contributors.

// Package octree implements the 3D Barnes-Hut octree used by the
// BarnesHut gravity backend (§4.3). The tree owns its nodes for the
// lifetime of one gravity pass and releases them back to a process-wide
// bounded pool when Release is called.
package octree

import (
	"math"
	"sync"

	"github.com/orrery-sim/orrery"
)

// Pair identifies two bodies whose bounding spheres overlapped during
// insertion or query. The tree records these only to clamp singular
// forces (§4.3) — per the resolution in §9's open questions, the
// uniform-grid collision resolver is the single source of truth for
// collision response, so callers must not feed Pairs into a response
// path.
type Pair struct {
	A, B *orrery.Body
}

// Tree is a 3D octree built over one body population's bounding box.
type Tree struct {
	root   *node
	rented []*node
	mu     sync.Mutex // guards pairs during a parallel query
	pairs  []Pair
}

// New returns an empty Tree. Call Build before querying.
func New() *Tree { return &Tree{} }

// Build constructs the octree over bodies, skipping any marked
// IsAbsorbed, and aggregates mass/center-of-mass/cached extents on every
// internal node. Build is single-threaded (§5); Acceleration may be called
// concurrently across many target bodies once Build has returned.
func (t *Tree) Build(bodies []*orrery.Body, diag *orrery.Diagnostics) {
	t.reset()
	active := make([]*orrery.Body, 0, len(bodies))
	for _, b := range bodies {
		if !b.IsAbsorbed {
			active = append(active, b)
		}
	}
	if len(active) == 0 {
		return
	}

	min, max := boundingBox(active)
	before := nodePoolFallbacks.Load()
	t.root = t.rent()
	t.root.min, t.root.max = min, max

	for _, b := range active {
		t.insert(t.root, b)
	}
	t.aggregate(t.root)
	if diag != nil {
		diag.PoolRents.Add(float64(len(t.rented)))
		after := nodePoolFallbacks.Load()
		if after > before {
			diag.PoolFallbacks.Add(float64(after - before))
		}
	}
}

// Release returns every node rented during the last Build back to the
// pool. Callers must not use the Tree for queries after calling Release
// until the next Build.
func (t *Tree) Release() {
	for _, n := range t.rented {
		nodePool.Put(n)
	}
	t.rented = t.rented[:0]
	t.root = nil
}

// Pairs returns the collision-candidate pairs observed since the last
// Build. See the Pair doc comment: these exist only to clamp singular
// forces, not as a collision-response source.
func (t *Tree) Pairs() []Pair { return t.pairs }

func (t *Tree) reset() {
	t.Release()
	t.pairs = t.pairs[:0]
}

func (t *Tree) rent() *node {
	n := nodePool.Get()
	n.reset()
	t.rented = append(t.rented, n)
	return n
}

func boundingBox(bodies []*orrery.Body) (min, max orrery.Vector3D) {
	min, max = bodies[0].Position, bodies[0].Position
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
	// Pad a degenerate (zero-volume) box so every body's octant math has a
	// non-zero span to divide.
	const pad = 1.0
	if min.X == max.X {
		min.X -= pad
		max.X += pad
	}
	if min.Y == max.Y {
		min.Y -= pad
		max.Y += pad
	}
	if min.Z == max.Z {
		min.Z -= pad
		max.Z += pad
	}
	return min, max
}

// insert implements §4.3's insertion rule: empty -> leaf; leaf -> either
// record a collision pair and stay a leaf (if the two bodies already
// overlap) or split into an internal node and push both bodies down;
// internal -> recurse into the containing octant.
func (t *Tree) insert(n *node, b *orrery.Body) {
	switch {
	case !n.internal && n.body == nil:
		n.body = b
	case !n.internal:
		existing := n.body
		d := b.Position.Sub(existing.Position)
		touchRadius := b.Radius + existing.Radius
		if d.LengthSquared() < touchRadius*touchRadius {
			t.recordPair(existing, b)
			return
		}
		n.internal = true
		n.body = nil
		t.pushToChild(n, existing)
		t.pushToChild(n, b)
	default:
		t.pushToChild(n, b)
	}
}

func (t *Tree) pushToChild(n *node, b *orrery.Body) {
	mid := orrery.NewVector3D((n.min.X+n.max.X)/2, (n.min.Y+n.max.Y)/2, (n.min.Z+n.max.Z)/2)
	idx := octantIndex(mid, b.Position)
	child := n.children[idx]
	if child == nil {
		child = t.rent()
		child.min, child.max = childBounds(n.min, n.max, idx)
		n.children[idx] = child
	}
	t.insert(child, b)
}

func (t *Tree) recordPair(a, b *orrery.Body) {
	t.pairs = append(t.pairs, Pair{A: a, B: b})
}

// aggregate computes mass, center of mass, and the cached -G*M and
// squared-side-length values for every internal node, post-order.
func (t *Tree) aggregate(n *node) (mass float64, center orrery.Vector3D) {
	if n == nil {
		return 0, orrery.Zero3
	}
	if !n.internal {
		if n.body == nil {
			return 0, orrery.Zero3
		}
		return n.body.Mass, n.body.Position
	}
	var totalMass float64
	var weighted orrery.Vector3D
	for _, c := range n.children {
		if c == nil {
			continue
		}
		m, com := t.aggregate(c)
		totalMass += m
		weighted = weighted.Add(com.Scale(m))
	}
	if totalMass > 0 {
		center = weighted.Scale(1 / totalMass)
	}
	n.mass = totalMass
	n.centerOfMass = center
	n.negGM = -orrery.G * totalMass
	side := n.max.X - n.min.X
	n.sideLenSquared = side * side
	return totalMass, center
}

// Acceleration computes the gravitational acceleration experienced by
// target using the multipole acceptance criterion with opening angle
// theta, per §4.3. It is read-only on the tree and safe to call
// concurrently from many goroutines targeting different bodies, as long
// as no Build/Release call is in flight.
func (t *Tree) Acceleration(target *orrery.Body, theta float64, diag *orrery.Diagnostics) orrery.Vector3D {
	if t.root == nil {
		return orrery.Zero3
	}
	thetaSquared := theta * theta
	var accel orrery.Vector3D
	stack := make([]*node, 0, 64)
	stack = append(stack, t.root)

	var accepted, rejected uint64
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if !n.internal {
			b := n.body
			if b == nil || b == target {
				continue
			}
			d := target.Position.Sub(b.Position)
			rSquared := d.LengthSquared()
			touchRadius := target.Radius + b.Radius
			if rSquared < touchRadius*touchRadius {
				t.mu.Lock()
				t.pairs = append(t.pairs, Pair{A: target, B: b})
				t.mu.Unlock()
				// Clamp to the touch radius to avoid a singular force.
				clampedLen := touchRadius
				dir := d.Normalized()
				d = dir.Scale(clampedLen)
				rSquared = clampedLen * clampedLen
			}
			if rSquared < orrery.EpsilonDistanceSquared {
				continue
			}
			factor := -orrery.G * b.Mass / (rSquared * math.Sqrt(rSquared))
			accel = accel.Add(d.Scale(factor))
			continue
		}

		d := target.Position.Sub(n.centerOfMass)
		rSquared := d.LengthSquared()
		if n.sideLenSquared < thetaSquared*rSquared {
			accepted++
			if rSquared < orrery.EpsilonDistanceSquared {
				continue
			}
			factor := n.negGM / (rSquared * math.Sqrt(rSquared))
			accel = accel.Add(d.Scale(factor))
			continue
		}
		rejected++
		for _, c := range n.children {
			if c != nil {
				stack = append(stack, c)
			}
		}
	}
	if diag != nil {
		if accepted > 0 {
			diag.MACAccepted.Add(float64(accepted))
		}
		if rejected > 0 {
			diag.MACRejected.Add(float64(rejected))
		}
	}
	return accel
}
