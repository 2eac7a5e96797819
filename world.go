// Copyright © 2026 Orrery contributors.

package orrery

import "sync/atomic"

// World owns a growing, insertion-ordered sequence of bodies plus the
// global flags that govern a simulation. The world is created empty.
//
// World exclusively owns its bodies. Pipeline stages receive the active
// body sequence by borrowed reference for the duration of one Simulate
// call and must not retain it beyond that call (§3 Ownership).
type World struct {
	// ElasticCollisions selects the collision resolver's response: true
	// for velocity-exchanging elastic impulses, false for inelastic
	// merge.
	ElasticCollisions bool

	// ClosedBoundaries enables the reflective boundary pass (§4.7) using
	// Viewport's bounding box.
	ClosedBoundaries bool

	// Timescale is the multiplicative factor applied to wall-clock Δt to
	// get simulated Δt. It is the caller's responsibility to apply it
	// before calling Engine.Simulate.
	Timescale float64

	bodies []*Body
	nextID atomic.Uint64
}

// NewWorld returns an empty World with Timescale 1.
func NewWorld() *World {
	return &World{Timescale: 1}
}

// Reset empties the world and resets its monotonic id counter, so the
// next NextBodyID call returns id 1 again.
func (w *World) Reset() {
	w.bodies = nil
	w.nextID.Store(0)
}

// NextBodyID allocates and returns the next monotonic body id for this
// world. It is safe to call concurrently.
func (w *World) NextBodyID() uint64 {
	return w.nextID.Add(1)
}

// AddBody appends body to the world's body sequence, preserving insertion
// order.
func (w *World) AddBody(body *Body) {
	w.bodies = append(w.bodies, body)
}

// Bodies returns the world's bodies in insertion order. The returned slice
// is owned by World — callers must not retain it past the next mutating
// call (AddBody, RemoveBodies, Reset).
func (w *World) Bodies() []*Body { return w.bodies }

// BodyCount returns the number of bodies currently in the world, including
// any marked IsAbsorbed but not yet removed.
func (w *World) BodyCount() int { return len(w.bodies) }

// RemoveBodies removes every body in the world whose Id is present in ids,
// preserving the relative order of the survivors.
func (w *World) RemoveBodies(ids map[uint64]struct{}) {
	if len(ids) == 0 {
		return
	}
	survivors := w.bodies[:0]
	for _, b := range w.bodies {
		if _, removed := ids[b.Id]; !removed {
			survivors = append(survivors, b)
		}
	}
	w.bodies = survivors
}

// removeAbsorbed strips every body with IsAbsorbed set. Used internally by
// Engine.Simulate after the collision resolver has run (§4.1 step 4).
func (w *World) removeAbsorbed() {
	survivors := w.bodies[:0]
	for _, b := range w.bodies {
		if !b.IsAbsorbed {
			survivors = append(survivors, b)
		}
	}
	w.bodies = survivors
}

// activeBodies returns the non-absorbed bodies, in insertion order. This is
// the snapshot Engine.Simulate hands to the oversampler (§4.1 step 1).
func (w *World) activeBodies() []*Body {
	active := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		if !b.IsAbsorbed {
			active = append(active, b)
		}
	}
	return active
}
