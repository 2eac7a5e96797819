// Copyright © 2026 Orrery contributors.

// Package pool implements a bounded, mutex-guarded free list. It
// generalizes the scratch-variable reuse idiom found throughout the
// simulation core's teacher lineage (per-instance scratch fields like
// physics.body.v0 / physics.solver.v0..v2 that avoid allocating and
// garbage-collecting temporaries every timestep) into one reusable type,
// since this core needs the same pattern in three unrelated places: the
// Barnes-Hut octree's node arena, RK4's intermediate state slots, and the
// hierarchical oversampler's per-bin scratch slices.
package pool

import "sync"

// Pool is a capped free list of *T. Get returns a pooled value if one is
// available, or calls new to allocate a fresh one — resource exhaustion
// (the cap being hit) degrades to a plain allocation rather than blocking
// or failing (§7 ResourceExhaustion).
type Pool[T any] struct {
	mu       sync.Mutex
	free     []*T
	cap      int
	new      func() *T
	reset    func(*T)
	fallback func()
}

// New constructs a Pool bounded to capacity items. new allocates a fresh
// *T; reset restores a rented *T to a clean state before reuse (nil is
// fine if nothing needs resetting). onFallback, if non-nil, is invoked
// every time Get has to allocate fresh because the free list was empty —
// callers use it to bump a Diagnostics pool-fallback counter.
func New[T any](capacity int, new func() *T, reset func(*T), onFallback func()) *Pool[T] {
	return &Pool[T]{cap: capacity, new: new, reset: reset, fallback: onFallback}
}

// Get rents an item from the pool, allocating a fresh one if the free list
// is empty.
func (p *Pool[T]) Get() *T {
	p.mu.Lock()
	n := len(p.free)
	if n == 0 {
		p.mu.Unlock()
		if p.fallback != nil {
			p.fallback()
		}
		return p.new()
	}
	v := p.free[n-1]
	p.free = p.free[:n-1]
	p.mu.Unlock()
	return v
}

// Put returns an item to the pool. If the pool is already at capacity the
// item is simply dropped (left for the garbage collector) rather than
// growing the free list without bound.
func (p *Pool[T]) Put(v *T) {
	if p.reset != nil {
		p.reset(v)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) >= p.cap {
		return
	}
	p.free = append(p.free, v)
}
