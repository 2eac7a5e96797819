// Copyright © 2026 Orrery contributors.

package orrery

import "log/slog"

// StepFunc advances bodies by subDt. It is the step_fn contract handed
// to every Oversampler (§4.1/§4.5): the integrator's Step bound to a
// fixed gravity backend.
type StepFunc func(bodies []*Body, subDt float64)

// GravityBackend computes the mutual gravitational acceleration of a
// body population, overwriting (never accumulating into) each
// non-absorbed body's Acceleration field (§4.2).
type GravityBackend interface {
	ComputeAccelerations(bodies []*Body, diag *Diagnostics)
}

// Integrator advances a body population by subDt, invoking compute to
// refresh accelerations at whatever intermediate states its method
// needs (§4.4).
type Integrator interface {
	Step(bodies []*Body, subDt float64, compute func([]*Body), diag *Diagnostics)
}

// Oversampler decides how to subdivide targetDt into one or more calls
// to step, returning the number of integrator steps actually taken
// (§4.5).
type Oversampler interface {
	Oversample(world *World, bodies []*Body, targetDt float64, step StepFunc, diag *Diagnostics) (steps int)
}

// CollisionResolver detects and responds to overlapping body pairs
// after one full oversampled step (§4.6).
type CollisionResolver interface {
	Resolve(world *World, bodies []*Body, diag *Diagnostics)
}

// Engine composes the four pipeline stages into the single entry point
// described in §4.1. It holds no state of its own beyond the stages and
// diagnostics — all mutable simulation state lives on World.
type Engine struct {
	gravity    GravityBackend
	integrator Integrator
	oversample Oversampler
	collision  CollisionResolver
	diag       *Diagnostics
}

// NewEngine constructs an Engine from functional options (§1.1). Every
// stage must be supplied via an option or Simulate returns
// InvalidConfiguration.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{diag: NewDiagnostics()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Diagnostics returns the engine's Prometheus-backed metrics instance.
func (e *Engine) Diagnostics() *Diagnostics { return e.diag }

// Simulate advances world by the simulated duration dt, per §4.1's
// five-step contract:
//  1. snapshot active (non-absorbed) bodies;
//  2. run the oversampler, which drives the integrator (bound to the
//     gravity backend) across one or more substeps;
//  3. run the collision resolver once on the result;
//  4. remove newly-absorbed bodies from world;
//  5. if ClosedBoundaries, reflect any body that crossed the viewport.
//
// Simulate fails only if a stage is missing; every inner numerical
// condition degrades gracefully instead of returning an error (§7).
func (e *Engine) Simulate(world *World, viewport *Viewport, dt float64) error {
	if e.gravity == nil || e.integrator == nil || e.oversample == nil || e.collision == nil {
		return NewInvalidConfiguration("engine is missing one or more pipeline stages")
	}

	bodies := world.activeBodies()
	e.diag.ActiveBodies.Set(float64(len(bodies)))
	if len(bodies) == 0 {
		return nil
	}

	compute := func(bs []*Body) { e.gravity.ComputeAccelerations(bs, e.diag) }
	step := func(bs []*Body, subDt float64) {
		e.integrator.Step(bs, subDt, compute, e.diag)
	}

	e.oversample.Oversample(world, bodies, dt, step, e.diag)
	e.collision.Resolve(world, bodies, e.diag)

	world.removeAbsorbed()

	if world.ClosedBoundaries {
		if viewport == nil {
			slog.Warn("ClosedBoundaries is set but no viewport was supplied; skipping boundary reflection")
		} else {
			reflectAll(world, *viewport)
		}
	}

	return nil
}

func reflectAll(world *World, viewport Viewport) {
	for _, b := range world.Bodies() {
		if b.IsAbsorbed {
			continue
		}
		b.Position, b.Velocity = viewport.reflectBoundary(b.Position, b.Velocity, b.Radius)
	}
}
