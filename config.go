// Copyright © 2026 Orrery contributors.

package orrery

// config.go reduces NewEngine's API footprint using functional options,
// the same pattern the engine's lineage uses for its own configuration
// (Attr func(*Config)).
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis

// EngineOption configures an Engine at construction time. For use with
// NewEngine:
//
//	eng := orrery.NewEngine(
//	    orrery.WithGravity(gravity.NewBarnesHut()),
//	    orrery.WithIntegrator(integrate.Leapfrog{}),
//	    orrery.WithOversampler(oversample.Static{K: 1}),
//	    orrery.WithCollisionResolver(resolver),
//	)
type EngineOption func(*Engine)

// WithGravity sets the engine's gravity backend.
func WithGravity(backend GravityBackend) EngineOption {
	return func(e *Engine) { e.gravity = backend }
}

// WithIntegrator sets the engine's integrator.
func WithIntegrator(integrator Integrator) EngineOption {
	return func(e *Engine) { e.integrator = integrator }
}

// WithOversampler sets the engine's oversampler.
func WithOversampler(oversampler Oversampler) EngineOption {
	return func(e *Engine) { e.oversample = oversampler }
}

// WithCollisionResolver sets the engine's collision resolver.
func WithCollisionResolver(resolver CollisionResolver) EngineOption {
	return func(e *Engine) { e.collision = resolver }
}

// WithDiagnostics overrides the engine's default Diagnostics instance,
// letting an embedding application share one registry across several
// engines' worth of metrics naming, or inject a diagnostics double in
// tests.
func WithDiagnostics(diag *Diagnostics) EngineOption {
	return func(e *Engine) {
		if diag != nil {
			e.diag = diag
		}
	}
}
