// Copyright © 2026 Orrery contributors.

package orrery

// diagnostics.go threads a per-Engine Diagnostics instance through every
// pipeline stage call (§4.1–§4.6 name "diagnostics" as a stage parameter).
// It is built on github.com/prometheus/client_golang, the metrics library
// used elsewhere in the retrieval corpus for exactly this kind of counter
// and gauge bookkeeping — but deliberately not through promauto, which
// registers into the global default registry. A library may have many
// Engine instances alive at once (every test in this module constructs at
// least one); registering them all into one process-global registry would
// either panic on duplicate registration or silently conflate metrics from
// unrelated engines. Diagnostics instead owns a private
// prometheus.Registry and constructs its metrics directly.
import (
	"github.com/prometheus/client_golang/prometheus"
)

// Diagnostics accumulates counters and gauges for one Engine instance
// across Simulate calls. It is never required for correctness — every
// pipeline stage must behave identically whether or not its diagnostics
// argument is recorded into — it exists purely for observability.
type Diagnostics struct {
	registry *prometheus.Registry

	Steps              prometheus.Counter
	Substeps           prometheus.Counter
	MACAccepted        prometheus.Counter
	MACRejected        prometheus.Counter
	CollisionChecks    prometheus.Counter
	CollisionsResolved prometheus.Counter
	Absorptions        prometheus.Counter
	PoolRents          prometheus.Counter
	PoolFallbacks      prometheus.Counter
	ActiveBodies       prometheus.Gauge
}

// NewDiagnostics constructs a Diagnostics with its own private registry.
func NewDiagnostics() *Diagnostics {
	reg := prometheus.NewRegistry()
	d := &Diagnostics{
		registry: reg,
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_steps_total", Help: "Integrator steps taken.",
		}),
		Substeps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_substeps_total", Help: "Oversampler substeps taken.",
		}),
		MACAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_mac_accepted_total", Help: "Barnes-Hut nodes accepted by the multipole acceptance criterion.",
		}),
		MACRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_mac_rejected_total", Help: "Barnes-Hut nodes whose children were pushed instead of accepted.",
		}),
		CollisionChecks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_collision_checks_total", Help: "Candidate pairs examined by the collision resolver.",
		}),
		CollisionsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_collisions_resolved_total", Help: "Candidate pairs that resulted in a collision response.",
		}),
		Absorptions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_absorptions_total", Help: "Bodies absorbed by a merge response.",
		}),
		PoolRents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_pool_rents_total", Help: "Items rented from a bounded pool.",
		}),
		PoolFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_pool_fallbacks_total", Help: "Pool rents that fell back to a fresh allocation because the pool was empty.",
		}),
		ActiveBodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_active_bodies", Help: "Non-absorbed bodies as of the start of the last Simulate call.",
		}),
	}
	reg.MustRegister(d.Steps, d.Substeps, d.MACAccepted, d.MACRejected,
		d.CollisionChecks, d.CollisionsResolved, d.Absorptions,
		d.PoolRents, d.PoolFallbacks, d.ActiveBodies)
	return d
}

// Registry returns the private Prometheus registry backing these metrics,
// so an embedding application can expose them on its own /metrics endpoint
// if it wants to (exposition itself is out of scope for the core, §1).
func (d *Diagnostics) Registry() *prometheus.Registry { return d.registry }

// diagOrNoop returns d, or a shared fallback Diagnostics when d is nil, for
// a stage that always wants a non-nil Diagnostics to record into.
func diagOrNoop(d *Diagnostics) *Diagnostics {
	if d != nil {
		return d
	}
	return noop
}

var noop = NewDiagnostics()
