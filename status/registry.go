package status

import (
	"fmt"
	"sync/atomic"
)

// Simulation metric keys published by physics.System
const (
	KeyFrames       = "physics.frames"
	KeySubsteps     = "physics.substeps"
	KeyCollisions   = "physics.collisions"
	KeyConstraints  = "physics.constraints"
	KeyVertices     = "physics.vertices"
	KeySingular     = "physics.singular_inertia"
	KeyElapsed      = "physics.elapsed"
	KeyPaused       = "physics.paused"
	KeyIterations   = "physics.iterations"
	KeyDamping      = "physics.damping"
	KeyContactsPeak = "physics.contacts_peak"
)

// Registry is the metrics facade shared between the simulation and its host
// The System caches pointers on attach; the host reads them from any goroutine
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Lines renders every metric as "key=value" in sorted key order, bools then ints then floats
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	r.Bools.Range(func(k string, p *atomic.Bool) {
		lines = append(lines, fmt.Sprintf("%s=%t", k, p.Load()))
	})
	r.Ints.Range(func(k string, p *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s=%d", k, p.Load()))
	})
	r.Floats.Range(func(k string, p *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s=%.3f", k, p.Get()))
	})
	return lines
}
