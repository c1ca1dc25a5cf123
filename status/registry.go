package status

import "sync/atomic"

// Well-known keys published by the animation subsystem
const (
	KeyFPS             = "perf.fps"
	KeyRenderMillis    = "perf.render_ms"
	KeyTier            = "perf.tier"
	KeyQuality         = "perf.quality"
	KeyParticles       = "perf.particles"
	KeyLowPerformance  = "perf.low_performance"
	KeyFrames          = "loop.frames"
	KeyScrollOffset    = "scroll.offset"
	KeyScrollAnimating = "scroll.animating"
)

// Registry is the shared metrics facade read by the HUD and the Prometheus collector
// Components write from the loop goroutine, readers run elsewhere
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
	Labels *MetricMap[AtomicLabel]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
		Labels: NewMetricMap[AtomicLabel](),
	}
}

// Snapshot is a point-in-time copy of every metric
type Snapshot struct {
	Bools  map[string]bool
	Ints   map[string]int64
	Floats map[string]float64
	Labels map[string]string
}

// Snapshot copies the current values; each value is read atomically, the set is not
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Bools:  make(map[string]bool, r.Bools.Count()),
		Ints:   make(map[string]int64, r.Ints.Count()),
		Floats: make(map[string]float64, r.Floats.Count()),
		Labels: make(map[string]string, r.Labels.Count()),
	}
	r.Bools.Range(func(k string, v *atomic.Bool) { s.Bools[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { s.Ints[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { s.Floats[k] = v.Get() })
	r.Labels.Range(func(k string, v *AtomicLabel) { s.Labels[k] = v.Get() })
	return s
}

// TotalCount returns the number of metrics across all kinds
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Labels.Count()
}
