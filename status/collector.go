package status

import (
	"strings"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes a Registry to Prometheus
// Metric keys become gauge names: "perf.fps" -> "<namespace>_perf_fps"; labels become info gauges
// carrying the text in a "value" label. Keys are discovered at scrape time, so the collector is unchecked
type Collector struct {
	reg       *Registry
	namespace string
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector wraps reg, prefixing every metric with namespace
func NewCollector(reg *Registry, namespace string) *Collector {
	return &Collector{reg: reg, namespace: namespace}
}

// Describe sends nothing, marking the collector unchecked
func (c *Collector) Describe(chan<- *prometheus.Desc) {}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.reg.Floats.Range(func(k string, v *AtomicFloat) {
		c.gauge(ch, k, "float metric "+k, v.Get())
	})
	c.reg.Ints.Range(func(k string, v *atomic.Int64) {
		c.gauge(ch, k, "integer metric "+k, float64(v.Load()))
	})
	c.reg.Bools.Range(func(k string, v *atomic.Bool) {
		val := 0.0
		if v.Load() {
			val = 1
		}
		c.gauge(ch, k, "flag metric "+k, val)
	})
	c.reg.Labels.Range(func(k string, v *AtomicLabel) {
		desc := prometheus.NewDesc(c.metricName(k)+"_info", "label metric "+k, []string{"value"}, nil)
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, 1, v.Get())
	})
}

func (c *Collector) gauge(ch chan<- prometheus.Metric, key, help string, val float64) {
	desc := prometheus.NewDesc(c.metricName(key), help, nil, nil)
	ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, val)
}

func (c *Collector) metricName(key string) string {
	name := strings.NewReplacer(".", "_", "-", "_").Replace(key)
	return prometheus.BuildFQName(c.namespace, "", name)
}
