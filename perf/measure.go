package perf

import (
	"sync"
	"time"

	"github.com/lixenwraith/vi-folio/engine"
	"github.com/lixenwraith/vi-folio/parameter"
)

// Meter records named durations and reports their running averages
// Each name keeps the last parameter.MeasureWindow samples
type Meter struct {
	clock engine.TimeProvider

	mu      sync.Mutex
	started map[string]time.Time
	samples map[string][]time.Duration
}

// NewMeter creates a meter reading clock
func NewMeter(clock engine.TimeProvider) *Meter {
	return &Meter{
		clock:   clock,
		started: make(map[string]time.Time),
		samples: make(map[string][]time.Duration),
	}
}

// Start marks the beginning of a measurement
func (m *Meter) Start(name string) {
	now := m.clock.Now()
	m.mu.Lock()
	m.started[name] = now
	m.mu.Unlock()
}

// End closes the measurement opened by Start and records it; unmatched End is ignored
func (m *Meter) End(name string) {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	begin, ok := m.started[name]
	if !ok {
		return
	}
	delete(m.started, name)

	s := append(m.samples[name], now.Sub(begin))
	if len(s) > parameter.MeasureWindow {
		s = s[len(s)-parameter.MeasureWindow:]
	}
	m.samples[name] = s
}

// Measure runs fn between Start and End
func (m *Meter) Measure(name string, fn func()) {
	m.Start(name)
	defer m.End(name)
	fn()
}

// Average returns the mean of recorded samples, 0 when none
func (m *Meter) Average(name string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.samples[name]
	if len(s) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range s {
		sum += d
	}
	return sum / time.Duration(len(s))
}
