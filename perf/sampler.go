package perf

import (
	"math"
	"time"

	"github.com/lixenwraith/vi-folio/engine"
	"github.com/lixenwraith/vi-folio/parameter"
	"github.com/lixenwraith/vi-folio/status"
)

// Sampler estimates the frame rate by counting frame callbacks over a 2 s window
// Start, Stop and the frame callback run on the loop goroutine; CurrentFPS is safe from anywhere
type Sampler struct {
	sched engine.Scheduler
	opts  options

	handle  engine.Handle
	running bool
	frames  int
	anchor  time.Time

	fps   status.AtomicFloat
	gauge *status.AtomicFloat
}

// NewSampler creates a stopped sampler reporting parameter.FPSDefault until the first window closes
func NewSampler(sched engine.Scheduler, opts ...Option) *Sampler {
	s := &Sampler{sched: sched, opts: buildOptions(opts)}
	s.fps.Set(parameter.FPSDefault)
	if s.opts.reg != nil {
		s.gauge = s.opts.reg.Floats.Get(status.KeyFPS)
		s.gauge.Set(parameter.FPSDefault)
	}
	return s
}

// Start registers the counting callback, no-op when already running
func (s *Sampler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.frames = 0
	s.anchor = s.sched.Now()
	s.handle = s.sched.RequestFrame(s.tick)
}

// Stop cancels the pending frame callback, no-op when stopped
func (s *Sampler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.sched.CancelFrame(s.handle)
	s.handle = 0
}

// Running reports whether the counting callback is armed
func (s *Sampler) Running() bool {
	return s.running
}

// CurrentFPS returns the most recent sample
func (s *Sampler) CurrentFPS() float64 {
	return s.fps.Get()
}

func (s *Sampler) tick(now time.Time) {
	if !s.running {
		return
	}
	s.handle = s.sched.RequestFrame(s.tick)
	s.frames++

	elapsed := now.Sub(s.anchor)
	if elapsed >= parameter.FPSSampleWindow {
		ms := float64(elapsed) / float64(time.Millisecond)
		fps := math.Round(float64(s.frames) * 1000 / ms)
		s.fps.Set(fps)
		if s.gauge != nil {
			s.gauge.Set(fps)
		}
		s.frames = 0
		s.anchor = now
	}
}
