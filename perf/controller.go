package perf

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-folio/engine"
	"github.com/lixenwraith/vi-folio/parameter"
	"github.com/lixenwraith/vi-folio/status"
)

// FrameRateSource supplies the latest frame rate sample
type FrameRateSource interface {
	Start()
	Stop()
	CurrentFPS() float64
}

type subscriber struct {
	id int
	fn func(Settings)
}

// Controller owns the adaptive Settings
// It polls the frame rate every parameter.SettingsPollInterval and degrades or restores animation
// work with a hysteresis latch. All methods run on the loop goroutine.
type Controller struct {
	sched   engine.Scheduler
	sampler FrameRateSource
	tier    Tier
	opts    options

	settings Settings
	low      bool

	running bool
	poll    engine.Handle

	subs    []subscriber
	nextSub int
}

// NewController seeds settings from tier; nothing runs until Start
func NewController(sched engine.Scheduler, sampler FrameRateSource, tier Tier, opts ...Option) *Controller {
	c := &Controller{
		sched:   sched,
		sampler: sampler,
		tier:    tier,
		opts:    buildOptions(opts),
	}
	c.settings = SettingsForTier(tier, c.opts.maxParticles)
	if c.opts.reg != nil {
		c.opts.reg.Labels.Get(status.KeyTier).Set(tier.String())
	}
	c.publish()
	return c
}

// Start begins sampling and polling, no-op when running
func (c *Controller) Start() {
	if c.running {
		return
	}
	c.running = true
	c.sampler.Start()
	c.poll = c.sched.AfterFunc(parameter.SettingsPollInterval, c.tick)
}

// Stop halts sampling and polling, no-op when stopped
func (c *Controller) Stop() {
	if !c.running {
		return
	}
	c.running = false
	c.sampler.Stop()
	c.sched.CancelTimer(c.poll)
	c.poll = 0
}

func (c *Controller) tick() {
	if !c.running {
		return
	}
	c.poll = c.sched.AfterFunc(parameter.SettingsPollInterval, c.tick)
	c.Apply(c.sampler.CurrentFPS())
}

// Apply evaluates one frame rate sample against the adaptation rules and reports whether settings changed
//   - under FPSCritical: latch, particles off, low quality, zero budget
//   - under FPSRecover while unlatched: latch, particles off, low quality, degraded budget
//   - over FPSRecover while latched: unlatch, particles on, medium quality, recovered budget
//
// Samples inside the band leave everything unchanged
func (c *Controller) Apply(fps float64) bool {
	next := c.settings
	low := c.low

	switch {
	case fps < parameter.FPSCritical:
		low = true
		next.EnableParticles = false
		next.Quality = QualityLow
		next.ParticleBudget = 0
	case fps < parameter.FPSRecover && !c.low:
		low = true
		next.EnableParticles = false
		next.Quality = QualityLow
		next.ParticleBudget = fraction(c.opts.maxParticles, parameter.ParticleFractionDegraded)
	case fps > parameter.FPSRecover && c.low:
		low = false
		next.EnableParticles = true
		next.Quality = QualityMedium
		next.ParticleBudget = fraction(c.opts.maxParticles, parameter.ParticleFractionRecovered)
	}
	next = next.normalize()

	if next == c.settings && low == c.low {
		return false
	}

	prev := c.settings
	c.settings = next
	c.low = low
	c.opts.log.Info("performance settings changed",
		zap.Float64("fps", fps),
		zap.Bool("low_performance", low),
		zap.Stringer("quality", next.Quality),
		zap.Int("particles", next.ParticleCount),
		zap.Stringer("previous_quality", prev.Quality),
	)
	c.publish()

	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)
	for _, s := range subs {
		s.fn(next)
	}
	return true
}

// Settings returns the current snapshot
func (c *Controller) Settings() Settings {
	return c.settings
}

// LowPerformance reports the hysteresis latch
func (c *Controller) LowPerformance() bool {
	return c.low
}

// Tier returns the session tier
func (c *Controller) Tier() Tier {
	return c.tier
}

// Running reports whether polling is active
func (c *Controller) Running() bool {
	return c.running
}

// Subscribe registers fn for settings changes; the returned func unregisters and is idempotent
func (c *Controller) Subscribe(fn func(Settings)) (cancel func()) {
	c.nextSub++
	id := c.nextSub
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) publish() {
	reg := c.opts.reg
	if reg == nil {
		return
	}
	reg.Labels.Get(status.KeyQuality).Set(c.settings.Quality.String())
	reg.Ints.Get(status.KeyParticles).Store(int64(c.settings.ParticleCount))
	reg.Bools.Get(status.KeyLowPerformance).Store(c.low)
}
