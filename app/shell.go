// Package app wires the animation subsystem into the terminal page
package app

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-folio/audio"
	"github.com/lixenwraith/vi-folio/content"
	"github.com/lixenwraith/vi-folio/engine"
	"github.com/lixenwraith/vi-folio/metrics"
	"github.com/lixenwraith/vi-folio/page"
	"github.com/lixenwraith/vi-folio/parameter"
	"github.com/lixenwraith/vi-folio/particle"
	"github.com/lixenwraith/vi-folio/perf"
	"github.com/lixenwraith/vi-folio/render"
	"github.com/lixenwraith/vi-folio/scroll"
	"github.com/lixenwraith/vi-folio/service"
	"github.com/lixenwraith/vi-folio/status"
	"github.com/lixenwraith/vi-folio/throttle"
	"github.com/lixenwraith/vi-folio/typewriter"
)

// Config selects the shell's inputs
type Config struct {
	ContentPath string
	Watch       bool
	Theme       render.Theme
	// Platform supplies device hints; nil probes as headless
	Platform     perf.Platform
	HUD          bool
	Sound        bool
	AudioSink    audio.Sink
	MetricsAddr  string
	MaxParticles int
	Rand         particle.Rand
	Log          *zap.Logger
}

type size struct {
	w, h int
}

// Shell owns every component of the page and routes input to them
// Services are created with the shell; the page components exist between Mount and Teardown.
// Apart from Done, all methods run on the loop goroutine
type Shell struct {
	cfg    Config
	log    *zap.Logger
	sched  engine.Scheduler
	screen tcell.Screen

	reg        *status.Registry
	hub        *service.Hub
	tier       perf.Tier
	sampler    *perf.Sampler
	controller *perf.Controller
	meter      *perf.Meter

	page     *page.Page
	field    *particle.Field
	scroller *scroll.Engine
	typer    *typewriter.Typewriter

	wheel      *throttle.Smoother[int]
	wheelDelta int
	resize     *throttle.Debouncer[size]
	visibility *throttle.Throttler[struct{}]
	sync       *throttle.Framer[struct{}]

	render      engine.Handle
	unsubscribe func()
	mounted     bool
	renderGauge *status.AtomicFloat
	frameCount  *atomic.Int64
	done        chan struct{}
	doneOnce    sync.Once
}

// New builds the shell and registers its services; nothing runs until the hub starts and Mount is called
func New(cfg Config, sched engine.Scheduler, screen tcell.Screen) *Shell {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxParticles <= 0 {
		cfg.MaxParticles = parameter.ParticleMaxCount
	}

	s := &Shell{
		cfg:    cfg,
		log:    log,
		sched:  sched,
		screen: screen,
		reg:    status.NewRegistry(),
		hub:    service.NewHub(log),
		done:   make(chan struct{}),
	}

	for _, svc := range []service.Service{
		content.NewService(cfg.ContentPath, cfg.Watch && cfg.ContentPath != "", log.Named(content.ServiceName)),
		audio.NewService(cfg.Sound, cfg.AudioSink, log.Named(audio.ServiceName)),
		metrics.NewService(cfg.MetricsAddr, s.reg, log.Named(metrics.ServiceName)),
	} {
		// names are fixed and distinct
		_ = s.hub.Register(svc)
	}

	s.tier = perf.ProbeTier(cfg.Platform)
	log.Info("device tier", zap.Stringer("tier", s.tier))

	popts := []perf.Option{
		perf.WithLogger(log.Named("perf")),
		perf.WithRegistry(s.reg),
		perf.WithMaxParticles(cfg.MaxParticles),
	}
	s.sampler = perf.NewSampler(sched, popts...)
	s.controller = perf.NewController(sched, s.sampler, s.tier, popts...)
	s.meter = perf.NewMeter(sched)
	s.renderGauge = s.reg.Floats.Get(status.KeyRenderMillis)
	s.frameCount = s.reg.Ints.Get(status.KeyFrames)

	s.wheel = throttle.Smooth(sched, throttle.PriorityHigh, s.applyWheel)
	s.resize = throttle.Debounce(sched, parameter.ResizeDebounceDelay, s.applyResize)
	s.visibility = throttle.Throttle(sched, parameter.ScrollThrottleDelay, func(struct{}) {
		s.typer.SetVisible(s.page.View().HeroVisible())
	})
	s.sync = throttle.Frame(sched, func(struct{}) { s.screen.Sync() })
	return s
}

// Services returns the service hub
func (s *Shell) Services() *service.Hub {
	return s.hub
}

// Registry returns the status registry
func (s *Shell) Registry() *status.Registry {
	return s.reg
}

// Controller returns the adaptive settings controller
func (s *Shell) Controller() *perf.Controller {
	return s.controller
}

// Page returns the page, nil before Mount
func (s *Shell) Page() *page.Page {
	return s.page
}

// Field returns the particle field, nil before Mount
func (s *Shell) Field() *particle.Field {
	return s.field
}

// Typewriter returns the hero tagline animation, nil before Mount
func (s *Shell) Typewriter() *typewriter.Typewriter {
	return s.typer
}

// Audio returns the audio service registered with the hub
func (s *Shell) Audio() *audio.Service {
	svc, _ := service.Lookup[*audio.Service](s.hub, audio.ServiceName)
	return svc
}

// Content returns the content service registered with the hub
func (s *Shell) Content() *content.Service {
	svc, _ := service.Lookup[*content.Service](s.hub, content.ServiceName)
	return svc
}

// player returns the click player, nil when audio is off
func (s *Shell) player() *audio.Player {
	svc := s.Audio()
	if svc == nil {
		return nil
	}
	return svc.Player()
}

// Done is closed when the user quits; safe from any goroutine
func (s *Shell) Done() <-chan struct{} {
	return s.done
}

// Mount builds the page from the current document and starts every animation
// The content service must be initialized
func (s *Shell) Mount() {
	if s.mounted {
		return
	}
	doc := s.Content().Current()
	w, h := s.screen.Size()

	s.page = page.New(doc, w, h, s.cfg.Theme, s.reg, s.cfg.HUD)
	view := s.page.View()
	s.scroller = scroll.NewEngine(s.sched, view, view,
		scroll.WithLogger(s.log.Named("scroll")), scroll.WithRegistry(s.reg))
	s.typer = typewriter.New(s.sched, s.controller, doc.Taglines,
		typewriter.WithKeystroke(s.keystroke), typewriter.WithLogger(s.log))
	s.page.SetTagline(s.typer.Text)

	fopts := []particle.Option{
		particle.WithTheme(s.cfg.Theme),
		particle.WithLogger(s.log.Named("particle")),
	}
	if s.cfg.Rand != nil {
		fopts = append(fopts, particle.WithRand(s.cfg.Rand))
	}
	s.field = particle.NewField(s.sched, s.controller, s.acquireSurface, fopts...)

	s.page.SetTransition(s.controller.Settings().Transition())
	s.unsubscribe = s.controller.Subscribe(func(st perf.Settings) {
		s.page.SetTransition(st.Transition())
	})

	// frame callbacks run in registration order: sampler, particles, then the page
	s.controller.Start()
	s.field.Mount()
	s.render = s.sched.RequestFrame(s.frame)

	s.typer.SetVisible(view.HeroVisible())
	s.Content().OnChange(func(doc *content.Document) {
		s.sched.Post(func() { s.reload(doc) })
	})
	s.mounted = true
}

// Teardown stops every animation and cancels pending work; safe to repeat
func (s *Shell) Teardown() {
	if !s.mounted {
		return
	}
	s.mounted = false
	s.Content().OnChange(nil)

	s.sched.CancelFrame(s.render)
	s.render = 0
	s.controller.Stop()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.field.Unmount()
	s.typer.Stop()
	s.scroller.Stop()

	s.wheel.Cancel()
	s.wheelDelta = 0
	s.resize.Cancel()
	s.visibility.Cancel()
	s.sync.Cancel()
}

// Mounted reports whether the page is live
func (s *Shell) Mounted() bool {
	return s.mounted
}

func (s *Shell) acquireSurface() (particle.Surface, error) {
	c, err := s.page.Surface()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Shell) frame(time.Time) {
	s.render = s.sched.RequestFrame(s.frame)

	s.meter.Measure("render", func() {
		s.page.Update()
		s.page.Draw(s.screen, s.controller.Settings())
		s.screen.Show()
	})
	s.renderGauge.Set(float64(s.meter.Average("render")) / float64(time.Millisecond))
	s.frameCount.Add(1)
	s.visibility.Call(struct{}{})
}

func (s *Shell) reload(doc *content.Document) {
	if !s.mounted {
		return
	}
	s.page.SetDocument(doc)
	s.typer.SetWords(doc.Taglines)
	s.typer.SetVisible(s.page.View().HeroVisible())
}

func (s *Shell) keystroke(deleting bool) {
	p := s.player()
	if p == nil {
		return
	}
	kind := audio.ClickType
	if deleting {
		kind = audio.ClickDelete
	}
	p.Click(kind)
}

func (s *Shell) quit() {
	s.doneOnce.Do(func() { close(s.done) })
}
