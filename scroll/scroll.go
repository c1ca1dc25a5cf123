// Package scroll animates the document scroll offset with an ease-out quartic curve
package scroll

import (
	"math"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-folio/engine"
	"github.com/lixenwraith/vi-folio/status"
)

// Viewport owns the scroll offset; SetOffset may clamp to the document bounds
type Viewport interface {
	Offset() float64
	SetOffset(y float64)
}

// Element is a scroll target
type Element interface {
	// ViewportTop returns the element's top relative to the visible area, ok is false once detached
	ViewportTop() (top float64, ok bool)
}

// Locator resolves element identifiers
type Locator interface {
	Lookup(id string) (Element, bool)
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithRegistry publishes the offset and animation state
func WithRegistry(reg *status.Registry) Option {
	return func(e *Engine) {
		e.offsetGauge = reg.Floats.Get(status.KeyScrollOffset)
		e.animFlag = reg.Bools.Get(status.KeyScrollAnimating)
	}
}

type animation struct {
	from, to float64
	start    time.Time
	duration time.Duration
}

// Engine runs at most one scroll animation; a new request replaces the running one
// All methods run on the loop goroutine
type Engine struct {
	sched    engine.Scheduler
	viewport Viewport
	locator  Locator
	log      *zap.Logger

	anim   *animation
	handle engine.Handle

	offsetGauge *status.AtomicFloat
	animFlag    *atomic.Bool
}

// NewEngine creates an idle engine; locator may be nil when only numeric targets are used
func NewEngine(sched engine.Scheduler, viewport Viewport, locator Locator, opts ...Option) *Engine {
	e := &Engine{
		sched:    sched,
		viewport: viewport,
		locator:  locator,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScrollTo animates the offset to target over duration, jumping when duration <= 0
func (e *Engine) ScrollTo(target float64, duration time.Duration) {
	e.Stop()

	if duration <= 0 {
		e.set(target)
		return
	}
	e.anim = &animation{
		from:     e.viewport.Offset(),
		to:       target,
		start:    e.sched.Now(),
		duration: duration,
	}
	e.handle = e.sched.RequestFrame(e.frame)
	e.publishAnimating()
}

// ScrollToElement scrolls so el's top lands offset rows below the viewport top
// A detached element is ignored
func (e *Engine) ScrollToElement(el Element, duration time.Duration, offset float64) {
	if el == nil {
		return
	}
	top, ok := el.ViewportTop()
	if !ok {
		e.log.Debug("scroll target detached")
		return
	}
	e.ScrollTo(e.viewport.Offset()+top+offset, duration)
}

// ScrollToID resolves id and scrolls to it; unknown ids are ignored
func (e *Engine) ScrollToID(id string, duration time.Duration, offset float64) {
	if e.locator == nil {
		return
	}
	el, ok := e.locator.Lookup(id)
	if !ok {
		e.log.Debug("scroll target not found", zap.String("id", id))
		return
	}
	e.ScrollToElement(el, duration, offset)
}

// Stop cancels the running animation, leaving the offset where it is; safe to repeat
func (e *Engine) Stop() {
	if e.anim == nil {
		return
	}
	e.sched.CancelFrame(e.handle)
	e.handle = 0
	e.anim = nil
	e.publishAnimating()
}

// Scrolling reports whether an animation is running
func (e *Engine) Scrolling() bool {
	return e.anim != nil
}

func (e *Engine) frame(now time.Time) {
	a := e.anim
	if a == nil {
		return
	}
	p := math.Min(float64(now.Sub(a.start))/float64(a.duration), 1)
	if p < 0 {
		p = 0
	}
	if p < 1 {
		e.handle = e.sched.RequestFrame(e.frame)
	} else {
		e.anim = nil
		e.handle = 0
		defer e.publishAnimating()
	}
	e.set(a.from + (a.to-a.from)*EaseOutQuart(p))
}

func (e *Engine) set(y float64) {
	e.viewport.SetOffset(y)
	if e.offsetGauge != nil {
		e.offsetGauge.Set(e.viewport.Offset())
	}
}

func (e *Engine) publishAnimating() {
	if e.animFlag != nil {
		e.animFlag.Store(e.anim != nil)
	}
}

// EaseOutQuart is 1-(1-t)^4
func EaseOutQuart(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u*u
}
