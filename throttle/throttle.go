// Package throttle rate-limits callbacks on the loop scheduler
// Every wrapper runs fn on the loop goroutine and offers Cancel to drop pending work
package throttle

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/lixenwraith/vi-folio/engine"
	"github.com/lixenwraith/vi-folio/parameter"
)

// Throttler invokes fn on the leading call and drops calls arriving within delay of the last invocation
type Throttler[T any] struct {
	sched   engine.Scheduler
	limiter *rate.Limiter
	fn      func(T)
}

// Throttle wraps fn
func Throttle[T any](sched engine.Scheduler, delay time.Duration, fn func(T)) *Throttler[T] {
	return &Throttler[T]{
		sched:   sched,
		limiter: rate.NewLimiter(rate.Every(delay), 1),
		fn:      fn,
	}
}

// Call invokes fn now unless throttled; it reports whether fn ran
func (t *Throttler[T]) Call(arg T) bool {
	if !t.limiter.AllowN(t.sched.Now(), 1) {
		return false
	}
	t.fn(arg)
	return true
}

// Cancel resets the window so the next call fires immediately
func (t *Throttler[T]) Cancel() {
	t.limiter = rate.NewLimiter(t.limiter.Limit(), 1)
}

// Debouncer invokes fn once delay has passed since the latest call, with that call's argument
type Debouncer[T any] struct {
	sched engine.Scheduler
	delay time.Duration
	fn    func(T)
	timer engine.Handle
	last  T
	armed bool
}

// Debounce wraps fn
func Debounce[T any](sched engine.Scheduler, delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{sched: sched, delay: delay, fn: fn}
}

// Call re-arms the quiet-period timer
func (d *Debouncer[T]) Call(arg T) {
	d.last = arg
	if d.armed {
		d.sched.CancelTimer(d.timer)
	}
	d.armed = true
	d.timer = d.sched.AfterFunc(d.delay, d.fire)
}

// Pending reports whether a call is waiting for its quiet period
func (d *Debouncer[T]) Pending() bool {
	return d.armed
}

// Cancel drops the pending call
func (d *Debouncer[T]) Cancel() {
	if !d.armed {
		return
	}
	d.sched.CancelTimer(d.timer)
	d.armed = false
	var zero T
	d.last = zero
}

func (d *Debouncer[T]) fire() {
	arg := d.last
	d.armed = false
	var zero T
	d.last = zero
	d.fn(arg)
}

// Framer coalesces calls into at most one invocation per frame with the latest argument
type Framer[T any] struct {
	sched  engine.Scheduler
	fn     func(T)
	handle engine.Handle
	last   T
	armed  bool
}

// Frame wraps fn
func Frame[T any](sched engine.Scheduler, fn func(T)) *Framer[T] {
	return &Framer[T]{sched: sched, fn: fn}
}

// Call records arg and requests a frame when none is pending
func (f *Framer[T]) Call(arg T) {
	f.last = arg
	if f.armed {
		return
	}
	f.armed = true
	f.handle = f.sched.RequestFrame(f.run)
}

// Pending reports whether an invocation is waiting for a frame
func (f *Framer[T]) Pending() bool {
	return f.armed
}

// Cancel drops the pending invocation
func (f *Framer[T]) Cancel() {
	if !f.armed {
		return
	}
	f.sched.CancelFrame(f.handle)
	f.armed = false
	var zero T
	f.last = zero
}

func (f *Framer[T]) run(time.Time) {
	arg := f.last
	f.armed = false
	var zero T
	f.last = zero
	f.fn(arg)
}

// Priority selects how soon Smooth runs its callback
type Priority int

const (
	// PriorityHigh runs on the next frame
	PriorityHigh Priority = iota
	// PriorityNormal yields one loop turn, then waits for a frame
	PriorityNormal
	// PriorityLow waits parameter.LowPriorityDelay, then a frame
	PriorityLow
)

// Smoother is a Framer whose frame request is deferred by priority
type Smoother[T any] struct {
	sched    engine.Scheduler
	priority Priority
	fn       func(T)

	last      T
	scheduled bool
	timer     engine.Handle
	frame     engine.Handle
	// gen invalidates a deferred Post after Cancel, since posted tasks cannot be withdrawn
	gen uint64
}

// Smooth wraps fn
func Smooth[T any](sched engine.Scheduler, priority Priority, fn func(T)) *Smoother[T] {
	return &Smoother[T]{sched: sched, priority: priority, fn: fn}
}

// Call records arg and schedules one invocation when none is pending
func (s *Smoother[T]) Call(arg T) {
	s.last = arg
	if s.scheduled {
		return
	}
	s.scheduled = true

	switch s.priority {
	case PriorityHigh:
		s.frame = s.sched.RequestFrame(s.run)
	case PriorityLow:
		s.timer = s.sched.AfterFunc(parameter.LowPriorityDelay, s.requestFrame)
	default:
		gen := s.gen
		s.sched.Post(func() {
			if gen == s.gen && s.scheduled {
				s.requestFrame()
			}
		})
	}
}

// Pending reports whether an invocation is scheduled
func (s *Smoother[T]) Pending() bool {
	return s.scheduled
}

// Cancel drops the scheduled invocation
func (s *Smoother[T]) Cancel() {
	if !s.scheduled {
		return
	}
	s.gen++
	s.sched.CancelTimer(s.timer)
	s.sched.CancelFrame(s.frame)
	s.timer, s.frame = 0, 0
	s.scheduled = false
	var zero T
	s.last = zero
}

func (s *Smoother[T]) requestFrame() {
	s.timer = 0
	s.frame = s.sched.RequestFrame(s.run)
}

func (s *Smoother[T]) run(time.Time) {
	arg := s.last
	s.frame = 0
	s.scheduled = false
	var zero T
	s.last = zero
	s.fn(arg)
}
