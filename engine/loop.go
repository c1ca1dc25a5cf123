package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-folio/core"
)

// Loop is the real-time Scheduler: one goroutine paced by a frame ticker
// Timers are serviced between frames without busy-wait
type Loop struct {
	q        queue
	clock    TimeProvider
	interval time.Duration
	log      *zap.Logger

	// Control channels
	wake     chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Frame counter for diagnostics
	frameCount atomic.Uint64
}

// LoopOption configures a Loop
type LoopOption func(*Loop)

// WithTimeProvider replaces the monotonic clock
func WithTimeProvider(p TimeProvider) LoopOption {
	return func(l *Loop) { l.clock = p }
}

// WithLogger routes recovered callback panics to log
func WithLogger(log *zap.Logger) LoopOption {
	return func(l *Loop) { l.log = log }
}

// NewLoop creates a loop dispatching frames every interval
func NewLoop(interval time.Duration, opts ...LoopOption) *Loop {
	l := &Loop{
		clock:    NewMonotonicTimeProvider(),
		interval: interval,
		log:      zap.NewNop(),
		wake:     make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.q.init(func(r any) {
		l.log.Error("frame callback panicked", zap.Any("panic", r), zap.Stack("stack"))
	})
	return l
}

// Now implements Scheduler
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// RequestFrame implements Scheduler
func (l *Loop) RequestFrame(fn FrameFunc) Handle {
	return l.q.requestFrame(fn)
}

// CancelFrame implements Scheduler
func (l *Loop) CancelFrame(h Handle) {
	l.q.cancelFrame(h)
}

// AfterFunc implements Scheduler
func (l *Loop) AfterFunc(d time.Duration, fn func()) Handle {
	h := l.q.afterFunc(l.clock.Now(), d, fn)
	l.signal()
	return h
}

// CancelTimer implements Scheduler
func (l *Loop) CancelTimer(h Handle) {
	l.q.cancelTimer(h)
}

// Post implements Scheduler
func (l *Loop) Post(fn func()) {
	l.q.post(fn)
	l.signal()
}

// Frames returns the number of dispatched frames
func (l *Loop) Frames() uint64 {
	return l.frameCount.Load()
}

// Pending returns the number of live frame callbacks, timers and tasks
func (l *Loop) Pending() int {
	return l.q.pending()
}

// Start begins the loop goroutine
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		core.Go(l.run)
	}
}

// Stop halts the loop and waits for the in-flight turn to finish
// Pending work is left queued; safe to call multiple times
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
		if l.running.CompareAndSwap(true, false) {
			l.wg.Wait()
		}
	})
}

// signal wakes the loop to recompute its timer deadline, non-blocking
func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	timer := time.NewTimer(0)
	timer.Stop()
	defer timer.Stop()

	for {
		timer.Stop()
		if due, ok := l.q.nextDue(); ok {
			timer.Reset(max(0, due.Sub(l.clock.Now())))
		}

		select {
		case <-l.stopChan:
			return

		case <-l.wake:
			l.q.runTasks()

		case <-timer.C:
			l.q.runTasks()
			l.q.runTimers(l.clock.Now())

		case <-ticker.C:
			now := l.clock.Now()
			l.q.runTasks()
			l.q.runTimers(now)
			l.q.runFrame(now)
			l.frameCount.Add(1)
		}
	}
}
