package engine

import (
	"math"
	"time"
)

// VirtualLoop is a deterministic Scheduler driven by explicit time advancement
// Frames land on a fixed grid anchored at the last SetFrameRate call, so a 30 Hz grid hits
// whole seconds exactly; used by tests and headless benchmarks
type VirtualLoop struct {
	q     queue
	clock *MockTimeProvider

	hz         float64
	origin     time.Time
	frameIndex int64
	frameCount uint64

	panics []any
}

// NewVirtualLoop creates a 60 Hz virtual loop starting at start
func NewVirtualLoop(start time.Time) *VirtualLoop {
	v := &VirtualLoop{
		clock:  NewMockTimeProvider(start),
		hz:     60,
		origin: start,
	}
	v.q.init(func(r any) { v.panics = append(v.panics, r) })
	return v
}

// SetFrameRate re-anchors the frame grid at the current time with the given rate
func (v *VirtualLoop) SetFrameRate(hz float64) {
	if hz <= 0 {
		hz = 60
	}
	v.hz = hz
	v.origin = v.clock.Now()
	v.frameIndex = 0
}

// Now implements Scheduler
func (v *VirtualLoop) Now() time.Time {
	return v.clock.Now()
}

// RequestFrame implements Scheduler
func (v *VirtualLoop) RequestFrame(fn FrameFunc) Handle {
	return v.q.requestFrame(fn)
}

// CancelFrame implements Scheduler
func (v *VirtualLoop) CancelFrame(h Handle) {
	v.q.cancelFrame(h)
}

// AfterFunc implements Scheduler
func (v *VirtualLoop) AfterFunc(d time.Duration, fn func()) Handle {
	return v.q.afterFunc(v.clock.Now(), d, fn)
}

// CancelTimer implements Scheduler
func (v *VirtualLoop) CancelTimer(h Handle) {
	v.q.cancelTimer(h)
}

// Post implements Scheduler
func (v *VirtualLoop) Post(fn func()) {
	v.q.post(fn)
}

// Flush runs posted tasks and timers already due without advancing time
func (v *VirtualLoop) Flush() {
	v.q.runTasks()
	v.q.runTimers(v.clock.Now())
}

// Advance moves time forward by d, dispatching every timer and frame that falls inside
func (v *VirtualLoop) Advance(d time.Duration) {
	target := v.clock.Now().Add(d)
	for {
		v.q.runTasks()

		next := v.nextFrameAt()
		due, hasTimer := v.q.nextDue()
		if hasTimer && !due.After(next) && !due.After(target) {
			v.clock.SetTime(due)
			v.q.runTimers(v.clock.Now())
			continue
		}
		if next.After(target) {
			break
		}
		v.stepFrame(next)
	}
	v.clock.SetTime(target)
	v.Flush()
}

// RunFrames dispatches exactly n frames, firing timers that fall between them
func (v *VirtualLoop) RunFrames(n int) {
	for i := 0; i < n; i++ {
		v.Advance(v.nextFrameAt().Sub(v.clock.Now()))
	}
}

// Frames returns the number of dispatched frames
func (v *VirtualLoop) Frames() uint64 {
	return v.frameCount
}

// Pending returns the number of live frame callbacks, timers and tasks
func (v *VirtualLoop) Pending() int {
	return v.q.pending()
}

// Panics returns values recovered from callbacks
func (v *VirtualLoop) Panics() []any {
	return v.panics
}

func (v *VirtualLoop) nextFrameAt() time.Time {
	ns := math.Round(float64(v.frameIndex+1) * float64(time.Second) / v.hz)
	return v.origin.Add(time.Duration(ns))
}

func (v *VirtualLoop) stepFrame(at time.Time) {
	v.clock.SetTime(at)
	v.frameIndex++
	v.q.runTasks()
	v.q.runTimers(at)
	v.q.runFrame(at)
	v.frameCount++
}
