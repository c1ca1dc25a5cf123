package scroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-folio/engine"
	"github.com/lixenwraith/vi-folio/status"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// recordingViewport logs every offset written, keyed by loop time
type recordingViewport struct {
	clock   engine.Scheduler
	offset  float64
	history map[time.Duration]float64
}

func newRecordingViewport(clock engine.Scheduler) *recordingViewport {
	return &recordingViewport{clock: clock, history: make(map[time.Duration]float64)}
}

func (v *recordingViewport) Offset() float64 { return v.offset }
func (v *recordingViewport) SetOffset(y float64) {
	v.offset = y
	v.history[v.clock.Now().Sub(epoch)] = y
}

// faultyViewport panics on the next write while armed
type faultyViewport struct {
	offset float64
	armed  bool
}

func (v *faultyViewport) Offset() float64 { return v.offset }

func (v *faultyViewport) SetOffset(y float64) {
	if v.armed {
		v.armed = false
		panic("viewport fault")
	}
	v.offset = y
}

type element struct {
	top      float64
	attached bool
}

func (e element) ViewportTop() (float64, bool) { return e.top, e.attached }

type locator map[string]Element

func (l locator) Lookup(id string) (Element, bool) {
	el, ok := l[id]
	return el, ok
}

func TestScrollTrajectory(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	vp := newRecordingViewport(loop)
	e := NewEngine(loop, vp, nil)

	e.ScrollTo(1000, 600*time.Millisecond)
	require.True(t, e.Scrolling())

	loop.Advance(time.Second)

	at150, ok := vp.history[150*time.Millisecond]
	require.True(t, ok)
	at300, ok := vp.history[300*time.Millisecond]
	require.True(t, ok)
	assert.Greater(t, at300, at150)
	assert.Greater(t, at150, 0.0)

	assert.Equal(t, 1000.0, vp.history[600*time.Millisecond])
	assert.Equal(t, 1000.0, vp.offset)
	assert.False(t, e.Scrolling())
	assert.Equal(t, 0, loop.Pending())
}

func TestScrollMonotonic(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	vp := newRecordingViewport(loop)
	e := NewEngine(loop, vp, nil)
	vp.offset = 200

	e.ScrollTo(0, 400*time.Millisecond)
	prev := 200.0
	for e.Scrolling() {
		loop.RunFrames(1)
		assert.LessOrEqual(t, vp.offset, prev)
		prev = vp.offset
	}
	assert.Equal(t, 0.0, vp.offset)
}

func TestScrollZeroDurationJumps(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	vp := newRecordingViewport(loop)
	e := NewEngine(loop, vp, nil)

	e.ScrollTo(42, 0)
	assert.Equal(t, 42.0, vp.offset)
	assert.False(t, e.Scrolling())
	assert.Equal(t, 0, loop.Pending())
}

func TestLastCallerWins(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	vp := newRecordingViewport(loop)
	e := NewEngine(loop, vp, nil)

	e.ScrollTo(1000, 600*time.Millisecond)
	loop.Advance(100 * time.Millisecond)
	e.ScrollTo(-50, 200*time.Millisecond)
	assert.Equal(t, 1, loop.Pending(), "the first animation's frame is cancelled")

	loop.Advance(time.Second)
	assert.Equal(t, -50.0, vp.offset)
	for at, y := range vp.history {
		if at > 100*time.Millisecond {
			assert.LessOrEqual(t, y, vp.history[100*time.Millisecond], "no frame of the first animation after the restart")
		}
	}
}

func TestScrollToElementAndID(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	vp := newRecordingViewport(loop)
	vp.offset = 10
	loc := locator{
		"about":    element{top: 25, attached: true},
		"detached": element{top: 5, attached: false},
	}
	e := NewEngine(loop, vp, loc)

	e.ScrollToID("about", 0, -1)
	assert.Equal(t, 34.0, vp.offset)

	e.ScrollToID("missing", 0, 0)
	assert.Equal(t, 34.0, vp.offset)

	e.ScrollToID("detached", 0, 0)
	assert.Equal(t, 34.0, vp.offset)

	e.ScrollToElement(nil, 0, 0)
	assert.Equal(t, 34.0, vp.offset)
}

func TestStopIdempotent(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	vp := newRecordingViewport(loop)
	reg := status.NewRegistry()
	e := NewEngine(loop, vp, nil, WithRegistry(reg))

	e.ScrollTo(100, time.Second)
	assert.True(t, reg.Bools.Get(status.KeyScrollAnimating).Load())
	loop.Advance(100 * time.Millisecond)
	held := vp.offset

	require.NotPanics(t, func() {
		e.Stop()
		e.Stop()
		e.Stop()
	})
	assert.False(t, e.Scrolling())
	assert.Equal(t, 0, loop.Pending())
	assert.False(t, reg.Bools.Get(status.KeyScrollAnimating).Load())

	loop.Advance(time.Second)
	assert.Equal(t, held, vp.offset)
	assert.Equal(t, held, reg.Floats.Get(status.KeyScrollOffset).Get())
}

func TestEaseOutQuart(t *testing.T) {
	assert.Equal(t, 0.0, EaseOutQuart(0))
	assert.Equal(t, 1.0, EaseOutQuart(1))
	assert.InDelta(t, 0.9375, EaseOutQuart(0.5), 1e-12)
}

func TestScrollSurvivesViewportPanic(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	vp := &faultyViewport{}
	e := NewEngine(loop, vp, nil)

	e.ScrollTo(500, 400*time.Millisecond)
	vp.armed = true
	loop.RunFrames(1)
	require.Len(t, loop.Panics(), 1)
	assert.True(t, e.Scrolling())

	loop.Advance(time.Second)
	assert.Equal(t, 500.0, vp.offset)
	assert.False(t, e.Scrolling())
	assert.Equal(t, 0, loop.Pending())
}
