package throttle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-folio/engine"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestThrottleLeadingCallAndWindow(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	var got []int
	th := Throttle(loop, 100*time.Millisecond, func(v int) { got = append(got, v) })

	assert.True(t, th.Call(1))
	assert.False(t, th.Call(2))

	loop.Advance(50 * time.Millisecond)
	assert.False(t, th.Call(3))

	loop.Advance(50 * time.Millisecond)
	assert.True(t, th.Call(4))

	assert.Equal(t, []int{1, 4}, got)
}

func TestThrottleCancelResetsWindow(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	calls := 0
	th := Throttle(loop, time.Second, func(struct{}) { calls++ })

	th.Call(struct{}{})
	th.Cancel()
	th.Call(struct{}{})
	assert.Equal(t, 2, calls)
}

func TestDebounceFiresAfterQuiet(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	var got []string
	var at time.Time
	d := Debounce(loop, 100*time.Millisecond, func(v string) {
		got = append(got, v)
		at = loop.Now()
	})

	d.Call("a")
	loop.Advance(60 * time.Millisecond)
	d.Call("b")
	loop.Advance(60 * time.Millisecond)
	d.Call("c")
	assert.True(t, d.Pending())
	assert.Empty(t, got)

	loop.Advance(100 * time.Millisecond)
	assert.Equal(t, []string{"c"}, got)
	assert.True(t, at.Equal(epoch.Add(220*time.Millisecond)))
	assert.False(t, d.Pending())
}

func TestDebounceCancel(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	calls := 0
	d := Debounce(loop, 10*time.Millisecond, func(int) { calls++ })

	d.Call(1)
	d.Cancel()
	d.Cancel()
	loop.Advance(time.Second)

	assert.Zero(t, calls)
	assert.Equal(t, 0, loop.Pending())
}

func TestFrameCoalescesToLatest(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	var got []int
	f := Frame(loop, func(v int) { got = append(got, v) })

	f.Call(1)
	f.Call(2)
	f.Call(3)
	assert.Equal(t, 1, loop.Pending())

	loop.RunFrames(1)
	assert.Equal(t, []int{3}, got)

	loop.RunFrames(1)
	assert.Equal(t, []int{3}, got, "no call, no invocation")

	f.Call(4)
	f.Cancel()
	loop.RunFrames(2)
	assert.Equal(t, []int{3}, got)
	assert.Equal(t, 0, loop.Pending())
}

func TestSmoothPriorities(t *testing.T) {
	// Every priority lands on the first frame when time advances frame by frame
	tests := []struct {
		name     string
		priority Priority
	}{
		{"high", PriorityHigh},
		{"normal", PriorityNormal},
		{"low", PriorityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop := engine.NewVirtualLoop(epoch)
			var got []int
			s := Smooth(loop, tt.priority, func(v int) { got = append(got, v) })

			s.Call(1)
			s.Call(2)
			require.True(t, s.Pending())

			loop.RunFrames(1)
			assert.Equal(t, []int{2}, got)
			assert.False(t, s.Pending())
			assert.Equal(t, 0, loop.Pending())
		})
	}
}

func TestSmoothNormalDefersPastCurrentTurn(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	calls := 0
	s := Smooth(loop, PriorityNormal, func(int) { calls++ })

	s.Call(1)
	loop.Flush()
	assert.Zero(t, calls, "a flushed task only requests the frame")
	loop.RunFrames(1)
	assert.Equal(t, 1, calls)
}

func TestSmoothLowWaitsForTimer(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	var at time.Time
	s := Smooth(loop, PriorityLow, func(int) { at = loop.Now() })

	s.Call(1)
	loop.RunFrames(1)
	// Timer at 1ms then the frame at 16.67ms
	assert.True(t, at.Equal(epoch.Add(16666667*time.Nanosecond)), "got %v", at.Sub(epoch))
}

func TestSmoothCancelDropsEveryStage(t *testing.T) {
	for _, p := range []Priority{PriorityHigh, PriorityNormal, PriorityLow} {
		loop := engine.NewVirtualLoop(epoch)
		calls := 0
		s := Smooth(loop, p, func(int) { calls++ })

		s.Call(1)
		s.Cancel()
		s.Cancel()
		loop.RunFrames(3)
		assert.Zero(t, calls)

		s.Call(2)
		loop.RunFrames(1)
		assert.Equal(t, 1, calls, "usable after cancel")
	}
}
