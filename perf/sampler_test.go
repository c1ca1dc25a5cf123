package perf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-folio/engine"
	"github.com/lixenwraith/vi-folio/status"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestSamplerDefaultsBeforeFirstWindow(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	s := NewSampler(loop)
	assert.Equal(t, 60.0, s.CurrentFPS())

	s.Start()
	loop.Advance(1500 * time.Millisecond)
	assert.Equal(t, 60.0, s.CurrentFPS(), "window not yet closed")
}

func TestSamplerRecomputesAfterTwoSecondsAt30FPS(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	loop.SetFrameRate(30)
	reg := status.NewRegistry()

	s := NewSampler(loop, WithRegistry(reg))
	s.Start()
	loop.Advance(2000 * time.Millisecond)

	assert.InDelta(t, 30.0, s.CurrentFPS(), 0.5)
	assert.InDelta(t, 30.0, reg.Floats.Get(status.KeyFPS).Get(), 0.5)
}

func TestSamplerTracksRateChanges(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	s := NewSampler(loop)
	s.Start()

	loop.Advance(2 * time.Second)
	assert.InDelta(t, 60.0, s.CurrentFPS(), 0.5)

	loop.SetFrameRate(40)
	loop.Advance(4 * time.Second)
	assert.InDelta(t, 40.0, s.CurrentFPS(), 1)
}

func TestSamplerStartIdempotent(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	s := NewSampler(loop)

	s.Start()
	s.Start()
	assert.Equal(t, 1, loop.Pending(), "a second Start must not register another callback")
}

func TestSamplerStopIdempotentLeavesNothingScheduled(t *testing.T) {
	loop := engine.NewVirtualLoop(epoch)
	s := NewSampler(loop)
	s.Start()
	loop.RunFrames(10)

	require.NotPanics(t, func() {
		s.Stop()
		s.Stop()
		s.Stop()
	})
	assert.False(t, s.Running())
	assert.Equal(t, 0, loop.Pending())

	loop.Advance(3 * time.Second)
	assert.Equal(t, 0, loop.Pending())
}
