package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-folio/engine"
	"github.com/lixenwraith/vi-folio/parameter"
)

func TestAwaitReturnsWhenTaskPanics(t *testing.T) {
	loop := engine.NewLoop(parameter.FrameUpdateInterval)
	loop.Start()
	t.Cleanup(loop.Stop)

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		await(loop, func() { panic("teardown fault") })
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "await blocked after a panicking task")
	}

	ran := false
	await(loop, func() { ran = true })
	assert.True(t, ran, "loop keeps serving tasks")
}
