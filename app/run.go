package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-folio/core"
	"github.com/lixenwraith/vi-folio/engine"
	"github.com/lixenwraith/vi-folio/parameter"
)

// Run drives the shell on a real-time loop until the user quits or ctx ends
// The caller owns screen and finalizes it afterwards, which also ends the event poller
func Run(ctx context.Context, cfg Config, screen tcell.Screen) (err error) {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	loop := engine.NewLoop(parameter.FrameUpdateInterval, engine.WithLogger(log.Named("loop")))
	s := New(cfg, loop, screen)

	if err := s.hub.InitAll(); err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	if err := s.hub.StartAll(ctx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	log.Debug("services started", zap.Strings("order", s.hub.Order()))
	defer func() {
		if stopErr := s.hub.StopAll(); stopErr != nil {
			err = errors.Join(err, fmt.Errorf("stop services: %w", stopErr))
		}
	}()

	loop.Start()
	loop.Post(s.Mount)

	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			loop.Post(func() { s.HandleEvent(ev) })
		}
	})

	select {
	case <-ctx.Done():
	case <-s.Done():
	}

	await(loop, s.Teardown)
	loop.Stop()
	log.Info("shell stopped", zap.Uint64("frames", loop.Frames()))
	return nil
}

// await runs fn on the loop and blocks until it returns or panics
func await(loop *engine.Loop, fn func()) {
	done := make(chan struct{})
	loop.Post(func() {
		defer close(done)
		fn()
	})
	<-done
}
