package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-folio/app"
	"github.com/lixenwraith/vi-folio/core"
	"github.com/lixenwraith/vi-folio/perf"
	"github.com/lixenwraith/vi-folio/render"
)

type flags struct {
	content       string
	watch         bool
	theme         string
	reducedMotion bool
	headless      bool
	hud           bool
	sound         bool
	metricsAddr   string
	debug         bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "vi-folio",
		Short:        "Terminal portfolio page with an adaptive particle backdrop",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.content, "content", "", "YAML content file (embedded default when empty)")
	fs.BoolVar(&f.watch, "watch", false, "reload the content file when it changes")
	fs.StringVar(&f.theme, "theme", "auto", "color theme: auto, dark, light")
	fs.BoolVar(&f.reducedMotion, "reduced-motion", false, "prefer reduced motion (low tier)")
	fs.BoolVar(&f.headless, "headless-probe", false, "skip host capability probing")
	fs.BoolVar(&f.hud, "hud", false, "show the performance overlay at start")
	fs.BoolVar(&f.sound, "sound", false, "enable typewriter key clicks")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.BoolVar(&f.debug, "debug", false, "write debug logs under "+logDir)
	return cmd
}

func run(ctx context.Context, f flags) error {
	log, logFile := setupLogging(f.debug)
	if logFile != nil {
		defer logFile.Close()
	}
	defer log.Sync()

	theme, err := render.ParseTheme(f.theme)
	if err != nil {
		return err
	}

	var platform perf.Platform = perf.Headless{}
	if !f.headless {
		platform = perf.HostPlatform{ReducedMotion: f.reducedMotion, Log: log.Named("probe")}
	} else if f.reducedMotion {
		platform = perf.StaticPlatform{ReducedMotion: true}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.SetCrashTerminal(screen)
	defer func() {
		core.SetCrashTerminal(nil)
		screen.Fini()
	}()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	screen.EnableMouse()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx, app.Config{
		ContentPath: f.content,
		Watch:       f.watch,
		Theme:       theme,
		Platform:    platform,
		HUD:         f.hud,
		Sound:       f.sound,
		MetricsAddr: f.metricsAddr,
		Log:         log,
	}, screen)
}
