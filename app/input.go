package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-folio/page"
	"github.com/lixenwraith/vi-folio/parameter"
)

// HandleEvent routes one terminal event
// Events arrive from the poller goroutine through Post, so this runs on the loop goroutine
func (s *Shell) HandleEvent(ev tcell.Event) {
	if !s.mounted {
		return
	}
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		s.resize.Call(size{w: w, h: h})
	case *tcell.EventKey:
		s.handleKey(ev)
	case *tcell.EventMouse:
		switch btn := ev.Buttons(); {
		case btn&tcell.WheelUp != 0:
			s.scrollBy(-parameter.ScrollStepRows)
		case btn&tcell.WheelDown != 0:
			s.scrollBy(parameter.ScrollStepRows)
		}
	}
}

func (s *Shell) handleKey(ev *tcell.EventKey) {
	view := s.page.View()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		s.quit()
	case tcell.KeyUp:
		s.scrollBy(-1)
	case tcell.KeyDown:
		s.scrollBy(1)
	case tcell.KeyPgUp:
		s.scrollTo(view.Offset() - float64(view.Rows()))
	case tcell.KeyPgDn:
		s.scrollTo(view.Offset() + float64(view.Rows()))
	case tcell.KeyHome:
		s.scrollTo(0)
	case tcell.KeyEnd:
		s.scrollTo(view.MaxOffset())
	case tcell.KeyRune:
		s.handleRune(ev.Rune())
	}
}

func (s *Shell) handleRune(r rune) {
	switch r {
	case 'q':
		s.quit()
	case 'j':
		s.scrollBy(1)
	case 'k':
		s.scrollBy(-1)
	case 't':
		s.toggleTheme()
	case 'h':
		s.page.HUD().Toggle()
	case 'm':
		if p := s.player(); p != nil {
			p.ToggleMute()
		}
	default:
		if id, ok := page.SectionForKey(s.page.Nav(), r); ok {
			s.scroller.ScrollToID(id, s.scrollDuration(parameter.SmoothScrollDuration), parameter.ScrollHeaderOffset)
		}
	}
}

// scrollBy accumulates line steps and applies them on the next frame
func (s *Shell) scrollBy(rows int) {
	s.wheelDelta += rows
	s.wheel.Call(s.wheelDelta)
}

func (s *Shell) applyWheel(rows int) {
	s.wheelDelta = 0
	if rows == 0 {
		return
	}
	s.scroller.ScrollTo(s.page.View().Offset()+float64(rows), 0)
}

func (s *Shell) scrollTo(target float64) {
	s.scroller.ScrollTo(target, s.scrollDuration(parameter.ScrollToDefaultDuration))
}

// scrollDuration jumps instead of animating when smooth scrolling is off
func (s *Shell) scrollDuration(d time.Duration) time.Duration {
	if !s.controller.Settings().EnableSmoothScrolling {
		return 0
	}
	return d
}

func (s *Shell) toggleTheme() {
	t := s.page.Theme().Toggle()
	s.page.SetTheme(t)
	s.field.SetTheme(t)
	s.sync.Call(struct{}{})
	s.log.Debug("theme toggled", zap.Stringer("theme", t))
}

func (s *Shell) applyResize(sz size) {
	if !s.mounted {
		return
	}
	if err := s.page.Resize(sz.w, sz.h); err != nil {
		s.log.Warn("resize", zap.Int("width", sz.w), zap.Int("height", sz.h), zap.Error(err))
	}
	if s.field.Mounted() {
		s.field.Resize()
	} else {
		s.field.Mount()
	}
	s.sync.Call(struct{}{})
}
