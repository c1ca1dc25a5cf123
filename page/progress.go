package page

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-folio/parameter"
	"github.com/lixenwraith/vi-folio/perf"
)

// ProgressBar is the scroll progress indicator
// Its fill follows the scroll position through a damped spring tuned by the settings transition
type ProgressBar struct {
	spring  harmonica.Spring
	pos     float64
	vel     float64
	target  float64
	visible bool
}

// NewProgressBar creates a hidden bar
func NewProgressBar(t perf.Transition) *ProgressBar {
	p := &ProgressBar{}
	p.SetTransition(t)
	return p
}

// SetTransition retunes the spring
func (p *ProgressBar) SetTransition(t perf.Transition) {
	p.spring = t.Spring(parameter.FrameRateTarget)
}

// Update steps the spring toward the view's progress; called once per frame
func (p *ProgressBar) Update(v *View) {
	p.visible = v.Offset() > parameter.ScrollProgressThreshold
	p.target = v.Progress()
	p.pos, p.vel = p.spring.Update(p.pos, p.vel, p.target)
}

// Visible reports whether the bar is shown
func (p *ProgressBar) Visible() bool {
	return p.visible
}

// Fill returns the eased fill fraction in [0, 1]
func (p *ProgressBar) Fill() float64 {
	return math.Max(0, math.Min(1, p.pos))
}

// Width returns the filled cells for a bar of cols cells
func (p *ProgressBar) Width(cols int) int {
	return int(math.Round(p.Fill() * float64(cols)))
}

// Draw paints the bar on row y
func (p *ProgressBar) Draw(screen tcell.Screen, y int, style tcell.Style) {
	if !p.visible {
		return
	}
	w, _ := screen.Size()
	for x := 0; x < p.Width(w); x++ {
		screen.SetContent(x, y, '━', nil, style)
	}
}
