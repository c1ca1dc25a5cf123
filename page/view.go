package page

import (
	"math"

	"github.com/lixenwraith/vi-folio/parameter"
	"github.com/lixenwraith/vi-folio/scroll"
)

// View is the scrolled window over a Layout
// It is the scroll engine's viewport and element locator; the offset is in document rows
type View struct {
	layout *Layout
	rows   int
	offset float64
}

var (
	_ scroll.Viewport = (*View)(nil)
	_ scroll.Locator  = (*View)(nil)
)

// NewView creates a view showing rows document rows
func NewView(layout *Layout, rows int) *View {
	return &View{layout: layout, rows: max(rows, 1)}
}

// Offset implements scroll.Viewport
func (v *View) Offset() float64 {
	return v.offset
}

// SetOffset implements scroll.Viewport, clamping to the document
func (v *View) SetOffset(y float64) {
	v.offset = math.Max(0, math.Min(y, v.MaxOffset()))
}

// MaxOffset is the offset that shows the last row at the bottom
func (v *View) MaxOffset() float64 {
	return float64(max(0, v.layout.Height()-v.rows))
}

// Row returns the first visible document row
func (v *View) Row() int {
	return int(math.Round(v.offset))
}

// Rows returns the visible row count
func (v *View) Rows() int {
	return v.rows
}

// Layout returns the current layout
func (v *View) Layout() *Layout {
	return v.layout
}

// SetLayout swaps the layout and re-clamps the offset
func (v *View) SetLayout(l *Layout) {
	v.layout = l
	v.SetOffset(v.offset)
}

// Resize sets the visible row count and re-clamps the offset
func (v *View) Resize(rows int) {
	v.rows = max(rows, 1)
	v.SetOffset(v.offset)
}

// Progress returns the scroll position in [0, 1]
func (v *View) Progress() float64 {
	m := v.MaxOffset()
	if m == 0 {
		return 0
	}
	return v.offset / m
}

// HeroVisible reports whether any hero row is on screen
func (v *View) HeroVisible() bool {
	return v.offset < float64(v.layout.HeroRows)
}

// ParallaxShift returns how many rows the hero layer lags behind the document
func (v *View) ParallaxShift(enabled bool) int {
	if !enabled {
		return 0
	}
	return int(math.Round(v.offset * parameter.ParallaxFactor))
}

// CurrentSection returns the section at the top of the view
func (v *View) CurrentSection() string {
	return v.layout.SectionAt(v.Row() - parameter.ScrollHeaderOffset)
}

// Lookup implements scroll.Locator
func (v *View) Lookup(id string) (scroll.Element, bool) {
	if _, ok := v.layout.Anchor(id); !ok {
		return nil, false
	}
	return anchor{view: v, id: id}, true
}

// anchor resolves its row against the live layout so a reload that drops the section detaches it
type anchor struct {
	view *View
	id   string
}

func (a anchor) ViewportTop() (float64, bool) {
	row, ok := a.view.layout.Anchor(a.id)
	if !ok {
		return 0, false
	}
	return float64(row) - a.view.offset, true
}
