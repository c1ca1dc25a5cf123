package page

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-folio/content"
	"github.com/lixenwraith/vi-folio/parameter"
	"github.com/lixenwraith/vi-folio/perf"
	"github.com/lixenwraith/vi-folio/render"
	"github.com/lixenwraith/vi-folio/status"
)

// Page composes the layout, view, hero canvas and overlays drawn each frame
// All methods run on the loop goroutine
type Page struct {
	doc    *content.Document
	view   *View
	nav    []NavItem
	canvas *render.Canvas
	theme  render.Theme

	hud      *HUD
	progress *ProgressBar
	tagline  func() string

	width, height int
}

// New lays out doc for a width x height screen
func New(doc *content.Document, width, height int, theme render.Theme, reg *status.Registry, hudVisible bool) *Page {
	p := &Page{
		doc:      doc,
		theme:    theme,
		hud:      NewHUD(reg, hudVisible),
		progress: NewProgressBar(perf.BaseTransition()),
		tagline:  func() string { return "" },
	}
	p.width, p.height = max(width, 1), max(height, 1)
	p.view = NewView(p.build(), p.viewRows())
	p.refreshNav()
	return p
}

// heroRows sizes the hero block to half the content area
func (p *Page) heroRows() int {
	return max(0, (p.height-parameter.NavBarHeight)/2)
}

func (p *Page) viewRows() int {
	return max(1, p.height-parameter.NavBarHeight)
}

func (p *Page) build() *Layout {
	return Build(p.doc, p.width, p.heroRows())
}

func (p *Page) refreshNav() {
	titles := make(map[string]string, len(p.doc.Sections))
	for _, s := range p.doc.Sections {
		titles[s.ID] = s.Title
	}
	p.nav = NavItems(titles, p.view.Layout().SectionIDs())
}

// View returns the scroll viewport
func (p *Page) View() *View {
	return p.view
}

// HUD returns the performance overlay
func (p *Page) HUD() *HUD {
	return p.hud
}

// Progress returns the scroll progress bar
func (p *Page) Progress() *ProgressBar {
	return p.progress
}

// Nav returns the numbered navigation entries
func (p *Page) Nav() []NavItem {
	return p.nav
}

// Document returns the displayed document
func (p *Page) Document() *content.Document {
	return p.doc
}

// SetTagline sets the source of the hero tagline text
func (p *Page) SetTagline(fn func() string) {
	p.tagline = fn
}

// SetTheme switches the palette
func (p *Page) SetTheme(t render.Theme) {
	p.theme = t
	if p.canvas != nil {
		p.canvas.SetBackground(t.Palette().Background)
	}
}

// Theme returns the active theme
func (p *Page) Theme() render.Theme {
	return p.theme
}

// SetDocument swaps content, keeping the scroll offset where possible
func (p *Page) SetDocument(doc *content.Document) {
	p.doc = doc
	p.view.SetLayout(p.build())
	p.refreshNav()
}

// Surface returns the hero canvas, creating it on first use
// It fails when the hero block is too small to animate
func (p *Page) Surface() (*render.Canvas, error) {
	rows := p.heroRows()
	if rows < parameter.HeroMinHeight {
		return nil, fmt.Errorf("hero %d rows: %w", rows, render.ErrSurfaceTooSmall)
	}
	if p.canvas == nil {
		c, err := render.NewCanvas(p.width, rows)
		if err != nil {
			return nil, err
		}
		c.SetBackground(p.theme.Palette().Background)
		p.canvas = c
	}
	return p.canvas, nil
}

// Resize re-lays out for new screen dimensions
func (p *Page) Resize(width, height int) error {
	p.width, p.height = max(width, 1), max(height, 1)
	p.view.SetLayout(p.build())
	p.view.Resize(p.viewRows())
	if p.canvas == nil {
		return nil
	}
	rows := p.heroRows()
	if rows < parameter.HeroMinHeight {
		return fmt.Errorf("hero %d rows: %w", rows, render.ErrSurfaceTooSmall)
	}
	return p.canvas.Resize(p.width, rows)
}

// SetTransition retunes eased overlays to the settings transition
func (p *Page) SetTransition(t perf.Transition) {
	p.progress.SetTransition(t)
}

// Update advances per-frame overlay state
func (p *Page) Update() {
	p.progress.Update(p.view)
}

// Draw paints the whole page
func (p *Page) Draw(screen tcell.Screen, s perf.Settings) {
	pal := p.theme.Palette()
	bg := render.ToTcell(pal.Background)
	base := tcell.StyleDefault.Background(bg).Foreground(render.ToTcell(pal.Text))
	muted := base.Foreground(render.ToTcell(pal.Muted))
	accent := base.Foreground(render.ToTcell(pal.Accent))

	screen.Fill(' ', base)

	top := parameter.NavBarHeight
	row := p.view.Row()
	layout := p.view.Layout()

	if p.canvas != nil && p.view.HeroVisible() {
		y := top - row + p.view.ParallaxShift(s.EnableParallax)
		p.canvas.Draw(screen, 0, y, top, p.height, base)
	}

	for i := 0; i < p.view.Rows(); i++ {
		idx := row + i
		if idx >= layout.Height() {
			break
		}
		p.drawLine(screen, layout.Lines[idx], top+i, base, muted, accent)
	}

	drawNav(screen, p.nav, p.doc.Name, p.view.CurrentSection(), muted, accent)
	p.progress.Draw(screen, p.height-1, accent)
	p.hud.Draw(screen, top, base.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
}

func (p *Page) drawLine(screen tcell.Screen, line Line, y int, base, muted, accent tcell.Style) {
	center := func(text string, st tcell.Style) {
		x := max(0, (p.width-stringWidth(text))/2)
		drawText(screen, x, y, p.width-x, text, st, false)
	}
	switch line.Kind {
	case LineBlank:
	case LineName:
		center(line.Text, accent.Bold(true))
	case LineHeadline:
		center(line.Text, base)
	case LineTagline:
		center(p.tagline()+"▌", muted)
	case LineHeading:
		drawText(screen, line.Indent, y, p.width-line.Indent, "## "+line.Text, accent.Bold(true), false)
	case LineBody:
		drawText(screen, line.Indent, y, p.width-line.Indent, line.Text, base, false)
	case LineItem:
		drawText(screen, line.Indent, y, p.width-line.Indent, line.Text, muted, false)
	}
}
