package page

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-folio/perf"
	"github.com/lixenwraith/vi-folio/render"
	"github.com/lixenwraith/vi-folio/status"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(s tcell.Screen) string {
	_, h := s.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = rowText(s, y)
	}
	return strings.Join(rows, "\n")
}

func TestDrawNavAndHero(t *testing.T) {
	doc := defaultDoc(t)
	scr := newScreen(t, 80, 24)
	p := New(doc, 80, 24, render.ThemeDark, status.NewRegistry(), false)
	p.SetTagline(func() string { return "Backend" })

	p.Draw(scr, perf.SettingsForTier(perf.TierMedium, 50))

	nav := rowText(scr, 0)
	assert.Contains(t, nav, doc.Name)
	assert.Contains(t, nav, "1 About")
	assert.Contains(t, nav, "2 Experience")

	text := screenText(scr)
	assert.Contains(t, text, doc.Headline)
	assert.Contains(t, text, "Backend▌")
}

func TestDrawScrolledSection(t *testing.T) {
	scr := newScreen(t, 80, 24)
	p := New(defaultDoc(t), 80, 24, render.ThemeLight, status.NewRegistry(), false)

	row, ok := p.View().Layout().Anchor("experience")
	require.True(t, ok)
	p.View().SetOffset(float64(row))
	require.Equal(t, float64(row), p.View().Offset())
	p.Draw(scr, perf.Settings{})

	assert.True(t, strings.HasPrefix(rowText(scr, 1), "  ## Experience"))
}

func TestSurfaceTooSmall(t *testing.T) {
	p := New(defaultDoc(t), 80, 6, render.ThemeDark, status.NewRegistry(), false)
	_, err := p.Surface()
	require.ErrorIs(t, err, render.ErrSurfaceTooSmall)

	require.NoError(t, p.Resize(80, 24))
	c, err := p.Surface()
	require.NoError(t, err)
	cols, rows := c.Cells()
	assert.Equal(t, 80, cols)
	assert.Equal(t, 11, rows)

	again, err := p.Surface()
	require.NoError(t, err)
	assert.Same(t, c, again)

	assert.ErrorIs(t, p.Resize(80, 5), render.ErrSurfaceTooSmall)
}

func TestHeroCanvasDrawnWithParallax(t *testing.T) {
	scr := newScreen(t, 40, 21)
	p := New(defaultDoc(t), 40, 21, render.ThemeDark, status.NewRegistry(), false)
	c, err := p.Surface()
	require.NoError(t, err)

	// one dot in the canvas's bottom hero row, away from the centered text
	c.Plot(0, 9*render.DotsY, render.ThemeDark.Palette().Particle, 1)

	p.View().SetOffset(4)
	p.Draw(scr, perf.Settings{EnableParallax: true})
	r, _, _, _ := scr.GetContent(0, 1+9-4+2)
	assert.NotEqual(t, ' ', r, "layer lags by half the offset")

	p.Draw(scr, perf.Settings{EnableParallax: false})
	r, _, _, _ = scr.GetContent(0, 1+9-4)
	assert.NotEqual(t, ' ', r, "layer scrolls with the document")
}

func TestProgressBarAppearsAfterThreshold(t *testing.T) {
	scr := newScreen(t, 80, 24)
	p := New(defaultDoc(t), 80, 24, render.ThemeDark, status.NewRegistry(), false)

	p.Update()
	assert.False(t, p.Progress().Visible())

	p.View().SetOffset(p.View().MaxOffset())
	for i := 0; i < 120; i++ {
		p.Update()
	}
	require.True(t, p.Progress().Visible())
	assert.InDelta(t, 1.0, p.Progress().Fill(), 0.01)

	p.Draw(scr, perf.Settings{})
	r, _, _, _ := scr.GetContent(79, 23)
	assert.Equal(t, '━', r)
}

func TestHUDDrawn(t *testing.T) {
	scr := newScreen(t, 80, 24)
	reg := status.NewRegistry()
	reg.Floats.Get(status.KeyFPS).Set(58)
	p := New(defaultDoc(t), 80, 24, render.ThemeDark, reg, true)

	p.Draw(scr, perf.Settings{})
	assert.Contains(t, rowText(scr, 1), "FPS: 58 (Excellent)")

	p.HUD().Toggle()
	p.Draw(scr, perf.Settings{})
	assert.NotContains(t, rowText(scr, 1), "FPS")
}

func TestSetDocumentRefreshesNav(t *testing.T) {
	doc := defaultDoc(t)
	p := New(doc, 80, 24, render.ThemeDark, status.NewRegistry(), false)
	require.Len(t, p.Nav(), len(doc.Sections))

	trimmed := *doc
	trimmed.Sections = doc.Sections[:2]
	p.SetDocument(&trimmed)
	assert.Len(t, p.Nav(), 2)

	id, ok := SectionForKey(p.Nav(), '2')
	assert.True(t, ok)
	assert.Equal(t, doc.Sections[1].ID, id)
	_, ok = SectionForKey(p.Nav(), '3')
	assert.False(t, ok)
}
