package page

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-folio/parameter"
	"github.com/lixenwraith/vi-folio/status"
)

// FPSLabel grades a frame rate
func FPSLabel(fps float64) string {
	switch {
	case fps >= parameter.FPSRecover:
		return "Excellent"
	case fps >= parameter.FPSCritical:
		return "Good"
	case fps >= parameter.FPSFair:
		return "Fair"
	default:
		return "Poor"
	}
}

// HUD is the performance overlay, read from the status registry
type HUD struct {
	reg     *status.Registry
	visible bool
}

// NewHUD creates the overlay
func NewHUD(reg *status.Registry, visible bool) *HUD {
	return &HUD{reg: reg, visible: visible}
}

// Toggle flips visibility and returns the new state
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// Visible reports whether the overlay is drawn
func (h *HUD) Visible() bool {
	return h.visible
}

// Lines renders the overlay text
func (h *HUD) Lines() []string {
	snap := h.reg.Snapshot()
	fps := snap.Floats[status.KeyFPS]
	lines := []string{
		fmt.Sprintf("FPS: %.0f (%s)", fps, FPSLabel(fps)),
		fmt.Sprintf("Render: %.1fms", snap.Floats[status.KeyRenderMillis]),
		fmt.Sprintf("Tier: %s  Quality: %s", snap.Labels[status.KeyTier], snap.Labels[status.KeyQuality]),
		fmt.Sprintf("Particles: %d", snap.Ints[status.KeyParticles]),
	}
	if snap.Bools[status.KeyLowPerformance] {
		lines = append(lines, "Performance mode: Low")
	}
	return lines
}

// fpsColor matches the grade: green, yellow, red
func fpsColor(fps float64) tcell.Color {
	switch {
	case fps >= parameter.FPSRecover:
		return tcell.ColorGreen
	case fps >= parameter.FPSCritical:
		return tcell.ColorYellow
	default:
		return tcell.ColorRed
	}
}

// Draw paints the overlay in the top-right corner below row top
func (h *HUD) Draw(screen tcell.Screen, top int, style tcell.Style) {
	if !h.visible {
		return
	}
	w, sh := screen.Size()
	x := max(0, w-parameter.HUDWidth)
	lines := h.Lines()
	fps := h.reg.Floats.Get(status.KeyFPS).Get()

	for i, line := range lines {
		y := top + i
		if y >= sh {
			return
		}
		st := style
		if i == 0 {
			st = style.Foreground(fpsColor(fps))
		}
		drawText(screen, x, y, parameter.HUDWidth, " "+line, st, true)
	}
}
