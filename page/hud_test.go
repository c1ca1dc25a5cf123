package page

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/vi-folio/status"
)

func TestFPSLabel(t *testing.T) {
	tests := []struct {
		fps  float64
		want string
	}{
		{60, "Excellent"},
		{55, "Excellent"},
		{54.9, "Good"},
		{45, "Good"},
		{44, "Fair"},
		{30, "Fair"},
		{29, "Poor"},
		{0, "Poor"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FPSLabel(tt.fps), "fps %v", tt.fps)
	}
}

func TestHUDLines(t *testing.T) {
	reg := status.NewRegistry()
	reg.Floats.Get(status.KeyFPS).Set(50)
	reg.Floats.Get(status.KeyRenderMillis).Set(1.3)
	reg.Labels.Get(status.KeyTier).Set("medium")
	reg.Labels.Get(status.KeyQuality).Set("low")
	reg.Ints.Get(status.KeyParticles).Store(15)

	h := NewHUD(reg, false)
	lines := h.Lines()
	assert.Equal(t, []string{
		"FPS: 50 (Good)",
		"Render: 1.3ms",
		"Tier: medium  Quality: low",
		"Particles: 15",
	}, lines)

	reg.Bools.Get(status.KeyLowPerformance).Store(true)
	assert.Contains(t, h.Lines(), "Performance mode: Low")

	assert.True(t, h.Toggle())
	assert.True(t, h.Visible())
}
