package render

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Theme selects the page palette
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

func (t Theme) String() string {
	if t == ThemeLight {
		return "light"
	}
	return "dark"
}

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Palette holds the colors a theme paints with
type Palette struct {
	Background colorful.Color
	Text       colorful.Color
	Muted      colorful.Color
	Accent     colorful.Color
	Particle   colorful.Color

	// ParticleAlphaMin and ParticleAlphaSpread bound each particle's base intensity
	ParticleAlphaMin    float64
	ParticleAlphaSpread float64
}

var (
	darkPalette = Palette{
		Background:          colorful.Color{R: 0.04, G: 0.05, B: 0.08},
		Text:                colorful.Color{R: 0.90, G: 0.91, B: 0.93},
		Muted:               colorful.Color{R: 0.55, G: 0.58, B: 0.64},
		Accent:              colorful.Color{R: 0.38, G: 0.65, B: 0.98},
		Particle:            colorful.Color{R: 1, G: 1, B: 1},
		ParticleAlphaMin:    0.55,
		ParticleAlphaSpread: 0.45,
	}
	lightPalette = Palette{
		Background:          colorful.Color{R: 0.98, G: 0.98, B: 0.97},
		Text:                colorful.Color{R: 0.09, G: 0.10, B: 0.12},
		Muted:               colorful.Color{R: 0.42, G: 0.45, B: 0.50},
		Accent:              colorful.Color{R: 0.15, G: 0.39, B: 0.92},
		Particle:            colorful.Color{R: 0, G: 0, B: 0},
		ParticleAlphaMin:    0.35,
		ParticleAlphaSpread: 0.30,
	}
)

// Palette returns the theme's colors
func (t Theme) Palette() Palette {
	if t == ThemeLight {
		return lightPalette
	}
	return darkPalette
}

// ParseTheme accepts "auto", "dark" or "light"; auto asks the terminal for its background
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectTheme(), nil
	case "dark":
		return ThemeDark, nil
	case "light":
		return ThemeLight, nil
	default:
		return ThemeDark, fmt.Errorf("unknown theme %q", s)
	}
}

// DetectTheme queries the terminal background, dark when it cannot tell
func DetectTheme() Theme {
	if termenv.HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}
