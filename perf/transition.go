package perf

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/vi-folio/parameter"
)

// Easing is a cubic bezier control pair (x1, y1, x2, y2)
type Easing [4]float64

// EasingSmooth is the default transition curve
var EasingSmooth = Easing{0.65, 0, 0.35, 1}

// Transition describes how animated UI values move toward their targets
type Transition struct {
	Duration  time.Duration
	Stiffness float64
	Damping   float64
	Mass      float64
	Easing    Easing
}

// BaseTransition is the medium quality preset
func BaseTransition() Transition {
	return Transition{
		Duration:  parameter.TransitionDuration,
		Stiffness: parameter.SpringStiffness,
		Damping:   parameter.SpringDamping,
		Mass:      parameter.SpringMass,
		Easing:    EasingSmooth,
	}
}

// Transition returns the preset for the current quality
// Low shortens and softens the spring; high lengthens and stiffens it
func (s Settings) Transition() Transition {
	t := BaseTransition()
	switch s.Quality {
	case QualityLow:
		t.Duration = scaleDuration(t.Duration, parameter.QualityLowScale)
		t.Stiffness *= parameter.QualityLowScale
		t.Damping *= parameter.QualityHighScale
	case QualityHigh:
		t.Duration = scaleDuration(t.Duration, parameter.QualityHighScale)
		t.Stiffness *= parameter.QualityHighScale
		t.Damping *= parameter.QualityLowScale
	}
	return t
}

// AngularFrequency is sqrt(k/m)
func (t Transition) AngularFrequency() float64 {
	return math.Sqrt(t.Stiffness / t.Mass)
}

// DampingRatio is c / (2*sqrt(k*m))
func (t Transition) DampingRatio() float64 {
	return t.Damping / (2 * math.Sqrt(t.Stiffness*t.Mass))
}

// Spring builds a harmonica spring stepping at fps
func (t Transition) Spring(fps int) harmonica.Spring {
	if fps <= 0 {
		fps = parameter.FrameRateTarget
	}
	return harmonica.NewSpring(harmonica.FPS(fps), t.AngularFrequency(), t.DampingRatio())
}

func scaleDuration(d time.Duration, f float64) time.Duration {
	return time.Duration(math.Round(float64(d) * f))
}
