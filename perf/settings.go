package perf

import (
	"math"

	"github.com/lixenwraith/vi-folio/parameter"
)

// Tier is the coarse device capability class, fixed for a session
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierHigh:
		return "high"
	default:
		return "medium"
	}
}

// Quality is the animation quality level
type Quality int

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
)

func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityHigh:
		return "high"
	default:
		return "medium"
	}
}

// Settings is the adaptive animation configuration handed to renderers by value
type Settings struct {
	EnableParticles       bool
	EnableSmoothScrolling bool
	EnableParallax        bool
	Quality               Quality

	// ParticleCount is the live pool size, always 0 while particles are disabled
	ParticleCount int

	// ParticleBudget is the count the last rule assigned; it becomes ParticleCount when particles are enabled
	ParticleBudget int
}

// normalize restores ParticleCount from the enabled flag and budget
func (s Settings) normalize() Settings {
	if s.ParticleBudget < 0 {
		s.ParticleBudget = 0
	}
	if s.EnableParticles {
		s.ParticleCount = s.ParticleBudget
	} else {
		s.ParticleCount = 0
	}
	return s
}

// SettingsForTier returns the initial settings of a tier for a given maximum particle count
func SettingsForTier(t Tier, maxParticles int) Settings {
	var s Settings
	switch t {
	case TierHigh:
		s = Settings{
			EnableParticles: true,
			EnableParallax:  true,
			Quality:         QualityHigh,
			ParticleBudget:  maxParticles,
		}
	case TierLow:
		s = Settings{
			Quality:        QualityLow,
			ParticleBudget: fraction(maxParticles, parameter.ParticleFractionLowTier),
		}
	default:
		s = Settings{
			EnableParticles: true,
			EnableParallax:  true,
			Quality:         QualityMedium,
			ParticleBudget:  fraction(maxParticles, parameter.ParticleFractionRecovered),
		}
	}
	s.EnableSmoothScrolling = true
	return s.normalize()
}

// fraction is floor(n*f)
func fraction(n int, f float64) int {
	return int(math.Floor(float64(n) * f))
}
