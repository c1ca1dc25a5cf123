package particle

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/vi-folio/parameter"
	"github.com/lixenwraith/vi-folio/render"
)

// Particle is one ambient dot; it is recycled in place and never removed
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Color   colorful.Color
	Alpha   float64 // theme base intensity
	Opacity float64 // life envelope
	Life    float64
	MaxLife float64
}

// Rand is the random source, satisfied by *math/rand/v2.Rand
type Rand interface {
	Float64() float64
}

// spawn fills p with a fresh random state inside w x h
func spawn(p *Particle, rng Rand, w, h float64, pal render.Palette) {
	p.X = rng.Float64() * w
	p.Y = rng.Float64() * h
	p.VX = (rng.Float64() - 0.5) * parameter.ParticleSpeedScale
	p.VY = (rng.Float64() - 0.5) * parameter.ParticleSpeedScale
	p.Radius = parameter.ParticleRadiusMin + rng.Float64()*parameter.ParticleRadiusSpread
	p.Color = pal.Particle
	p.Alpha = pal.ParticleAlphaMin + rng.Float64()*pal.ParticleAlphaSpread
	p.Life = rng.Float64() * parameter.ParticleLifeMax
	p.MaxLife = parameter.ParticleMaxLifeBase + rng.Float64()*parameter.ParticleMaxLifeSpread
	p.Opacity = envelope(p.Life, p.MaxLife)
}

// step advances p by one simulation tick within w x h
// Expired particles respawn at a random point before the bounds check, so a recycled particle is
// always inside the surface
func step(p *Particle, rng Rand, w, h float64) {
	p.X += p.VX
	p.Y += p.VY

	p.Life += parameter.ParticleLifeStep
	if p.Life > p.MaxLife {
		p.Life = 0
		p.X = rng.Float64() * w
		p.Y = rng.Float64() * h
	}

	if p.X < 0 || p.X > w {
		p.VX *= parameter.ParticleBounceDamping
		p.X = math.Max(0, math.Min(w, p.X))
	}
	if p.Y < 0 || p.Y > h {
		p.VY *= parameter.ParticleBounceDamping
		p.Y = math.Max(0, math.Min(h, p.Y))
	}

	p.Opacity = envelope(p.Life, p.MaxLife)
}

// envelope fades in and out over a lifetime without popping
func envelope(life, maxLife float64) float64 {
	return parameter.ParticleOpacityBase + parameter.ParticleOpacityAmp*math.Sin(life/maxLife*math.Pi)
}
