package parameter

// Ambient Particle Field
const (
	// ParticleMaxCount is the configured maximum particle count, tier and recovery fractions apply to it
	ParticleMaxCount = 80

	// ParticleConnectionDistance is the pixel distance under which two particles get a connecting line
	ParticleConnectionDistance = 24.0

	// ParticleMaxConnections caps connecting segments drawn per frame regardless of particle count
	ParticleMaxConnections = 20

	// ParticleConnectionMinCount is the count at or below which connections are never drawn
	ParticleConnectionMinCount = 10

	// ParticleLifeStep is the life increment per simulation step
	ParticleLifeStep = 0.5

	// ParticleLifeMax is the upper bound of the initial random life
	ParticleLifeMax = 100.0

	// ParticleMaxLifeBase and ParticleMaxLifeSpread bound the randomized life limit
	ParticleMaxLifeBase   = 100.0
	ParticleMaxLifeSpread = 50.0

	// ParticleSpeedScale scales the [-0.5, 0.5) velocity draw, pixels per step
	ParticleSpeedScale = 0.6

	// ParticleRadiusMin and ParticleRadiusSpread bound the particle radius in pixels
	ParticleRadiusMin    = 0.5
	ParticleRadiusSpread = 1.5

	// ParticleBounceDamping is the velocity factor applied on boundary contact
	ParticleBounceDamping = -0.8

	// ParticleOpacityBase and ParticleOpacityAmp shape the sinusoidal life envelope
	ParticleOpacityBase = 0.3
	ParticleOpacityAmp  = 0.4

	// ParticleConnectionAlpha is the peak alpha of a connecting line at zero distance
	ParticleConnectionAlpha = 0.35
)
