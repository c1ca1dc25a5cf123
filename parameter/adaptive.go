package parameter

import "time"

// Adaptive Settings
const (
	// SettingsPollInterval is how often the controller re-reads the frame sampler
	SettingsPollInterval = 2000 * time.Millisecond

	// FPSSampleWindow is the minimum elapsed time between frame rate recomputes
	FPSSampleWindow = 2000 * time.Millisecond

	// FPSDefault is reported before the first sample completes
	FPSDefault = 60.0

	// FPSCritical is the rate under which low-performance mode is forced with no particles
	FPSCritical = 45.0

	// FPSRecover is the boundary of the hysteresis band, entering below it and leaving above it
	FPSRecover = 55.0

	// FPSFair is the HUD boundary between fair and poor
	FPSFair = 30.0

	// ParticleFractionDegraded is the budget fraction kept when entering low-performance mode
	ParticleFractionDegraded = 0.3

	// ParticleFractionRecovered is the count fraction restored when leaving low-performance mode
	ParticleFractionRecovered = 0.7

	// ParticleFractionLowTier is the budget fraction for low tier devices
	ParticleFractionLowTier = 0.4

	// MeasureWindow is the number of samples kept per named measurement
	MeasureWindow = 60
)

// Device Tiering
const (
	// TierLowMemoryGB and TierLowCores are strict upper bounds for the low tier
	TierLowMemoryGB = 4.0
	TierLowCores    = 4

	// TierHighMemoryGB and TierHighCores are inclusive lower bounds for the high tier
	TierHighMemoryGB = 8.0
	TierHighCores    = 8

	// ReducedMotionEnv is the environment variable honored as the reduced motion preference
	ReducedMotionEnv = "REDUCE_MOTION"
)

// Transition Presets
const (
	// TransitionDuration is the base transition duration at medium quality
	TransitionDuration = 600 * time.Millisecond

	// SpringStiffness, SpringDamping, SpringMass are the base spring coefficients
	SpringStiffness = 400.0
	SpringDamping   = 40.0
	SpringMass      = 0.5

	// QualityLowScale and QualityHighScale stretch durations and stiffness per quality
	QualityLowScale  = 0.8
	QualityHighScale = 1.2
)
