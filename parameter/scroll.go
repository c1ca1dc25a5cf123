package parameter

import "time"

// Scrolling & Input Rate Limits
const (
	// ScrollThrottleDelay limits wheel-driven scroll steps (~60 Hz)
	ScrollThrottleDelay = 16 * time.Millisecond

	// ResizeDebounceDelay is the quiet period before a terminal resize is applied
	ResizeDebounceDelay = 100 * time.Millisecond

	// SmoothScrollDuration is the section navigation scroll duration
	SmoothScrollDuration = 400 * time.Millisecond

	// ScrollToDefaultDuration is used by scroll calls that pass no duration
	ScrollToDefaultDuration = 600 * time.Millisecond

	// ScrollStepRows is the distance of one line-scroll key press
	ScrollStepRows = 3

	// ScrollHeaderOffset compensates the fixed navigation bar when jumping to a section
	ScrollHeaderOffset = -1

	// ScrollProgressThreshold is the offset in rows after which the progress bar shows
	ScrollProgressThreshold = 6

	// ParallaxFactor is the hero layer scroll speed relative to the document
	ParallaxFactor = 0.5
)
