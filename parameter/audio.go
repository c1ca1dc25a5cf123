package parameter

import "time"

// Typewriter Key Click
const (
	// AudioSampleRate is the output sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferDuration sizes the speaker buffer
	AudioBufferDuration = 100 * time.Millisecond

	// ClickDuration, ClickAttack, ClickRelease shape a single key click
	ClickDuration = 18 * time.Millisecond
	ClickAttack   = 1 * time.Millisecond
	ClickRelease  = 12 * time.Millisecond

	// ClickTypeFreq and ClickDeleteFreq distinguish typing from deleting
	ClickTypeFreq   = 1900.0
	ClickDeleteFreq = 1200.0

	// ClickVolume is the linear click gain
	ClickVolume = 0.25
)
