package parameter

import "time"

// Frame Loop & Scheduling
const (
	// FrameUpdateInterval is the frame loop interval (~60 FPS)
	FrameUpdateInterval = time.Second / 60

	// FrameRateTarget is the nominal frame rate the loop is paced for
	FrameRateTarget = 60

	// LowPriorityDelay is the extra timer delay applied before frame-aligned low priority work
	LowPriorityDelay = 1 * time.Millisecond
)
