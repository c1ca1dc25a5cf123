package parameter

import "time"

// Layout
const (
	// NavBarHeight is the fixed navigation row at the top
	NavBarHeight = 1

	// ContentMaxWidth caps the wrapped text column
	ContentMaxWidth = 76

	// ContentIndent is the left padding of section bodies
	ContentIndent = 2

	// HeroMinHeight is the smallest hero block, below it the particle surface is not acquired
	HeroMinHeight = 4

	// HUDWidth is the performance overlay width in cells
	HUDWidth = 30
)

// Typewriter
const (
	// TypewriterTypingMin and TypewriterDeletingMin bound per-character delays
	TypewriterTypingMin   = 100 * time.Millisecond
	TypewriterDeletingMin = 80 * time.Millisecond

	// TypewriterTypingFactor and TypewriterDeletingFactor scale the transition duration
	TypewriterTypingFactor   = 0.25
	TypewriterDeletingFactor = 0.2

	// TypewriterPause is the hold time on a completed word
	TypewriterPause = 2 * time.Second
)

// Logging
const (
	// LogDir and LogFileName locate the debug log
	LogDir      = "logs"
	LogFileName = "vi-folio.log"
)
