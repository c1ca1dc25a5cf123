package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat stores a float64 as its IEEE bits
// Zero value reads 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores val
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the value
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// MaxLabelLen bounds published labels so HUD rows keep a fixed width
const MaxLabelLen = 24

// AtomicLabel holds a short text value such as a tier or quality name
// Zero value reads ""
type AtomicLabel struct {
	ptr atomic.Pointer[string]
}

// Set stores val, truncated to MaxLabelLen bytes
func (l *AtomicLabel) Set(val string) {
	if len(val) > MaxLabelLen {
		val = val[:MaxLabelLen]
	}
	l.ptr.Store(&val)
}

// Get loads the value
func (l *AtomicLabel) Get() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
