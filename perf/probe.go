package perf

import (
	"context"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-folio/parameter"
)

// Hints are the device capability signals a tier is derived from
// Zero MemoryGB or Cores means the signal is unavailable
type Hints struct {
	MemoryGB      float64
	Cores         int
	ReducedMotion bool
}

// Platform reports capability hints; ok is false when the platform exposes none
type Platform interface {
	Hints() (h Hints, ok bool)
}

// TierFor classifies hints
// Reduced motion, or memory and cores both known and both under the low bounds, gives low.
// Memory and cores both known and both at or over the high bounds gives high. Anything else is medium.
func TierFor(h Hints) Tier {
	if h.ReducedMotion {
		return TierLow
	}
	known := h.MemoryGB > 0 && h.Cores > 0
	if !known {
		return TierMedium
	}
	if h.MemoryGB < parameter.TierLowMemoryGB && h.Cores < parameter.TierLowCores {
		return TierLow
	}
	if h.MemoryGB >= parameter.TierHighMemoryGB && h.Cores >= parameter.TierHighCores {
		return TierHigh
	}
	return TierMedium
}

// ProbeTier derives the session tier, medium when p is nil or exposes no hints
func ProbeTier(p Platform) Tier {
	if p == nil {
		return TierMedium
	}
	h, ok := p.Hints()
	if !ok {
		return TierMedium
	}
	return TierFor(h)
}

// Headless is a Platform without any capability hints
type Headless struct{}

// Hints implements Platform
func (Headless) Hints() (Hints, bool) {
	return Hints{}, false
}

// StaticPlatform reports fixed hints
type StaticPlatform Hints

// Hints implements Platform
func (p StaticPlatform) Hints() (Hints, bool) {
	return Hints(p), true
}

// hostProbeTimeout bounds each gopsutil query
const hostProbeTimeout = 500 * time.Millisecond

// HostPlatform reads memory and core count from the host
// Query failures leave the affected hint unknown and are logged at debug level
type HostPlatform struct {
	// ReducedMotion forces the reduced motion preference regardless of the environment
	ReducedMotion bool
	Log           *zap.Logger
}

// Hints implements Platform
func (p HostPlatform) Hints() (Hints, bool) {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), hostProbeTimeout)
	defer cancel()

	h := Hints{ReducedMotion: p.ReducedMotion || reducedMotionFromEnv()}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		log.Debug("memory probe failed", zap.Error(err))
	} else {
		h.MemoryGB = float64(vm.Total) / (1 << 30)
	}

	if n, err := cpu.CountsWithContext(ctx, true); err != nil || n <= 0 {
		log.Debug("cpu probe failed, using runtime count", zap.Error(err))
		h.Cores = runtime.NumCPU()
	} else {
		h.Cores = n
	}

	return h, true
}

// reducedMotionFromEnv accepts any value strconv.ParseBool treats as true, plus "reduce"
func reducedMotionFromEnv() bool {
	v, ok := os.LookupEnv(parameter.ReducedMotionEnv)
	if !ok {
		return false
	}
	if v == "reduce" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
