package status

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricMapReturnsStablePointer(t *testing.T) {
	reg := NewRegistry()

	p1 := reg.Floats.Get(KeyFPS)
	p2 := reg.Floats.Get(KeyFPS)
	require.Same(t, p1, p2)

	p1.Set(58)
	assert.Equal(t, 58.0, reg.Floats.Get(KeyFPS).Get())

	_, ok := reg.Ints.Lookup(KeyFrames)
	assert.False(t, ok, "Lookup must not allocate")
	assert.Equal(t, 1, reg.TotalCount())
}

func TestAtomicLabelTruncates(t *testing.T) {
	var l AtomicLabel
	assert.Equal(t, "", l.Get())

	l.Set("medium")
	assert.Equal(t, "medium", l.Get())

	l.Set("a-label-that-is-far-too-long-for-the-hud")
	assert.Len(t, l.Get(), MaxLabelLen)
}

func TestSnapshotCopiesValues(t *testing.T) {
	reg := NewRegistry()
	reg.Floats.Get(KeyFPS).Set(42)
	reg.Ints.Get(KeyParticles).Store(24)
	reg.Bools.Get(KeyLowPerformance).Store(true)
	reg.Labels.Get(KeyTier).Set("low")

	snap := reg.Snapshot()
	reg.Floats.Get(KeyFPS).Set(60)

	assert.Equal(t, 42.0, snap.Floats[KeyFPS])
	assert.Equal(t, int64(24), snap.Ints[KeyParticles])
	assert.True(t, snap.Bools[KeyLowPerformance])
	assert.Equal(t, "low", snap.Labels[KeyTier])
}

func TestRangeIsSortedAndConcurrentSafe(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for _, k := range []string{"c", "a", "b"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				reg.Ints.Get(key).Add(1)
			}
		}(k)
	}
	wg.Wait()

	var keys []string
	reg.Ints.Range(func(k string, v *atomic.Int64) {
		keys = append(keys, k)
		assert.Equal(t, int64(100), v.Load())
	})
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}
