package perf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/vi-folio/engine"
	"github.com/lixenwraith/vi-folio/parameter"
)

func TestMeterAverage(t *testing.T) {
	clock := engine.NewMockTimeProvider(epoch)
	m := NewMeter(clock)

	assert.Zero(t, m.Average("render"))

	m.Measure("render", func() { clock.Advance(4 * time.Millisecond) })
	m.Measure("render", func() { clock.Advance(8 * time.Millisecond) })
	assert.Equal(t, 6*time.Millisecond, m.Average("render"))
	assert.Zero(t, m.Average("layout"))
}

func TestMeterUnmatchedEndIgnored(t *testing.T) {
	m := NewMeter(engine.NewMockTimeProvider(epoch))
	m.End("render")
	assert.Zero(t, m.Average("render"))
}

func TestMeterWindowBounded(t *testing.T) {
	clock := engine.NewMockTimeProvider(epoch)
	m := NewMeter(clock)

	for i := 0; i < parameter.MeasureWindow; i++ {
		m.Measure("render", func() { clock.Advance(100 * time.Millisecond) })
	}
	for i := 0; i < parameter.MeasureWindow; i++ {
		m.Measure("render", func() { clock.Advance(2 * time.Millisecond) })
	}
	assert.Equal(t, 2*time.Millisecond, m.Average("render"))
}
