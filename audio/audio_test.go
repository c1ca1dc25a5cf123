package audio

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lixenwraith/vi-folio/parameter"
)

const testRate = beep.SampleRate(parameter.AudioSampleRate)

type fakeSink struct {
	initErr error
	inits   int
	closes  int
	streams []beep.Streamer
}

func (f *fakeSink) Init(beep.SampleRate) error {
	f.inits++
	return f.initErr
}

func (f *fakeSink) Play(s beep.Streamer) { f.streams = append(f.streams, s) }

func (f *fakeSink) Close() { f.closes++ }

// drain streams s to completion and returns all frames
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	samples := drain(NewOscillator(440, 10*time.Millisecond, WaveSine, testRate))
	assert.Len(t, samples, testRate.N(10*time.Millisecond))
	for _, s := range samples {
		assert.LessOrEqual(t, math.Abs(s[0]), 1.0)
		assert.Equal(t, s[0], s[1])
	}
}

func TestSquareWaveAlternates(t *testing.T) {
	samples := drain(NewOscillator(1000, 5*time.Millisecond, WaveSquare, testRate))
	var pos, neg int
	for _, s := range samples {
		switch s[0] {
		case 1:
			pos++
		case -1:
			neg++
		default:
			t.Fatalf("square sample %v", s[0])
		}
	}
	assert.Positive(t, pos)
	assert.Positive(t, neg)
}

func TestEnvelopeRampsToSilence(t *testing.T) {
	d := 10 * time.Millisecond
	samples := drain(NewEnvelope(NewOscillator(0, d, WaveSquare, testRate), d, 2*time.Millisecond, 4*time.Millisecond, testRate))
	require.NotEmpty(t, samples)

	assert.Equal(t, 0.0, samples[0][0], "attack starts silent")
	mid := samples[testRate.N(5*time.Millisecond)][0]
	assert.InDelta(t, 1.0, mid, 1e-9, "sustain is full level")
	assert.Less(t, samples[len(samples)-1][0], 0.05, "release ends near silence")
}

func TestClickIsBoundedAndShort(t *testing.T) {
	for _, kind := range []ClickKind{ClickType, ClickDelete} {
		samples := drain(NewClick(kind, testRate))
		assert.LessOrEqual(t, len(samples), testRate.N(parameter.ClickDuration))
		var peak float64
		for _, s := range samples {
			peak = math.Max(peak, math.Abs(s[0]))
		}
		assert.Positive(t, peak)
		assert.LessOrEqual(t, peak, parameter.ClickVolume+1e-9)
	}
}

func TestPlayerRequiresOpen(t *testing.T) {
	sink := &fakeSink{}
	p := NewPlayer(sink)

	assert.False(t, p.Click(ClickType))
	require.NoError(t, p.Open())
	require.NoError(t, p.Open())
	assert.Equal(t, 1, sink.inits)

	assert.True(t, p.Click(ClickType))
	assert.True(t, p.Click(ClickDelete))
	assert.Len(t, sink.streams, 2)
	assert.Equal(t, uint64(2), p.Played())

	p.Close()
	p.Close()
	assert.Equal(t, 1, sink.closes)
	assert.False(t, p.Click(ClickType))
}

func TestPlayerMute(t *testing.T) {
	sink := &fakeSink{}
	p := NewPlayer(sink)
	require.NoError(t, p.Open())

	assert.True(t, p.ToggleMute())
	assert.False(t, p.Click(ClickType))
	assert.False(t, p.ToggleMute())
	assert.True(t, p.Click(ClickType))

	assert.False(t, p.Muted())
	assert.Len(t, sink.streams, 1)
}

func TestServiceDegradesWhenSinkFails(t *testing.T) {
	sink := &fakeSink{initErr: errors.New("no device")}
	svc := NewService(true, sink, zaptest.NewLogger(t))

	require.NoError(t, svc.Init())
	require.NoError(t, svc.Start(context.Background()))
	assert.True(t, svc.Disabled())
	assert.Nil(t, svc.Player())
	require.NoError(t, svc.Stop())
}

func TestServiceDisabledNeverOpens(t *testing.T) {
	sink := &fakeSink{}
	svc := NewService(false, sink, nil)

	require.NoError(t, svc.Init())
	require.NoError(t, svc.Start(context.Background()))
	assert.Zero(t, sink.inits)
	assert.Nil(t, svc.Player())
}

func TestServiceEnabled(t *testing.T) {
	sink := &fakeSink{}
	svc := NewService(true, sink, nil)

	require.NoError(t, svc.Init())
	require.NoError(t, svc.Start(context.Background()))
	require.NotNil(t, svc.Player())
	assert.True(t, svc.Player().Click(ClickType))
	require.NoError(t, svc.Stop())
	assert.Equal(t, 1, sink.closes)
}
