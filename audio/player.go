package audio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-folio/parameter"
)

// Sink receives streams to play
type Sink interface {
	Init(rate beep.SampleRate) error
	Play(s beep.Streamer)
	Close()
}

// speakerSink plays through the system speaker behind one shared mixer
type speakerSink struct {
	mixer *beep.Mixer
}

func (s *speakerSink) Init(rate beep.SampleRate) error {
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	s.mixer = &beep.Mixer{}
	speaker.Play(s.mixer)
	return nil
}

func (s *speakerSink) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *speakerSink) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Player plays key clicks; safe for concurrent use
type Player struct {
	mu    sync.Mutex
	sink  Sink
	rate  beep.SampleRate
	ready bool

	muted  atomic.Bool
	played atomic.Uint64
}

// NewPlayer creates a player over sink; nil sink means the system speaker
func NewPlayer(sink Sink) *Player {
	if sink == nil {
		sink = &speakerSink{}
	}
	return &Player{sink: sink, rate: beep.SampleRate(parameter.AudioSampleRate)}
}

// Open initializes the sink
func (p *Player) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}
	if err := p.sink.Init(p.rate); err != nil {
		return err
	}
	p.ready = true
	return nil
}

// Close releases the sink; safe to repeat
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	p.sink.Close()
	p.ready = false
}

// Click plays one click unless muted or closed, reporting whether it was queued
func (p *Player) Click(kind ClickKind) bool {
	if p.muted.Load() {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return false
	}
	p.sink.Play(NewClick(kind, p.rate))
	p.played.Add(1)
	return true
}

// ToggleMute flips the mute state and returns the new value
func (p *Player) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Muted reports the mute state
func (p *Player) Muted() bool {
	return p.muted.Load()
}

// Played returns the number of queued clicks
func (p *Player) Played() uint64 {
	return p.played.Load()
}
