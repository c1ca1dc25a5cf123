// Package typewriter cycles hero taglines with a typing and deleting animation
package typewriter

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-folio/engine"
	"github.com/lixenwraith/vi-folio/parameter"
	"github.com/lixenwraith/vi-folio/perf"
)

// Phase is the current direction of the animation
type Phase int

const (
	PhaseTyping Phase = iota
	PhaseDeleting
)

func (p Phase) String() string {
	if p == PhaseDeleting {
		return "deleting"
	}
	return "typing"
}

// SettingsSource provides the transition duration the delays scale with
type SettingsSource interface {
	Settings() perf.Settings
}

// Timing holds per-step delays derived from a transition duration
type Timing struct {
	Typing   time.Duration
	Deleting time.Duration
	Pause    time.Duration
}

// TimingFor scales the delays with d, floored at the typing and deleting minimums
func TimingFor(d time.Duration) Timing {
	return Timing{
		Typing:   max(parameter.TypewriterTypingMin, time.Duration(float64(d)*parameter.TypewriterTypingFactor)),
		Deleting: max(parameter.TypewriterDeletingMin, time.Duration(float64(d)*parameter.TypewriterDeletingFactor)),
		Pause:    parameter.TypewriterPause,
	}
}

// Option configures a Typewriter
type Option func(*Typewriter)

// WithKeystroke registers fn to run after every character typed or deleted
func WithKeystroke(fn func(deleting bool)) Option {
	return func(t *Typewriter) { t.keystroke = fn }
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(t *Typewriter) { t.log = log }
}

// Typewriter types each word, holds it, deletes it and moves to the next
// It advances only while visible; all methods run on the loop goroutine
type Typewriter struct {
	sched  engine.Scheduler
	source SettingsSource
	log    *zap.Logger

	words   [][]rune
	index   int
	shown   int
	phase   Phase
	visible bool
	timer   engine.Handle

	keystroke func(deleting bool)
}

// New creates a hidden typewriter over words
func New(sched engine.Scheduler, source SettingsSource, words []string, opts ...Option) *Typewriter {
	t := &Typewriter{
		sched:  sched,
		source: source,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.setWords(words)
	return t
}

// SetVisible starts or pauses the animation; the displayed text is kept while hidden
func (t *Typewriter) SetVisible(v bool) {
	if t.visible == v {
		return
	}
	t.visible = v
	if v {
		t.schedule()
	} else {
		t.cancel()
	}
}

// Visible reports whether the animation is advancing
func (t *Typewriter) Visible() bool {
	return t.visible
}

// SetWords replaces the word list and restarts from an empty first word
func (t *Typewriter) SetWords(words []string) {
	t.cancel()
	t.setWords(words)
	t.schedule()
}

// Stop cancels the pending step and hides the typewriter
func (t *Typewriter) Stop() {
	t.visible = false
	t.cancel()
}

// Text returns the displayed prefix of the current word
func (t *Typewriter) Text() string {
	if len(t.words) == 0 {
		return ""
	}
	return string(t.words[t.index][:t.shown])
}

// Index returns the current word index
func (t *Typewriter) Index() int {
	return t.index
}

// Phase returns the current direction
func (t *Typewriter) Phase() Phase {
	return t.phase
}

// Timing returns the delays for the current settings
func (t *Typewriter) Timing() Timing {
	return TimingFor(t.source.Settings().Transition().Duration)
}

func (t *Typewriter) setWords(words []string) {
	t.words = t.words[:0]
	for _, w := range words {
		if w != "" {
			t.words = append(t.words, []rune(w))
		}
	}
	t.index, t.shown, t.phase = 0, 0, PhaseTyping
}

func (t *Typewriter) cancel() {
	if t.timer != 0 {
		t.sched.CancelTimer(t.timer)
		t.timer = 0
	}
}

// schedule arms the single pending step for the current state
func (t *Typewriter) schedule() {
	if !t.visible || len(t.words) == 0 || t.timer != 0 {
		return
	}
	timing := t.Timing()
	word := t.words[t.index]

	switch t.phase {
	case PhaseTyping:
		if t.shown == len(word) {
			t.after(timing.Pause, func() { t.phase = PhaseDeleting })
			return
		}
		t.after(timing.Typing, func() {
			t.shown++
			t.click(false)
		})
	case PhaseDeleting:
		if t.shown == 0 {
			t.phase = PhaseTyping
			t.index = (t.index + 1) % len(t.words)
			t.schedule()
			return
		}
		t.after(timing.Deleting, func() {
			t.shown--
			t.click(true)
		})
	}
}

func (t *Typewriter) after(d time.Duration, step func()) {
	t.timer = t.sched.AfterFunc(d, func() {
		t.timer = 0
		defer t.schedule()
		step()
	})
}

func (t *Typewriter) click(deleting bool) {
	if t.keystroke != nil {
		t.keystroke(deleting)
	}
}
