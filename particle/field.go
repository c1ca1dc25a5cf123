package particle

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-folio/engine"
	"github.com/lixenwraith/vi-folio/parameter"
	"github.com/lixenwraith/vi-folio/perf"
	"github.com/lixenwraith/vi-folio/render"
)

// Surface is the drawing target of a Field, in pixel coordinates
type Surface interface {
	Size() (w, h float64)
	Clear()
	FillCircle(cx, cy, r float64, col colorful.Color, alpha float64)
	Line(x0, y0, x1, y1 float64, col colorful.Color, alpha float64)
}

// Acquirer obtains the drawing surface when the field mounts
type Acquirer func() (Surface, error)

// SettingsSource supplies adaptive settings and change notifications
type SettingsSource interface {
	Settings() perf.Settings
	Subscribe(fn func(perf.Settings)) (cancel func())
}

// Option configures a Field
type Option func(*Field)

// WithRand injects the random source
func WithRand(r Rand) Option {
	return func(f *Field) { f.rng = r }
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(f *Field) { f.log = log }
}

// WithTheme sets the initial theme
func WithTheme(t render.Theme) Option {
	return func(f *Field) { f.theme = t }
}

// WithConnectionDistance overrides the pixel distance under which pairs connect
func WithConnectionDistance(d float64) Option {
	return func(f *Field) { f.connDist = d }
}

// Field animates the ambient particle layer
// The frame callback is armed only while particles are enabled and the field is mounted; it reads
// settings once per frame. All methods run on the loop goroutine
type Field struct {
	sched   engine.Scheduler
	source  SettingsSource
	acquire Acquirer
	rng     Rand
	log     *zap.Logger

	surface  Surface
	theme    render.Theme
	connDist float64

	particles []Particle
	mounted   bool
	handle    engine.Handle
	animating bool
	unsub     func()

	lastConnections int
	frames          uint64
}

// NewField creates an unmounted field
func NewField(sched engine.Scheduler, source SettingsSource, acquire Acquirer, opts ...Option) *Field {
	f := &Field{
		sched:    sched,
		source:   source,
		acquire:  acquire,
		log:      zap.NewNop(),
		connDist: parameter.ParticleConnectionDistance,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		now := uint64(time.Now().UnixNano())
		f.rng = rand.New(rand.NewPCG(now, now>>17))
	}
	return f
}

// Mount acquires the surface, builds the pool and starts animating when enabled
// Acquisition failure is logged and leaves the field inert
func (f *Field) Mount() {
	if f.mounted {
		return
	}
	surface, err := f.acquire()
	if err != nil {
		f.log.Warn("particle surface unavailable, field disabled", zap.Error(err))
		return
	}
	f.surface = surface
	f.mounted = true
	f.unsub = f.source.Subscribe(f.onSettings)

	f.Init()
	if f.source.Settings().EnableParticles {
		f.start()
	}
}

// Unmount stops animating, releases the subscription and clears the surface; safe to repeat
func (f *Field) Unmount() {
	if !f.mounted {
		return
	}
	f.stop()
	if f.unsub != nil {
		f.unsub()
		f.unsub = nil
	}
	f.surface.Clear()
	f.particles = f.particles[:0]
	f.mounted = false
}

// Mounted reports whether the field holds a surface
func (f *Field) Mounted() bool {
	return f.mounted
}

// Animating reports whether a frame callback is armed
func (f *Field) Animating() bool {
	return f.animating
}

// Init rebuilds the pool to exactly the current particle count
func (f *Field) Init() {
	if !f.mounted {
		return
	}
	n := f.source.Settings().ParticleCount
	w, h := f.surface.Size()
	pal := f.theme.Palette()

	if cap(f.particles) < n {
		f.particles = make([]Particle, n)
	} else {
		f.particles = f.particles[:n]
	}
	for i := range f.particles {
		spawn(&f.particles[i], f.rng, w, h, pal)
	}
}

// Resize picks up new surface dimensions
func (f *Field) Resize() {
	f.Init()
}

// SetTheme repaints the pool with the theme's palette
func (f *Field) SetTheme(t render.Theme) {
	if t == f.theme {
		return
	}
	f.theme = t
	f.Init()
}

// Theme returns the active theme
func (f *Field) Theme() render.Theme {
	return f.theme
}

// Particles exposes the pool for inspection
func (f *Field) Particles() []Particle {
	return f.particles
}

// Connections returns the number of segments drawn by the last Draw
func (f *Field) Connections() int {
	return f.lastConnections
}

// Frames returns the number of animated frames
func (f *Field) Frames() uint64 {
	return f.frames
}

// Update advances every particle one step
func (f *Field) Update() {
	if !f.mounted {
		return
	}
	w, h := f.surface.Size()
	for i := range f.particles {
		step(&f.particles[i], f.rng, w, h)
	}
}

// Draw paints particles and, when enabled with more than ParticleConnectionMinCount particles,
// up to ParticleMaxConnections connecting segments scanning pairs in index order
func (f *Field) Draw(s perf.Settings) {
	if !f.mounted {
		return
	}
	f.surface.Clear()
	for i := range f.particles {
		p := &f.particles[i]
		f.surface.FillCircle(p.X, p.Y, p.Radius, p.Color, p.Opacity*p.Alpha)
	}

	f.lastConnections = 0
	if !s.EnableParticles || s.ParticleCount <= parameter.ParticleConnectionMinCount {
		return
	}

	limit := min(len(f.particles), parameter.ParticleMaxConnections)
	d2max := f.connDist * f.connDist
	col := f.theme.Palette().Particle
	for i := 0; i < len(f.particles) && f.lastConnections < limit; i++ {
		a := &f.particles[i]
		for j := i + 1; j < len(f.particles) && f.lastConnections < limit; j++ {
			b := &f.particles[j]
			dx, dy := a.X-b.X, a.Y-b.Y
			d2 := dx*dx + dy*dy
			if d2 >= d2max {
				continue
			}
			alpha := (1 - math.Sqrt(d2)/f.connDist) * parameter.ParticleConnectionAlpha
			f.surface.Line(a.X, a.Y, b.X, b.Y, col, alpha)
			f.lastConnections++
		}
	}
}

func (f *Field) start() {
	if f.animating || !f.mounted {
		return
	}
	f.animating = true
	f.handle = f.sched.RequestFrame(f.frame)
}

func (f *Field) stop() {
	if !f.animating {
		return
	}
	f.animating = false
	f.sched.CancelFrame(f.handle)
	f.handle = 0
}

func (f *Field) frame(time.Time) {
	if !f.animating {
		return
	}
	s := f.source.Settings()
	if !s.EnableParticles {
		f.animating = false
		f.handle = 0
		f.surface.Clear()
		return
	}
	// re-armed first so a recovered panic below only costs this frame
	f.handle = f.sched.RequestFrame(f.frame)

	if s.ParticleCount != len(f.particles) {
		f.Init()
	}
	f.Update()
	f.Draw(s)
	f.frames++
}

// onSettings reacts to controller changes between frames
func (f *Field) onSettings(s perf.Settings) {
	if !f.mounted {
		return
	}
	if !s.EnableParticles {
		f.stop()
		f.surface.Clear()
		f.lastConnections = 0
		return
	}
	if s.ParticleCount != len(f.particles) {
		f.Init()
	}
	f.start()
}
