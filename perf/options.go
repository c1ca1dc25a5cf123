package perf

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-folio/parameter"
	"github.com/lixenwraith/vi-folio/status"
)

type options struct {
	log          *zap.Logger
	reg          *status.Registry
	maxParticles int
}

// Option configures a Sampler or Controller
type Option func(*options)

// WithLogger sets the logger, default is a no-op logger
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithRegistry publishes values into reg
func WithRegistry(reg *status.Registry) Option {
	return func(o *options) { o.reg = reg }
}

// WithMaxParticles overrides the configured maximum particle count
func WithMaxParticles(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxParticles = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		log:          zap.NewNop(),
		maxParticles: parameter.ParticleMaxCount,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
