package audio

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

// Service wraps Player as a hub service
// A missing audio backend disables sound instead of failing startup
type Service struct {
	player   *Player
	enabled  bool
	disabled atomic.Bool
	log      *zap.Logger
}

// NewService creates the audio service; enabled false keeps the speaker closed
func NewService(enabled bool, sink Sink, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{player: NewPlayer(sink), enabled: enabled, log: log}
}

// ServiceName is the hub key of the audio service
const ServiceName = "audio"

// Name implements service.Service
func (s *Service) Name() string {
	return ServiceName
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
func (s *Service) Init() error {
	if !s.enabled {
		s.disabled.Store(true)
	}
	return nil
}

// Start implements service.Service, opening the sink; failure leaves the service disabled
func (s *Service) Start(context.Context) error {
	if s.disabled.Load() {
		return nil
	}
	if err := s.player.Open(); err != nil {
		s.log.Warn("audio unavailable, continuing silent", zap.Error(err))
		s.disabled.Store(true)
	}
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	s.player.Close()
	return nil
}

// Disabled reports whether sound is unavailable
func (s *Service) Disabled() bool {
	return s.disabled.Load()
}

// Player returns the click player, nil when disabled
func (s *Service) Player() *Player {
	if s.disabled.Load() {
		return nil
	}
	return s.player
}
