// Package metrics exposes the status registry over a Prometheus /metrics endpoint
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-folio/core"
	"github.com/lixenwraith/vi-folio/status"
)

// Namespace prefixes every exported metric
const Namespace = "vifolio"

const shutdownTimeout = 2 * time.Second

// NewServer builds the HTTP server serving gatherer on /metrics
func NewServer(addr string, gatherer prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
}

// Service serves the registry while the page runs; an empty address disables it
type Service struct {
	addr string
	reg  *status.Registry
	log  *zap.Logger

	mu       sync.Mutex
	prom     *prometheus.Registry
	server   *http.Server
	listener net.Listener
	done     chan struct{}
}

// NewService creates the metrics service
func NewService(addr string, reg *status.Registry, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{addr: addr, reg: reg, log: log}
}

// ServiceName is the hub key of the metrics service
const ServiceName = "metrics"

// Name implements service.Service
func (s *Service) Name() string {
	return ServiceName
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init registers the status collector with a private Prometheus registry
func (s *Service) Init() error {
	prom := prometheus.NewRegistry()
	if err := prom.Register(status.NewCollector(s.reg, Namespace)); err != nil {
		return fmt.Errorf("register status collector: %w", err)
	}
	if err := prom.Register(collectors.NewGoCollector()); err != nil {
		return fmt.Errorf("register go collector: %w", err)
	}
	s.prom = prom
	return nil
}

// Gatherer returns the registry backing /metrics, nil before Init
func (s *Service) Gatherer() prometheus.Gatherer {
	if s.prom == nil {
		return nil
	}
	return s.prom
}

// Start binds the listener and serves in the background
func (s *Service) Start(context.Context) error {
	if s.addr == "" {
		return nil
	}
	if s.prom == nil {
		return errors.New("metrics: start before init")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.server = NewServer(s.addr, s.prom)
	s.done = make(chan struct{})
	srv, done := s.server, s.done
	s.mu.Unlock()

	s.log.Info("metrics listening", zap.String("addr", ln.Addr().String()))
	core.Go(func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("metrics server", zap.Error(err))
		}
	})
	return nil
}

// Addr returns the bound address, empty when not serving
func (s *Service) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down and waits for the serve goroutine; safe to repeat
func (s *Service) Stop() error {
	s.mu.Lock()
	srv, done := s.server, s.done
	s.server, s.listener, s.done = nil, nil, nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(ctx)
	<-done
	if err != nil {
		return fmt.Errorf("metrics shutdown: %w", err)
	}
	return nil
}
