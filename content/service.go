package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-folio/core"
)

// Service loads the page document and, when watching, reloads it on file changes
// The current document is swapped atomically; a failed reload keeps the previous one
type Service struct {
	path  string
	watch bool
	log   *zap.Logger

	doc        atomic.Pointer[Document]
	generation atomic.Int64

	mu       sync.Mutex
	onChange func(*Document)

	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewService creates a content service for path; empty path serves the embedded document
func NewService(path string, watch bool, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		path:   path,
		watch:  watch && path != "",
		log:    log,
		stopCh: make(chan struct{}),
	}
}

// ServiceName is the hub key of the content service
const ServiceName = "content"

// Name implements service.Service
func (s *Service) Name() string {
	return ServiceName
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service, loading the initial document
func (s *Service) Init() error {
	doc, err := Load(s.path)
	if err != nil {
		return err
	}
	s.store(doc)
	return nil
}

// Start implements service.Service, starting the file watcher when enabled
func (s *Service) Start(ctx context.Context) error {
	if !s.watch {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("content watcher: %w", err)
	}
	// Editors often replace the file, so the directory is watched
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", s.path, err)
	}
	s.watcher = w

	s.wg.Add(1)
	core.Go(func() {
		defer s.wg.Done()
		s.run(ctx)
	})
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}

// Current returns the active document
func (s *Service) Current() *Document {
	return s.doc.Load()
}

// OnChange registers fn for reloaded documents; it runs on the watcher goroutine
func (s *Service) OnChange(fn func(*Document)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Reload reads the file again and swaps the document when it is valid
func (s *Service) Reload() error {
	doc, err := Load(s.path)
	if err != nil {
		s.log.Warn("content reload failed, keeping previous document", zap.Error(err))
		return err
	}
	s.store(doc)
	s.log.Info("content reloaded", zap.String("path", s.path), zap.Int64("generation", doc.Generation))

	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(doc)
	}
	return nil
}

func (s *Service) store(doc *Document) {
	doc.Generation = s.generation.Add(1)
	s.doc.Store(doc)
}

func (s *Service) run(ctx context.Context) {
	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			_ = s.Reload()
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("content watcher error", zap.Error(err))
		}
	}
}
