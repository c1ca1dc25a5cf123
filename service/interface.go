package service

import "context"

// Service defines the lifecycle of a long-lived subsystem hosted next to the animation loop
// Services own resources the loop must not block on: audio output, file watching, the metrics listener
//
// Lifecycle:
//  1. Construction, configured through the constructor
//  2. Init() - validate configuration, acquire resources that may fail
//  3. Start(ctx) - launch background goroutines; ctx is cancelled on shutdown
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init and Start before this one
	Dependencies() []string

	// Init prepares the service; an error aborts startup
	Init() error

	// Start begins operation, called after every service initialized
	Start(ctx context.Context) error

	// Stop halts operation; must be idempotent
	Stop() error
}
