// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/ssargent/pngstash/pkg/logging"
)

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves until ctx is cancelled, then shuts down gracefully
	StartServer(ctx context.Context, svc IStash, config ServerConfig, logger logging.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
