// Package di provides dependency injection container
package di

import (
	"github.com/ssargent/pngstash/pkg/api" //nolint:depguard
	"github.com/ssargent/pngstash/pkg/logging"
	"github.com/ssargent/pngstash/pkg/stash"
	"github.com/ssargent/pngstash/pkg/store"
)

// Container holds all the dependencies for the application
type Container struct {
	serverFactory api.ServerFactory
	files         *store.FileStore
	stash         *stash.Service
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		serverFactory: api.NewServerFactory(),
		files:         store.NewFileStore(store.FileStoreConfig{}),
		stash:         stash.NewService(),
	}
}

// Configure rebuilds the file store and stash service from resolved settings
func (c *Container) Configure(files store.FileStoreConfig, strictTypes bool, logger logging.Logger) {
	c.files = store.NewFileStore(files)
	c.stash = stash.NewService(stash.WithStrictTypes(strictTypes), stash.WithLogger(logger))
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// GetFileStore returns the file store used by the CLI
func (c *Container) GetFileStore() *store.FileStore {
	return c.files
}

// GetStash returns the stash service
func (c *Container) GetStash() *stash.Service {
	return c.stash
}
