package endpoints

import (
	"context"
	"fmt"
	"sync"

	"github.com/canonical/lxd/shared/logger"
)

// Endpoints represents all listeners and servers for the querygate daemon.
type Endpoints struct {
	mu          sync.RWMutex
	shutdownCtx context.Context // Parent context for shutting down cleanly.

	listeners map[string]Endpoint // Map of supported listeners.
}

// NewEndpoints aggregates the given endpoints so we can manage them from one source.
func NewEndpoints(shutdownCtx context.Context, endpoints map[string]Endpoint) *Endpoints {
	return &Endpoints{listeners: endpoints, shutdownCtx: shutdownCtx}
}

// Up calls Serve on each of the configured listeners.
func (e *Endpoints) Up() error {
	err := e.up()
	if err != nil {
		// Attempt to call Down() in case something actually got brought up.
		_ = e.Down()

		return err
	}

	return nil
}

func (e *Endpoints) up() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for name, listener := range e.listeners {
		err := listener.Listen()
		if err != nil {
			return fmt.Errorf("Failed to start %q listener: %w", name, err)
		}

		select {
		case <-e.shutdownCtx.Done():
			logger.Infof("Received shutdown signal - aborting endpoint startup for %s", listener.Type().String())
			return nil
		default:
			listener.Serve()
		}
	}

	return nil
}

// Down closes all of the configured listeners.
func (e *Endpoints) Down() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for name, endpoint := range e.listeners {
		err := endpoint.Close()
		if err != nil {
			return err
		}

		delete(e.listeners, name)
	}

	return nil
}

// Get returns the listener with the given name.
func (e *Endpoints) Get(name string) (Endpoint, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	endpoint, ok := e.listeners[name]

	return endpoint, ok
}
