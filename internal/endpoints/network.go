package endpoints

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/canonical/lxd/shared/logger"
)

// shutdownTimeout bounds how long in-flight requests may run once the listener is closed.
const shutdownTimeout = 30 * time.Second

// Network represents a tcp listener and its server.
type Network struct {
	address     string
	networkType EndpointType

	listener net.Listener
	server   *http.Server

	ctx    context.Context
	cancel context.CancelFunc
}

// NewNetwork assigns an address and server to the Network.
func NewNetwork(ctx context.Context, endpointType EndpointType, server *http.Server, address string) *Network {
	ctx, cancel := context.WithCancel(ctx)

	return &Network{
		address:     address,
		networkType: endpointType,

		server: server,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Type returns the type of the Endpoint.
func (n *Network) Type() EndpointType {
	return n.networkType
}

// Addr returns the address the listener is bound to, or the configured address if it isn't listening yet.
func (n *Network) Addr() string {
	if n.listener == nil {
		return n.address
	}

	return n.listener.Addr().String()
}

// Listen on the given address.
func (n *Network) Listen() error {
	_, _, err := net.SplitHostPort(n.address)
	if err != nil {
		return fmt.Errorf("Invalid listen address %q: %w", n.address, err)
	}

	listener, err := net.Listen("tcp", n.address)
	if err != nil {
		return fmt.Errorf("Failed to listen on http socket: %w", err)
	}

	n.listener = listener

	return nil
}

// Serve binds to the Network's server.
func (n *Network) Serve() {
	if n.listener == nil {
		return
	}

	ctx := logger.Ctx{"network": n.listener.Addr()}
	logger.Info(" - binding http socket", ctx)

	go func() {
		err := n.server.Serve(n.listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case <-n.ctx.Done():
				logger.Infof("Received shutdown signal - aborting http socket server startup")
			default:
				logger.Error("Failed to start server", logger.Ctx{"err": err})
			}
		}
	}()
}

// Close stops accepting connections and waits for in-flight requests to finish.
func (n *Network) Close() error {
	if n.listener == nil {
		return nil
	}

	logger.Info("Stopping REST API handler - closing http socket", logger.Ctx{"address": n.listener.Addr()})
	n.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := n.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("Failed to shut down http server: %w", err)
	}

	return nil
}
