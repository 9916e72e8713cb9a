package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/canonical/lxd/lxd/response"
	"github.com/canonical/lxd/shared/logger"
	"github.com/gorilla/mux"

	"github.com/querygate/querygate/internal/config"
	"github.com/querygate/querygate/internal/db"
	"github.com/querygate/querygate/internal/endpoints"
	"github.com/querygate/querygate/internal/handler"
	"github.com/querygate/querygate/internal/rest"
	"github.com/querygate/querygate/internal/rest/resources"
	"github.com/querygate/querygate/internal/secrets"
	"github.com/querygate/querygate/internal/state"
)

// Daemon holds information for the querygate daemon.
type Daemon struct {
	version string

	config    *config.DaemonConfig
	endpoints *endpoints.Endpoints
	handler   *handler.Handler

	ReadyChan      chan struct{}      // Closed when the daemon is fully ready.
	ShutdownCtx    context.Context    // Cancelled when shutdown starts.
	ShutdownCancel context.CancelFunc // Cancels the shutdownCtx to indicate shutdown starting.
}

// NewDaemon initializes the Daemon context and channels.
func NewDaemon(version string) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())
	return &Daemon{
		version:        version,
		ShutdownCtx:    ctx,
		ShutdownCancel: cancel,
		ReadyChan:      make(chan struct{}),
	}
}

// Init loads the configuration at configPath and starts serving the API.
// A non-empty listenAddress overrides the configured address.
func (d *Daemon) Init(ctx context.Context, configPath string, listenAddress string) error {
	d.config = config.NewDaemonConfig(configPath)
	err := d.config.Load()
	if err != nil {
		return fmt.Errorf("Invalid daemon configuration: %w", err)
	}

	if listenAddress != "" {
		d.config.SetAddress(listenAddress)
		err = config.Validate(d.config.Get())
		if err != nil {
			return fmt.Errorf("Invalid daemon configuration: %w", err)
		}
	}

	cfg := d.config.Get()
	store, err := secrets.Open(ctx, cfg.SecretStore)
	if err != nil {
		return fmt.Errorf("Failed to initialize secret store: %w", err)
	}

	return d.init(store, db.NewConnector())
}

func (d *Daemon) init(store secrets.Store, connector db.Connector) error {
	cfg := d.config.Get()
	d.handler = handler.New(cfg, store, connector)

	server := d.initServer()
	network := endpoints.NewNetwork(d.ShutdownCtx, endpoints.EndpointNetwork, server, cfg.Address)
	d.endpoints = endpoints.NewEndpoints(d.ShutdownCtx, map[string]endpoints.Endpoint{endpoints.EndpointsCore: network})

	err := d.endpoints.Up()
	if err != nil {
		return fmt.Errorf("Daemon failed to start: %w", err)
	}

	logger.Info("Serving SQL endpoint", logger.Ctx{"address": network.Addr(), "path": cfg.Endpoint, "database": cfg.Database.Name, "driver": cfg.Database.Driver})
	close(d.ReadyChan)

	return nil
}

func (d *Daemon) initServer() *http.Server {
	mux := mux.NewRouter()
	mux.StrictSlash(false)
	mux.SkipClean(true)
	mux.UseEncodedPath()

	mux.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("Sending top level 404", logger.Ctx{"url": r.URL})
		err := response.NotFound(nil).Render(w)
		if err != nil {
			logger.Error("Failed to write HTTP response", logger.Ctx{"url": r.URL, "err": err})
		}
	})

	state := d.State()
	for _, e := range resources.Endpoints(d.config.Get().Endpoint) {
		rest.HandleEndpoint(state, mux, e)
	}

	return &http.Server{Handler: mux}
}

// Address returns the address the SQL API is bound to.
func (d *Daemon) Address() string {
	listener, ok := d.endpoints.Get(endpoints.EndpointsCore)
	if !ok {
		return d.config.GetAddress()
	}

	return listener.Addr()
}

// State creates a State instance with the daemon's stateful components.
func (d *Daemon) State() *state.State {
	return &state.State{
		Context: d.ShutdownCtx,
		Version: d.version,
		Config:  d.config.Get,
		Handler: d.handler,
	}
}

// Stop stops the Daemon via its shutdown channel.
func (d *Daemon) Stop(sig os.Signal) error {
	logger.Info("Shutting down", logger.Ctx{"signal": sig})
	d.ShutdownCancel()

	if d.endpoints == nil {
		return nil
	}

	return d.endpoints.Down()
}
