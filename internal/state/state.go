package state

import (
	"context"

	"github.com/querygate/querygate/internal/handler"
	"github.com/querygate/querygate/rest/types"
)

// State is a gateway to the components of the querygate daemon.
// Nothing in it changes between invocations of the SQL handler.
type State struct {
	// Context is cancelled when the daemon starts shutting down.
	Context context.Context

	// Version of the daemon.
	Version string

	// Config returns the daemon configuration.
	Config func() types.DaemonConfig

	// Handler runs SQL invocations.
	Handler *handler.Handler
}
