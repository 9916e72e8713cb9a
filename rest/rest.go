package rest

import (
	"net/http"

	"github.com/canonical/lxd/lxd/response"

	"github.com/querygate/querygate/state"
)

// EndpointAction represents an action on an API endpoint.
type EndpointAction struct {
	Handler func(state *state.State, r *http.Request) response.Response
}

// Endpoint represents a URL in our API.
type Endpoint struct {
	Name string // Name for this endpoint.
	Path string // Path pattern for this endpoint.
	Get  EndpointAction
	Post EndpointAction

	AllowedDuringShutdown bool // Whether we should return Unavailable Error (503) if daemon is shutting down.
}
