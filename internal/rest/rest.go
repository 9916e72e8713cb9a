package rest

import (
	"fmt"
	"net/http"

	"github.com/canonical/lxd/lxd/response"
	"github.com/canonical/lxd/shared/logger"
	"github.com/gorilla/mux"

	"github.com/querygate/querygate/internal/state"
	"github.com/querygate/querygate/rest"
)

func handleAPIRequest(action rest.EndpointAction, state *state.State, r *http.Request) response.Response {
	if action.Handler == nil {
		return response.NotImplemented(nil)
	}

	return action.Handler(state, r)
}

// HandleEndpoint adds the endpoint to the mux router. A function variable is used to implement common logic
// before calling the endpoint action handler associated with the request method, if it exists.
func HandleEndpoint(state *state.State, mux *mux.Router, e rest.Endpoint) {
	route := mux.HandleFunc(e.Path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		logger.Debug("Handling API request", logger.Ctx{"method": r.Method, "url": r.URL.String(), "remote": r.RemoteAddr})

		// Return Unavailable Error (503) if daemon is shutting down, except for endpoints with AllowedDuringShutdown.
		if state.Context.Err() != nil && !e.AllowedDuringShutdown {
			err := response.Unavailable(fmt.Errorf("Daemon is shutting down")).Render(w)
			if err != nil {
				logger.Error("Failed to write HTTP response", logger.Ctx{"url": r.URL, "err": err})
			}

			return
		}

		var resp response.Response
		switch r.Method {
		case http.MethodGet:
			resp = handleAPIRequest(e.Get, state, r)
		case http.MethodPost:
			resp = handleAPIRequest(e.Post, state, r)
		default:
			resp = response.NotFound(fmt.Errorf("Method '%s' not found", r.Method))
		}

		err := resp.Render(w)
		if err != nil {
			err := response.InternalError(err).Render(w)
			if err != nil {
				logger.Error("Failed writing error for HTTP response", logger.Ctx{"url": r.URL, "err": err})
			}
		}
	})

	// If the endpoint has a canonical name then record it so it can be used to build URLS.
	if e.Name != "" {
		route.Name(e.Name)
	}
}
