package resources

import (
	"io"
	"net/http"

	"github.com/canonical/lxd/lxd/response"
	"github.com/canonical/lxd/shared/logger"

	"github.com/querygate/querygate/internal/state"
	"github.com/querygate/querygate/rest"
)

// maxQueryBytes caps the size of a request body.
const maxQueryBytes = 1 << 20

func sqlCmd(path string) rest.Endpoint {
	return rest.Endpoint{
		Name: "sql",
		Path: path,

		Post: rest.EndpointAction{Handler: sqlPost},
	}
}

// Execute a query.
func sqlPost(s *state.State, r *http.Request) response.Response {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxQueryBytes))
	if err != nil {
		logger.Warn("Failed to read request body", logger.Ctx{"remote": r.RemoteAddr, "err": err})
		return sqlResponse(http.StatusBadRequest, `"Invalid JSON input."`)
	}

	resp := s.Handler.Handle(r.Context(), body)
	logger.Info("Executed SQL request", logger.Ctx{"remote": r.RemoteAddr, "status": resp.StatusCode})

	return sqlResponse(resp.StatusCode, resp.Body)
}

// sqlResponse writes an already encoded JSON body as is, without the api.Response envelope.
func sqlResponse(status int, body string) response.Response {
	return response.ManualResponse(func(w http.ResponseWriter) error {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)

		_, err := io.WriteString(w, body+"\n")

		return err
	})
}
