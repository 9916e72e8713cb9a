package resources

import (
	"net/http"

	"github.com/canonical/lxd/lxd/response"

	"github.com/querygate/querygate/internal/state"
	"github.com/querygate/querygate/rest"
	"github.com/querygate/querygate/rest/types"
)

var api10Cmd = rest.Endpoint{
	Name: "api10",
	Path: "/1.0",

	Get: rest.EndpointAction{Handler: api10Get},
}

func api10Get(s *state.State, r *http.Request) response.Response {
	config := s.Config()

	return response.SyncResponse(true, types.Server{
		Version:  s.Version,
		Endpoint: config.Endpoint,
		Database: types.DatabaseStatus{
			Driver: config.Database.Driver,
			Host:   config.Database.Host,
			Port:   config.Database.Port,
			Name:   config.Database.Name,
		},
	})
}
