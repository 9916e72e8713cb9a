package resources

import (
	"github.com/querygate/querygate/rest"
)

// Endpoints returns the API endpoints with the SQL handler served at sqlPath.
func Endpoints(sqlPath string) []rest.Endpoint {
	return []rest.Endpoint{
		api10Cmd,
		sqlCmd(sqlPath),
	}
}
