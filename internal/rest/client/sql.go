package client

import (
	"context"
	"net/http"

	"github.com/querygate/querygate/rest/response"
	"github.com/querygate/querygate/rest/types"
)

// PostSQL submits a query and returns the status and raw JSON body of the response.
// Non-200 responses are not errors; only transport failures are.
func (c *Client) PostSQL(ctx context.Context, query types.SQLQuery) (*types.Response, error) {
	endpoint := c.URL()

	var result *types.Response
	err := c.query(ctx, http.MethodPost, &endpoint, query, func(resp *http.Response) error {
		var err error
		result, err = response.ParseRawResponse(resp)

		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetServer returns the status of the daemon serving the endpoint.
func (c *Client) GetServer(ctx context.Context) (*types.Server, error) {
	server := &types.Server{}
	err := c.query(ctx, http.MethodGet, c.ServerURL().Path("1.0"), nil, func(resp *http.Response) error {
		parsed, err := response.ParseResponse(resp)
		if err != nil {
			return err
		}

		return parsed.MetadataAsStruct(server)
	})
	if err != nil {
		return nil, err
	}

	return server, nil
}
