// Package client is the Go client for the querygate SQL endpoint.
package client

import (
	"context"

	"github.com/querygate/querygate/internal/rest/client"
	"github.com/querygate/querygate/rest/types"
)

// Client is a rest client for the querygate daemon.
type Client struct {
	client.Client
}

// New returns a client for the SQL endpoint at the given URL,
// e.g. https://example.com/prod/execute-sql.
func New(endpoint string) (*Client, error) {
	c, err := client.New(endpoint)
	if err != nil {
		return nil, err
	}

	return &Client{Client: *c}, nil
}

// ExecuteSQL submits a query. When rows is set, reads are returned as an array of row objects
// instead of a rendered listing.
func (c *Client) ExecuteSQL(ctx context.Context, query string, rows bool) (*types.Response, error) {
	req := types.SQLQuery{Query: query}
	if rows {
		req.Format = types.OutputRows
	}

	return c.PostSQL(ctx, req)
}
