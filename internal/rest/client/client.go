package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/canonical/lxd/shared"
	"github.com/canonical/lxd/shared/api"
	"github.com/canonical/lxd/shared/logger"
)

// DefaultTimeout applies to requests whose context has no deadline.
const DefaultTimeout = 30 * time.Second

// Client is a rest client for the querygate daemon.
type Client struct {
	*http.Client
	url api.URL
}

// New returns a client for the SQL endpoint at the given URL.
func New(endpoint string) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("Invalid endpoint %q: %w", endpoint, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("Invalid endpoint %q: scheme must be http or https", endpoint)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("Invalid endpoint %q: missing host", endpoint)
	}

	transport := &http.Transport{
		Proxy:             shared.ProxyFromEnvironment,
		DisableKeepAlives: true,
	}

	return &Client{
		Client: &http.Client{Transport: transport},
		url:    api.URL{URL: *u},
	}, nil
}

// query sends a request to the given URL and hands the response to parse, which must close its body.
// Data, if set, is sent as JSON.
func (c *Client) query(ctx context.Context, method string, url *api.URL, data any, parse func(*http.Response) error) error {
	var req *http.Request
	var err error

	// Assign a context timeout if we don't already have one.
	_, ok := ctx.Deadline()
	if !ok {
		timeoutCtx, cancel := context.WithTimeout(ctx, DefaultTimeout)
		ctx = timeoutCtx
		defer cancel()
	}

	// Get a new HTTP request setup
	if data != nil {
		buf := bytes.Buffer{}
		err := json.NewEncoder(&buf).Encode(data)
		if err != nil {
			return err
		}

		req, err = http.NewRequestWithContext(ctx, method, url.String(), bytes.NewReader(buf.Bytes()))
		if err != nil {
			return err
		}

		req.Header.Set("Content-Type", "application/json")
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url.String(), nil)
		if err != nil {
			return err
		}
	}

	// Send the request
	resp, err := c.Do(req)
	if err != nil {
		return err
	}

	logger.Debug("Got response from querygate daemon", logger.Ctx{"url": url.String(), "method": method, "status": resp.StatusCode})

	return parse(resp)
}

// URL returns the endpoint used for the client.
func (c *Client) URL() api.URL {
	return c.url
}

// ServerURL returns the root URL of the daemon serving the endpoint.
func (c *Client) ServerURL() *api.URL {
	return api.NewURL().Scheme(c.url.URL.Scheme).Host(c.url.URL.Host)
}
