package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/lxd/shared/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querygate/querygate/rest/types"
)

func TestNewInvalidEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "ftp://example.com/x", "http://", "://bad"} {
		_, err := New(endpoint)
		assert.Error(t, err, "endpoint %q", endpoint)
	}
}

func TestExecuteSQL(t *testing.T) {
	var received types.SQLQuery
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/prod/execute-sql", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		if received.Query == "DROP TABLE t" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`"Invalid or potentially dangerous SQL query provided."`))
			return
		}

		_, _ = w.Write([]byte("\"Query executed successfully! 3 row(s) affected.\"\n"))
	}))
	defer server.Close()

	c, err := New(server.URL + "/prod/execute-sql")
	require.NoError(t, err)

	resp, err := c.ExecuteSQL(context.Background(), "UPDATE t SET a = 1", false)
	require.NoError(t, err)
	assert.Equal(t, types.SQLQuery{Query: "UPDATE t SET a = 1"}, received)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `"Query executed successfully! 3 row(s) affected."`, resp.Body)

	_, err = c.ExecuteSQL(context.Background(), "SELECT 1", true)
	require.NoError(t, err)
	assert.Equal(t, types.OutputRows, received.Format)

	// Error statuses are returned, not treated as transport failures.
	resp, err = c.ExecuteSQL(context.Background(), "DROP TABLE t", false)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExecuteSQLTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL + "/execute-sql"
	server.Close()

	c, err := New(endpoint)
	require.NoError(t, err)

	_, err = c.ExecuteSQL(context.Background(), "SELECT 1", false)
	assert.Error(t, err)
}

func TestGetServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1.0" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		_, _ = w.Write([]byte(`{"type": "sync", "status": "Success", "status_code": 200, "metadata": {"version": "1.0.0", "endpoint": "/execute-sql", "database": {"driver": "mysql", "host": "db", "port": 3306, "name": "demo"}}}`))
	}))
	defer server.Close()

	c, err := New(server.URL + "/execute-sql")
	require.NoError(t, err)

	status, err := c.GetServer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", status.Version)
	assert.Equal(t, 3306, status.Database.Port)
}

func TestGetServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"type": "error", "error": "Daemon is shutting down", "error_code": 503}`))
	}))
	defer server.Close()

	c, err := New(server.URL + "/execute-sql")
	require.NoError(t, err)

	_, err = c.GetServer(context.Background())
	require.Error(t, err)
	assert.True(t, api.StatusErrorCheck(err, http.StatusServiceUnavailable))
}
