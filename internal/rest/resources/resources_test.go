package resources

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/canonical/lxd/shared/api"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/querygate/querygate/internal/config"
	"github.com/querygate/querygate/internal/db"
	"github.com/querygate/querygate/internal/handler"
	internalRest "github.com/querygate/querygate/internal/rest"
	"github.com/querygate/querygate/internal/secrets"
	"github.com/querygate/querygate/internal/state"
	"github.com/querygate/querygate/rest/types"
)

type resourcesSuite struct {
	suite.Suite

	cancel context.CancelFunc
	server *httptest.Server
}

func TestResourcesSuite(t *testing.T) {
	suite.Run(t, new(resourcesSuite))
}

func (s *resourcesSuite) SetupTest() {
	dir := s.T().TempDir()
	path := filepath.Join(dir, "demo.db")

	seed, err := sql.Open(config.DriverSQLite, path)
	s.Require().NoError(err)
	_, err = seed.Exec(`
CREATE TABLE employees (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
INSERT INTO employees (id, name) VALUES (1, 'A');
`)
	s.Require().NoError(err)
	s.Require().NoError(seed.Close())

	err = os.WriteFile(filepath.Join(dir, "demo.json"), []byte(`{"username": "u", "password": "p"}`), 0600)
	s.Require().NoError(err)

	cfg := config.Default()
	cfg.Endpoint = "/prod/execute-sql"
	cfg.SecretStore = types.SecretStoreConfig{Type: types.SecretStoreFile, Dir: dir, SecretID: "demo"}
	cfg.Database = types.DatabaseConfig{Driver: config.DriverSQLite, Name: path, ConnectTimeout: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	st := &state.State{
		Context: ctx,
		Version: "test",
		Config:  func() types.DaemonConfig { return cfg },
		Handler: handler.New(cfg, secrets.NewFileStore(dir), db.NewConnector()),
	}

	router := mux.NewRouter()
	for _, e := range Endpoints(cfg.Endpoint) {
		internalRest.HandleEndpoint(st, router, e)
	}

	s.server = httptest.NewServer(router)
}

func (s *resourcesSuite) TearDownTest() {
	s.server.Close()
	s.cancel()
}

func (s *resourcesSuite) do(method string, path string, body string) (int, string) {
	req, err := http.NewRequest(method, s.server.URL+path, strings.NewReader(body))
	s.Require().NoError(err)

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	return resp.StatusCode, strings.TrimSpace(string(data))
}

func (s *resourcesSuite) Test_sqlPost() {
	status, body := s.do("POST", "/prod/execute-sql", `{"sql_query": "SELECT * FROM employees"}`)
	s.Equal(http.StatusOK, status)

	var listing string
	s.Require().NoError(json.Unmarshal([]byte(body), &listing))
	s.Contains(listing, `{"id":1,"name":"A"}`)

	status, body = s.do("POST", "/prod/execute-sql", `{"sql_query": "UPDATE employees SET name = 'B'"}`)
	s.Equal(http.StatusOK, status)
	s.Equal(`"Query executed successfully! 1 row(s) affected."`, body)

	status, body = s.do("POST", "/prod/execute-sql", `not json`)
	s.Equal(http.StatusBadRequest, status)
	s.Equal(`"Invalid JSON input."`, body)

	status, body = s.do("POST", "/prod/execute-sql", `{}`)
	s.Equal(http.StatusBadRequest, status)
	s.Equal(`"No SQL query provided in the request."`, body)

	status, _ = s.do("POST", "/prod/execute-sql", `{"sql_query": "DROP TABLE employees"}`)
	s.Equal(http.StatusBadRequest, status)
}

func (s *resourcesSuite) Test_sqlPostTooLarge() {
	query := `{"sql_query": "SELECT '` + strings.Repeat("x", maxQueryBytes) + `'"}`

	status, body := s.do("POST", "/prod/execute-sql", query)
	s.Equal(http.StatusBadRequest, status)
	s.Equal(`"Invalid JSON input."`, body)
}

func (s *resourcesSuite) Test_sqlWrongMethod() {
	status, body := s.do("GET", "/prod/execute-sql", "")
	s.Equal(http.StatusNotFound, status)

	resp := s.decodeAPIResponse(body)
	s.Equal(api.ErrorResponse, resp.Type)
	s.Equal(http.StatusNotFound, resp.Code)
	s.Equal("Method 'GET' not found", resp.Error)

	status, body = s.do("POST", "/1.0", "")
	s.Equal(http.StatusNotImplemented, status)
	s.Equal(api.ErrorResponse, s.decodeAPIResponse(body).Type)
}

func (s *resourcesSuite) Test_api10Get() {
	status, body := s.do("GET", "/1.0", "")
	s.Equal(http.StatusOK, status)

	resp := s.decodeAPIResponse(body)
	s.Equal(api.SyncResponse, resp.Type)
	s.Equal(http.StatusOK, resp.StatusCode)

	server := types.Server{}
	s.Require().NoError(resp.MetadataAsStruct(&server))
	s.Equal("test", server.Version)
	s.Equal("/prod/execute-sql", server.Endpoint)
	s.Equal(config.DriverSQLite, server.Database.Driver)
	s.NotContains(body, `"p"`)
}

func (s *resourcesSuite) Test_shuttingDown() {
	s.cancel()

	status, body := s.do("POST", "/prod/execute-sql", `{"sql_query": "SELECT 1"}`)
	s.Equal(http.StatusServiceUnavailable, status)

	resp := s.decodeAPIResponse(body)
	s.Equal(api.ErrorResponse, resp.Type)
	s.Equal("Daemon is shutting down", resp.Error)
}

func (s *resourcesSuite) decodeAPIResponse(body string) api.Response {
	resp := api.Response{}
	s.Require().NoError(json.Unmarshal([]byte(body), &resp), "body %q", body)

	return resp
}

// The SQL endpoint body is sent without the api.Response envelope.
func TestSQLResponse(t *testing.T) {
	recorder := httptest.NewRecorder()
	err := sqlResponse(http.StatusBadRequest, `"Invalid JSON input."`).Render(recorder)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "\"Invalid JSON input.\"\n", recorder.Body.String())

	recorder = httptest.NewRecorder()
	err = sqlResponse(http.StatusOK, `[{"id":1,"name":"A"}]`).Render(recorder)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[{"id":1,"name":"A"}]`, recorder.Body.String())
}
