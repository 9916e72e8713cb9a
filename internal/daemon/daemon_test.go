package daemon

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/querygate/querygate/internal/config"
)

type daemonSuite struct {
	suite.Suite

	dir string
}

func TestDaemonSuite(t *testing.T) {
	suite.Run(t, new(daemonSuite))
}

func (s *daemonSuite) SetupTest() {
	s.dir = s.T().TempDir()

	seed, err := sql.Open(config.DriverSQLite, filepath.Join(s.dir, "demo.db"))
	s.Require().NoError(err)
	_, err = seed.Exec(`
CREATE TABLE employees (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
INSERT INTO employees (id, name) VALUES (1, 'A');
`)
	s.Require().NoError(err)
	s.Require().NoError(seed.Close())

	err = os.WriteFile(filepath.Join(s.dir, "demo.json"), []byte(`{"username": "u", "password": "p"}`), 0600)
	s.Require().NoError(err)
}

func (s *daemonSuite) writeConfig(address string) string {
	path := filepath.Join(s.dir, "daemon.yaml")
	data := fmt.Sprintf(`address: %q
endpoint: /prod/execute-sql
secret_store:
  type: file
  dir: %s
  secret_id: demo
database:
  driver: sqlite3
  name: %s
  connect_timeout: 2s
`, address, s.dir, filepath.Join(s.dir, "demo.db"))

	s.Require().NoError(os.WriteFile(path, []byte(data), 0600))

	return path
}

func (s *daemonSuite) post(address string, body string) (int, string) {
	resp, err := http.Post("http://"+address+"/prod/execute-sql", "application/json", strings.NewReader(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	return resp.StatusCode, strings.TrimSpace(string(data))
}

func (s *daemonSuite) Test_serve() {
	d := NewDaemon("test")
	err := d.Init(context.Background(), s.writeConfig("127.0.0.1:0"), "")
	s.Require().NoError(err)

	select {
	case <-d.ReadyChan:
	default:
		s.Fail("Daemon is not ready after Init")
	}

	address := d.Address()
	s.NotEqual("127.0.0.1:0", address)

	status, body := s.post(address, `{"sql_query": "UPDATE employees SET name = 'B'"}`)
	s.Equal(http.StatusOK, status)
	s.Equal(`"Query executed successfully! 1 row(s) affected."`, body)

	resp, err := http.Get("http://" + address + "/missing")
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Equal(http.StatusNotFound, resp.StatusCode)

	s.NoError(d.Stop(syscall.SIGTERM))
	s.Error(d.ShutdownCtx.Err())

	_, err = http.Post("http://"+address+"/prod/execute-sql", "application/json", strings.NewReader(`{}`))
	s.Error(err)
}

func (s *daemonSuite) Test_listenOverride() {
	d := NewDaemon("test")
	err := d.Init(context.Background(), s.writeConfig("127.0.0.1:1"), "127.0.0.1:0")
	s.Require().NoError(err)
	defer func() { s.NoError(d.Stop(syscall.SIGTERM)) }()

	s.Equal("test", d.State().Version)
	s.Equal("127.0.0.1:0", d.State().Config().Address)
}

func (s *daemonSuite) Test_invalidConfig() {
	d := NewDaemon("test")
	err := d.Init(context.Background(), filepath.Join(s.dir, "missing.yaml"), "")
	s.ErrorContains(err, "Invalid daemon configuration")

	d = NewDaemon("test")
	err = d.Init(context.Background(), s.writeConfig("127.0.0.1:0"), "no-port")
	s.ErrorContains(err, "Invalid daemon configuration")

	// Stopping a daemon that never started is a no-op.
	s.NoError(d.Stop(syscall.SIGTERM))
}
