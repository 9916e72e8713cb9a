package db

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/querygate/querygate/internal/config"
	"github.com/querygate/querygate/internal/secrets"
	"github.com/querygate/querygate/rest/types"
)

// Descriptor combines the configured location of a database with the credentials resolved for
// one invocation.
type Descriptor struct {
	Driver         string
	Host           string
	Port           int
	Name           string
	ConnectTimeout time.Duration

	Credentials secrets.Credentials
}

// NewDescriptor fills a descriptor from the database config and the resolved credentials.
func NewDescriptor(config types.DatabaseConfig, creds secrets.Credentials) Descriptor {
	return Descriptor{
		Driver:         config.Driver,
		Host:           config.Host,
		Port:           config.Port,
		Name:           config.Name,
		ConnectTimeout: config.ConnectTimeout,
		Credentials:    creds,
	}
}

// String describes the descriptor without credentials.
func (d Descriptor) String() string {
	if d.Driver == config.DriverSQLite {
		return fmt.Sprintf("%s:%s", d.Driver, d.Name)
	}

	return fmt.Sprintf("%s://%s/%s", d.Driver, net.JoinHostPort(d.Host, strconv.Itoa(d.Port)), d.Name)
}

// MySQLConfig returns the go-sql-driver configuration for the descriptor.
func (d Descriptor) MySQLConfig() *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = d.Credentials.Username
	cfg.Passwd = d.Credentials.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	cfg.DBName = d.Name
	cfg.Timeout = d.ConnectTimeout
	cfg.ParseTime = true

	return cfg
}

// SQLiteDSN returns the go-sqlite3 DSN for the descriptor. The database file must already exist.
func (d Descriptor) SQLiteDSN() string {
	values := url.Values{}
	values.Set("mode", "rw")
	values.Set("_busy_timeout", strconv.FormatInt(d.ConnectTimeout.Milliseconds(), 10))

	return "file:" + d.Name + "?" + values.Encode()
}
