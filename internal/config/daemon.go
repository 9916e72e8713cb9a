package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/querygate/querygate/internal/utils"
	"github.com/querygate/querygate/rest/types"
)

const (
	// DefaultAddress is the listen address used when none is configured.
	DefaultAddress = "127.0.0.1:8443"

	// DefaultEndpoint is the path of the SQL endpoint.
	DefaultEndpoint = "/execute-sql"

	// DefaultDatabasePort is the MySQL default port.
	DefaultDatabasePort = 3306

	// DefaultConnectTimeout bounds connection establishment. Execution has no timeout.
	DefaultConnectTimeout = 5 * time.Second
)

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// Default returns the configuration used for any field missing from daemon.yaml.
func Default() types.DaemonConfig {
	return types.DaemonConfig{
		Address:  DefaultAddress,
		Endpoint: DefaultEndpoint,
		SecretStore: types.SecretStoreConfig{
			Type: types.SecretStoreAWS,
		},
		Database: types.DatabaseConfig{
			Driver:         DriverMySQL,
			Port:           DefaultDatabasePort,
			ConnectTimeout: DefaultConnectTimeout,
		},
	}
}

// DaemonConfig wraps the daemon's config with get, set and lock capabilities.
type DaemonConfig struct {
	// Path of the daemon.yaml file.
	path string

	// Lock the daemon config for read and write operations.
	lock *sync.RWMutex

	// The actual configuration.
	config *types.DaemonConfig
}

// NewDaemonConfig returns a config for the given path holding the defaults.
// Nothing is read until Load is called.
func NewDaemonConfig(path string) *DaemonConfig {
	config := Default()

	return &DaemonConfig{
		path:   path,
		lock:   &sync.RWMutex{},
		config: &config,
	}
}

// Path returns the location of the daemon.yaml file.
func (d *DaemonConfig) Path() string {
	return d.path
}

// Load reads the config from its path on top of the defaults and validates the result.
func (d *DaemonConfig) Load() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("Failed to load daemon config: %w", err)
	}

	config := Default()
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return fmt.Errorf("Failed to parse daemon config from yaml: %w", err)
	}

	err = Validate(config)
	if err != nil {
		return fmt.Errorf("Invalid daemon config %q: %w", d.path, err)
	}

	d.config = &config

	return nil
}

// Write atomically replaces the config file with the in memory config.
func (d *DaemonConfig) Write() error {
	d.lock.RLock()
	defer d.lock.RUnlock()

	bytes, err := yaml.Marshal(d.config)
	if err != nil {
		return fmt.Errorf("Failed to parse daemon config to yaml: %w", err)
	}

	err = renameio.WriteFile(d.path, bytes, 0600)
	if err != nil {
		return fmt.Errorf("Failed to write daemon configuration yaml: %w", err)
	}

	return nil
}

// Get returns a copy of the current configuration.
func (d *DaemonConfig) Get() types.DaemonConfig {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return *d.config
}

// GetAddress returns the daemon's listen address.
func (d *DaemonConfig) GetAddress() string {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return d.config.Address
}

// SetAddress sets the daemon's listen address.
func (d *DaemonConfig) SetAddress(address string) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.config.Address = address
}

// Validate checks that a config can be used to serve requests.
func Validate(config types.DaemonConfig) error {
	_, port, err := net.SplitHostPort(config.Address)
	if err != nil {
		return fmt.Errorf("Invalid listen address %q: %w", config.Address, err)
	}

	_, err = strconv.ParseUint(port, 10, 16)
	if err != nil {
		return fmt.Errorf("Invalid listen port %q", port)
	}

	if !strings.HasPrefix(config.Endpoint, "/") {
		return fmt.Errorf("Endpoint %q must be an absolute path", config.Endpoint)
	}

	if config.SecretStore.SecretID == "" {
		return fmt.Errorf("No secret_id configured for the secret store")
	}

	switch config.SecretStore.Type {
	case types.SecretStoreAWS, types.SecretStoreEnv:
	case types.SecretStoreFile:
		if config.SecretStore.Dir == "" {
			return fmt.Errorf("The file secret store requires a dir")
		}

	default:
		return fmt.Errorf("Unsupported secret store type %q", config.SecretStore.Type)
	}

	switch config.Database.Driver {
	case DriverMySQL:
		if config.Database.Host == "" {
			return fmt.Errorf("No database host configured")
		}

		err = utils.ValidateHost(config.Database.Host)
		if err != nil {
			return fmt.Errorf("Invalid database config: %w", err)
		}

		if config.Database.Port <= 0 || config.Database.Port > 65535 {
			return fmt.Errorf("Invalid database port %d", config.Database.Port)
		}

	case DriverSQLite:
	default:
		return fmt.Errorf("Unsupported database driver %q", config.Database.Driver)
	}

	if config.Database.Name == "" {
		return fmt.Errorf("No database name configured")
	}

	if config.Database.ConnectTimeout <= 0 {
		return fmt.Errorf("Invalid connect timeout %q", config.Database.ConnectTimeout)
	}

	return nil
}
