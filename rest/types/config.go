package types

import (
	"time"
)

// SecretStoreType selects the backend used to resolve database credentials.
type SecretStoreType string

const (
	// SecretStoreAWS resolves secrets from AWS Secrets Manager.
	SecretStoreAWS SecretStoreType = "aws"

	// SecretStoreFile resolves secrets from "<id>.json" files in a directory.
	SecretStoreFile SecretStoreType = "file"

	// SecretStoreEnv resolves secrets from environment variables.
	SecretStoreEnv SecretStoreType = "env"
)

// DaemonConfig is the in memory version of the daemon.yaml file.
type DaemonConfig struct {
	// Address is the HTTP listen address.
	// Example: 127.0.0.1:8443
	Address string `json:"address" yaml:"address"`

	// Endpoint is the path the SQL handler is served on.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// StrictTeardown makes a failure to close the database connection replace an otherwise
	// successful response with an error.
	StrictTeardown bool `json:"strict_teardown" yaml:"strict_teardown"`

	SecretStore SecretStoreConfig `json:"secret_store" yaml:"secret_store"`
	Database    DatabaseConfig    `json:"database"     yaml:"database"`
}

// SecretStoreConfig holds the secret store backend and the id of the database secret.
type SecretStoreConfig struct {
	Type     SecretStoreType `json:"type"      yaml:"type"`
	SecretID string          `json:"secret_id" yaml:"secret_id"`

	// Dir is the secret directory for the file store.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// AWS settings.
	Region          string `json:"region,omitempty"            yaml:"region,omitempty"`
	AccessKeyID     string `json:"access_key_id,omitempty"     yaml:"access_key_id,omitempty"`
	SecretAccessKey string `json:"secret_access_key,omitempty" yaml:"secret_access_key,omitempty"`
	SessionToken    string `json:"session_token,omitempty"     yaml:"session_token,omitempty"`
	URL             string `json:"url,omitempty"               yaml:"url,omitempty"`
}

// DatabaseConfig is the fixed part of the database connection descriptor.
// Credentials are never part of it.
type DatabaseConfig struct {
	Driver         string        `json:"driver"          yaml:"driver"`
	Host           string        `json:"host"            yaml:"host"`
	Port           int           `json:"port"            yaml:"port"`
	Name           string        `json:"name"            yaml:"name"`
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout"`
}
