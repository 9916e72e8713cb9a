package sys

const (
	// ConfigPath is the location of the daemon configuration file.
	ConfigPath = "QUERYGATE_CONFIG"

	// Endpoint is the URL of the SQL endpoint used by the client.
	Endpoint = "QUERYGATE_ENDPOINT"
)

// DefaultConfigPath is used when ConfigPath is unset.
const DefaultConfigPath = "/etc/querygate/daemon.yaml"
