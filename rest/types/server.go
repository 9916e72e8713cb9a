package types

// Server represents the status information served on the root endpoint.
// It never includes credentials.
type Server struct {
	Version  string         `json:"version"  yaml:"version"`
	Endpoint string         `json:"endpoint" yaml:"endpoint"`
	Database DatabaseStatus `json:"database" yaml:"database"`
}

// DatabaseStatus describes the database the daemon points at.
type DatabaseStatus struct {
	Driver string `json:"driver" yaml:"driver"`
	Host   string `json:"host"   yaml:"host"`
	Port   int    `json:"port"   yaml:"port"`
	Name   string `json:"name"   yaml:"name"`
}
