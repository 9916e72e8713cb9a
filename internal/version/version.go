// Package version provides the querygate version.
package version

// version is overridden at build time with -ldflags "-X github.com/querygate/querygate/internal/version.version=...".
var version = "0.1.0"

// Version returns the version of querygate.
func Version() string {
	return version
}
