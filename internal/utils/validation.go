package utils

import (
	"fmt"
	"net"
	"strings"

	"github.com/canonical/lxd/shared/validate"
)

// ValidateFQDN validates that the given name is a valid fully qualified domain name.
func ValidateFQDN(name string) error {
	// Validate length
	if len(name) < 1 || len(name) > 255 {
		return fmt.Errorf("Name must be 1-255 characters long")
	}

	hostnames := strings.Split(strings.TrimSuffix(name, "."), ".")
	for _, h := range hostnames {
		err := validate.IsHostname(h)
		if err != nil {
			return err
		}
	}

	return nil
}

// ValidateHost accepts an IP address or a fully qualified domain name.
func ValidateHost(host string) error {
	if net.ParseIP(host) != nil {
		return nil
	}

	err := ValidateFQDN(host)
	if err != nil {
		return fmt.Errorf("Invalid host %q: %w", host, err)
	}

	return nil
}
