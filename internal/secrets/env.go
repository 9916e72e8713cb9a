package secrets

import (
	"context"
	"fmt"
	"os"
)

// EnvStore reads secrets from environment variables named after the secret id.
type EnvStore struct {
	lookup func(string) (string, bool)
}

// NewEnvStore returns a store backed by the process environment.
func NewEnvStore() *EnvStore {
	return &EnvStore{lookup: os.LookupEnv}
}

// GetSecret returns the value of the environment variable named id.
func (s *EnvStore) GetSecret(ctx context.Context, id string) (string, error) {
	value, ok := s.lookup(id)
	if !ok {
		return "", fmt.Errorf("%w: environment variable %q is not set", ErrNotFound, id)
	}

	return value, nil
}
