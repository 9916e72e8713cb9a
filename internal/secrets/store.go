package secrets

import (
	"context"
	"fmt"

	"github.com/querygate/querygate/rest/types"
)

// Open returns the store configured by the secret_store section of daemon.yaml.
func Open(ctx context.Context, config types.SecretStoreConfig) (Store, error) {
	switch config.Type {
	case types.SecretStoreAWS:
		return NewAWSStore(ctx, AWSOptions{
			Region:          config.Region,
			AccessKeyID:     config.AccessKeyID,
			SecretAccessKey: config.SecretAccessKey,
			SessionToken:    config.SessionToken,
			Endpoint:        config.URL,
		})
	case types.SecretStoreFile:
		return NewFileStore(config.Dir), nil
	case types.SecretStoreEnv:
		return NewEnvStore(), nil
	}

	return nil, fmt.Errorf("Unsupported secret store type %q", config.Type)
}
