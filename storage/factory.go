package storage

import (
	"fmt"

	"cloudnest/models"
)

// NewRemoteStorage creates the client for a provider configuration. R2 and
// Wasabi are S3-compatible and share the S3 client with their own
// endpoints.
func NewRemoteStorage(provider *models.StorageProvider) (RemoteStorage, error) {
	if err := ValidateProvider(provider); err != nil {
		return nil, err
	}

	switch provider.Type {
	case "s3", "r2", "wasabi":
		return NewS3Client(provider)
	case "local":
		return NewLocalClient(provider)
	default:
		return nil, fmt.Errorf("unsupported storage provider type: %s", provider.Type)
	}
}

// ValidateProvider checks that the provider configuration is usable.
func ValidateProvider(provider *models.StorageProvider) error {
	if provider == nil {
		return fmt.Errorf("storage provider is required")
	}

	switch provider.Type {
	case "s3":
		if provider.Bucket == "" || provider.Region == "" {
			return fmt.Errorf("s3 provider requires bucket and region")
		}
	case "r2", "wasabi":
		if provider.Bucket == "" || provider.Endpoint == "" {
			return fmt.Errorf("%s provider requires bucket and endpoint", provider.Type)
		}
	case "local":
		// Base path defaults are handled by the client.
	default:
		return fmt.Errorf("unknown storage provider type: %s", provider.Type)
	}
	return nil
}
