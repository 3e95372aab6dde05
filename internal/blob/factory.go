package blob

import (
	"context"
	"fmt"

	"triptic/internal/config"
	"triptic/internal/triptic"
)

// NewBlobStoreFromConfig creates a BlobStore implementation based on the blob
// config type.
func NewBlobStoreFromConfig(cfg config.BlobConfig) (triptic.BlobStore, error) {
	switch cfg.Type {
	case "filesystem":
		if cfg.Root == "" {
			return nil, fmt.Errorf("root required for filesystem blob store")
		}
		return NewFileSystemBlobStore(cfg.Root)
	case "memory":
		return NewMemoryBlobStore(), nil
	case "s3":
		return NewS3BlobStore(context.Background(), S3Options{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown blob store type: %s", cfg.Type)
	}
}
