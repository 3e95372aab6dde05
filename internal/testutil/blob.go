package testutil

import (
	"triptic/internal/blob"
	"triptic/internal/triptic"
)

// NewTestBlobStore creates an in-memory blob store for testing.
func NewTestBlobStore() triptic.BlobStore {
	return blob.NewMemoryBlobStore()
}
