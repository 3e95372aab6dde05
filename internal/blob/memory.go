package blob

import (
	"fmt"
	"sync"

	"triptic/internal/triptic"

	"github.com/google/uuid"
)

// MemoryBlobStore is an in-memory implementation of the BlobStore interface,
// useful for testing. Safe for concurrent use.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte // uuid -> content
	exts  map[string]string // uuid -> extension
}

// NewMemoryBlobStore creates an empty in-memory blob store.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{
		blobs: make(map[string][]byte),
		exts:  make(map[string]string),
	}
}

// Store writes data under a fresh random UUID and returns the UUID.
func (s *MemoryBlobStore) Store(data []byte, ext string) (string, error) {
	id := uuid.New().String()
	if err := s.StoreAs(id, data, ext); err != nil {
		return "", err
	}
	return id, nil
}

// StoreAs writes data under a caller-chosen UUID.
func (s *MemoryBlobStore) StoreAs(id string, data []byte, ext string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[id] = append([]byte(nil), data...)
	s.exts[id] = normalizeExt(ext)
	return nil
}

// Fetch returns the stored bytes for the UUID.
func (s *MemoryBlobStore) Fetch(id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[id]
	if !ok {
		return nil, fmt.Errorf("blob %s: %w", id, triptic.ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Delete removes the blob if present. Idempotent.
func (s *MemoryBlobStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[id]
	delete(s.blobs, id)
	delete(s.exts, id)
	return ok, nil
}

// Exists reports whether a blob is stored under the UUID.
func (s *MemoryBlobStore) Exists(id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blobs[id]
	return ok, nil
}

// Compile-time check that MemoryBlobStore implements the BlobStore interface.
var _ triptic.BlobStore = (*MemoryBlobStore)(nil)
