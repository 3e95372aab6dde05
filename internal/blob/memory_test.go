package blob

import (
	"errors"
	"testing"

	"triptic/internal/triptic"
)

func TestMemoryBlobStore(t *testing.T) {
	t.Run("store and fetch round-trip", func(t *testing.T) {
		s := NewMemoryBlobStore()

		id, err := s.Store([]byte("image data"), "png")
		if err != nil {
			t.Fatalf("Store() error = %v", err)
		}

		data, err := s.Fetch(id)
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if string(data) != "image data" {
			t.Errorf("Fetch() = %q, want image data", data)
		}
	})

	t.Run("fetched bytes are a copy", func(t *testing.T) {
		s := NewMemoryBlobStore()

		id, err := s.Store([]byte("original"), "png")
		if err != nil {
			t.Fatalf("Store() error = %v", err)
		}

		data, _ := s.Fetch(id)
		data[0] = 'X'

		again, _ := s.Fetch(id)
		if string(again) != "original" {
			t.Errorf("stored bytes mutated through a fetched copy: %q", again)
		}
	})

	t.Run("missing blob returns ErrNotFound", func(t *testing.T) {
		s := NewMemoryBlobStore()
		if _, err := s.Fetch("missing"); !errors.Is(err, triptic.ErrNotFound) {
			t.Errorf("Fetch() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		s := NewMemoryBlobStore()

		id, err := s.Store([]byte("data"), "png")
		if err != nil {
			t.Fatalf("Store() error = %v", err)
		}

		removed, err := s.Delete(id)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if !removed {
			t.Error("Delete() = false, want true")
		}

		removed, err = s.Delete(id)
		if err != nil {
			t.Fatalf("second Delete() error = %v", err)
		}
		if removed {
			t.Error("second Delete() = true, want false")
		}
	})
}
