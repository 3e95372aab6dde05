package blob

import (
	"testing"

	"triptic/internal/config"
)

func TestNewBlobStoreFromConfig(t *testing.T) {
	t.Run("memory store", func(t *testing.T) {
		cfg := config.BlobConfig{Type: "memory"}
		got, err := NewBlobStoreFromConfig(cfg)
		if err != nil {
			t.Errorf("NewBlobStoreFromConfig() unexpected error: %v", err)
		}
		if got == nil {
			t.Error("NewBlobStoreFromConfig() returned nil")
		}
	})

	t.Run("filesystem store", func(t *testing.T) {
		cfg := config.BlobConfig{Type: "filesystem", Root: t.TempDir()}
		got, err := NewBlobStoreFromConfig(cfg)
		if err != nil {
			t.Errorf("NewBlobStoreFromConfig() unexpected error: %v", err)
		}
		if got == nil {
			t.Error("NewBlobStoreFromConfig() returned nil")
		}
	})

	t.Run("filesystem store without root", func(t *testing.T) {
		cfg := config.BlobConfig{Type: "filesystem"}
		if _, err := NewBlobStoreFromConfig(cfg); err == nil {
			t.Error("NewBlobStoreFromConfig() expected error for missing root, got nil")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		cfg := config.BlobConfig{Type: "floppy"}
		if _, err := NewBlobStoreFromConfig(cfg); err == nil {
			t.Error("NewBlobStoreFromConfig() expected error for unknown type, got nil")
		}
	})
}
