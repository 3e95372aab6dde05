package store

import (
	"fmt"
	"path/filepath"

	"triptic/internal/config"
	"triptic/internal/triptic"
)

// storeFileName is the sqlite database file under the configured data dir.
const storeFileName = "triptic.db"

// NewStoreFromConfig creates a Store implementation based on the store config type.
// The returned store has all pending schema migrations applied.
func NewStoreFromConfig(cfg config.StoreConfig) (triptic.Store, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite store")
		}
		return openMigrated(filepath.Join(cfg.DataDir, storeFileName))
	case "memory":
		return openMigrated(":memory:")
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}

func openMigrated(path string) (*SQLiteStore, error) {
	st, err := NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(); err != nil {
		st.Close()
		return nil, fmt.Errorf("migrating store at %s: %w", path, err)
	}
	return st, nil
}
