package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"triptic/internal/blob"
	"triptic/internal/config"
	"triptic/internal/imgen"
	"triptic/internal/store"
	"triptic/internal/triptic"
)

// TripticApp is the application layer between the CLI and the Service.
// It constructs all dependencies from config, runs startup migrations,
// and manages the store lifecycle on Close.
type TripticApp struct {
	cfg     *config.Config
	store   triptic.Store
	blobs   triptic.BlobStore
	service *triptic.Service
	logFile *os.File
}

// NewTripticApp creates a fully wired TripticApp from the given config.
// operation identifies the CLI command being run (e.g. "CreateGroup", "Regenerate").
// The caller must call Close when done.
func NewTripticApp(cfg *config.Config, operation string) (*TripticApp, error) {
	st, err := store.NewStoreFromConfig(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	blobs, err := blob.NewBlobStoreFromConfig(cfg.Blob)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating blob store: %w", err)
	}

	renderer, err := imgen.NewRendererFromConfig(cfg.Renderer)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	log := &slogAdapter{l: logger}

	if err := seedPlaceholders(blobs, renderer); err != nil {
		logFile.Close()
		st.Close()
		return nil, fmt.Errorf("seeding placeholder content: %w", err)
	}

	svc := triptic.NewService(st, blobs, renderer, triptic.NewJobTracker(), log, triptic.RealClock{}, triptic.UUIDGenerator{})

	if err := MigrateLegacyState(cfg.BaseDir, st, log); err != nil {
		logFile.Close()
		st.Close()
		return nil, fmt.Errorf("migrating legacy state: %w", err)
	}

	return &TripticApp{
		cfg:     cfg,
		store:   st,
		blobs:   blobs,
		service: svc,
		logFile: logFile,
	}, nil
}

// Service returns the wired orchestration service.
func (a *TripticApp) Service() *triptic.Service {
	return a.service
}

// Blobs returns the wired content blob store.
func (a *TripticApp) Blobs() triptic.BlobStore {
	return a.blobs
}

// Config returns the application config.
func (a *TripticApp) Config() *config.Config {
	return a.cfg
}

// Close closes the store and the log file.
func (a *TripticApp) Close() error {
	var firstErr error

	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}

// seedPlaceholders ensures the well-known placeholder content exists in the
// blob store, one per screen position. Display code resolves these for empty
// slots, so they must always be fetchable.
func seedPlaceholders(blobs triptic.BlobStore, renderer triptic.Renderer) error {
	for _, name := range triptic.SlotNames {
		id := triptic.DefaultContentRef(name)
		ok, err := blobs.Exists(id)
		if err != nil {
			return fmt.Errorf("checking placeholder for %s: %w", name, err)
		}
		if ok {
			continue
		}

		data, ext, err := renderer.Generate(context.Background(), "placeholder "+string(name))
		if err != nil {
			return fmt.Errorf("rendering placeholder for %s: %w", name, err)
		}
		if err := blobs.StoreAs(id, data, ext); err != nil {
			return fmt.Errorf("storing placeholder for %s: %w", name, err)
		}
	}
	return nil
}
