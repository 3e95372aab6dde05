package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"triptic/internal/triptic"
)

// legacyStateFile is the JSON state file written by the pre-database server,
// relative to the base dir.
const legacyStateFile = "state/triptic.json"

// legacyState mirrors the old on-disk JSON shape. Playlist values appeared in
// two historical forms: a bare array of group names, and an object carrying
// the member list plus a cursor. Both are accepted.
type legacyState struct {
	Playlists       map[string]json.RawMessage `json:"playlists"`
	CurrentPlaylist string                     `json:"current_playlist"`
	Frequency       int                        `json:"frequency"`
}

type legacyPlaylist struct {
	Assets          []string `json:"assets"`
	CurrentPosition int      `json:"current_position"`
}

// MigrateLegacyState imports a legacy JSON state file into the store, then
// renames the file so the import never re-runs. Playlists whose name already
// exists in the store are skipped. A missing file is a no-op; a corrupt file
// logs a warning and is left untouched for manual inspection.
func MigrateLegacyState(baseDir string, st triptic.Store, logger triptic.Logger) error {
	path := filepath.Join(baseDir, legacyStateFile)

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading legacy state file: %w", err)
	}

	var state legacyState
	if err := json.Unmarshal(raw, &state); err != nil {
		logger.Warn("legacy state file is not valid JSON, leaving in place", "path", path, "error", err)
		return nil
	}

	imported := 0
	for name, rawPlaylist := range state.Playlists {
		_, err := st.LoadPlaylist(name)
		if err == nil {
			logger.Warn("playlist already exists, skipping legacy import", "playlist", name)
			continue
		}
		if !errors.Is(err, triptic.ErrNotFound) {
			return fmt.Errorf("checking playlist %s: %w", name, err)
		}

		members, cursor, err := decodeLegacyPlaylist(rawPlaylist)
		if err != nil {
			logger.Warn("unreadable legacy playlist, skipping", "playlist", name, "error", err)
			continue
		}

		playlist := triptic.NewPlaylist(name)
		playlist.Reorder(members)
		if cursor >= 0 && cursor < len(members) {
			playlist.Cursor = cursor
		}
		if err := st.SavePlaylist(playlist); err != nil {
			return fmt.Errorf("importing playlist %s: %w", name, err)
		}
		imported++
	}

	if state.CurrentPlaylist != "" {
		if err := st.SetSetting("current_playlist", state.CurrentPlaylist); err != nil {
			return fmt.Errorf("importing current playlist: %w", err)
		}
	}
	if state.Frequency > 0 {
		if err := st.SetSetting("frequency", state.Frequency); err != nil {
			return fmt.Errorf("importing rotation frequency: %w", err)
		}
	}

	if err := os.Rename(path, path+".migrated"); err != nil {
		return fmt.Errorf("marking legacy state file migrated: %w", err)
	}

	logger.Info("legacy state imported", "playlists", imported, "path", path)
	return nil
}

// decodeLegacyPlaylist accepts both historical playlist encodings.
func decodeLegacyPlaylist(raw json.RawMessage) ([]string, int, error) {
	var members []string
	if err := json.Unmarshal(raw, &members); err == nil {
		return members, 0, nil
	}

	var obj legacyPlaylist
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, 0, err
	}
	return obj.Assets, obj.CurrentPosition, nil
}
