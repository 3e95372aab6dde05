package app

import (
	"os"
	"path/filepath"
	"testing"

	"triptic/internal/testutil"
	"triptic/internal/triptic"
)

func writeStateFile(t *testing.T, baseDir, content string) string {
	t.Helper()
	stateDir := filepath.Join(baseDir, "state")
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		t.Fatalf("creating state dir: %v", err)
	}
	path := filepath.Join(stateDir, "triptic.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing state file: %v", err)
	}
	return path
}

func TestMigrateLegacyState(t *testing.T) {
	t.Run("imports both playlist encodings", func(t *testing.T) {
		baseDir := t.TempDir()
		st := testutil.NewTestStore(t)
		// Groups must exist or SavePlaylist drops the membership rows.
		for _, id := range []string{"a", "b", "c", "d", "e"} {
			if err := st.SaveGroup(triptic.NewAssetGroup(id)); err != nil {
				t.Fatalf("SaveGroup(%s) error = %v", id, err)
			}
		}
		path := writeStateFile(t, baseDir, `{
			"playlists": {
				"bare": ["a", "b"],
				"rich": {"assets": ["c", "d", "e"], "current_position": 2}
			},
			"current_playlist": "rich",
			"frequency": 45
		}`)

		if err := MigrateLegacyState(baseDir, st, triptic.NewNopLogger()); err != nil {
			t.Fatalf("MigrateLegacyState() error = %v", err)
		}

		bare, err := st.LoadPlaylist("bare")
		if err != nil {
			t.Fatalf("LoadPlaylist(bare) error = %v", err)
		}
		if len(bare.Members) != 2 || bare.Cursor != 0 {
			t.Errorf("bare = %+v, want 2 members cursor 0", bare)
		}

		rich, err := st.LoadPlaylist("rich")
		if err != nil {
			t.Fatalf("LoadPlaylist(rich) error = %v", err)
		}
		if rich.Cursor != 2 {
			t.Errorf("rich.Cursor = %d, want 2", rich.Cursor)
		}

		var current string
		if err := st.Setting("current_playlist", &current); err != nil {
			t.Fatalf("Setting(current_playlist) error = %v", err)
		}
		if current != "rich" {
			t.Errorf("current_playlist = %v, want rich", current)
		}

		var freq int
		if err := st.Setting("frequency", &freq); err != nil {
			t.Fatalf("Setting(frequency) error = %v", err)
		}
		if freq != 45 {
			t.Errorf("frequency = %d, want 45", freq)
		}

		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("state file was not renamed after import")
		}
		if _, err := os.Stat(path + ".migrated"); err != nil {
			t.Errorf("migrated marker missing: %v", err)
		}
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		baseDir := t.TempDir()
		st := testutil.NewTestStore(t)
		writeStateFile(t, baseDir, `{"playlists": {"shows": ["a"]}}`)

		if err := MigrateLegacyState(baseDir, st, triptic.NewNopLogger()); err != nil {
			t.Fatalf("first MigrateLegacyState() error = %v", err)
		}
		if err := MigrateLegacyState(baseDir, st, triptic.NewNopLogger()); err != nil {
			t.Fatalf("second MigrateLegacyState() error = %v", err)
		}

		names, err := st.ListPlaylists()
		if err != nil {
			t.Fatalf("ListPlaylists() error = %v", err)
		}
		if len(names) != 1 {
			t.Errorf("ListPlaylists() = %v, want single playlist", names)
		}
	})

	t.Run("existing playlists are not overwritten", func(t *testing.T) {
		baseDir := t.TempDir()
		st := testutil.NewTestStore(t)

		existing := triptic.NewPlaylist("shows")
		if err := st.SavePlaylist(existing); err != nil {
			t.Fatalf("SavePlaylist() error = %v", err)
		}
		writeStateFile(t, baseDir, `{"playlists": {"shows": ["a", "b"]}}`)

		if err := MigrateLegacyState(baseDir, st, triptic.NewNopLogger()); err != nil {
			t.Fatalf("MigrateLegacyState() error = %v", err)
		}

		loaded, err := st.LoadPlaylist("shows")
		if err != nil {
			t.Fatalf("LoadPlaylist() error = %v", err)
		}
		if len(loaded.Members) != 0 {
			t.Errorf("Members = %v, want untouched empty playlist", loaded.Members)
		}
	})

	t.Run("missing file is a no-op", func(t *testing.T) {
		st := testutil.NewTestStore(t)
		if err := MigrateLegacyState(t.TempDir(), st, triptic.NewNopLogger()); err != nil {
			t.Fatalf("MigrateLegacyState() error = %v", err)
		}
	})

	t.Run("corrupt file is left in place", func(t *testing.T) {
		baseDir := t.TempDir()
		st := testutil.NewTestStore(t)
		path := writeStateFile(t, baseDir, `{not json`)

		if err := MigrateLegacyState(baseDir, st, triptic.NewNopLogger()); err != nil {
			t.Fatalf("MigrateLegacyState() error = %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("corrupt state file was moved: %v", err)
		}
	})
}
