package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"triptic/internal/store/migrations"
	"triptic/internal/triptic"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// timeFormat is the canonical on-disk timestamp encoding. Storing TEXT keeps
// the rows readable in the sqlite3 shell and avoids driver-specific time
// scanning behavior.
const timeFormat = time.RFC3339Nano

// SQLiteStore implements the triptic.Store interface using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite store connection.
// path can be a file path or ":memory:" for in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteStore{
		db:   db,
		path: path,
	}, nil
}

// NewSQLiteStoreFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteStoreFromDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{
		db:   db,
		path: "",
	}
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
// This is exported for use in tools and tests that need a properly configured SQLite connection.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Asset group operations

func (s *SQLiteStore) LoadGroup(id string) (*triptic.AssetGroup, error) {
	ctx := context.Background()

	var rowID int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM asset_groups WHERE group_id = ?`, id).Scan(&rowID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("asset group %s: %w", id, triptic.ErrNotFound)
		}
		return nil, fmt.Errorf("finding asset group: %w", err)
	}

	group := triptic.NewAssetGroup(id)

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.screen, a.current_version_uuid,
		       v.content_uuid, v.prompt, v.version_uuid, v.created_at
		FROM assets a
		LEFT JOIN asset_versions v ON v.asset_id = a.id
		WHERE a.asset_group_id = ?
		ORDER BY a.screen, v.version_index`, rowID)
	if err != nil {
		return nil, fmt.Errorf("loading asset versions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var screen string
		var current, contentUUID, prompt, versionUUID, createdAt sql.NullString
		if err := rows.Scan(&screen, &current, &contentUUID, &prompt, &versionUUID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning asset version: %w", err)
		}

		name, err := triptic.ParseSlotName(screen)
		if err != nil {
			return nil, fmt.Errorf("stored slot for group %s: %w", id, err)
		}
		slot := group.Slot(name)
		slot.Current = current.String

		// LEFT JOIN yields a single all-NULL version row for an empty slot.
		if !versionUUID.Valid {
			continue
		}

		at, err := time.Parse(timeFormat, createdAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing version timestamp: %w", err)
		}
		slot.Versions = append(slot.Versions, triptic.Version{
			ContentRef: contentUUID.String,
			Prompt:     prompt.String,
			ID:         versionUUID.String,
			CreatedAt:  at,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading asset versions: %w", err)
	}

	return group, nil
}

func (s *SQLiteStore) SaveGroup(group *triptic.AssetGroup) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var rowID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM asset_groups WHERE group_id = ?`, group.ID).Scan(&rowID)
	if errors.Is(err, sql.ErrNoRows) {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO asset_groups (group_id, created_at) VALUES (?, ?)`,
			group.ID, time.Now().Format(timeFormat))
		if err != nil {
			return fmt.Errorf("inserting asset group: %w", err)
		}
		rowID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("inserting asset group: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("finding asset group: %w", err)
	}

	for _, name := range triptic.SlotNames {
		slot := group.Slot(name)

		var assetID int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM assets WHERE asset_group_id = ? AND screen = ?`,
			rowID, string(name)).Scan(&assetID)
		if errors.Is(err, sql.ErrNoRows) {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO assets (asset_group_id, screen, current_version_uuid) VALUES (?, ?, ?)`,
				rowID, string(name), nullIfEmpty(slot.Current))
			if err != nil {
				return fmt.Errorf("inserting %s asset: %w", name, err)
			}
			assetID, err = res.LastInsertId()
			if err != nil {
				return fmt.Errorf("inserting %s asset: %w", name, err)
			}
		} else if err != nil {
			return fmt.Errorf("finding %s asset: %w", name, err)
		} else {
			_, err = tx.ExecContext(ctx,
				`UPDATE assets SET current_version_uuid = ? WHERE id = ?`,
				nullIfEmpty(slot.Current), assetID)
			if err != nil {
				return fmt.Errorf("updating %s asset: %w", name, err)
			}
		}

		// Replace the version rows wholesale. The history is bounded at nine
		// entries, so the delete-and-reinsert stays cheap and keeps the
		// version_index column an exact mirror of in-memory order.
		if _, err := tx.ExecContext(ctx, `DELETE FROM asset_versions WHERE asset_id = ?`, assetID); err != nil {
			return fmt.Errorf("clearing %s versions: %w", name, err)
		}
		for i, v := range slot.Versions {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO asset_versions (asset_id, content_uuid, prompt, version_uuid, created_at, version_index)
				VALUES (?, ?, ?, ?, ?, ?)`,
				assetID, v.ContentRef, v.Prompt, v.ID, v.CreatedAt.Format(timeFormat), i)
			if err != nil {
				return fmt.Errorf("inserting %s version %d: %w", name, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *SQLiteStore) DeleteGroup(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM asset_groups WHERE group_id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting asset group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting asset group: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) RenameGroup(oldID, newID string) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var taken int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM asset_groups WHERE group_id = ?`, newID).Scan(&taken)
	if err != nil {
		return fmt.Errorf("checking for name collision: %w", err)
	}
	if taken > 0 {
		return fmt.Errorf("asset group %s already exists: %w", newID, triptic.ErrConflict)
	}

	res, err := tx.ExecContext(ctx, `UPDATE asset_groups SET group_id = ? WHERE group_id = ?`, newID, oldID)
	if err != nil {
		return fmt.Errorf("renaming asset group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("renaming asset group: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("asset group %s: %w", oldID, triptic.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *SQLiteStore) ListGroups() ([]string, error) {
	rows, err := s.db.Query(`SELECT group_id FROM asset_groups ORDER BY group_id`)
	if err != nil {
		return nil, fmt.Errorf("listing asset groups: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning asset group: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing asset groups: %w", err)
	}
	return ids, nil
}

func (s *SQLiteStore) GroupExists(id string) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM asset_groups WHERE group_id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking asset group: %w", err)
	}
	return count > 0, nil
}

// Playlist operations

func (s *SQLiteStore) LoadPlaylist(name string) (*triptic.Playlist, error) {
	ctx := context.Background()

	var rowID int64
	var cursor int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, current_position FROM playlists WHERE name = ?`, name).Scan(&rowID, &cursor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("playlist %s: %w", name, triptic.ErrNotFound)
		}
		return nil, fmt.Errorf("finding playlist: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT g.group_id
		FROM playlist_items i
		JOIN asset_groups g ON g.id = i.asset_group_id
		WHERE i.playlist_id = ?
		ORDER BY i.position`, rowID)
	if err != nil {
		return nil, fmt.Errorf("loading playlist items: %w", err)
	}
	defer rows.Close()

	playlist := triptic.NewPlaylist(name)
	playlist.Cursor = cursor
	for rows.Next() {
		var groupID string
		if err := rows.Scan(&groupID); err != nil {
			return nil, fmt.Errorf("scanning playlist item: %w", err)
		}
		playlist.Members = append(playlist.Members, groupID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading playlist items: %w", err)
	}

	return playlist, nil
}

func (s *SQLiteStore) SavePlaylist(playlist *triptic.Playlist) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var rowID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM playlists WHERE name = ?`, playlist.Name).Scan(&rowID)
	if errors.Is(err, sql.ErrNoRows) {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO playlists (name, current_position, created_at) VALUES (?, ?, ?)`,
			playlist.Name, playlist.Cursor, time.Now().Format(timeFormat))
		if err != nil {
			return fmt.Errorf("inserting playlist: %w", err)
		}
		rowID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("inserting playlist: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("finding playlist: %w", err)
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE playlists SET current_position = ? WHERE id = ?`, playlist.Cursor, rowID)
		if err != nil {
			return fmt.Errorf("updating playlist: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM playlist_items WHERE playlist_id = ?`, rowID); err != nil {
		return fmt.Errorf("clearing playlist items: %w", err)
	}

	// Members whose asset group no longer exists are silently dropped from
	// the persisted form; the in-memory playlist keeps them for the session.
	position := 0
	for _, member := range playlist.Members {
		var groupRowID int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM asset_groups WHERE group_id = ?`, member).Scan(&groupRowID)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return fmt.Errorf("resolving playlist member %s: %w", member, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO playlist_items (playlist_id, asset_group_id, position) VALUES (?, ?, ?)`,
			rowID, groupRowID, position)
		if err != nil {
			return fmt.Errorf("inserting playlist item %s: %w", member, err)
		}
		position++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *SQLiteStore) DeletePlaylist(name string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM playlists WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("deleting playlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting playlist: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) RenamePlaylist(oldName, newName string) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var taken int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM playlists WHERE name = ?`, newName).Scan(&taken)
	if err != nil {
		return fmt.Errorf("checking for name collision: %w", err)
	}
	if taken > 0 {
		return fmt.Errorf("playlist %s already exists: %w", newName, triptic.ErrConflict)
	}

	res, err := tx.ExecContext(ctx, `UPDATE playlists SET name = ? WHERE name = ?`, newName, oldName)
	if err != nil {
		return fmt.Errorf("renaming playlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("renaming playlist: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("playlist %s: %w", oldName, triptic.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *SQLiteStore) ListPlaylists() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM playlists ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing playlists: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning playlist: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing playlists: %w", err)
	}
	return names, nil
}

// Settings (JSON-encoded key/value)

func (s *SQLiteStore) Setting(key string, out any) error {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("setting %s: %w", key, triptic.ErrNotFound)
		}
		return fmt.Errorf("reading setting %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decoding setting %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) SetSetting(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding setting %s: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(raw))
	if err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

// Screen heartbeats

func (s *SQLiteStore) UpdateHeartbeat(screenID string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO screen_heartbeats (screen_id, last_sync) VALUES (?, ?)
		ON CONFLICT(screen_id) DO UPDATE SET last_sync = excluded.last_sync`,
		screenID, at.Format(timeFormat))
	if err != nil {
		return fmt.Errorf("updating heartbeat for %s: %w", screenID, err)
	}
	return nil
}

func (s *SQLiteStore) Heartbeats() ([]triptic.Heartbeat, error) {
	rows, err := s.db.Query(`SELECT screen_id, last_sync FROM screen_heartbeats ORDER BY screen_id`)
	if err != nil {
		return nil, fmt.Errorf("listing heartbeats: %w", err)
	}
	defer rows.Close()

	var beats []triptic.Heartbeat
	for rows.Next() {
		var screenID, lastSync string
		if err := rows.Scan(&screenID, &lastSync); err != nil {
			return nil, fmt.Errorf("scanning heartbeat: %w", err)
		}
		at, err := time.Parse(timeFormat, lastSync)
		if err != nil {
			return nil, fmt.Errorf("parsing heartbeat timestamp: %w", err)
		}
		beats = append(beats, triptic.Heartbeat{ScreenID: screenID, LastSync: at})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing heartbeats: %w", err)
	}
	return beats, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteStore) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteStore) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Migrate runs all pending schema migrations.
func (s *SQLiteStore) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Compile-time check that SQLiteStore implements the triptic.Store interface
var _ triptic.Store = (*SQLiteStore)(nil)
