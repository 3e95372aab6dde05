package store

// Schema is the full database schema as produced by applying all migrations.
// Tests apply it directly to an in-memory database instead of running the
// migration machinery. Keep in sync with internal/store/migrations/files.
const Schema = `
CREATE TABLE asset_groups (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    group_id TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL
);
CREATE TABLE assets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    asset_group_id INTEGER NOT NULL,
    screen TEXT NOT NULL CHECK(screen IN ('left', 'center', 'right')),
    current_version_uuid TEXT,
    UNIQUE (asset_group_id, screen),
    FOREIGN KEY (asset_group_id) REFERENCES asset_groups (id) ON DELETE CASCADE
);
CREATE TABLE asset_versions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    asset_id INTEGER NOT NULL,
    content_uuid TEXT NOT NULL,
    prompt TEXT NOT NULL,
    version_uuid TEXT NOT NULL,
    created_at TEXT NOT NULL,
    version_index INTEGER NOT NULL,
    UNIQUE (asset_id, version_index),
    FOREIGN KEY (asset_id) REFERENCES assets (id) ON DELETE CASCADE
);
CREATE TABLE playlists (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    current_position INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);
CREATE TABLE playlist_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    playlist_id INTEGER NOT NULL,
    asset_group_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    UNIQUE (playlist_id, position),
    FOREIGN KEY (playlist_id) REFERENCES playlists (id) ON DELETE CASCADE,
    FOREIGN KEY (asset_group_id) REFERENCES asset_groups (id) ON DELETE CASCADE
);
CREATE TABLE settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
CREATE TABLE screen_heartbeats (
    screen_id TEXT PRIMARY KEY,
    last_sync TEXT NOT NULL
);
CREATE INDEX idx_asset_versions_asset_id ON asset_versions (asset_id);
CREATE INDEX idx_assets_group_id ON assets (asset_group_id);
CREATE INDEX idx_playlist_items_playlist ON playlist_items (playlist_id, position);
`
