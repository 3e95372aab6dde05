package triptic

import "time"

// Heartbeat records the last sync time reported by a kiosk screen.
type Heartbeat struct {
	ScreenID string
	LastSync time.Time
}

// Store provides persistence for asset groups, playlists, settings and
// screen heartbeats. Each method acquires its own connection/transaction
// scope and releases it on all exit paths; there is no optimistic concurrency
// token, so concurrent saves of the same entity are last-writer-wins.
type Store interface {
	// Asset group operations

	// LoadGroup returns a group by id, or ErrNotFound.
	LoadGroup(id string) (*AssetGroup, error)

	// SaveGroup upserts the group row and replaces each slot's version rows
	// wholesale in a single transaction. Version order and current pointers
	// survive a reload bit-for-bit.
	SaveGroup(group *AssetGroup) error

	// DeleteGroup removes the group and cascades to its slots' version rows.
	// Blobs are not deleted; orphan cleanup is out of scope. Returns whether
	// anything was removed.
	DeleteGroup(id string) (bool, error)

	// RenameGroup updates a group id in place. Returns ErrNotFound when the
	// old id is absent, ErrConflict when the new id is taken. Playlist
	// membership is not touched; that pass belongs to the caller.
	RenameGroup(oldID, newID string) error

	// ListGroups returns all group ids, sorted.
	ListGroups() ([]string, error)

	// GroupExists reports whether a group id is taken.
	GroupExists(id string) (bool, error)

	// Playlist operations

	// LoadPlaylist returns a playlist by name, or ErrNotFound.
	LoadPlaylist(name string) (*Playlist, error)

	// SavePlaylist upserts the playlist row and replaces its member rows
	// wholesale in a single transaction.
	SavePlaylist(playlist *Playlist) error

	// DeletePlaylist removes a playlist and its member rows. Returns whether
	// anything was removed.
	DeletePlaylist(name string) (bool, error)

	// RenamePlaylist renames a playlist without touching membership.
	// Returns ErrNotFound or ErrConflict on the usual collisions.
	RenamePlaylist(oldName, newName string) error

	// ListPlaylists returns all playlist names, sorted.
	ListPlaylists() ([]string, error)

	// Settings (JSON-encoded key/value)

	// Setting decodes the stored value for key into out. Returns ErrNotFound
	// when the key is absent.
	Setting(key string, out any) error

	// SetSetting stores the JSON encoding of value under key.
	SetSetting(key string, value any) error

	// Screen heartbeats

	// UpdateHeartbeat upserts the last sync time for a screen.
	UpdateHeartbeat(screenID string, at time.Time) error

	// Heartbeats returns all recorded screen heartbeats.
	Heartbeats() ([]Heartbeat, error)

	// Close closes the underlying connection.
	Close() error
}
