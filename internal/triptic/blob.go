package triptic

// BlobStore maps opaque UUIDs to stored byte blobs. Content is immutable once
// stored; a fresh UUID is generated per Store call and never reused.
// Filesystem errors propagate as generic I/O failures; there is no
// transactional guarantee across multiple blobs.
type BlobStore interface {
	// Store writes data under a fresh random UUID with the suggested
	// extension (without the leading dot) and returns the UUID.
	Store(data []byte, ext string) (string, error)

	// StoreAs writes data under a caller-chosen UUID. Used for seeding the
	// well-known default placeholders.
	StoreAs(id string, data []byte, ext string) error

	// Fetch returns the stored bytes for the UUID, probing the known
	// extension list. Returns ErrNotFound when no file matches.
	Fetch(id string) ([]byte, error)

	// Delete removes the blob if present and reports whether anything was
	// removed. Idempotent.
	Delete(id string) (bool, error)

	// Exists reports whether a blob is stored under the UUID.
	Exists(id string) (bool, error)
}

// PathResolver is implemented by blob stores whose blobs live on the local
// filesystem. The legacy in-place edit path needs real file paths for its
// backup rotation.
type PathResolver interface {
	// Path returns the filesystem path of the blob, if it exists.
	Path(id string) (string, bool)
}
