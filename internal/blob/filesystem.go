package blob

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"triptic/internal/triptic"

	"github.com/google/uuid"
)

// knownExtensions is the fixed probe list used to locate a blob by UUID.
// There is no extension index; lookup tries each in order.
var knownExtensions = []string{".png", ".jpg", ".jpeg", ".svg", ".gif", ".mp4", ".webm"}

// defaultExtension is used when a caller stores bytes without suggesting one.
const defaultExtension = ".png"

// FileSystemBlobStore stores blobs as {uuid}.{ext} files under a root
// directory.
type FileSystemBlobStore struct {
	root string
}

// NewFileSystemBlobStore creates a blob store rooted at the given directory,
// creating it if needed.
func NewFileSystemBlobStore(root string) (*FileSystemBlobStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}
	return &FileSystemBlobStore{root: root}, nil
}

// Root returns the blob root directory.
func (s *FileSystemBlobStore) Root() string { return s.root }

// Store writes data under a fresh random UUID and returns the UUID.
// UUID collisions are treated as negligible and not defended against.
func (s *FileSystemBlobStore) Store(data []byte, ext string) (string, error) {
	id := uuid.New().String()
	if err := s.StoreAs(id, data, ext); err != nil {
		return "", err
	}
	return id, nil
}

// StoreAs writes data under a caller-chosen UUID using an atomic
// temp-file-and-rename write.
func (s *FileSystemBlobStore) StoreAs(id string, data []byte, ext string) error {
	destPath := filepath.Join(s.root, id+normalizeExt(ext))

	tmpFile, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing blob: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// Fetch returns the stored bytes for the UUID.
func (s *FileSystemBlobStore) Fetch(id string) ([]byte, error) {
	path, ok := s.Path(id)
	if !ok {
		return nil, fmt.Errorf("blob %s: %w", id, triptic.ErrNotFound)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading blob: %w", err)
	}
	return data, nil
}

// Delete removes the blob if present. Idempotent.
func (s *FileSystemBlobStore) Delete(id string) (bool, error) {
	path, ok := s.Path(id)
	if !ok {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("removing blob: %w", err)
	}
	return true, nil
}

// Exists reports whether a blob is stored under the UUID.
func (s *FileSystemBlobStore) Exists(id string) (bool, error) {
	_, ok := s.Path(id)
	return ok, nil
}

// Path locates the blob file by probing the known extensions in order.
func (s *FileSystemBlobStore) Path(id string) (string, bool) {
	for _, ext := range knownExtensions {
		path := filepath.Join(s.root, id+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// normalizeExt returns the extension with a leading dot, falling back to the
// default when empty or unknown.
func normalizeExt(ext string) string {
	if ext == "" {
		return defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	for _, known := range knownExtensions {
		if ext == known {
			return ext
		}
	}
	return defaultExtension
}

// Compile-time checks that FileSystemBlobStore implements the core interfaces.
var (
	_ triptic.BlobStore    = (*FileSystemBlobStore)(nil)
	_ triptic.PathResolver = (*FileSystemBlobStore)(nil)
)
