// Package rotation implements the legacy path-suffix backup scheme used when
// image editing mutates a file in place. For a live file dir/stem.ext,
// backups live at dir/stem.v1.ext .. dir/stem.v8.ext, v1 oldest; the live
// file itself is conceptually version 9. This scheme is file-path-addressed
// and deliberately independent of the database-tracked version history.
package rotation

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxBackups is the number of numbered backup files kept per base path.
// The live file is one more, addressed as version 9.
const MaxBackups = 8

// LiveVersion is the version number denoting the live file.
const LiveVersion = 9

const tempSuffix = ".tmp_version"

// versionPath returns the path of backup version n for the live file path.
func versionPath(path string, n int) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s.v%d%s", base, n, ext)
}

// CreateBackup rotates the backups for path and copies the live file to v8.
// The oldest backup (v1) is deleted, v2..v8 shift down one, and the live file
// becomes v8. No-op when the live file does not exist.
func CreateBackup(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat live file: %w", err)
	}

	v1 := versionPath(path, 1)
	if err := os.Remove(v1); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing oldest backup: %w", err)
	}

	for i := 2; i <= MaxBackups; i++ {
		old := versionPath(path, i)
		if _, err := os.Stat(old); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("stat backup v%d: %w", i, err)
		}
		if err := os.Rename(old, versionPath(path, i-1)); err != nil {
			return fmt.Errorf("shifting backup v%d: %w", i, err)
		}
	}

	if err := copyFile(path, versionPath(path, MaxBackups)); err != nil {
		return fmt.Errorf("copying live file to v%d: %w", MaxBackups, err)
	}
	return nil
}

// ListAvailableBackups returns the version numbers that exist for path:
// 1..8 for backup files present on disk, with 9 appended when the live file
// itself exists.
func ListAvailableBackups(path string) ([]int, error) {
	var versions []int
	for i := 1; i <= MaxBackups; i++ {
		if _, err := os.Stat(versionPath(path, i)); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("stat backup v%d: %w", i, err)
		}
		versions = append(versions, i)
	}
	if _, err := os.Stat(path); err == nil {
		versions = append(versions, LiveVersion)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat live file: %w", err)
	}
	return versions, nil
}

// Compact renumbers existing backup files to remove gaps, preserving relative
// age order (oldest kept lowest). Renames go through temporary names first so
// a shift never collides with a file that has not moved yet. No-op when the
// numbering is already contiguous from 1.
func Compact(path string) error {
	type backup struct {
		oldN int
		path string
	}

	var existing []backup
	for i := 1; i <= MaxBackups; i++ {
		p := versionPath(path, i)
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("stat backup v%d: %w", i, err)
		}
		existing = append(existing, backup{oldN: i, path: p})
	}

	// Contiguous from 1 already.
	if len(existing) == 0 || existing[len(existing)-1].oldN == len(existing) {
		return nil
	}

	// First pass: move displaced files to temporary names.
	type staged struct {
		newN int
		path string
		temp bool
	}
	var moves []staged
	for i, b := range existing {
		newN := i + 1
		if newN == b.oldN {
			moves = append(moves, staged{newN: newN, path: b.path})
			continue
		}
		tmp := versionPath(path, newN) + tempSuffix
		if err := os.Rename(b.path, tmp); err != nil {
			return fmt.Errorf("staging backup v%d: %w", b.oldN, err)
		}
		moves = append(moves, staged{newN: newN, path: tmp, temp: true})
	}

	// Second pass: settle temporary names into their final slots.
	for _, m := range moves {
		if !m.temp {
			continue
		}
		if err := os.Rename(m.path, versionPath(path, m.newN)); err != nil {
			return fmt.Errorf("settling backup v%d: %w", m.newN, err)
		}
	}

	return nil
}

// copyFile copies src to dst, preserving the source permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying data: %w", err)
	}
	return out.Close()
}
