package triptic

import (
	"fmt"
	"time"
)

// MaxVersions is the per-slot history bound. Appending beyond it evicts the
// oldest version unconditionally.
const MaxVersions = 9

// Version is one immutable generated-content record in a slot's history.
type Version struct {
	ContentRef string    // blob UUID in the content store
	Prompt     string    // prompt used to generate this version
	ID         string    // unique within the slot's history, never reused
	CreatedAt  time.Time
}

// Slot holds the bounded, ordered version history for one screen position.
// Versions are ordered oldest first; display ordinals 1..N are derived from
// position at query time and are not stored.
type Slot struct {
	Versions []Version
	Current  string // version ID of the displayed version; may be empty
}

// VersionInfo describes one history entry for display pickers.
type VersionInfo struct {
	Ordinal    int // 1-based, 1 = oldest
	ID         string
	ContentRef string
	Prompt     string
	CreatedAt  time.Time
	IsCurrent  bool
}

// Append adds a version to the end of the history, evicting the oldest entry
// when the bound is exceeded. The eviction ignores the current pointer: if the
// evicted version was current, Current is left dangling and CurrentVersion
// falls back to the oldest remaining version. When setAsCurrent is true the
// new version becomes current.
func (s *Slot) Append(v Version, setAsCurrent bool) {
	s.Versions = append(s.Versions, v)
	if len(s.Versions) > MaxVersions {
		s.Versions = s.Versions[1:]
	}
	if setAsCurrent {
		s.Current = v.ID
	}
}

// Select makes the version at the given 1-based ordinal current.
// External clients address versions by the small ordinal shown in the UI
// picker, not by ID.
func (s *Slot) Select(ordinal int) error {
	if ordinal < 1 || ordinal > len(s.Versions) {
		return fmt.Errorf("version %d not available (1-%d exist): %w", ordinal, len(s.Versions), ErrInvalidArgument)
	}
	s.Current = s.Versions[ordinal-1].ID
	return nil
}

// SelectID makes the version with the given ID current.
func (s *Slot) SelectID(versionID string) error {
	for _, v := range s.Versions {
		if v.ID == versionID {
			s.Current = versionID
			return nil
		}
	}
	return fmt.Errorf("version %s: %w", versionID, ErrNotFound)
}

// DeleteCurrent removes the effective current version and promotes the newest
// remaining version to current, mirroring "undo to previous". Deleting from
// an empty slot or removing the last remaining version is rejected.
func (s *Slot) DeleteCurrent() error {
	switch len(s.Versions) {
	case 0:
		return fmt.Errorf("slot has no versions: %w", ErrStateViolation)
	case 1:
		return fmt.Errorf("cannot delete last remaining version: %w", ErrStateViolation)
	}

	// Resolve the effective current the same way CurrentVersion does, so a
	// dangling pointer deletes the fallback-oldest rather than failing.
	cur := s.CurrentVersion()
	idx := 0
	for i, v := range s.Versions {
		if v.ID == cur.ID {
			idx = i
			break
		}
	}

	s.Versions = append(s.Versions[:idx], s.Versions[idx+1:]...)
	s.Current = s.Versions[len(s.Versions)-1].ID
	return nil
}

// CurrentVersion returns the displayed version. When the current pointer is
// unset or references an evicted version, it falls back to the oldest entry;
// the result is nil only for an empty slot. Display code always has something
// to show.
func (s *Slot) CurrentVersion() *Version {
	if s.Current != "" {
		for i := range s.Versions {
			if s.Versions[i].ID == s.Current {
				return &s.Versions[i]
			}
		}
	}
	if len(s.Versions) > 0 {
		return &s.Versions[0]
	}
	return nil
}

// Positions returns the history as display entries, oldest first.
func (s *Slot) Positions() []VersionInfo {
	cur := s.CurrentVersion()
	infos := make([]VersionInfo, len(s.Versions))
	for i, v := range s.Versions {
		infos[i] = VersionInfo{
			Ordinal:    i + 1,
			ID:         v.ID,
			ContentRef: v.ContentRef,
			Prompt:     v.Prompt,
			CreatedAt:  v.CreatedAt,
			IsCurrent:  cur != nil && cur.ID == v.ID,
		}
	}
	return infos
}
