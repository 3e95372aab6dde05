package triptic

import (
	"errors"
	"fmt"
)

// Service is the orchestration layer that coordinates the store, the blob
// store and the renderer to perform the high-level operations needed by the
// CLI and the HTTP layer.
type Service struct {
	store    Store
	blobs    BlobStore
	renderer Renderer
	jobs     *JobTracker
	logger   Logger
	clock    Clock
	idgen    IDGenerator
}

// NewService creates a Service with the provided dependencies.
func NewService(store Store, blobs BlobStore, renderer Renderer, jobs *JobTracker, logger Logger, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		store:    store,
		blobs:    blobs,
		renderer: renderer,
		jobs:     jobs,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
	}
}

// CreateGroup creates a new empty asset group.
func (s *Service) CreateGroup(id string) (*AssetGroup, error) {
	if id == "" {
		return nil, fmt.Errorf("group id is required: %w", ErrInvalidArgument)
	}
	exists, err := s.store.GroupExists(id)
	if err != nil {
		return nil, fmt.Errorf("checking for existing group: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("group %s: %w", id, ErrConflict)
	}

	group := NewAssetGroup(id)
	if err := s.store.SaveGroup(group); err != nil {
		return nil, fmt.Errorf("saving group: %w", err)
	}

	s.logger.Info("group created", "group", id)
	return group, nil
}

// GetGroup returns a group by id.
func (s *Service) GetGroup(id string) (*AssetGroup, error) {
	return s.store.LoadGroup(id)
}

// ListGroups returns all group ids.
func (s *Service) ListGroups() ([]string, error) {
	return s.store.ListGroups()
}

// DeleteGroup removes a group as a unit. The underlying blobs are orphaned,
// not deleted. Playlist member lists still referencing the group are cleaned
// up in a separate reference pass here, not inside the store.
func (s *Service) DeleteGroup(id string) error {
	removed, err := s.store.DeleteGroup(id)
	if err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}
	if !removed {
		return fmt.Errorf("group %s: %w", id, ErrNotFound)
	}

	if err := s.dropGroupReferences(id); err != nil {
		return fmt.Errorf("cleaning playlist references: %w", err)
	}

	s.logger.Info("group deleted", "group", id)
	return nil
}

// RenameGroup renames a group and then rewrites every playlist member list
// that referenced the old id. Cross-aggregate consistency is handled here by
// the orchestrating layer; the store rename itself is single-aggregate.
func (s *Service) RenameGroup(oldID, newID string) error {
	if newID == "" {
		return fmt.Errorf("new group id is required: %w", ErrInvalidArgument)
	}
	if err := s.store.RenameGroup(oldID, newID); err != nil {
		return err
	}

	names, err := s.store.ListPlaylists()
	if err != nil {
		return fmt.Errorf("listing playlists: %w", err)
	}
	for _, name := range names {
		playlist, err := s.store.LoadPlaylist(name)
		if err != nil {
			return fmt.Errorf("loading playlist %s: %w", name, err)
		}
		changed := false
		for i, m := range playlist.Members {
			if m == oldID {
				playlist.Members[i] = newID
				changed = true
			}
		}
		if changed {
			if err := s.store.SavePlaylist(playlist); err != nil {
				return fmt.Errorf("saving playlist %s: %w", name, err)
			}
		}
	}

	s.logger.Info("group renamed", "from", oldID, "to", newID)
	return nil
}

// DuplicateGroup copies a group's slots into a new group. Version records get
// fresh IDs; blob content is shared between the two groups.
func (s *Service) DuplicateGroup(srcID, dstID string) error {
	if dstID == "" {
		return fmt.Errorf("destination group id is required: %w", ErrInvalidArgument)
	}
	exists, err := s.store.GroupExists(dstID)
	if err != nil {
		return fmt.Errorf("checking for existing group: %w", err)
	}
	if exists {
		return fmt.Errorf("group %s: %w", dstID, ErrConflict)
	}

	src, err := s.store.LoadGroup(srcID)
	if err != nil {
		return err
	}

	dst := NewAssetGroup(dstID)
	for _, name := range SlotNames {
		srcSlot := src.Slot(name)
		dstSlot := dst.Slot(name)
		for _, v := range srcSlot.Versions {
			copied := v
			copied.ID = s.idgen.New()
			asCurrent := srcSlot.CurrentVersion() != nil && srcSlot.CurrentVersion().ID == v.ID
			dstSlot.Append(copied, asCurrent)
		}
	}

	if err := s.store.SaveGroup(dst); err != nil {
		return fmt.Errorf("saving group: %w", err)
	}

	s.logger.Info("group duplicated", "from", srcID, "to", dstID)
	return nil
}

// Versions returns the display entries for a slot's history.
func (s *Service) Versions(groupID string, slot SlotName) ([]VersionInfo, error) {
	group, err := s.store.LoadGroup(groupID)
	if err != nil {
		return nil, err
	}
	return group.Slot(slot).Positions(), nil
}

// RestoreVersion makes the version at the 1-based ordinal current.
func (s *Service) RestoreVersion(groupID string, slot SlotName, ordinal int) error {
	group, err := s.store.LoadGroup(groupID)
	if err != nil {
		return err
	}
	if err := group.Slot(slot).Select(ordinal); err != nil {
		return err
	}
	if err := s.store.SaveGroup(group); err != nil {
		return fmt.Errorf("saving group: %w", err)
	}
	s.logger.Info("version restored", "group", groupID, "slot", slot, "version", ordinal)
	return nil
}

// DeleteVersion removes the current version from a slot's history and
// promotes the newest remaining version.
func (s *Service) DeleteVersion(groupID string, slot SlotName) error {
	group, err := s.store.LoadGroup(groupID)
	if err != nil {
		return err
	}
	if err := group.Slot(slot).DeleteCurrent(); err != nil {
		return err
	}
	if err := s.store.SaveGroup(group); err != nil {
		return fmt.Errorf("saving group: %w", err)
	}
	s.logger.Info("version deleted", "group", groupID, "slot", slot)
	return nil
}

// SwapSlots exchanges the full histories of two slots within a group.
func (s *Service) SwapSlots(groupID string, a, b SlotName) error {
	if a == b {
		return fmt.Errorf("cannot swap a slot with itself: %w", ErrInvalidArgument)
	}
	group, err := s.store.LoadGroup(groupID)
	if err != nil {
		return err
	}
	sa, sb := group.Slot(a), group.Slot(b)
	*sa, *sb = *sb, *sa
	if err := s.store.SaveGroup(group); err != nil {
		return fmt.Errorf("saving group: %w", err)
	}
	s.logger.Info("slots swapped", "group", groupID, "a", a, "b", b)
	return nil
}

// CopySlot appends the source slot's current version to the destination
// slot's history as a new version. Blob content is shared.
func (s *Service) CopySlot(srcGroupID string, srcSlot SlotName, dstGroupID string, dstSlot SlotName) error {
	src, err := s.store.LoadGroup(srcGroupID)
	if err != nil {
		return err
	}
	cur := src.Slot(srcSlot).CurrentVersion()
	if cur == nil {
		return fmt.Errorf("slot %s/%s has no versions: %w", srcGroupID, srcSlot, ErrStateViolation)
	}

	dst := src
	if dstGroupID != srcGroupID {
		dst, err = s.store.LoadGroup(dstGroupID)
		if err != nil {
			return err
		}
	}

	dst.Slot(dstSlot).Append(Version{
		ContentRef: cur.ContentRef,
		Prompt:     cur.Prompt,
		ID:         s.idgen.New(),
		CreatedAt:  s.clock.Now(),
	}, true)

	if err := s.store.SaveGroup(dst); err != nil {
		return fmt.Errorf("saving group: %w", err)
	}
	s.logger.Info("slot copied", "from", srcGroupID, "to", dstGroupID, "slot", dstSlot)
	return nil
}

// dropGroupReferences removes a deleted group from every playlist member list.
func (s *Service) dropGroupReferences(groupID string) error {
	names, err := s.store.ListPlaylists()
	if err != nil {
		return fmt.Errorf("listing playlists: %w", err)
	}
	for _, name := range names {
		playlist, err := s.store.LoadPlaylist(name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return fmt.Errorf("loading playlist %s: %w", name, err)
		}
		if playlist.Remove(groupID) {
			if err := s.store.SavePlaylist(playlist); err != nil {
				return fmt.Errorf("saving playlist %s: %w", name, err)
			}
		}
	}
	return nil
}
