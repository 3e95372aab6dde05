package triptic

import (
	"errors"
	"fmt"
)

// Settings keys used by the display layer.
const (
	settingCurrentPlaylist   = "current_playlist"
	settingRotationFrequency = "frequency"

	// DefaultRotationFrequency is the fallback display rotation interval in
	// seconds.
	DefaultRotationFrequency = 60
)

// DisplayItem resolves one playlist member to the content references the
// three screens should show.
type DisplayItem struct {
	Name   string
	Left   string
	Center string
	Right  string
}

// CreatePlaylist creates a new empty playlist.
func (s *Service) CreatePlaylist(name string) (*Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("playlist name is required: %w", ErrInvalidArgument)
	}
	if _, err := s.store.LoadPlaylist(name); err == nil {
		return nil, fmt.Errorf("playlist %s: %w", name, ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("checking for existing playlist: %w", err)
	}

	playlist := NewPlaylist(name)
	if err := s.store.SavePlaylist(playlist); err != nil {
		return nil, fmt.Errorf("saving playlist: %w", err)
	}
	s.logger.Info("playlist created", "playlist", name)
	return playlist, nil
}

// GetPlaylist returns a playlist by name.
func (s *Service) GetPlaylist(name string) (*Playlist, error) {
	return s.store.LoadPlaylist(name)
}

// ListPlaylists returns all playlist names.
func (s *Service) ListPlaylists() ([]string, error) {
	return s.store.ListPlaylists()
}

// DeletePlaylist removes a playlist.
func (s *Service) DeletePlaylist(name string) error {
	removed, err := s.store.DeletePlaylist(name)
	if err != nil {
		return fmt.Errorf("deleting playlist: %w", err)
	}
	if !removed {
		return fmt.Errorf("playlist %s: %w", name, ErrNotFound)
	}
	s.logger.Info("playlist deleted", "playlist", name)
	return nil
}

// RenamePlaylist renames a playlist. Membership is untouched; the current
// playlist setting follows the rename.
func (s *Service) RenamePlaylist(oldName, newName string) error {
	if newName == "" {
		return fmt.Errorf("new playlist name is required: %w", ErrInvalidArgument)
	}
	if err := s.store.RenamePlaylist(oldName, newName); err != nil {
		return err
	}

	var current string
	if err := s.store.Setting(settingCurrentPlaylist, &current); err == nil && current == oldName {
		if err := s.store.SetSetting(settingCurrentPlaylist, newName); err != nil {
			return fmt.Errorf("updating current playlist: %w", err)
		}
	}

	s.logger.Info("playlist renamed", "from", oldName, "to", newName)
	return nil
}

// AddToPlaylist appends a group to a playlist's member list. Adding an
// existing member is a no-op.
func (s *Service) AddToPlaylist(name, groupID string) error {
	playlist, err := s.store.LoadPlaylist(name)
	if err != nil {
		return err
	}
	if !playlist.Add(groupID) {
		return nil
	}
	if err := s.store.SavePlaylist(playlist); err != nil {
		return fmt.Errorf("saving playlist: %w", err)
	}
	s.logger.Info("playlist member added", "playlist", name, "group", groupID)
	return nil
}

// RemoveFromPlaylist removes a group from a playlist's member list.
func (s *Service) RemoveFromPlaylist(name, groupID string) error {
	playlist, err := s.store.LoadPlaylist(name)
	if err != nil {
		return err
	}
	if !playlist.Remove(groupID) {
		return fmt.Errorf("group %s not in playlist %s: %w", groupID, name, ErrNotFound)
	}
	if err := s.store.SavePlaylist(playlist); err != nil {
		return fmt.Errorf("saving playlist: %w", err)
	}
	s.logger.Info("playlist member removed", "playlist", name, "group", groupID)
	return nil
}

// ReorderPlaylist replaces a playlist's member list wholesale.
func (s *Service) ReorderPlaylist(name string, newOrder []string) error {
	playlist, err := s.store.LoadPlaylist(name)
	if err != nil {
		return err
	}
	playlist.Reorder(newOrder)
	if err := s.store.SavePlaylist(playlist); err != nil {
		return fmt.Errorf("saving playlist: %w", err)
	}
	s.logger.Info("playlist reordered", "playlist", name, "members", len(newOrder))
	return nil
}

// NextInPlaylist advances the playlist cursor and returns the new current
// member, or "" for an empty playlist.
func (s *Service) NextInPlaylist(name string) (string, error) {
	return s.movePlaylist(name, (*Playlist).Next)
}

// PreviousInPlaylist retreats the playlist cursor and returns the new current
// member, or "" for an empty playlist.
func (s *Service) PreviousInPlaylist(name string) (string, error) {
	return s.movePlaylist(name, (*Playlist).Previous)
}

func (s *Service) movePlaylist(name string, move func(*Playlist) string) (string, error) {
	playlist, err := s.store.LoadPlaylist(name)
	if err != nil {
		return "", err
	}
	member := move(playlist)
	if member == "" {
		return "", nil
	}
	if err := s.store.SavePlaylist(playlist); err != nil {
		return "", fmt.Errorf("saving playlist: %w", err)
	}
	return member, nil
}

// JumpToGroup moves the playlist cursor to the given member, used for
// previewing a specific item. Absent members are a no-op.
func (s *Service) JumpToGroup(name, groupID string) error {
	playlist, err := s.store.LoadPlaylist(name)
	if err != nil {
		return err
	}
	if !playlist.SetCursorTo(groupID) {
		return nil
	}
	if err := s.store.SavePlaylist(playlist); err != nil {
		return fmt.Errorf("saving playlist: %w", err)
	}
	return nil
}

// PlaylistItems resolves every member of a playlist to the content each
// screen should display. Empty slots resolve to the well-known placeholder
// refs; members whose group no longer exists are skipped with a warning.
func (s *Service) PlaylistItems(name string) ([]DisplayItem, error) {
	playlist, err := s.store.LoadPlaylist(name)
	if err != nil {
		return nil, err
	}

	items := make([]DisplayItem, 0, len(playlist.Members))
	for _, groupID := range playlist.Members {
		group, err := s.store.LoadGroup(groupID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				s.logger.Warn("playlist member missing", "playlist", name, "group", groupID)
				continue
			}
			return nil, fmt.Errorf("loading group %s: %w", groupID, err)
		}

		item := DisplayItem{Name: groupID}
		for _, slotName := range SlotNames {
			ref := DefaultContentRef(slotName)
			if cur := group.Slot(slotName).CurrentVersion(); cur != nil {
				ref = cur.ContentRef
			}
			switch slotName {
			case SlotLeft:
				item.Left = ref
			case SlotCenter:
				item.Center = ref
			case SlotRight:
				item.Right = ref
			}
		}
		items = append(items, item)
	}

	return items, nil
}

// CurrentPlaylist returns the name of the playlist driving the display.
func (s *Service) CurrentPlaylist() (string, error) {
	var name string
	if err := s.store.Setting(settingCurrentPlaylist, &name); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return name, nil
}

// SetCurrentPlaylist selects the playlist driving the display. The playlist
// must exist.
func (s *Service) SetCurrentPlaylist(name string) error {
	if _, err := s.store.LoadPlaylist(name); err != nil {
		return err
	}
	if err := s.store.SetSetting(settingCurrentPlaylist, name); err != nil {
		return fmt.Errorf("saving current playlist: %w", err)
	}
	s.logger.Info("current playlist set", "playlist", name)
	return nil
}

// RotationFrequency returns the display rotation interval in seconds.
func (s *Service) RotationFrequency() (int, error) {
	var freq int
	if err := s.store.Setting(settingRotationFrequency, &freq); err != nil {
		if errors.Is(err, ErrNotFound) {
			return DefaultRotationFrequency, nil
		}
		return 0, err
	}
	return freq, nil
}

// SetRotationFrequency sets the display rotation interval in seconds.
func (s *Service) SetRotationFrequency(seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("frequency must be positive: %w", ErrInvalidArgument)
	}
	return s.store.SetSetting(settingRotationFrequency, seconds)
}

// Setting reads an arbitrary setting value into out.
func (s *Service) Setting(key string, out any) error {
	return s.store.Setting(key, out)
}

// SetSetting stores an arbitrary setting value.
func (s *Service) SetSetting(key string, value any) error {
	if key == "" {
		return fmt.Errorf("setting key is required: %w", ErrInvalidArgument)
	}
	return s.store.SetSetting(key, value)
}

// Heartbeat records that a kiosk screen synced now.
func (s *Service) Heartbeat(screenID string) error {
	if screenID == "" {
		return fmt.Errorf("screen id is required: %w", ErrInvalidArgument)
	}
	return s.store.UpdateHeartbeat(screenID, s.clock.Now())
}

// Heartbeats returns all recorded screen heartbeats.
func (s *Service) Heartbeats() ([]Heartbeat, error) {
	return s.store.Heartbeats()
}
