package triptic_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"triptic/internal/triptic"
)

// slotWithVersions builds a slot holding n versions v1..vn, newest current.
func slotWithVersions(n int) *triptic.Slot {
	s := &triptic.Slot{}
	for i := 1; i <= n; i++ {
		s.Append(triptic.Version{
			ContentRef: fmt.Sprintf("content-%d", i),
			Prompt:     fmt.Sprintf("prompt %d", i),
			ID:         fmt.Sprintf("v%d", i),
			CreatedAt:  time.Date(2025, 3, 1, 9, 0, i, 0, time.UTC),
		}, true)
	}
	return s
}

func versionIDs(s *triptic.Slot) []string {
	ids := make([]string, len(s.Versions))
	for i, v := range s.Versions {
		ids[i] = v.ID
	}
	return ids
}

func TestSlot_Append(t *testing.T) {
	t.Run("keeps versions in append order", func(t *testing.T) {
		s := slotWithVersions(3)

		got := versionIDs(s)
		want := []string{"v1", "v2", "v3"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Versions[%d] = %v, want %v", i, got[i], want[i])
			}
		}
		if s.Current != "v3" {
			t.Errorf("Current = %v, want v3", s.Current)
		}
	})

	t.Run("evicts oldest beyond the bound", func(t *testing.T) {
		s := slotWithVersions(10)

		if len(s.Versions) != triptic.MaxVersions {
			t.Fatalf("len(Versions) = %d, want %d", len(s.Versions), triptic.MaxVersions)
		}
		got := versionIDs(s)
		if got[0] != "v2" {
			t.Errorf("oldest = %v, want v2", got[0])
		}
		if got[len(got)-1] != "v10" {
			t.Errorf("newest = %v, want v10", got[len(got)-1])
		}
	})

	t.Run("eviction ignores the current pointer", func(t *testing.T) {
		s := slotWithVersions(9)
		if err := s.Select(1); err != nil {
			t.Fatalf("Select(1) error = %v", err)
		}

		// Appending evicts v1 even though it is current. The pointer dangles
		// and resolution falls back to the oldest remaining version.
		s.Append(triptic.Version{ID: "v10", ContentRef: "content-10"}, false)

		if s.Current != "v1" {
			t.Errorf("Current = %v, want dangling v1", s.Current)
		}
		cur := s.CurrentVersion()
		if cur == nil || cur.ID != "v2" {
			t.Errorf("CurrentVersion() = %+v, want fallback to v2", cur)
		}
	})

	t.Run("append without setAsCurrent preserves current", func(t *testing.T) {
		s := slotWithVersions(2)
		s.Append(triptic.Version{ID: "v3"}, false)

		if s.Current != "v2" {
			t.Errorf("Current = %v, want v2", s.Current)
		}
	})
}

func TestSlot_Select(t *testing.T) {
	t.Run("selects by 1-based ordinal", func(t *testing.T) {
		s := slotWithVersions(3)

		if err := s.Select(1); err != nil {
			t.Fatalf("Select(1) error = %v", err)
		}
		if s.Current != "v1" {
			t.Errorf("Current = %v, want v1", s.Current)
		}
	})

	t.Run("rejects out-of-range ordinals", func(t *testing.T) {
		s := slotWithVersions(3)

		for _, ordinal := range []int{0, -1, 4} {
			if err := s.Select(ordinal); !errors.Is(err, triptic.ErrInvalidArgument) {
				t.Errorf("Select(%d) error = %v, want ErrInvalidArgument", ordinal, err)
			}
		}
	})
}

func TestSlot_SelectID(t *testing.T) {
	t.Run("selects by version id", func(t *testing.T) {
		s := slotWithVersions(3)

		if err := s.SelectID("v2"); err != nil {
			t.Fatalf("SelectID(v2) error = %v", err)
		}
		if s.Current != "v2" {
			t.Errorf("Current = %v, want v2", s.Current)
		}
	})

	t.Run("unknown id returns ErrNotFound", func(t *testing.T) {
		s := slotWithVersions(3)

		if err := s.SelectID("missing"); !errors.Is(err, triptic.ErrNotFound) {
			t.Errorf("SelectID() error = %v, want ErrNotFound", err)
		}
	})
}

func TestSlot_DeleteCurrent(t *testing.T) {
	t.Run("removes current and promotes newest remaining", func(t *testing.T) {
		s := slotWithVersions(3)

		if err := s.DeleteCurrent(); err != nil {
			t.Fatalf("DeleteCurrent() error = %v", err)
		}
		got := versionIDs(s)
		want := []string{"v1", "v2"}
		if len(got) != len(want) {
			t.Fatalf("len(Versions) = %d, want %d", len(got), len(want))
		}
		if s.Current != "v2" {
			t.Errorf("Current = %v, want v2", s.Current)
		}
	})

	t.Run("removes a middle current", func(t *testing.T) {
		s := slotWithVersions(3)
		if err := s.Select(2); err != nil {
			t.Fatalf("Select(2) error = %v", err)
		}

		if err := s.DeleteCurrent(); err != nil {
			t.Fatalf("DeleteCurrent() error = %v", err)
		}
		got := versionIDs(s)
		if got[0] != "v1" || got[1] != "v3" {
			t.Errorf("Versions = %v, want [v1 v3]", got)
		}
		if s.Current != "v3" {
			t.Errorf("Current = %v, want v3", s.Current)
		}
	})

	t.Run("dangling pointer deletes the fallback current", func(t *testing.T) {
		s := slotWithVersions(3)
		s.Current = "evicted"

		if err := s.DeleteCurrent(); err != nil {
			t.Fatalf("DeleteCurrent() error = %v", err)
		}
		got := versionIDs(s)
		if got[0] != "v2" || got[1] != "v3" {
			t.Errorf("Versions = %v, want [v2 v3]", got)
		}
	})

	t.Run("rejects empty slot", func(t *testing.T) {
		s := &triptic.Slot{}
		if err := s.DeleteCurrent(); !errors.Is(err, triptic.ErrStateViolation) {
			t.Errorf("DeleteCurrent() error = %v, want ErrStateViolation", err)
		}
	})

	t.Run("rejects last remaining version", func(t *testing.T) {
		s := slotWithVersions(1)
		if err := s.DeleteCurrent(); !errors.Is(err, triptic.ErrStateViolation) {
			t.Errorf("DeleteCurrent() error = %v, want ErrStateViolation", err)
		}
	})
}

func TestSlot_CurrentVersion(t *testing.T) {
	t.Run("nil for empty slot", func(t *testing.T) {
		s := &triptic.Slot{}
		if cur := s.CurrentVersion(); cur != nil {
			t.Errorf("CurrentVersion() = %+v, want nil", cur)
		}
	})

	t.Run("falls back to oldest when pointer unset", func(t *testing.T) {
		s := slotWithVersions(3)
		s.Current = ""
		cur := s.CurrentVersion()
		if cur == nil || cur.ID != "v1" {
			t.Errorf("CurrentVersion() = %+v, want v1", cur)
		}
	})
}

func TestSlot_Positions(t *testing.T) {
	s := slotWithVersions(3)
	if err := s.Select(2); err != nil {
		t.Fatalf("Select(2) error = %v", err)
	}

	infos := s.Positions()
	if len(infos) != 3 {
		t.Fatalf("len(Positions()) = %d, want 3", len(infos))
	}
	for i, info := range infos {
		if info.Ordinal != i+1 {
			t.Errorf("Positions()[%d].Ordinal = %d, want %d", i, info.Ordinal, i+1)
		}
		wantCurrent := info.ID == "v2"
		if info.IsCurrent != wantCurrent {
			t.Errorf("Positions()[%d].IsCurrent = %v, want %v", i, info.IsCurrent, wantCurrent)
		}
	}
}
