package triptic

import "fmt"

// SlotName identifies one of the three screen positions in a group.
type SlotName string

const (
	SlotLeft   SlotName = "left"
	SlotCenter SlotName = "center"
	SlotRight  SlotName = "right"
)

// SlotNames lists the screen positions in display order.
var SlotNames = []SlotName{SlotLeft, SlotCenter, SlotRight}

// ParseSlotName validates a slot name from an external caller.
func ParseSlotName(s string) (SlotName, error) {
	switch SlotName(s) {
	case SlotLeft, SlotCenter, SlotRight:
		return SlotName(s), nil
	}
	return "", fmt.Errorf("unknown slot name %q: %w", s, ErrInvalidArgument)
}

// AssetGroup is the unit of display: a named triple of slots.
// The ID is immutable once created; rename is a distinct store operation.
type AssetGroup struct {
	ID     string
	Left   Slot
	Center Slot
	Right  Slot
}

// NewAssetGroup creates an empty group with the given id.
func NewAssetGroup(id string) *AssetGroup {
	return &AssetGroup{ID: id}
}

// Slot returns the slot for the given screen position.
func (g *AssetGroup) Slot(name SlotName) *Slot {
	switch name {
	case SlotLeft:
		return &g.Left
	case SlotCenter:
		return &g.Center
	case SlotRight:
		return &g.Right
	}
	return nil
}

// Default placeholder content UUIDs, one per screen position. The blob store
// is seeded with these at install time so display code can always resolve a
// content reference for an empty slot.
const (
	DefaultLeftContentRef   = "00000000-0000-0000-0000-000000000001"
	DefaultCenterContentRef = "00000000-0000-0000-0000-000000000002"
	DefaultRightContentRef  = "00000000-0000-0000-0000-000000000003"
)

// DefaultContentRef returns the placeholder content UUID for a screen position.
func DefaultContentRef(name SlotName) string {
	switch name {
	case SlotLeft:
		return DefaultLeftContentRef
	case SlotCenter:
		return DefaultCenterContentRef
	case SlotRight:
		return DefaultRightContentRef
	}
	return ""
}
