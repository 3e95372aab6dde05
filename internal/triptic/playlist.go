package triptic

// Playlist is an ordered, cursor-tracked list of asset group IDs used to
// drive rotating display. Invariants: 0 <= Cursor < len(Members) whenever
// Members is non-empty, Cursor == 0 when empty.
type Playlist struct {
	Name    string
	Members []string // asset group IDs, order-significant
	Cursor  int      // 0-based index into Members
}

// NewPlaylist creates an empty playlist with the given name.
func NewPlaylist(name string) *Playlist {
	return &Playlist{Name: name}
}

// CurrentMember returns the asset group ID at the cursor, or "" when empty.
func (p *Playlist) CurrentMember() string {
	if p.Cursor >= 0 && p.Cursor < len(p.Members) {
		return p.Members[p.Cursor]
	}
	return ""
}

// Next advances the cursor with wraparound and returns the new current
// member. Returns "" without moving when the playlist is empty.
func (p *Playlist) Next() string {
	if len(p.Members) == 0 {
		return ""
	}
	p.Cursor = (p.Cursor + 1) % len(p.Members)
	return p.CurrentMember()
}

// Previous retreats the cursor with wraparound and returns the new current
// member. Returns "" without moving when the playlist is empty.
func (p *Playlist) Previous() string {
	if len(p.Members) == 0 {
		return ""
	}
	p.Cursor = (p.Cursor - 1 + len(p.Members)) % len(p.Members)
	return p.CurrentMember()
}

// Add appends a member. Adding an existing member is a no-op, not an error;
// the return reports whether the list changed.
func (p *Playlist) Add(groupID string) bool {
	for _, m := range p.Members {
		if m == groupID {
			return false
		}
	}
	p.Members = append(p.Members, groupID)
	return true
}

// Remove deletes the first occurrence of the member and clamps the cursor.
// Returns whether the member was present.
func (p *Playlist) Remove(groupID string) bool {
	for i, m := range p.Members {
		if m == groupID {
			p.Members = append(p.Members[:i], p.Members[i+1:]...)
			p.clampCursor()
			return true
		}
	}
	return false
}

// Reorder replaces the member list wholesale and clamps the cursor. The new
// order is not validated against the old set; that is the caller's
// responsibility.
func (p *Playlist) Reorder(newOrder []string) {
	p.Members = append([]string(nil), newOrder...)
	p.clampCursor()
}

// SetCursorTo moves the cursor to the first occurrence of the member, used
// for previewing a specific item. No-op when the member is absent.
func (p *Playlist) SetCursorTo(groupID string) bool {
	for i, m := range p.Members {
		if m == groupID {
			p.Cursor = i
			return true
		}
	}
	return false
}

func (p *Playlist) clampCursor() {
	if len(p.Members) == 0 {
		p.Cursor = 0
		return
	}
	if p.Cursor >= len(p.Members) {
		p.Cursor = len(p.Members) - 1
	}
	if p.Cursor < 0 {
		p.Cursor = 0
	}
}
