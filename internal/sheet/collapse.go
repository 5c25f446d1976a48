package sheet

import "sync"

// Collapse tracks expand/collapse state per room and per (room, category)
// section. Everything starts expanded. This is a view concern only; it never
// feeds back into grouping.
type Collapse struct {
	mu        sync.Mutex
	collapsed map[string]bool
}

// NewCollapse creates fully-expanded collapse state.
func NewCollapse() *Collapse {
	return &Collapse{collapsed: make(map[string]bool)}
}

func sectionKey(roomID, category string) string {
	return roomID + "\x00" + category
}

// ToggleRoom flips a room and reports whether it is collapsed afterwards.
func (c *Collapse) ToggleRoom(roomID string) bool {
	return c.toggle(roomID)
}

// ToggleSection flips one (room, category) section.
func (c *Collapse) ToggleSection(roomID, category string) bool {
	return c.toggle(sectionKey(roomID, category))
}

// RoomCollapsed reports whether a room is collapsed.
func (c *Collapse) RoomCollapsed(roomID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collapsed[roomID]
}

// SectionCollapsed reports whether a section is collapsed, either directly or
// because its room is collapsed.
func (c *Collapse) SectionCollapsed(roomID, category string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collapsed[roomID] || c.collapsed[sectionKey(roomID, category)]
}

// ExpandAll resets every room and section to expanded.
func (c *Collapse) ExpandAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collapsed = make(map[string]bool)
}

func (c *Collapse) toggle(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.collapsed[key] = !c.collapsed[key]
	return c.collapsed[key]
}
