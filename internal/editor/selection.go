package editor

import (
	"github.com/piwi3910/RackPlanner/internal/scene"
)

// ItemSel is a selected item: the rack it lives in and its reference.
type ItemSel struct {
	Rack int
	Ref  scene.ItemRef
}

// NoteSel is a selected note, identified by its owning item.
type NoteSel struct {
	Rack  int
	Owner scene.ItemRef
}

// Selection holds the selected items and the selected notes. The two sets
// are kept apart: selecting in one normally clears the other.
type Selection struct {
	Items []ItemSel
	Notes []NoteSel
}

// HasItem reports whether s is selected.
func (s *Selection) HasItem(sel ItemSel) bool {
	return s.itemIndex(sel) >= 0
}

func (s *Selection) itemIndex(sel ItemSel) int {
	for i, it := range s.Items {
		if it == sel {
			return i
		}
	}
	return -1
}

// SetItems replaces the item selection.
func (s *Selection) SetItems(items ...ItemSel) {
	s.Items = append([]ItemSel(nil), items...)
}

// AddItem selects an item if it is not selected yet.
func (s *Selection) AddItem(sel ItemSel) {
	if !s.HasItem(sel) {
		s.Items = append(s.Items, sel)
	}
}

// ToggleItem flips the selection state of an item.
func (s *Selection) ToggleItem(sel ItemSel) {
	if i := s.itemIndex(sel); i >= 0 {
		s.Items = append(s.Items[:i], s.Items[i+1:]...)
		return
	}
	s.Items = append(s.Items, sel)
}

// ClearItems empties the item selection.
func (s *Selection) ClearItems() {
	s.Items = nil
}

// HasNote reports whether a note is selected.
func (s *Selection) HasNote(n NoteSel) bool {
	return s.noteIndex(n) >= 0
}

func (s *Selection) noteIndex(n NoteSel) int {
	for i, it := range s.Notes {
		if it == n {
			return i
		}
	}
	return -1
}

// SetNotes replaces the note selection.
func (s *Selection) SetNotes(notes ...NoteSel) {
	s.Notes = append([]NoteSel(nil), notes...)
}

// AddNote selects a note if it is not selected yet.
func (s *Selection) AddNote(n NoteSel) {
	if !s.HasNote(n) {
		s.Notes = append(s.Notes, n)
	}
}

// ToggleNote flips the selection state of a note.
func (s *Selection) ToggleNote(n NoteSel) {
	if i := s.noteIndex(n); i >= 0 {
		s.Notes = append(s.Notes[:i], s.Notes[i+1:]...)
		return
	}
	s.Notes = append(s.Notes, n)
}

// ClearNotes empties the note selection.
func (s *Selection) ClearNotes() {
	s.Notes = nil
}

// Clear empties both sets.
func (s *Selection) Clear() {
	s.Items = nil
	s.Notes = nil
}

// Racks returns the distinct rack indexes of the selected items.
func (s *Selection) Racks() []int {
	seen := map[int]bool{}
	var out []int
	for _, it := range s.Items {
		if !seen[it.Rack] {
			seen[it.Rack] = true
			out = append(out, it.Rack)
		}
	}
	return out
}
