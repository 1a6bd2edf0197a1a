package scene

import (
	"github.com/piwi3910/RackPlanner/internal/geometry"
)

// NoteKey identifies a stacked note in the overview by its rack and owner.
type NoteKey struct {
	RackID string
	Item   ItemRef
}

// StackedNote is the hit region of one note in the overview's notes list.
type StackedNote struct {
	Key    NoteKey
	Bounds geometry.Rect
}

// Bounds is written by the renderer on every draw and read by pointer
// handling. It holds derived hit regions keyed by rack and item id and is
// never persisted.
type Bounds struct {
	headers map[string]RackHeader
	notes   []StackedNote
}

// NewBounds returns an empty registry.
func NewBounds() *Bounds {
	return &Bounds{headers: map[string]RackHeader{}}
}

// Reset drops every stored region before a redraw.
func (b *Bounds) Reset() {
	b.headers = map[string]RackHeader{}
	b.notes = b.notes[:0]
}

// SetHeader records the header regions of a rack.
func (b *Bounds) SetHeader(rackID string, h RackHeader) {
	b.headers[rackID] = h
}

// Header returns the recorded header regions of a rack.
func (b *Bounds) Header(rackID string) (RackHeader, bool) {
	h, ok := b.headers[rackID]
	return h, ok
}

// AddStackedNote records the region of a note in the overview list.
func (b *Bounds) AddStackedNote(n StackedNote) {
	b.notes = append(b.notes, n)
}

// StackedNoteAt returns the stacked note containing a world point.
func (b *Bounds) StackedNoteAt(world geometry.Point) (StackedNote, bool) {
	for _, n := range b.notes {
		if n.Bounds.Contains(world) {
			return n, true
		}
	}
	return StackedNote{}, false
}

// StackedNotesIn returns every stacked note intersecting a world rectangle.
func (b *Bounds) StackedNotesIn(world geometry.Rect) []StackedNote {
	var out []StackedNote
	for _, n := range b.notes {
		if n.Bounds.Intersects(world) {
			out = append(out, n)
		}
	}
	return out
}
