package editor

import (
	"fmt"

	"github.com/piwi3910/RackPlanner/internal/engine"
	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/scene"
)

// Drop creates an item from tpl at a rack-local point of rack i and selects
// it. Shelf items attach to the standard item under the point, PDUs take
// the rail nearest the point and standard gear takes the free slot nearest
// the point.
func (s *State) Drop(tpl model.Template, i int, local geometry.Point) (ItemSel, error) {
	if i < 0 || i >= len(s.Racks) {
		return ItemSel{}, fmt.Errorf("rack index %d out of range", i)
	}
	rack := &s.Racks[i]
	it := tpl.NewItem()

	var sel ItemSel
	switch it.Kind {
	case model.KindShelf:
		pl, ok := scene.FindShelfParent(*rack, local, it.Size)
		if !ok {
			s.log.Debug("shelf item dropped outside a parent", "label", it.Label)
			return ItemSel{}, fmt.Errorf("%w: %q needs a rack-mount item under the pointer", engine.ErrNoSpace, it.Label)
		}
		it.X = pl.X
		parent := &rack.Equipment[rack.FindItem(pl.ParentID)]
		parent.ShelfItems = append(parent.ShelfItems, it)
		sel = ItemSel{Rack: i, Ref: scene.ItemRef{ID: it.ID, ParentID: parent.ID}}

	case model.KindPDU:
		if it.FullHeight {
			it.U = rack.HeightU
		}
		it.Side = scene.SideAt(local.X)
		start := scene.SlotAt(local.Y, it.U, rack.HeightU)
		y := engine.FindAvailableY(it.U, start, engine.PDUsOnSide(*rack, it.Side, nil), rack.HeightU)
		if y == engine.NotFound {
			return ItemSel{}, s.noSpace("Drop", "No available space for a %dU V-PDU on the %s side of this rack.", it.U, it.Side)
		}
		it.Y = y
		rack.Equipment = append(rack.Equipment, it)
		sel = ItemSel{Rack: i, Ref: scene.ItemRef{ID: it.ID}}

	case model.KindStandard:
		start := scene.SlotAt(local.Y, it.U, rack.HeightU)
		y := engine.FindAvailableY(it.U, start, engine.StandardItems(*rack, nil), rack.HeightU)
		if y == engine.NotFound {
			return ItemSel{}, s.noSpace("Drop", "Cannot place %s anywhere in this rack: No available space found.", it.Label)
		}
		it.Y = y
		rack.Equipment = append(rack.Equipment, it)
		engine.SortByY(rack.Equipment)
		sel = ItemSel{Rack: i, Ref: scene.ItemRef{ID: it.ID}}
	}

	s.SetActive(i)
	s.Selection.Clear()
	s.Selection.SetItems(sel)
	s.log.Debug("item dropped", "label", it.Label, "kind", it.Kind, "rack", rack.Name)
	return sel, nil
}

// DeleteSelection removes every selected item and returns how many were
// removed. Notes go with their items.
func (s *State) DeleteSelection() int {
	type key struct {
		rack int
		id   string
	}
	main := map[key]bool{}
	shelf := map[key]map[string]bool{}
	for _, sel := range s.Selection.Items {
		if s.Item(sel) == nil {
			continue
		}
		if sel.Ref.ParentID == "" {
			main[key{sel.Rack, sel.Ref.ID}] = true
			continue
		}
		k := key{sel.Rack, sel.Ref.ParentID}
		if shelf[k] == nil {
			shelf[k] = map[string]bool{}
		}
		shelf[k][sel.Ref.ID] = true
	}

	n := 0
	for ri := range s.Racks {
		r := &s.Racks[ri]
		kept := r.Equipment[:0]
		for _, it := range r.Equipment {
			if main[key{ri, it.ID}] {
				n++
				continue
			}
			if ids := shelf[key{ri, it.ID}]; ids != nil {
				sk := it.ShelfItems[:0]
				for _, c := range it.ShelfItems {
					if ids[c.ID] {
						n++
						continue
					}
					sk = append(sk, c)
				}
				it.ShelfItems = sk
			}
			kept = append(kept, it)
		}
		r.Equipment = kept
	}
	s.Selection.Clear()
	if n > 0 {
		s.log.Info("items deleted", "count", n)
	}
	return n
}

// ItemMove is a proposed new slot for a selected standard item.
type ItemMove struct {
	Sel  ItemSel
	NewY int
}

// CommitItemMove applies a drag of standard items into rack target. Every
// move is validated first against the target's other standard items, the
// rack bounds and the other moves; if any fails nothing changes and
// ErrNoSpace is returned. Items coming from another rack are reparented.
// On success the moved items become the selection.
func (s *State) CommitItemMove(target int, moves []ItemMove) error {
	if target < 0 || target >= len(s.Racks) {
		return fmt.Errorf("rack index %d out of range", target)
	}
	rack := &s.Racks[target]
	var valid []ItemMove
	moving := map[string]bool{}
	for _, m := range moves {
		it := s.Item(m.Sel)
		if it == nil || it.Kind != model.KindStandard || m.Sel.Ref.ParentID != "" {
			continue
		}
		valid = append(valid, m)
		moving[it.ID] = true
	}
	if len(valid) == 0 {
		return nil
	}

	obstacles := engine.StandardItems(*rack, moving)
	for _, m := range valid {
		it := s.Item(m.Sel)
		if !engine.Fits(m.NewY, it.U, rack.HeightU, obstacles) {
			return fmt.Errorf("%w: %q cannot move to U%d of %q", engine.ErrNoSpace, it.Label, m.NewY, rack.Name)
		}
		moved := *it
		moved.Y = m.NewY
		obstacles = append(obstacles, moved)
	}

	var selected []ItemSel
	for _, m := range valid {
		src := &s.Racks[m.Sel.Rack]
		idx := src.FindItem(m.Sel.Ref.ID)
		src.Equipment[idx].Y = m.NewY
		if m.Sel.Rack != target {
			it := src.Equipment[idx]
			src.Equipment = append(src.Equipment[:idx], src.Equipment[idx+1:]...)
			rack.Equipment = append(rack.Equipment, it)
		}
		selected = append(selected, ItemSel{Rack: target, Ref: scene.ItemRef{ID: m.Sel.Ref.ID}})
	}
	engine.SortByY(rack.Equipment)
	s.Selection.SetItems(selected...)
	return nil
}

// SetNotes replaces the note text of an item.
func (s *State) SetNotes(sel ItemSel, text string) bool {
	it := s.Item(sel)
	if it == nil {
		return false
	}
	it.Notes = text
	return true
}

// SetLabel renames an item. Blank labels are ignored.
func (s *State) SetLabel(sel ItemSel, label string) bool {
	it := s.Item(sel)
	if it == nil || label == "" {
		return false
	}
	it.Label = label
	return true
}

// SetNoteOffset moves the note of the item owning n.
func (s *State) SetNoteOffset(n NoteSel, off model.Offset) bool {
	it := s.Item(ItemSel{Rack: n.Rack, Ref: n.Owner})
	if it == nil {
		return false
	}
	it.NoteOffset = off
	return true
}

// NoteOffset returns the note offset of the item owning n.
func (s *State) NoteOffset(n NoteSel) (model.Offset, bool) {
	it := s.Item(ItemSel{Rack: n.Rack, Ref: n.Owner})
	if it == nil {
		return model.Offset{}, false
	}
	return it.NoteOffset, true
}

// AlignNotesX gives every selected note the horizontal offset of the note
// owned by target. At least two notes must be selected.
func (s *State) AlignNotesX(target NoteSel) error {
	if len(s.Selection.Notes) < 2 {
		return fmt.Errorf("%w: select at least two notes to align", engine.ErrInvalidSelection)
	}
	off, ok := s.NoteOffset(target)
	if !ok {
		return fmt.Errorf("%w: alignment target no longer exists", engine.ErrInvalidSelection)
	}
	for _, n := range s.Selection.Notes {
		it := s.Item(ItemSel{Rack: n.Rack, Ref: n.Owner})
		if it != nil && it.HasNotes() {
			it.NoteOffset.X = off.X
		}
	}
	return nil
}

// FillBlanks fills the empty slots of the active rack with blanking
// plates and returns how many were added.
func (s *State) FillBlanks() int {
	r := s.ActiveRack()
	if r == nil {
		return 0
	}
	n := engine.FillWithBlanks(r)
	s.Selection.Clear()
	s.log.Info("filled with blanks", "rack", r.Name, "added", n)
	return n
}

// duplicateTarget returns the rack and item ids the selection duplicates.
// Every selected item must be a standard item in the same rack.
func (s *State) duplicateTarget() (int, []string, bool) {
	if len(s.Selection.Items) == 0 {
		return 0, nil, false
	}
	ri := s.Selection.Items[0].Rack
	ids := make([]string, 0, len(s.Selection.Items))
	for _, sel := range s.Selection.Items {
		it := s.Item(sel)
		if sel.Rack != ri || it == nil || it.Kind != model.KindStandard {
			return 0, nil, false
		}
		ids = append(ids, sel.Ref.ID)
	}
	return ri, ids, true
}

// CanDuplicate reports whether count copies of the selection fit in
// direction dir.
func (s *State) CanDuplicate(dir engine.Direction, count int) bool {
	ri, ids, ok := s.duplicateTarget()
	if !ok {
		return false
	}
	return engine.CheckDuplicateSpace(s.Racks[ri], ids, dir, count)
}

// Duplicate stacks count copies of the selected block in direction dir.
// Nothing is added unless every copy fits.
func (s *State) Duplicate(dir engine.Direction, count int) error {
	ri, ids, ok := s.duplicateTarget()
	if !ok {
		return fmt.Errorf("%w: duplicate needs rack-mount items from one rack", engine.ErrInvalidSelection)
	}
	added, err := engine.DuplicateBlock(&s.Racks[ri], ids, dir, count)
	if err != nil {
		s.warn("Duplicate", err.Error())
		return err
	}
	engine.SortByY(s.Racks[ri].Equipment)
	s.Selection.Clear()
	s.log.Info("block duplicated", "direction", dir, "count", count, "added", len(added))
	return nil
}
