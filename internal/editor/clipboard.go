package editor

import (
	"errors"
	"sort"

	"github.com/piwi3910/RackPlanner/internal/engine"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/scene"
)

// ClipEntry is a copied standard item positioned relative to the top of
// the copied block.
type ClipEntry struct {
	Item model.Item
	RelY int
}

// Clipboard holds copied rack-mount items and PDUs. OriginalTop is the
// slot the standard block was copied from, or -1.
type Clipboard struct {
	Standard    []ClipEntry
	PDUs        []model.Item
	OriginalTop int
}

// Empty reports whether there is nothing to paste.
func (c Clipboard) Empty() bool {
	return len(c.Standard) == 0 && len(c.PDUs) == 0
}

// Copy puts the selected standard items and PDUs on the clipboard. Shelf
// items are not copied; a selection of only shelf items empties the
// clipboard. Standard items are taken from a single rack.
func (s *State) Copy() {
	type picked struct {
		rack int
		item model.Item
	}
	var std []picked
	var pdus []model.Item
	for _, sel := range s.Selection.Items {
		it := s.Item(sel)
		if it == nil {
			continue
		}
		switch it.Kind {
		case model.KindStandard:
			std = append(std, picked{sel.Rack, it.Copy()})
		case model.KindPDU:
			pdus = append(pdus, it.Copy())
		case model.KindShelf:
		}
	}

	s.Clipboard = Clipboard{OriginalTop: -1, PDUs: pdus}
	if len(std) == 0 {
		return
	}
	// Slots only mean something within one rack: keep the active rack's
	// items when it has any, otherwise the first rack's.
	src := std[0].rack
	for _, p := range std {
		if p.rack == s.Active {
			src = s.Active
			break
		}
		src = min(src, p.rack)
	}
	kept := std[:0]
	for _, p := range std {
		if p.rack == src {
			kept = append(kept, p)
		}
	}
	std = kept
	sort.SliceStable(std, func(i, j int) bool { return std[i].item.Y < std[j].item.Y })
	top := std[0].item.Y
	s.Clipboard.OriginalTop = top
	for _, p := range std {
		s.Clipboard.Standard = append(s.Clipboard.Standard, ClipEntry{Item: p.item, RelY: p.item.Y - top})
	}
	s.log.Debug("copied", "standard", len(s.Clipboard.Standard), "pdus", len(pdus))
}

// Cut copies the selection and deletes it.
func (s *State) Cut() int {
	s.Copy()
	return s.DeleteSelection()
}

// Paste places the clipboard into the active rack. The standard block is
// placed as a unit, at its original slot when free, otherwise at the first
// slot from the top that holds all of it. Each PDU is placed on its own
// rail near its original slot. Pasted items get fresh ids and become the
// selection. The returned error joins every placement failure.
func (s *State) Paste() (int, error) {
	r := s.ActiveRack()
	if r == nil || s.Clipboard.Empty() {
		return 0, nil
	}
	var added []ItemSel
	var errs []error

	if len(s.Clipboard.Standard) > 0 {
		block := make([]engine.BlockEntry, len(s.Clipboard.Standard))
		for i, e := range s.Clipboard.Standard {
			block[i] = engine.BlockEntry{RelY: e.RelY, U: e.Item.U}
		}
		top := engine.FindBlockSlot(block, s.Clipboard.OriginalTop, engine.StandardItems(*r, nil), r.HeightU)
		if top == engine.NotFound {
			err := s.noSpace("Paste", "Not enough contiguous space in the rack to paste the standard items.")
			errs = append(errs, err)
		} else {
			for _, e := range s.Clipboard.Standard {
				it := e.Item.Clone()
				it.Y = top + e.RelY
				r.Equipment = append(r.Equipment, it)
				added = append(added, ItemSel{Rack: s.Active, Ref: scene.ItemRef{ID: it.ID}})
			}
		}
	}

	for _, p := range s.Clipboard.PDUs {
		it := p.Clone()
		if it.FullHeight {
			it.U = r.HeightU
		}
		y := engine.FindAvailableY(it.U, it.Y, engine.PDUsOnSide(*r, it.Side, nil), r.HeightU)
		if y == engine.NotFound {
			err := s.noSpace("Paste", "Cannot paste V-PDU on %s side: no available space.", it.Side)
			errs = append(errs, err)
			continue
		}
		it.Y = y
		r.Equipment = append(r.Equipment, it)
		added = append(added, ItemSel{Rack: s.Active, Ref: scene.ItemRef{ID: it.ID}})
	}

	if len(added) > 0 {
		engine.SortByY(r.Equipment)
		s.Selection.Clear()
		s.Selection.SetItems(added...)
		s.log.Debug("pasted", "rack", r.Name, "items", len(added))
	}
	return len(added), errors.Join(errs...)
}
