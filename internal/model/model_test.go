package model

import (
	"encoding/json"
	"testing"
)

func TestKindForType(t *testing.T) {
	cases := map[string]Kind{
		"v-pdu":      KindPDU,
		"shelf-item": KindShelf,
		"server":     KindStandard,
		"blank":      KindStandard,
		"":           KindStandard,
	}
	for typ, want := range cases {
		if got := KindForType(typ); got != want {
			t.Errorf("KindForType(%q) = %s, want %s", typ, got, want)
		}
	}
}

func TestCloneAssignsFreshIDs(t *testing.T) {
	parent := NewStandardItem("Shelf", "shelf", 3, 2)
	parent.Notes = "top shelf"
	parent.ShelfItems = append(parent.ShelfItems, NewShelfItem("Modem", 10, Size{Width: 90, Height: 60}))

	c := parent.Clone()
	if c.ID == parent.ID {
		t.Error("clone should get a new id")
	}
	if c.ShelfItems[0].ID == parent.ShelfItems[0].ID {
		t.Error("cloned shelf item should get a new id")
	}
	if c.Label != "Shelf" || c.Y != 3 || c.U != 2 || c.Notes != "top shelf" {
		t.Errorf("clone lost fields: %+v", c)
	}

	c.ShelfItems[0].Label = "changed"
	if parent.ShelfItems[0].Label != "Modem" {
		t.Error("clone should not share shelf items with the original")
	}
}

func TestCopyKeepsIDs(t *testing.T) {
	r := NewRack("Rack 1", 42)
	r.Equipment = append(r.Equipment, NewStandardItem("Server", "server", 0, 2))
	c := r.Copy()
	if c.ID != r.ID || c.Equipment[0].ID != r.Equipment[0].ID {
		t.Error("copy should keep ids")
	}
	c.Equipment[0].Y = 10
	if r.Equipment[0].Y != 0 {
		t.Error("copy should not share equipment with the original")
	}
}

func TestItemJSONWritesVariantFields(t *testing.T) {
	pdu := NewPDU("V-PDU", SideRight, 0, 42, true)
	data, err := json.Marshal(pdu)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["side"] != "right" || raw["isFullHeight"] != true {
		t.Errorf("unexpected pdu json: %s", data)
	}
	if _, ok := raw["shelfItems"]; ok {
		t.Errorf("pdu should not carry shelfItems: %s", data)
	}
	if _, ok := raw["noteOffset"]; !ok {
		t.Errorf("noteOffset missing: %s", data)
	}
}

func TestItemJSONDefaultsMissingNoteFields(t *testing.T) {
	var it Item
	if err := json.Unmarshal([]byte(`{"y":4,"u":2,"label":"Switch","type":"switch","notePosition":"left"}`), &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if it.Kind != KindStandard || it.Y != 4 || it.U != 2 {
		t.Errorf("unexpected item: %+v", it)
	}
	if it.NoteOffset != DefaultNoteOffset() {
		t.Errorf("expected default note offset, got %+v", it.NoteOffset)
	}
	if it.Notes != "" {
		t.Errorf("expected empty notes, got %q", it.Notes)
	}
}

func TestRackJSONAcceptsNumericID(t *testing.T) {
	var r Rack
	if err := json.Unmarshal([]byte(`{"id":1712345678901,"name":"A","heightU":24,"equipment":[]}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.ID != "1712345678901" {
		t.Errorf("expected numeric id as string, got %q", r.ID)
	}
	if r.HeightU != 24 {
		t.Errorf("expected heightU 24, got %d", r.HeightU)
	}
}

func TestRackNormalizeDefaults(t *testing.T) {
	r := Rack{Name: "Old"}
	r.Equipment = []Item{{Kind: KindPDU, Type: TypeVPDU}, {Kind: KindStandard, Type: "server", Y: 1}}
	r.Normalize()

	if r.ID == "" {
		t.Error("expected an id")
	}
	if r.HeightU != DefaultRackHeight {
		t.Errorf("expected default height, got %d", r.HeightU)
	}
	pdu := r.Equipment[0]
	if !pdu.FullHeight || pdu.U != DefaultRackHeight {
		t.Errorf("PDU without height should span the rack: %+v", pdu)
	}
	srv := r.Equipment[1]
	if srv.U != 1 || srv.ShelfItems == nil {
		t.Errorf("standard item not defaulted: %+v", srv)
	}
}

func TestRackItemLookup(t *testing.T) {
	r := NewRack("Rack 1", 42)
	shelf := NewStandardItem("Shelf", "shelf", 0, 2)
	child := NewShelfItem("Mini PC", 0, Size{Width: 120, Height: 40})
	shelf.ShelfItems = append(shelf.ShelfItems, child)
	r.Equipment = append(r.Equipment, shelf)

	if got := r.Item(shelf.ID, ""); got == nil || got.Label != "Shelf" {
		t.Errorf("expected shelf, got %+v", got)
	}
	if got := r.Item(child.ID, shelf.ID); got == nil || got.Label != "Mini PC" {
		t.Errorf("expected shelf item, got %+v", got)
	}
	if got := r.Item(child.ID, ""); got != nil {
		t.Error("shelf item should not be found without its parent")
	}
}

func TestSpan(t *testing.T) {
	it := NewStandardItem("2U Server", "server", 5, 2)
	start, end := it.Span()
	if start != 5 || end != 7 {
		t.Errorf("Span() = [%d, %d), want [5, 7)", start, end)
	}
	if it.Bottom() != end {
		t.Errorf("Bottom() = %d, want %d", it.Bottom(), end)
	}
}
