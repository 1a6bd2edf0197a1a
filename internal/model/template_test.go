package model

import "testing"

func TestTemplateNewItem(t *testing.T) {
	srv := Template{Label: "2U Server", Type: "server", Stencil: "server-2u", U: 2}.NewItem()
	if srv.Kind != KindStandard || srv.U != 2 || srv.ShelfItems == nil {
		t.Errorf("unexpected standard item: %+v", srv)
	}

	pdu := Template{Label: "V-PDU", Type: TypeVPDU}.NewItem()
	if pdu.Kind != KindPDU || !pdu.FullHeight {
		t.Errorf("PDU without U should be full height: %+v", pdu)
	}

	shelf := Template{Label: "Modem", Type: TypeShelfItem, Size: &Size{Width: 90, Height: 60}}.NewItem()
	if shelf.Kind != KindShelf || shelf.Size.Width != 90 {
		t.Errorf("unexpected shelf item: %+v", shelf)
	}
	if shelf.NoteOffset != DefaultNoteOffset() {
		t.Errorf("expected default note offset, got %+v", shelf.NoteOffset)
	}
}

func TestTemplateValidate(t *testing.T) {
	if err := (Template{Label: "x", Type: "server", U: 1}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Template{Type: "server"}).Validate(); err == nil {
		t.Error("expected error for missing label")
	}
	if err := (Template{Label: "Modem", Type: TypeShelfItem}).Validate(); err == nil {
		t.Error("expected error for shelf item without size")
	}
}

func TestWithPDUVariants(t *testing.T) {
	c := Catalog{Categories: []Category{
		{Name: PowerCategory, Items: []Template{
			{Label: "V-PDU", Type: TypeVPDU, Stencil: "v-pdu-front"},
		}},
	}}.WithPDUVariants()

	items := c.Categories[0].Items
	if len(items) != 3 {
		t.Fatalf("expected 3 PDU templates, got %d", len(items))
	}
	if items[0].Label != "V-PDU (Full Height)" {
		t.Errorf("expected renamed full height entry, got %q", items[0].Label)
	}
	if items[1].U != 20 || items[1].Stencil != "v-pdu-20u-front" {
		t.Errorf("unexpected 20U variant: %+v", items[1])
	}
	if items[2].U != 10 || items[2].StencilRear != "v-pdu-10u-rear" {
		t.Errorf("unexpected 10U variant: %+v", items[2])
	}

	again := c.WithPDUVariants()
	if len(again.Categories[0].Items) != 3 {
		t.Error("applying variants twice should not add entries")
	}
}

func TestDefaultCatalogFind(t *testing.T) {
	c := DefaultCatalog()
	if _, ok := c.Find("V-PDU (20U)"); !ok {
		t.Error("default catalog should include the 20U PDU")
	}
	if _, ok := c.Find("nope"); ok {
		t.Error("unexpected template found")
	}
	if c.Count() == 0 {
		t.Error("default catalog should not be empty")
	}
}
