package model

import "fmt"

// Template is a catalog entry from which items are created on drop.
// U is zero for full-height PDUs; Size is set for shelf items only.
type Template struct {
	Label       string `json:"label" yaml:"label" toml:"label"`
	Type        string `json:"type" yaml:"type" toml:"type"`
	Stencil     string `json:"stencil" yaml:"stencil" toml:"stencil"`
	StencilRear string `json:"stencil_rear,omitempty" yaml:"stencil_rear,omitempty" toml:"stencil_rear,omitempty"`
	U           int    `json:"u,omitempty" yaml:"u,omitempty" toml:"u,omitempty"`
	Size        *Size  `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
}

// Kind returns the item variant this template creates.
func (t Template) Kind() Kind {
	return KindForType(t.Type)
}

// HeightU returns the template's slot count, defaulting to 1 for standard
// gear without one.
func (t Template) HeightU() int {
	if t.U < 1 {
		return 1
	}
	return t.U
}

// NewItem creates an item from the template with default notes and no
// placement. The caller sets Y, X or Side.
func (t Template) NewItem() Item {
	it := Item{
		ID:          newID(),
		Kind:        t.Kind(),
		Label:       t.Label,
		Type:        t.Type,
		Stencil:     t.Stencil,
		StencilRear: t.StencilRear,
		NoteOffset:  DefaultNoteOffset(),
	}
	switch it.Kind {
	case KindStandard:
		it.U = t.HeightU()
		it.ShelfItems = []Item{}
	case KindShelf:
		if t.Size != nil {
			it.Size = *t.Size
		}
	case KindPDU:
		it.U = t.U
		it.FullHeight = t.U < 1
	}
	return it
}

// Validate reports the first problem with a template.
func (t Template) Validate() error {
	if t.Label == "" {
		return fmt.Errorf("template has no label")
	}
	if t.Type == "" {
		return fmt.Errorf("template %q has no type", t.Label)
	}
	if t.U < 0 {
		return fmt.Errorf("template %q has negative height %d", t.Label, t.U)
	}
	if t.Kind() == KindShelf && (t.Size == nil || t.Size.Width <= 0 || t.Size.Height <= 0) {
		return fmt.Errorf("shelf item %q needs a positive size", t.Label)
	}
	return nil
}

// Category groups catalog templates for display.
type Category struct {
	Name  string     `json:"category" yaml:"category" toml:"category"`
	Items []Template `json:"items" yaml:"items" toml:"items"`
}

// Catalog is the equipment library offered for drops.
type Catalog struct {
	Categories []Category `json:"categories" yaml:"categories" toml:"categories"`
}

// PowerCategory is the catalog category holding vertical PDUs.
const PowerCategory = "PDUs & Power"

// Find returns the first template with the given label.
func (c Catalog) Find(label string) (Template, bool) {
	for _, cat := range c.Categories {
		for _, t := range cat.Items {
			if t.Label == label {
				return t, true
			}
		}
	}
	return Template{}, false
}

// Count returns the number of templates across all categories.
func (c Catalog) Count() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Items)
	}
	return n
}

// WithPDUVariants renames the plain "V-PDU" entry to mark it full height
// and adds fixed 20U and 10U variants after it when they are missing.
func (c Catalog) WithPDUVariants() Catalog {
	out := Catalog{Categories: make([]Category, len(c.Categories))}
	for ci, cat := range c.Categories {
		items := make([]Template, 0, len(cat.Items)+2)
		if cat.Name != PowerCategory {
			out.Categories[ci] = Category{Name: cat.Name, Items: append(items, cat.Items...)}
			continue
		}
		have := map[string]bool{}
		for _, t := range cat.Items {
			have[t.Label] = true
		}
		for _, t := range cat.Items {
			if t.Type == TypeVPDU && t.Label == "V-PDU" {
				t.Label = "V-PDU (Full Height)"
				t.U = 0
				items = append(items, t)
				for _, u := range []int{20, 10} {
					label := fmt.Sprintf("V-PDU (%dU)", u)
					if have[label] {
						continue
					}
					items = append(items, Template{
						Label:       label,
						Type:        TypeVPDU,
						Stencil:     fmt.Sprintf("v-pdu-%du-front", u),
						StencilRear: fmt.Sprintf("v-pdu-%du-rear", u),
						U:           u,
					})
				}
				continue
			}
			items = append(items, t)
		}
		out.Categories[ci] = Category{Name: cat.Name, Items: items}
	}
	return out
}

// DefaultCatalog is the built-in equipment library.
func DefaultCatalog() Catalog {
	return Catalog{Categories: []Category{
		{Name: "Servers", Items: []Template{
			{Label: "1U Server", Type: "server", Stencil: "server-1u", StencilRear: "server-1u-rear", U: 1},
			{Label: "2U Server", Type: "server", Stencil: "server-2u", StencilRear: "server-2u-rear", U: 2},
			{Label: "4U Server", Type: "server", Stencil: "server-4u", StencilRear: "server-4u-rear", U: 4},
		}},
		{Name: "Networking", Items: []Template{
			{Label: "1U Switch", Type: "switch", Stencil: "switch-1u", StencilRear: "switch-1u-rear", U: 1},
			{Label: "1U Patch Panel", Type: "patch-panel", Stencil: "patch-panel-1u", StencilRear: "patch-panel-1u-rear", U: 1},
			{Label: "1U Firewall", Type: "firewall", Stencil: "firewall-1u", StencilRear: "firewall-1u-rear", U: 1},
		}},
		{Name: "Storage", Items: []Template{
			{Label: "2U Storage Array", Type: "storage", Stencil: "storage-2u", StencilRear: "storage-2u-rear", U: 2},
		}},
		{Name: "Shelves & Accessories", Items: []Template{
			{Label: "2U Shelf", Type: "shelf", Stencil: "shelf-2u", StencilRear: "shelf-2u-rear", U: 2},
			{Label: "1U Monitor", Type: TypeMonitor, Stencil: "monitor-1u", StencilRear: "monitor-1u-rear", U: 1},
			{Label: "Mini PC", Type: TypeShelfItem, Stencil: "mini-pc", StencilRear: "mini-pc-rear", Size: &Size{Width: 120, Height: 40}},
			{Label: "Modem", Type: TypeShelfItem, Stencil: "modem", StencilRear: "modem-rear", Size: &Size{Width: 90, Height: 60}},
		}},
		{Name: PowerCategory, Items: []Template{
			{Label: "1U PDU", Type: "pdu", Stencil: "pdu-1u", StencilRear: "pdu-1u-rear", U: 1},
			{Label: "2U UPS", Type: "ups", Stencil: "ups-2u", StencilRear: "ups-2u-rear", U: 2},
			{Label: "V-PDU", Type: TypeVPDU, Stencil: "v-pdu-front", StencilRear: "v-pdu-rear"},
		}},
		{Name: "Blanks", Items: []Template{
			{Label: "1U Blank Panel", Type: TypeBlank, Stencil: "blank-1u", StencilRear: "blank-1u-rear", U: 1},
			{Label: "2U Blank Panel", Type: TypeBlank, Stencil: "blank-2u", StencilRear: "blank-2u-rear", U: 2},
		}},
	}}.WithPDUVariants()
}
