package model

import (
	"github.com/google/uuid"
)

// World geometry. One U is BaseUnitHeight world units tall.
const (
	BaseUnitHeight       = 40
	ShelfItemRenderScale = 0.85
	WorldWidth           = 560 // 14U wide
	RackSpacing          = 160 // 4U gap between racks in the overview
	DefaultRackHeight    = 42
	MinRackHeight        = 1
	MaxRackHeight        = 60
)

// Reserved item types. Any other type string is ordinary rack-mount gear.
const (
	TypeVPDU      = "v-pdu"
	TypeShelfItem = "shelf-item"
	TypeBlank     = "blank"
	TypeMonitor   = "monitor"
)

// Kind discriminates the Item variants.
type Kind int

const (
	KindStandard Kind = iota // Rack-mount gear occupying U slots
	KindShelf                // Accessory sitting on a standard item
	KindPDU                  // Vertical power strip mounted on a rail
)

func (k Kind) String() string {
	switch k {
	case KindShelf:
		return "shelf"
	case KindPDU:
		return "pdu"
	default:
		return "standard"
	}
}

// KindForType maps a catalog type string onto the item variant it creates.
func KindForType(t string) Kind {
	switch t {
	case TypeVPDU:
		return KindPDU
	case TypeShelfItem:
		return KindShelf
	default:
		return KindStandard
	}
}

// Side selects the rail a PDU hangs on.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// ParseSide accepts "left" or "right"; anything else is left.
func ParseSide(s string) Side {
	if s == "right" {
		return SideRight
	}
	return SideLeft
}

// Offset is a displacement in world units.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DefaultNoteOffset places a note one fifth of the rack width to the right
// of its item.
func DefaultNoteOffset() Offset {
	return Offset{X: WorldWidth * 0.2, Y: 0}
}

// Size is a width/height pair in world units, used by shelf items.
type Size struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// Item is anything placed in a rack. Kind selects which of the
// variant fields are meaningful:
//
//	KindStandard: Y, U, ShelfItems
//	KindShelf:    X, Size
//	KindPDU:      Y, U, Side, FullHeight
type Item struct {
	ID          string
	Kind        Kind
	Label       string
	Type        string
	Stencil     string
	StencilRear string
	Notes       string
	NoteOffset  Offset

	Y          int
	U          int
	X          float64
	Size       Size
	Side       Side
	FullHeight bool
	ShelfItems []Item
}

func newID() string {
	return uuid.New().String()[:8]
}

// NewStandardItem creates rack-mount gear at slot y.
func NewStandardItem(label, typ string, y, u int) Item {
	return Item{
		ID:         newID(),
		Kind:       KindStandard,
		Label:      label,
		Type:       typ,
		NoteOffset: DefaultNoteOffset(),
		Y:          y,
		U:          u,
		ShelfItems: []Item{},
	}
}

// NewShelfItem creates an accessory to be attached to a standard item.
func NewShelfItem(label string, x float64, size Size) Item {
	return Item{
		ID:         newID(),
		Kind:       KindShelf,
		Label:      label,
		Type:       TypeShelfItem,
		NoteOffset: DefaultNoteOffset(),
		X:          x,
		Size:       size,
	}
}

// NewPDU creates a vertical PDU. A full-height PDU spans the whole rack and
// its U is set by the caller to the rack height.
func NewPDU(label string, side Side, y, u int, fullHeight bool) Item {
	return Item{
		ID:         newID(),
		Kind:       KindPDU,
		Label:      label,
		Type:       TypeVPDU,
		NoteOffset: DefaultNoteOffset(),
		Y:          y,
		U:          u,
		Side:       side,
		FullHeight: fullHeight,
	}
}

// Span returns the half-open slot range [start, end) the item covers.
func (it Item) Span() (start, end int) {
	return it.Y, it.Y + it.U
}

// Bottom returns the first slot below the item.
func (it Item) Bottom() int {
	return it.Y + it.U
}

// OccupiesSlots reports whether the item takes part in U occupancy for
// standard gear. PDUs live on the rails and shelf items on their parent.
func (it Item) OccupiesSlots() bool {
	switch it.Kind {
	case KindStandard:
		return true
	case KindShelf, KindPDU:
		return false
	}
	return false
}

// HasNotes reports whether the item carries a note.
func (it Item) HasNotes() bool {
	return it.Notes != ""
}

// FindShelfItem returns the index of the shelf item with the given id.
func (it Item) FindShelfItem(id string) int {
	for i := range it.ShelfItems {
		if it.ShelfItems[i].ID == id {
			return i
		}
	}
	return -1
}

// Normalize fills in defaults for fields older layouts may lack.
func (it *Item) Normalize() {
	if it.ID == "" {
		it.ID = newID()
	}
	switch it.Kind {
	case KindStandard:
		if it.U < 1 {
			it.U = 1
		}
		if it.ShelfItems == nil {
			it.ShelfItems = []Item{}
		}
		for i := range it.ShelfItems {
			it.ShelfItems[i].Kind = KindShelf
			it.ShelfItems[i].Normalize()
		}
	case KindShelf:
		it.ShelfItems = nil
	case KindPDU:
		it.ShelfItems = nil
	}
}

// Copy returns a deep copy that keeps every id.
func (it Item) Copy() Item {
	c := it
	if it.ShelfItems != nil {
		c.ShelfItems = make([]Item, len(it.ShelfItems))
		for i, s := range it.ShelfItems {
			c.ShelfItems[i] = s.Copy()
		}
	}
	return c
}

// Clone returns a field-wise deep copy with fresh ids, suitable for paste
// and duplicate.
func (it Item) Clone() Item {
	c := Item{
		ID:          newID(),
		Kind:        it.Kind,
		Label:       it.Label,
		Type:        it.Type,
		Stencil:     it.Stencil,
		StencilRear: it.StencilRear,
		Notes:       it.Notes,
		NoteOffset:  it.NoteOffset,
		Y:           it.Y,
		U:           it.U,
		X:           it.X,
		Size:        it.Size,
		Side:        it.Side,
		FullHeight:  it.FullHeight,
	}
	if it.Kind == KindStandard {
		c.ShelfItems = make([]Item, 0, len(it.ShelfItems))
		for _, s := range it.ShelfItems {
			c.ShelfItems = append(c.ShelfItems, s.Clone())
		}
	}
	return c
}

// Rack is a vertical enclosure HeightU slots tall.
type Rack struct {
	ID        string
	Name      string
	HeightU   int
	Equipment []Item
}

// NewRack creates an empty rack.
func NewRack(name string, heightU int) Rack {
	if heightU < MinRackHeight {
		heightU = DefaultRackHeight
	}
	return Rack{
		ID:        newID(),
		Name:      name,
		HeightU:   heightU,
		Equipment: []Item{},
	}
}

// FindItem returns the index of the item with the given id, or -1.
func (r *Rack) FindItem(id string) int {
	for i := range r.Equipment {
		if r.Equipment[i].ID == id {
			return i
		}
	}
	return -1
}

// Item looks up an item by id. When parentID is set the item is searched
// among that parent's shelf items.
func (r *Rack) Item(id, parentID string) *Item {
	if parentID != "" {
		pi := r.FindItem(parentID)
		if pi < 0 {
			return nil
		}
		parent := &r.Equipment[pi]
		si := parent.FindShelfItem(id)
		if si < 0 {
			return nil
		}
		return &parent.ShelfItems[si]
	}
	i := r.FindItem(id)
	if i < 0 {
		return nil
	}
	return &r.Equipment[i]
}

// Normalize applies defaults to the rack and all of its items.
func (r *Rack) Normalize() {
	if r.ID == "" {
		r.ID = newID()
	}
	if r.HeightU < MinRackHeight {
		r.HeightU = DefaultRackHeight
	}
	if r.Equipment == nil {
		r.Equipment = []Item{}
	}
	for i := range r.Equipment {
		it := &r.Equipment[i]
		it.Normalize()
		if it.Kind == KindPDU && (it.FullHeight || it.U < 1) {
			it.FullHeight = true
			it.Y = 0
			it.U = r.HeightU
		}
	}
}

// Copy returns a deep copy of the rack that keeps every id.
func (r Rack) Copy() Rack {
	c := r
	c.Equipment = make([]Item, len(r.Equipment))
	for i, it := range r.Equipment {
		c.Equipment[i] = it.Copy()
	}
	return c
}

// CopyRacks deep-copies a layout.
func CopyRacks(racks []Rack) []Rack {
	out := make([]Rack, len(racks))
	for i, r := range racks {
		out[i] = r.Copy()
	}
	return out
}
