package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// itemJSON is the persisted shape of an Item. Only the fields of the
// item's variant are written; all are optional on read.
type itemJSON struct {
	ID           string          `json:"id,omitempty"`
	Y            *float64        `json:"y,omitempty"`
	U            *float64        `json:"u,omitempty"`
	X            *float64        `json:"x,omitempty"`
	Size         *Size           `json:"size,omitempty"`
	Side         string          `json:"side,omitempty"`
	IsFullHeight *bool           `json:"isFullHeight,omitempty"`
	Label        string          `json:"label"`
	Type         string          `json:"type"`
	Stencil      string          `json:"stencil"`
	StencilRear  string          `json:"stencilRear"`
	ShelfItems   *[]Item         `json:"shelfItems,omitempty"`
	Notes        string          `json:"notes"`
	NoteOffset   *Offset         `json:"noteOffset,omitempty"`
	NotePosition json.RawMessage `json:"notePosition,omitempty"`
}

func intPtr(v int) *float64 {
	f := float64(v)
	return &f
}

// MarshalJSON writes the variant-specific fields of the item.
func (it Item) MarshalJSON() ([]byte, error) {
	off := it.NoteOffset
	out := itemJSON{
		ID:          it.ID,
		Label:       it.Label,
		Type:        it.Type,
		Stencil:     it.Stencil,
		StencilRear: it.StencilRear,
		Notes:       it.Notes,
		NoteOffset:  &off,
	}
	switch it.Kind {
	case KindStandard:
		out.Y = intPtr(it.Y)
		out.U = intPtr(it.U)
		shelf := it.ShelfItems
		if shelf == nil {
			shelf = []Item{}
		}
		out.ShelfItems = &shelf
	case KindShelf:
		x := it.X
		size := it.Size
		out.X = &x
		out.Size = &size
	case KindPDU:
		full := it.FullHeight
		out.Y = intPtr(it.Y)
		out.U = intPtr(it.U)
		out.Side = it.Side.String()
		out.IsFullHeight = &full
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads an item, deriving its Kind from the type string.
// Missing notes and note offsets are defaulted; a legacy notePosition
// field is dropped.
func (it *Item) UnmarshalJSON(data []byte) error {
	var in itemJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*it = Item{
		ID:          in.ID,
		Kind:        KindForType(in.Type),
		Label:       in.Label,
		Type:        in.Type,
		Stencil:     in.Stencil,
		StencilRear: in.StencilRear,
		Notes:       in.Notes,
		NoteOffset:  DefaultNoteOffset(),
	}
	if in.NoteOffset != nil {
		it.NoteOffset = *in.NoteOffset
	}
	if in.Y != nil {
		it.Y = int(math.Round(*in.Y))
	}
	if in.U != nil {
		it.U = int(math.Round(*in.U))
	}
	switch it.Kind {
	case KindStandard:
		if in.ShelfItems != nil {
			it.ShelfItems = *in.ShelfItems
		}
	case KindShelf:
		if in.X != nil {
			it.X = *in.X
		}
		if in.Size != nil {
			it.Size = *in.Size
		}
	case KindPDU:
		it.Side = ParseSide(in.Side)
		if in.IsFullHeight != nil {
			it.FullHeight = *in.IsFullHeight
		}
	}
	return nil
}

type rackJSON struct {
	ID        json.RawMessage `json:"id,omitempty"`
	Name      string          `json:"name"`
	HeightU   int             `json:"heightU"`
	Equipment []Item          `json:"equipment"`
}

// MarshalJSON writes the rack in the persisted camelCase shape.
func (r Rack) MarshalJSON() ([]byte, error) {
	id, err := json.Marshal(r.ID)
	if err != nil {
		return nil, err
	}
	eq := r.Equipment
	if eq == nil {
		eq = []Item{}
	}
	return json.Marshal(rackJSON{ID: id, Name: r.Name, HeightU: r.HeightU, Equipment: eq})
}

// UnmarshalJSON reads a rack. Older files stored numeric ids, which are
// converted to strings.
func (r *Rack) UnmarshalJSON(data []byte) error {
	var in rackJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	id, err := decodeID(in.ID)
	if err != nil {
		return err
	}
	*r = Rack{ID: id, Name: in.Name, HeightU: in.HeightU, Equipment: in.Equipment}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return "", nil
	}
	if strings.HasPrefix(s, `"`) {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", err
		}
		return id, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("invalid rack id %s", s)
	}
	return strconv.FormatFloat(n, 'f', -1, 64), nil
}
