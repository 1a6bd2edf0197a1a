// Package notes lays out the annotation boxes attached to rack items: the
// floating boxes with connector lines in the single-rack view, and the
// stacked notes list under the racks in the overview.
package notes

import (
	"strings"

	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/scene"
)

// Measurer returns the rendered width of text at a font size, in the same
// units as the size.
type Measurer func(text string, size float64) float64

// FontSize is the note text size in world units.
const FontSize = min(16, max(9, model.BaseUnitHeight*0.35))

// Align is the horizontal alignment of note text inside its box.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Metrics is the computed placement of one floating note.
type Metrics struct {
	Lines      []string
	Box        geometry.Rect
	From       geometry.Point // on the item
	To         geometry.Point // on the note box
	Align      Align
	TextX      float64 // text anchor offset from Box.X
	FontSize   float64
	LineHeight float64
	Padding    float64
}

// Lines splits note text into display lines, dropping blank ones.
func Lines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// Compute places the note box for an item. The box's left edge sits
// offset.X right of the item's right edge and its centre offset.Y below
// the item's centre. The connector runs from the item edge facing the box
// to the near edge of the box. It returns false when there is no text.
func Compute(text string, item geometry.Rect, offset model.Offset, measure Measurer) (Metrics, bool) {
	lines := Lines(text)
	if len(lines) == 0 {
		return Metrics{}, false
	}
	fs := FontSize
	maxW := 0.0
	for _, l := range lines {
		maxW = max(maxW, measure(l, fs))
	}
	padding := fs * 0.5
	lineHeight := fs * 1.2
	w := maxW + 2*padding
	h := float64(len(lines))*lineHeight - 0.2*fs + 2*padding

	itemCenter := item.Center()
	box := geometry.Rect{
		X: item.Right() + offset.X,
		Y: itemCenter.Y + offset.Y - h/2,
		W: w,
		H: h,
	}
	m := Metrics{
		Lines:      lines,
		Box:        box,
		FontSize:   fs,
		LineHeight: lineHeight,
		Padding:    padding,
	}
	boxCenterY := box.Y + box.H/2
	if box.X+box.W/2 < itemCenter.X {
		m.From = geometry.Point{X: item.X, Y: itemCenter.Y}
		m.To = geometry.Point{X: box.Right(), Y: boxCenterY}
		m.Align = AlignRight
		m.TextX = w - padding
	} else {
		m.From = geometry.Point{X: item.Right(), Y: itemCenter.Y}
		m.To = geometry.Point{X: box.X, Y: boxCenterY}
		m.Align = AlignLeft
		m.TextX = padding
	}
	return m, true
}

// Connector routes a line between the centres of the item and the note
// box and clips it to both borders, for renderers that draw the line
// between the facing borders rather than the side midpoints.
func Connector(item, box geometry.Rect) (from, to geometry.Point, ok bool) {
	ic, bc := item.Center(), box.Center()
	from, ok1 := geometry.LineRectIntersection(bc, ic, item)
	to, ok2 := geometry.LineRectIntersection(ic, bc, box)
	if !ok1 || !ok2 {
		return ic, bc, false
	}
	return from, to, true
}

// Placed is a computed note for one item of a rack.
type Placed struct {
	Ref     scene.ItemRef
	Item    geometry.Rect // rack-local
	Metrics Metrics       // rack-local
}

// Offsets overrides note offsets while a note drag is in progress.
type Offsets func(ref scene.ItemRef) (model.Offset, bool)

// Layout computes every floating note of a rack in rack-local coordinates,
// in drawing order: each item, then its shelf items.
func Layout(rack model.Rack, measure Measurer, override Offsets) []Placed {
	var out []Placed
	add := func(ref scene.ItemRef, it model.Item, r geometry.Rect) {
		off := it.NoteOffset
		if override != nil {
			if o, ok := override(ref); ok {
				off = o
			}
		}
		if m, ok := Compute(it.Notes, r, off, measure); ok {
			out = append(out, Placed{Ref: ref, Item: r, Metrics: m})
		}
	}
	for _, it := range rack.Equipment {
		switch it.Kind {
		case model.KindStandard, model.KindPDU:
			add(scene.ItemRef{ID: it.ID}, it, scene.ItemRect(it))
		case model.KindShelf:
			continue
		}
		for _, s := range it.ShelfItems {
			add(scene.ItemRef{ID: s.ID, ParentID: it.ID}, s, scene.ShelfRect(it, s))
		}
	}
	return out
}

// HitTest returns the first note box containing a rack-local point.
func HitTest(rack model.Rack, local geometry.Point, measure Measurer) (Placed, bool) {
	for _, p := range Layout(rack, measure, nil) {
		if p.Metrics.Box.Contains(local) {
			return p, true
		}
	}
	return Placed{}, false
}

// InRect returns the owners of every note box intersecting a rack-local
// rectangle.
func InRect(rack model.Rack, local geometry.Rect, measure Measurer) []scene.ItemRef {
	var out []scene.ItemRef
	for _, p := range Layout(rack, measure, nil) {
		if p.Metrics.Box.Intersects(local) {
			out = append(out, p.Ref)
		}
	}
	return out
}
