// Package scene maps racks and items into world coordinates for both the
// single-rack and the side-by-side overview, and answers hit tests against
// that layout.
package scene

import (
	"math"

	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
)

// Rack body geometry in world units, relative to the rack's top-left.
const (
	RailLeft         = model.BaseUnitHeight * 1.25 // 50
	RailRight        = model.WorldWidth - RailLeft // 510
	EquipmentPadding = model.BaseUnitHeight * 0.2  // 8
	EquipmentLeft    = RailLeft - EquipmentPadding // 42
	EquipmentWidth   = RailRight - RailLeft + 2*EquipmentPadding
	EquipmentRight   = EquipmentLeft + EquipmentWidth
	PDUWidth         = model.BaseUnitHeight * 0.75 // 30
	RackPitch        = model.WorldWidth + model.RackSpacing
	Centerline       = model.WorldWidth / 2

	HeaderOffset     = -model.BaseUnitHeight * 1.5 // name row above the rack top
	NameFontSize     = model.BaseUnitHeight * 0.65
	NamePaddingX     = 20
	NamePaddingY     = 10
	DeleteButtonSize = model.BaseUnitHeight
)

// MaxHeightU returns the tallest rack height, or the default height for
// an empty layout.
func MaxHeightU(racks []model.Rack) int {
	if len(racks) == 0 {
		return model.DefaultRackHeight
	}
	h := 0
	for _, r := range racks {
		h = max(h, r.HeightU)
	}
	return h
}

// RackOrigin returns the world position of rack i's top-left corner. In
// the overview racks stand side by side, bottom-aligned to the tallest.
func RackOrigin(racks []model.Rack, i int, multi bool) geometry.Point {
	if !multi || i < 0 || i >= len(racks) {
		return geometry.Point{}
	}
	maxH := MaxHeightU(racks)
	return geometry.Point{
		X: float64(i * RackPitch),
		Y: float64((maxH - racks[i].HeightU) * model.BaseUnitHeight),
	}
}

// RackBody returns the world rectangle of rack i's body.
func RackBody(racks []model.Rack, i int, multi bool) geometry.Rect {
	o := RackOrigin(racks, i, multi)
	return geometry.Rect{X: o.X, Y: o.Y, W: model.WorldWidth, H: float64(racks[i].HeightU * model.BaseUnitHeight)}
}

// RackHit locates a world point inside a rack body.
type RackHit struct {
	Index  int
	Origin geometry.Point
	Local  geometry.Point
}

// RackAt returns the rack under a world point. In single view only the
// active rack is considered.
func RackAt(racks []model.Rack, active int, multi bool, world geometry.Point) (RackHit, bool) {
	check := func(i int) (RackHit, bool) {
		b := RackBody(racks, i, multi)
		if world.X >= b.X && world.X < b.Right() && world.Y >= b.Y && world.Y < b.Bottom() {
			o := geometry.Point{X: b.X, Y: b.Y}
			return RackHit{Index: i, Origin: o, Local: world.Sub(o)}, true
		}
		return RackHit{}, false
	}
	if !multi {
		if active < 0 || active >= len(racks) {
			return RackHit{}, false
		}
		return check(active)
	}
	for i := range racks {
		if h, ok := check(i); ok {
			return h, true
		}
	}
	return RackHit{}, false
}

// ContentBounds returns the world rectangle covering every rack plus the
// header row, used for zoom-to-fit.
func ContentBounds(racks []model.Rack, multi bool) geometry.Rect {
	n := 1
	if multi && len(racks) > 0 {
		n = len(racks)
	}
	w := float64(n*model.WorldWidth + (n-1)*model.RackSpacing)
	h := float64(model.BaseUnitHeight * (MaxHeightU(racks) + 4))
	return geometry.Rect{X: 0, Y: HeaderOffset, W: w, H: h}
}

// ItemRect returns a standard item's or PDU's rectangle in rack-local
// coordinates. Shelf items need their parent, see ShelfRect.
func ItemRect(it model.Item) geometry.Rect {
	switch it.Kind {
	case model.KindPDU:
		x := float64(RailLeft)
		if it.Side == model.SideRight {
			x = model.WorldWidth - RailLeft - PDUWidth
		}
		return geometry.Rect{X: x, Y: float64(it.Y * model.BaseUnitHeight), W: PDUWidth, H: float64(it.U * model.BaseUnitHeight)}
	case model.KindStandard:
		return geometry.Rect{X: EquipmentLeft, Y: float64(it.Y * model.BaseUnitHeight), W: EquipmentWidth, H: float64(it.U * model.BaseUnitHeight)}
	case model.KindShelf:
	}
	return geometry.Rect{}
}

// ShelfRect returns a shelf item's rectangle in rack-local coordinates.
// Shelf items sit on top of their parent at ShelfItemRenderScale.
func ShelfRect(parent, shelf model.Item) geometry.Rect {
	w := shelf.Size.Width * model.ShelfItemRenderScale
	h := shelf.Size.Height * model.ShelfItemRenderScale
	return geometry.Rect{
		X: EquipmentLeft + shelf.X,
		Y: float64(parent.Y*model.BaseUnitHeight) - h,
		W: w,
		H: h,
	}
}

// SlotAt converts a rack-local y into a slot index for an item u slots
// tall, clamped so the item stays inside the rack.
func SlotAt(localY float64, u, rackHeight int) int {
	y := int(math.Floor(localY / model.BaseUnitHeight))
	return max(0, min(y, rackHeight-u))
}

// SideAt returns the rail nearest a rack-local x.
func SideAt(localX float64) model.Side {
	if localX < Centerline {
		return model.SideLeft
	}
	return model.SideRight
}

// RackHeader holds the header hit regions of one rack in world units.
type RackHeader struct {
	Name   geometry.Rect
	Delete geometry.Rect
}

// HeaderFor computes the name and delete-button regions above a rack
// whose top-left is origin, given the rendered width of its name.
func HeaderFor(origin geometry.Point, nameWidth float64) RackHeader {
	cy := origin.Y + HeaderOffset
	return RackHeader{
		Name: geometry.Rect{
			X: origin.X + model.WorldWidth/2 - nameWidth/2 - NamePaddingX,
			Y: cy - NameFontSize/2 - NamePaddingY,
			W: nameWidth + 2*NamePaddingX,
			H: NameFontSize + 2*NamePaddingY,
		},
		Delete: geometry.Rect{
			X: origin.X + model.WorldWidth - DeleteButtonSize,
			Y: cy - DeleteButtonSize/2,
			W: DeleteButtonSize,
			H: DeleteButtonSize,
		},
	}
}

// DropIndex returns the insertion index for a rack dragged to world x in
// the overview.
func DropIndex(worldX float64, count int) int {
	i := int(math.Floor((worldX + RackPitch/2) / RackPitch))
	return max(0, min(i, count))
}
