package scene

import (
	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
)

// ItemRef names an item inside a rack. ParentID is set for shelf items.
type ItemRef struct {
	ID       string
	ParentID string
}

func inside(r geometry.Rect, p geometry.Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// HitItem returns the item under a rack-local point. Shelf items are
// checked first, then PDUs, then standard items from the top of the
// stacking order.
func HitItem(rack model.Rack, local geometry.Point) (ItemRef, bool) {
	eq := rack.Equipment
	for i := len(eq) - 1; i >= 0; i-- {
		parent := eq[i]
		if parent.Kind != model.KindStandard {
			continue
		}
		for _, s := range parent.ShelfItems {
			if inside(ShelfRect(parent, s), local) {
				return ItemRef{ID: s.ID, ParentID: parent.ID}, true
			}
		}
	}
	for _, it := range eq {
		if it.Kind == model.KindPDU && inside(ItemRect(it), local) {
			return ItemRef{ID: it.ID}, true
		}
	}
	for i := len(eq) - 1; i >= 0; i-- {
		it := eq[i]
		if it.Kind == model.KindStandard && inside(ItemRect(it), local) {
			return ItemRef{ID: it.ID}, true
		}
	}
	return ItemRef{}, false
}

// ShelfPlacement is where a dropped shelf item lands.
type ShelfPlacement struct {
	ParentID string
	X        float64
}

// FindShelfParent returns the topmost standard item under a rack-local
// point that can carry a shelf item of the given size, and the clamped
// horizontal offset centring the item on the pointer. Monitors cannot
// carry shelf items.
func FindShelfParent(rack model.Rack, local geometry.Point, size model.Size) (ShelfPlacement, bool) {
	if local.X < EquipmentLeft || local.X > EquipmentRight {
		return ShelfPlacement{}, false
	}
	w := size.Width * model.ShelfItemRenderScale
	for i := len(rack.Equipment) - 1; i >= 0; i-- {
		p := rack.Equipment[i]
		if p.Kind != model.KindStandard || p.Type == model.TypeMonitor {
			continue
		}
		top := float64(p.Y * model.BaseUnitHeight)
		bottom := top + float64(p.U*model.BaseUnitHeight)
		if local.Y >= top && local.Y < bottom {
			x := local.X - EquipmentLeft - w/2
			x = max(0, min(x, EquipmentWidth-w))
			return ShelfPlacement{ParentID: p.ID, X: x}, true
		}
	}
	return ShelfPlacement{}, false
}

// ItemsInRect returns every item of the rack whose rectangle intersects a
// world rectangle. origin is the rack's world top-left.
func ItemsInRect(rack model.Rack, origin geometry.Point, world geometry.Rect) []ItemRef {
	var out []ItemRef
	for _, it := range rack.Equipment {
		if it.Kind == model.KindShelf {
			continue
		}
		if ItemRect(it).Translate(origin).Intersects(world) {
			out = append(out, ItemRef{ID: it.ID})
		}
		for _, s := range it.ShelfItems {
			if ShelfRect(it, s).Translate(origin).Intersects(world) {
				out = append(out, ItemRef{ID: s.ID, ParentID: it.ID})
			}
		}
	}
	return out
}

// OwnerRect returns the rack-local rectangle of the referenced item.
func OwnerRect(rack model.Rack, ref ItemRef) (geometry.Rect, bool) {
	if ref.ParentID != "" {
		pi := rack.FindItem(ref.ParentID)
		if pi < 0 {
			return geometry.Rect{}, false
		}
		parent := rack.Equipment[pi]
		si := parent.FindShelfItem(ref.ID)
		if si < 0 {
			return geometry.Rect{}, false
		}
		return ShelfRect(parent, parent.ShelfItems[si]), true
	}
	i := rack.FindItem(ref.ID)
	if i < 0 {
		return geometry.Rect{}, false
	}
	return ItemRect(rack.Equipment[i]), true
}
