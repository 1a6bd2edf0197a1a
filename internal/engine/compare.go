package engine

import "github.com/piwi3910/RackPlanner/internal/model"

// LayoutsEqual reports whether two layouts hold the same racks and items.
// Racks are compared in order; items within a rack or shelf regardless of
// order. Ids are ignored.
func LayoutsEqual(a, b []model.Rack) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !RacksEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// HasUnsavedChanges reports whether current differs from the last saved
// snapshot.
func HasUnsavedChanges(current, saved []model.Rack) bool {
	return !LayoutsEqual(current, saved)
}

// IsEffectivelyEmpty reports whether a layout has nothing worth saving:
// no racks, or one rack with no equipment.
func IsEffectivelyEmpty(racks []model.Rack) bool {
	return len(racks) == 0 || (len(racks) == 1 && len(racks[0].Equipment) == 0)
}

// RacksEqual compares one rack's persisted fields and contents.
func RacksEqual(a, b model.Rack) bool {
	if a.Name != b.Name || a.HeightU != b.HeightU {
		return false
	}
	return itemsEqual(a.Equipment, b.Equipment)
}

// itemsEqual matches every item of a to a distinct equal item of b, so
// the stored order never matters, ties included.
func itemsEqual(a, b []model.Item) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if !used[j] && itemEqual(x, y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func itemEqual(a, b model.Item) bool {
	if a.Kind != b.Kind || a.Label != b.Label || a.Type != b.Type ||
		a.Stencil != b.Stencil || a.StencilRear != b.StencilRear ||
		a.Notes != b.Notes || a.NoteOffset != b.NoteOffset {
		return false
	}
	switch a.Kind {
	case model.KindStandard:
		return a.Y == b.Y && a.U == b.U && itemsEqual(a.ShelfItems, b.ShelfItems)
	case model.KindShelf:
		return a.X == b.X && a.Size == b.Size
	case model.KindPDU:
		return a.Y == b.Y && a.U == b.U && a.Side == b.Side && a.FullHeight == b.FullHeight
	}
	return false
}

// RackChange classifies how a rack differs between two layouts.
type RackChange string

const (
	RackUnchanged RackChange = "unchanged"
	RackModified  RackChange = "modified"
	RackAdded     RackChange = "added"
	RackRemoved   RackChange = "removed"
)

// RackComparison holds the comparison of one rack position across two
// layouts.
type RackComparison struct {
	Index  int
	Name   string
	Change RackChange
	ItemsA int
	ItemsB int
}

// CompareLayouts compares two layouts rack by rack, position for position.
func CompareLayouts(a, b []model.Rack) []RackComparison {
	n := max(len(a), len(b))
	results := make([]RackComparison, 0, n)
	for i := 0; i < n; i++ {
		c := RackComparison{Index: i}
		switch {
		case i >= len(a):
			c.Name, c.Change, c.ItemsB = b[i].Name, RackAdded, len(b[i].Equipment)
		case i >= len(b):
			c.Name, c.Change, c.ItemsA = a[i].Name, RackRemoved, len(a[i].Equipment)
		default:
			c.Name = b[i].Name
			c.ItemsA, c.ItemsB = len(a[i].Equipment), len(b[i].Equipment)
			c.Change = RackUnchanged
			if !RacksEqual(a[i], b[i]) {
				c.Change = RackModified
			}
		}
		results = append(results, c)
	}
	return results
}
