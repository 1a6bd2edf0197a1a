package engine

import (
	"sort"

	"github.com/piwi3910/RackPlanner/internal/model"
)

// Usage summarizes slot occupancy of one rack.
type Usage struct {
	HeightU    int
	EquipmentU int // standard gear other than blanks
	BlankU     int
	FreeU      int
	Items      int // standard items other than blanks
	ShelfItems int
	PDUs       int
}

// Utilization returns the share of slots taken by equipment, 0..1.
func (u Usage) Utilization() float64 {
	if u.HeightU == 0 {
		return 0
	}
	return float64(u.EquipmentU) / float64(u.HeightU)
}

// RackUsage counts slots and items of a rack.
func RackUsage(rack model.Rack) Usage {
	u := Usage{HeightU: rack.HeightU}
	for _, it := range rack.Equipment {
		switch it.Kind {
		case model.KindStandard:
			if it.Type == model.TypeBlank {
				u.BlankU += it.U
			} else {
				u.EquipmentU += it.U
				u.Items++
			}
			u.ShelfItems += len(it.ShelfItems)
		case model.KindPDU:
			u.PDUs++
		case model.KindShelf:
		}
	}
	for _, r := range EmptyRuns(rack) {
		u.FreeU += r.Size
	}
	return u
}

// BOMLine is one row of a bill of materials.
type BOMLine struct {
	Label    string
	Type     string
	U        int
	Quantity int
	Racks    []string
}

// BillOfMaterials counts identical items across racks, grouping by label,
// type and height. Shelf items are counted alongside rack-mount gear.
func BillOfMaterials(racks []model.Rack) []BOMLine {
	type key struct {
		label, typ string
		u          int
	}
	index := map[key]int{}
	var lines []BOMLine
	add := func(it model.Item, rack string) {
		k := key{it.Label, it.Type, it.U}
		i, ok := index[k]
		if !ok {
			i = len(lines)
			index[k] = i
			lines = append(lines, BOMLine{Label: it.Label, Type: it.Type, U: it.U})
		}
		l := &lines[i]
		l.Quantity++
		if n := len(l.Racks); n == 0 || l.Racks[n-1] != rack {
			l.Racks = append(l.Racks, rack)
		}
	}
	for _, r := range racks {
		for _, it := range r.Equipment {
			add(it, r.Name)
			for _, s := range it.ShelfItems {
				add(s, r.Name)
			}
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Type != lines[j].Type {
			return lines[i].Type < lines[j].Type
		}
		return lines[i].Label < lines[j].Label
	})
	return lines
}
