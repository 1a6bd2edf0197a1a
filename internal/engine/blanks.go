package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/RackPlanner/internal/model"
)

// BlankSizes lists the stocked blanking plate heights, largest first.
var BlankSizes = []int{12, 10, 8, 6, 4, 2, 1}

// NewBlank returns a blanking plate of height u at slot y.
func NewBlank(y, u int) model.Item {
	it := model.NewStandardItem(fmt.Sprintf("%dU Blank Panel", u), model.TypeBlank, y, u)
	it.Stencil = fmt.Sprintf("blank-%du", u)
	it.StencilRear = fmt.Sprintf("blank-%du-rear", u)
	return it
}

// EmptyRun is a maximal range of free slots.
type EmptyRun struct {
	Start int
	Size  int
}

// EmptyRuns returns the maximal free ranges of the rack, ignoring PDUs and
// shelf items, in top-down order.
func EmptyRuns(rack model.Rack) []EmptyRun {
	occupied := make([]bool, rack.HeightU)
	for _, it := range rack.Equipment {
		if !it.OccupiesSlots() {
			continue
		}
		start, end := it.Span()
		for u := start; u < end; u++ {
			if u >= 0 && u < rack.HeightU {
				occupied[u] = true
			}
		}
	}
	var runs []EmptyRun
	start := -1
	for i, occ := range occupied {
		switch {
		case !occ && start < 0:
			start = i
		case occ && start >= 0:
			runs = append(runs, EmptyRun{Start: start, Size: i - start})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, EmptyRun{Start: start, Size: rack.HeightU - start})
	}
	return runs
}

// FillWithBlanks replaces every existing blank in the rack with a greedy
// covering of all free slots, largest plates first, and returns the number
// of plates placed. Running it twice gives the same layout.
func FillWithBlanks(rack *model.Rack) int {
	kept := make([]model.Item, 0, len(rack.Equipment))
	for _, it := range rack.Equipment {
		if it.Type != model.TypeBlank {
			kept = append(kept, it)
		}
	}
	rack.Equipment = kept

	added := 0
	for _, run := range EmptyRuns(*rack) {
		y, remaining := run.Start, run.Size
		for remaining > 0 {
			size := remaining
			for _, b := range BlankSizes {
				if b <= remaining {
					size = b
					break
				}
			}
			rack.Equipment = append(rack.Equipment, NewBlank(y, size))
			added++
			y += size
			remaining -= size
		}
	}
	SortByY(rack.Equipment)
	return added
}

// SortByY orders items by their top slot, keeping the relative order of
// items that start on the same slot.
func SortByY(items []model.Item) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Y < items[j].Y })
}
