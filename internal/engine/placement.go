// Package engine implements rack placement: the U overlap predicate, the
// nearest-free-slot search, blank filling, block duplication and the
// layout comparator used for unsaved-change detection.
package engine

import (
	"errors"

	"github.com/piwi3910/RackPlanner/internal/model"
)

// NotFound is returned by slot searches when no position fits.
const NotFound = -1

var (
	// ErrNoSpace reports that an item or block does not fit anywhere legal.
	ErrNoSpace = errors.New("not enough space")
	// ErrInvalidSelection reports a selection an operation cannot act on.
	ErrInvalidSelection = errors.New("invalid selection")
)

// Overlaps reports whether the slot ranges [a, a+h) and [b, b+k) intersect.
func Overlaps(a, h, b, k int) bool {
	return a < b+k && b < a+h
}

// Fits reports whether u slots starting at y lie inside a rack of height
// rackHeight and clear every item in obstacles.
func Fits(y, u, rackHeight int, obstacles []model.Item) bool {
	if y < 0 || y+u > rackHeight {
		return false
	}
	for _, it := range obstacles {
		if Overlaps(y, u, it.Y, it.U) {
			return false
		}
	}
	return true
}

// FindAvailableY searches outward from preferredY for a free start slot,
// trying preferredY+i before preferredY-i at each distance. It returns
// NotFound when nothing fits.
func FindAvailableY(u, preferredY int, existing []model.Item, rackHeight int) int {
	if u < 1 || u > rackHeight {
		return NotFound
	}
	maxOffset := max(preferredY, rackHeight-u-preferredY)
	for i := 0; i <= maxOffset; i++ {
		down := preferredY + i
		if down >= 0 && down+u <= rackHeight && Fits(down, u, rackHeight, existing) {
			return down
		}
		if i == 0 {
			continue
		}
		up := preferredY - i
		if up >= 0 && up+u <= rackHeight && Fits(up, u, rackHeight, existing) {
			return up
		}
	}
	return NotFound
}

// StandardItems returns the rack's slot-occupying items, skipping ids in
// exclude.
func StandardItems(rack model.Rack, exclude map[string]bool) []model.Item {
	out := make([]model.Item, 0, len(rack.Equipment))
	for _, it := range rack.Equipment {
		if it.OccupiesSlots() && !exclude[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

// PDUsOnSide returns the PDUs hanging on one rail, skipping ids in exclude.
func PDUsOnSide(rack model.Rack, side model.Side, exclude map[string]bool) []model.Item {
	var out []model.Item
	for _, it := range rack.Equipment {
		if it.Kind == model.KindPDU && it.Side == side && !exclude[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

// BlockEntry is one member of a block placed as a unit, positioned
// relative to the block's top slot.
type BlockEntry struct {
	RelY int
	U    int
}

// BlockHeight returns the number of slots a block spans.
func BlockHeight(block []BlockEntry) int {
	h := 0
	for _, e := range block {
		h = max(h, e.RelY+e.U)
	}
	return h
}

func blockFits(top int, block []BlockEntry, rackHeight int, obstacles []model.Item) bool {
	for _, e := range block {
		if !Fits(top+e.RelY, e.U, rackHeight, obstacles) {
			return false
		}
	}
	return true
}

// selfOverlaps reports whether two members of a block share a slot.
func selfOverlaps(block []BlockEntry) bool {
	for i := range block {
		for j := i + 1; j < len(block); j++ {
			if Overlaps(block[i].RelY, block[i].U, block[j].RelY, block[j].U) {
				return true
			}
		}
	}
	return false
}

// FindBlockSlot returns a top slot where every block member fits,
// preferring preferredTop and otherwise scanning from the top of the rack.
// A block whose members overlap each other never fits.
func FindBlockSlot(block []BlockEntry, preferredTop int, obstacles []model.Item, rackHeight int) int {
	if len(block) == 0 || selfOverlaps(block) {
		return NotFound
	}
	if preferredTop >= 0 && blockFits(preferredTop, block, rackHeight, obstacles) {
		return preferredTop
	}
	h := BlockHeight(block)
	for y := 0; y <= rackHeight-h; y++ {
		if blockFits(y, block, rackHeight, obstacles) {
			return y
		}
	}
	return NotFound
}
