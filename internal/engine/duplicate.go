package engine

import (
	"fmt"

	"github.com/piwi3910/RackPlanner/internal/model"
)

// Direction selects where duplicated blocks are stacked.
type Direction int

const (
	Down Direction = iota
	Up
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

func (d Direction) sign() int {
	if d == Up {
		return -1
	}
	return 1
}

// selectedBlock resolves ids to standard items of the rack, sorted by Y.
func selectedBlock(rack model.Rack, ids []string) ([]model.Item, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: nothing selected", ErrInvalidSelection)
	}
	sel := make([]model.Item, 0, len(ids))
	for _, id := range ids {
		i := rack.FindItem(id)
		if i < 0 {
			return nil, fmt.Errorf("%w: item %s is not in rack %q", ErrInvalidSelection, id, rack.Name)
		}
		it := rack.Equipment[i]
		if it.Kind != model.KindStandard {
			return nil, fmt.Errorf("%w: %s items cannot be duplicated", ErrInvalidSelection, it.Kind)
		}
		sel = append(sel, it)
	}
	SortByY(sel)
	return sel, nil
}

func blockSpan(sel []model.Item) int {
	minY, maxBottom := sel[0].Y, 0
	for _, it := range sel {
		maxBottom = max(maxBottom, it.Bottom())
	}
	return maxBottom - minY
}

// planDuplicate computes the copies for count repeats of the block without
// touching the rack. Each repeat is validated against the rack's other
// standard items and against the copies planned before it.
func planDuplicate(rack model.Rack, ids []string, dir Direction, count int) ([]model.Item, error) {
	sel, err := selectedBlock(rack, ids)
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: repeat count %d", ErrInvalidSelection, count)
	}
	exclude := make(map[string]bool, len(sel))
	for _, it := range sel {
		exclude[it.ID] = true
	}
	others := StandardItems(rack, exclude)
	height := blockSpan(sel)

	var copies []model.Item
	for i := 1; i <= count; i++ {
		offset := i * height * dir.sign()
		for _, it := range sel {
			y := it.Y + offset
			if !Fits(y, it.U, rack.HeightU, others) {
				return nil, fmt.Errorf("%w: copy %d of %q would land at U%d", ErrNoSpace, i, it.Label, y)
			}
		}
		for _, it := range sel {
			c := it.Clone()
			c.Y = it.Y + offset
			copies = append(copies, c)
		}
		others = append(others, copies[len(copies)-len(sel):]...)
	}
	return copies, nil
}

// CheckDuplicateSpace reports whether count copies of the selected block
// fit when stacked in direction dir.
func CheckDuplicateSpace(rack model.Rack, ids []string, dir Direction, count int) bool {
	_, err := planDuplicate(rack, ids, dir, count)
	return err == nil
}

// DuplicateBlock stacks count copies of the selected block in direction
// dir and returns the ids of the copies. Either every copy is added or the
// rack is left untouched.
func DuplicateBlock(rack *model.Rack, ids []string, dir Direction, count int) ([]string, error) {
	copies, err := planDuplicate(*rack, ids, dir, count)
	if err != nil {
		return nil, err
	}
	rack.Equipment = append(rack.Equipment, copies...)
	out := make([]string, len(copies))
	for i, c := range copies {
		out[i] = c.ID
	}
	return out, nil
}
