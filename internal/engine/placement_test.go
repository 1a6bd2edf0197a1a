package engine

import (
	"testing"

	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(label string, y, u int) model.Item {
	return model.NewStandardItem(label, "server", y, u)
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(0, 4, 3, 2))
	assert.False(t, Overlaps(0, 4, 4, 2), "touching ranges do not overlap")
	assert.False(t, Overlaps(6, 2, 0, 6))
	assert.True(t, Overlaps(2, 1, 0, 10))
}

func TestFindAvailableY_PreferredSlotFree(t *testing.T) {
	existing := []model.Item{item("A", 0, 4), item("B", 10, 2)}
	assert.Equal(t, 5, FindAvailableY(4, 5, existing, 12))
}

func TestFindAvailableY_SearchesDownBeforeUp(t *testing.T) {
	existing := []model.Item{item("A", 4, 2)}
	// Both 6 (down by 2) and 2 (up by 2) are free for a 2U item asked at 4.
	assert.Equal(t, 6, FindAvailableY(2, 4, existing, 12))
}

func TestFindAvailableY_SearchesUpWhenBottomBlocked(t *testing.T) {
	existing := []model.Item{item("A", 6, 6)}
	assert.Equal(t, 4, FindAvailableY(2, 6, existing, 12))
}

func TestFindAvailableY_TooTall(t *testing.T) {
	assert.Equal(t, NotFound, FindAvailableY(13, 0, nil, 12))
}

func TestFindAvailableY_FullRack(t *testing.T) {
	existing := []model.Item{item("A", 0, 12)}
	assert.Equal(t, NotFound, FindAvailableY(1, 5, existing, 12))
}

func TestFindAvailableY_ResultNeverOverlaps(t *testing.T) {
	existing := []model.Item{item("A", 0, 3), item("B", 5, 1), item("C", 9, 2)}
	for pref := 0; pref < 12; pref++ {
		for u := 1; u <= 4; u++ {
			y := FindAvailableY(u, pref, existing, 12)
			if y == NotFound {
				continue
			}
			require.True(t, Fits(y, u, 12, existing), "pref=%d u=%d got y=%d", pref, u, y)
		}
	}
}

func TestStandardItemsSkipsPDUs(t *testing.T) {
	r := model.NewRack("R", 42)
	r.Equipment = append(r.Equipment, item("A", 0, 1), model.NewPDU("P", model.SideLeft, 0, 42, true))
	assert.Len(t, StandardItems(r, nil), 1)
	assert.Len(t, PDUsOnSide(r, model.SideLeft, nil), 1)
	assert.Len(t, PDUsOnSide(r, model.SideRight, nil), 0)
}

func TestFindBlockSlot(t *testing.T) {
	block := []BlockEntry{{RelY: 0, U: 2}, {RelY: 3, U: 1}}
	obstacles := []model.Item{item("A", 0, 2)}

	assert.Equal(t, 5, FindBlockSlot(block, 5, obstacles, 12), "preferred slot wins when free")
	assert.Equal(t, 2, FindBlockSlot(block, 0, obstacles, 12), "falls back to the first free slot")
	assert.Equal(t, NotFound, FindBlockSlot(block, 0, []model.Item{item("A", 0, 10)}, 12))
}

func TestFindBlockSlot_RejectsSelfOverlappingBlock(t *testing.T) {
	block := []BlockEntry{{RelY: 0, U: 2}, {RelY: 1, U: 2}}
	assert.Equal(t, NotFound, FindBlockSlot(block, 0, nil, 12))
	assert.Equal(t, NotFound, FindBlockSlot(block, -1, nil, 12))
}
