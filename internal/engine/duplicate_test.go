package engine

import (
	"testing"

	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicateBlock_Down(t *testing.T) {
	r := model.NewRack("R", 42)
	a, b := item("A", 0, 1), item("B", 1, 2)
	r.Equipment = append(r.Equipment, a, b)

	ids, err := DuplicateBlock(&r, []string{a.ID, b.ID}, Down, 2)
	require.NoError(t, err)
	assert.Len(t, ids, 4)
	assert.Len(t, r.Equipment, 6)

	ys := map[int]bool{}
	for _, it := range r.Equipment {
		ys[it.Y] = true
	}
	for _, y := range []int{0, 1, 3, 4, 6, 7} {
		assert.True(t, ys[y], "expected an item at U%d", y)
	}
	for _, id := range ids {
		assert.NotEqual(t, a.ID, id)
		assert.NotEqual(t, b.ID, id)
	}
}

func TestDuplicateBlock_Up(t *testing.T) {
	r := model.NewRack("R", 42)
	a := item("A", 10, 2)
	r.Equipment = append(r.Equipment, a)

	_, err := DuplicateBlock(&r, []string{a.ID}, Up, 3)
	require.NoError(t, err)
	ys := []int{}
	for _, it := range r.Equipment[1:] {
		ys = append(ys, it.Y)
	}
	assert.Equal(t, []int{8, 6, 4}, ys)
}

func TestDuplicateBlock_AtomicOnCollision(t *testing.T) {
	r := model.NewRack("R", 42)
	a := item("A", 0, 2)
	blocker := item("X", 6, 1)
	r.Equipment = append(r.Equipment, a, blocker)
	before := model.CopyRacks([]model.Rack{r})

	assert.False(t, CheckDuplicateSpace(r, []string{a.ID}, Down, 3))
	_, err := DuplicateBlock(&r, []string{a.ID}, Down, 3)
	assert.ErrorIs(t, err, ErrNoSpace)
	assert.True(t, LayoutsEqual(before, []model.Rack{r}), "rack must be unchanged")
	assert.True(t, CheckDuplicateSpace(r, []string{a.ID}, Down, 2))
}

func TestDuplicateBlock_OutOfBounds(t *testing.T) {
	r := model.NewRack("R", 4)
	a := item("A", 1, 2)
	r.Equipment = append(r.Equipment, a)
	assert.False(t, CheckDuplicateSpace(r, []string{a.ID}, Up, 1))
	assert.False(t, CheckDuplicateSpace(r, []string{a.ID}, Down, 1))
}

func TestDuplicateBlock_IgnoresPDUsAsObstacles(t *testing.T) {
	r := model.NewRack("R", 12)
	a := item("A", 0, 2)
	r.Equipment = append(r.Equipment, a, model.NewPDU("P", model.SideRight, 0, 12, true))
	assert.True(t, CheckDuplicateSpace(r, []string{a.ID}, Down, 5))
}

func TestDuplicateBlock_RejectsPDUAndEmpty(t *testing.T) {
	r := model.NewRack("R", 12)
	p := model.NewPDU("P", model.SideRight, 0, 12, true)
	r.Equipment = append(r.Equipment, p)

	_, err := DuplicateBlock(&r, []string{p.ID}, Down, 1)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, err = DuplicateBlock(&r, nil, Down, 1)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestDuplicateBlock_CopiesShelfItemsAndNotes(t *testing.T) {
	r := model.NewRack("R", 12)
	shelf := item("Shelf", 0, 2)
	shelf.Notes = "keep"
	shelf.ShelfItems = append(shelf.ShelfItems, model.NewShelfItem("Modem", 5, model.Size{Width: 90, Height: 60}))
	r.Equipment = append(r.Equipment, shelf)

	ids, err := DuplicateBlock(&r, []string{shelf.ID}, Down, 1)
	require.NoError(t, err)
	c := r.Item(ids[0], "")
	require.NotNil(t, c)
	assert.Equal(t, "keep", c.Notes)
	require.Len(t, c.ShelfItems, 1)
	assert.NotEqual(t, shelf.ShelfItems[0].ID, c.ShelfItems[0].ID)
}
