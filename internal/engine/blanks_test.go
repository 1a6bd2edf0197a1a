package engine

import (
	"testing"

	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyRuns(t *testing.T) {
	r := model.NewRack("R", 12)
	r.Equipment = append(r.Equipment, item("A", 2, 3), model.NewPDU("P", model.SideLeft, 0, 12, true))
	assert.Equal(t, []EmptyRun{{Start: 0, Size: 2}, {Start: 5, Size: 7}}, EmptyRuns(r))
}

func TestFillWithBlanks_GreedyLargestFirst(t *testing.T) {
	r := model.NewRack("R", 42)
	r.Equipment = append(r.Equipment, item("A", 0, 1))

	added := FillWithBlanks(&r)

	// 41 free slots: 12+12+12+4+1
	assert.Equal(t, 5, added)
	sizes := []int{}
	for _, it := range r.Equipment {
		if it.Type == model.TypeBlank {
			sizes = append(sizes, it.U)
		}
	}
	assert.Equal(t, []int{12, 12, 12, 4, 1}, sizes)
	assert.Equal(t, "12U Blank Panel", r.Equipment[1].Label)
	assert.Equal(t, "blank-12u", r.Equipment[1].Stencil)
	assert.Equal(t, "blank-12u-rear", r.Equipment[1].StencilRear)
}

func TestFillWithBlanks_NoOverlapAndFull(t *testing.T) {
	r := model.NewRack("R", 20)
	r.Equipment = append(r.Equipment, item("A", 3, 2), item("B", 9, 5))
	FillWithBlanks(&r)

	covered := make([]int, r.HeightU)
	for _, it := range r.Equipment {
		for u := it.Y; u < it.Bottom(); u++ {
			covered[u]++
		}
	}
	for u, n := range covered {
		require.Equal(t, 1, n, "slot %d covered %d times", u, n)
	}
}

func TestFillWithBlanks_Idempotent(t *testing.T) {
	r := model.NewRack("R", 42)
	r.Equipment = append(r.Equipment, item("A", 5, 2), item("B", 20, 4))

	FillWithBlanks(&r)
	first := model.CopyRacks([]model.Rack{r})

	FillWithBlanks(&r)
	assert.True(t, LayoutsEqual(first, []model.Rack{r}))
}

func TestFillWithBlanks_RefillsAfterRemoval(t *testing.T) {
	r := model.NewRack("R", 10)
	r.Equipment = append(r.Equipment, item("A", 0, 2))
	FillWithBlanks(&r)

	r.Equipment = r.Equipment[1:] // remove A, its slots are now free
	FillWithBlanks(&r)

	total := 0
	for _, it := range r.Equipment {
		total += it.U
	}
	assert.Equal(t, 10, total)
}

func TestFillWithBlanks_SortedByY(t *testing.T) {
	r := model.NewRack("R", 12)
	r.Equipment = append(r.Equipment, item("B", 8, 1), item("A", 2, 1))
	FillWithBlanks(&r)
	for i := 1; i < len(r.Equipment); i++ {
		assert.LessOrEqual(t, r.Equipment[i-1].Y, r.Equipment[i].Y)
	}
}
