package engine

import (
	"testing"

	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/stretchr/testify/assert"
)

func sampleLayout() []model.Rack {
	r := model.NewRack("Rack 1", 42)
	shelf := item("Shelf", 4, 2)
	shelf.ShelfItems = append(shelf.ShelfItems,
		model.NewShelfItem("Modem", 100, model.Size{Width: 90, Height: 60}),
		model.NewShelfItem("Mini PC", 10, model.Size{Width: 120, Height: 40}),
	)
	r.Equipment = append(r.Equipment, item("Server", 0, 2), shelf, model.NewPDU("P", model.SideLeft, 0, 42, true))
	return []model.Rack{r}
}

func TestLayoutsEqual_Self(t *testing.T) {
	a := sampleLayout()
	assert.True(t, LayoutsEqual(a, model.CopyRacks(a)))
	assert.False(t, HasUnsavedChanges(a, model.CopyRacks(a)))
}

func TestLayoutsEqual_IgnoresIDsAndOrder(t *testing.T) {
	a := sampleLayout()
	b := model.CopyRacks(a)
	b[0].ID = "other"
	b[0].Equipment[0], b[0].Equipment[1] = b[0].Equipment[1], b[0].Equipment[0]
	b[0].Equipment[1].ID = "renumbered"
	shelf := &b[0].Equipment[0]
	shelf.ShelfItems[0], shelf.ShelfItems[1] = shelf.ShelfItems[1], shelf.ShelfItems[0]
	assert.True(t, LayoutsEqual(a, b))
}

func TestLayoutsEqual_TiedItemsInAnyOrder(t *testing.T) {
	r := model.NewRack("Rack 1", 42)
	r.Equipment = append(r.Equipment,
		model.NewPDU("Vertical PDU", model.SideLeft, 0, 42, true),
		model.NewPDU("Vertical PDU", model.SideRight, 0, 42, true),
	)
	a := []model.Rack{r}
	b := model.CopyRacks(a)
	b[0].Equipment[0], b[0].Equipment[1] = b[0].Equipment[1], b[0].Equipment[0]
	assert.True(t, LayoutsEqual(a, b))

	b[0].Equipment[0].Side = model.SideLeft
	assert.False(t, LayoutsEqual(a, b), "two left PDUs differ from a left and a right one")
}

func TestLayoutsEqual_DetectsPersistedChanges(t *testing.T) {
	mutations := map[string]func(r []model.Rack) []model.Rack{
		"rack name":    func(r []model.Rack) []model.Rack { r[0].Name = "x"; return r },
		"rack height":  func(r []model.Rack) []model.Rack { r[0].HeightU = 24; return r },
		"item y":       func(r []model.Rack) []model.Rack { r[0].Equipment[0].Y = 10; return r },
		"notes":        func(r []model.Rack) []model.Rack { r[0].Equipment[0].Notes = "hi"; return r },
		"note offset":  func(r []model.Rack) []model.Rack { r[0].Equipment[0].NoteOffset.X = 5; return r },
		"shelf item x": func(r []model.Rack) []model.Rack { r[0].Equipment[1].ShelfItems[0].X = 1; return r },
		"pdu side":     func(r []model.Rack) []model.Rack { r[0].Equipment[2].Side = model.SideRight; return r },
		"item removed": func(r []model.Rack) []model.Rack { r[0].Equipment = r[0].Equipment[:2]; return r },
		"rack added":   func(r []model.Rack) []model.Rack { return append(r, model.NewRack("Rack 2", 42)) },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			a := sampleLayout()
			b := mutate(model.CopyRacks(a))
			assert.True(t, HasUnsavedChanges(b, a))
		})
	}
}

func TestIsEffectivelyEmpty(t *testing.T) {
	assert.True(t, IsEffectivelyEmpty(nil))
	assert.True(t, IsEffectivelyEmpty([]model.Rack{model.NewRack("Rack 1", 42)}))
	assert.False(t, IsEffectivelyEmpty(sampleLayout()))
	assert.False(t, IsEffectivelyEmpty([]model.Rack{model.NewRack("A", 42), model.NewRack("B", 42)}))
}

func TestCompareLayouts(t *testing.T) {
	a := sampleLayout()
	b := model.CopyRacks(a)
	b[0].Equipment[0].Label = "Renamed"
	b = append(b, model.NewRack("Rack 2", 24))

	res := CompareLayouts(a, b)
	assert.Len(t, res, 2)
	assert.Equal(t, RackModified, res[0].Change)
	assert.Equal(t, RackAdded, res[1].Change)
	assert.Equal(t, "Rack 2", res[1].Name)
}
