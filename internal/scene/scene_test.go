package scene

import (
	"testing"

	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoRacks() []model.Rack {
	a := model.NewRack("A", 42)
	b := model.NewRack("B", 24)
	return []model.Rack{a, b}
}

func TestConstants(t *testing.T) {
	assert.Equal(t, 50.0, float64(RailLeft))
	assert.Equal(t, 42.0, float64(EquipmentLeft))
	assert.Equal(t, 476.0, float64(EquipmentWidth))
	assert.Equal(t, 720, RackPitch)
}

func TestRackOrigin_OverviewBottomAligned(t *testing.T) {
	racks := twoRacks()
	assert.Equal(t, geometry.Point{}, RackOrigin(racks, 0, true))
	assert.Equal(t, geometry.Point{X: 720, Y: 18 * 40}, RackOrigin(racks, 1, true))
	assert.Equal(t, geometry.Point{}, RackOrigin(racks, 1, false))
}

func TestRackAt(t *testing.T) {
	racks := twoRacks()

	hit, ok := RackAt(racks, 0, true, geometry.Point{X: 800, Y: 18*40 + 10})
	require.True(t, ok)
	assert.Equal(t, 1, hit.Index)
	assert.Equal(t, geometry.Point{X: 80, Y: 10}, hit.Local)

	_, ok = RackAt(racks, 0, true, geometry.Point{X: 800, Y: 5})
	assert.False(t, ok, "above the shorter rack")

	_, ok = RackAt(racks, 0, true, geometry.Point{X: 600, Y: 100})
	assert.False(t, ok, "in the gap between racks")

	hit, ok = RackAt(racks, 1, false, geometry.Point{X: 10, Y: 10})
	require.True(t, ok)
	assert.Equal(t, 1, hit.Index, "single view only sees the active rack")
}

func TestItemRects(t *testing.T) {
	srv := model.NewStandardItem("S", "server", 2, 3)
	assert.Equal(t, geometry.Rect{X: 42, Y: 80, W: 476, H: 120}, ItemRect(srv))

	left := model.NewPDU("L", model.SideLeft, 0, 42, true)
	right := model.NewPDU("R", model.SideRight, 10, 20, false)
	assert.Equal(t, geometry.Rect{X: 50, Y: 0, W: 30, H: 1680}, ItemRect(left))
	assert.Equal(t, geometry.Rect{X: 480, Y: 400, W: 30, H: 800}, ItemRect(right))

	shelf := model.NewShelfItem("M", 10, model.Size{Width: 100, Height: 40})
	r := ShelfRect(srv, shelf)
	assert.InDelta(t, 52, r.X, 1e-9)
	assert.InDelta(t, 80-34, r.Y, 1e-9)
	assert.InDelta(t, 85, r.W, 1e-9)
}

func TestHitItem_Precedence(t *testing.T) {
	rack := model.NewRack("R", 42)
	parent := model.NewStandardItem("Shelf", "shelf", 4, 2)
	shelf := model.NewShelfItem("Modem", 0, model.Size{Width: 100, Height: 60})
	parent.ShelfItems = append(parent.ShelfItems, shelf)
	pdu := model.NewPDU("P", model.SideLeft, 0, 42, true)
	rack.Equipment = append(rack.Equipment, parent, pdu)

	ref, ok := HitItem(rack, geometry.Point{X: 60, Y: 4*40 - 10})
	require.True(t, ok)
	assert.Equal(t, ItemRef{ID: shelf.ID, ParentID: parent.ID}, ref, "shelf item beats the PDU under it")

	ref, ok = HitItem(rack, geometry.Point{X: 60, Y: 4*40 + 10})
	require.True(t, ok)
	assert.Equal(t, pdu.ID, ref.ID, "PDU beats the standard item")

	ref, ok = HitItem(rack, geometry.Point{X: 300, Y: 4*40 + 10})
	require.True(t, ok)
	assert.Equal(t, parent.ID, ref.ID)

	_, ok = HitItem(rack, geometry.Point{X: 300, Y: 20 * 40})
	assert.False(t, ok)
}

func TestFindShelfParent(t *testing.T) {
	rack := model.NewRack("R", 42)
	shelf := model.NewStandardItem("Shelf", "shelf", 4, 2)
	monitor := model.NewStandardItem("Mon", model.TypeMonitor, 10, 1)
	rack.Equipment = append(rack.Equipment, shelf, monitor)
	size := model.Size{Width: 100, Height: 40}

	p, ok := FindShelfParent(rack, geometry.Point{X: 300, Y: 170}, size)
	require.True(t, ok)
	assert.Equal(t, shelf.ID, p.ParentID)
	assert.InDelta(t, 300-42-42.5, p.X, 1e-9)

	p, ok = FindShelfParent(rack, geometry.Point{X: 515, Y: 170}, size)
	require.True(t, ok)
	assert.InDelta(t, 476-85, p.X, 1e-9, "clamped to the shelf span")

	_, ok = FindShelfParent(rack, geometry.Point{X: 300, Y: 410}, size)
	assert.False(t, ok, "monitors cannot carry shelf items")

	_, ok = FindShelfParent(rack, geometry.Point{X: 20, Y: 170}, size)
	assert.False(t, ok, "outside the equipment span")
}

func TestItemsInRect(t *testing.T) {
	rack := model.NewRack("R", 42)
	a := model.NewStandardItem("A", "server", 0, 1)
	b := model.NewStandardItem("B", "server", 10, 1)
	pdu := model.NewPDU("P", model.SideRight, 0, 42, true)
	rack.Equipment = append(rack.Equipment, a, b, pdu)

	refs := ItemsInRect(rack, geometry.Point{}, geometry.Rect{X: 100, Y: 0, W: 50, H: 50})
	assert.Equal(t, []ItemRef{{ID: a.ID}}, refs)

	refs = ItemsInRect(rack, geometry.Point{}, geometry.Rect{X: 490, Y: 300, W: 10, H: 10})
	assert.Equal(t, []ItemRef{{ID: pdu.ID}}, refs)
}

func TestHeaderFor(t *testing.T) {
	h := HeaderFor(geometry.Point{X: 720, Y: 80}, 100)
	assert.Equal(t, geometry.Rect{X: 720 + 280 - 50 - 20, Y: 80 - 60 - 13 - 10, W: 140, H: 46}, h.Name)
	assert.Equal(t, geometry.Rect{X: 720 + 520, Y: 80 - 60 - 20, W: 40, H: 40}, h.Delete)
}

func TestSlotAndSide(t *testing.T) {
	assert.Equal(t, 3, SlotAt(130, 2, 42))
	assert.Equal(t, 40, SlotAt(41*40, 2, 42), "clamped to keep the item inside")
	assert.Equal(t, 0, SlotAt(-5, 1, 42))
	assert.Equal(t, model.SideLeft, SideAt(279))
	assert.Equal(t, model.SideRight, SideAt(280))
}

func TestDropIndex(t *testing.T) {
	assert.Equal(t, 0, DropIndex(-500, 3))
	assert.Equal(t, 1, DropIndex(400, 3))
	assert.Equal(t, 3, DropIndex(5000, 3))
}

func TestBoundsRegistry(t *testing.T) {
	b := NewBounds()
	b.SetHeader("r1", RackHeader{Name: geometry.Rect{W: 10, H: 10}})
	_, ok := b.Header("r1")
	assert.True(t, ok)

	key := NoteKey{RackID: "r1", Item: ItemRef{ID: "i1"}}
	b.AddStackedNote(StackedNote{Key: key, Bounds: geometry.Rect{X: 0, Y: 100, W: 560, H: 21}})
	n, ok := b.StackedNoteAt(geometry.Point{X: 10, Y: 110})
	require.True(t, ok)
	assert.Equal(t, key, n.Key)
	assert.Len(t, b.StackedNotesIn(geometry.Rect{X: 0, Y: 0, W: 10, H: 200}), 1)

	b.Reset()
	_, ok = b.Header("r1")
	assert.False(t, ok)
	_, ok = b.StackedNoteAt(geometry.Point{X: 10, Y: 110})
	assert.False(t, ok)
}
