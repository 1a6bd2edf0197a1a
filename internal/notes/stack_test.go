package notes

import (
	"testing"

	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkerLabel(t *testing.T) {
	it := model.NewStandardItem("S", "server", 0, 2)
	assert.Equal(t, "41", MarkerLabel(42, it))
	it.Y = 40
	assert.Equal(t, "1", MarkerLabel(42, it))
}

func TestStackLayout(t *testing.T) {
	rack, srv, shelf := rackWithNotes()
	low := model.NewStandardItem("Low", "server", 30, 1)
	low.Notes = "first\nsecond"
	rack.Equipment = append([]model.Item{low}, rack.Equipment...)
	racks := []model.Rack{rack, model.NewRack("Short", 24)}

	stack := StackLayout(racks, 0, fixedWidth)
	require.Len(t, stack, 3)

	// shelf item sorts just above its parent, both above the low item
	assert.Equal(t, shelf.ID, stack[0].Ref.ID)
	assert.Equal(t, srv.ID, stack[1].Ref.ID)
	assert.Equal(t, low.ID, stack[2].Ref.ID)

	assert.Equal(t, []string{"[Modem]: on shelf "}, stack[0].Lines)
	assert.Equal(t, []string{"[Low]: first ", "second"}, stack[2].Lines)

	top := float64(42*40 + 80)
	assert.InDelta(t, top-4, stack[0].Bounds.Y, 1e-9)
	assert.InDelta(t, 13+8, stack[0].Bounds.H, 1e-9)
	assert.InDelta(t, stack[0].Bounds.Bottom(), stack[1].Bounds.Y, 1e-9)
	assert.InDelta(t, 2*13+8, stack[2].Bounds.H, 1e-9)

	assert.Equal(t, model.SideLeft, stack[0].Side)
	assert.Equal(t, model.SideRight, stack[1].Side)
	assert.Equal(t, "39", stack[0].Marker, "shelf items use the parent's position")
	assert.Equal(t, "12", stack[2].Marker)
	assert.InDelta(t, 42, stack[0].Source.X, 1e-9)
	assert.InDelta(t, 42+476, stack[1].Source.X, 1e-9)
	assert.InDelta(t, 3*40+20, stack[1].Source.Y, 1e-9)
}

func TestStackLayoutOffsetsShorterRack(t *testing.T) {
	short := model.NewRack("Short", 24)
	it := model.NewStandardItem("S", "server", 0, 1)
	it.Notes = "n"
	short.Equipment = append(short.Equipment, it)
	racks := []model.Rack{model.NewRack("Tall", 42), short}

	stack := StackLayout(racks, 1, fixedWidth)
	require.Len(t, stack, 1)
	assert.InDelta(t, 720, stack[0].Bounds.X, 1e-9)
	assert.InDelta(t, 18*40+20, stack[0].Source.Y, 1e-9)
	assert.InDelta(t, 42*40+80-4, stack[0].Bounds.Y, 1e-9)
}
