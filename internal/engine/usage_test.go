package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RackPlanner/internal/model"
)

func TestRackUsage(t *testing.T) {
	rack := model.NewRack("R", 12)
	srv := model.NewStandardItem("2U Server", "server", 0, 2)
	srv.ShelfItems = append(srv.ShelfItems, model.NewShelfItem("Modem", 0, model.Size{Width: 90, Height: 60}))
	rack.Equipment = append(rack.Equipment,
		srv,
		model.NewStandardItem("1U Switch", "switch", 4, 1),
		NewBlank(5, 2),
		model.NewPDU("V-PDU", model.SideLeft, 0, 12, true),
	)

	u := RackUsage(rack)
	assert.Equal(t, 3, u.EquipmentU)
	assert.Equal(t, 2, u.BlankU)
	assert.Equal(t, 7, u.FreeU)
	assert.Equal(t, 2, u.Items)
	assert.Equal(t, 1, u.ShelfItems)
	assert.Equal(t, 1, u.PDUs)
	assert.InDelta(t, 0.25, u.Utilization(), 1e-9)

	assert.Zero(t, Usage{}.Utilization())
}

func TestBillOfMaterials(t *testing.T) {
	a := model.NewRack("A", 42)
	a.Equipment = append(a.Equipment,
		model.NewStandardItem("1U Server", "server", 0, 1),
		model.NewStandardItem("1U Server", "server", 1, 1),
		model.NewStandardItem("1U Switch", "switch", 2, 1),
	)
	b := model.NewRack("B", 42)
	b.Equipment = append(b.Equipment, model.NewStandardItem("1U Server", "server", 0, 1))

	lines := BillOfMaterials([]model.Rack{a, b})
	require.Len(t, lines, 2)
	assert.Equal(t, "1U Server", lines[0].Label)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, []string{"A", "B"}, lines[0].Racks)
	assert.Equal(t, "1U Switch", lines[1].Label)
	assert.Equal(t, []string{"A"}, lines[1].Racks)
}
