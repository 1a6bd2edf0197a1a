package notes

import (
	"testing"

	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedWidth measures every rune as half the font size.
func fixedWidth(text string, size float64) float64 {
	return float64(len([]rune(text))) * size * 0.5
}

func TestLinesDropsBlank(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Lines("a\n\n  \nb"))
	assert.Nil(t, Lines(" \n"))
}

func TestComputeNoteToTheRight(t *testing.T) {
	item := geometry.Rect{X: 42, Y: 0, W: 476, H: 40}
	m, ok := Compute("abcd\nab", item, model.Offset{X: 112, Y: 0}, fixedWidth)
	require.True(t, ok)

	assert.Equal(t, 14.0, m.FontSize)
	assert.InDelta(t, 7, m.Padding, 1e-9)
	assert.InDelta(t, 16.8, m.LineHeight, 1e-9)
	// widest line 4 runes * 7 = 28, plus padding
	assert.InDelta(t, 42, m.Box.W, 1e-9)
	assert.InDelta(t, 2*16.8-2.8+14, m.Box.H, 1e-9)
	assert.InDelta(t, 518+112, m.Box.X, 1e-9)
	assert.InDelta(t, 20-m.Box.H/2, m.Box.Y, 1e-9)

	assert.Equal(t, AlignLeft, m.Align)
	assert.Equal(t, geometry.Point{X: 518, Y: 20}, m.From)
	assert.InDelta(t, m.Box.X, m.To.X, 1e-9)
	assert.InDelta(t, 20, m.To.Y, 1e-9)
	assert.InDelta(t, 7, m.TextX, 1e-9)
}

func TestComputeNoteToTheLeft(t *testing.T) {
	item := geometry.Rect{X: 42, Y: 40, W: 476, H: 80}
	m, ok := Compute("note", item, model.Offset{X: -700, Y: 30}, fixedWidth)
	require.True(t, ok)

	assert.Equal(t, AlignRight, m.Align)
	assert.Equal(t, geometry.Point{X: 42, Y: 80}, m.From)
	assert.InDelta(t, m.Box.Right(), m.To.X, 1e-9)
	assert.InDelta(t, 110, m.To.Y, 1e-9, "box centre follows the y offset")
	assert.InDelta(t, m.Box.W-m.Padding, m.TextX, 1e-9)
}

func TestComputeEmpty(t *testing.T) {
	_, ok := Compute("  \n", geometry.Rect{W: 10, H: 10}, model.DefaultNoteOffset(), fixedWidth)
	assert.False(t, ok)
}

func TestConnectorClipsToBorders(t *testing.T) {
	item := geometry.Rect{X: 0, Y: 0, W: 10, H: 10}
	box := geometry.Rect{X: 30, Y: 0, W: 10, H: 10}
	from, to, ok := Connector(item, box)
	require.True(t, ok)
	assert.InDelta(t, 10, from.X, 1e-9)
	assert.InDelta(t, 30, to.X, 1e-9)
}

func rackWithNotes() (model.Rack, model.Item, model.Item) {
	rack := model.NewRack("R", 42)
	srv := model.NewStandardItem("Server", "server", 2, 2)
	srv.Notes = "hello"
	shelf := model.NewShelfItem("Modem", 0, model.Size{Width: 100, Height: 40})
	shelf.Notes = "on shelf"
	srv.ShelfItems = append(srv.ShelfItems, shelf)
	rack.Equipment = append(rack.Equipment, srv, model.NewStandardItem("Quiet", "server", 10, 1))
	return rack, srv, shelf
}

func TestLayoutAndHitTest(t *testing.T) {
	rack, srv, shelf := rackWithNotes()
	placed := Layout(rack, fixedWidth, nil)
	require.Len(t, placed, 2)
	assert.Equal(t, scene.ItemRef{ID: srv.ID}, placed[0].Ref)
	assert.Equal(t, scene.ItemRef{ID: shelf.ID, ParentID: srv.ID}, placed[1].Ref)

	hit, ok := HitTest(rack, placed[0].Metrics.Box.Center(), fixedWidth)
	require.True(t, ok)
	assert.Equal(t, srv.ID, hit.Ref.ID)

	_, ok = HitTest(rack, geometry.Point{X: 300, Y: 420}, fixedWidth)
	assert.False(t, ok)
}

func TestLayoutOverride(t *testing.T) {
	rack, srv, _ := rackWithNotes()
	moved := Layout(rack, fixedWidth, func(ref scene.ItemRef) (model.Offset, bool) {
		return model.Offset{X: 200, Y: 50}, ref.ID == srv.ID
	})
	base := Layout(rack, fixedWidth, nil)
	assert.InDelta(t, base[0].Metrics.Box.X+88, moved[0].Metrics.Box.X, 1e-9)
	assert.InDelta(t, base[0].Metrics.Box.Y+50, moved[0].Metrics.Box.Y, 1e-9)
	assert.Equal(t, base[1].Metrics.Box, moved[1].Metrics.Box)
}

func TestInRect(t *testing.T) {
	rack, srv, _ := rackWithNotes()
	placed := Layout(rack, fixedWidth, nil)
	refs := InRect(rack, placed[0].Metrics.Box, fixedWidth)
	assert.Contains(t, refs, scene.ItemRef{ID: srv.ID})
}
