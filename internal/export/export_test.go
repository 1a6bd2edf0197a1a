package export

import (
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/scene"
)

func testLayout() []model.Rack {
	a := model.NewRack("Core A", 12)
	srv := model.NewStandardItem("1U Server", "server", 0, 1)
	srv.Notes = "web-01\nprimary"
	shelf := model.NewStandardItem("2U Shelf", "shelf", 3, 2)
	shelf.ShelfItems = append(shelf.ShelfItems, model.NewShelfItem("Mini PC", 60, model.Size{Width: 120, Height: 40}))
	blank := model.NewStandardItem("1U Blank Panel", model.TypeBlank, 5, 1)
	pdu := model.NewPDU("V-PDU (Full Height)", model.SideRight, 0, 12, true)
	a.Equipment = append(a.Equipment, srv, shelf, blank, pdu)

	b := model.NewRack("Edge B", 6)
	b.Equipment = append(b.Equipment, model.NewStandardItem("2U Server", "server", 4, 2))
	return []model.Rack{a, b}
}

func requireFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(100))
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, hex(0x2196f3), ColorFor("server"))
	assert.Equal(t, ColorDefault, ColorFor("unknown"))
	assert.Equal(t, "#2196f3", HexColor(ColorFor("server")))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "core-a", FileName("Core A", "rack"))
	assert.Equal(t, "rack", FileName("  ", "rack"))
}

func TestRackExtentCoversHeaderAndBody(t *testing.T) {
	racks := testLayout()
	ext := RackExtent(racks[1], Options{}, MeasureBasic)
	assert.Less(t, ext.Y, 0.0)
	assert.GreaterOrEqual(t, ext.Bottom(), float64(6*model.BaseUnitHeight))
	assert.GreaterOrEqual(t, ext.W, float64(model.WorldWidth))

	withNotes := RackExtent(racks[0], Options{Notes: true}, MeasureBasic)
	plain := RackExtent(racks[0], Options{}, MeasureBasic)
	assert.GreaterOrEqual(t, withNotes.W, plain.W)
}

func TestRenderRackSize(t *testing.T) {
	racks := testLayout()
	img := RenderRack(racks[1], ImageOptions{Scale: 0.5})
	ext := RackExtent(racks[1], Options{}, MeasureBasic)
	b := img.Bounds()
	assert.InDelta(t, (ext.W+2*model.BaseUnitHeight)*0.5, float64(b.Dx()), 1)
	assert.InDelta(t, (ext.H+2*model.BaseUnitHeight)*0.5, float64(b.Dy()), 1)
}

func TestExportPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.png")
	require.NoError(t, ExportPNG(path, testLayout(), ImageOptions{Options: Options{Notes: true}}))
	requireFile(t, path)
}

func TestExportRackPNGs(t *testing.T) {
	dir := t.TempDir()
	racks := testLayout()
	racks[1].Name = racks[0].Name

	paths, err := ExportRackPNGs(dir, racks, ImageOptions{})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.NotEqual(t, paths[0], paths[1])
	for _, p := range paths {
		requireFile(t, p)
	}
}

func TestExportPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")
	require.NoError(t, ExportPDF(path, testLayout(), Options{Notes: true}))
	requireFile(t, path)

	rear := filepath.Join(t.TempDir(), "rear.pdf")
	require.NoError(t, ExportPDF(rear, testLayout(), Options{Rear: true}))
	requireFile(t, rear)
}

func TestExportPDFEmpty(t *testing.T) {
	assert.Error(t, ExportPDF(filepath.Join(t.TempDir(), "x.pdf"), nil, Options{}))
}

func TestItemRows(t *testing.T) {
	rows := itemRows(testLayout()[0])
	require.Len(t, rows, 5)
	assert.Equal(t, "U12", rows[0].pos)
	assert.Equal(t, "web-01\nprimary", rows[0].notes)
	assert.Equal(t, "  Mini PC", rows[2].label)
	assert.Equal(t, "right", rows[4].pos)
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(testLayout())
	require.Len(t, labels, 4)

	assert.Equal(t, "1U Server", labels[0].Label)
	assert.Equal(t, "Core A", labels[0].Rack)
	assert.Equal(t, "U12", labels[0].Position)

	assert.Equal(t, "Mini PC", labels[1].Label)
	assert.Equal(t, "2U Shelf", labels[1].Parent)
	assert.Equal(t, "U8-9", labels[1].Position)

	assert.Equal(t, "right rail", labels[2].Position)

	assert.Equal(t, "2U Server", labels[3].Label)
	assert.Equal(t, "U1-2", labels[3].Position)

	data, err := json.Marshal(labels[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rack":"Core A"`)
	assert.NotContains(t, string(data), "parent")
}

func TestExportLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	require.NoError(t, ExportLabels(path, testLayout()))
	requireFile(t, path)
}

func TestExportLabelsNoEquipment(t *testing.T) {
	racks := []model.Rack{model.NewRack("Empty", 42)}
	assert.Error(t, ExportLabels(filepath.Join(t.TempDir(), "labels.pdf"), racks))
}

func TestLayerFor(t *testing.T) {
	assert.Equal(t, "RAILS", layerFor(ColorRail))
	assert.Equal(t, "PDU", layerFor(ColorPDUEdge))
	assert.Equal(t, "NOTES", layerFor(ColorInk))
	assert.Equal(t, "EQUIPMENT", layerFor(ColorFor("server")))
}

func TestExportDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")
	require.NoError(t, ExportDXF(path, testLayout(), Options{}))
	requireFile(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "EQUIPMENT")
	assert.Contains(t, string(data), "Core A")
}

func TestExportBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.xlsx")
	require.NoError(t, ExportBOM(path, testLayout()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetBOM, SheetUsage, SheetEquipment}, f.GetSheetList())

	rows, err := f.GetRows(SheetBOM)
	require.NoError(t, err)
	require.Greater(t, len(rows), 1)
	assert.Equal(t, "Label", rows[0][0])

	name, err := f.GetCellValue(SheetUsage, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Core A", name)
	height, err := f.GetCellValue(SheetUsage, "B3")
	require.NoError(t, err)
	assert.Equal(t, "6", height)

	eq, err := f.GetRows(SheetEquipment)
	require.NoError(t, err)
	assert.Len(t, eq, 7)
}

type lineRecorder struct {
	lines  [][2]geometry.Point
	colors []color.Color
}

func (r *lineRecorder) FillRect(geometry.Rect, color.Color) {}

func (r *lineRecorder) StrokeRect(geometry.Rect, color.Color, float64) {}

func (r *lineRecorder) Text(float64, float64, string, float64, color.Color, Align) {}

func (r *lineRecorder) Measure(s string, size float64) float64 {
	return MeasureBasic(s, size)
}

func (r *lineRecorder) Line(a, b geometry.Point, c color.Color, _ float64) {
	r.lines = append(r.lines, [2]geometry.Point{a, b})
	r.colors = append(r.colors, c)
}

func TestClipConnectorsReroutesNoteLeaders(t *testing.T) {
	rack := model.NewRack("Lab", 12)
	srv := model.NewStandardItem("1U Server", "server", 2, 1)
	srv.Notes = "lab-01"
	srv.NoteOffset = model.Offset{X: 112, Y: 120}
	rack.Equipment = append(rack.Equipment, srv)

	mid := &lineRecorder{}
	DrawRack(mid, rack, geometry.Point{}, Options{Notes: true})
	clipped := &lineRecorder{}
	DrawRack(clipped, rack, geometry.Point{}, Options{Notes: true, ClipConnectors: true})

	require.Equal(t, len(mid.lines), len(clipped.lines))
	assert.NotEqual(t, mid.lines, clipped.lines)
}

func TestDraggedNoteLeavesGhostAtStoredOffset(t *testing.T) {
	rack := model.NewRack("Lab", 12)
	srv := model.NewStandardItem("1U Server", "server", 2, 1)
	srv.Notes = "lab-01"
	rack.Equipment = append(rack.Equipment, srv)
	dragged := model.Offset{X: 160, Y: 40}
	offsets := func(ref scene.ItemRef) (model.Offset, bool) {
		return dragged, ref.ID == srv.ID
	}

	idle := &lineRecorder{}
	DrawRack(idle, rack, geometry.Point{}, Options{Notes: true})
	drag := &lineRecorder{}
	DrawRack(drag, rack, geometry.Point{}, Options{Notes: true, Offsets: offsets})

	require.Len(t, drag.lines, len(idle.lines)+1)
	ghost := len(drag.lines) - 2
	assert.Equal(t, idle.lines[len(idle.lines)-1], drag.lines[ghost])
	assert.Equal(t, ColorGhostInk, drag.colors[ghost])
	assert.Equal(t, ColorInk, drag.colors[ghost+1])
	assert.NotEqual(t, drag.lines[ghost], drag.lines[ghost+1])
}
