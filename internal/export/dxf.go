package export

import (
	"fmt"
	"image/color"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
)

// DXF layers, with their AutoCAD colour index.
var dxfLayers = []struct {
	name  string
	color dxfcolor.ColorNumber
}{
	{"RACK", dxfcolor.ColorNumber(8)},
	{"RAILS", dxfcolor.ColorNumber(9)},
	{"EQUIPMENT", dxfcolor.ColorNumber(5)},
	{"PDU", dxfcolor.ColorNumber(1)},
	{"NOTES", dxfcolor.ColorNumber(2)},
	{"TEXT", dxfcolor.ColorNumber(7)},
}

// dxfSurface writes outlines into a drawing. DXF has Y pointing up, so
// world Y is negated. Fills become closed outlines.
type dxfSurface struct {
	d     *drawing.Drawing
	layer string
	err   error
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func layerFor(c color.Color) string {
	switch {
	case sameColor(c, ColorRail), sameColor(c, ColorHole), sameColor(c, ColorText):
		return "RAILS"
	case sameColor(c, ColorInner), sameColor(c, ColorLine):
		return "RACK"
	case sameColor(c, ColorPDUEdge), sameColor(c, ColorFor(model.TypeVPDU)):
		return "PDU"
	case sameColor(c, ColorInk), sameColor(c, ColorPaper):
		return "NOTES"
	}
	return "EQUIPMENT"
}

func (s *dxfSurface) use(layer string) {
	if s.err != nil || s.layer == layer {
		return
	}
	s.err = s.d.ChangeLayer(layer)
	s.layer = layer
}

func (s *dxfSurface) line(a, b geometry.Point) {
	if s.err != nil {
		return
	}
	_, s.err = s.d.Line(a.X, -a.Y, 0, b.X, -b.Y, 0)
}

func (s *dxfSurface) outline(r geometry.Rect) {
	for _, e := range r.Edges() {
		s.line(e[0], e[1])
	}
}

func (s *dxfSurface) FillRect(r geometry.Rect, fill color.Color) {
	s.use(layerFor(fill))
	s.outline(r)
}

func (s *dxfSurface) StrokeRect(r geometry.Rect, stroke color.Color, _ float64) {
	s.use(layerFor(stroke))
	s.outline(r)
}

func (s *dxfSurface) Line(a, b geometry.Point, stroke color.Color, _ float64) {
	s.use(layerFor(stroke))
	s.line(a, b)
}

func (s *dxfSurface) Text(x, y float64, text string, size float64, _ color.Color, align Align) {
	if text == "" {
		return
	}
	s.use("TEXT")
	if s.err != nil {
		return
	}
	switch align {
	case AlignCenter:
		x -= s.Measure(text, size) / 2
	case AlignRight:
		x -= s.Measure(text, size)
	}
	_, s.err = s.d.Text(text, x, -(y + size*0.35), 0, size*0.7)
}

func (s *dxfSurface) Measure(text string, size float64) float64 {
	return MeasureBasic(text, size)
}

// ExportDXF writes the side-by-side elevation as a 2D DXF drawing, one
// world unit per drawing unit.
func ExportDXF(path string, racks []model.Rack, opts Options) error {
	if len(racks) == 0 {
		return fmt.Errorf("no racks to export")
	}

	d := dxf.NewDrawing()
	for _, l := range dxfLayers {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	s := &dxfSurface{d: d}
	opts.ClipConnectors = true
	if len(racks) == 1 {
		DrawRack(s, racks[0], geometry.Point{}, opts)
	} else {
		DrawOverview(s, racks, opts)
	}
	if s.err != nil {
		return fmt.Errorf("failed to build DXF: %w", s.err)
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}
