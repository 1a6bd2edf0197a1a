package export

import (
	"image/color"
	"strconv"

	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/notes"
	"github.com/piwi3910/RackPlanner/internal/scene"
)

// Align anchors text horizontally at its x coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is a drawing target in world units. Text is vertically
// centred on y.
type Surface interface {
	FillRect(r geometry.Rect, fill color.Color)
	StrokeRect(r geometry.Rect, stroke color.Color, width float64)
	Line(a, b geometry.Point, stroke color.Color, width float64)
	Text(x, y float64, s string, size float64, c color.Color, align Align)
	Measure(s string, size float64) float64
}

// Options selects what an elevation shows.
type Options struct {
	Rear  bool
	Notes bool
	// Offsets overrides stored note offsets, e.g. during a note drag.
	Offsets notes.Offsets
	// ClipConnectors draws note leaders between the facing borders of
	// the item and the note box instead of from the side midpoints.
	ClipConnectors bool
}

// Label and rail text sizes in world units.
var (
	ItemLabelSize = notes.FontSize
	RailLabelSize = min(12, max(8, model.BaseUnitHeight*0.22))
)

const (
	holeSize  = model.BaseUnitHeight * 0.1
	holeInset = model.BaseUnitHeight * 0.15
)

// RackExtent returns the world rectangle a single rack drawing covers,
// including its name row and, when shown, its floating notes.
func RackExtent(rack model.Rack, opts Options, measure notes.Measurer) geometry.Rect {
	ext := geometry.Rect{
		X: 0,
		Y: scene.HeaderOffset - scene.NameFontSize,
		W: model.WorldWidth,
		H: float64(rack.HeightU*model.BaseUnitHeight) - scene.HeaderOffset + scene.NameFontSize,
	}
	for _, it := range rack.Equipment {
		for _, s := range it.ShelfItems {
			ext = union(ext, scene.ShelfRect(it, s))
		}
	}
	if opts.Notes && !opts.Rear {
		for _, p := range notes.Layout(rack, measure, opts.Offsets) {
			ext = union(ext, p.Metrics.Box)
		}
	}
	return ext
}

// OverviewExtent returns the world rectangle of the side-by-side view,
// including the stacked notes lists when shown.
func OverviewExtent(racks []model.Rack, opts Options, measure notes.Measurer) geometry.Rect {
	ext := scene.ContentBounds(racks, true)
	ext.Y -= scene.NameFontSize
	ext.H += scene.NameFontSize
	if opts.Notes {
		for i := range racks {
			for _, s := range notes.StackLayout(racks, i, measure) {
				ext = union(ext, s.Bounds)
			}
		}
	}
	return ext
}

func union(a, b geometry.Rect) geometry.Rect {
	x0, y0 := min(a.X, b.X), min(a.Y, b.Y)
	x1, y1 := max(a.Right(), b.Right()), max(a.Bottom(), b.Bottom())
	return geometry.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// DrawRack draws one rack with its top-left at origin. Floating notes are
// drawn in the front view when enabled.
func DrawRack(s Surface, rack model.Rack, origin geometry.Point, opts Options) {
	drawRack(s, rack, origin, opts, opts.Notes && !opts.Rear)
}

// DrawOverview draws every rack side by side, with each rack's notes
// listed below it.
func DrawOverview(s Surface, racks []model.Rack, opts Options) {
	for i, r := range racks {
		drawRack(s, r, scene.RackOrigin(racks, i, true), opts, false)
	}
	if !opts.Notes {
		return
	}
	for i := range racks {
		for _, st := range notes.StackLayout(racks, i, s.Measure) {
			DrawStackedNote(s, st)
		}
	}
}

func drawRack(s Surface, rack model.Rack, origin geometry.Point, opts Options, floating bool) {
	h := float64(rack.HeightU * model.BaseUnitHeight)
	at := func(r geometry.Rect) geometry.Rect { return r.Translate(origin) }

	s.Text(origin.X+model.WorldWidth/2, origin.Y+scene.HeaderOffset, rack.Name, scene.NameFontSize, ColorInk, AlignCenter)
	s.FillRect(at(geometry.Rect{X: scene.RailLeft, W: scene.RailRight - scene.RailLeft, H: h}), ColorInner)

	if opts.Rear {
		drawItems(s, rack, origin, opts, floating)
		drawPDUs(s, rack, origin)
		drawRails(s, rack, origin)
	} else {
		drawPDUs(s, rack, origin)
		drawRails(s, rack, origin)
		drawItems(s, rack, origin, opts, floating)
	}
	s.StrokeRect(at(geometry.Rect{W: model.WorldWidth, H: h}), ColorLine, 1)
}

func drawRails(s Surface, rack model.Rack, origin geometry.Point) {
	h := float64(rack.HeightU * model.BaseUnitHeight)
	s.FillRect(geometry.Rect{X: origin.X, Y: origin.Y, W: scene.RailLeft, H: h}, ColorRail)
	s.FillRect(geometry.Rect{X: origin.X + scene.RailRight, Y: origin.Y, W: model.WorldWidth - scene.RailRight, H: h}, ColorRail)

	pad := scene.RailLeft * 0.1
	for i := 0; i < rack.HeightU; i++ {
		y := origin.Y + h - float64((i+1)*model.BaseUnitHeight)
		label := strconv.Itoa(i+1) + "U"
		cy := y + model.BaseUnitHeight/2
		s.Text(origin.X+pad, cy, label, RailLabelSize, ColorText, AlignLeft)
		s.Text(origin.X+model.WorldWidth-pad, cy, label, RailLabelSize, ColorText, AlignRight)
		for k := 0; k < 3; k++ {
			hy := y + model.BaseUnitHeight/6.0 + float64(k)*model.BaseUnitHeight/3.0 - holeSize/2
			s.FillRect(geometry.Rect{X: origin.X + scene.RailLeft - holeInset - holeSize/2, Y: hy, W: holeSize, H: holeSize}, ColorHole)
			s.FillRect(geometry.Rect{X: origin.X + scene.RailRight + holeInset - holeSize/2, Y: hy, W: holeSize, H: holeSize}, ColorHole)
		}
	}
}

func drawPDUs(s Surface, rack model.Rack, origin geometry.Point) {
	for _, it := range rack.Equipment {
		if it.Kind != model.KindPDU {
			continue
		}
		r := scene.ItemRect(it).Translate(origin)
		s.FillRect(r, ColorFor(it.Type))
		s.StrokeRect(r, ColorPDUEdge, 1)
	}
}

func drawItems(s Surface, rack model.Rack, origin geometry.Point, opts Options, floating bool) {
	for _, it := range rack.Equipment {
		if it.Kind != model.KindStandard {
			continue
		}
		r := scene.ItemRect(it).Translate(origin)
		s.FillRect(r, ColorFor(it.Type))
		s.StrokeRect(r, ColorInner, 0.5)
		if !opts.Rear && it.Type != "shelf" {
			c := r.Center()
			s.Text(c.X, c.Y, it.Label, ItemLabelSize, ColorLabel, AlignCenter)
		}
		if floating {
			drawFloating(s, it, scene.ItemRef{ID: it.ID}, scene.ItemRect(it), origin, opts)
		}
		for _, sh := range it.ShelfItems {
			sr := scene.ShelfRect(it, sh)
			s.FillRect(sr.Translate(origin), ColorFor(sh.Type))
			if floating {
				drawFloating(s, sh, scene.ItemRef{ID: sh.ID, ParentID: it.ID}, sr, origin, opts)
			}
		}
	}
	if !floating {
		return
	}
	for _, it := range rack.Equipment {
		if it.Kind == model.KindPDU {
			drawFloating(s, it, scene.ItemRef{ID: it.ID}, scene.ItemRect(it), origin, opts)
		}
	}
}

func drawFloating(s Surface, it model.Item, ref scene.ItemRef, local geometry.Rect, origin geometry.Point, opts Options) {
	off := it.NoteOffset
	if opts.Offsets != nil {
		if o, ok := opts.Offsets(ref); ok {
			off = o
			// The note stays faintly at its stored place while dragged.
			drawNote(s, it.Notes, local, it.NoteOffset, origin, opts, ColorGhostInk, ColorGhostPaper)
		}
	}
	drawNote(s, it.Notes, local, off, origin, opts, ColorInk, ColorPaper)
}

func drawNote(s Surface, text string, local geometry.Rect, off model.Offset, origin geometry.Point, opts Options, ink, paper color.Color) {
	m, ok := notes.Compute(text, local, off, s.Measure)
	if !ok {
		return
	}
	from, to := m.From, m.To
	if opts.ClipConnectors {
		if a, b, ok := notes.Connector(local, m.Box); ok {
			from, to = a, b
		}
	}
	box := m.Box.Translate(origin)
	s.Line(from.Add(origin), to.Add(origin), ink, 1)
	s.FillRect(box, paper)
	s.StrokeRect(box, ink, 1)
	align := AlignLeft
	if m.Align == notes.AlignRight {
		align = AlignRight
	}
	for i, l := range m.Lines {
		y := box.Y + m.Padding + float64(i)*m.LineHeight + m.FontSize/2
		s.Text(box.X+m.TextX, y, l, m.FontSize, ink, align)
	}
}

// DrawStackedNote draws one entry of an overview notes list with its
// marker and leader line.
func DrawStackedNote(s Surface, st notes.Stacked) {
	b := st.Bounds
	mx := b.X - notes.StackPadding
	align := AlignRight
	if st.Side == model.SideRight {
		mx = b.Right() + notes.StackPadding
		align = AlignLeft
	}
	s.Line(st.Source, geometry.Point{X: mx, Y: b.Y + b.H/2}, ColorLine, 0.5)
	s.Text(mx, b.Y+b.H/2, "U"+st.Marker, notes.StackFontSize, ColorInk, align)
	for i, l := range st.Lines {
		y := b.Y + notes.StackPadding/2 + float64(i)*notes.StackLineHeight + notes.StackLineHeight/2
		s.Text(b.X, y, l, notes.StackFontSize, ColorInk, AlignLeft)
	}
}
