package export

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
)

// basicfont.Face7x13 metrics in pixels.
const (
	faceHeight  = 13.0
	faceAdvance = 7.0
)

// ImageOptions controls raster output.
type ImageOptions struct {
	Options
	Scale  float64 // pixels per world unit, default 1
	Margin float64 // world units around the drawing, default one U
}

func (o ImageOptions) normalized() ImageOptions {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Margin <= 0 {
		o.Margin = model.BaseUnitHeight
	}
	o.ClipConnectors = true
	return o
}

// ggSurface draws through a gg context whose matrix maps world units to
// pixels.
type ggSurface struct {
	dc *gg.Context
}

func newGGSurface(ext geometry.Rect, o ImageOptions) *ggSurface {
	w := int(math.Ceil((ext.W + 2*o.Margin) * o.Scale))
	h := int(math.Ceil((ext.H + 2*o.Margin) * o.Scale))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.SetColor(ColorPaper)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	dc.Scale(o.Scale, o.Scale)
	dc.Translate(o.Margin-ext.X, o.Margin-ext.Y)
	return &ggSurface{dc: dc}
}

func (s *ggSurface) FillRect(r geometry.Rect, fill color.Color) {
	s.dc.SetColor(fill)
	s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.dc.Fill()
}

func (s *ggSurface) StrokeRect(r geometry.Rect, stroke color.Color, width float64) {
	s.dc.SetColor(stroke)
	s.dc.SetLineWidth(width)
	s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.dc.Stroke()
}

func (s *ggSurface) Line(a, b geometry.Point, stroke color.Color, width float64) {
	s.dc.SetColor(stroke)
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	s.dc.Stroke()
}

func (s *ggSurface) Text(x, y float64, text string, size float64, c color.Color, align Align) {
	ax := 0.0
	switch align {
	case AlignCenter:
		ax = 0.5
	case AlignRight:
		ax = 1.0
	}
	k := size / faceHeight
	s.dc.Push()
	s.dc.SetColor(c)
	s.dc.Translate(x, y)
	s.dc.Scale(k, k)
	s.dc.DrawStringAnchored(text, 0, 0, ax, 0.35)
	s.dc.Pop()
}

// Measure scales the bitmap face width to the requested size.
func (s *ggSurface) Measure(text string, size float64) float64 {
	return MeasureBasic(text, size)
}

// MeasureBasic returns the width of text in the fixed 7x13 face scaled to
// size.
func MeasureBasic(text string, size float64) float64 {
	return float64(len([]rune(text))) * faceAdvance * size / faceHeight
}

// RenderOverview rasterizes all racks side by side.
func RenderOverview(racks []model.Rack, o ImageOptions) image.Image {
	o = o.normalized()
	s := newGGSurface(OverviewExtent(racks, o.Options, MeasureBasic), o)
	DrawOverview(s, racks, o.Options)
	return s.dc.Image()
}

// RenderRack rasterizes a single rack.
func RenderRack(rack model.Rack, o ImageOptions) image.Image {
	o = o.normalized()
	s := newGGSurface(RackExtent(rack, o.Options, MeasureBasic), o)
	DrawRack(s, rack, geometry.Point{}, o.Options)
	return s.dc.Image()
}

// ExportPNG writes the overview of all racks to path.
func ExportPNG(path string, racks []model.Rack, o ImageOptions) error {
	if len(racks) == 0 {
		return fmt.Errorf("no racks to export")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := gg.SavePNG(path, RenderOverview(racks, o)); err != nil {
		return fmt.Errorf("failed to write PNG: %w", err)
	}
	return nil
}

// ExportRackPNGs writes one image per rack into dir and returns the paths.
func ExportRackPNGs(dir string, racks []model.Rack, o ImageOptions) ([]string, error) {
	if len(racks) == 0 {
		return nil, fmt.Errorf("no racks to export")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	used := map[string]int{}
	paths := make([]string, 0, len(racks))
	for i, r := range racks {
		name := FileName(r.Name, fmt.Sprintf("rack-%d", i+1))
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}
		p := filepath.Join(dir, name+".png")
		if err := gg.SavePNG(p, RenderRack(r, o)); err != nil {
			return paths, fmt.Errorf("failed to write PNG for %q: %w", r.Name, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// FileName turns a display name into a file name stem, falling back when
// nothing usable remains.
func FileName(name, fallback string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return fallback
	}
	return out
}
