package interaction

import (
	"math"

	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/scene"
)

// Zoom limits and the scale change per wheel notch.
const (
	MinScale      = 0.1
	MaxScale      = 10.0
	ZoomIntensity = 0.1
	FitMargin     = 0.9
)

// Wheel zooms around a screen point, keeping the world point under it
// fixed.
func (m *Machine) Wheel(pos geometry.Point, deltaY float64) {
	if m.Mode() == ModeEditingRackName || deltaY == 0 {
		return
	}
	v := &m.st.View
	before := v.ToWorld(pos)
	sign := 1.0
	if deltaY < 0 {
		sign = -1
	}
	v.Scale = clampScale(v.Scale * (1 - sign*ZoomIntensity))
	v.Offset = pos.Sub(before.Scale(v.Scale))
	m.redraw()
}

func clampScale(s float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, s))
}

// contentSize is the world size used for zoom presets: every rack in the
// overview, or the active rack alone, with two slots of margin above and
// below.
func (m *Machine) contentSize() geometry.Point {
	st := m.st
	w := float64(model.WorldWidth)
	h := model.DefaultRackHeight
	if st.Multi && len(st.Racks) > 0 {
		n := len(st.Racks)
		w = float64(n*model.WorldWidth + (n-1)*model.RackSpacing)
		h = scene.MaxHeightU(st.Racks)
	} else if r := st.ActiveRack(); r != nil {
		h = r.HeightU
	}
	return geometry.Point{X: w, Y: float64(model.BaseUnitHeight * (h + 4))}
}

// ZoomTo sets the scale and centres the content in a viewport of the
// given screen size.
func (m *Machine) ZoomTo(scale float64, viewport geometry.Point) {
	m.setZoom(clampScale(scale), viewport)
}

// ZoomFit scales the content to fill most of the viewport and centres it.
func (m *Machine) ZoomFit(viewport geometry.Point) {
	c := m.contentSize()
	s := math.Min(viewport.X/c.X, viewport.Y/c.Y) * FitMargin
	m.setZoom(clampScale(s), viewport)
}

func (m *Machine) setZoom(scale float64, viewport geometry.Point) {
	if m.Mode() == ModeEditingRackName {
		m.idle()
	}
	c := m.contentSize()
	v := &m.st.View
	v.Scale = scale
	v.Offset = geometry.Point{
		X: (viewport.X - c.X*scale) / 2,
		Y: (viewport.Y-c.Y*scale)/2 - scene.HeaderOffset*scale,
	}
	m.redraw()
}
