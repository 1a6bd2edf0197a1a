package notes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/scene"
)

// Overview notes list metrics in world units.
const (
	StackFontSize   = 11
	StackLineHeight = 13
	StackPadding    = 8
	StackGap        = 80 // between the tallest rack's bottom and the list
)

// Stacked is one entry of a rack's notes list in the overview.
type Stacked struct {
	Ref    scene.ItemRef
	Lines  []string
	Bounds geometry.Rect  // world
	Source geometry.Point // world point on the rack the marker points at
	Marker string         // U position label
	Side   model.Side
}

type stackEntry struct {
	ref   scene.ItemRef
	item  model.Item
	owner model.Item // the item itself, or the shelf item's parent
	key   float64
}

// MarkerLabel returns the U number, counted from the bottom of the rack,
// of the lowest slot an item occupies.
func MarkerLabel(rackHeight int, owner model.Item) string {
	return fmt.Sprintf("%d", rackHeight-(owner.Y+owner.U-1))
}

// StackLayout lays out the notes list under rack i of the overview. Items
// are ordered by slot; shelf items sort just above their parent. Markers
// alternate between the left and right side of the rack.
func StackLayout(racks []model.Rack, i int, measure Measurer) []Stacked {
	rack := racks[i]
	var entries []stackEntry
	for _, it := range rack.Equipment {
		if strings.TrimSpace(it.Notes) != "" {
			entries = append(entries, stackEntry{ref: scene.ItemRef{ID: it.ID}, item: it, owner: it, key: float64(it.Y)})
		}
		for _, s := range it.ShelfItems {
			if strings.TrimSpace(s.Notes) != "" {
				entries = append(entries, stackEntry{
					ref:   scene.ItemRef{ID: s.ID, ParentID: it.ID},
					item:  s,
					owner: it,
					key:   float64(it.Y) - 0.1,
				})
			}
		}
	}
	sort.SliceStable(entries, func(a, b int) bool { return entries[a].key < entries[b].key })

	origin := scene.RackOrigin(racks, i, true)
	width := func(s string) float64 { return measure(s, StackFontSize) }
	y := float64(scene.MaxHeightU(racks)*model.BaseUnitHeight + StackGap)

	out := make([]Stacked, 0, len(entries))
	for idx, e := range entries {
		paragraphs := strings.Split(e.item.Notes, "\n")
		lines := geometry.WrapText(fmt.Sprintf("[%s]: %s ", e.item.Label, paragraphs[0]), model.WorldWidth, width)
		for _, p := range paragraphs[1:] {
			lines = append(lines, geometry.WrapText(p, model.WorldWidth, width)...)
		}
		h := float64(len(lines)*StackLineHeight + StackPadding)

		side := model.SideLeft
		sx := origin.X + scene.EquipmentLeft
		if idx%2 == 1 {
			side = model.SideRight
			sx += scene.EquipmentWidth
		}
		sy := origin.Y + float64((e.owner.Y+e.owner.U-1)*model.BaseUnitHeight) + model.BaseUnitHeight/2

		out = append(out, Stacked{
			Ref:    e.ref,
			Lines:  lines,
			Bounds: geometry.Rect{X: origin.X, Y: y - StackPadding/2, W: model.WorldWidth, H: h},
			Source: geometry.Point{X: sx, Y: sy},
			Marker: MarkerLabel(rack.HeightU, e.owner),
			Side:   side,
		})
		y += h
	}
	return out
}
