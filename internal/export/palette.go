// Package export renders rack layouts to files: PDF elevation reports,
// PNG images, DXF drawings, Excel bills of materials and QR-coded asset
// labels.
package export

import (
	"fmt"
	"image/color"

	"github.com/piwi3910/RackPlanner/internal/model"
)

// typeColors is the fill used for items without a stencil image.
var typeColors = map[string]color.RGBA{
	"server":            hex(0x2196f3),
	model.TypeShelfItem: hex(0x4caf50),
	"render":            hex(0x3f51b5),
	"switch":            hex(0x9c27b0),
	"ups":               hex(0xff5722),
	model.TypeBlank:     hex(0x90a4ae),
	"storage":           hex(0xff9800),
	"workstation":       hex(0x795548),
	"kvm":               hex(0x009688),
	"shelf":             hex(0xbdbdbd),
	model.TypeMonitor:   hex(0x4caf50),
	model.TypeVPDU:      hex(0x333333),
}

// Rack furniture colors.
var (
	ColorDefault = hex(0xcccccc)
	ColorRail    = hex(0x3a3f44)
	ColorInner   = hex(0x1e2226)
	ColorText    = hex(0xe8e8e8)
	ColorLine    = hex(0x555b61)
	ColorHole    = hex(0x15181b)
	ColorPDUEdge = hex(0x444444)
	ColorLabel   = hex(0xffffff)
	ColorPaper   = hex(0xffffff)
	ColorInk     = hex(0x202020)
)

// Half-opacity note colors for a note left behind by a drag.
var (
	ColorGhostInk   = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0x80}
	ColorGhostPaper = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}
)

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// ColorFor returns the fill color for an item type.
func ColorFor(typ string) color.RGBA {
	if c, ok := typeColors[typ]; ok {
		return c
	}
	return ColorDefault
}

// HexColor formats c as #rrggbb.
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
