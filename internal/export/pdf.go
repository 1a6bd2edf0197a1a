package export

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/RackPlanner/internal/engine"
	"github.com/piwi3910/RackPlanner/internal/geometry"
	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/piwi3910/RackPlanner/internal/notes"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 10.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	elevationW   = 100.0 // mm reserved for the rack drawing
	tableLeft    = marginLeft + elevationW + 6.0
	mmPerPt      = 25.4 / 72
)

// pdfSurface maps world units onto a region of the current page.
type pdfSurface struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	k      float64 // mm per world unit
	ox, oy float64 // page position of world origin
}

func rgb(c color.Color) (int, int, int) {
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

func (s *pdfSurface) px(x float64) float64 { return s.ox + x*s.k }
func (s *pdfSurface) py(y float64) float64 { return s.oy + y*s.k }

func (s *pdfSurface) FillRect(r geometry.Rect, fill color.Color) {
	s.pdf.SetFillColor(rgb(fill))
	s.pdf.Rect(s.px(r.X), s.py(r.Y), r.W*s.k, r.H*s.k, "F")
}

func (s *pdfSurface) StrokeRect(r geometry.Rect, stroke color.Color, width float64) {
	s.pdf.SetDrawColor(rgb(stroke))
	s.pdf.SetLineWidth(width * s.k)
	s.pdf.Rect(s.px(r.X), s.py(r.Y), r.W*s.k, r.H*s.k, "D")
}

func (s *pdfSurface) Line(a, b geometry.Point, stroke color.Color, width float64) {
	s.pdf.SetDrawColor(rgb(stroke))
	s.pdf.SetLineWidth(width * s.k)
	s.pdf.Line(s.px(a.X), s.py(a.Y), s.px(b.X), s.py(b.Y))
}

func (s *pdfSurface) Text(x, y float64, text string, size float64, c color.Color, align Align) {
	text = s.tr(text)
	sizeMM := size * s.k
	s.pdf.SetFont("Helvetica", "", sizeMM/mmPerPt)
	s.pdf.SetTextColor(rgb(c))
	w := s.pdf.GetStringWidth(text)
	tx := s.px(x)
	switch align {
	case AlignCenter:
		tx -= w / 2
	case AlignRight:
		tx -= w
	}
	s.pdf.Text(tx, s.py(y)+sizeMM*0.35, text)
}

// Measure reports widths in world units for Helvetica at a world size.
func (s *pdfSurface) Measure(text string, size float64) float64 {
	const refPt = 10.0
	s.pdf.SetFont("Helvetica", "", refPt)
	return s.pdf.GetStringWidth(s.tr(text)) / (refPt * mmPerPt) * size
}

// ExportPDF writes an elevation report: one page per rack with the rack
// drawing beside an item table, followed by a summary page.
func ExportPDF(path string, racks []model.Rack, opts Options) error {
	if len(racks) == 0 {
		return fmt.Errorf("no racks to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, r := range racks {
		pdf.AddPage()
		renderRackPage(pdf, tr, r, opts)
	}
	pdf.AddPage()
	renderSummaryPage(pdf, tr, racks)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func renderRackPage(pdf *fpdf.Fpdf, tr func(string) string, rack model.Rack, opts Options) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	view := "Front"
	if opts.Rear {
		view = "Rear"
	}
	title := fmt.Sprintf("%s (%dU, %s)", rack.Name, rack.HeightU, view)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, tr(title), "", 0, "L", false, 0, "")

	u := engine.RackUsage(rack)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Equipment: %dU | Blanks: %dU | Free: %dU | Utilization: %.1f%%",
		u.Items, u.EquipmentU, u.BlankU, u.FreeU, u.Utilization()*100)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Notes go in the table, so the drawing never shows floating boxes.
	drawOpts := Options{Rear: opts.Rear}
	s := &pdfSurface{pdf: pdf, tr: tr}
	ext := RackExtent(rack, drawOpts, s.Measure)
	areaH := pageHeight - drawAreaTop - marginBottom
	s.k = math.Min(elevationW/ext.W, areaH/ext.H)
	s.ox = marginLeft + (elevationW-ext.W*s.k)/2 - ext.X*s.k
	s.oy = drawAreaTop - ext.Y*s.k
	DrawRack(s, rack, geometry.Point{}, drawOpts)

	renderItemTable(pdf, tr, rack, opts.Notes)
}

// itemRow is one line of a rack page's item table.
type itemRow struct {
	pos, label, typ, notes string
}

func itemRows(rack model.Rack) []itemRow {
	var rows []itemRow
	for _, it := range rack.Equipment {
		switch it.Kind {
		case model.KindStandard:
			rows = append(rows, itemRow{"U" + notes.MarkerLabel(rack.HeightU, it), it.Label, it.Type, it.Notes})
			for _, s := range it.ShelfItems {
				rows = append(rows, itemRow{"U" + notes.MarkerLabel(rack.HeightU, it), "  " + s.Label, s.Type, s.Notes})
			}
		case model.KindPDU:
			rows = append(rows, itemRow{it.Side.String(), it.Label, it.Type, it.Notes})
		case model.KindShelf:
		}
	}
	return rows
}

func renderItemTable(pdf *fpdf.Fpdf, tr func(string) string, rack model.Rack, withNotes bool) {
	colWidths := []float64{12, 40, 27}
	headers := []string{"Pos", "Item", "Type"}
	if withNotes {
		colWidths = []float64{10, 30, 18}
		headers = append(headers, "Notes")
		colWidths = append(colWidths, pageWidth-marginRight-tableLeft-58)
	}

	y := drawAreaTop
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetTextColor(0, 0, 0)
	x := tableLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 5, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 5

	pdf.SetFont("Helvetica", "", 7)
	for i, row := range itemRows(rack) {
		cells := []string{row.pos, row.label, row.typ}
		lines := 1
		var noteLines []string
		if withNotes {
			noteLines = pdf.SplitText(tr(strings.ReplaceAll(row.notes, "\n", " ")), colWidths[3]-1)
			lines = max(1, len(noteLines))
		}
		h := float64(lines) * 3.5
		if y+h > pageHeight-marginBottom {
			pdf.SetXY(tableLeft, y)
			pdf.CellFormat(50, 4, "(continued on next page)", "", 0, "L", false, 0, "")
			pdf.AddPage()
			y = marginTop
			pdf.SetFont("Helvetica", "", 7)
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x = tableLeft
		for j, c := range cells {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], h, truncate(pdf, tr(c), colWidths[j]-1), "1", 0, "L", true, 0, "")
			x += colWidths[j]
		}
		if withNotes {
			pdf.SetXY(x, y)
			pdf.MultiCell(colWidths[3], 3.5, strings.Join(noteLines, "\n"), "1", "L", true)
		}
		y += h
	}
}

func truncate(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func renderSummaryPage(pdf *fpdf.Fpdf, tr func(string) string, racks []model.Rack) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	colWidths := []float64{50, 20, 25, 25, 25, 35}
	headers := []string{"Rack", "Height", "Equipment", "Blanks", "Free", "Utilization"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	total := engine.Usage{}
	pdf.SetFont("Helvetica", "", 9)
	for i, r := range racks {
		u := engine.RackUsage(r)
		total.HeightU += u.HeightU
		total.EquipmentU += u.EquipmentU
		total.BlankU += u.BlankU
		total.FreeU += u.FreeU
		row := []string{
			truncate(pdf, tr(r.Name), colWidths[0]-2),
			fmt.Sprintf("%dU", u.HeightU),
			fmt.Sprintf("%dU", u.EquipmentU),
			fmt.Sprintf("%dU", u.BlankU),
			fmt.Sprintf("%dU", u.FreeU),
			fmt.Sprintf("%.1f%%", u.Utilization()*100),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x = marginLeft
		for j, c := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, c, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 6
	}

	y += 6
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(180, 6, fmt.Sprintf("Total: %d racks, %dU of %dU used (%.1f%%)",
		len(racks), total.EquipmentU, total.HeightU, total.Utilization()*100), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by RackPlanner", "", 0, "C", false, 0, "")
}
