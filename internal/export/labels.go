package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/RackPlanner/internal/model"
)

// LabelInfo is the asset record encoded into each label's QR code.
type LabelInfo struct {
	Rack     string `json:"rack"`
	RackID   string `json:"rack_id"`
	ItemID   string `json:"item_id"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Position string `json:"position"`
	Parent   string `json:"parent,omitempty"`
}

// Avery 5160 layout: 3 columns x 10 rows of 66.7 x 25.4 mm on US Letter.
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// slotRange formats the U span of an item counted from the bottom of the
// rack, e.g. "U5" or "U5-6".
func slotRange(rackHeight int, it model.Item) string {
	top := rackHeight - it.Y
	bottom := rackHeight - (it.Y + it.U - 1)
	if it.U <= 1 {
		return fmt.Sprintf("U%d", top)
	}
	return fmt.Sprintf("U%d-%d", bottom, top)
}

// CollectLabelInfos lists one label per physical asset. Blank panels and
// empty shelves are not labelled.
func CollectLabelInfos(racks []model.Rack) []LabelInfo {
	var labels []LabelInfo
	for _, r := range racks {
		for _, it := range r.Equipment {
			switch it.Kind {
			case model.KindStandard:
				pos := slotRange(r.HeightU, it)
				if it.Type != model.TypeBlank && it.Type != "shelf" {
					labels = append(labels, LabelInfo{Rack: r.Name, RackID: r.ID, ItemID: it.ID, Label: it.Label, Type: it.Type, Position: pos})
				}
				for _, s := range it.ShelfItems {
					labels = append(labels, LabelInfo{Rack: r.Name, RackID: r.ID, ItemID: s.ID, Label: s.Label, Type: s.Type, Position: pos, Parent: it.Label})
				}
			case model.KindPDU:
				pos := it.Side.String() + " rail"
				if !it.FullHeight {
					pos += " " + slotRange(r.HeightU, it)
				}
				labels = append(labels, LabelInfo{Rack: r.Name, RackID: r.ID, ItemID: it.ID, Label: it.Label, Type: it.Type, Position: pos})
			case model.KindShelf:
			}
		}
	}
	return labels
}

// ExportLabels writes a sheet of QR-coded asset labels for every item in
// the layout.
func ExportLabels(path string, racks []model.Rack) error {
	labels := CollectLabelInfos(racks)
	if len(labels) == 0 {
		return fmt.Errorf("no equipment to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		pos := i % labelsPerPage
		x := labelMarginLeft + float64(pos%labelCols)*labelWidth
		y := labelMarginTop + float64(pos/labelCols)*labelHeight
		if err := renderLabel(pdf, tr, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Label, err)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write labels: %w", err)
	}
	return nil
}

func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, n int, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	img := fmt.Sprintf("qr_%d_%s", n, info.ItemID)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(img, opts, bytes.NewReader(png))
	pdf.ImageOptions(img, x+labelWidth-qrSize-labelPadding, y+(labelHeight-qrSize)/2, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, tr(info.Label), textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, truncate(pdf, tr(info.Rack+" / "+info.Position), textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, truncate(pdf, tr(info.Type+"  #"+info.ItemID), textW), "", 1, "L", false, 0, "")

	if info.Parent != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(0, 100, 150)
		pdf.CellFormat(textW, 3, truncate(pdf, tr("on "+info.Parent), textW), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}
