package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RackPlanner/internal/engine"
	"github.com/piwi3910/RackPlanner/internal/model"
)

// Workbook sheet names.
const (
	SheetBOM       = "Bill of Materials"
	SheetUsage     = "Rack Usage"
	SheetEquipment = "Equipment"
)

var (
	bomHeader       = []interface{}{"Label", "Type", "U", "Quantity", "Racks"}
	usageHeader     = []interface{}{"Rack", "Height (U)", "Equipment (U)", "Blanks (U)", "Free (U)", "Items", "Shelf Items", "PDUs", "Utilization"}
	equipmentHeader = []interface{}{"Rack", "Position", "Label", "Type", "U", "Parent", "Notes", "ID"}
)

// ExportBOM writes an Excel workbook with the bill of materials, per-rack
// usage and a flat equipment listing.
func ExportBOM(path string, racks []model.Rack) error {
	if len(racks) == 0 {
		return fmt.Errorf("no racks to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetBOM); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{SheetUsage, SheetEquipment} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	var rows [][]interface{}
	for _, l := range engine.BillOfMaterials(racks) {
		rows = append(rows, []interface{}{l.Label, l.Type, l.U, l.Quantity, strings.Join(l.Racks, ", ")})
	}
	if err := writeSheet(f, SheetBOM, header, bomHeader, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, r := range racks {
		u := engine.RackUsage(r)
		rows = append(rows, []interface{}{r.Name, u.HeightU, u.EquipmentU, u.BlankU, u.FreeU, u.Items, u.ShelfItems, u.PDUs, u.Utilization()})
	}
	if err := writeSheet(f, SheetUsage, header, usageHeader, rows); err != nil {
		return err
	}
	pct, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(SheetUsage, "I2", fmt.Sprintf("I%d", len(racks)+1), pct); err != nil {
		return fmt.Errorf("failed to style %s: %w", SheetUsage, err)
	}

	rows = rows[:0]
	for _, r := range racks {
		for _, it := range r.Equipment {
			switch it.Kind {
			case model.KindStandard:
				pos := slotRange(r.HeightU, it)
				rows = append(rows, []interface{}{r.Name, pos, it.Label, it.Type, it.U, "", it.Notes, it.ID})
				for _, s := range it.ShelfItems {
					rows = append(rows, []interface{}{r.Name, pos, s.Label, s.Type, 0, it.Label, s.Notes, s.ID})
				}
			case model.KindPDU:
				rows = append(rows, []interface{}{r.Name, it.Side.String() + " rail", it.Label, it.Type, it.U, "", it.Notes, it.ID})
			case model.KindShelf:
			}
		}
	}
	if err := writeSheet(f, SheetEquipment, header, equipmentHeader, rows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, style int, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style %s: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		return fmt.Errorf("failed to size %s columns: %w", sheet, err)
	}
	return nil
}
