// Package importer loads equipment catalogs from structured files (JSON,
// YAML, TOML) and from spreadsheets (CSV, Excel). Spreadsheet import
// supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/RackPlanner/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Catalog  model.Catalog
	Errors   []string
	Warnings []string
}

// Templates returns the number of imported templates.
func (r ImportResult) Templates() int {
	return r.Catalog.Count()
}

// OK reports whether the import produced templates without errors.
func (r ImportResult) OK() bool {
	return len(r.Errors) == 0 && r.Templates() > 0
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Category    int
	Label       int
	Type        int
	U           int
	Stencil     int
	StencilRear int
	Width       int
	Height      int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"category":     {"category", "group", "section", "cat"},
	"label":        {"label", "name", "description", "desc", "item", "model"},
	"type":         {"type", "kind", "item type"},
	"u":            {"u", "ru", "units", "rack units", "height (u)", "size (u)"},
	"stencil":      {"stencil", "stencil front", "front", "front stencil", "image"},
	"stencil_rear": {"stencil_rear", "stencil rear", "rear", "rear stencil", "rear image"},
	"width":        {"width", "w", "shelf width"},
	"height":       {"height", "h", "shelf height"},
}

// DefaultCategory collects rows that name no category.
const DefaultCategory = "Uncategorized"

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (category, label, type, u, stencil, stencil rear, width, height)
// and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1}
	slots := map[string]*int{
		"category":     &mapping.Category,
		"label":        &mapping.Label,
		"type":         &mapping.Type,
		"u":            &mapping.U,
		"stencil":      &mapping.Stencil,
		"stencil_rear": &mapping.StencilRear,
		"width":        &mapping.Width,
		"height":       &mapping.Height,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias && *slots[role] == -1 {
					*slots[role] = i
					isHeader = true
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{0, 1, 2, 3, 4, 5, 6, 7}, false
	}
	return mapping, true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a template and its category from a row.
// Returns the category, template, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (string, model.Template, string, string) {
	category := getCell(row, mapping.Category)
	if category == "" {
		category = DefaultCategory
	}

	t := model.Template{
		Label:       getCell(row, mapping.Label),
		Type:        strings.ToLower(getCell(row, mapping.Type)),
		Stencil:     getCell(row, mapping.Stencil),
		StencilRear: getCell(row, mapping.StencilRear),
	}
	if t.Label == "" {
		return "", t, fmt.Sprintf("%s: Missing label", rowLabel), ""
	}
	if t.Type == "" {
		return "", t, fmt.Sprintf("%s: Missing type for '%s'", rowLabel, t.Label), ""
	}

	var warning string
	if uStr := getCell(row, mapping.U); uStr != "" {
		u, err := strconv.Atoi(strings.TrimSuffix(strings.ToUpper(uStr), "U"))
		if err != nil {
			return "", t, fmt.Sprintf("%s: Invalid U '%s'", rowLabel, uStr), ""
		}
		t.U = u
	} else if t.Kind() == model.KindStandard {
		warning = fmt.Sprintf("%s: No U given for '%s', defaulting to 1U", rowLabel, t.Label)
		t.U = 1
	}

	if t.Kind() == model.KindShelf {
		wStr, hStr := getCell(row, mapping.Width), getCell(row, mapping.Height)
		w, errW := strconv.ParseFloat(wStr, 64)
		h, errH := strconv.ParseFloat(hStr, 64)
		if errW != nil || errH != nil {
			return "", t, fmt.Sprintf("%s: Shelf item '%s' needs numeric width and height", rowLabel, t.Label), ""
		}
		t.Size = &model.Size{Width: w, Height: h}
	}

	if err := t.Validate(); err != nil {
		return "", t, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}
	return category, t, "", warning
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a catalog from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports a catalog from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports a catalog from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// Categories keep the order in which they first appear.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Label == -1 {
			missing = append(missing, "Label")
		}
		if mapping.Type == -1 {
			missing = append(missing, "Type")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	index := map[string]int{}
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		category, tpl, errMsg, warning := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		ci, ok := index[category]
		if !ok {
			ci = len(result.Catalog.Categories)
			index[category] = ci
			result.Catalog.Categories = append(result.Catalog.Categories, model.Category{Name: category})
		}
		cat := &result.Catalog.Categories[ci]
		cat.Items = append(cat.Items, tpl)
	}

	if result.Templates() == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}
