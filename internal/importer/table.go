package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ShapeNest/internal/model"
)

// ImportResult holds the shapes read from a shape library file.
type ImportResult struct {
	Shapes   []model.Shape
	Errors   []string
	Warnings []string
}

// ColumnMapping maps column roles to their indices; -1 means absent.
type ColumnMapping struct {
	Label    int
	Moves    int
	Quantity int
}

// headerAliases lists accepted header names per column role (lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "shape", "id", "part"},
	"moves":    {"moves", "path", "sequence", "outline", "steps"},
	"quantity": {"quantity", "qty", "count", "copies", "pcs"},
}

// DetectCSVDelimiter picks the delimiter among comma, semicolon, tab and pipe
// that splits the most lines into the same number of columns as the first.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		records, err := readCSV(bytes.NewReader(data), delim)
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		width := len(records[0])
		consistent := 0
		for _, rec := range records {
			if len(rec) == width {
				consistent++
			}
		}
		if score := consistent*10 + width; score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

// DetectColumns matches a header row against the known aliases. Without a
// recognizable header it returns the positional mapping label, moves, quantity.
func DetectColumns(row []string) (ColumnMapping, bool) {
	m := ColumnMapping{Label: -1, Moves: -1, Quantity: -1}
	found := false
	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if name != alias {
					continue
				}
				found = true
				switch role {
				case "label":
					if m.Label < 0 {
						m.Label = i
					}
				case "moves":
					if m.Moves < 0 {
						m.Moves = i
					}
				case "quantity":
					if m.Quantity < 0 {
						m.Quantity = i
					}
				}
			}
		}
	}
	if !found {
		return ColumnMapping{Label: 0, Moves: 1, Quantity: 2}, false
	}
	return m, true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRow turns one table row into copies of a shape. It returns the
// shapes, an error message and a warning message.
func parseRow(row []string, m ColumnMapping, rowLabel string, index int) ([]model.Shape, string, string) {
	label := getCell(row, m.Label)
	if label == "" {
		label = fmt.Sprintf("Shape %d", index+1)
	}

	movesStr := getCell(row, m.Moves)
	if movesStr == "" {
		return nil, fmt.Sprintf("%s: Missing moves", rowLabel), ""
	}
	moves, err := ParseMoves(movesStr)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid moves '%s': %v", rowLabel, movesStr, err), ""
	}

	qty := 1
	var warning string
	if qtyStr := getCell(row, m.Quantity); qtyStr != "" {
		n, err := strconv.Atoi(qtyStr)
		if err != nil || n <= 0 {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		qty = n
	} else if m.Quantity >= 0 {
		warning = fmt.Sprintf("%s: Missing quantity, defaulting to 1", rowLabel)
	}

	shapes := make([]model.Shape, 0, qty)
	for i := 0; i < qty; i++ {
		s := model.NewShape(label, moves)
		if err := s.Validate(); err != nil {
			return nil, fmt.Sprintf("%s: %v", rowLabel, err), ""
		}
		shapes = append(shapes, s)
	}
	return shapes, "", warning
}

// ImportCSV imports a shape library from a CSV file with any of the
// supported delimiters.
func ImportCSV(path string) ImportResult {
	var result ImportResult

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delim := DetectCSVDelimiter(data)
	var warnings []string
	if delim != ',' {
		name := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delim]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", name))
	}
	return ImportCSVFromReader(bytes.NewReader(data), delim, warnings...)
}

// ImportCSVFromReader imports a shape library from CSV data with a known delimiter.
func ImportCSVFromReader(r io.Reader, delim rune, warnings ...string) ImportResult {
	records, err := readCSV(r, delim)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", warnings)
}

func readCSV(r io.Reader, delim rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

// ImportExcel imports a shape library from the first sheet of a workbook.
func ImportExcel(path string) ImportResult {
	var result ImportResult

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

func importFromRows(rows [][]string, rowPrefix string, warnings []string) ImportResult {
	result := ImportResult{Warnings: warnings}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
		if mapping.Moves < 0 {
			result.Errors = append(result.Errors, "Required column not found in header: Moves")
			return result
		}
	} else if _, err := ParseMoves(getCell(rows[0], mapping.Moves)); err != nil {
		// Unrecognized header text; keep the positional mapping.
		start = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := start; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		shapes, errMsg, warning := parseRow(rows[i], mapping, rowLabel, len(result.Shapes))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Shapes = append(result.Shapes, shapes...)
	}
	return result
}

// ImportShapes dispatches on the file extension: .csv, .txt, .xlsx, .xls or .dxf.
func ImportShapes(path string, dxfUnit float64) ImportResult {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xls":
		return ImportExcel(path)
	case ".dxf":
		return ImportDXF(path, dxfUnit)
	case ".csv", ".txt", ".tsv":
		return ImportCSV(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported shape file type %q", ext)}}
	}
}
