package plate

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "odcli/internal/errors"
)

// RawTable is the verbatim cell grid read from one source file (or one sheet
// of a workbook). It is discarded after extraction.
type RawTable struct {
	Path  string
	Sheet string // empty for CSV sources
	Rows  [][]Cell
}

// LoadTable reads a tabular file into a RawTable, dispatching on the file
// extension. For workbooks only the first sheet is read; plate-reader inputs
// that may carry their data on a later sheet go through LoadWorkbook instead.
func LoadTable(path string) (*RawTable, error) {
	tables, err := LoadWorkbook(path)
	if err != nil {
		return nil, err
	}
	return tables[0], nil
}

// LoadWorkbook reads every sheet of a workbook into RawTables, in sheet
// order. A CSV file yields a single table. The returned slice is never empty
// on success.
func LoadWorkbook(path string) ([]*RawTable, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		t, err := loadCSV(path)
		if err != nil {
			return nil, err
		}
		return []*RawTable{t}, nil
	case ".xlsx", ".xls":
		return loadExcel(path)
	default:
		return nil, apperrors.NewUnsupportedFormatError(path, ext)
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func loadCSV(path string) (*RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewFileReadError(path, err)
	}
	// Plate readers export with a UTF-8 BOM for Excel compatibility.
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // rows are ragged by design

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewFileReadError(path, err)
	}

	table := &RawTable{Path: path, Rows: make([][]Cell, 0, len(records))}
	for _, record := range records {
		row := make([]Cell, len(record))
		for i, field := range record {
			row[i] = classifyCell(field)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func loadExcel(path string) ([]*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewFileReadError(path, err)
	}
	defer f.Close()

	var tables []*RawTable
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		table := &RawTable{Path: path, Sheet: sheet, Rows: make([][]Cell, 0, len(rows))}
		for _, record := range rows {
			row := make([]Cell, len(record))
			for i, field := range record {
				row[i] = classifyCell(field)
			}
			table.Rows = append(table.Rows, row)
		}
		tables = append(tables, table)
	}
	if len(tables) == 0 {
		return nil, apperrors.NewFileReadError(path, nil).WithContext("reason", "workbook has no readable sheets")
	}
	return tables, nil
}
