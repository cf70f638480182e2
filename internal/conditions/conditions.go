// Package conditions loads the well-to-condition mapping file and annotates
// long-format measurement records with experimental condition labels.
package conditions

import (
	"log/slog"

	apperrors "odcli/internal/errors"
	"odcli/internal/plate"
)

// Column names the mapping file must carry, matched case-sensitively.
const (
	wellColumn      = "Well"
	conditionColumn = "Condition"
)

// Map relates well ids to condition labels. Lookup is exact-match on the
// well id string; no case normalization, no fuzzy matching.
type Map map[string]string

// Record is one output row: a measurement plus its optional condition label.
type Record struct {
	plate.MeasurementRecord
	Condition string
}

// Load reads a mapping file (CSV/XLSX/XLS) and builds the condition map.
// The first non-empty row must be a header containing the Well and Condition
// columns; a file without both is rejected. Duplicate well ids keep the last
// occurrence, with a warning.
func Load(path string, logger *slog.Logger) (Map, error) {
	table, err := plate.LoadTable(path)
	if err != nil {
		return nil, err
	}

	headerIdx, wellCol, condCol := findHeader(table)
	if headerIdx < 0 {
		return nil, apperrors.NewMissingMappingColumnsError(path)
	}

	m := make(Map)
	for i, row := range table.Rows[headerIdx+1:] {
		well := cellText(row, wellCol)
		if well == "" {
			continue
		}
		if !plate.IsWellID(well) {
			logger.Warn("mapping row has invalid well id, skipping",
				slog.String("well", well),
				slog.Int("row", headerIdx+i+2))
			continue
		}
		if prev, dup := m[well]; dup {
			logger.Warn("duplicate well in mapping file, last occurrence wins",
				slog.String("well", well),
				slog.String("replaced_condition", prev))
		}
		m[well] = cellText(row, condCol)
	}

	logger.Info("loaded condition mapping",
		slog.String("path", path), slog.Int("wells", len(m)))
	return m, nil
}

// Join annotates records with conditions from the map. Wells missing from
// the map keep their records with an empty condition; mapping entries that
// match no measured well are reported as unused. Both cases are warnings,
// never failures.
func Join(records []plate.MeasurementRecord, m Map, logger *slog.Logger) []Record {
	measured := make(map[string]bool, len(records))
	unmatched := make(map[string]bool)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		measured[r.Well] = true
		cond, ok := m[r.Well]
		if !ok {
			unmatched[r.Well] = true
		}
		out = append(out, Record{MeasurementRecord: r, Condition: cond})
	}

	for _, well := range plate.AllWells() {
		if unmatched[well] {
			logger.Warn("well has no condition mapping",
				slog.String("well", well))
		}
		if _, ok := m[well]; ok && !measured[well] {
			logger.Warn("mapping entry unused, well not present in data",
				slog.String("well", well))
		}
	}
	return out
}

// Bare wraps records without condition labels, for runs with no mapping file.
func Bare(records []plate.MeasurementRecord) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, Record{MeasurementRecord: r})
	}
	return out
}

// findHeader locates the first non-empty row carrying both required columns
// and returns its index and the two column positions.
func findHeader(t *plate.RawTable) (headerIdx, wellCol, condCol int) {
	for i, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		wellCol, condCol = -1, -1
		for j, cell := range row {
			switch {
			case cell.IsText(wellColumn):
				wellCol = j
			case cell.IsText(conditionColumn):
				condCol = j
			}
		}
		if wellCol >= 0 && condCol >= 0 {
			return i, wellCol, condCol
		}
		// The header must be the first row with content.
		return -1, -1, -1
	}
	return -1, -1, -1
}

func cellText(row []plate.Cell, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col].Text
}
