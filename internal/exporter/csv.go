package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"odcli/internal/conditions"
	apperrors "odcli/internal/errors"
)

var baseHeader = []string{"Well", "Time_s", "Time_h", "OD"}

// WriteLong serializes long-format records to a CSV file. The Condition
// column is appended only when a mapping file was supplied, so unmapped runs
// produce exactly the four base columns.
func WriteLong(path string, records []conditions.Record, withCondition bool) error {
	header := baseHeader
	if withCondition {
		header = append(append([]string{}, baseHeader...), "Condition")
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{
			r.Well,
			formatFloat(r.TimeS),
			formatFloat(r.TimeH),
			formatFloat(r.OD),
		}
		if withCondition {
			row = append(row, r.Condition)
		}
		rows = append(rows, row)
	}

	slog.Info("writing output CSV",
		slog.String("path", path),
		slog.Int("records", len(rows)),
		slog.Bool("with_condition", withCondition))

	return writeCSV(path, header, rows)
}

// writeCSV writes a header and rows to a CSV file, creating the parent
// directory when needed.
func writeCSV(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.NewFileWriteError(path, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewFileWriteError(path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return apperrors.NewFileWriteError(path, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return apperrors.NewFileWriteError(path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewFileWriteError(path, err)
	}
	return nil
}
