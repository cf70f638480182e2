package plate

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// discardLogger silences pipeline warnings in tests.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// tableFromLines builds a RawTable from comma-separated lines, classifying
// cells the way the CSV loader does.
func tableFromLines(lines ...string) *RawTable {
	rows := make([][]Cell, 0, len(lines))
	for _, line := range lines {
		fields := strings.Split(line, ",")
		row := make([]Cell, len(fields))
		for i, f := range fields {
			row[i] = classifyCell(f)
		}
		rows = append(rows, row)
	}
	return &RawTable{Path: "test.csv", Rows: rows}
}

// legacyBlock renders one legacy measurement block: marker rows followed by
// wellRows rows of 12 OD values. odAt gives the value for (row, col).
func legacyBlock(timeS float64, wellRows int) []string {
	lines := []string{
		fmt.Sprintf("Time [s],%v", timeS),
		"Temp. [°C],37.2",
		"<>,1,2,3,4,5,6,7,8,9,10,11,12",
	}
	for r := 0; r < wellRows; r++ {
		fields := []string{string(rune('A' + r))}
		for c := 1; c <= PlateCols; c++ {
			fields = append(fields, fmt.Sprintf("%.4f", odAt(r, c)))
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return lines
}

func odAt(row, col int) float64 {
	return 0.1 + float64(row)*0.012 + float64(col)*0.001
}
