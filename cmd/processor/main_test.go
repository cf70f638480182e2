package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "odcli/internal/errors"
	"odcli/internal/plate"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// legacyCSV renders a single-block legacy export at t=0 with 8x12 values.
func legacyCSV(t *testing.T, dir string) string {
	t.Helper()
	lines := []string{
		"Time [s],0",
		"Temp. [°C],37.0",
		"<>,1,2,3,4,5,6,7,8,9,10,11,12",
	}
	for r := 0; r < 8; r++ {
		fields := []string{string(rune('A' + r))}
		for c := 1; c <= 12; c++ {
			fields = append(fields, fmt.Sprintf("0.%d%02d", r+1, c))
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	path := filepath.Join(dir, "run.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRunLegacyGridWithMapping(t *testing.T) {
	dir := t.TempDir()
	input := legacyCSV(t, dir)
	mapping := filepath.Join(dir, "map.csv")
	require.NoError(t, os.WriteFile(mapping,
		[]byte("Well,Condition\nA1,control\nA2,treated\n"), 0644))
	output := filepath.Join(dir, "out.csv")

	require.NoError(t, run(input, mapping, output, discardLogger()))

	rows := readCSV(t, output)
	require.Len(t, rows, 97) // header + 96 records
	assert.Equal(t, []string{"Well", "Time_s", "Time_h", "OD", "Condition"}, rows[0])
	assert.Equal(t, []string{"A1", "0", "0", "0.101", "control"}, rows[1])
	assert.Equal(t, "treated", rows[2][4])
	assert.Equal(t, "", rows[3][4]) // A3 unmapped, record kept

	// Well-major ordering: A1..A12 then B1.
	assert.Equal(t, "A12", rows[12][0])
	assert.Equal(t, "B1", rows[13][0])
	assert.Equal(t, "H12", rows[96][0])
}

func TestRunWithoutMappingOmitsConditionColumn(t *testing.T) {
	dir := t.TempDir()
	input := legacyCSV(t, dir)
	output := filepath.Join(dir, "out.csv")

	require.NoError(t, run(input, "", output, discardLogger()))

	rows := readCSV(t, output)
	assert.Equal(t, []string{"Well", "Time_s", "Time_h", "OD"}, rows[0])
	require.Len(t, rows, 97)
}

func TestRunMappingWithoutConditionColumnFailsBeforeOutput(t *testing.T) {
	dir := t.TempDir()
	input := legacyCSV(t, dir)
	mapping := filepath.Join(dir, "map.csv")
	require.NoError(t, os.WriteFile(mapping, []byte("Well,Treatment\nA1,x\n"), 0644))
	output := filepath.Join(dir, "out.csv")

	err := run(input, mapping, output, discardLogger())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingMappingColumns))

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no output file may exist on a fatal path")
}

func TestRunUnrecognizedLayoutFailsBeforeOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "junk.csv")
	require.NoError(t, os.WriteFile(input, []byte("a,b,c\n1,2,3\n"), 0644))
	output := filepath.Join(dir, "out.csv")

	err := run(input, "", output, discardLogger())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeUnrecognizedLayout))

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	input := legacyCSV(t, dir)
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")

	require.NoError(t, run(input, "", first, discardLogger()))
	require.NoError(t, run(input, "", second, discardLogger()))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDistinctTimepoints(t *testing.T) {
	records := []plate.MeasurementRecord{
		{Well: "A1", TimeS: 0},
		{Well: "A2", TimeS: 0},
		{Well: "A1", TimeS: 600},
		{Well: "B1", TimeS: 600},
		{Well: "A1", TimeS: 1200},
	}
	assert.Equal(t, 3, distinctTimepoints(records))
	assert.Equal(t, 0, distinctTimepoints(nil))
}
