package plate

import (
	"fmt"
	"log/slog"

	apperrors "odcli/internal/errors"
)

// Sample is one optical-density reading for a well at a point in time.
type Sample struct {
	TimeS float64 // seconds since the start of the run
	OD    float64
}

// Plate accumulates the extracted samples of one run, keyed by well id.
// Samples within a well stay in extraction order, which is chronological for
// both known layouts.
type Plate struct {
	samples map[string][]Sample
}

// NewPlate returns an empty plate.
func NewPlate() *Plate {
	return &Plate{samples: make(map[string][]Sample)}
}

// Add appends a sample to the given well's series.
func (p *Plate) Add(well string, s Sample) {
	p.samples[well] = append(p.samples[well], s)
}

// Samples returns the ordered series for a well, nil when the well is absent.
func (p *Plate) Samples(well string) []Sample {
	return p.samples[well]
}

// Wells returns the wells present on the plate in row-major order (A1..H12).
func (p *Plate) Wells() []string {
	var present []string
	for _, well := range AllWells() {
		if len(p.samples[well]) > 0 {
			present = append(present, well)
		}
	}
	return present
}

// Len returns the total number of samples across all wells.
func (p *Plate) Len() int {
	n := 0
	for _, s := range p.samples {
		n += len(s)
	}
	return n
}

// Read loads a plate-reader export, picks the first sheet with a
// recognizable layout, and extracts every sample from it.
func Read(path string, logger *slog.Logger) (*Plate, Layout, error) {
	tables, err := LoadWorkbook(path)
	if err != nil {
		return nil, LayoutUnknown, err
	}
	for _, table := range tables {
		layout := DetectLayout(table)
		if layout == LayoutUnknown {
			if table.Sheet != "" {
				logger.Debug("no plate data on sheet, skipping",
					slog.String("sheet", table.Sheet))
			}
			continue
		}
		logger.Info("detected plate layout",
			slog.String("layout", layout.String()),
			slog.String("sheet", table.Sheet))
		p, err := Extract(table, layout, logger)
		if err != nil {
			return nil, layout, err
		}
		return p, layout, nil
	}
	return nil, LayoutUnknown, apperrors.NewUnrecognizedLayoutError(path)
}

// Extract runs the layout-specific extraction over a classified table.
func Extract(t *RawTable, layout Layout, logger *slog.Logger) (*Plate, error) {
	switch layout {
	case LegacyGrid:
		return extractLegacyGrid(t, logger)
	case ColumnarCycle:
		return extractColumnarCycle(t, logger)
	default:
		return nil, apperrors.NewUnrecognizedLayoutError(t.Path)
	}
}

// extractLegacyGrid walks the repeating blocks of the legacy export: a
// "Time [s]" marker row, then (after temperature and header rows) 8 well
// rows A-H of 12 OD cells each. Incomplete blocks are reported and their
// complete well rows kept.
func extractLegacyGrid(t *RawTable, logger *slog.Logger) (*Plate, error) {
	p := NewPlate()
	rows := t.Rows
	blocks := 0

	for i := 0; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || !row[0].IsText(timeMarker) {
			continue
		}
		if len(row) < 2 || row[1].Kind != CellNumber {
			logger.Warn("time marker row has no numeric time value, skipping block",
				slog.Int("row", i+1))
			continue
		}
		timeS := row[1].Number

		// Skip past the temperature row and the <> column-header row to the
		// first well row, stopping early at the next block's marker.
		j := i + 1
		for j < len(rows) {
			r := rows[j]
			if len(r) > 0 && r[0].Kind == CellText &&
				(r[0].Text == timeMarker || isRowLetter(r[0].Text)) {
				break
			}
			j++
		}
		if j >= len(rows) || !((rows[j][0].Kind == CellText) && isRowLetter(rows[j][0].Text)) {
			logger.Warn("no well rows follow time marker, skipping block",
				slog.Float64("time_s", timeS), slog.Int("row", i+1))
			continue
		}

		wellRows := 0
		shortRows := 0
		for ; j < len(rows) && wellRows < PlateRows; j++ {
			r := rows[j]
			if len(r) == 0 || r[0].Kind != CellText || !isRowLetter(r[0].Text) {
				break
			}
			letter := r[0].Text
			numeric := 0
			for col := 1; col <= PlateCols; col++ {
				well := fmt.Sprintf("%s%d", letter, col)
				if col >= len(r) || r[col].Kind == CellEmpty {
					logger.Warn("skipping missing OD value",
						slog.String("well", well), slog.Float64("time_s", timeS))
					continue
				}
				cell := r[col]
				if cell.Kind != CellNumber {
					logger.Warn("skipping non-numeric OD value",
						slog.String("well", well),
						slog.Float64("time_s", timeS),
						slog.String("value", cell.Text))
					continue
				}
				p.Add(well, Sample{TimeS: timeS, OD: cell.Number})
				numeric++
			}
			if numeric < PlateCols {
				shortRows++
			}
			wellRows++
		}

		if wellRows < PlateRows || shortRows > 0 {
			blockErr := apperrors.NewMalformedBlockError(fmt.Sprintf(
				"block at t=%vs has %d of %d well rows (%d with missing values)",
				timeS, wellRows, PlateRows, shortRows))
			logger.Warn("malformed measurement block, keeping partial data",
				slog.String("error", blockErr.Error()))
		}
		blocks++
		i = j - 1
	}

	if p.Len() == 0 {
		return nil, apperrors.NewNoDataExtractedError(t.Path)
	}
	logger.Info("legacy grid extraction complete",
		slog.Int("blocks", blocks), slog.Int("samples", p.Len()))
	return p, nil
}

// extractColumnarCycle reads the row-per-cycle export: one header row mapping
// well ids to columns, then one data row per measurement cycle. The first
// data row whose time cell is not numeric ends the scan (footer rows).
func extractColumnarCycle(t *RawTable, logger *slog.Logger) (*Plate, error) {
	headerIdx := -1
	for i, row := range t.Rows {
		if hasText(row, timeMarker) && hasText(row, cycleMarker) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, apperrors.NewMissingRequiredColumnError(t.Path, timeMarker)
	}

	type wellColumn struct {
		col  int
		well string
	}
	timeCol := -1
	var wellCols []wellColumn
	for i, cell := range t.Rows[headerIdx] {
		switch {
		case cell.IsText(timeMarker):
			timeCol = i
		case cell.Kind == CellText && IsWellID(cell.Text):
			wellCols = append(wellCols, wellColumn{col: i, well: cell.Text})
		}
	}
	if timeCol < 0 {
		return nil, apperrors.NewMissingRequiredColumnError(t.Path, timeMarker)
	}
	if len(wellCols) == 0 {
		return nil, apperrors.NewMissingRequiredColumnError(t.Path, "A1..H12")
	}

	p := NewPlate()
	cycles := 0
	for _, row := range t.Rows[headerIdx+1:] {
		if timeCol >= len(row) || row[timeCol].Kind != CellNumber {
			break
		}
		timeS := row[timeCol].Number
		for _, wc := range wellCols {
			if wc.col >= len(row) || row[wc.col].Kind == CellEmpty {
				logger.Warn("skipping missing OD value",
					slog.String("well", wc.well), slog.Float64("time_s", timeS))
				continue
			}
			cell := row[wc.col]
			if cell.Kind != CellNumber {
				logger.Warn("skipping non-numeric OD value",
					slog.String("well", wc.well),
					slog.Float64("time_s", timeS),
					slog.String("value", cell.Text))
				continue
			}
			p.Add(wc.well, Sample{TimeS: timeS, OD: cell.Number})
		}
		cycles++
	}

	if p.Len() == 0 {
		return nil, apperrors.NewNoDataExtractedError(t.Path)
	}
	logger.Info("columnar cycle extraction complete",
		slog.Int("cycles", cycles),
		slog.Int("well_columns", len(wellCols)),
		slog.Int("samples", p.Len()))
	return p, nil
}
