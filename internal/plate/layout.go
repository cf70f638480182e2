package plate

// Marker texts that anchor layout detection and extraction.
const (
	timeMarker  = "Time [s]"
	cycleMarker = "Cycle Nr."
	tempMarker  = "Temp. [°C]"
)

// Layout identifies which of the known plate-reader export layouts a raw
// table matches.
type Layout int

const (
	// LayoutUnknown means neither known layout matched.
	LayoutUnknown Layout = iota
	// LegacyGrid is the block-per-timepoint export: each measurement cycle
	// is a "Time [s]" marker row followed by an 8x12 grid of OD values.
	LegacyGrid
	// ColumnarCycle is the row-per-cycle export: a single header row with
	// "Cycle Nr.", "Time [s]", "Temp. [°C]" and one column per well.
	ColumnarCycle
)

func (l Layout) String() string {
	switch l {
	case LegacyGrid:
		return "LegacyGrid"
	case ColumnarCycle:
		return "ColumnarCycle"
	default:
		return "Unknown"
	}
}

// DetectLayout classifies a raw table against the known layouts. It is a pure
// function over the grid; extraction never re-detects.
//
// A row whose first cell is "Time [s]" (the rest being that cycle's single
// time value) marks LegacyGrid. A row carrying "Time [s]" next to "Cycle Nr."
// and at least one well-id column header marks ColumnarCycle.
func DetectLayout(t *RawTable) Layout {
	for _, row := range t.Rows {
		timeIdx := -1
		for i, cell := range row {
			if cell.IsText(timeMarker) {
				timeIdx = i
				break
			}
		}
		if timeIdx < 0 {
			continue
		}
		if hasText(row, cycleMarker) && countWellHeaders(row) > 0 {
			return ColumnarCycle
		}
		if timeIdx == 0 {
			return LegacyGrid
		}
	}
	return LayoutUnknown
}

func hasText(row []Cell, s string) bool {
	for _, cell := range row {
		if cell.IsText(s) {
			return true
		}
	}
	return false
}

func countWellHeaders(row []Cell) int {
	n := 0
	for _, cell := range row {
		if cell.Kind == CellText && IsWellID(cell.Text) {
			n++
		}
	}
	return n
}
