package plate

import (
	"strconv"
	"strings"
)

// CellKind discriminates the three value shapes a spreadsheet cell can carry.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is a single spreadsheet cell classified at load time. Extraction code
// switches on Kind instead of re-parsing strings, so a cell is either a
// number or it is not -- there is no implicit coercion later in the pipeline.
type Cell struct {
	Kind   CellKind
	Text   string  // trimmed source text, set for CellText and CellNumber
	Number float64 // set only for CellNumber
}

// classifyCell converts raw cell text into a tagged Cell value.
func classifyCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cell{Kind: CellEmpty}
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Cell{Kind: CellNumber, Text: s, Number: v}
	}
	return Cell{Kind: CellText, Text: s}
}

// IsText reports whether the cell holds exactly the given text.
func (c Cell) IsText(s string) bool {
	return c.Kind == CellText && c.Text == s
}
