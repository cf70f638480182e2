package plate

import (
	"fmt"
	"regexp"
)

// Plate geometry for a standard 96-well microplate.
const (
	PlateRows = 8  // rows A-H
	PlateCols = 12 // columns 1-12
)

var wellIDRe = regexp.MustCompile(`^[A-H](1[0-2]|[1-9])$`)

// IsWellID reports whether s is a valid 96-well position id (A1..H12).
func IsWellID(s string) bool {
	return wellIDRe.MatchString(s)
}

// isRowLetter reports whether s is a single plate row letter A-H.
func isRowLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'H'
}

// AllWells returns the 96 well ids in row-major order: A1..A12, B1..B12, .. H12.
// This order defines the traversal order of every downstream output.
func AllWells() []string {
	wells := make([]string, 0, PlateRows*PlateCols)
	for r := 0; r < PlateRows; r++ {
		for c := 1; c <= PlateCols; c++ {
			wells = append(wells, fmt.Sprintf("%c%d", 'A'+r, c))
		}
	}
	return wells
}
