package exporter

import "strconv"

// formatFloat renders a float for CSV output at full native precision.
// Downstream curve fitting consumes these values, so no rounding is applied.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
