package exporter

import (
	"strconv"
	"strings"
)

// formatHour formats a simulation time for CSV output. Whole hours keep
// a trailing ".0" so the column reads as clock values (8.0, 8.5, 9.0).
func formatHour(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// formatProbability formats a probability at full precision so written
// datasets load back without rounding drift
func formatProbability(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
