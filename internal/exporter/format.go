package exporter

import (
	"strconv"
	"time"
)

// timestampLayout is the persisted timestamp format, shared by the CSV
// writer and loader so a dataset round-trips byte for byte.
const timestampLayout = "2006-01-02 15:04:05"

// formatPrice renders a price without trailing zeros, so a re-written
// dataset is byte-identical to the one it was loaded from.
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatInt renders an integer field for CSV output.
func formatInt(v int) string {
	return strconv.Itoa(v)
}

// formatTimestamp renders a delivery-interval start for CSV output.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
