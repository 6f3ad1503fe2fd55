// Package bulkimport implements the materials CSV bulk import pipeline:
// a lenient parser for the fixed six-column format, the batch importer with
// per-row outcome reporting, and the canonical template other producers
// should follow.
package bulkimport

import (
	"strconv"
	"strings"
)

// Row is one parsed CSV line, staged for import. Line is the 1-based position
// in the original file (the header is line 1, so the first data row is 2),
// which is what row errors are reported against.
type Row struct {
	Line             int
	ItemCode         string
	ItemName         string
	StoringUOM       string
	PurchasingAmount float64
	ConsumingUOM     string
	ConversionUnit   float64
}

// Parse turns raw CSV text into staged rows. The first line is discarded as a
// header. Blank lines and lines with fewer than six fields are skipped without
// being reported. A purchasing amount that fails to parse defaults to 0, a
// conversion unit defaults to 1. These lenient defaults are long-standing
// behavior that the import counts depend on, do not tighten them here.
func Parse(content string) []Row {
	lines := strings.Split(content, "\n")

	rows := make([]Row, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			continue // header
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := splitLine(line)
		if len(fields) < 6 {
			continue
		}

		amount, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil {
			amount = 0
		}
		conversion, err := strconv.ParseFloat(strings.TrimSpace(fields[5]), 64)
		if err != nil {
			conversion = 1
		}

		rows = append(rows, Row{
			Line:             i + 1,
			ItemCode:         strings.TrimSpace(fields[0]),
			ItemName:         strings.TrimSpace(fields[1]),
			StoringUOM:       strings.TrimSpace(fields[2]),
			PurchasingAmount: amount,
			ConsumingUOM:     strings.TrimSpace(fields[4]),
			ConversionUnit:   conversion,
		})
	}

	return rows
}

// splitLine splits a CSV line on commas, honoring double quotes: a quote
// toggles a literal mode in which commas are part of the field. The quotes
// themselves are dropped.
func splitLine(line string) []string {
	var fields []string
	var current strings.Builder
	insideQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			insideQuotes = !insideQuotes
		case ch == ',' && !insideQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, current.String())

	return fields
}
