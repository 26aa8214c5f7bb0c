package model

import "strconv"

// Record is one entity shown in the table: a primary label plus a
// fixed-length run of numeric summaries.
type Record struct {
	Primary string
	Summary []float64
}

// DisplayRow represents a record projected for list display.
type DisplayRow struct {
	Position int // 1-based position in the source collection
	Primary  string
	Summary  []float64
}

// Len returns the number of cells in the row.
func (r DisplayRow) Len() int {
	return 1 + len(r.Summary)
}

// Cell returns the stringified value of cell i (0 is the primary value).
func (r DisplayRow) Cell(i int) string {
	if i == 0 {
		return r.Primary
	}
	if i < 0 || i > len(r.Summary) {
		return ""
	}
	return FormatNumber(r.Summary[i-1])
}

// Cells returns every cell value in column order.
func (r DisplayRow) Cells() []string {
	cells := make([]string, 0, r.Len())
	cells = append(cells, r.Primary)
	for _, v := range r.Summary {
		cells = append(cells, FormatNumber(v))
	}
	return cells
}

// FormatNumber renders a summary value using the shortest decimal form,
// so 186 prints as "186" and 0.25 as "0.25".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
