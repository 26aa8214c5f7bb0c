package datasource

import (
	"strconv"
	"strings"
)

const (
	// PrimaryLabel is the header of the primary column.
	PrimaryLabel = "Primary"
	// SummaryPrefix prefixes the 1-based slot number of summary columns.
	SummaryPrefix = "Summary"
)

// Column addresses one cell of every row: either the primary value or a
// single summary slot. The zero value is the primary column.
type Column struct {
	summary bool
	slot    int
}

// PrimaryColumn returns the primary column.
func PrimaryColumn() Column {
	return Column{}
}

// SummaryColumn returns the column for 0-based summary slot i.
func SummaryColumn(i int) Column {
	return Column{summary: true, slot: i}
}

// IsPrimary reports whether c is the primary column.
func (c Column) IsPrimary() bool {
	return !c.summary
}

// Slot returns the 0-based summary slot, or -1 for the primary column.
func (c Column) Slot() int {
	if !c.summary {
		return -1
	}
	return c.slot
}

// Index returns the position of c among the table's columns.
func (c Column) Index() int {
	if !c.summary {
		return 0
	}
	return c.slot + 1
}

// Label returns the header text: "Primary", "Summary1", "Summary2", ...
func (c Column) Label() string {
	if !c.summary {
		return PrimaryLabel
	}
	return SummaryPrefix + strconv.Itoa(c.slot+1)
}

func (c Column) String() string {
	return c.Label()
}

// ParseColumn resolves a header label into a Column. Matching is case
// insensitive; summary labels must carry a positive slot number.
func ParseColumn(label string) (Column, error) {
	s := strings.TrimSpace(label)
	if strings.EqualFold(s, PrimaryLabel) {
		return PrimaryColumn(), nil
	}
	if len(s) > len(SummaryPrefix) && strings.EqualFold(s[:len(SummaryPrefix)], SummaryPrefix) {
		n, err := strconv.Atoi(s[len(SummaryPrefix):])
		if err == nil && n >= 1 {
			return SummaryColumn(n - 1), nil
		}
	}
	return Column{}, &InvalidColumnError{Label: label}
}
