// Package datasource shapes an in-memory record collection into table
// rows: it derives the column set from the records and answers sort and
// filter queries without touching the underlying collection.
package datasource

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"dashtable/internal/model"
)

// Query is the complete set of sort and filter criteria for one render.
// The zero value returns every row in collection order.
type Query struct {
	Parity  RowParity
	Filters []string // one per column; "" matches everything
	SortBy  *Column  // nil keeps collection order
	Desc    bool
}

// SortedBy returns a copy of q sorted by col.
func (q Query) SortedBy(col Column, desc bool) Query {
	q.SortBy = &col
	q.Desc = desc
	return q
}

// DataSource owns an immutable record collection.
type DataSource struct {
	records []model.Record
	width   int
}

// New creates a data source over a copy of records. Every record must
// carry as many summaries as the first one.
func New(records []model.Record) (*DataSource, error) {
	d := &DataSource{records: make([]model.Record, len(records))}
	for i, r := range records {
		if i > 0 && len(r.Summary) != len(records[0].Summary) {
			return nil, fmt.Errorf("record %d (%q) has %d summaries, want %d: %w",
				i+1, r.Primary, len(r.Summary), len(records[0].Summary), ErrRaggedRecords)
		}
		d.records[i] = model.Record{
			Primary: r.Primary,
			Summary: append([]float64(nil), r.Summary...),
		}
	}
	if len(records) > 0 {
		d.width = 1 + len(records[0].Summary)
	}
	return d, nil
}

// Len returns the number of records.
func (d *DataSource) Len() int {
	return len(d.records)
}

// Width returns the number of columns, 0 for an empty collection.
func (d *DataSource) Width() int {
	return d.width
}

// Columns returns the primary column followed by one column per summary
// slot. An empty collection has no shape to derive from: the result is an
// empty slice together with ErrEmptyCollection.
func (d *DataSource) Columns() ([]Column, error) {
	if len(d.records) == 0 {
		return []Column{}, ErrEmptyCollection
	}
	cols := make([]Column, 0, d.width)
	cols = append(cols, PrimaryColumn())
	for i := 0; i < d.width-1; i++ {
		cols = append(cols, SummaryColumn(i))
	}
	return cols, nil
}

// Validate checks that every column q refers to exists.
func (d *DataSource) Validate(q Query) error {
	if len(d.records) == 0 {
		return nil
	}
	if q.SortBy != nil && (q.SortBy.Index() >= d.width || (!q.SortBy.IsPrimary() && q.SortBy.Slot() < 0)) {
		return &InvalidColumnError{Label: q.SortBy.Label()}
	}
	if len(q.Filters) > d.width {
		return fmt.Errorf("%d filters for %d columns: %w", len(q.Filters), d.width, ErrFilterCount)
	}
	return nil
}

// Data returns the rows selected by q. Rows are stably sorted by q.SortBy,
// then kept only when their original position passes q.Parity and every
// filter is a literal, case-sensitive substring of the matching cell.
// The collection itself is never reordered.
func (d *DataSource) Data(q Query) ([]model.DisplayRow, error) {
	if err := d.Validate(q); err != nil {
		return nil, err
	}

	order := make([]int, len(d.records))
	for i := range order {
		order[i] = i
	}
	if q.SortBy != nil {
		col := *q.SortBy
		sort.SliceStable(order, func(i, j int) bool {
			c := d.compare(d.records[order[i]], d.records[order[j]], col)
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	}

	rows := make([]model.DisplayRow, 0, len(order))
	for _, idx := range order {
		row := model.DisplayRow{
			Position: idx + 1,
			Primary:  d.records[idx].Primary,
			Summary:  append([]float64(nil), d.records[idx].Summary...),
		}
		if !q.Parity.Allows(row.Position) || !matchesFilters(row, q.Filters) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (d *DataSource) compare(a, b model.Record, col Column) int {
	if col.IsPrimary() {
		return strings.Compare(a.Primary, b.Primary)
	}
	return cmp.Compare(a.Summary[col.Slot()], b.Summary[col.Slot()])
}

func matchesFilters(row model.DisplayRow, filters []string) bool {
	for i, f := range filters {
		if f == "" {
			continue
		}
		if !strings.Contains(row.Cell(i), f) {
			return false
		}
	}
	return true
}
