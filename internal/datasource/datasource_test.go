package datasource

import (
	"errors"
	"testing"

	"dashtable/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func primaries(rows []model.DisplayRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Primary
	}
	return out
}

func positions(rows []model.DisplayRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Position
	}
	return out
}

func sortBy(c Column) *Column { return &c }

func newSample(t *testing.T) *DataSource {
	t.Helper()
	ds, err := New(SampleRecords())
	require.NoError(t, err)
	return ds
}

func TestColumns(t *testing.T) {
	ds := newSample(t)
	cols, err := ds.Columns()
	require.NoError(t, err)
	assert.Len(t, cols, 1+5)
	var labels []string
	for _, c := range cols {
		labels = append(labels, c.Label())
	}
	assert.Equal(t, []string{"Primary", "Summary1", "Summary2", "Summary3", "Summary4", "Summary5"}, labels)
	assert.Equal(t, 6, ds.Width())
}

func TestColumns_Empty(t *testing.T) {
	ds, err := New(nil)
	require.NoError(t, err)

	cols, err := ds.Columns()
	assert.ErrorIs(t, err, ErrEmptyCollection)
	assert.NotNil(t, cols)
	assert.Empty(t, cols)
	assert.Zero(t, ds.Width())
}

func TestNew_RaggedRecords(t *testing.T) {
	_, err := New([]model.Record{
		{Primary: "a", Summary: []float64{1, 2}},
		{Primary: "b", Summary: []float64{1}},
	})
	assert.ErrorIs(t, err, ErrRaggedRecords)
}

func TestNew_CopiesInput(t *testing.T) {
	records := SampleRecords()
	ds, err := New(records)
	require.NoError(t, err)

	records[0].Primary = "changed"
	records[0].Summary[0] = -1

	rows, err := ds.Data(Query{})
	require.NoError(t, err)
	assert.Equal(t, "Data1", rows[0].Primary)
	assert.Equal(t, 186.0, rows[0].Summary[0])
}

func TestData_AllRowsNoFilters(t *testing.T) {
	ds := newSample(t)
	rows, err := ds.Data(Query{Parity: ParityAll, Filters: []string{"", "", "", "", "", ""}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Data1", "Data2", "Data3", "Data4"}, primaries(rows))
	assert.Equal(t, []int{1, 2, 3, 4}, positions(rows))
}

func TestData_SortPrimary(t *testing.T) {
	ds, err := New([]model.Record{
		{Primary: "Data1", Summary: []float64{186, 186}},
		{Primary: "Data2", Summary: []float64{95, 95}},
	})
	require.NoError(t, err)

	asc, err := ds.Data(Query{SortBy: sortBy(PrimaryColumn()), Filters: []string{"", ""}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Data1", "Data2"}, primaries(asc))

	desc, err := ds.Data(Query{SortBy: sortBy(PrimaryColumn()), Desc: true, Filters: []string{"", ""}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Data2", "Data1"}, primaries(desc))

	odd, err := ds.Data(Query{SortBy: sortBy(PrimaryColumn()), Parity: ParityOdd, Filters: []string{"", ""}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Data1"}, primaries(odd))
}

func TestData_SortPrimaryIsLexicographic(t *testing.T) {
	ds, err := New([]model.Record{
		{Primary: "b"}, {Primary: "B"}, {Primary: "a10"}, {Primary: "a9"},
	})
	require.NoError(t, err)

	rows, err := ds.Data(Query{SortBy: sortBy(PrimaryColumn())})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "a10", "a9", "b"}, primaries(rows))
}

func TestData_SortSummaryNumeric(t *testing.T) {
	ds := newSample(t)

	rows, err := ds.Data(Query{SortBy: sortBy(SummaryColumn(2))})
	require.NoError(t, err)
	assert.Equal(t, []string{"Data2", "Data1", "Data3", "Data4"}, primaries(rows))

	rows, err = ds.Data(Query{SortBy: sortBy(SummaryColumn(4)), Desc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Data4", "Data3", "Data1", "Data2"}, primaries(rows))
}

func TestData_SortIsStable(t *testing.T) {
	ds, err := New([]model.Record{
		{Primary: "x", Summary: []float64{1}},
		{Primary: "y", Summary: []float64{0}},
		{Primary: "z", Summary: []float64{1}},
		{Primary: "w", Summary: []float64{1}},
	})
	require.NoError(t, err)

	asc, err := ds.Data(Query{SortBy: sortBy(SummaryColumn(0))})
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x", "z", "w"}, primaries(asc))

	desc, err := ds.Data(Query{SortBy: sortBy(SummaryColumn(0)), Desc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "z", "w", "y"}, primaries(desc))
}

func TestData_ParityUsesOriginalPosition(t *testing.T) {
	ds := newSample(t)
	q := Query{SortBy: sortBy(PrimaryColumn()), Desc: true}

	q.Parity = ParityEven
	rows, err := ds.Data(q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Data4", "Data2"}, primaries(rows))
	assert.Equal(t, []int{4, 2}, positions(rows))

	q.Parity = ParityOdd
	rows, err = ds.Data(q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Data3", "Data1"}, primaries(rows))
}

func TestData_DoesNotReorderCollection(t *testing.T) {
	ds := newSample(t)

	_, err := ds.Data(Query{SortBy: sortBy(PrimaryColumn()), Desc: true})
	require.NoError(t, err)

	rows, err := ds.Data(Query{Parity: ParityOdd})
	require.NoError(t, err)
	assert.Equal(t, []string{"Data1", "Data3"}, primaries(rows))
}

func TestData_ColumnFilters(t *testing.T) {
	ds := newSample(t)

	tests := []struct {
		name    string
		filters []string
		want    []string
	}{
		{"empty filters", []string{""}, []string{"Data1", "Data2", "Data3", "Data4"}},
		{"primary substring", []string{"3"}, []string{"Data3"}},
		{"case sensitive", []string{"data"}, []string{}},
		{"summary substring", []string{"", "9"}, []string{"Data2", "Data3"}},
		{"and across columns", []string{"", "9", "", "", "3"}, []string{"Data3"}},
		{"zero value", []string{"", "", "", "", "", "0"}, []string{"Data2"}},
		{"no match", []string{"", "", "", "", "", "99"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := ds.Data(Query{Filters: tt.filters})
			require.NoError(t, err)
			assert.Equal(t, tt.want, primaries(rows))
		})
	}
}

func TestData_FractionalValuesStringify(t *testing.T) {
	ds, err := New([]model.Record{
		{Primary: "a", Summary: []float64{0.5}},
		{Primary: "b", Summary: []float64{5}},
	})
	require.NoError(t, err)

	rows, err := ds.Data(Query{Filters: []string{"", "."}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, primaries(rows))
	assert.Equal(t, []string{"a", "0.5"}, rows[0].Cells())
}

func TestData_InvalidSortColumn(t *testing.T) {
	ds := newSample(t)

	_, err := ds.Data(Query{SortBy: sortBy(SummaryColumn(5))})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidColumn)

	var colErr *InvalidColumnError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, "Summary6", colErr.Label)

	assert.NotPanics(t, func() {
		_, err = ds.Data(Query{SortBy: sortBy(SummaryColumn(-1))})
	})
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestData_FilterCount(t *testing.T) {
	ds := newSample(t)
	_, err := ds.Data(Query{Filters: make([]string, 7)})
	assert.ErrorIs(t, err, ErrFilterCount)
}

func TestData_EmptyCollection(t *testing.T) {
	ds, err := New([]model.Record{})
	require.NoError(t, err)

	rows, err := ds.Data(Query{SortBy: sortBy(SummaryColumn(3)), Filters: []string{"x"}})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestQuery_SortedBy(t *testing.T) {
	q := Query{Parity: ParityEven}
	sorted := q.SortedBy(SummaryColumn(1), true)

	assert.Nil(t, q.SortBy)
	require.NotNil(t, sorted.SortBy)
	assert.Equal(t, "Summary2", sorted.SortBy.Label())
	assert.True(t, sorted.Desc)
	assert.Equal(t, ParityEven, sorted.Parity)
}
