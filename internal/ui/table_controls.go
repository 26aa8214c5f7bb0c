package ui

type tableController interface {
	NextColumn()
	PrevColumn()
	JumpToColumn(number int) bool
	SortActiveColumn(desc bool)
	ToggleSortActiveColumn() string
	HideActiveColumn() bool
	ShowAllColumns()
	FilterBySelectedValue() string
	ClearFilter() bool
	ClearAllFilters() bool
	TableMeta() string
}
