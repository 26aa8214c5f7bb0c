package ui

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"dashtable/internal/datasource"
	"dashtable/internal/model"
	"dashtable/internal/util"

	"github.com/charmbracelet/lipgloss"
)

const (
	minColumnWidth = 8
	maxColumnWidth = 24
	tableSeparator = "│"
)

type tableColumn struct {
	col    datasource.Column
	label  string
	width  int
	hidden bool
}

// TableModel represents the data table: sortable header, body and
// search bar footer.
type TableModel struct {
	ds     *datasource.DataSource
	parity datasource.RowParity
	rows   []model.DisplayRow
	cursor int
	offset int

	viewportHeight int

	columns      []tableColumn
	activeColumn int
	sortBy       *datasource.Column
	sortDesc     bool
	search       *SearchBar
	err          error
}

// NewTableModel creates a table over ds, sorted by the primary column
// ascending.
func NewTableModel(ds *datasource.DataSource) *TableModel {
	cols, err := ds.Columns()
	if err != nil {
		log.Printf("table: %v", err)
	}

	all, _ := ds.Data(datasource.Query{})
	columns := make([]tableColumn, len(cols))
	for i, c := range cols {
		width := lipgloss.Width(c.Label())
		for _, r := range all {
			width = max(width, lipgloss.Width(r.Cell(i)))
		}
		columns[i] = tableColumn{
			col:   c,
			label: c.Label(),
			width: min(max(width, minColumnWidth), maxColumnWidth),
		}
	}

	primary := datasource.PrimaryColumn()
	m := &TableModel{
		ds:      ds,
		columns: columns,
		sortBy:  &primary,
		search:  NewSearchBar(len(columns)),
	}
	m.rebuild()
	return m
}

// ApplyPrefs restores view state. Unknown or out-of-range columns are
// ignored, except for the sort column, which surfaces through Err.
func (m *TableModel) ApplyPrefs(prefs TablePrefs) {
	if prefs.SortKey != "" {
		if col, err := datasource.ParseColumn(prefs.SortKey); err == nil {
			m.sortBy = &col
			m.sortDesc = prefs.SortDesc
		}
	}
	hidden := make(map[string]bool, len(prefs.HiddenColumns))
	for _, c := range prefs.HiddenColumns {
		if col, err := datasource.ParseColumn(c); err == nil {
			hidden[col.Label()] = true
		}
	}
	for i := range m.columns {
		m.columns[i].hidden = hidden[m.columns[i].label]
	}
	if prefs.ActiveColumn != "" {
		if col, err := datasource.ParseColumn(prefs.ActiveColumn); err == nil && col.Index() < len(m.columns) {
			m.activeColumn = col.Index()
		}
	}
	m.search.SetFilters(prefs.Filters)
	m.ensureVisibleActiveColumn()
	m.rebuild()
}

// Prefs captures the current view state.
func (m *TableModel) Prefs() TablePrefs {
	var hidden []string
	for _, c := range m.columns {
		if c.hidden {
			hidden = append(hidden, c.label)
		}
	}
	prefs := TablePrefs{
		SortDesc:      m.sortDesc,
		Filters:       m.search.Filters(),
		HiddenColumns: hidden,
	}
	if m.sortBy != nil {
		prefs.SortKey = m.sortBy.Label()
	}
	if len(m.columns) > 0 {
		prefs.ActiveColumn = m.columns[m.activeColumn].label
	}
	return prefs
}

// Query returns the complete query for the current view state.
func (m *TableModel) Query() datasource.Query {
	q := datasource.Query{
		Parity:  m.parity,
		Filters: m.search.Filters(),
		Desc:    m.sortDesc,
	}
	if m.sortBy != nil {
		col := *m.sortBy
		q.SortBy = &col
	}
	return q
}

// SetParity changes the row parity filter.
func (m *TableModel) SetParity(p datasource.RowParity) {
	m.parity = p
	m.rebuild()
}

// Rows returns the rows currently displayed.
func (m *TableModel) Rows() []model.DisplayRow {
	return m.rows
}

// SelectedRow returns the row under the cursor.
func (m *TableModel) SelectedRow() (model.DisplayRow, bool) {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return model.DisplayRow{}, false
	}
	return m.rows[m.cursor], true
}

// Labels returns every column label, hidden ones included.
func (m *TableModel) Labels() []string {
	labels := make([]string, len(m.columns))
	for i, c := range m.columns {
		labels[i] = c.label
	}
	return labels
}

// SortIndex returns the table position of the sort column, or -1.
func (m *TableModel) SortIndex() int {
	if m.sortBy == nil {
		return -1
	}
	return m.sortBy.Index()
}

// Err returns the error from the last query, if any.
func (m *TableModel) Err() error {
	return m.err
}

// Search returns the search bar.
func (m *TableModel) Search() *SearchBar {
	return m.search
}

func (m *TableModel) rebuild() {
	rows, err := m.ds.Data(m.Query())
	if errors.Is(err, datasource.ErrInvalidColumn) {
		log.Printf("table: %v, falling back to collection order", err)
		m.sortBy = nil
		m.sortDesc = false
		var retryErr error
		rows, retryErr = m.ds.Data(m.Query())
		if retryErr != nil {
			err = retryErr
		}
	}
	if rows == nil {
		rows = []model.DisplayRow{}
	}
	m.err = err
	m.rows = rows
	m.clampCursor()
}

func (m *TableModel) clampCursor() {
	if len(m.rows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

func (m *TableModel) visibleColumnIndexes() []int {
	var idxs []int
	for i, c := range m.columns {
		if !c.hidden {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (m *TableModel) ensureVisibleActiveColumn() {
	if len(m.columns) == 0 || !m.columns[m.activeColumn].hidden {
		return
	}
	for i := range m.columns {
		if !m.columns[i].hidden {
			m.activeColumn = i
			return
		}
	}
	m.columns[0].hidden = false
	m.activeColumn = 0
}

// ActiveColumn returns the table position of the active column.
func (m *TableModel) ActiveColumn() int {
	return m.activeColumn
}

func (m *TableModel) NextColumn() {
	if len(m.columns) == 0 {
		return
	}
	start := m.activeColumn
	for {
		m.activeColumn = (m.activeColumn + 1) % len(m.columns)
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *TableModel) PrevColumn() {
	if len(m.columns) == 0 {
		return
	}
	start := m.activeColumn
	for {
		m.activeColumn--
		if m.activeColumn < 0 {
			m.activeColumn = len(m.columns) - 1
		}
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *TableModel) JumpToColumn(number int) bool {
	if number < 1 || number > len(m.columns) {
		return false
	}
	idx := number - 1
	if m.columns[idx].hidden {
		return false
	}
	m.activeColumn = idx
	return true
}

func (m *TableModel) SortActiveColumn(desc bool) {
	if len(m.columns) == 0 {
		return
	}
	col := m.columns[m.activeColumn].col
	m.sortBy = &col
	m.sortDesc = desc
	m.rebuild()
}

// ToggleSortActiveColumn behaves like clicking a sortable header: the
// active column becomes the sort key and the direction flips on every
// click, including a click that moves the sort to another column.
func (m *TableModel) ToggleSortActiveColumn() string {
	if len(m.columns) == 0 {
		return "No columns to sort"
	}
	active := m.columns[m.activeColumn]
	label := strings.ToUpper(active.label)
	col := active.col
	m.sortBy = &col
	m.sortDesc = !m.sortDesc
	m.rebuild()
	if m.sortDesc {
		return fmt.Sprintf("Sorted %s descending", label)
	}
	return fmt.Sprintf("Sorted %s ascending", label)
}

func (m *TableModel) HideActiveColumn() bool {
	if len(m.visibleColumnIndexes()) <= 1 {
		return false
	}
	m.columns[m.activeColumn].hidden = true
	m.ensureVisibleActiveColumn()
	return true
}

func (m *TableModel) ShowAllColumns() {
	for i := range m.columns {
		m.columns[i].hidden = false
	}
}

// FilterBySelectedValue searches the active column for the selected
// cell's value, or clears that search when it is already applied.
func (m *TableModel) FilterBySelectedValue() string {
	row, ok := m.SelectedRow()
	if !ok {
		return "No rows to filter"
	}
	value := row.Cell(m.activeColumn)
	if value == "" {
		return "No filterable value in selected cell"
	}
	if m.search.Filter(m.activeColumn) == value {
		m.search.SetFilter(m.activeColumn, "")
		m.rebuild()
		return "Filter cleared"
	}
	m.search.SetFilter(m.activeColumn, value)
	m.rebuild()
	return "Filter applied from selected value"
}

func (m *TableModel) ClearFilter() bool {
	if m.search.Filter(m.activeColumn) == "" {
		return false
	}
	m.search.SetFilter(m.activeColumn, "")
	m.rebuild()
	return true
}

func (m *TableModel) ClearAllFilters() bool {
	cleared := false
	for _, f := range m.search.Filters() {
		if f != "" {
			cleared = true
			break
		}
	}
	if !cleared {
		return false
	}
	m.search.SetFilters(nil)
	m.rebuild()
	return true
}

// FiltersChanged re-queries after the search bar was edited.
func (m *TableModel) FiltersChanged() {
	m.rebuild()
}

func (m *TableModel) TableMeta() string {
	if len(m.columns) == 0 {
		return ""
	}
	col := strings.ToUpper(m.columns[m.activeColumn].label)
	parts := []string{fmt.Sprintf("col %s", col)}
	if m.sortBy != nil {
		order := "asc"
		if m.sortDesc {
			order = "desc"
		}
		parts = append(parts, fmt.Sprintf("sort %s %s", strings.ToUpper(m.sortBy.Label()), order))
	}
	if m.parity != datasource.ParityAll {
		parts = append(parts, fmt.Sprintf("rows %s", m.parity))
	}
	if filters := util.FormatFilters(m.Labels(), m.search.Filters()); filters != "" {
		parts = append(parts, "search "+filters)
	}
	return strings.Join(parts, "  ·  ")
}

// View renders the table.
func (m *TableModel) View(width, height int) string {
	if len(m.columns) == 0 {
		return EmptyStateStyle.
			Width(width).
			Height(height).
			Render("No data to display.")
	}

	visible := m.visibleColumnIndexes()
	widths := make([]int, 0, len(visible))
	headers := make([]string, 0, len(visible))
	headerStyles := make([]lipgloss.Style, 0, len(visible))
	totalFixed := 0
	sortIdx := m.SortIndex()
	for _, idx := range visible {
		col := m.columns[idx]
		label := formatHeaderLabel(col.label)
		style := TableHeaderStyle
		if idx == sortIdx {
			if m.sortDesc {
				label += " ↓"
				style = SortDescHeaderStyle
			} else {
				label += " ↑"
				style = SortAscHeaderStyle
			}
		}
		if idx == m.activeColumn {
			label = renderActiveHeaderLabel(label)
		}
		cellWidth := max(col.width+2, lipgloss.Width(label)+2)
		totalFixed += cellWidth
		widths = append(widths, cellWidth)
		headers = append(headers, label)
		headerStyles = append(headerStyles, style)
	}
	if len(widths) > 0 {
		sepTotal := (len(widths) - 1) * tableSeparatorWidth()
		extra := width - totalFixed - sepTotal
		if extra > 0 {
			widths[len(widths)-1] += extra
		}
	}

	header := renderStyledRow(headers, widths, headerStyles)
	divider := renderTableDivider(widths)

	// header, divider, search divider, search bar, status
	visibleHeight := max(1, height-5)
	m.viewportHeight = visibleHeight
	if m.cursor >= m.offset+visibleHeight {
		m.offset = m.cursor - visibleHeight + 1
	}

	var rows []string
	for i := m.offset; i < len(m.rows) && i < m.offset+visibleHeight; i++ {
		row := m.rows[i]
		base := NormalRowStyle
		if i%2 == 1 {
			base = StripedRowStyle
		}
		if i == m.cursor {
			base = SelectedRowStyle
		}

		cells := make([]string, 0, len(visible))
		styles := make([]lipgloss.Style, 0, len(visible))
		for n, idx := range visible {
			cells = append(cells, util.TruncateString(row.Cell(idx), widths[n]-2))
			style := base
			if idx == sortIdx {
				style = activeCellStyle(base, i == m.cursor)
			}
			styles = append(styles, style)
		}
		rows = append(rows, renderStyledRow(cells, widths, styles))
	}
	if len(rows) == 0 {
		rows = append(rows, EmptyStateStyle.Padding(0, 1).Render("No rows match the current filters."))
	}

	searchRow := m.search.View(visible, widths)

	rowPos := ""
	if len(m.rows) > 0 {
		rowPos = fmt.Sprintf("  ·  row %d/%d", m.cursor+1, len(m.rows))
	}
	meta := m.TableMeta()
	if meta != "" {
		meta = "  ·  " + meta
	}
	status := StatusBarStyle.Render(util.FormatCount(len(m.rows), m.ds.Len(), "rows") + rowPos + meta)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		divider,
		strings.Join(rows, "\n"),
	)
	footer := lipgloss.JoinVertical(lipgloss.Left, divider, searchRow, status)

	spacerHeight := max(0, height-lipgloss.Height(content)-lipgloss.Height(footer))
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		spacer,
		footer,
	)
}

func activeCellStyle(base lipgloss.Style, selected bool) lipgloss.Style {
	if selected {
		return base.Bold(true)
	}
	return base.Foreground(ColorAccent).Bold(true)
}

func formatHeaderLabel(label string) string {
	return strings.ToUpper(label)
}

func renderActiveHeaderLabel(label string) string {
	return "[" + label + "]"
}

func tableSeparatorWidth() int {
	return lipgloss.Width(tableSeparator)
}

func joinWithSeparator(cells []string) []string {
	if len(cells) < 2 {
		return cells
	}
	sep := BreadcrumbStyle.Render(tableSeparator)
	out := make([]string, 0, len(cells)*2-1)
	for i, c := range cells {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, c)
	}
	return out
}

func renderStyledRow(cells []string, widths []int, styles []lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) || i >= len(styles) {
			continue
		}
		parts = append(parts, styles[i].Width(widths[i]).MaxHeight(1).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWithSeparator(parts)...)
}

func renderTableDivider(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w)
	}
	return BreadcrumbStyle.Render(strings.Join(parts, "┼"))
}

// MoveDown moves the cursor down.
func (m *TableModel) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
		vh := m.viewportHeight
		if vh == 0 {
			vh = 10
		}
		if m.cursor >= m.offset+vh {
			m.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (m *TableModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first item.
func (m *TableModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last item.
func (m *TableModel) JumpToBottom() {
	if len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
		vh := m.viewportHeight
		if vh == 0 {
			vh = 10
		}
		if m.cursor >= vh {
			m.offset = m.cursor - vh + 1
		}
	}
}

// HalfPageDown moves down half a page.
func (m *TableModel) HalfPageDown(pageSize int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor += pageSize / 2
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	vh := m.viewportHeight
	if vh == 0 {
		vh = 10
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageUp moves up half a page.
func (m *TableModel) HalfPageUp(pageSize int) {
	m.cursor -= pageSize / 2
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}
