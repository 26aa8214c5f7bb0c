package ui

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"dashtable/internal/datasource"
	"dashtable/internal/model"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// Below this width the filter bar moves from a sidebar to a strip
	// above the table.
	sidebarBreakpoint = 90
	filterBarWidth    = 30
)

// Dashboard is the root Bubble Tea model. It owns the row parity
// selection shared by the filter bar and the table.
type Dashboard struct {
	ds     *datasource.DataSource
	screen model.Screen
	mode   model.Mode
	gState GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool
	columnJump  bool

	parity datasource.RowParity
	table  *TableModel
	detail *RowDetailModel

	keys      KeyMap
	formKeys  FormKeyMap
	help      help.Model
	editStart viewState
	undoStack []undoAction
	redoStack []undoAction
}

// New creates a new root model over ds, opening with prefs applied.
func New(ds *datasource.DataSource, prefs TablePrefs) Dashboard {
	table := NewTableModel(ds)
	table.parity = prefs.Parity
	table.ApplyPrefs(prefs)

	m := Dashboard{
		ds:       ds,
		screen:   model.ScreenTable,
		mode:     model.ModeNav,
		gState:   GStateIdle,
		parity:   prefs.Parity,
		table:    table,
		keys:     DefaultKeyMap(),
		formKeys: DefaultFormKeyMap(),
		help:     help.New(),
	}
	if err := table.Err(); err != nil {
		m.error = err.Error()
	}
	return m
}

// Init initializes the model.
func (m Dashboard) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.mode == model.ModeNav && m.columnJump {
			if msg.String() == "esc" {
				m.columnJump = false
				m.info = ""
				return m, nil
			}
			if n, err := strconv.Atoi(msg.String()); err == nil {
				table := m.currentTable()
				if table != nil && table.JumpToColumn(n) {
					m.columnJump = false
					m.info = fmt.Sprintf("Jumped to column %d", n)
					return m, nil
				}
				m.info = fmt.Sprintf("Column %d unavailable", n)
				return m, nil
			}
			m.columnJump = false
		}

		// Handle ctrl+c globally
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if key.Matches(msg, m.keys.Help) && m.mode == model.ModeNav {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" {
				m.showingHelp = false
			}
			return m, nil
		}

		if m.mode == model.ModeNav {
			return m.handleNavMode(msg)
		}
		return m.handleInsertMode(msg)

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		return m, nil

	default:
		// Cursor blinks and other input plumbing for the search bar.
		if m.mode == model.ModeInsert && m.table.Search().Editing() {
			cmd, _ := m.table.Search().Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View renders the UI.
func (m Dashboard) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	breadcrumbParts := []string{"Table"}
	if m.screen == model.ScreenRowDetail && m.detail != nil {
		breadcrumbParts = append(breadcrumbParts, m.detail.Title())
	}

	header := renderHeader(breadcrumbParts, parityLabel(m.parity), m.width)
	footer := RenderHelp(m.help, m.screen, m.mode, m.keys, m.formKeys, m.width)

	var banners []string
	if m.error != "" {
		banners = append(banners, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		banners = append(banners, SuccessStyle.Width(m.width).Render(m.info))
	}

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	for _, b := range banners {
		contentHeight -= lipgloss.Height(b)
	}
	contentHeight = max(contentHeight, 3)

	// Ensure content fills the available height to anchor footer at bottom
	content := lipgloss.NewStyle().
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(m.renderBody(m.width, contentHeight))

	parts := []string{header}
	parts = append(parts, banners...)
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Dashboard) renderBody(width, height int) string {
	if m.screen == model.ScreenRowDetail && m.detail != nil {
		return m.detail.View(width, height)
	}

	bar := NewFilterBar(m.parity)
	if width >= sidebarBreakpoint {
		pane := bar.ViewVertical(filterBarWidth, height)
		table := m.table.View(width-lipgloss.Width(pane), height)
		return lipgloss.JoinHorizontal(lipgloss.Top, pane, table)
	}

	strip := bar.ViewHorizontal(width)
	table := m.table.View(width, height-lipgloss.Height(strip))
	return lipgloss.JoinVertical(lipgloss.Left, strip, table)
}

func renderHeader(breadcrumbParts []string, status string, width int) string {
	// Left side: app name + breadcrumb
	title := HeaderStyle.Render("dashtable")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb
	right := BreadcrumbStyle.Render(status) + "  "

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	headerContent := left + strings.Repeat(" ", padding) + right
	return TitleStyle.Width(width).Render(headerContent)
}

// handleNavMode handles navigation mode input.
func (m Dashboard) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == model.ScreenRowDetail {
		return m.handleRowDetailNav(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Undo):
		m.undo()
		return m, nil
	case key.Matches(msg, m.keys.Redo):
		m.redo()
		return m, nil
	}

	if t := m.currentTable(); t != nil {
		switch {
		case key.Matches(msg, m.keys.NextColumn):
			t.NextColumn()
			return m, nil
		case key.Matches(msg, m.keys.PrevColumn):
			t.PrevColumn()
			return m, nil
		case key.Matches(msg, m.keys.ColumnJump):
			m.columnJump = true
			m.info = "Jump to column: press 1-9 (esc to cancel)"
			return m, nil
		case key.Matches(msg, m.keys.ToggleSort):
			before := m.captureState()
			m.info = t.ToggleSortActiveColumn()
			m.recordChange("sort", before)
			return m, nil
		case key.Matches(msg, m.keys.SortAsc):
			before := m.captureState()
			t.SortActiveColumn(false)
			m.info = "Sorted ascending"
			m.recordChange("sort", before)
			return m, nil
		case key.Matches(msg, m.keys.SortDesc):
			before := m.captureState()
			t.SortActiveColumn(true)
			m.info = "Sorted descending"
			m.recordChange("sort", before)
			return m, nil
		case key.Matches(msg, m.keys.HideColumn):
			before := m.captureState()
			filter := m.table.Search().Filter(m.table.ActiveColumn())
			if t.HideActiveColumn() {
				m.info = "Column hidden"
				if filter != "" {
					m.info = fmt.Sprintf("Column hidden, its search %q still applies (X clears all)", filter)
				}
				m.recordChange("hide column", before)
			} else {
				m.info = "Cannot hide last visible column"
			}
			return m, nil
		case key.Matches(msg, m.keys.ShowColumns):
			before := m.captureState()
			t.ShowAllColumns()
			m.info = "All columns shown"
			m.recordChange("show columns", before)
			return m, nil
		case key.Matches(msg, m.keys.EditFilter):
			return m.startSearch()
		case key.Matches(msg, m.keys.FilterValue):
			before := m.captureState()
			m.info = t.FilterBySelectedValue()
			m.recordChange("search", before)
			return m, nil
		case key.Matches(msg, m.keys.ClearFilter):
			before := m.captureState()
			if t.ClearFilter() {
				m.info = "Search cleared"
				m.recordChange("clear search", before)
			}
			return m, nil
		case key.Matches(msg, m.keys.ClearFilters):
			before := m.captureState()
			if t.ClearAllFilters() {
				m.info = "All searches cleared"
				m.recordChange("clear searches", before)
			}
			return m, nil
		case key.Matches(msg, m.keys.ShowEven):
			m.setParity(datasource.ParityEven)
			return m, nil
		case key.Matches(msg, m.keys.ShowOdd):
			m.setParity(datasource.ParityOdd)
			return m, nil
		case key.Matches(msg, m.keys.ShowAll):
			m.setParity(datasource.ParityAll)
			return m, nil
		case key.Matches(msg, m.keys.PrevParity):
			m.setParity(NewFilterBar(m.parity).Step(-1))
			return m, nil
		case key.Matches(msg, m.keys.NextParity):
			m.setParity(NewFilterBar(m.parity).Step(1))
			return m, nil
		}
	}

	// Handle "gg" state machine
	if key.Matches(msg, m.keys.Top) {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		m.table.JumpToTop()
		return m, nil
	}
	m.gState = GStateIdle

	return m.handleTableNav(msg)
}

func (m *Dashboard) currentTable() tableController {
	if m.screen == model.ScreenTable && m.table != nil {
		return m.table
	}
	return nil
}

func (m *Dashboard) setParity(p datasource.RowParity) {
	before := m.captureState()
	m.parity = p
	m.table.SetParity(p)
	m.info = "Showing: " + parityLabel(p)
	m.recordChange("row filter", before)
	log.Printf("row parity set to %s, %d rows", p, len(m.table.Rows()))
}

func (m Dashboard) handleTableNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		if row, ok := m.table.SelectedRow(); ok {
			m.detail = NewRowDetailModel(row, m.table.Labels(), m.table.SortIndex())
			m.screen = model.ScreenRowDetail
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.table.JumpToBottom()
		return m, nil
	case key.Matches(msg, m.keys.HalfPageDown):
		m.table.HalfPageDown(m.height / 2)
		return m, nil
	case key.Matches(msg, m.keys.HalfPageUp):
		m.table.HalfPageUp(m.height / 2)
		return m, nil
	}
	return m, nil
}

func (m Dashboard) handleRowDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = model.ScreenTable
		m.detail = nil
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp()
	default:
		return m, nil
	}
	if row, ok := m.table.SelectedRow(); ok {
		m.detail = NewRowDetailModel(row, m.table.Labels(), m.table.SortIndex())
	}
	return m, nil
}

func (m Dashboard) startSearch() (tea.Model, tea.Cmd) {
	if len(m.table.Labels()) == 0 {
		m.info = "No columns to search"
		return m, nil
	}
	m.editStart = m.captureState()
	m.mode = model.ModeInsert
	m.info = "Searching " + strings.ToUpper(m.table.Labels()[m.table.ActiveColumn()])
	return m, m.table.Search().Focus(m.table.ActiveColumn())
}

// handleInsertMode handles search bar input.
func (m Dashboard) handleInsertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	search := m.table.Search()
	switch {
	case key.Matches(msg, m.formKeys.Save):
		m.finishSearch()
		return m, nil
	case key.Matches(msg, m.formKeys.Cancel):
		search.SetFilters(m.editStart.prefs.Filters)
		m.table.FiltersChanged()
		m.finishSearch()
		m.info = "Search reverted"
		return m, nil
	case key.Matches(msg, m.formKeys.NextField):
		m.table.NextColumn()
		return m, search.Focus(m.table.ActiveColumn())
	case key.Matches(msg, m.formKeys.PrevField):
		m.table.PrevColumn()
		return m, search.Focus(m.table.ActiveColumn())
	}

	cmd, changed := search.Update(msg)
	if changed {
		m.table.FiltersChanged()
	}
	return m, cmd
}

func (m *Dashboard) finishSearch() {
	m.table.Search().Blur()
	m.mode = model.ModeNav
	m.info = ""
	m.recordChange("search", m.editStart)
	if meta := m.table.TableMeta(); meta != "" {
		log.Printf("search done: %s", meta)
	}
}
