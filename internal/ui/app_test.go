package ui

import (
	"errors"
	"testing"

	"dashtable/internal/datasource"
	"dashtable/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Dashboard, keys ...string) Dashboard {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(Dashboard)
		require.True(t, ok)
	}
	return m
}

func newDashboard(t *testing.T, prefs TablePrefs) Dashboard {
	t.Helper()
	ds, err := datasource.New(datasource.SampleRecords())
	require.NoError(t, err)
	m := New(ds, prefs)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return next.(Dashboard)
}

func rowNames(m Dashboard) []string {
	var names []string
	for _, r := range m.table.Rows() {
		names = append(names, r.Primary)
	}
	return names
}

func TestDashboard_InitialState(t *testing.T) {
	m := newDashboard(t, TablePrefs{})
	assert.Equal(t, []string{"Data1", "Data2", "Data3", "Data4"}, rowNames(m))
	assert.Equal(t, 0, m.table.SortIndex())
	assert.Empty(t, m.error)

	view := m.View()
	assert.Contains(t, view, "PRIMARY")
	assert.Contains(t, view, "SUMMARY5")
	assert.Contains(t, view, "Even rows of data")
	assert.Contains(t, view, "Display rows 1,3,5 etc.")
	assert.Contains(t, view, "Search...")
	assert.Contains(t, view, "4 rows")
}

func TestDashboard_ParityToggles(t *testing.T) {
	m := newDashboard(t, TablePrefs{})

	m = press(t, m, "e")
	assert.Equal(t, datasource.ParityEven, m.parity)
	assert.Equal(t, []string{"Data2", "Data4"}, rowNames(m))
	assert.Contains(t, m.View(), "2/4 rows")

	m = press(t, m, "o")
	assert.Equal(t, []string{"Data1", "Data3"}, rowNames(m))

	m = press(t, m, "a")
	assert.Len(t, m.table.Rows(), 4)

	// even, odd, all wraps back to even
	m = press(t, m, "]")
	assert.Equal(t, datasource.ParityEven, m.parity)
	m = press(t, m, "[")
	assert.Equal(t, datasource.ParityAll, m.parity)
}

func TestDashboard_ParityFollowsOriginalPositionAfterSort(t *testing.T) {
	m := newDashboard(t, TablePrefs{})
	m = press(t, m, "t", "e")
	assert.Equal(t, []string{"Data4", "Data2"}, rowNames(m))
}

func TestDashboard_ToggleSortLikeHeaderClick(t *testing.T) {
	m := newDashboard(t, TablePrefs{})

	m = press(t, m, "t")
	assert.True(t, m.table.sortDesc)
	assert.Equal(t, []string{"Data4", "Data3", "Data2", "Data1"}, rowNames(m))
	assert.Contains(t, m.View(), "PRIMARY ↓")

	m = press(t, m, "t")
	assert.False(t, m.table.sortDesc)

	// moving to another column still flips the direction
	m = press(t, m, "tab", "tab", "tab", "t")
	assert.Equal(t, 3, m.table.SortIndex())
	assert.True(t, m.table.sortDesc)
	assert.Equal(t, []string{"Data4", "Data3", "Data1", "Data2"}, rowNames(m))

	m = press(t, m, "tab", "t")
	assert.Equal(t, 4, m.table.SortIndex())
	assert.False(t, m.table.sortDesc)

	m = press(t, m, "shift+tab", "s")
	assert.Equal(t, []string{"Data2", "Data1", "Data3", "Data4"}, rowNames(m))

	m = press(t, m, "S")
	assert.Equal(t, []string{"Data4", "Data3", "Data1", "Data2"}, rowNames(m))
}

func TestDashboard_ColumnJump(t *testing.T) {
	m := newDashboard(t, TablePrefs{})
	m = press(t, m, "/", "3")
	assert.Equal(t, 2, m.table.ActiveColumn())
	assert.False(t, m.columnJump)

	m = press(t, m, "/", "9")
	assert.Equal(t, 2, m.table.ActiveColumn())
	assert.Equal(t, "Column 9 unavailable", m.info)
}

func TestDashboard_SearchBar(t *testing.T) {
	m := newDashboard(t, TablePrefs{})

	m = press(t, m, "tab", "f")
	require.Equal(t, model.ModeInsert, m.mode)
	m = press(t, m, "9")
	assert.Equal(t, []string{"Data2", "Data3"}, rowNames(m))

	m = press(t, m, "enter")
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Equal(t, "9", m.table.Search().Filter(1))
	assert.Contains(t, m.View(), `SUMMARY1="9"`)

	// esc reverts what was typed during this edit
	m = press(t, m, "f", "5", "esc")
	assert.Equal(t, "9", m.table.Search().Filter(1))
	assert.Equal(t, []string{"Data2", "Data3"}, rowNames(m))

	m = press(t, m, "x")
	assert.Len(t, m.table.Rows(), 4)
}

func TestDashboard_SearchIsCaseSensitive(t *testing.T) {
	m := newDashboard(t, TablePrefs{})
	m = press(t, m, "f", "d")
	assert.Empty(t, rowNames(m))
	assert.Contains(t, m.View(), "No rows match the current filters.")
	m = press(t, m, "backspace", "D")
	assert.Len(t, m.table.Rows(), 4)
}

func TestDashboard_FilterBySelectedValue(t *testing.T) {
	m := newDashboard(t, TablePrefs{})
	m = press(t, m, "j", "n")
	assert.Equal(t, []string{"Data2"}, rowNames(m))
	m = press(t, m, "n")
	assert.Len(t, m.table.Rows(), 4)
}

func TestDashboard_UndoRedo(t *testing.T) {
	m := newDashboard(t, TablePrefs{})

	m = press(t, m, "e", "t")
	assert.Equal(t, []string{"Data4", "Data2"}, rowNames(m))

	m = press(t, m, "u")
	assert.Equal(t, []string{"Data2", "Data4"}, rowNames(m))
	assert.Equal(t, "Undid: sort", m.info)

	m = press(t, m, "u")
	assert.Equal(t, datasource.ParityAll, m.parity)
	assert.Len(t, m.table.Rows(), 4)

	m = press(t, m, "u")
	assert.Equal(t, "Nothing to undo", m.info)

	m = press(t, m, "ctrl+r", "ctrl+r")
	assert.Equal(t, datasource.ParityEven, m.parity)
	assert.Equal(t, []string{"Data4", "Data2"}, rowNames(m))
}

func TestDashboard_HideColumns(t *testing.T) {
	m := newDashboard(t, TablePrefs{})
	m = press(t, m, "c")
	assert.NotContains(t, m.View(), "PRIMARY ↑")
	assert.Equal(t, 1, m.table.ActiveColumn())

	m = press(t, m, "C")
	assert.Contains(t, m.View(), "PRIMARY ↑")
}

func TestDashboard_HideFilteredColumnWarns(t *testing.T) {
	m := newDashboard(t, TablePrefs{})
	m = press(t, m, "tab", "f", "9", "enter", "c")
	assert.Equal(t, []string{"Data2", "Data3"}, rowNames(m))
	assert.Equal(t, `Column hidden, its search "9" still applies (X clears all)`, m.info)
	assert.Contains(t, m.View(), "its search")

	m = press(t, m, "X")
	assert.Len(t, m.table.Rows(), 4)
}

func TestDashboard_RowDetail(t *testing.T) {
	m := newDashboard(t, TablePrefs{})
	m = press(t, m, "j", "enter")
	require.Equal(t, model.ScreenRowDetail, m.screen)

	view := m.View()
	assert.Contains(t, view, "Data2")
	assert.Contains(t, view, "Summary3:")
	assert.Contains(t, view, "Row 2 of the source data (even)")

	m = press(t, m, "j")
	assert.Contains(t, m.View(), "Row 3 of the source data (odd)")

	m = press(t, m, "esc")
	assert.Equal(t, model.ScreenTable, m.screen)
}

func TestDashboard_PrefsApplied(t *testing.T) {
	m := newDashboard(t, TablePrefs{
		SortKey:       "Summary5",
		SortDesc:      true,
		Parity:        datasource.ParityOdd,
		Filters:       []string{"Data"},
		HiddenColumns: []string{"Summary4"},
		ActiveColumn:  "Summary2",
	})
	assert.Equal(t, []string{"Data3", "Data1"}, rowNames(m))
	assert.Equal(t, 2, m.table.ActiveColumn())
	assert.NotContains(t, m.View(), "SUMMARY4")
}

func TestDashboard_InvalidSortFallsBack(t *testing.T) {
	m := newDashboard(t, TablePrefs{SortKey: "Summary9"})
	assert.Equal(t, -1, m.table.SortIndex())
	assert.Equal(t, []string{"Data1", "Data2", "Data3", "Data4"}, rowNames(m))
	assert.Contains(t, m.error, "Summary9")
	assert.True(t, errors.Is(m.table.Err(), datasource.ErrInvalidColumn))
}

func TestDashboard_EmptyCollection(t *testing.T) {
	ds, err := datasource.New(nil)
	require.NoError(t, err)
	m := New(ds, TablePrefs{SortKey: "Summary1"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = next.(Dashboard)

	assert.Empty(t, m.error)
	assert.Contains(t, m.View(), "No data to display.")

	m = press(t, m, "e", "t", "f", "j", "enter")
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Equal(t, model.ScreenTable, m.screen)
}

func TestDashboard_NarrowLayout(t *testing.T) {
	m := newDashboard(t, TablePrefs{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 70, Height: 30})
	m = next.(Dashboard)
	view := m.View()
	assert.Contains(t, view, "All data")
	assert.NotContains(t, view, "Display all data")
}

func TestDashboard_HelpAndQuit(t *testing.T) {
	m := newDashboard(t, TablePrefs{})
	m = press(t, m, "?")
	assert.Contains(t, m.View(), "Row Filter")
	m = press(t, m, "esc")
	assert.False(t, m.showingHelp)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDashboard_ErrorMsg(t *testing.T) {
	m := newDashboard(t, TablePrefs{})
	next, _ := m.Update(model.ErrorMsg{Err: errors.New("boom")})
	assert.Contains(t, next.View(), "Error: boom")
}
