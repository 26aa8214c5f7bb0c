package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const searchPlaceholder = "Search..."

// SearchBar holds one text filter per table column.
type SearchBar struct {
	inputs  []textinput.Model
	focused int
	editing bool
}

// NewSearchBar creates a search bar for n columns. Only the first input
// shows a placeholder.
func NewSearchBar(n int) *SearchBar {
	inputs := make([]textinput.Model, n)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Prompt = ""
		inputs[i].CharLimit = 64
		if i == 0 {
			inputs[i].Placeholder = searchPlaceholder
		}
	}
	return &SearchBar{inputs: inputs}
}

// Filters returns the current filter text of every column.
func (s *SearchBar) Filters() []string {
	out := make([]string, len(s.inputs))
	for i, in := range s.inputs {
		out[i] = in.Value()
	}
	return out
}

// SetFilters replaces the filter texts; missing entries are cleared and
// extra entries ignored.
func (s *SearchBar) SetFilters(filters []string) {
	for i := range s.inputs {
		v := ""
		if i < len(filters) {
			v = filters[i]
		}
		s.inputs[i].SetValue(v)
	}
}

// Filter returns the filter text of column i.
func (s *SearchBar) Filter(i int) string {
	if i < 0 || i >= len(s.inputs) {
		return ""
	}
	return s.inputs[i].Value()
}

// SetFilter sets the filter text of column i.
func (s *SearchBar) SetFilter(i int, value string) {
	if i < 0 || i >= len(s.inputs) {
		return
	}
	s.inputs[i].SetValue(value)
}

// Editing reports whether an input has keyboard focus.
func (s *SearchBar) Editing() bool {
	return s.editing
}

// Focused returns the column whose input has focus.
func (s *SearchBar) Focused() int {
	return s.focused
}

// Focus gives keyboard focus to the input of column i.
func (s *SearchBar) Focus(i int) tea.Cmd {
	if i < 0 || i >= len(s.inputs) {
		return nil
	}
	s.inputs[s.focused].Blur()
	s.focused = i
	s.editing = true
	s.inputs[i].CursorEnd()
	return s.inputs[i].Focus()
}

// Blur removes keyboard focus from every input.
func (s *SearchBar) Blur() {
	if len(s.inputs) > 0 {
		s.inputs[s.focused].Blur()
	}
	s.editing = false
}

// Update forwards a key to the focused input and reports whether its
// value changed.
func (s *SearchBar) Update(msg tea.Msg) (tea.Cmd, bool) {
	if !s.editing || len(s.inputs) == 0 {
		return nil, false
	}
	before := s.inputs[s.focused].Value()
	var cmd tea.Cmd
	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(msg)
	return cmd, s.inputs[s.focused].Value() != before
}

// View renders the inputs of the given columns using the table's widths.
func (s *SearchBar) View(columns []int, widths []int) string {
	var cells []string
	for i, idx := range columns {
		if i >= len(widths) || idx >= len(s.inputs) {
			continue
		}
		in := s.inputs[idx]
		in.Width = max(1, widths[i]-3)
		style := InputStyle
		if s.Editing() && idx == s.Focused() {
			style = ActiveInputStyle
		}
		cells = append(cells, style.Width(widths[i]).MaxHeight(1).Render(in.View()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWithSeparator(cells)...)
}
