package ui

import (
	"strings"

	"dashtable/internal/datasource"

	"github.com/charmbracelet/lipgloss"
)

type filterButton struct {
	value      datasource.RowParity
	icon       string
	caption    string
	subcaption string
}

// filterButtons are listed in display order.
var filterButtons = []filterButton{
	{
		value:      datasource.ParityEven,
		icon:       "⚁",
		caption:    "Even rows of data",
		subcaption: "Display rows 2,4,6 etc.",
	},
	{
		value:      datasource.ParityOdd,
		icon:       "⚀",
		caption:    "Odd rows of data",
		subcaption: "Display rows 1,3,5 etc.",
	},
	{
		value:      datasource.ParityAll,
		icon:       "⚂",
		caption:    "All data",
		subcaption: "Display all data",
	},
}

// FilterBar renders the row parity toggles. It holds no state of its own:
// the selection belongs to the dashboard, which mounts the bar into its
// own pane apart from the table.
type FilterBar struct {
	selected datasource.RowParity
}

// NewFilterBar creates a filter bar showing selected as active.
func NewFilterBar(selected datasource.RowParity) FilterBar {
	return FilterBar{selected: selected}
}

// Step returns the parity delta buttons away from the selected one,
// wrapping around the ends.
func (f FilterBar) Step(delta int) datasource.RowParity {
	idx := 0
	for i, b := range filterButtons {
		if b.value == f.selected {
			idx = i
			break
		}
	}
	n := len(filterButtons)
	idx = ((idx+delta)%n + n) % n
	return filterButtons[idx].value
}

// ViewVertical renders the buttons stacked, with subcaptions, for a
// sidebar pane of the given width.
func (f FilterBar) ViewVertical(width, height int) string {
	var items []string
	for _, b := range filterButtons {
		items = append(items, f.renderButton(b, width-2, true))
	}
	body := strings.Join(items, "\n\n")
	return FilterBarPaneStyle.
		Width(width).
		Height(height).
		Render(LabelStyle.Render("Rows") + "\n\n" + body)
}

// ViewHorizontal renders the buttons on one line for narrow terminals.
func (f FilterBar) ViewHorizontal(width int) string {
	var items []string
	for _, b := range filterButtons {
		items = append(items, f.renderButton(b, 0, false))
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(strings.Join(items, " "))
}

func (f FilterBar) renderButton(b filterButton, width int, withSubcaption bool) string {
	style := FilterButtonStyle
	if b.value == f.selected {
		style = FilterButtonActiveStyle
	}
	if width > 0 {
		style = style.Width(width)
	}
	label := style.Render(b.icon + " " + b.caption)
	if !withSubcaption {
		return label
	}
	return label + "\n" + FilterSubcaptionStyle.PaddingLeft(3).Render(b.subcaption)
}
