package ui

import (
	"strings"

	"dashtable/internal/model"
	"dashtable/internal/util"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(h help.Model, screen model.Screen, mode model.Mode, keys KeyMap, formKeys FormKeyMap, width int) string {
	var line string
	switch {
	case mode == model.ModeInsert:
		line = h.View(formKeys)
	case screen == model.ScreenRowDetail:
		line = h.View(detailKeyMap{keys})
	default:
		line = h.View(keys)
	}
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(max(0, width-4)).
		Height(max(0, height-6)).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"gg", "Jump to top"},
			{"G", "Jump to bottom"},
			{"ctrl+d", "Half page down"},
			{"ctrl+u", "Half page up"},
			{"enter / l", "Open row detail"},
			{"h / esc", "Back to table"},
		}),
		titleSection("Columns"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Cycle active column"},
			{"/ then 1-9", "Jump to column"},
			{"t", "Sort by active column, flipping direction"},
			{"s / S", "Sort active column asc/desc"},
			{"c / C", "Hide active column / show all"},
		}),
		titleSection("Search"),
		helpSection([]helpItem{
			{"f", "Edit search for active column"},
			{"n", "Search active column for selected value"},
			{"x / X", "Clear active column search / all searches"},
			{"enter", "Keep search and return to table"},
			{"esc", "Revert search and return to table"},
		}),
		titleSection("Row Filter"),
		helpSection([]helpItem{
			{"e", "Even rows of data"},
			{"o", "Odd rows of data"},
			{"a", "All data"},
			{"[ / ]", "Previous / next filter"},
		}),
		titleSection("General"),
		helpSection([]helpItem{
			{"u / ctrl+r", "Undo / redo"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

const helpKeyWidth = 16

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(util.PadRight(item.key, helpKeyWidth))+" "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
