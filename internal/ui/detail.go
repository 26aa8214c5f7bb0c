package ui

import (
	"fmt"
	"strings"

	"dashtable/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// RowDetailModel represents the row detail screen.
type RowDetailModel struct {
	row     model.DisplayRow
	labels  []string
	sortIdx int
}

// NewRowDetailModel creates a new row detail model.
func NewRowDetailModel(row model.DisplayRow, labels []string, sortIdx int) *RowDetailModel {
	return &RowDetailModel{
		row:     row,
		labels:  labels,
		sortIdx: sortIdx,
	}
}

// Title returns the breadcrumb label for the row.
func (m *RowDetailModel) Title() string {
	return m.row.Primary
}

// View renders the row detail.
func (m *RowDetailModel) View(width, height int) string {
	shortcuts := HelpDescStyle.Render("h back")

	var fields []string
	for i, label := range m.labels {
		field := renderField(label, m.row.Cell(i))
		if i == m.sortIdx {
			field += " " + lipgloss.NewStyle().Foreground(ColorYellow).Render("◂ sorted")
		}
		fields = append(fields, field)
	}

	divider := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("─", max(0, width-8)))

	parity := "odd"
	if m.row.Position%2 == 0 {
		parity = "even"
	}
	position := HelpDescStyle.Render(fmt.Sprintf("Row %d of the source data (%s)", m.row.Position, parity))

	content := PanelStyle.
		Width(max(0, width-4)).
		Render(strings.Join([]string{strings.Join(fields, "\n"), divider, position}, "\n\n"))

	header := lipgloss.NewStyle().
		Width(max(0, width-4)).
		Align(lipgloss.Right).
		Render(shortcuts)

	return lipgloss.JoinVertical(lipgloss.Left, header, content)
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + lipgloss.NewStyle().Foreground(ColorText).Render(value)
}
