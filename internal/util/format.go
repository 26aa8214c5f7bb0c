package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateString truncates s to maxWidth terminal cells and adds "..." if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth < 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadRight pads s with spaces to width terminal cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// FormatCount formats "shown/total" and drops the total when nothing is hidden.
func FormatCount(shown, total int, noun string) string {
	if shown == total {
		return fmt.Sprintf("%d %s", total, noun)
	}
	return fmt.Sprintf("%d/%d %s", shown, total, noun)
}

// FormatFilters renders non-empty column filters as LABEL="value" pairs.
func FormatFilters(labels, filters []string) string {
	var parts []string
	for i, f := range filters {
		if f == "" || i >= len(labels) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%q", strings.ToUpper(labels[i]), f))
	}
	return strings.Join(parts, " ")
}
