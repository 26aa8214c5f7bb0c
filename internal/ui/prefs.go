package ui

import (
	"dashtable/internal/config"
	"dashtable/internal/datasource"
)

// TablePrefs stores the table view state the dashboard opens with.
type TablePrefs struct {
	SortKey       string
	SortDesc      bool
	Parity        datasource.RowParity
	Filters       []string
	HiddenColumns []string
	ActiveColumn  string
}

// PrefsFromView converts the view section of the config file. Values are
// validated when the file is loaded; anything unparsable falls back to
// its default here.
func PrefsFromView(v config.ViewConfig) TablePrefs {
	parity, _ := datasource.ParseRowParity(v.Parity)
	return TablePrefs{
		SortKey:       v.Sort,
		SortDesc:      v.Desc,
		Parity:        parity,
		Filters:       append([]string(nil), v.Filters...),
		HiddenColumns: append([]string(nil), v.Hidden...),
		ActiveColumn:  v.Active,
	}
}
