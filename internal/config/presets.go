package config

import (
	"slices"
	"sort"

	"github.com/san-kum/viewbind/internal/table"
)

var Presets = map[string]*Config{
	"full": {
		CommitOn: "row",
		Columns: []table.Column{
			{Attribute: "first_name", Label: "First name", Width: 14},
			{Attribute: "last_name", Label: "Last name", Width: 16},
			{Attribute: "category", Label: "Category", Width: 10, Type: "choice"},
			{Attribute: "level", Label: "Level", Width: 5},
			{Attribute: "birth_date", Label: "Born", Width: 10},
			{Attribute: "active", Label: "Active", Width: 6},
		},
	},
	"compact": {
		CommitOn: "row",
		Columns: []table.Column{
			{Attribute: "first_name", Label: "Name", Width: 12},
			{Attribute: "level", Label: "Lvl", Width: 3},
		},
	},
	"quick-entry": {
		CommitOn: "cell",
		Columns: []table.Column{
			{Attribute: "first_name", Label: "First name", Width: 14},
			{Attribute: "last_name", Label: "Last name", Width: 16},
			{Attribute: "level", Label: "Level", Width: 5},
		},
	},
	"review": {
		CommitOn: "grid",
		Columns: []table.Column{
			{Attribute: "first_name", Label: "First name", Width: 14},
			{Attribute: "category", Label: "Category", Width: 10, Type: "choice"},
			{Attribute: "active", Label: "Active", Width: 6},
		},
	},
}

// GetPreset returns a copy of the named preset with defaults filled in, or
// nil when there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := &Config{
		DataDir:  DefaultDataDir,
		Roster:   DefaultRoster,
		CommitOn: p.CommitOn,
		Theme:    DefaultTheme,
		Columns:  slices.Clone(p.Columns),
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
