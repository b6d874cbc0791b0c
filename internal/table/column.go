package table

import (
	"fmt"
	"strings"
)

// Column maps a table column onto a row attribute.
type Column struct {
	Attribute string `yaml:"attribute" toml:"attribute"`
	Label     string `yaml:"label" toml:"label"`
	// Width is the column width in characters. Zero keeps the widget default.
	Width int `yaml:"width,omitempty" toml:"width,omitempty"`
	// Type names the cell editor. Empty means plain text.
	Type string `yaml:"type,omitempty" toml:"type,omitempty"`
}

// CommitOn selects when grid edits are committed.
type CommitOn string

const (
	// CommitCell commits a cell before the cursor leaves it.
	CommitCell CommitOn = "cell"
	// CommitRow commits a row before the cursor moves to another row.
	CommitRow CommitOn = "row"
	// CommitCol commits a column before the cursor moves to another column.
	CommitCol CommitOn = "col"
	// CommitGrid leaves committing to an explicit SaveGrid.
	CommitGrid CommitOn = "grid"
)

// ParseCommitOn parses a commit granularity. "list" is accepted as an alias
// of grid.
func ParseCommitOn(s string) (CommitOn, error) {
	switch c := CommitOn(strings.ToLower(strings.TrimSpace(s))); c {
	case CommitCell, CommitRow, CommitCol, CommitGrid:
		return c, nil
	case "list":
		return CommitGrid, nil
	}
	return "", fmt.Errorf("table: unknown commit granularity %q", s)
}

func (c CommitOn) String() string { return string(c) }
