package roster

import (
	"log/slog"
	"time"

	"github.com/san-kum/viewbind/internal/table"
)

// DefaultColumns is the grid layout used without configuration.
var DefaultColumns = []table.Column{
	{Attribute: "first_name", Label: "First name", Width: 14},
	{Attribute: "last_name", Label: "Last name", Width: 16},
	{Attribute: "category", Label: "Category", Width: 9, Type: "choice"},
	{Attribute: "level", Label: "Level", Width: 5},
	{Attribute: "birth_date", Label: "Born", Width: 10},
	{Attribute: "active", Label: "Active", Width: 6},
}

// NewTable wraps skaters in a table that validates rows and stores them with
// persist when committed. New rows get a fresh id and today as birth date.
func NewTable(skaters []*Skater, columns []table.Column, persist func(*Skater) error, log *slog.Logger) *table.Table[Skater] {
	var t *table.Table[Skater]
	t = table.New(skaters, Fields, columns,
		table.WithValidate(Validate),
		table.WithPersist(persist),
		table.WithRemove(persist),
		table.WithLogger[Skater](log),
		table.WithNew(func() *Skater {
			y, m, d := time.Now().Date()
			return &Skater{
				ID:        NextID(t.Rows()),
				Category:  "senior",
				Active:    true,
				BirthDate: time.Date(y, m, d, 0, 0, 0, 0, time.Local),
			}
		}))
	return t
}
