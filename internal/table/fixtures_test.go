package table_test

import (
	"errors"
	"time"

	"github.com/san-kum/viewbind/internal/observable"
	"github.com/san-kum/viewbind/internal/table"
)

type skater struct {
	Name   string
	Level  int
	Born   time.Time
	Active bool
}

var skaterFields = observable.Fields[skater]{
	"name": observable.FieldOf(
		func(s *skater) string { return s.Name },
		func(s *skater, v string) { s.Name = v }),
	"level": observable.FieldOf(
		func(s *skater) int { return s.Level },
		func(s *skater, v int) { s.Level = v }),
	"born": observable.FieldOf(
		func(s *skater) time.Time { return s.Born },
		func(s *skater, v time.Time) { s.Born = v }),
	"active": observable.FieldOf(
		func(s *skater) bool { return s.Active },
		func(s *skater, v bool) { s.Active = v }),
}

var skaterColumns = []table.Column{
	{Attribute: "name", Label: "Name", Width: 16},
	{Attribute: "level", Label: "Level", Width: 5},
	{Attribute: "born", Label: "Born"},
	{Attribute: "active", Label: "Active"},
}

var errNameRequired = errors.New("name required")

func validSkater(s *skater) error {
	if s.Name == "" {
		return errNameRequired
	}
	return nil
}

func newSkaters() []*skater {
	return []*skater{
		{Name: "Bouke", Level: 3},
		{Name: "Arie", Level: 5},
		{Name: "Kees", Level: 1},
	}
}

// spyStore records the commits a binding asks for.
type spyStore struct {
	*table.Table[skater]
	savedCells [][2]int
	savedRows  []int
	savedCols  []int
	persisted  []string
}

func newSpyStore(rows []*skater) *spyStore {
	s := &spyStore{}
	s.Table = table.New(rows, skaterFields, skaterColumns,
		table.WithValidate(validSkater),
		table.WithPersist(func(r *skater) error {
			s.persisted = append(s.persisted, r.Name)
			return nil
		}))
	return s
}

func (s *spyStore) SaveCell(row, col int) bool {
	s.savedCells = append(s.savedCells, [2]int{row, col})
	return s.Table.SaveCell(row, col)
}

func (s *spyStore) SaveRow(row int) bool {
	s.savedRows = append(s.savedRows, row)
	return s.Table.SaveRow(row)
}

func (s *spyStore) SaveCol(col int) bool {
	s.savedCols = append(s.savedCols, col)
	return s.Table.SaveCol(col)
}
