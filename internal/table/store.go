package table

import "github.com/san-kum/viewbind/internal/widget"

// Store is the row store a grid or list binding works on.
type Store[R any] interface {
	widget.TableSource
	Columns() []Column

	// SaveCell, SaveRow, SaveCol and SaveGrid commit pending edits and
	// report whether the commit was accepted.
	SaveCell(row, col int) bool
	SaveRow(row int) bool
	SaveCol(col int) bool
	SaveGrid() bool

	CreateRow()
	DeleteRows(rows []int)
	RowAt(i int) *R
	IndexOf(r *R) int

	// Subscribe calls fn after every structural change.
	Subscribe(fn func(Change)) (cancel func())
}

// ChangeKind tells what a Change did to the table.
type ChangeKind int

const (
	RowsInserted ChangeKind = iota
	RowsDeleted
	ValuesUpdated
	Reset
)

func (k ChangeKind) String() string {
	switch k {
	case RowsInserted:
		return "rows inserted"
	case RowsDeleted:
		return "rows deleted"
	case ValuesUpdated:
		return "values updated"
	case Reset:
		return "reset"
	}
	return "unknown"
}

// Change describes a structural change of Count rows starting at Pos.
type Change struct {
	Kind  ChangeKind
	Pos   int
	Count int
}
