package table

import (
	"log/slog"

	"github.com/san-kum/viewbind/internal/binding"
	"github.com/san-kum/viewbind/internal/sched"
	"github.com/san-kum/viewbind/internal/widget"
)

// Grid binds an editable grid to a Store and commits edits as the cursor
// moves.
type Grid[R any] struct {
	binding.Lifecycle
	w        widget.Grid
	table    Store[R]
	commitOn CommitOn
	sched    sched.Scheduler
	log      *slog.Logger

	// vetoNextSelect suppresses the deferred cursor move after a failed cell
	// commit, which would otherwise run the same commit again.
	vetoNextSelect bool
}

// BindGrid shows t in w and commits edits according to on.
func BindGrid[R any](w widget.Grid, t Store[R], on CommitOn, s sched.Scheduler, opts ...binding.Option) *Grid[R] {
	o := binding.NewOptions(opts...)
	g := &Grid[R]{w: w, table: t, commitOn: on, sched: s, log: o.Logger}
	g.Attach(w)

	w.SetTable(t)
	g.onTableChange(Change{Kind: Reset, Count: t.RowCount()})
	g.Own(t.Subscribe(g.onTableChange))

	g.Listen(w, widget.EventCellChanged, g.onCellChanged)
	g.Listen(w, widget.EventSelectCell, g.onSelectCell)
	g.Listen(w, widget.EventKeyDown, g.onKeyDown)
	return g
}

// CommitOn returns the commit granularity.
func (g *Grid[R]) CommitOn() CommitOn { return g.commitOn }

func (g *Grid[R]) onTableChange(Change) {
	if g.Closed() {
		return
	}
	for i, col := range g.table.Columns() {
		if col.Width > 0 {
			g.w.SetColSize(i, col.Width)
		}
	}
	g.w.Refresh()
}

func (g *Grid[R]) onCellChanged(e *widget.Event) {
	g.cellChanged(e.Row, e.Col)
	e.Skip()
}

func (g *Grid[R]) cellChanged(row, col int) {
	if g.commitOn == CommitCell && !g.table.SaveCell(row, col) {
		// The pending cursor move would run this commit again and fail the
		// same way.
		g.vetoNextSelect = true
	}
	g.w.Refresh()
}

func (g *Grid[R]) doSelectCell(row, col int) {
	if !g.vetoNextSelect {
		g.w.SetGridCursor(row, col)
	}
	g.vetoNextSelect = false
	g.w.Refresh()
}

func (g *Grid[R]) onSelectCell(e *widget.Event) {
	if g.commitOn == CommitGrid {
		e.Skip()
		return
	}
	fromRow, fromCol := g.w.CursorRow(), g.w.CursorCol()
	toRow, toCol := e.Row, e.Col

	if g.w.IsCellEditControlEnabled() {
		// Closing the editor commits its value; the move has to wait until
		// that has been processed.
		g.w.DisableCellEditControl()
		g.Defer(g.sched, func() { g.doSelectCell(toRow, toCol) })
		e.Veto()
		return
	}

	// Only a deferred move may be suppressed; a direct one clears the flag.
	g.vetoNextSelect = false
	ok := true
	switch {
	case g.commitOn == CommitCell && (fromRow != toRow || fromCol != toCol):
		ok = g.table.SaveCell(fromRow, fromCol)
	case g.commitOn == CommitRow && fromRow != toRow:
		ok = g.table.SaveRow(fromRow)
	case g.commitOn == CommitCol && fromCol != toCol:
		ok = g.table.SaveCol(fromCol)
	}
	if !ok {
		g.log.Debug("table: cursor move vetoed", "row", fromRow, "col", fromCol)
		e.Veto()
		return
	}
	e.Skip()
}

func (g *Grid[R]) onKeyDown(e *widget.Event) {
	switch e.Key {
	case widget.KeyDelete, widget.KeyBack, widget.KeyNumpadDelete:
		if g.w.IsCellEditControlEnabled() {
			e.Skip()
			return
		}
		if rows := g.w.SelectedRows(); len(rows) > 0 {
			g.table.DeleteRows(rows)
			g.w.ClearSelection()
			return
		}
		row, col := g.w.CursorRow(), g.w.CursorCol()
		g.table.SetCell(row, col, nil)
		g.cellChanged(row, col)

	case widget.KeyEnter, widget.KeyNumpadEnter:
		// Commit the editor first so that its value counts when deciding
		// whether a new row is needed.
		g.w.DisableCellEditControl()
		row := g.w.CursorRow()
		if g.table.RowCount() == 0 {
			row = -1
		}
		if row == g.table.RowCount()-1 {
			g.table.CreateRow()
		}
		g.w.SetGridCursor(row+1, 0)
		g.w.MakeCellVisible(g.w.CursorRow(), 0)

	default:
		e.Skip()
	}
}

// RequestClose decides whether the window showing the grid may close. An open
// editor is committed first and close is retried once that has been
// processed. Otherwise all rows are committed.
func (g *Grid[R]) RequestClose(closeWindow func()) bool {
	if g.w.IsCellEditControlEnabled() {
		g.w.DisableCellEditControl()
		g.Defer(g.sched, closeWindow)
		return false
	}
	return g.table.SaveGrid()
}

// GuardClose vetoes close requests of w while RequestClose refuses them.
func (g *Grid[R]) GuardClose(w widget.Source, closeWindow func()) {
	g.Listen(w, widget.EventClose, func(e *widget.Event) {
		if !g.RequestClose(closeWindow) {
			e.Veto()
			return
		}
		e.Skip()
	})
}
