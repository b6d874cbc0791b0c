package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/viewbind/internal/widget"
)

const defaultColSize = 12

// Grid is an editable table with a cell cursor and an inline cell editor.
type Grid struct {
	Base
	table     widget.TableSource
	row, col  int
	editing   bool
	edit      string
	selected  map[int]bool
	colSizes  map[int]int
	top       int
	height    int
	refreshes int
}

func NewGrid(height int) *Grid {
	return &Grid{selected: make(map[int]bool), colSizes: make(map[int]int), height: height}
}

func (g *Grid) SetTable(t widget.TableSource) {
	g.table = t
	g.Refresh()
}

func (g *Grid) Table() widget.TableSource { return g.table }
func (g *Grid) CursorRow() int            { return g.row }
func (g *Grid) CursorCol() int            { return g.col }
func (g *Grid) Focusable() bool           { return g.interactive() }

func (g *Grid) rows() int {
	if g.table == nil {
		return 0
	}
	return g.table.RowCount()
}

func (g *Grid) cols() int {
	if g.table == nil {
		return 0
	}
	return g.table.ColCount()
}

// SetGridCursor emits EventSelectCell and moves the cursor unless a handler
// vetoes the move.
func (g *Grid) SetGridCursor(row, col int) {
	if row < 0 || col < 0 || row >= g.rows() || col >= g.cols() {
		return
	}
	e := g.emit(widget.EventSelectCell, func(e *widget.Event) {
		e.Row, e.Col = row, col
	})
	if !e.Vetoed() {
		g.row, g.col = row, col
	}
}

// MoveBy moves the cursor relative to its position.
func (g *Grid) MoveBy(drow, dcol int) {
	g.SetGridCursor(g.row+drow, g.col+dcol)
}

func (g *Grid) MakeCellVisible(row, col int) {
	switch {
	case row < g.top:
		g.top = row
	case g.height > 0 && row >= g.top+g.height:
		g.top = row - g.height + 1
	}
}

func (g *Grid) IsCellEditControlEnabled() bool { return g.editing }

// EnableCellEditControl opens the editor on the cursor cell.
func (g *Grid) EnableCellEditControl() {
	if g.editing || g.rows() == 0 {
		return
	}
	g.editing = true
	g.edit = cellText(g.table.Cell(g.row, g.col))
}

// TypeInCell opens the editor if needed and replaces its text.
func (g *Grid) TypeInCell(s string) {
	g.EnableCellEditControl()
	if g.editing {
		g.edit = s
	}
}

// EditText returns the text of the open editor.
func (g *Grid) EditText() string { return g.edit }

// DisableCellEditControl closes the editor. A changed value is stored in the
// table and announced with EventCellChanged.
func (g *Grid) DisableCellEditControl() {
	if !g.editing {
		return
	}
	g.editing = false
	if g.edit == cellText(g.table.Cell(g.row, g.col)) {
		return
	}
	g.table.SetCell(g.row, g.col, g.edit)
	row, col := g.row, g.col
	g.emit(widget.EventCellChanged, func(e *widget.Event) {
		e.Row, e.Col = row, col
	})
}

// CancelEdit closes the editor without storing its text.
func (g *Grid) CancelEdit() {
	g.editing = false
	g.edit = ""
}

// SelectRows selects whole rows as if the user clicked their labels.
func (g *Grid) SelectRows(rows ...int) {
	clear(g.selected)
	for _, r := range rows {
		g.selected[r] = true
	}
}

func (g *Grid) SelectedRows() []int {
	rows := make([]int, 0, len(g.selected))
	for r := range g.selected {
		rows = append(rows, r)
	}
	slices.Sort(rows)
	return rows
}

func (g *Grid) ClearSelection() { clear(g.selected) }

func (g *Grid) SetColSize(col, width int) { g.colSizes[col] = width }

func (g *Grid) ColSize(col int) int {
	if w, ok := g.colSizes[col]; ok {
		return w
	}
	return defaultColSize
}

// Refresh redraws the grid and pulls the cursor back inside the table.
func (g *Grid) Refresh() {
	g.refreshes++
	g.row = max(0, min(g.row, g.rows()-1))
	g.col = max(0, min(g.col, g.cols()-1))
}

// Refreshes returns how many times Refresh ran.
func (g *Grid) Refreshes() int { return g.refreshes }

// PressKey emits EventKeyDown for k and applies the default behaviour when a
// handler skips it.
func (g *Grid) PressKey(k widget.Key) {
	e := g.emit(widget.EventKeyDown, func(e *widget.Event) {
		e.Key = k
		e.Row, e.Col = g.row, g.col
	})
	if !e.Skipped() {
		return
	}
	switch k {
	case widget.KeyUp:
		g.MoveBy(-1, 0)
	case widget.KeyDown:
		g.MoveBy(1, 0)
	case widget.KeyLeft:
		g.MoveBy(0, -1)
	case widget.KeyRight, widget.KeyTab:
		g.MoveBy(0, 1)
	case widget.KeyEnter, widget.KeyNumpadEnter:
		g.DisableCellEditControl()
		g.MoveBy(1, 0)
	case widget.KeyEscape:
		g.CancelEdit()
	}
}

var gridKeys = map[tea.KeyType]widget.Key{
	tea.KeyDelete:    widget.KeyDelete,
	tea.KeyBackspace: widget.KeyBack,
	tea.KeyEnter:     widget.KeyEnter,
	tea.KeyEsc:       widget.KeyEscape,
	tea.KeyUp:        widget.KeyUp,
	tea.KeyDown:      widget.KeyDown,
	tea.KeyLeft:      widget.KeyLeft,
	tea.KeyRight:     widget.KeyRight,
}

func (g *Grid) HandleKey(msg tea.KeyMsg) bool {
	if g.editing && msg.Type != tea.KeyEnter && msg.Type != tea.KeyEsc {
		if s, ok := editText(g.edit, msg); ok {
			g.edit = s
			return true
		}
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		g.EnableCellEditControl()
		g.edit = ""
		g.edit, _ = editText(g.edit, msg)
		return true
	}
	if k, ok := gridKeys[msg.Type]; ok {
		g.PressKey(k)
		return true
	}
	return false
}

func (g *Grid) cell(text string, col int) string {
	w := g.ColSize(col)
	if lipgloss.Width(text) > w {
		runes := []rune(text)
		text = string(runes[:max(0, min(len(runes), w-1))]) + "…"
	}
	return fmt.Sprintf("%-*s", w, text)
}

func (g *Grid) View(st Styles) string {
	if g.table == nil {
		return ""
	}
	var header []string
	for c := 0; c < g.cols(); c++ {
		header = append(header, g.cell(g.table.ColLabel(c), c))
	}
	lines := []string{st.Header.Render(strings.Join(header, " "))}

	end := g.rows()
	if g.height > 0 {
		end = min(end, g.top+g.height)
	}
	for r := g.top; r < end; r++ {
		var cells []string
		for c := 0; c < g.cols(); c++ {
			text := cellText(g.table.Cell(r, c))
			if r == g.row && c == g.col && g.editing {
				text = g.edit + "▏"
			}
			cell := g.cell(text, c)
			switch {
			case r == g.row && c == g.col && g.focused:
				cell = st.Cursor.Render(cell)
			case g.selected[r]:
				cell = st.Selected.Render(cell)
			default:
				cell = st.Value.Render(cell)
			}
			cells = append(cells, cell)
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}
