package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/viewbind/internal/widget"
)

type listColumn struct {
	label string
	width int
}

// ListCtrl is a virtual multi-selection list in report mode.
type ListCtrl struct {
	Base
	columns  []listColumn
	count    int
	text     func(row, col int) string
	selected map[int]bool
	current  int
}

func NewListCtrl() *ListCtrl {
	return &ListCtrl{selected: make(map[int]bool)}
}

func (l *ListCtrl) Focusable() bool { return l.interactive() }
func (l *ListCtrl) ItemCount() int  { return l.count }

func (l *ListCtrl) InsertColumn(col int, label string, width int) {
	c := listColumn{label: label, width: width}
	col = max(0, min(col, len(l.columns)))
	l.columns = slices.Insert(l.columns, col, c)
}

func (l *ListCtrl) SetItemCount(n int) {
	l.count = n
	for r := range l.selected {
		if r >= n {
			delete(l.selected, r)
		}
	}
}

func (l *ListCtrl) SetItemText(fn func(row, col int) string) { l.text = fn }

// ItemText returns the text shown in a cell.
func (l *ListCtrl) ItemText(row, col int) string {
	if l.text == nil {
		return ""
	}
	return l.text(row, col)
}

func (l *ListCtrl) SelectedIndices() []int {
	rows := make([]int, 0, len(l.selected))
	for r := range l.selected {
		rows = append(rows, r)
	}
	slices.Sort(rows)
	return rows
}

func (l *ListCtrl) SetSelected(row int, on bool) {
	if row < 0 || row >= l.count {
		return
	}
	if on {
		l.selected[row] = true
	} else {
		delete(l.selected, row)
	}
}

// Click selects row as if the user clicked it. Without extend the previous
// selection is dropped first.
func (l *ListCtrl) Click(row int, extend bool) {
	if row < 0 || row >= l.count {
		return
	}
	l.current = row
	if !extend {
		for _, r := range l.SelectedIndices() {
			if r == row {
				continue
			}
			delete(l.selected, r)
			l.emit(widget.EventItemDeselected, func(e *widget.Event) { e.Row = r })
		}
	}
	if extend && l.selected[row] {
		delete(l.selected, row)
		l.emit(widget.EventItemDeselected, func(e *widget.Event) { e.Row = row })
		return
	}
	l.selected[row] = true
	l.emit(widget.EventItemSelected, func(e *widget.Event) { e.Row = row })
}

func (l *ListCtrl) HandleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp:
		l.Click(max(0, l.current-1), false)
	case tea.KeyDown:
		l.Click(min(l.count-1, l.current+1), false)
	case tea.KeySpace:
		l.Click(l.current, true)
	default:
		return false
	}
	return true
}

func (l *ListCtrl) View(st Styles) string {
	var header []string
	for _, c := range l.columns {
		header = append(header, fmt.Sprintf("%-*s", c.width, c.label))
	}
	lines := []string{st.Header.Render(strings.Join(header, " "))}
	for r := 0; r < l.count; r++ {
		var cells []string
		for c, col := range l.columns {
			cells = append(cells, fmt.Sprintf("%-*s", col.width, l.ItemText(r, c)))
		}
		line := strings.Join(cells, " ")
		switch {
		case l.selected[r]:
			line = st.Selected.Render(line)
		case r == l.current && l.focused:
			line = st.Focused.Render(line)
		default:
			line = st.Value.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
