package widget

import "time"

// Widget is the part every widget kind shares.
type Widget interface {
	Source
}

// Valuer is a widget displaying an editable value of type T.
type Valuer[T any] interface {
	Widget
	Value() T
	SetValue(v T)
}

// Labeler displays a text label.
type Labeler interface {
	Widget
	Label() string
	SetLabel(s string)
}

// Titler is a window with a title.
type Titler interface {
	Widget
	Title() string
	SetTitle(s string)
}

// StatusBar displays text in numbered fields.
type StatusBar interface {
	Widget
	StatusText(field int) string
	SetStatusText(s string, field int)
}

// Focuser can take keyboard focus.
type Focuser interface {
	Widget
	HasFocus() bool
	SetFocus()
}

// Enabler can be enabled and disabled.
type Enabler interface {
	Widget
	IsEnabled() bool
	Enable(on bool)
}

// Node is a widget in a window hierarchy. Parent returns nil for top-level
// windows.
type Node interface {
	Parent() Node
}

// Shower can be shown and hidden.
type Shower interface {
	Widget
	Node
	IsShown() bool
	Show(on bool)
}

// Layouter is a container that can lay out its children.
type Layouter interface {
	Layout()
}

// SizeInvalidator caches a best size that can be invalidated.
type SizeInvalidator interface {
	InvalidateBestSize()
}

// Size is a width and height in toolkit units.
type Size struct {
	W, H int
}

// BestSizer is a top-level window that tracks its best size.
type BestSizer interface {
	MinBestSize() Size
	SetSize(s Size)
}

// DateTimeField is a text field parsing date/time values with a layout.
type DateTimeField interface {
	Valuer[string]
	Layout() string
	// DateTimeValue returns the parsed value and whether the text is valid.
	DateTimeValue() (time.Time, bool)
}

// FilePicker emits EventFilePicked with Event.Path.
type FilePicker interface {
	Widget
	Path() string
}

// Chooser is a single-selection widget over a list of strings.
type Chooser interface {
	Widget
	SetItems(items []string)
	Selection() int
	SetSelection(i int)
}

// Combo is an editable text field with a drop-down of items carrying client
// data.
type Combo interface {
	Widget
	Value() string
	SetValue(s string)
	Selection() int
	SetStringSelection(s string) bool
	Append(text string, data any)
	Clear()
	Count() int
	ClientData(i int) any
}

// Freezer suspends redrawing while a widget is updated in bulk.
type Freezer interface {
	Freeze()
	Thaw()
}

// Popuper can open its drop-down.
type Popuper interface {
	Popup()
}

// TableSource is the tabular data a grid or list displays.
type TableSource interface {
	RowCount() int
	ColCount() int
	ColLabel(col int) string
	Cell(row, col int) any
	SetCell(row, col int, v any)
}

// Grid is an editable table with a cell cursor.
type Grid interface {
	Widget
	SetTable(t TableSource)
	CursorRow() int
	CursorCol() int
	// SetGridCursor requests a cursor move. It emits EventSelectCell and
	// moves only if the event was not vetoed.
	SetGridCursor(row, col int)
	MakeCellVisible(row, col int)
	IsCellEditControlEnabled() bool
	// DisableCellEditControl closes the open editor, storing its value and
	// emitting EventCellChanged.
	DisableCellEditControl()
	SelectedRows() []int
	ClearSelection()
	SetColSize(col, width int)
	Refresh()
}

// ListCtrl is a virtual multi-selection list with columns.
type ListCtrl interface {
	Widget
	InsertColumn(col int, label string, width int)
	SetItemCount(n int)
	SetItemText(fn func(row, col int) string)
	SelectedIndices() []int
	SetSelected(row int, on bool)
}
