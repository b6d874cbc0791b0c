package table

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/san-kum/viewbind/internal/binding"
	"github.com/san-kum/viewbind/internal/observable"
	"github.com/san-kum/viewbind/internal/sched"
	"github.com/san-kum/viewbind/internal/widget"
)

// List binds a virtual list to a Store and mirrors its multi-selection to an
// attribute holding the selected rows.
type List[R any] struct {
	binding.Lifecycle
	w         widget.ListCtrl
	table     Store[R]
	selection observable.Accessor[[]*R]
	log       *slog.Logger
}

// BindList shows t in w. selection receives the selected rows; setting it
// selects them in the list.
func BindList[R any](w widget.ListCtrl, t Store[R], selection observable.Accessor[[]*R], s sched.Scheduler, opts ...binding.Option) *List[R] {
	o := binding.NewOptions(opts...)
	l := &List[R]{w: w, table: t, selection: selection, log: o.Logger}
	l.Attach(w)

	for i, col := range t.Columns() {
		w.InsertColumn(i, col.Label, col.Width)
	}
	w.SetItemText(func(row, col int) string { return Text(t.Cell(row, col)) })
	w.SetItemCount(t.RowCount())
	l.Own(t.Subscribe(l.updateValues))

	binding.Watch(&l.Lifecycle, selection, s, l.updateView)
	if !o.ReadOnly {
		l.Listen(w, widget.EventItemSelected, l.updateModel)
		l.Listen(w, widget.EventItemDeselected, l.updateModel)
	}
	return l
}

// updateValues resizes the list. Inserted or deleted rows shift the indices,
// so the widget selection is rebuilt from the model and rows that left the
// table are dropped from it.
func (l *List[R]) updateValues(c Change) {
	if l.Closed() {
		return
	}
	l.w.SetItemCount(l.table.RowCount())
	if c.Kind == ValuesUpdated {
		return
	}
	sel := l.selection.Get()
	kept := slices.DeleteFunc(slices.Clone(sel), func(r *R) bool {
		return l.table.IndexOf(r) < 0
	})
	l.updateView(kept)
	if len(kept) == len(sel) {
		return
	}
	if err := l.selection.Set(kept); err != nil {
		l.log.Warn("table: selection write failed", "attr", l.selection.Name(), "err", err)
	}
}

func (l *List[R]) updateModel(e *widget.Event) {
	defer e.Skip()
	var rows []*R
	for _, i := range l.w.SelectedIndices() {
		if r := l.table.RowAt(i); r != nil {
			rows = append(rows, r)
		}
	}
	if slices.Equal(rows, l.selection.Get()) {
		return
	}
	if err := l.selection.Set(rows); err != nil {
		l.log.Warn("table: selection write failed", "attr", l.selection.Name(), "err", err)
	}
}

// updateView applies only the difference between the current and the target
// selection.
func (l *List[R]) updateView(rows []*R) {
	cur := make(map[int]bool)
	for _, i := range l.w.SelectedIndices() {
		cur[i] = true
	}
	target := make(map[int]bool)
	for _, r := range rows {
		if i := l.table.IndexOf(r); i >= 0 {
			target[i] = true
		}
	}
	for _, i := range sortedKeys(cur) {
		if !target[i] {
			l.w.SetSelected(i, false)
		}
	}
	for _, i := range sortedKeys(target) {
		if !cur[i] {
			l.w.SetSelected(i, true)
		}
	}
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Text formats a cell value for display.
func Text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "yes"
		}
		return "no"
	}
	return fmt.Sprint(v)
}
