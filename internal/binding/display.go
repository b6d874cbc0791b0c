package binding

import (
	"github.com/san-kum/viewbind/internal/observable"
	"github.com/san-kum/viewbind/internal/sched"
	"github.com/san-kum/viewbind/internal/widget"
)

// DisplayBinding is a read-only binding. It only reacts to the model.
type DisplayBinding struct {
	Lifecycle
}

func display[T any](w widget.Widget, attr observable.Accessor[T], s sched.Scheduler, view func(T)) *DisplayBinding {
	b := &DisplayBinding{}
	b.Attach(w)
	Watch(&b.Lifecycle, attr, s, view)
	return b
}

// Label shows attr as the label text of w.
func Label[T any](w widget.Labeler, attr observable.Accessor[T], s sched.Scheduler) *DisplayBinding {
	return display(w, attr, s, func(v T) {
		if text := String(v); w.Label() != text {
			w.SetLabel(text)
		}
	})
}

// Title shows attr as the window title of w.
func Title[T any](w widget.Titler, attr observable.Accessor[T], s sched.Scheduler) *DisplayBinding {
	return display(w, attr, s, func(v T) {
		if text := String(v); w.Title() != text {
			w.SetTitle(text)
		}
	})
}

// StatusBar shows attr in the given status bar field.
func StatusBar[T any](w widget.StatusBar, attr observable.Accessor[T], field int, s sched.Scheduler) *DisplayBinding {
	return display(w, attr, s, func(v T) {
		if text := String(v); w.StatusText(field) != text {
			w.SetStatusText(text, field)
		}
	})
}

// Focus gives w the keyboard focus whenever attr matches when.
func Focus[T any](w widget.Focuser, attr observable.Accessor[T], when Predicate[T], s sched.Scheduler) *DisplayBinding {
	return display(w, attr, s, func(v T) {
		if when(v) && !w.HasFocus() {
			w.SetFocus()
		}
	})
}

// Enabled enables w while attr matches when.
func Enabled[T any](w widget.Enabler, attr observable.Accessor[T], when Predicate[T], s sched.Scheduler) *DisplayBinding {
	return display(w, attr, s, func(v T) {
		if on := when(v); w.IsEnabled() != on {
			w.Enable(on)
		}
	})
}

// ShowBinding toggles the visibility of a widget.
type ShowBinding[T any] struct {
	DisplayBinding
	w     widget.Shower
	when  Predicate[T]
	sched sched.Scheduler
}

// Show shows w while attr matches when. After toggling it lays out the
// parent; if the top-level window tracks its best size, every ancestor's
// cached size is invalidated and the window is resized to its new minimum once
// the current event has been processed.
func Show[T any](w widget.Shower, attr observable.Accessor[T], when Predicate[T], s sched.Scheduler) *ShowBinding[T] {
	b := &ShowBinding[T]{w: w, when: when, sched: s}
	b.Attach(w)
	Watch(&b.Lifecycle, attr, s, b.updateView)
	return b
}

func (b *ShowBinding[T]) updateView(v T) {
	on := b.when(v)
	if b.w.IsShown() == on {
		return
	}
	b.w.Show(on)

	parent := b.w.Parent()
	if l, ok := parent.(widget.Layouter); ok {
		l.Layout()
	}

	var top widget.Node = b.w
	for p := parent; p != nil; p = p.Parent() {
		top = p
	}
	sizer, ok := top.(widget.BestSizer)
	if !ok {
		return
	}
	for p := parent; p != nil; p = p.Parent() {
		if inv, ok := p.(widget.SizeInvalidator); ok {
			inv.InvalidateBestSize()
		}
	}
	b.Defer(b.sched, func() {
		sizer.SetSize(sizer.MinBestSize())
	})
}
