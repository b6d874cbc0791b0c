package choice

import (
	"log/slog"

	"github.com/san-kum/viewbind/internal/binding"
	"github.com/san-kum/viewbind/internal/observable"
	"github.com/san-kum/viewbind/internal/sched"
	"github.com/san-kum/viewbind/internal/widget"
)

// Binding links the selection of a Chooser to an attribute holding one of the
// keys of a choice set.
type Binding[K comparable] struct {
	binding.Lifecycle
	w        widget.Chooser
	attr     observable.Accessor[K]
	choices  Set[K]
	readOnly bool
	log      *slog.Logger
}

// Bind binds w to attr with the choices of src.
func Bind[K comparable](w widget.Chooser, attr observable.Accessor[K], src Source[K], s sched.Scheduler, opts ...binding.Option) *Binding[K] {
	b := newBinding(w, attr, opts)
	b.setChoices(src.Choices())
	b.bind(s)
	return b
}

// BindDynamic binds w to attr with the choices held by source. Whenever
// source changes the items are rebuilt and the model is resynchronised with
// the selection the widget ends up with.
func BindDynamic[K comparable](w widget.Chooser, attr observable.Accessor[K], source observable.Accessor[Set[K]], s sched.Scheduler, opts ...binding.Option) *Binding[K] {
	b := newBinding(w, attr, opts)
	b.setChoices(source.Get())
	b.Own(source.Subscribe(s, func(set Set[K]) {
		if b.Closed() {
			return
		}
		b.setChoices(set)
		b.updateView(b.attr.Get())
		b.updateModel()
	}))
	b.bind(s)
	return b
}

func newBinding[K comparable](w widget.Chooser, attr observable.Accessor[K], opts []binding.Option) *Binding[K] {
	o := binding.NewOptions(opts...)
	b := &Binding[K]{w: w, attr: attr, readOnly: o.ReadOnly, log: o.Logger}
	b.Attach(w)
	return b
}

func (b *Binding[K]) bind(s sched.Scheduler) {
	binding.Watch(&b.Lifecycle, b.attr, s, b.updateView)
	b.updateModel()
	if b.readOnly {
		return
	}
	// Combo boxes used as plain drop-downs report picks as EventCombo.
	for _, t := range []widget.EventType{widget.EventChoice, widget.EventCombo} {
		b.Listen(b.w, t, func(e *widget.Event) {
			b.updateModel()
			e.Skip()
		})
	}
}

// Choices returns the current choice set.
func (b *Binding[K]) Choices() Set[K] { return b.choices }

func (b *Binding[K]) setChoices(set Set[K]) {
	b.choices = set
	b.w.SetItems(set.Texts())
}

func (b *Binding[K]) updateView(v K) {
	if len(b.choices) == 0 {
		return
	}
	i := b.choices.Index(v)
	if i < 0 {
		// Not a choice (yet); keep whatever is selected.
		return
	}
	if b.w.Selection() != i {
		b.w.SetSelection(i)
	}
}

func (b *Binding[K]) updateModel() {
	if b.readOnly {
		return
	}
	i := b.w.Selection()
	if i < 0 || i >= len(b.choices) {
		return
	}
	binding.Write(b.attr, b.choices[i].Key, b.log)
}
