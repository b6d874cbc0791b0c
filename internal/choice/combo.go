package choice

import (
	"log/slog"

	"github.com/san-kum/viewbind/internal/binding"
	"github.com/san-kum/viewbind/internal/observable"
	"github.com/san-kum/viewbind/internal/sched"
	"github.com/san-kum/viewbind/internal/widget"
)

// ComboBinding links an editable combo box to an attribute. Typing refreshes
// the suggestions; picking one writes its key.
type ComboBinding[K comparable] struct {
	binding.Lifecycle
	w        widget.Combo
	attr     observable.Accessor[K]
	provider Provider[K]
	log      *slog.Logger
}

// Combo binds w to attr using p for suggestions and display texts.
func Combo[K comparable](w widget.Combo, attr observable.Accessor[K], p Provider[K], s sched.Scheduler, opts ...binding.Option) *ComboBinding[K] {
	o := binding.NewOptions(opts...)
	b := &ComboBinding[K]{w: w, attr: attr, provider: p, log: o.Logger}
	b.Attach(w)
	binding.Watch(&b.Lifecycle, attr, s, b.updateView)
	if !o.ReadOnly {
		b.Listen(w, widget.EventText, b.onText)
		b.Listen(w, widget.EventCombo, b.updateModel)
	}
	return b
}

func (b *ComboBinding[K]) updateView(k K) {
	text := b.provider.DisplayText(k)
	if b.w.Value() != text {
		b.w.SetValue(text)
	}
	b.w.SetStringSelection(text)
}

func (b *ComboBinding[K]) onText(e *widget.Event) {
	defer e.Skip()
	// Committing a selection also reports a text change. Rebuilding the items
	// then would leave the selection pointing at the wrong one.
	if b.w.Selection() != -1 {
		return
	}

	text := b.w.Value()
	if text == "" {
		var zero K
		binding.Write(b.attr, zero, b.log)
	}

	if f, ok := b.w.(widget.Freezer); ok {
		f.Freeze()
		defer f.Thaw()
	}
	b.w.Clear()
	for it := range b.provider.Suggest(text) {
		b.w.Append(it.Text, it.Key)
	}
	if p, ok := b.w.(widget.Popuper); ok && b.w.Count() > 0 {
		p.Popup()
	}
}

func (b *ComboBinding[K]) updateModel(e *widget.Event) {
	defer e.Skip()
	if e.Selection == -1 {
		return
	}
	k, ok := b.w.ClientData(e.Selection).(K)
	if !ok {
		b.log.Debug("choice: combo item without key", "attr", b.attr.Name(), "selection", e.Selection)
		return
	}
	binding.Write(b.attr, k, b.log)
}
