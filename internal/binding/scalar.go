package binding

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/san-kum/viewbind/internal/observable"
	"github.com/san-kum/viewbind/internal/sched"
	"github.com/san-kum/viewbind/internal/widget"
)

// ValueBinding links a widget value of type T to an attribute of the same
// type.
type ValueBinding[T any] struct {
	Lifecycle
	w    widget.Valuer[T]
	attr observable.Accessor[T]
	log  *slog.Logger
}

func bindValue[T any](w widget.Valuer[T], attr observable.Accessor[T], ev widget.EventType, s sched.Scheduler, opts []Option) *ValueBinding[T] {
	o := NewOptions(opts...)
	b := &ValueBinding[T]{w: w, attr: attr, log: o.Logger}
	b.Attach(w)
	Watch(&b.Lifecycle, attr, s, b.updateView)
	if !o.ReadOnly {
		b.Listen(w, ev, b.updateModel)
	}
	return b
}

// Text binds a text field to a string attribute.
func Text(w widget.Valuer[string], attr observable.Accessor[string], s sched.Scheduler, opts ...Option) *ValueBinding[string] {
	return bindValue(w, attr, widget.EventText, s, opts)
}

// Slider binds a slider to an int attribute.
func Slider(w widget.Valuer[int], attr observable.Accessor[int], s sched.Scheduler, opts ...Option) *ValueBinding[int] {
	return bindValue(w, attr, widget.EventSlider, s, opts)
}

func (b *ValueBinding[T]) updateView(v T) {
	if !observable.Equal(b.w.Value(), v) {
		b.w.SetValue(v)
	}
}

func (b *ValueBinding[T]) updateModel(e *widget.Event) {
	Write(b.attr, b.w.Value(), b.log)
	e.Skip()
}

// Date binds a date spinner to a time attribute. A spinner cannot show "no
// date", so a zero model value is replaced by the current time on
// construction.
func Date(w widget.Valuer[time.Time], attr observable.Accessor[time.Time], s sched.Scheduler, opts ...Option) *ValueBinding[time.Time] {
	o := NewOptions(opts...)
	b := &ValueBinding[time.Time]{w: w, attr: attr, log: o.Logger}
	b.Attach(w)
	b.Own(attr.Subscribe(s, func(v time.Time) {
		if !b.closed {
			b.updateView(v)
		}
	}))

	value := attr.Get()
	if value.IsZero() {
		value = o.Now()
	}
	b.updateView(value)
	Write(attr, value, b.log)

	if !o.ReadOnly {
		b.Listen(w, widget.EventDateChanged, b.updateModel)
	}
	return b
}

// Codec converts between a model value and its text form.
type Codec[T any] struct {
	Format func(T) string
	Parse  func(string) (T, error)
}

// IntCodec formats ints in base 10.
var IntCodec = Codec[int]{
	Format: strconv.Itoa,
	Parse:  strconv.Atoi,
}

// FloatCodec formats floats with prec decimals.
func FloatCodec(prec int) Codec[float64] {
	return Codec[float64]{
		Format: func(f float64) string { return strconv.FormatFloat(f, 'f', prec, 64) },
		Parse:  func(s string) (float64, error) { return strconv.ParseFloat(s, 64) },
	}
}

// TextBinding links a text field to a non-string attribute through a Codec.
type TextBinding[T any] struct {
	Lifecycle
	w     widget.Valuer[string]
	attr  observable.Accessor[T]
	codec Codec[T]
	log   *slog.Logger
}

// TextAs binds a text field to an attribute of any type. Text that fails to
// parse is not written to the model.
func TextAs[T any](w widget.Valuer[string], attr observable.Accessor[T], codec Codec[T], s sched.Scheduler, opts ...Option) *TextBinding[T] {
	o := NewOptions(opts...)
	b := &TextBinding[T]{w: w, attr: attr, codec: codec, log: o.Logger}
	b.Attach(w)
	Watch(&b.Lifecycle, attr, s, b.updateView)
	if !o.ReadOnly {
		b.Listen(w, widget.EventText, b.updateModel)
	}
	return b
}

func (b *TextBinding[T]) updateView(v T) {
	// Leave the text alone while it already means v, e.g. "07" for 7.
	if cur, err := b.codec.Parse(b.w.Value()); err == nil && observable.Equal(cur, v) {
		return
	}
	b.w.SetValue(b.codec.Format(v))
}

func (b *TextBinding[T]) updateModel(e *widget.Event) {
	v, err := b.codec.Parse(b.w.Value())
	if err != nil {
		b.log.Debug("binding: rejected input", "attr", b.attr.Name(), "err", err)
		e.Skip()
		return
	}
	Write(b.attr, v, b.log)
	e.Skip()
}

// DateTimeBinding links a date/time text field to a time attribute.
type DateTimeBinding struct {
	Lifecycle
	w    widget.DateTimeField
	attr observable.Accessor[time.Time]
	log  *slog.Logger
}

// DateTime binds w to attr. A zero time leaves the field untouched and
// invalid text is never written to the model.
func DateTime(w widget.DateTimeField, attr observable.Accessor[time.Time], s sched.Scheduler, opts ...Option) *DateTimeBinding {
	o := NewOptions(opts...)
	b := &DateTimeBinding{w: w, attr: attr, log: o.Logger}
	b.Attach(w)
	Watch(&b.Lifecycle, attr, s, b.updateView)
	if !o.ReadOnly {
		b.Listen(w, widget.EventText, b.updateModel)
	}
	return b
}

func (b *DateTimeBinding) updateView(v time.Time) {
	if v.IsZero() {
		return
	}
	text := v.Format(b.w.Layout())
	if b.w.Value() != text {
		b.w.SetValue(text)
	}
}

func (b *DateTimeBinding) updateModel(e *widget.Event) {
	if v, ok := b.w.DateTimeValue(); ok {
		Write(b.attr, v, b.log)
	}
	e.Skip()
}

// CheckBinding links a checkbox to an attribute with distinct "off" and "on"
// values.
type CheckBinding[T comparable] struct {
	Lifecycle
	w       widget.Valuer[bool]
	attr    observable.Accessor[T]
	off, on T
	log     *slog.Logger
}

// Check binds a checkbox to a bool attribute.
func Check(w widget.Valuer[bool], attr observable.Accessor[bool], s sched.Scheduler, opts ...Option) *CheckBinding[bool] {
	return CheckValues(w, attr, false, true, s, opts...)
}

// CheckValues binds a checkbox to an attribute holding off or on. Any value
// other than on shows as unchecked.
func CheckValues[T comparable](w widget.Valuer[bool], attr observable.Accessor[T], off, on T, s sched.Scheduler, opts ...Option) *CheckBinding[T] {
	o := NewOptions(opts...)
	b := &CheckBinding[T]{w: w, attr: attr, off: off, on: on, log: o.Logger}
	b.Attach(w)
	Watch(&b.Lifecycle, attr, s, b.updateView)
	if !o.ReadOnly {
		b.Listen(w, widget.EventCheck, b.updateModel)
	}
	return b
}

func (b *CheckBinding[T]) updateView(v T) {
	if checked := v == b.on; b.w.Value() != checked {
		b.w.SetValue(checked)
	}
}

func (b *CheckBinding[T]) updateModel(e *widget.Event) {
	v := b.off
	if b.w.Value() {
		v = b.on
	}
	Write(b.attr, v, b.log)
	e.Skip()
}

// FileBinding writes picked paths to a string attribute. It never updates the
// picker.
type FileBinding struct {
	Lifecycle
	attr observable.Accessor[string]
	log  *slog.Logger
}

// File binds a file picker to attr.
func File(w widget.FilePicker, attr observable.Accessor[string], opts ...Option) *FileBinding {
	o := NewOptions(opts...)
	b := &FileBinding{attr: attr, log: o.Logger}
	b.Attach(w)
	b.Listen(w, widget.EventFilePicked, func(e *widget.Event) {
		Write(b.attr, e.Path, b.log)
		e.Skip()
	})
	return b
}

// String formats any model value for display.
func String[T any](v T) string {
	if s, ok := any(v).(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
