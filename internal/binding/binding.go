package binding

import (
	"log/slog"
	"reflect"
	"time"

	"github.com/san-kum/viewbind/internal/observable"
	"github.com/san-kum/viewbind/internal/sched"
	"github.com/san-kum/viewbind/internal/widget"
)

// Binding is the handle every binding constructor returns.
type Binding interface {
	Close()
	Closed() bool
}

// Options holds settings shared by all binding kinds.
type Options struct {
	ReadOnly bool
	Logger   *slog.Logger
	Now      func() time.Time
}

// Option configures a binding.
type Option func(*Options)

// ReadOnly makes the binding one-directional, model to widget.
func ReadOnly() Option {
	return func(o *Options) { o.ReadOnly = true }
}

// WithLogger sets the logger used for rejected and failed writes. nil keeps
// the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithClock sets the clock used for default date values.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.Now = now }
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{Logger: slog.Default(), Now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Lifecycle tracks everything a binding must undo when it is closed.
type Lifecycle struct {
	cleanups []func()
	pending  map[*int]func()
	closed   bool
}

// Own registers a cancel function to run on Close.
func (l *Lifecycle) Own(cancel func()) {
	if cancel == nil {
		return
	}
	if l.closed {
		cancel()
		return
	}
	l.cleanups = append(l.cleanups, cancel)
}

// Listen registers h on w for t. The handler is dropped on Close.
func (l *Lifecycle) Listen(w widget.Source, t widget.EventType, h widget.Handler) {
	l.Own(w.On(t, func(e *widget.Event) {
		if l.closed {
			e.Skip()
			return
		}
		h(e)
	}))
}

// Attach closes the binding when w is destroyed.
func (l *Lifecycle) Attach(w widget.Source) {
	l.Own(w.On(widget.EventDestroy, func(e *widget.Event) {
		l.Close()
		e.Skip()
	}))
}

// Defer runs fn after the current turn unless the binding has been closed by
// then.
func (l *Lifecycle) Defer(s sched.Scheduler, fn func()) {
	if l.closed {
		return
	}
	if l.pending == nil {
		l.pending = make(map[*int]func())
	}
	key, ran := new(int), false
	cancel := s.CallAfter(func() {
		ran = true
		delete(l.pending, key)
		if !l.closed {
			fn()
		}
	})
	if !ran {
		l.pending[key] = cancel
	}
}

// Pending returns the number of deferred tasks that have not run yet.
func (l *Lifecycle) Pending() int {
	return len(l.pending)
}

// Close undoes all registrations. It is safe to call more than once.
func (l *Lifecycle) Close() {
	if l.closed {
		return
	}
	l.closed = true
	for _, cancel := range l.pending {
		cancel()
	}
	l.pending = nil
	for i := len(l.cleanups) - 1; i >= 0; i-- {
		l.cleanups[i]()
	}
	l.cleanups = nil
}

func (l *Lifecycle) Closed() bool { return l.closed }

// Watch subscribes view to attr and immediately calls it with the current
// value.
func Watch[T any](l *Lifecycle, attr observable.Accessor[T], s sched.Scheduler, view func(T)) {
	l.Own(attr.Subscribe(s, func(v T) {
		if !l.closed {
			view(v)
		}
	}))
	view(attr.Get())
}

// Write stores v in attr when it differs from the current value. It reports
// whether a write happened.
func Write[T any](attr observable.Accessor[T], v T, log *slog.Logger) bool {
	if observable.Equal(attr.Get(), v) {
		return false
	}
	if err := attr.Set(v); err != nil {
		log.Warn("binding: model write failed", "attr", attr.Name(), "err", err)
		return false
	}
	return true
}

// Predicate decides a boolean widget state from a model value.
type Predicate[T any] func(T) bool

// Is matches values equal to want. The sentinel need not be a boolean, which
// allows e.g. showing a panel only for one value of an enum.
func Is[T comparable](want T) Predicate[T] {
	return func(v T) bool { return v == want }
}

// Truthy matches non-zero values.
func Truthy[T any]() Predicate[T] {
	return func(v T) bool {
		rv := reflect.ValueOf(v)
		if !rv.IsValid() {
			return false
		}
		switch rv.Kind() {
		case reflect.Slice, reflect.Map:
			return rv.Len() > 0
		}
		return !rv.IsZero()
	}
}
