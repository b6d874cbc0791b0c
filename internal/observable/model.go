package observable

import (
	"fmt"
	"reflect"
	"time"

	"github.com/san-kum/viewbind/internal/sched"
)

// Model is an object with named, observable attributes.
type Model interface {
	Get(name string) any
	// Set stores value and notifies subscribers of name if it changed.
	Set(name string, value any) error
	// Subscribe calls fn with the new value whenever name changes. fn is
	// invoked through s. The returned function removes the subscription.
	Subscribe(name string, s sched.Scheduler, fn func(any)) (cancel func())
}

// Equal reports whether a and b hold the same value. Types with an
// Equal(T) bool method, such as time.Time, are compared with it.
func Equal[T any](a, b T) bool {
	if e, ok := any(a).(interface{ Equal(T) bool }); ok {
		return e.Equal(b)
	}
	if t, ok := any(a).(time.Time); ok {
		if u, ok := any(b).(time.Time); ok {
			return t.Equal(u)
		}
	}
	return reflect.DeepEqual(a, b)
}

type listener struct {
	sched  sched.Scheduler
	fn     func(any)
	active bool
}

// hub keeps per-attribute subscriber lists.
type hub struct {
	subs map[string][]*listener
}

func (h *hub) subscribe(name string, s sched.Scheduler, fn func(any)) func() {
	if h.subs == nil {
		h.subs = make(map[string][]*listener)
	}
	l := &listener{sched: s, fn: fn, active: true}
	h.subs[name] = append(h.subs[name], l)
	return func() {
		if !l.active {
			return
		}
		l.active = false
		ls := h.subs[name]
		for i, other := range ls {
			if other == l {
				h.subs[name] = append(ls[:i:i], ls[i+1:]...)
				break
			}
		}
	}
}

func (h *hub) notify(name string, value any) {
	ls := append([]*listener(nil), h.subs[name]...)
	for _, l := range ls {
		if !l.active {
			continue
		}
		l.sched.Dispatch(func() {
			// The subscription may have been cancelled while queued.
			if l.active {
				l.fn(value)
			}
		})
	}
}

func (h *hub) count(name string) int {
	return len(h.subs[name])
}

// Attrs is a dynamic set of attributes declared up front.
type Attrs struct {
	hub
	values map[string]any
}

// NewAttrs declares one attribute per key of initial.
func NewAttrs(initial map[string]any) *Attrs {
	values := make(map[string]any, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &Attrs{values: values}
}

// Has reports whether name was declared.
func (a *Attrs) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

func (a *Attrs) Get(name string) any {
	return a.values[name]
}

func (a *Attrs) Set(name string, value any) error {
	old, ok := a.values[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAttr, name)
	}
	if Equal(old, value) {
		return nil
	}
	a.values[name] = value
	a.notify(name, value)
	return nil
}

func (a *Attrs) Subscribe(name string, s sched.Scheduler, fn func(any)) func() {
	return a.subscribe(name, s, fn)
}

// Subscribers returns the number of live subscriptions on name.
func (a *Attrs) Subscribers(name string) int {
	return a.count(name)
}
