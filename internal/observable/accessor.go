package observable

import (
	"fmt"

	"github.com/san-kum/viewbind/internal/sched"
)

// Accessor is a typed view of one observable attribute.
type Accessor[T any] interface {
	Name() string
	Get() T
	Set(value T) error
	Subscribe(s sched.Scheduler, fn func(T)) (cancel func())
}

type attr[T any] struct {
	model Model
	name  string
}

// Attr returns an accessor for the attribute name of m. A nil or mistyped
// stored value reads as the zero T.
func Attr[T any](m Model, name string) Accessor[T] {
	return attr[T]{model: m, name: name}
}

// MustAttr is like Attr but panics when m reports that it has no attribute
// name, or when the current value is not a T.
func MustAttr[T any](m Model, name string) Accessor[T] {
	if h, ok := m.(interface{ Has(string) bool }); ok && !h.Has(name) {
		panic(fmt.Errorf("%w: %q", ErrUnknownAttr, name))
	}
	if v := m.Get(name); v != nil {
		if _, ok := v.(T); !ok {
			panic(fmt.Errorf("%w: %q holds %T", ErrType, name, v))
		}
	}
	return Attr[T](m, name)
}

func (a attr[T]) Name() string { return a.name }

func (a attr[T]) Get() T {
	v, _ := a.model.Get(a.name).(T)
	return v
}

func (a attr[T]) Set(value T) error {
	return a.model.Set(a.name, value)
}

func (a attr[T]) Subscribe(s sched.Scheduler, fn func(T)) func() {
	return a.model.Subscribe(a.name, s, func(v any) {
		t, _ := v.(T)
		fn(t)
	})
}

// Value is a standalone observable cell.
type Value[T any] struct {
	hub
	name  string
	value T
}

// NewValue creates a cell holding v.
func NewValue[T any](name string, v T) *Value[T] {
	return &Value[T]{name: name, value: v}
}

func (v *Value[T]) Name() string { return v.name }

func (v *Value[T]) Get() T { return v.value }

func (v *Value[T]) Set(value T) error {
	if Equal(v.value, value) {
		return nil
	}
	v.value = value
	v.notify(v.name, value)
	return nil
}

func (v *Value[T]) Subscribe(s sched.Scheduler, fn func(T)) func() {
	return v.subscribe(v.name, s, func(x any) {
		t, _ := x.(T)
		fn(t)
	})
}
