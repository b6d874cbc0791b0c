package observable

import (
	"fmt"

	"github.com/san-kum/viewbind/internal/sched"
)

// Field describes how to read and write one attribute of an S.
type Field[S any] struct {
	Get func(*S) any
	Set func(*S, any) error
}

// Fields is a descriptor table mapping attribute names to fields.
type Fields[S any] map[string]Field[S]

// FieldOf builds a typed Field. Writing nil stores the zero T.
func FieldOf[S, T any](get func(*S) T, set func(*S, T)) Field[S] {
	return Field[S]{
		Get: func(s *S) any { return get(s) },
		Set: func(s *S, v any) error {
			if v == nil {
				var zero T
				set(s, zero)
				return nil
			}
			t, ok := v.(T)
			if !ok {
				var zero T
				return fmt.Errorf("%w: got %T, want %T", ErrType, v, zero)
			}
			set(s, t)
			return nil
		},
	}
}

// Struct makes a plain Go struct observable through a Fields table.
type Struct[S any] struct {
	hub
	ptr    *S
	fields Fields[S]
}

// NewStruct wraps ptr. Only attributes listed in fields are visible.
func NewStruct[S any](ptr *S, fields Fields[S]) *Struct[S] {
	return &Struct[S]{ptr: ptr, fields: fields}
}

// Ptr returns the wrapped struct.
func (s *Struct[S]) Ptr() *S { return s.ptr }

func (s *Struct[S]) Has(name string) bool {
	_, ok := s.fields[name]
	return ok
}

func (s *Struct[S]) Get(name string) any {
	f, ok := s.fields[name]
	if !ok {
		return nil
	}
	return f.Get(s.ptr)
}

func (s *Struct[S]) Set(name string, value any) error {
	f, ok := s.fields[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAttr, name)
	}
	if Equal(f.Get(s.ptr), value) {
		return nil
	}
	if err := f.Set(s.ptr, value); err != nil {
		return fmt.Errorf("set %q: %w", name, err)
	}
	s.notify(name, f.Get(s.ptr))
	return nil
}

func (s *Struct[S]) Subscribe(name string, sc sched.Scheduler, fn func(any)) func() {
	return s.subscribe(name, sc, fn)
}

// Touch notifies subscribers of name with its current value, for changes
// made to the struct behind the model's back.
func (s *Struct[S]) Touch(name string) {
	if f, ok := s.fields[name]; ok {
		s.notify(name, f.Get(s.ptr))
	}
}
