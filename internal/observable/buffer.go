package observable

import (
	"maps"
	"slices"

	"github.com/san-kum/viewbind/internal/sched"
)

// Buffer wraps a Model. A transparent buffer writes straight through; a
// buffered one keeps writes in a change set until Flush, so an edit dialog can
// be cancelled without touching the underlying model.
type Buffer struct {
	hub
	model       Model
	transparent bool
	changes     map[string]any
}

// Wrap returns a Buffer around m.
func Wrap(m Model, transparent bool) *Buffer {
	return &Buffer{model: m, transparent: transparent, changes: make(map[string]any)}
}

// Unwrap returns the wrapped model.
func (b *Buffer) Unwrap() Model { return b.model }

// Transparent reports whether writes go straight through.
func (b *Buffer) Transparent() bool { return b.transparent }

func (b *Buffer) Has(name string) bool {
	if h, ok := b.model.(interface{ Has(string) bool }); ok {
		return h.Has(name)
	}
	return true
}

func (b *Buffer) Get(name string) any {
	if v, ok := b.changes[name]; ok {
		return v
	}
	return b.model.Get(name)
}

func (b *Buffer) Set(name string, value any) error {
	if b.transparent {
		return b.model.Set(name, value)
	}
	if !b.Has(name) {
		return b.model.Set(name, value)
	}
	if Equal(b.Get(name), value) {
		return nil
	}
	if Equal(b.model.Get(name), value) {
		delete(b.changes, name)
	} else {
		b.changes[name] = value
	}
	b.notify(name, value)
	return nil
}

func (b *Buffer) Subscribe(name string, s sched.Scheduler, fn func(any)) func() {
	if b.transparent {
		return b.model.Subscribe(name, s, fn)
	}
	local := b.subscribe(name, s, fn)
	upstream := b.model.Subscribe(name, s, func(v any) {
		// Buffered values shadow the underlying model.
		if _, shadowed := b.changes[name]; !shadowed {
			fn(v)
		}
	})
	return func() {
		local()
		upstream()
	}
}

// Changes returns a copy of the pending change set.
func (b *Buffer) Changes() map[string]any {
	return maps.Clone(b.changes)
}

// Dirty reports whether there are unflushed changes.
func (b *Buffer) Dirty() bool {
	return len(b.changes) > 0
}

// Flush writes pending changes to the underlying model in attribute name
// order. It stops at the first failing write and keeps the remaining changes.
func (b *Buffer) Flush() error {
	for _, name := range slices.Sorted(maps.Keys(b.changes)) {
		if err := b.model.Set(name, b.changes[name]); err != nil {
			return err
		}
		delete(b.changes, name)
	}
	return nil
}

// Discard drops pending changes and re-announces the underlying values.
func (b *Buffer) Discard() {
	names := slices.Sorted(maps.Keys(b.changes))
	clear(b.changes)
	for _, name := range names {
		b.notify(name, b.model.Get(name))
	}
}
