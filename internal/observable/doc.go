// Package observable implements the observable attribute channel that bindings
// subscribe to.
//
// A [Model] exposes named attributes that can be read, written and watched.
// Callbacks are always delivered through the scheduler given at
// subscription time, so a binding that subscribes with the UI scheduler is only
// ever called on the UI thread. Bindings do not talk to a [Model] directly;
// they use a typed [Accessor]:
//
//	m := observable.NewAttrs(map[string]any{"name": "Bouke"})
//	name := observable.MustAttr[string](m, "name")
//	cancel := name.Subscribe(ui, func(v string) { fmt.Println(v) })
//	defer cancel()
//
// Implementations: [Attrs] (dynamic attribute map), [Struct] (a Go struct
// described by a [Fields] table), [Value] (a single standalone cell) and
// [Buffer] (a wrapper that optionally holds writes back until [Buffer.Flush]).
//
// Writes only notify when the new value differs from the old one according to
// [Equal].
package observable
