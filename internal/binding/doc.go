// Package binding links single widget properties to observable model
// attributes.
//
// Every binding follows the same protocol:
//
//  1. subscribe to the attribute through the injected scheduler,
//  2. push the current model value to the widget (eager initial sync),
//  3. unless read-only, listen for the widget's change event and write the
//     widget value back, but only when it differs from the model value.
//
// The equality guard in step 3, mirrored by a "value already displayed" check
// when updating the view, is what stops a model write from echoing back as a
// widget event and vice versa.
//
// A binding lives as long as its widget: it closes itself when the widget
// emits [widget.EventDestroy], dropping its subscription, its widget handlers
// and any deferred work it still had queued. Bindings may also be closed
// explicitly with Close.
//
// # Example
//
//	ui := sched.NewQueue()
//	m := observable.NewAttrs(map[string]any{"name": "Bouke"})
//	binding.Text(field, observable.MustAttr[string](m, "name"), ui)
package binding
