// Package widget defines the contracts bindings need from a widget toolkit.
//
// Every widget is an event [Source]. Handlers receive an [*Event] and may call
// [Event.Skip] to let default processing continue or [Event.Veto] to cancel
// the pending state change. Programmatic setters (SetValue, SetSelection, ...)
// do not emit user events, with the exception of [Grid.SetGridCursor], which
// emits [EventSelectCell] like a user-initiated move and only moves the cursor
// when nobody vetoes it.
package widget
