// Package sched provides the UI-thread scheduling primitives used by bindings.
//
// All bindings run on a single UI thread. The observable attribute channel hands
// its callbacks to a [Scheduler] so they land on that thread even when the
// mutation happened elsewhere, and bindings use [Scheduler.CallAfter] for work
// that must only happen once the current event has been fully processed:
//
//   - [Queue]: explicit single-threaded task queue with "run after current turn"
//   - [Immediate]: runs everything inline, for headless use and tests
//
// # Thread Safety
//
// Only [Queue.Post] may be called from other goroutines. Everything else must be
// called from the goroutine driving [Queue.Turn].
package sched
