package sched

import "sync"

// Scheduler marshals work onto the UI thread.
type Scheduler interface {
	// Dispatch runs fn on the UI thread as part of the current turn.
	Dispatch(fn func())
	// CallAfter runs fn once the current turn has finished. The returned
	// function cancels fn if it has not run yet.
	CallAfter(fn func()) (cancel func())
}

type task struct {
	fn        func()
	cancelled bool
}

// Queue is a single-threaded task queue with "run after current turn"
// semantics. A turn is one UI event; tasks deferred during a turn run in FIFO
// order right after it, and tasks they defer in turn run in the same pass.
type Queue struct {
	depth    int
	deferred []*task

	mu     sync.Mutex
	posted []func()
	wake   func()
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// OnPost registers fn to be called (from the posting goroutine) whenever work
// is posted. Hosts use it to wake their event loop.
func (q *Queue) OnPost(fn func()) {
	q.mu.Lock()
	q.wake = fn
	q.mu.Unlock()
}

// Dispatch runs fn inline when a turn is in progress, otherwise it runs fn as
// a turn of its own.
func (q *Queue) Dispatch(fn func()) {
	if q.depth > 0 {
		fn()
		return
	}
	q.Turn(fn)
}

// CallAfter defers fn until the current turn completes.
func (q *Queue) CallAfter(fn func()) func() {
	t := &task{fn: fn}
	q.deferred = append(q.deferred, t)
	return func() { t.cancelled = true }
}

// Post queues fn from any goroutine. It runs on the next Drain.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.posted = append(q.posted, fn)
	wake := q.wake
	q.mu.Unlock()
	if wake != nil {
		wake()
	}
}

// Turn runs fn as one UI turn followed by every task deferred during it.
// A panic in fn still leaves the queue outside the turn.
func (q *Queue) Turn(fn func()) {
	q.nested(fn)
	if q.depth == 0 {
		q.runDeferred()
	}
}

func (q *Queue) nested(fn func()) {
	q.depth++
	defer func() { q.depth-- }()
	fn()
}

// Drain runs all posted work, each item as its own turn, and then any
// remaining deferred tasks.
func (q *Queue) Drain() {
	for {
		q.mu.Lock()
		posted := q.posted
		q.posted = nil
		q.mu.Unlock()
		if len(posted) == 0 {
			break
		}
		for _, fn := range posted {
			q.Turn(fn)
		}
	}
	if q.depth == 0 {
		q.runDeferred()
	}
}

// Pending reports the number of deferred tasks waiting to run, cancelled ones
// included.
func (q *Queue) Pending() int {
	return len(q.deferred)
}

func (q *Queue) runDeferred() {
	for len(q.deferred) > 0 {
		t := q.deferred[0]
		q.deferred[0] = nil
		q.deferred = q.deferred[1:]
		if t.cancelled {
			continue
		}
		q.nested(t.fn)
	}
	q.deferred = nil
}

// Immediate runs dispatched and deferred work inline. It suits headless code
// where there is no event turn to wait for.
type Immediate struct{}

func (Immediate) Dispatch(fn func()) { fn() }

func (Immediate) CallAfter(fn func()) func() {
	fn()
	return func() {}
}
