package sched

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueCallAfterRunsAfterTurn(t *testing.T) {
	q := NewQueue()
	var order []string

	q.Turn(func() {
		q.CallAfter(func() { order = append(order, "deferred") })
		order = append(order, "turn")
	})

	assert.Equal(t, []string{"turn", "deferred"}, order)
	assert.Equal(t, 0, q.Pending())
}

func TestQueueNestedDeferral(t *testing.T) {
	q := NewQueue()
	var order []int

	q.Turn(func() {
		q.CallAfter(func() {
			order = append(order, 1)
			q.CallAfter(func() { order = append(order, 3) })
		})
		q.CallAfter(func() { order = append(order, 2) })
	})

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestQueueCancel(t *testing.T) {
	q := NewQueue()
	ran := false

	q.Turn(func() {
		cancel := q.CallAfter(func() { ran = true })
		cancel()
	})

	assert.False(t, ran)
}

func TestQueueDispatchInsideTurnIsInline(t *testing.T) {
	q := NewQueue()
	var order []string

	q.Turn(func() {
		q.Dispatch(func() { order = append(order, "dispatch") })
		order = append(order, "after")
	})

	assert.Equal(t, []string{"dispatch", "after"}, order)
}

func TestQueueDispatchOutsideTurnRunsDeferred(t *testing.T) {
	q := NewQueue()
	ran := false

	q.Dispatch(func() {
		q.CallAfter(func() { ran = true })
	})

	assert.True(t, ran)
}

func TestQueuePostFromGoroutine(t *testing.T) {
	q := NewQueue()
	var woken atomic.Int32
	q.OnPost(func() { woken.Add(1) })

	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Post(func() { count++ })
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, count)
	assert.Equal(t, int32(4), woken.Load())
	q.Drain()
	assert.Equal(t, 4, count)
}

func TestQueueTurnPanicLeavesTurn(t *testing.T) {
	q := NewQueue()

	assert.Panics(t, func() {
		q.Turn(func() { panic("boom") })
	})

	var order []string
	q.Dispatch(func() {
		q.CallAfter(func() { order = append(order, "deferred") })
		order = append(order, "dispatch")
	})
	assert.Equal(t, []string{"dispatch", "deferred"}, order)
	assert.Equal(t, 0, q.Pending())
}

func TestImmediate(t *testing.T) {
	var s Scheduler = Immediate{}
	ran := 0
	s.Dispatch(func() { ran++ })
	s.CallAfter(func() { ran++ })
	assert.Equal(t, 2, ran)
}
