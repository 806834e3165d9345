package asyncval

import (
	"sync"
	"sync/atomic"
)

// Waitable is the consumer-side surface a Waiter needs from a value.
// Every *Value satisfies it regardless of its type parameter.
type Waitable interface {
	Available() bool
	AndThen(func())
}

// Waiter blocks goroutines until values resolve. It deliberately has no
// way to run arbitrary work; the only thing it ever schedules is the
// wakeup of its own blocked callers. Whoever owns a Waiter must outlive
// every consumer blocking through it.
type Waiter struct {
	active atomic.Int64
}

func NewWaiter() *Waiter {
	return &Waiter{}
}

// Await blocks the calling goroutine until every given value is
// available. Values that already are get skipped without blocking. There
// is no timeout; a value that is never resolved blocks forever.
func (w *Waiter) Await(values ...Waitable) {
	var latch sync.WaitGroup
	pending := false
	for _, v := range values {
		if v.Available() {
			continue
		}
		latch.Add(1)
		v.AndThen(latch.Done)
		pending = true
	}
	if !pending {
		return
	}

	w.active.Add(1)
	defer w.active.Add(-1)
	latch.Wait()
}

// ActiveWaits returns the number of goroutines currently blocked in
// Await.
func (w *Waiter) ActiveWaits() int {
	return int(w.active.Load())
}
