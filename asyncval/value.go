package asyncval

import (
	"sync"
	"sync/atomic"
)

// Value is a single-assignment container shared between one producer and
// any number of consumers. It starts out unresolved; Emplace stores the
// final value exactly once and wakes every consumer. Once resolved a Value
// never changes again and is safe for unsynchronized concurrent reads.
//
// Sharing works through ordinary pointer copies; the garbage collector
// keeps the underlying storage alive for as long as any holder remains.
type Value[T any] struct {
	avail atomic.Bool

	mu    sync.Mutex
	v     T
	conts []func()
}

// Unconstructed returns a fresh, unresolved Value.
func Unconstructed[T any]() *Value[T] {
	return &Value[T]{}
}

// Available returns a Value that is already resolved to v.
func Available[T any](v T) *Value[T] {
	av := &Value[T]{v: v}
	av.avail.Store(true)
	return av
}

// Available reports whether the value has been resolved.
func (av *Value[T]) Available() bool {
	return av.avail.Load()
}

// Concrete reports whether the value has been resolved to a concrete
// value. This implementation has no separate error state, so Concrete
// matches Available; it exists as the post-resolution check consumers run
// before reading.
func (av *Value[T]) Concrete() bool {
	return av.avail.Load()
}

// Emplace resolves the value and runs all registered continuations on the
// calling goroutine. It must be called at most once per Value; a second
// call panics. Resolution happens-before every subsequent observation
// through Available, Get or a continuation.
func (av *Value[T]) Emplace(v T) {
	av.mu.Lock()
	if av.avail.Load() {
		av.mu.Unlock()
		panic("asyncval: value already emplaced")
	}
	av.v = v
	av.avail.Store(true)
	conts := av.conts
	av.conts = nil
	av.mu.Unlock()

	for _, fn := range conts {
		fn()
	}
}

// AndThen registers fn to run once the value is available. If it already
// is, fn runs synchronously on the calling goroutine; otherwise it runs on
// whatever goroutine calls Emplace. No order is defined between distinct
// continuations.
func (av *Value[T]) AndThen(fn func()) {
	av.mu.Lock()
	if av.avail.Load() {
		av.mu.Unlock()
		fn()
		return
	}
	av.conts = append(av.conts, fn)
	av.mu.Unlock()
}

// Get returns the resolved value. Calling Get before the value is
// available is a contract violation and panics.
func (av *Value[T]) Get() T {
	if !av.avail.Load() {
		panic("asyncval: value not available")
	}
	return av.v
}
