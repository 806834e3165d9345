// Package future provides the completion primitive returned by APIs that
// enqueue asynchronous work on an accelerator device: a single-assignment
// future reporting a value of type T once the work is done.
//
// Consumers either block on the result (Wait) or register a callback
// (OnReady). Producers resolve the paired Event exactly once, on every
// code path including error paths; a future whose event is never set
// blocks its waiters forever.
//
// The value type T is opaque to this package. Work that can fail carries
// the failure inside T (see backend.Result); there is no separate error
// channel at this layer, and no cancellation or timeout. Callers that
// need a deadline race the future against a timer above this layer.
package future

import (
	"github.com/quarkframe/go-accelrt/asyncval"
)

// ProfilingKeys are produced by an OnBlockStartFn when a consumer starts
// to block on a future, and handed back to the matching OnBlockEndFn
// afterwards. They carry a single correlation id; profiler integrations
// use it to pair the two ends of one blocking section.
type ProfilingKeys struct {
	TraceContextID uint64
}

// OnBlockStartFn runs immediately before Wait blocks a goroutine.
type OnBlockStartFn func() ProfilingKeys

// OnBlockEndFn runs immediately after Wait finishes blocking.
type OnBlockEndFn func(ProfilingKeys)

type options struct {
	onBlockStart OnBlockStartFn
	onBlockEnd   OnBlockEndFn
}

// Option configures a future on construction.
type Option func(*options)

// WithOnBlockStart sets the hook invoked before a Wait call starts to
// block. The default is a no-op returning zero ProfilingKeys.
func WithOnBlockStart(fn OnBlockStartFn) Option {
	return func(o *options) {
		o.onBlockStart = fn
	}
}

// WithOnBlockEnd sets the hook invoked after a Wait call finishes
// blocking. The default discards the keys.
func WithOnBlockEnd(fn OnBlockEndFn) Option {
	return func(o *options) {
		o.onBlockEnd = fn
	}
}

func applyOptions(opts ...Option) options {
	o := options{
		onBlockStart: func() ProfilingKeys { return ProfilingKeys{} },
		onBlockEnd:   func(ProfilingKeys) {},
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Event is the producer side of a future: a handle to not-yet-resolved
// shared state that exposes only the ability to resolve it. Events are
// copyable and every copy shares the same underlying value. The zero
// value is empty and connected to nothing, see Valid.
type Event[T any] struct {
	value *asyncval.Value[T]
}

// NewEvent returns an Event backed by a fresh, unresolved shared value.
// Pair it with New to hand the matching future to consumers.
func NewEvent[T any]() Event[T] {
	return Event[T]{value: asyncval.Unconstructed[T]()}
}

// Set resolves the event. The value becomes visible to all current and
// future waiters and callbacks on every future sharing this event. Set
// must be called at most once; a second call panics.
func (e Event[T]) Set(v T) {
	if e.value == nil {
		panic("future: Set on empty event")
	}

	e.value.Emplace(v)
}

// Valid reports whether the event is connected to an underlying value.
// The zero value of Event is not.
func (e Event[T]) Valid() bool {
	return e.value != nil
}

// Future is a handle to the result of asynchronous work. Futures are
// copyable; every copy shares the same underlying value, which lives as
// long as its longest-lived holder.
type Future[T any] struct {
	value *asyncval.Value[T]

	onBlockStart OnBlockStartFn
	onBlockEnd   OnBlockEndFn

	// waiter is used only to block while the value is unresolved. It is
	// owned by the CompletionContext or the embedding runtime, which must
	// outlive the future. nil is allowed for already-resolved futures;
	// the resolved check in Wait short-circuits before it is touched.
	waiter *asyncval.Waiter
}

// Ready returns a future that is already resolved to v. Used when the
// outcome is known before any work is enqueued, for example to report
// invalid arguments eagerly. Its hooks are no-ops and Wait never blocks.
func Ready[T any](v T) Future[T] {
	o := applyOptions()

	return Future[T]{
		value:        asyncval.Available(v),
		onBlockStart: o.onBlockStart,
		onBlockEnd:   o.onBlockEnd,
	}
}

// New returns a future paired with ev that blocks through the waiting
// infrastructure owned by cc. This is the constructor for callers without
// a native runtime; cc must outlive the returned future and every copy of
// it.
func New[T any](cc *CompletionContext, ev Event[T], opts ...Option) Future[T] {
	if !ev.Valid() {
		panic("future: New with empty event")
	}

	o := applyOptions(opts...)

	return Future[T]{
		value:        ev.value,
		onBlockStart: o.onBlockStart,
		onBlockEnd:   o.onBlockEnd,
		waiter:       cc.waiter,
	}
}

// FromValue returns a future over a caller-managed value that blocks
// through the caller's own waiter. This is the constructor for runtimes
// that manage asyncval state natively; w must outlive the returned
// future.
func FromValue[T any](w *asyncval.Waiter, v *asyncval.Value[T], opts ...Option) Future[T] {
	o := applyOptions(opts...)

	return Future[T]{
		value:        v,
		onBlockStart: o.onBlockStart,
		onBlockEnd:   o.onBlockEnd,
		waiter:       w,
	}
}

// Wait blocks the calling goroutine until the future resolves, then
// returns the value. If the value is already available Wait returns it
// immediately without invoking the blocking hooks. Wait is safe to call
// concurrently from any number of goroutines holding copies of the same
// future; each call blocks independently while the value is unresolved.
//
// Calling Wait on the zero value of Future is a contract violation and
// panics.
func (f Future[T]) Wait() T {
	if f.value == nil {
		panic("future: Wait on zero future")
	}

	// The available check must come first: futures constructed with
	// Ready carry no waiter.
	if !f.value.Available() {
		keys := f.onBlockStart()
		f.waiter.Await(f.value)
		f.onBlockEnd(keys)
	}

	return f.value.Get()
}

// OnReady registers cb to run exactly once with the resolved value. If
// the future is already resolved cb runs synchronously on the calling
// goroutine; otherwise it runs later on the goroutine that resolves the
// event. Callers must not assume a particular goroutine, and no order is
// defined between distinct callbacks. OnReady itself never blocks.
func (f Future[T]) OnReady(cb func(T)) {
	if f.value == nil {
		panic("future: OnReady on zero future")
	}

	v := f.value
	v.AndThen(func() {
		cb(v.Get())
	})
}
