package tracing

import (
	"context"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quarkframe/go-accelrt/future"
)

// BlockTracker bridges the future package's blocking hooks to tracing
// spans: every section a consumer spends blocked on a future becomes one
// span. The ProfilingKeys returned by the start hook carry the
// correlation id the end hook uses to find and end the span.
type BlockTracker struct {
	tracer trace.Tracer

	next atomic.Uint64

	mu     sync.Mutex
	active map[uint64]trace.Span
}

func NewBlockTracker(tracer trace.Tracer) *BlockTracker {
	return &BlockTracker{
		tracer: tracer,
		active: map[uint64]trace.Span{},
	}
}

// Hooks returns the hook pair to pass to a future constructor. Spans are
// parented to ctx and carry attrs; one pair can serve any number of
// concurrent Wait calls.
func (bt *BlockTracker) Hooks(ctx context.Context, attrs ...attribute.KeyValue) (future.OnBlockStartFn, future.OnBlockEndFn) {
	start := func() future.ProfilingKeys {
		id := bt.next.Add(1)

		_, span := bt.tracer.Start(ctx, "WaitForResult",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(attrs...),
		)

		bt.mu.Lock()
		bt.active[id] = span
		bt.mu.Unlock()

		return future.ProfilingKeys{TraceContextID: id}
	}

	end := func(keys future.ProfilingKeys) {
		bt.mu.Lock()
		span, ok := bt.active[keys.TraceContextID]
		delete(bt.active, keys.TraceContextID)
		bt.mu.Unlock()

		// Keys minted by another tracker or by the default no-op start
		// hook have no span to end.
		if !ok {
			return
		}

		span.End()
	}

	return start, end
}
