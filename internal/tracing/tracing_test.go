package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/quarkframe/go-accelrt/future"
)

func newRecordingTracker(t *testing.T) (*BlockTracker, *tracetest.SpanRecorder) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})

	return NewBlockTracker(tp.Tracer("test")), sr
}

func Test_HooksProduceOneSpanPerBlock(t *testing.T) {
	bt, sr := newRecordingTracker(t)

	start, end := bt.Hooks(context.Background(), attribute.String(KernelName, "matmul"))

	keys := start()
	require.Empty(t, sr.Ended(), "span must stay open while blocked")

	end(keys)

	ended := sr.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, "WaitForResult", ended[0].Name())
	require.Contains(t, ended[0].Attributes(), attribute.String(KernelName, "matmul"))
}

func Test_HooksCorrelateConcurrentBlocks(t *testing.T) {
	bt, sr := newRecordingTracker(t)

	start, end := bt.Hooks(context.Background())

	first := start()
	second := start()
	require.NotEqual(t, first.TraceContextID, second.TraceContextID)

	end(second)
	require.Len(t, sr.Ended(), 1)

	end(first)
	require.Len(t, sr.Ended(), 2)
}

func Test_HooksIgnoreUnknownKeys(t *testing.T) {
	bt, sr := newRecordingTracker(t)

	_, end := bt.Hooks(context.Background())

	// Keys from the default no-op start hook; must not panic or end
	// anything.
	end(future.ProfilingKeys{})
	end(future.ProfilingKeys{TraceContextID: 99})

	require.Empty(t, sr.Ended())
}
