package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/goleak"

	"github.com/quarkframe/go-accelrt/backend"
	"github.com/quarkframe/go-accelrt/backend/sim"
	"github.com/quarkframe/go-accelrt/core"
	"github.com/quarkframe/go-accelrt/dtype"
	im "github.com/quarkframe/go-accelrt/internal/metrics"
)

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func doubleKernel(ctx context.Context, inputs []*core.Buffer) ([]*core.Buffer, error) {
	in := inputs[0]

	out := core.NewBuffer(in.DType, in.Dims...)
	for i, b := range in.Data {
		out.Data[i] = b * 2
	}

	return []*core.Buffer{out}, nil
}

func newSimClient(t *testing.T, opts ...Option) (*Client, backend.Backend) {
	t.Helper()

	r := sim.NewRegistry()
	require.NoError(t, r.RegisterKernel("double", doubleKernel))
	require.NoError(t, r.RegisterKernel("fail", func(ctx context.Context, inputs []*core.Buffer) ([]*core.Buffer, error) {
		return nil, errors.New("device fault")
	}))

	b := sim.NewSimBackend(r)

	return New(b, opts...), b
}

func Test_Client_ExecuteNoProgram(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := &backend.MockBackend{}
	b.On("Tracer").Return(noop.NewTracerProvider().Tracer("test"))

	c := New(b)
	defer c.Close()

	result := c.Execute(context.Background(), nil).Wait()

	require.EqualError(t, result.Err, "no program given")
	b.AssertExpectations(t)
}

func Test_Client_ExecuteDTypeMismatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := &backend.MockBackend{}
	b.On("Tracer").Return(noop.NewTracerProvider().Tracer("test"))

	c := New(b)
	defer c.Close()

	program := &core.Program{Name: "double", DType: dtype.Float32, Shape: []int64{1}}
	in := core.NewBuffer(dtype.Int8, 1)

	result := c.Execute(context.Background(), program, in).Wait()

	require.ErrorContains(t, result.Err, "does not match program dtype")
	b.AssertExpectations(t)
}

func Test_Client_ExecuteSubmitError(t *testing.T) {
	defer goleak.VerifyNone(t)

	program := &core.Program{Name: "double", DType: dtype.Int8, Shape: []int64{1}}
	lp := &backend.LoadedProgram{Program: program, Handle: "handle"}

	b := &backend.MockBackend{}
	b.On("Tracer").Return(noop.NewTracerProvider().Tracer("test"))
	b.On("Metrics").Return(im.NewNoopMetricsClient())
	b.On("Logger").Return(slogDiscard())
	b.On("LoadProgram", mock.Anything, program).Return(lp, nil)
	b.On("Submit", mock.Anything, mock.Anything).Return(backend.ErrDeviceNotReady)

	c := New(b)
	defer c.Close()

	result := c.Execute(context.Background(), program).Wait()

	require.ErrorIs(t, result.Err, backend.ErrDeviceNotReady)
	require.ErrorContains(t, result.Err, "submitting task")
	b.AssertExpectations(t)
}

func Test_Client_WaitReadyTimeout(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := &backend.MockBackend{}
	b.On("Tracer").Return(noop.NewTracerProvider().Tracer("test"))
	b.On("Name").Return("mock")
	b.On("State", mock.Anything).Return(core.DeviceStateInitializing, nil)

	c := New(b)
	defer c.Close()

	err := c.WaitReady(context.Background(), time.Microsecond*1)
	require.EqualError(t, err, "device did not become ready in specified timeout")
	b.AssertExpectations(t)
}

func Test_Client_WaitReadySuccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	mockClock := clock.NewMock()

	b := &backend.MockBackend{}
	b.On("Tracer").Return(noop.NewTracerProvider().Tracer("test"))
	b.On("Name").Return("mock")
	b.On("State", mock.Anything).Return(core.DeviceStateInitializing, nil).Once().Run(func(args mock.Arguments) {
		// After the first call, advance the clock to immediately go to the second call below
		mockClock.Add(time.Second)
	})
	b.On("State", mock.Anything).Return(core.DeviceStateReady, nil)

	c := New(b)
	defer c.Close()
	c.clock = mockClock

	require.NoError(t, c.WaitReady(context.Background(), time.Second*10))
	b.AssertExpectations(t)
}

func Test_Client_WaitReadyUnhealthy(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := &backend.MockBackend{}
	b.On("Tracer").Return(noop.NewTracerProvider().Tracer("test"))
	b.On("Name").Return("mock")
	b.On("State", mock.Anything).Return(core.DeviceStateUnhealthy, nil)

	c := New(b)
	defer c.Close()

	err := c.WaitReady(context.Background(), time.Second)
	require.ErrorIs(t, err, ErrDeviceUnhealthy)
	b.AssertExpectations(t)
}

func Test_Client_ExecuteEndToEnd(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, b := newSimClient(t)
	defer b.Close()
	defer c.Close()

	ctx := context.Background()

	require.NoError(t, c.WaitReady(ctx, time.Second))

	program := &core.Program{Name: "double", DType: dtype.Int8, Shape: []int64{4}}

	in := core.NewBuffer(dtype.Int8, 4)
	copy(in.Data, []byte{1, 2, 3, 4})

	result := c.Execute(ctx, program, in).Wait()

	require.NoError(t, result.Err)
	require.Len(t, result.Outputs, 1)
	require.Equal(t, []byte{2, 4, 6, 8}, result.Outputs[0].Data)
}

func Test_Client_ExecuteKernelError(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, b := newSimClient(t)
	defer b.Close()
	defer c.Close()

	program := &core.Program{Name: "fail", DType: dtype.Int8, Shape: []int64{1}}

	result := c.Execute(context.Background(), program).Wait()

	require.ErrorContains(t, result.Err, "device fault")
}

func Test_Client_CompileCachesPrograms(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, b := newSimClient(t)
	defer b.Close()
	defer c.Close()

	ctx := context.Background()

	program := &core.Program{Name: "double", DType: dtype.Int8, Shape: []int64{4}}

	first, err := c.Compile(ctx, program)
	require.NoError(t, err)

	second, err := c.Compile(ctx, program)
	require.NoError(t, err)

	// The cached instance is reused, not loaded again
	require.Same(t, first, second)

	stats, err := b.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.LoadedPrograms)
}

func Test_Client_CacheEvictionUnloads(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, b := newSimClient(t, WithProgramCacheSize(1))
	defer b.Close()
	defer c.Close()

	ctx := context.Background()

	_, err := c.Compile(ctx, &core.Program{Name: "double", DType: dtype.Int8, Shape: []int64{4}})
	require.NoError(t, err)

	_, err = c.Compile(ctx, &core.Program{Name: "fail", DType: dtype.Int8, Shape: []int64{4}})
	require.NoError(t, err)

	// Loading the second program evicted and unloaded the first
	stats, err := b.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.LoadedPrograms)
}

func Test_Client_CloseUnloadsPrograms(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, b := newSimClient(t)
	defer b.Close()

	ctx := context.Background()

	_, err := c.Compile(ctx, &core.Program{Name: "double", DType: dtype.Int8, Shape: []int64{4}})
	require.NoError(t, err)

	require.NoError(t, c.Close())

	stats, err := b.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), stats.LoadedPrograms)
}

func Test_Client_ExecuteBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, b := newSimClient(t)
	defer b.Close()
	defer c.Close()

	program := &core.Program{Name: "double", DType: dtype.Int8, Shape: []int64{1}}

	batches := make([][]*core.Buffer, 3)
	for i := range batches {
		in := core.NewBuffer(dtype.Int8, 1)
		in.Data[0] = byte(i + 1)
		batches[i] = []*core.Buffer{in}
	}

	results, err := c.ExecuteBatch(context.Background(), program, batches)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		require.NoError(t, r.Err)
		require.Equal(t, byte((i+1)*2), r.Outputs[0].Data[0])
	}
}

func Test_Client_ExecuteBatchError(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, b := newSimClient(t)
	defer b.Close()
	defer c.Close()

	program := &core.Program{Name: "fail", DType: dtype.Int8, Shape: []int64{1}}

	results, err := c.ExecuteBatch(context.Background(), program, [][]*core.Buffer{{}, {}})
	require.ErrorContains(t, err, "executing batch")
	require.Len(t, results, 2)
}
