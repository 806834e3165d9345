// Package sim implements a simulated accelerator backend. Programs are
// backed by host kernels registered in a Registry, execution happens on a
// bounded worker pool and timing is driven by an injectable clock so tests
// can run without real delays.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quarkframe/go-accelrt/backend"
	"github.com/quarkframe/go-accelrt/core"
	"github.com/quarkframe/go-accelrt/dtype"
	"github.com/quarkframe/go-accelrt/internal/kernelstate"
	"github.com/quarkframe/go-accelrt/internal/metrickeys"
	"github.com/quarkframe/go-accelrt/internal/tracing"
	"github.com/quarkframe/go-accelrt/log"
	"github.com/quarkframe/go-accelrt/metrics"
)

const taskQueueSize = 1024

func NewSimBackend(registry *Registry, opts ...SimBackendOption) backend.Backend {
	if registry == nil {
		registry = NewRegistry()
	}

	options := &SimOptions{
		Options:    backend.ApplyOptions(),
		DeviceKind: "cpu",
	}

	for _, opt := range opts {
		opt(options)
	}

	sb := &simBackend{
		deviceID: fmt.Sprintf("sim-%v", uuid.NewString()),
		options:  options,
		registry: registry,

		state:    core.DeviceStateInitializing,
		readyAt:  options.Clock.Now().Add(options.InitDelay),
		programs: map[string]*core.Program{},

		queue:          make(chan *backend.Task, taskQueueSize),
		dispatcherDone: make(chan struct{}, 1),
	}

	go sb.dispatcher()

	return sb
}

type simBackend struct {
	deviceID string
	options  *SimOptions
	registry *Registry

	mu       sync.Mutex
	state    core.DeviceState
	readyAt  time.Time
	programs map[string]*core.Program

	pending atomic.Int64
	running atomic.Int64

	queue          chan *backend.Task
	dispatcherDone chan struct{}
}

func (sb *simBackend) Name() string {
	return "sim"
}

func (sb *simBackend) State(ctx context.Context) (core.DeviceState, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return sb.stateLocked(), nil
}

// stateLocked flips the device to ready once the initialization delay has
// elapsed on the configured clock. Callers must hold sb.mu.
func (sb *simBackend) stateLocked() core.DeviceState {
	if sb.state == core.DeviceStateInitializing && !sb.options.Clock.Now().Before(sb.readyAt) {
		sb.state = core.DeviceStateReady
	}

	return sb.state
}

func (sb *simBackend) DeviceDescription(ctx context.Context) (*core.DeviceDescription, error) {
	return &core.DeviceDescription{
		ID:          sb.deviceID,
		Kind:        sb.options.DeviceKind,
		DebugString: fmt.Sprintf("simulated %s device %s", sb.options.DeviceKind, sb.deviceID),
	}, nil
}

func (sb *simBackend) LoadProgram(ctx context.Context, program *core.Program) (*backend.LoadedProgram, error) {
	if program == nil || program.Name == "" {
		return nil, fmt.Errorf("program must have a name")
	}

	if program.DType == dtype.Float16 && !sb.FeatureSupported(backend.Feature_HalfPrecision) {
		return nil, &backend.ErrNotSupported{Message: "half precision programs"}
	}

	// Loading fails early when no kernel backs the program.
	if _, err := sb.registry.GetKernel(program.Name); err != nil {
		return nil, fmt.Errorf("loading program %q: %w", program.Name, err)
	}

	sb.mu.Lock()
	defer sb.mu.Unlock()

	switch sb.stateLocked() {
	case core.DeviceStateClosed:
		return nil, backend.ErrBackendClosed
	case core.DeviceStateReady:
	default:
		return nil, backend.ErrDeviceNotReady
	}

	handle := uuid.NewString()
	sb.programs[handle] = program

	sb.Metrics().Counter(metrickeys.ProgramLoaded, metrics.Tags{metrickeys.KernelName: program.Name}, 1)
	sb.Metrics().Gauge(metrickeys.ProgramsResident, metrics.Tags{}, int64(len(sb.programs)))

	sb.Logger().DebugContext(ctx, "loaded program",
		slog.String(log.ProgramNameKey, program.Name),
		slog.String(log.ProgramFingerprintKey, program.Fingerprint()),
		slog.String(log.DeviceIDKey, sb.deviceID),
	)

	return &backend.LoadedProgram{
		Program: program,
		Handle:  handle,
	}, nil
}

func (sb *simBackend) UnloadProgram(ctx context.Context, program *backend.LoadedProgram) error {
	if program == nil {
		return backend.ErrProgramNotLoaded
	}

	sb.mu.Lock()
	defer sb.mu.Unlock()

	if _, ok := sb.programs[program.Handle]; !ok {
		return backend.ErrProgramNotLoaded
	}

	delete(sb.programs, program.Handle)

	sb.Metrics().Gauge(metrickeys.ProgramsResident, metrics.Tags{}, int64(len(sb.programs)))

	sb.Logger().DebugContext(ctx, "unloaded program",
		slog.String(log.ProgramNameKey, program.Program.Name),
		slog.String(log.DeviceIDKey, sb.deviceID),
	)

	return nil
}

func (sb *simBackend) Submit(ctx context.Context, task *backend.Task) error {
	if task == nil || task.Program == nil {
		return fmt.Errorf("task must reference a loaded program")
	}

	if !task.Completion.Valid() {
		return fmt.Errorf("task must carry a completion event")
	}

	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	sb.mu.Lock()
	defer sb.mu.Unlock()

	switch sb.stateLocked() {
	case core.DeviceStateClosed:
		return backend.ErrBackendClosed
	case core.DeviceStateReady:
	default:
		return backend.ErrDeviceNotReady
	}

	if _, ok := sb.programs[task.Program.Handle]; !ok {
		return backend.ErrProgramNotLoaded
	}

	sb.pending.Add(1)

	select {
	case sb.queue <- task:
	case <-ctx.Done():
		sb.pending.Add(-1)
		return ctx.Err()
	}

	sb.Metrics().Counter(metrickeys.TaskSubmitted, metrics.Tags{metrickeys.KernelName: task.Program.Program.Name}, 1)

	return nil
}

func (sb *simBackend) GetStats(ctx context.Context) (*backend.Stats, error) {
	sb.mu.Lock()
	loaded := int64(len(sb.programs))
	sb.mu.Unlock()

	return &backend.Stats{
		PendingTasks:   sb.pending.Load(),
		RunningTasks:   sb.running.Load(),
		LoadedPrograms: loaded,
	}, nil
}

func (sb *simBackend) Tracer() trace.Tracer {
	return sb.options.TracerProvider.Tracer(backend.TracerName)
}

func (sb *simBackend) Metrics() metrics.Client {
	return sb.options.Metrics.WithTags(metrics.Tags{metrickeys.Backend: "sim"})
}

func (sb *simBackend) Options() *backend.Options {
	return &sb.options.Options
}

func (sb *simBackend) Close() error {
	sb.mu.Lock()

	if sb.state == core.DeviceStateClosed {
		sb.mu.Unlock()
		return nil
	}

	sb.state = core.DeviceStateClosed
	close(sb.queue)
	sb.mu.Unlock()

	// Wait for in-flight tasks to finish
	<-sb.dispatcherDone

	return nil
}

func (sb *simBackend) FeatureSupported(feature backend.Feature) bool {
	switch feature {
	case backend.Feature_HalfPrecision:
		return false
	}

	return true
}

func (sb *simBackend) Logger() *slog.Logger {
	return sb.options.Logger
}

func (sb *simBackend) dispatcher() {
	var sem chan struct{}

	if sb.options.MaxParallelTasks > 0 {
		sem = make(chan struct{}, sb.options.MaxParallelTasks)
	}

	var wg sync.WaitGroup

	for t := range sb.queue {
		// If limited max tasks, wait for a slot to open up
		if sem != nil {
			sem <- struct{}{}
		}

		wg.Add(1)

		t := t
		go func() {
			defer wg.Done()

			// Create new context to allow tasks to complete when the
			// submitting context is canceled
			taskCtx := context.Background()
			sb.execute(taskCtx, t)

			if sem != nil {
				<-sem
			}
		}()
	}

	wg.Wait()

	sb.dispatcherDone <- struct{}{}
}

func (sb *simBackend) execute(ctx context.Context, t *backend.Task) {
	sb.pending.Add(-1)
	sb.running.Add(1)
	defer sb.running.Add(-1)

	kernelName := t.Program.Program.Name

	ctx, span := sb.Tracer().Start(ctx, "TaskExecution", trace.WithAttributes(
		attribute.String(tracing.TaskID, t.ID),
		attribute.String(tracing.KernelName, kernelName),
		attribute.String(tracing.DeviceID, sb.deviceID),
	))
	defer span.End()

	start := sb.options.Clock.Now()

	outputs, err := sb.runKernel(ctx, t)

	duration := sb.options.Clock.Since(start)

	tags := metrics.Tags{metrickeys.KernelName: kernelName}
	sb.Metrics().Timing(metrickeys.TaskExecution, tags, duration)
	sb.Metrics().Counter(metrickeys.TaskCompleted, tags, 1)

	if err != nil {
		tracing.WithSpanError(span, err)

		if _, ok := err.(*backend.PanicError); ok {
			sb.Metrics().Counter(metrickeys.TaskPanicked, tags, 1)
		}

		sb.Logger().ErrorContext(ctx, "task failed",
			slog.String(log.TaskIDKey, t.ID),
			slog.String(log.KernelNameKey, kernelName),
			slog.Any("error", err),
		)
	} else {
		sb.Logger().DebugContext(ctx, "task completed",
			slog.String(log.TaskIDKey, t.ID),
			slog.String(log.KernelNameKey, kernelName),
			slog.Int64(log.DurationKey, duration.Milliseconds()),
		)
	}

	// Resolve the completion exactly once, on every path.
	t.Completion.Set(&backend.Result{
		Outputs:  outputs,
		Duration: duration,
		Err:      err,
	})
}

func (sb *simBackend) runKernel(ctx context.Context, t *backend.Task) (outputs []*core.Buffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			goerr := goerrors.Wrap(r, 1)
			err = backend.NewPanicError(fmt.Sprintf("kernel panicked: %v", r), string(goerr.Stack()))
		}
	}()

	kernel, err := sb.registry.GetKernel(t.Program.Program.Name)
	if err != nil {
		return nil, err
	}

	if sb.options.TaskLatency > 0 {
		sb.options.Clock.Sleep(sb.options.TaskLatency)
	}

	// Make task state available to the kernel
	ctx = kernelstate.WithKernelState(ctx, kernelstate.NewKernelState(t.ID, t.Program.Program.Name, sb.Logger()))

	return kernel(ctx, t.Inputs)
}
