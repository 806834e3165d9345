// Package client is the user-facing entry point for running programs on
// an accelerator backend. It compiles programs into a bounded cache of
// loaded programs, submits execution tasks and hands callers a future for
// every submission. Consumers of those futures block through a completion
// context owned by the client, so the client must outlive the futures it
// returns.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/quarkframe/go-accelrt/backend"
	"github.com/quarkframe/go-accelrt/core"
	"github.com/quarkframe/go-accelrt/future"
	"github.com/quarkframe/go-accelrt/internal/metrickeys"
	"github.com/quarkframe/go-accelrt/internal/tracing"
	"github.com/quarkframe/go-accelrt/log"
	"github.com/quarkframe/go-accelrt/metrics"
)

var ErrDeviceUnhealthy = errors.New("device is unhealthy")

type Client struct {
	backend backend.Backend
	clock   clock.Clock

	completion *future.CompletionContext
	blocks     *tracing.BlockTracker

	programs *ttlcache.Cache[string, *backend.LoadedProgram]
}

func New(b backend.Backend, opts ...Option) *Client {
	options := applyOptions(opts...)

	c := &Client{
		backend: b,
		clock:   clock.New(),

		completion: future.NewCompletionContext(),
		blocks:     tracing.NewBlockTracker(b.Tracer()),
	}

	c.programs = ttlcache.New(
		ttlcache.WithCapacity[string, *backend.LoadedProgram](uint64(options.programCacheSize)),
		ttlcache.WithTTL[string, *backend.LoadedProgram](options.programCacheTTL),
	)

	c.programs.OnEviction(func(ctx context.Context, er ttlcache.EvictionReason, i *ttlcache.Item[string, *backend.LoadedProgram]) {
		lp := i.Value()

		if err := c.backend.UnloadProgram(ctx, lp); err != nil {
			b.Logger().WarnContext(ctx, "unloading evicted program",
				log.ProgramNameKey, lp.Program.Name,
				"error", err,
			)
		}

		b.Metrics().Counter(metrickeys.ProgramCacheEviction, metrics.Tags{
			metrickeys.EvictionReason: evictionReason(er),
		}, 1)
	})

	go c.programs.Start()

	return c
}

// Compile makes program resident on the device, reusing a previously
// loaded instance when one with the same fingerprint is still cached.
func (c *Client) Compile(ctx context.Context, program *core.Program) (*backend.LoadedProgram, error) {
	if program == nil {
		return nil, errors.New("no program given")
	}

	fingerprint := program.Fingerprint()

	ctx, span := c.backend.Tracer().Start(ctx, fmt.Sprintf("CompileProgram: %s", program.Name), trace.WithAttributes(
		attribute.String(log.ProgramNameKey, program.Name),
		attribute.String(log.ProgramFingerprintKey, fingerprint),
	))
	defer span.End()

	if item := c.programs.Get(fingerprint); item != nil {
		return item.Value(), nil
	}

	timer := metrics.NewTimer(c.backend.Metrics(), metrickeys.ProgramLoad, metrics.Tags{})
	defer timer.Stop()

	lp, err := c.backend.LoadProgram(ctx, program)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("loading program: %w", err)
	}

	c.programs.Set(fingerprint, lp, ttlcache.DefaultTTL)
	c.backend.Metrics().Gauge(metrickeys.ProgramCacheSize, metrics.Tags{}, int64(c.programs.Len()))

	c.backend.Logger().DebugContext(ctx, "compiled program",
		log.ProgramNameKey, program.Name,
		log.ProgramFingerprintKey, fingerprint,
	)

	return lp, nil
}

// Execute compiles program if necessary and submits one execution task
// with the given inputs. It always returns a future; failures detected
// before submission resolve the future eagerly, everything later is
// reported through the task result once the device finishes.
func (c *Client) Execute(ctx context.Context, program *core.Program, inputs ...*core.Buffer) future.Future[*backend.Result] {
	ctx, span := c.backend.Tracer().Start(ctx, fmt.Sprintf("ExecuteProgram: %s", programName(program)), trace.WithAttributes(
		attribute.String(log.ProgramNameKey, programName(program)),
	))
	defer span.End()

	if err := validateInputs(program, inputs); err != nil {
		tracing.WithSpanError(span, err)
		return future.Ready(&backend.Result{Err: err})
	}

	lp, err := c.Compile(ctx, program)
	if err != nil {
		tracing.WithSpanError(span, err)
		return future.Ready(&backend.Result{Err: err})
	}

	taskID := uuid.NewString()

	onBlockStart, onBlockEnd := c.blocks.Hooks(ctx,
		attribute.String(log.TaskIDKey, taskID),
		attribute.String(log.KernelNameKey, program.Name),
	)

	ev := future.NewEvent[*backend.Result]()
	f := future.New(c.completion, ev,
		future.WithOnBlockStart(onBlockStart),
		future.WithOnBlockEnd(onBlockEnd),
	)

	task := &backend.Task{
		ID:         taskID,
		Program:    lp,
		Inputs:     inputs,
		Completion: ev,
	}

	if err := c.backend.Submit(ctx, task); err != nil {
		err = fmt.Errorf("submitting task: %w", err)
		tracing.WithSpanError(span, err)
		return future.Ready(&backend.Result{Err: err})
	}

	c.backend.Logger().DebugContext(ctx, "submitted task",
		log.TaskIDKey, taskID,
		log.KernelNameKey, program.Name,
	)

	return f
}

// ExecuteBatch runs program once per input set and waits for all
// executions to finish. The returned slice has one result per input set,
// in order. The first failed result aborts submission of the remaining
// sets and is returned as the batch error.
func (c *Client) ExecuteBatch(ctx context.Context, program *core.Program, batches [][]*core.Buffer) ([]*backend.Result, error) {
	results := make([]*backend.Result, len(batches))

	g, ctx := errgroup.WithContext(ctx)

	for i, inputs := range batches {
		i, inputs := i, inputs
		g.Go(func() error {
			r := c.Execute(ctx, program, inputs...).Wait()
			results[i] = r

			return r.Err
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("executing batch: %w", err)
	}

	return results, nil
}

// WaitReady polls the backend until the device reports ready or until the
// given timeout has expired.
func (c *Client) WaitReady(ctx context.Context, timeout time.Duration) error {
	if timeout == 0 {
		timeout = time.Second * 20
	}

	ctx, span := c.backend.Tracer().Start(ctx, "WaitForDevice", trace.WithAttributes(
		attribute.String(log.BackendNameKey, c.backend.Name()),
	))
	defer span.End()

	b := backoff.ExponentialBackOff{
		InitialInterval:     time.Millisecond * 1,
		MaxInterval:         time.Second * 1,
		Multiplier:          1.5,
		RandomizationFactor: 0.5,
		MaxElapsedTime:      timeout,
		Stop:                backoff.Stop,
		Clock:               c.clock,
	}
	b.Reset()

	ticker := backoff.NewTicker(&b)
	defer ticker.Stop()

	for range ticker.C {
		s, err := c.backend.State(ctx)
		if err != nil {
			return fmt.Errorf("getting device state: %w", err)
		}

		switch s {
		case core.DeviceStateReady:
			return nil
		case core.DeviceStateUnhealthy:
			return ErrDeviceUnhealthy
		case core.DeviceStateClosed:
			return backend.ErrBackendClosed
		}
	}

	return errors.New("device did not become ready in specified timeout")
}

// Close releases all cached programs and stops the cache's eviction loop.
// It does not close the backend, which the caller owns.
func (c *Client) Close() error {
	c.programs.DeleteAll()
	c.programs.Stop()

	return nil
}

func programName(program *core.Program) string {
	if program == nil {
		return ""
	}

	return program.Name
}

func validateInputs(program *core.Program, inputs []*core.Buffer) error {
	if program == nil || program.Name == "" {
		return errors.New("no program given")
	}

	for i, in := range inputs {
		if in == nil {
			return fmt.Errorf("input %d is nil", i)
		}

		if in.DType != program.DType {
			return fmt.Errorf("input %d: dtype %s does not match program dtype %s", i, in.DType, program.DType)
		}
	}

	return nil
}

func evictionReason(er ttlcache.EvictionReason) string {
	switch er {
	case ttlcache.EvictionReasonCapacityReached:
		return "capacity"
	case ttlcache.EvictionReasonExpired:
		return "expired"
	default:
		return "deleted"
	}
}
