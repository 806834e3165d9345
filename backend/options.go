package backend

import (
	"log/slog"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	mi "github.com/quarkframe/go-accelrt/internal/metrics"
	"github.com/quarkframe/go-accelrt/metrics"
)

type Options struct {
	Logger *slog.Logger

	Metrics metrics.Client

	TracerProvider trace.TracerProvider

	// Clock is the time source used for task timings and simulated delays.
	// Tests inject a mock clock here.
	Clock clock.Clock

	// MaxParallelTasks is the maximum number of tasks executing at the same
	// time. A value of 0 means no limit.
	MaxParallelTasks int
}

var DefaultOptions Options = Options{
	MaxParallelTasks: 0,

	Logger:         slog.Default(),
	Metrics:        mi.NewNoopMetricsClient(),
	TracerProvider: noop.NewTracerProvider(),
	Clock:          clock.New(),
}

type BackendOption func(*Options)

func WithLogger(logger *slog.Logger) BackendOption {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithMetrics(client metrics.Client) BackendOption {
	return func(o *Options) {
		o.Metrics = client
	}
}

func WithTracerProvider(tp trace.TracerProvider) BackendOption {
	return func(o *Options) {
		o.TracerProvider = tp
	}
}

func WithClock(c clock.Clock) BackendOption {
	return func(o *Options) {
		o.Clock = c
	}
}

func WithMaxParallelTasks(m int) BackendOption {
	return func(o *Options) {
		o.MaxParallelTasks = m
	}
}

func ApplyOptions(opts ...BackendOption) Options {
	options := DefaultOptions

	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	return options
}
