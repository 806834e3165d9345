package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/quarkframe/go-accelrt/core"
	"github.com/quarkframe/go-accelrt/metrics"
)

var (
	ErrDeviceNotReady   = errors.New("device is not ready")
	ErrProgramNotLoaded = errors.New("program is not loaded")
	ErrBackendClosed    = errors.New("backend is closed")
)

type ErrNotSupported struct {
	Message string
}

func (e ErrNotSupported) Error() string {
	return fmt.Sprintf("not supported: %s", e.Message)
}

const TracerName = "go-accelrt"

type Feature int

const (
	// Feature_HalfPrecision indicates support for 16-bit floating point
	// buffers and programs.
	Feature_HalfPrecision Feature = iota

	// Feature_Profiling indicates that the backend reports per-task
	// execution timings.
	Feature_Profiling
)

//go:generate mockery --name=Backend --inpackage
type Backend interface {
	// Name returns the identifier of this backend. It is used as a tag on
	// metrics and log records.
	Name() string

	// State returns the current lifecycle state of the device behind this
	// backend.
	State(ctx context.Context) (core.DeviceState, error)

	// DeviceDescription describes the device behind this backend.
	DeviceDescription(ctx context.Context) (*core.DeviceDescription, error)

	// LoadProgram makes a program resident on the device. The returned
	// LoadedProgram must be released with UnloadProgram once it is no
	// longer needed.
	LoadProgram(ctx context.Context, program *core.Program) (*LoadedProgram, error)

	// UnloadProgram releases the device resources held by a loaded program.
	UnloadProgram(ctx context.Context, program *LoadedProgram) error

	// Submit enqueues a task for execution. Acceptance is synchronous;
	// the outcome is reported exactly once through task.Completion, on
	// every path including execution errors.
	Submit(ctx context.Context, task *Task) error

	// GetStats returns stats about the backend
	GetStats(ctx context.Context) (*Stats, error)

	// Tracer returns the configured trace provider for the backend
	Tracer() trace.Tracer

	// Metrics returns the configured metrics client for the backend
	Metrics() metrics.Client

	// Logger returns the configured logger for the backend
	Logger() *slog.Logger

	// Options returns the configured options for the backend
	Options() *Options

	// Close closes any underlying resources
	Close() error

	// FeatureSupported returns true if the given feature is supported by the backend
	FeatureSupported(feature Feature) bool
}
