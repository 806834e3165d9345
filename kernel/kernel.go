// Package kernel gives kernel implementations access to their execution
// environment.
package kernel

import (
	"context"
	"log/slog"

	"github.com/quarkframe/go-accelrt/internal/kernelstate"
)

// Logger returns a logger with the task this kernel executes for set as default fields
func Logger(ctx context.Context) *slog.Logger {
	return kernelstate.GetKernelState(ctx).Logger
}

// TaskID returns the id of the task this kernel executes for
func TaskID(ctx context.Context) string {
	return kernelstate.GetKernelState(ctx).TaskID
}
