package kerneltester

import (
	"context"
	"log/slog"

	"github.com/quarkframe/go-accelrt/internal/kernelstate"
)

// WithKernelTestState returns a context with a kernel state attached that can be used for unit testing
// kernels.
func WithKernelTestState(ctx context.Context, taskID, kernelName string, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = slog.Default()
	}

	return kernelstate.WithKernelState(ctx, kernelstate.NewKernelState(taskID, kernelName, logger))
}
