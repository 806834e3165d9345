package kernelstate

import (
	"context"
	"log/slog"

	"github.com/quarkframe/go-accelrt/log"
)

type KernelState struct {
	TaskID string
	Logger *slog.Logger
}

func NewKernelState(taskID, kernelName string, logger *slog.Logger) *KernelState {
	return &KernelState{
		taskID,
		logger.With(
			log.TaskIDKey, taskID,
			log.KernelNameKey, kernelName,
		)}
}

type key int

var kernelCtxKey key

func WithKernelState(ctx context.Context, ks *KernelState) context.Context {
	return context.WithValue(ctx, kernelCtxKey, ks)
}

func GetKernelState(context context.Context) *KernelState {
	return context.Value(kernelCtxKey).(*KernelState)
}
