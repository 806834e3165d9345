package sim

import (
	"time"

	"github.com/quarkframe/go-accelrt/backend"
)

type SimOptions struct {
	backend.Options

	// DeviceKind is reported in the device description, for instance "cpu"
	// or "gpu".
	DeviceKind string

	// InitDelay is how long the device stays in the initializing state
	// after creation before it accepts work.
	InitDelay time.Duration

	// TaskLatency is the simulated execution time added to every task,
	// before the kernel itself runs.
	TaskLatency time.Duration
}

type SimBackendOption func(*SimOptions)

func WithDeviceKind(kind string) SimBackendOption {
	return func(o *SimOptions) {
		o.DeviceKind = kind
	}
}

func WithInitDelay(delay time.Duration) SimBackendOption {
	return func(o *SimOptions) {
		o.InitDelay = delay
	}
}

func WithTaskLatency(latency time.Duration) SimBackendOption {
	return func(o *SimOptions) {
		o.TaskLatency = latency
	}
}

func WithBackendOptions(opts ...backend.BackendOption) SimBackendOption {
	return func(o *SimOptions) {
		for _, opt := range opts {
			opt(&o.Options)
		}
	}
}
