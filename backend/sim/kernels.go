package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/quarkframe/go-accelrt/core"
)

// Kernel is the host implementation of a device program. It receives the
// input buffers of a task and produces its output buffers.
type Kernel func(ctx context.Context, inputs []*core.Buffer) ([]*core.Buffer, error)

type Registry struct {
	sync.Mutex

	kernelMap map[string]Kernel
}

// NewRegistry creates a new registry instance.
func NewRegistry() *Registry {
	return &Registry{
		kernelMap: make(map[string]Kernel),
	}
}

func (r *Registry) RegisterKernel(name string, kernel Kernel) error {
	if name == "" {
		return &ErrInvalidKernel{"kernel name must not be empty"}
	}

	if kernel == nil {
		return &ErrInvalidKernel{"kernel must not be nil"}
	}

	r.Lock()
	defer r.Unlock()

	if _, ok := r.kernelMap[name]; ok {
		return &ErrKernelAlreadyRegistered{fmt.Sprintf("kernel with name %q already registered", name)}
	}
	r.kernelMap[name] = kernel

	return nil
}

func (r *Registry) GetKernel(name string) (Kernel, error) {
	r.Lock()
	defer r.Unlock()

	if kernel, ok := r.kernelMap[name]; ok {
		return kernel, nil
	}

	return nil, fmt.Errorf("kernel %q not found", name)
}
