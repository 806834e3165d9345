package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quarkframe/go-accelrt/core"
)

func noopKernel(ctx context.Context, inputs []*core.Buffer) ([]*core.Buffer, error) {
	return nil, nil
}

func TestRegistry_RegisterKernel(t *testing.T) {
	type args struct {
		name   string
		kernel Kernel
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name: "valid kernel",
			args: args{
				name:   "noop",
				kernel: noopKernel,
			},
		},
		{
			name: "missing name",
			args: args{
				kernel: noopKernel,
			},
			wantErr: true,
		},
		{
			name: "nil kernel",
			args: args{
				name: "noop",
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()

			err := r.RegisterKernel(tt.args.name, tt.args.kernel)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)

			k, err := r.GetKernel(tt.args.name)
			require.NoError(t, err)
			require.NotNil(t, k)
		})
	}
}

func TestRegistry_DuplicateKernel(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.RegisterKernel("noop", noopKernel))

	err := r.RegisterKernel("noop", noopKernel)
	require.Error(t, err)

	var dup *ErrKernelAlreadyRegistered
	require.ErrorAs(t, err, &dup)
}

func TestRegistry_GetUnknownKernel(t *testing.T) {
	r := NewRegistry()

	_, err := r.GetKernel("missing")
	require.ErrorContains(t, err, `kernel "missing" not found`)
}
