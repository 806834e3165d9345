// Package test contains a reusable conformance suite for Backend
// implementations.
package test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quarkframe/go-accelrt/backend"
	"github.com/quarkframe/go-accelrt/core"
	"github.com/quarkframe/go-accelrt/dtype"
	"github.com/quarkframe/go-accelrt/future"
)

// BackendTest runs the conformance suite against the backend returned by
// setup. Every test gets a fresh backend.
//
// The backend must become ready within a second and must be able to load
// a program named "echo" that returns its input buffers unchanged.
func BackendTest(t *testing.T, setup func() backend.Backend, teardown func(b backend.Backend)) {
	tests := []struct {
		name string
		f    func(t *testing.T, ctx context.Context, b backend.Backend)
	}{
		{
			name: "State_ReachesReady",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				waitReady(t, ctx, b)
			},
		},
		{
			name: "DeviceDescription_IsPopulated",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				desc, err := b.DeviceDescription(ctx)
				require.NoError(t, err)
				require.NotNil(t, desc)
				require.NotEmpty(t, desc.ID)
			},
		},
		{
			name: "LoadProgram_DoesNotError",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				waitReady(t, ctx, b)

				lp, err := b.LoadProgram(ctx, echoProgram())
				require.NoError(t, err)
				require.NotNil(t, lp)
				require.NotEmpty(t, lp.Handle)
			},
		},
		{
			name: "UnloadProgram_RemovesProgram",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				waitReady(t, ctx, b)

				lp, err := b.LoadProgram(ctx, echoProgram())
				require.NoError(t, err)

				require.NoError(t, b.UnloadProgram(ctx, lp))
				require.ErrorIs(t, b.UnloadProgram(ctx, lp), backend.ErrProgramNotLoaded)
			},
		},
		{
			name: "Submit_ResolvesCompletion",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				waitReady(t, ctx, b)

				lp, err := b.LoadProgram(ctx, echoProgram())
				require.NoError(t, err)

				in := core.NewBuffer(dtype.Int8, 2)
				copy(in.Data, []byte{7, 9})

				ev := future.NewEvent[*backend.Result]()
				err = b.Submit(ctx, &backend.Task{
					Program:    lp,
					Inputs:     []*core.Buffer{in},
					Completion: ev,
				})
				require.NoError(t, err)

				cc := future.NewCompletionContext()
				result := future.New(cc, ev).Wait()

				require.NoError(t, result.Err)
				require.Len(t, result.Outputs, 1)
				require.Equal(t, []byte{7, 9}, result.Outputs[0].Data)
			},
		},
		{
			name: "Submit_WithoutCompletionErrors",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				waitReady(t, ctx, b)

				lp, err := b.LoadProgram(ctx, echoProgram())
				require.NoError(t, err)

				require.Error(t, b.Submit(ctx, &backend.Task{Program: lp}))
			},
		},
		{
			name: "Submit_UnloadedProgramErrors",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				waitReady(t, ctx, b)

				lp, err := b.LoadProgram(ctx, echoProgram())
				require.NoError(t, err)
				require.NoError(t, b.UnloadProgram(ctx, lp))

				err = b.Submit(ctx, &backend.Task{
					Program:    lp,
					Completion: future.NewEvent[*backend.Result](),
				})
				require.ErrorIs(t, err, backend.ErrProgramNotLoaded)
			},
		},
		{
			name: "GetStats_CountsLoadedPrograms",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				waitReady(t, ctx, b)

				stats, err := b.GetStats(ctx)
				require.NoError(t, err)
				require.Equal(t, int64(0), stats.LoadedPrograms)

				_, err = b.LoadProgram(ctx, echoProgram())
				require.NoError(t, err)

				stats, err = b.GetStats(ctx)
				require.NoError(t, err)
				require.Equal(t, int64(1), stats.LoadedPrograms)
			},
		},
		{
			name: "Close_PreventsSubmission",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				waitReady(t, ctx, b)

				lp, err := b.LoadProgram(ctx, echoProgram())
				require.NoError(t, err)

				require.NoError(t, b.Close())

				err = b.Submit(ctx, &backend.Task{
					Program:    lp,
					Completion: future.NewEvent[*backend.Result](),
				})
				require.ErrorIs(t, err, backend.ErrBackendClosed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setup()

			ctx := context.Background()
			tt.f(t, ctx, b)

			if teardown != nil {
				teardown(b)
			}
		})
	}
}

func echoProgram() *core.Program {
	return &core.Program{Name: "echo", DType: dtype.Int8, Shape: []int64{2}}
}

func waitReady(t *testing.T, ctx context.Context, b backend.Backend) {
	t.Helper()

	require.Eventually(t, func() bool {
		s, err := b.State(ctx)
		return err == nil && s == core.DeviceStateReady
	}, time.Second, time.Millisecond)
}
