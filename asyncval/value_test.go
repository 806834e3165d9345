package asyncval

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_UnconstructedIsNotAvailable(t *testing.T) {
	av := Unconstructed[int]()

	require.False(t, av.Available())
	require.False(t, av.Concrete())
}

func Test_AvailableIsResolved(t *testing.T) {
	av := Available(42)

	require.True(t, av.Available())
	require.True(t, av.Concrete())
	require.Equal(t, 42, av.Get())
}

func Test_EmplaceResolves(t *testing.T) {
	av := Unconstructed[string]()

	av.Emplace("done")

	require.True(t, av.Available())
	require.Equal(t, "done", av.Get())
}

func Test_EmplaceTwicePanics(t *testing.T) {
	av := Unconstructed[int]()

	av.Emplace(1)

	require.Panics(t, func() {
		av.Emplace(2)
	})
}

func Test_GetBeforeResolutionPanics(t *testing.T) {
	av := Unconstructed[int]()

	require.Panics(t, func() {
		av.Get()
	})
}

func Test_AndThenBeforeResolution(t *testing.T) {
	av := Unconstructed[int]()

	ran := false
	av.AndThen(func() {
		ran = true
	})

	require.False(t, ran)

	av.Emplace(42)

	require.True(t, ran)
}

func Test_AndThenAfterResolutionRunsInline(t *testing.T) {
	av := Unconstructed[int]()
	av.Emplace(42)

	ran := false
	av.AndThen(func() {
		ran = true
	})

	require.True(t, ran)
}

func Test_AndThenObservesValue(t *testing.T) {
	av := Unconstructed[int]()

	got := 0
	av.AndThen(func() {
		got = av.Get()
	})

	av.Emplace(7)

	require.Equal(t, 7, got)
}

func Test_ConcurrentConsumersObserveSameValue(t *testing.T) {
	av := Unconstructed[int]()

	const consumers = 16

	var wg sync.WaitGroup
	results := make([]int, consumers)

	for i := 0; i < consumers; i++ {
		i := i
		wg.Add(1)
		av.AndThen(func() {
			defer wg.Done()
			results[i] = av.Get()
		})
	}

	av.Emplace(99)
	wg.Wait()

	for i := 0; i < consumers; i++ {
		require.Equal(t, 99, results[i])
	}
}
