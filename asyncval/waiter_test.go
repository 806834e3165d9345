package asyncval

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func Test_AwaitAvailableValueReturnsImmediately(t *testing.T) {
	w := NewWaiter()
	av := Available(42)

	w.Await(av)

	require.Equal(t, 42, av.Get())
	require.Equal(t, 0, w.ActiveWaits())
}

func Test_AwaitBlocksUntilEmplace(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewWaiter()
	av := Unconstructed[int]()

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Await(av)
	}()

	select {
	case <-done:
		require.FailNow(t, "Await returned before the value was emplaced")
	case <-time.After(10 * time.Millisecond):
	}

	av.Emplace(42)

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "Await did not return after the value was emplaced")
	}

	require.Equal(t, 0, w.ActiveWaits())
}

func Test_AwaitMultipleValues(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewWaiter()
	first := Unconstructed[int]()
	second := Unconstructed[int]()
	third := Available(3)

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Await(first, second, third)
	}()

	first.Emplace(1)

	select {
	case <-done:
		require.FailNow(t, "Await returned with one value still unresolved")
	case <-time.After(10 * time.Millisecond):
	}

	second.Emplace(2)

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "Await did not return after all values resolved")
	}
}

func Test_ConcurrentAwaits(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewWaiter()
	av := Unconstructed[int]()

	const waiters = 8

	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Await(av)
		}()
	}

	av.Emplace(42)
	wg.Wait()

	require.Equal(t, 0, w.ActiveWaits())
}
