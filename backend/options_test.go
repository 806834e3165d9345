package backend

import (
	"log/slog"
	"os"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
)

func TestWithMaxParallelTasks(t *testing.T) {
	option := WithMaxParallelTasks(8)

	opts := ApplyOptions(option)

	assert.Equal(t, 8, opts.MaxParallelTasks)
}

func TestWithClock(t *testing.T) {
	c := clock.NewMock()
	option := WithClock(c)

	opts := ApplyOptions(option)

	assert.Same(t, c, opts.Clock)
}

func TestDefaultValues(t *testing.T) {
	opts := ApplyOptions()

	// Verify default values are preserved when no options are provided
	assert.Equal(t, 0, opts.MaxParallelTasks)
	assert.NotNil(t, opts.Logger)
	assert.NotNil(t, opts.Metrics)
	assert.NotNil(t, opts.TracerProvider)
	assert.NotNil(t, opts.Clock)
}

func TestCombinedOptions(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	c := clock.NewMock()

	opts := ApplyOptions(
		WithLogger(logger),
		WithClock(c),
		WithMaxParallelTasks(2),
	)

	assert.Same(t, logger, opts.Logger)
	assert.Same(t, c, opts.Clock)
	assert.Equal(t, 2, opts.MaxParallelTasks)
}
