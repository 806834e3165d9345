package backend

import (
	"time"

	"github.com/quarkframe/go-accelrt/core"
	"github.com/quarkframe/go-accelrt/future"
)

// Task represents one program execution on a device.
type Task struct {
	// ID is an identifier for this task. It's set by the submitter
	ID string

	// Program is the loaded program to execute
	Program *LoadedProgram

	// Inputs are the argument buffers for this execution
	Inputs []*core.Buffer

	// Completion is resolved exactly once when the task finishes. Failures
	// travel inside the result, never through the completion mechanism
	// itself.
	Completion future.Event[*Result]

	// Backend specific data, only the producer of the task should rely on this.
	CustomData any
}

// Result is the outcome of a task, delivered through its completion event.
type Result struct {
	// Outputs are the buffers produced by the execution
	Outputs []*core.Buffer

	// Duration is the wall time the execution took on the device
	Duration time.Duration

	// Err is set when the execution failed
	Err error
}
