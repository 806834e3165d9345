package backend

import (
	"github.com/quarkframe/go-accelrt/core"
)

// LoadedProgram is a program that is resident on a device.
type LoadedProgram struct {
	// Program is the source program this was loaded from
	Program *core.Program

	// Handle identifies the loaded program on the device. It's set by the backend
	Handle string
}
