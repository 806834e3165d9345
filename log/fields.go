// Package log defines the field keys used for structured logging across
// the module. Keys are namespaced so that logs from embedding applications
// do not collide.
package log

const (
	NamespaceKey = "accelrt"

	BackendNameKey = NamespaceKey + ".backend.name"

	DeviceIDKey    = NamespaceKey + ".device.id"
	DeviceStateKey = NamespaceKey + ".device.state"

	TaskIDKey     = NamespaceKey + ".task.id"
	KernelNameKey = NamespaceKey + ".task.kernel"

	ProgramNameKey        = NamespaceKey + ".program.name"
	ProgramFingerprintKey = NamespaceKey + ".program.fingerprint"

	DurationKey = NamespaceKey + ".duration_ms"
)
