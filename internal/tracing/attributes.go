package tracing

const (
	BackendName = "backend.name"

	DeviceID = "device.id"

	TaskID     = "task.id"
	KernelName = "task.kernel"

	ProgramName        = "program.name"
	ProgramFingerprint = "program.fingerprint"
)
