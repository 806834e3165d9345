package metrickeys

const (
	Prefix = "accelrt."

	// Tasks
	TaskSubmitted = Prefix + "task.submitted"
	TaskCompleted = Prefix + "task.completed"
	TaskPanicked  = Prefix + "task.panicked"
	TaskExecution = Prefix + "task.execution"

	// Programs
	ProgramLoaded        = Prefix + "program.loaded"
	ProgramLoad          = Prefix + "program.load"
	ProgramsResident     = Prefix + "program.resident"
	ProgramCacheSize     = Prefix + "program.cache.size"
	ProgramCacheEviction = Prefix + "program.cache.eviction"
)

// Tag names
const (
	// Backend being used
	Backend = "backend"

	// Reason for evicting an entry from the loaded-program cache
	EvictionReason = "reason"

	KernelName = "kernel"
)
