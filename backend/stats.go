package backend

type Stats struct {
	// PendingTasks are the number of tasks that are currently in the queue,
	// waiting to be executed by the device
	PendingTasks int64 `json:"pending_tasks"`

	// RunningTasks are the number of tasks currently executing
	RunningTasks int64 `json:"running_tasks"`

	// LoadedPrograms is the number of programs resident on the device
	LoadedPrograms int64 `json:"loaded_programs"`
}
