package backend

// PanicError is the task result error when a kernel panics during
// execution. The panic is confined to the task; the device keeps
// processing other work.
type PanicError struct {
	message    string
	stacktrace string
}

func (pe *PanicError) Error() string {
	return pe.message
}

// Stack returns the stack trace captured when the panic was recovered.
func (pe *PanicError) Stack() string {
	return pe.stacktrace
}

func NewPanicError(msg string, stacktrace string) *PanicError {
	return &PanicError{
		message:    msg,
		stacktrace: stacktrace,
	}
}
