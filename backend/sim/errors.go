package sim

type ErrInvalidKernel struct {
	msg string
}

func (e *ErrInvalidKernel) Error() string {
	return e.msg
}

type ErrKernelAlreadyRegistered struct {
	msg string
}

func (e *ErrKernelAlreadyRegistered) Error() string {
	return e.msg
}
