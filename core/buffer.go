package core

import (
	"github.com/quarkframe/go-accelrt/dtype"
)

// Buffer is a block of device-transferable memory: raw bytes plus the
// element type and dimensions needed to interpret them.
type Buffer struct {
	DType dtype.DataType `json:"dtype,omitempty"`

	Dims []int64 `json:"dims,omitempty"`

	Data []byte `json:"data,omitempty"`
}

// NewBuffer allocates a zeroed buffer for the given element type and
// dimensions.
func NewBuffer(dt dtype.DataType, dims ...int64) *Buffer {
	b := &Buffer{
		DType: dt,
		Dims:  dims,
	}
	b.Data = make([]byte, b.SizeBytes())

	return b
}

// NumElements returns the number of elements described by Dims.
func (b *Buffer) NumElements() int64 {
	if len(b.Dims) == 0 {
		return 0
	}

	n := int64(1)
	for _, d := range b.Dims {
		n *= d
	}

	return n
}

// SizeBytes returns the byte size of the buffer's contents.
func (b *Buffer) SizeBytes() int64 {
	return b.NumElements() * int64(b.DType.Size())
}
