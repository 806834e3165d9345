// Package core holds the identity and value types shared between the
// client and device backends.
package core

import (
	"fmt"
	"hash/fnv"

	"github.com/quarkframe/go-accelrt/dtype"
)

// Program describes a compiled computation to run on a device. Name
// selects the device kernel, DType and Shape describe the output buffer
// the kernel produces.
type Program struct {
	Name string `json:"name,omitempty"`

	DType dtype.DataType `json:"dtype,omitempty"`

	Shape []int64 `json:"shape,omitempty"`
}

// NumElements returns the number of output elements, 0 for a scalar-free
// empty shape.
func (p *Program) NumElements() int64 {
	if len(p.Shape) == 0 {
		return 0
	}

	n := int64(1)
	for _, d := range p.Shape {
		n *= d
	}

	return n
}

// Fingerprint returns a stable key identifying the program, used to cache
// loaded programs per device.
func (p *Program) Fingerprint() string {
	h := fnv.New64a()

	fmt.Fprintf(h, "%s|%d", p.Name, p.DType)
	for _, d := range p.Shape {
		fmt.Fprintf(h, "|%d", d)
	}

	return fmt.Sprintf("%s-%016x", p.Name, h.Sum64())
}
