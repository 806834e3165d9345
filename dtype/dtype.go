// Package dtype enumerates the element types accelerator buffers are made
// of, with the string renderings device shader languages expect.
package dtype

import "strconv"

type DataType int

const (
	Unknown DataType = iota

	Float16
	Float32
	Float64

	Int8
	Int16
	Int32
	Int64

	Uint8
	Uint16
	Uint32
	Uint64
)

// Size returns the width of one element in bytes, 0 for Unknown.
func (d DataType) Size() int {
	switch d {
	case Uint8, Int8:
		return 1
	case Float16, Int16, Uint16:
		return 2
	case Float32, Int32, Uint32:
		return 4
	case Float64, Int64, Uint64:
		return 8
	default:
		return 0
	}
}

func (d DataType) String() string {
	switch d {
	case Float16:
		return "float16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Unknown:
		return "unknown"
	default:
		return "undefined"
	}
}

func (d DataType) float() bool {
	return d == Float64 || d == Float32 || d == Float16
}

func (d DataType) signed() bool {
	return d == Int64 || d == Int32 || d == Int16 || d == Int8
}

func (d DataType) unsigned() bool {
	return d == Uint64 || d == Uint32 || d == Uint16 || d == Uint8
}

// OpenCL returns the OpenCL C type for vectors of vecSize elements;
// vecSize 1 yields the scalar type.
func (d DataType) OpenCL(vecSize int) string {
	postfix := ""
	if vecSize != 1 {
		postfix = strconv.Itoa(vecSize)
	}

	switch d {
	case Float16:
		return "half" + postfix
	case Float32:
		return "float" + postfix
	case Float64:
		return "double" + postfix
	case Int8:
		return "char" + postfix
	case Int16:
		return "short" + postfix
	case Int32:
		return "int" + postfix
	case Int64:
		return "long" + postfix
	case Uint8:
		return "uchar" + postfix
	case Uint16:
		return "ushort" + postfix
	case Uint32:
		return "uint" + postfix
	case Uint64:
		return "ulong" + postfix
	case Unknown:
		return "unknown"
	default:
		return "undefined"
	}
}

// Metal returns the Metal shading language type for vectors of vecSize
// elements. Metal shares OpenCL's scalar type names.
func (d DataType) Metal(vecSize int) string {
	return d.OpenCL(vecSize)
}

// GLSLOptions control how GLSL renders a type.
type GLSLOptions struct {
	// VecSize is the vector width; 1 yields the scalar type.
	VecSize int

	// AddPrecision prefixes the type with a precision qualifier derived
	// from the element size (highp, mediump, lowp).
	AddPrecision bool

	// ExplicitFP16 renders Float16 as float16_t/f16vec instead of the
	// implicit mediump float types.
	ExplicitFP16 bool
}

// GLSL returns the GLSL type for d under the given options.
func (d DataType) GLSL(opts GLSLOptions) string {
	scalarType := "unknown"
	vecType := "unknown"

	precision := ""
	switch {
	case d.Size() >= 4:
		precision = "highp"
	case d.Size() == 2:
		precision = "mediump"
	case d.Size() == 1:
		precision = "lowp"
	}

	switch {
	case d.float():
		scalarType = "float"
		vecType = "vec"
		if opts.ExplicitFP16 && d == Float16 {
			scalarType = "float16_t"
			vecType = "f16vec"
			precision = ""
		}
	case d.signed():
		scalarType = "int"
		vecType = "ivec"
	case d.unsigned():
		scalarType = "uint"
		vecType = "uvec"
	}

	kernelType := scalarType
	if opts.VecSize != 1 {
		kernelType = vecType + strconv.Itoa(opts.VecSize)
	}

	if opts.AddPrecision && precision != "" {
		kernelType = precision + " " + kernelType
	}

	return kernelType
}
