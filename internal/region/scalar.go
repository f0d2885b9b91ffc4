package region

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned when a buffer's element type has no ScalarType tag.
var ErrUnknownType = errors.New("unknown scalar type")

// ScalarType tags the element type of a sample buffer.
type ScalarType int

const (
	// Unknown is the zero value and never describes a valid buffer.
	Unknown ScalarType = iota
	Float32
	Int32
	Int16
	Uint16
	Uint8
	Float64
)

var scalarNames = map[ScalarType]string{
	Unknown: "unknown",
	Float32: "float32",
	Int32:   "int32",
	Int16:   "int16",
	Uint16:  "uint16",
	Uint8:   "uint8",
	Float64: "float64",
}

// String returns the Go name of the element type.
func (t ScalarType) String() string {
	if name, ok := scalarNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ScalarType(%d)", int(t))
}

// Size returns the element size in bytes, or 0 for Unknown.
func (t ScalarType) Size() int {
	switch t {
	case Float32, Int32:
		return 4
	case Int16, Uint16:
		return 2
	case Uint8:
		return 1
	case Float64:
		return 8
	}
	return 0
}

// ParseScalarType maps a Go type name such as "uint16" to its tag.
func ParseScalarType(name string) (ScalarType, error) {
	for t, n := range scalarNames {
		if t != Unknown && n == name {
			return t, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// typeOf returns the tag and length of a supported sample slice.
func typeOf(data any) (ScalarType, int) {
	switch d := data.(type) {
	case []float32:
		return Float32, len(d)
	case []int32:
		return Int32, len(d)
	case []int16:
		return Int16, len(d)
	case []uint16:
		return Uint16, len(d)
	case []uint8:
		return Uint8, len(d)
	case []float64:
		return Float64, len(d)
	}
	return Unknown, 0
}

func makeSlice(t ScalarType, n int) (any, error) {
	switch t {
	case Float32:
		return make([]float32, n), nil
	case Int32:
		return make([]int32, n), nil
	case Int16:
		return make([]int16, n), nil
	case Uint16:
		return make([]uint16, n), nil
	case Uint8:
		return make([]uint8, n), nil
	case Float64:
		return make([]float64, n), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownType, t)
}
