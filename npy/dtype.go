package npy

import (
	"math"

	"github.com/pkg/errors"
)

// DType identifies the element type declared in an array's descr field.
// Every supported dtype decodes to float64 elements.
type DType int

const (
	Float64 DType = iota
	Float32
	Float16
	Uint32
	Uint8
	Bool
)

func (d DType) String() string {
	switch d {
	case Float64:
		return "f8"
	case Float32:
		return "f4"
	case Float16:
		return "f2"
	case Uint32:
		return "u4"
	case Uint8:
		return "u1"
	case Bool:
		return "b1"
	default:
		panic("invalid dtype")
	}
}

// Size returns the element width in bytes.
func (d DType) Size() int {
	switch d {
	case Float64:
		return 8
	case Float32, Uint32:
		return 4
	case Float16:
		return 2
	case Uint8, Bool:
		return 1
	default:
		panic("invalid dtype")
	}
}

// ParseDescr maps a numpy descr string to a DType. Little-endian and
// byte-order-agnostic prefixes are accepted; big-endian data is not.
func ParseDescr(descr string) (DType, error) {
	if descr == "" {
		return 0, errors.New("npy: empty descr")
	}
	if descr[0] == '>' {
		return 0, errors.Errorf("npy: big-endian descr %q not supported", descr)
	}
	if descr[0] == '<' || descr[0] == '=' || descr[0] == '|' {
		descr = descr[1:]
	}
	switch descr {
	case "f8", "d":
		return Float64, nil
	case "f4", "f":
		return Float32, nil
	case "f2", "e":
		return Float16, nil
	case "u4", "I":
		return Uint32, nil
	case "u1", "B":
		return Uint8, nil
	case "b1", "?":
		return Bool, nil
	default:
		return 0, errors.Errorf("npy: unrecognized descr %q", descr)
	}
}

// decodeElem reads one element starting at b and widens it to float64.
func (d DType) decodeElem(b []byte) float64 {
	switch d {
	case Float64:
		bits := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
			uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
		return math.Float64frombits(bits)
	case Float32:
		bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		return float64(math.Float32frombits(bits))
	case Float16:
		return float16ToFloat64(uint16(b[0]) | uint16(b[1])<<8)
	case Uint32:
		return float64(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
	case Uint8, Bool:
		return float64(b[0])
	default:
		panic("invalid dtype")
	}
}

func float16ToFloat64(bits uint16) float64 {
	sign := 1.0
	if bits&0x8000 != 0 {
		sign = -1.0
	}
	exp := int(bits>>10) & 0x1f
	frac := int(bits & 0x3ff)
	switch exp {
	case 0:
		return sign * math.Ldexp(float64(frac), -24)
	case 0x1f:
		if frac != 0 {
			return math.NaN()
		}
		return sign * math.Inf(1)
	default:
		return sign * math.Ldexp(float64(0x400|frac), exp-25)
	}
}
