// Package matfile reads and writes a subset of the MATLAB level-5 MAT
// container format: numeric N-dimensional matrix variables, optionally
// zlib-compressed, little-endian.
//
// The package is the container engine behind the MAT array codec. It deals
// only in raw column-major byte planes; element-order transposition and
// element-type mapping live in the codec layer.
package matfile

import "errors"

// Common errors
var (
	ErrNotMAT     = errors.New("not a MAT-file")
	ErrBigEndian  = errors.New("big-endian MAT-files are not supported")
	ErrCorrupt    = errors.New("corrupt MAT-file element")
	ErrClosed     = errors.New("file is closed")
	ErrNotNumeric = errors.New("variable is not a numeric matrix")
)

// Data element type codes (mi* in the MAT-file reference).
const (
	TypeInt8       = 1
	TypeUint8      = 2
	TypeInt16      = 3
	TypeUint16     = 4
	TypeInt32      = 5
	TypeUint32     = 6
	TypeSingle     = 7
	TypeDouble     = 9
	TypeInt64      = 12
	TypeUint64     = 13
	TypeMatrix     = 14
	TypeCompressed = 15
	TypeUTF8       = 16
)

// Array class codes (mx*_CLASS in the MAT-file reference).
const (
	ClassDouble = 6
	ClassSingle = 7
	ClassInt8   = 8
	ClassUint8  = 9
	ClassInt16  = 10
	ClassUint16 = 11
	ClassInt32  = 12
	ClassUint32 = 13
	ClassInt64  = 14
	ClassUint64 = 15
)

// flagComplex marks a variable whose data carries separate real and
// imaginary planes.
const flagComplex = 0x0800

// typeSizes maps a data element type code to its per-element byte size.
var typeSizes = map[uint32]int{
	TypeInt8:   1,
	TypeUint8:  1,
	TypeInt16:  2,
	TypeUint16: 2,
	TypeInt32:  4,
	TypeUint32: 4,
	TypeSingle: 4,
	TypeDouble: 8,
	TypeInt64:  8,
	TypeUint64: 8,
}

// classToType maps an array class code to the data type code its planes are
// written with. This module always stores planes uncompressed at the class's
// natural width.
var classToType = map[uint32]uint32{
	ClassDouble: TypeDouble,
	ClassSingle: TypeSingle,
	ClassInt8:   TypeInt8,
	ClassUint8:  TypeUint8,
	ClassInt16:  TypeInt16,
	ClassUint16: TypeUint16,
	ClassInt32:  TypeInt32,
	ClassUint32: TypeUint32,
	ClassInt64:  TypeInt64,
	ClassUint64: TypeUint64,
}

// Variable is one numeric matrix stored in a MAT-file.
//
// Real (and Imag, when IsComplex) hold raw column-major element bytes. For a
// metadata-only read both planes are nil.
type Variable struct {
	Name      string
	Class     uint32
	Type      uint32 // data type code of the stored planes
	Dims      []int
	IsComplex bool
	Real      []byte
	Imag      []byte
}

// NewVariable assembles a variable for writing. re and im are column-major
// planes; im must be nil exactly when isComplex is false.
func NewVariable(name string, class uint32, dims []int, isComplex bool, re, im []byte) *Variable {
	return &Variable{
		Name:      name,
		Class:     class,
		Type:      classToType[class],
		Dims:      append([]int(nil), dims...),
		IsComplex: isComplex,
		Real:      re,
		Imag:      im,
	}
}

// ElementCount returns the product of the variable's extents.
func (v *Variable) ElementCount() int {
	n := 1
	for _, d := range v.Dims {
		n *= d
	}
	return n
}

func pad8(n int) int {
	if n%8 == 0 {
		return n
	}
	return n + 8 - n%8
}
