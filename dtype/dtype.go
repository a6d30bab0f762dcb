// Package dtype describes the element type and shape of a typed array.
//
// A Typeinfo is the authoritative metadata for an array buffer: which
// element kind it holds, its rank and its extents. Every persistence codec
// in this module reads and writes buffers through a Typeinfo.
package dtype

// MaxRank is the maximum number of dimensions an array may have.
// This is a platform limit shared by every codec, not a per-format choice.
const MaxRank = 4

// ElementType identifies the scalar kind stored in an array buffer.
type ElementType uint8

const (
	// Unknown marks an unresolved or unsupported element kind. It is only
	// valid transiently (e.g. while mapping a foreign type code); a buffer
	// holding data never carries it.
	Unknown ElementType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Complex64
	Complex128
	Complex256
)

var elementSizes = map[ElementType]int{
	Int8:       1,
	Int16:      2,
	Int32:      4,
	Int64:      8,
	Uint8:      1,
	Uint16:     2,
	Uint32:     4,
	Uint64:     8,
	Float32:    4,
	Float64:    8,
	Complex64:  8,
	Complex128: 16,
	Complex256: 32,
}

var elementNames = map[ElementType]string{
	Unknown:    "unknown",
	Int8:       "int8",
	Int16:      "int16",
	Int32:      "int32",
	Int64:      "int64",
	Uint8:      "uint8",
	Uint16:     "uint16",
	Uint32:     "uint32",
	Uint64:     "uint64",
	Float32:    "float32",
	Float64:    "float64",
	Complex64:  "complex64",
	Complex128: "complex128",
	Complex256: "complex256",
}

// ByName returns the element type with the given canonical name.
func ByName(name string) (ElementType, bool) {
	for et, n := range elementNames {
		if n == name {
			return et, true
		}
	}
	return Unknown, false
}

// Size returns the number of bytes one element occupies, or 0 for Unknown.
// Complex kinds are twice the size of their real counterpart.
func (e ElementType) Size() int {
	return elementSizes[e]
}

// String returns the canonical lowercase name of the element type.
func (e ElementType) String() string {
	if n, ok := elementNames[e]; ok {
		return n
	}
	return "invalid"
}

// IsComplex reports whether the element type stores interleaved
// real/imaginary halves.
func (e ElementType) IsComplex() bool {
	return e == Complex64 || e == Complex128 || e == Complex256
}

// IsInteger reports whether the element type is a signed or unsigned integer.
func (e ElementType) IsInteger() bool {
	switch e {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}
