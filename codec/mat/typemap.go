package mat

import (
	"github.com/arrio/arrio/dtype"
	"github.com/arrio/arrio/matfile"
)

// classFor maps an element kind to the MAT array class it is stored under.
// Complex kinds share the class of their real counterpart; the complex fact
// travels as a separate flag on the variable. Complex256 has no MAT
// representation and fails with a TypeError, as does Unknown.
func classFor(kind dtype.ElementType) (uint32, error) {
	switch kind {
	case dtype.Int8:
		return matfile.ClassInt8, nil
	case dtype.Int16:
		return matfile.ClassInt16, nil
	case dtype.Int32:
		return matfile.ClassInt32, nil
	case dtype.Int64:
		return matfile.ClassInt64, nil
	case dtype.Uint8:
		return matfile.ClassUint8, nil
	case dtype.Uint16:
		return matfile.ClassUint16, nil
	case dtype.Uint32:
		return matfile.ClassUint32, nil
	case dtype.Uint64:
		return matfile.ClassUint64, nil
	case dtype.Float32, dtype.Complex64:
		return matfile.ClassSingle, nil
	case dtype.Float64, dtype.Complex128:
		return matfile.ClassDouble, nil
	default:
		return 0, &dtype.TypeError{Got: kind, Expected: dtype.Float32}
	}
}

// elementTypeFor is the inverse mapping: MAT array class plus complex flag
// back to an element kind. Unmappable combinations yield Unknown; the caller
// decides whether that is an error.
func elementTypeFor(class uint32, isComplex bool) dtype.ElementType {
	var kind dtype.ElementType
	switch class {
	case matfile.ClassInt8:
		kind = dtype.Int8
	case matfile.ClassInt16:
		kind = dtype.Int16
	case matfile.ClassInt32:
		kind = dtype.Int32
	case matfile.ClassInt64:
		kind = dtype.Int64
	case matfile.ClassUint8:
		kind = dtype.Uint8
	case matfile.ClassUint16:
		kind = dtype.Uint16
	case matfile.ClassUint32:
		kind = dtype.Uint32
	case matfile.ClassUint64:
		kind = dtype.Uint64
	case matfile.ClassSingle:
		kind = dtype.Float32
	case matfile.ClassDouble:
		kind = dtype.Float64
	default:
		return dtype.Unknown
	}

	// complex is signalled separately and only floats can carry it
	if isComplex {
		switch kind {
		case dtype.Float32:
			return dtype.Complex64
		case dtype.Float64:
			return dtype.Complex128
		default:
			return dtype.Unknown
		}
	}
	return kind
}
