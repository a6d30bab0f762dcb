package arrio

import (
	"encoding/binary"
	"math"

	"github.com/arrio/arrio/buffer"
	"github.com/arrio/arrio/dtype"
)

// castBuffer converts src element-wise into a fresh buffer of the target
// kind, keeping the shape. Conversions route through float64 (or complex128
// when either side is complex), which is lossless for every supported kind
// except the 64-bit integers at extreme magnitudes.
func castBuffer(src *buffer.Buffer, kind dtype.ElementType) (*buffer.Buffer, error) {
	info := src.Type()
	if kind == dtype.Unknown || kind.Size() == 0 {
		return nil, &TypeError{Got: kind, Expected: dtype.Float64}
	}
	if kind == info.Dtype {
		return src.Clone(), nil
	}
	outInfo, err := dtype.New(kind, info.Shape)
	if err != nil {
		return nil, err
	}
	out, err := buffer.New(outInfo)
	if err != nil {
		return nil, err
	}
	n := info.ElementCount()
	in, ob := src.Bytes(), out.Bytes()
	isrc, idst := info.Dtype.Size(), kind.Size()
	for i := 0; i < n; i++ {
		v, err := readElement(in[i*isrc:], info.Dtype)
		if err != nil {
			return nil, err
		}
		if err := writeElement(ob[i*idst:], kind, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// readElement decodes one element as a complex128 intermediate. Real kinds
// carry their value in the real part.
func readElement(b []byte, kind dtype.ElementType) (complex128, error) {
	switch kind {
	case dtype.Int8:
		return complex(float64(int8(b[0])), 0), nil
	case dtype.Int16:
		return complex(float64(int16(binary.LittleEndian.Uint16(b))), 0), nil
	case dtype.Int32:
		return complex(float64(int32(binary.LittleEndian.Uint32(b))), 0), nil
	case dtype.Int64:
		return complex(float64(int64(binary.LittleEndian.Uint64(b))), 0), nil
	case dtype.Uint8:
		return complex(float64(b[0]), 0), nil
	case dtype.Uint16:
		return complex(float64(binary.LittleEndian.Uint16(b)), 0), nil
	case dtype.Uint32:
		return complex(float64(binary.LittleEndian.Uint32(b)), 0), nil
	case dtype.Uint64:
		return complex(float64(binary.LittleEndian.Uint64(b)), 0), nil
	case dtype.Float32:
		return complex(float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), 0), nil
	case dtype.Float64:
		return complex(math.Float64frombits(binary.LittleEndian.Uint64(b)), 0), nil
	case dtype.Complex64:
		re := math.Float32frombits(binary.LittleEndian.Uint32(b))
		im := math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
		return complex(float64(re), float64(im)), nil
	case dtype.Complex128:
		re := math.Float64frombits(binary.LittleEndian.Uint64(b))
		im := math.Float64frombits(binary.LittleEndian.Uint64(b[8:]))
		return complex(re, im), nil
	case dtype.Complex256:
		// 128-bit float halves; only the leading float64 of each half is
		// representable here.
		return 0, &TypeError{Got: kind, Expected: dtype.Complex128}
	default:
		return 0, &TypeError{Got: kind, Expected: dtype.Float64}
	}
}

// writeElement encodes one complex128 intermediate into the target kind.
// Complex→real keeps the real part; real→complex zero-fills the imaginary.
func writeElement(b []byte, kind dtype.ElementType, v complex128) error {
	re, im := real(v), imag(v)
	switch kind {
	case dtype.Int8:
		b[0] = byte(int8(re))
	case dtype.Int16:
		binary.LittleEndian.PutUint16(b, uint16(int16(re)))
	case dtype.Int32:
		binary.LittleEndian.PutUint32(b, uint32(int32(re)))
	case dtype.Int64:
		binary.LittleEndian.PutUint64(b, uint64(int64(re)))
	case dtype.Uint8:
		b[0] = byte(uint8(re))
	case dtype.Uint16:
		binary.LittleEndian.PutUint16(b, uint16(re))
	case dtype.Uint32:
		binary.LittleEndian.PutUint32(b, uint32(re))
	case dtype.Uint64:
		binary.LittleEndian.PutUint64(b, uint64(re))
	case dtype.Float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(re)))
	case dtype.Float64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(re))
	case dtype.Complex64:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(re)))
		binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(im)))
	case dtype.Complex128:
		binary.LittleEndian.PutUint64(b, math.Float64bits(re))
		binary.LittleEndian.PutUint64(b[8:], math.Float64bits(im))
	default:
		return &TypeError{Got: kind, Expected: dtype.Complex128}
	}
	return nil
}
