package arrio

import (
	"encoding/binary"
	"math"

	"github.com/arrio/arrio/dtype"
)

// FromFloat64s constructs an Inline float64 Array with the given shape.
// len(values) must equal the product of the shape.
func FromFloat64s(shape []int, values []float64, optFns ...Option) (*Array, error) {
	info, err := dtype.New(dtype.Float64, shape)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}
	return FromData(info, data, optFns...)
}

// FromFloat32s constructs an Inline float32 Array with the given shape.
func FromFloat32s(shape []int, values []float32, optFns ...Option) (*Array, error) {
	info, err := dtype.New(dtype.Float32, shape)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	return FromData(info, data, optFns...)
}

// FromComplex128s constructs an Inline complex128 Array with the given shape.
func FromComplex128s(shape []int, values []complex128, optFns ...Option) (*Array, error) {
	info, err := dtype.New(dtype.Complex128, shape)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 16*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(data[i*16:], math.Float64bits(real(v)))
		binary.LittleEndian.PutUint64(data[i*16+8:], math.Float64bits(imag(v)))
	}
	return FromData(info, data, optFns...)
}

// FromInt32s constructs an Inline int32 Array with the given shape.
func FromInt32s(shape []int, values []int32, optFns ...Option) (*Array, error) {
	info, err := dtype.New(dtype.Int32, shape)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], uint32(v))
	}
	return FromData(info, data, optFns...)
}

// Float64s returns the Array's values as a flat row-major float64 slice,
// casting if the stored kind differs. The Array's state is unchanged.
func (a *Array) Float64s() ([]float64, error) {
	buf, err := a.Cast(dtype.Float64)
	if err != nil {
		return nil, err
	}
	raw := buf.Bytes()
	out := make([]float64, buf.Type().ElementCount())
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return out, nil
}

// Float32s returns the Array's values as a flat row-major float32 slice,
// casting if the stored kind differs.
func (a *Array) Float32s() ([]float32, error) {
	buf, err := a.Cast(dtype.Float32)
	if err != nil {
		return nil, err
	}
	raw := buf.Bytes()
	out := make([]float32, buf.Type().ElementCount())
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// Int32s returns the Array's values as a flat row-major int32 slice,
// casting (with truncation toward zero) if the stored kind differs.
func (a *Array) Int32s() ([]int32, error) {
	buf, err := a.Cast(dtype.Int32)
	if err != nil {
		return nil, err
	}
	raw := buf.Bytes()
	out := make([]int32, buf.Type().ElementCount())
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// Complex64s returns the Array's values as a flat row-major complex64
// slice, casting if the stored kind differs.
func (a *Array) Complex64s() ([]complex64, error) {
	buf, err := a.Cast(dtype.Complex64)
	if err != nil {
		return nil, err
	}
	raw := buf.Bytes()
	out := make([]complex64, buf.Type().ElementCount())
	for i := range out {
		re := math.Float32frombits(binary.LittleEndian.Uint32(raw[i*8:]))
		im := math.Float32frombits(binary.LittleEndian.Uint32(raw[i*8+4:]))
		out[i] = complex(re, im)
	}
	return out, nil
}

// Complex128s returns the Array's values as a flat row-major complex128
// slice, casting if the stored kind differs.
func (a *Array) Complex128s() ([]complex128, error) {
	buf, err := a.Cast(dtype.Complex128)
	if err != nil {
		return nil, err
	}
	raw := buf.Bytes()
	out := make([]complex128, buf.Type().ElementCount())
	for i := range out {
		re := math.Float64frombits(binary.LittleEndian.Uint64(raw[i*16:]))
		im := math.Float64frombits(binary.LittleEndian.Uint64(raw[i*16+8:]))
		out[i] = complex(re, im)
	}
	return out, nil
}
