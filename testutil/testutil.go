package testutil

import (
	"encoding/binary"
	"math"
	"math/rand"
	"testing"

	"github.com/arrio/arrio/buffer"
	"github.com/arrio/arrio/dtype"
)

// FillSequential builds a buffer where element i holds the value i+1.
// Complex kinds get -(i+1) in the imaginary part, so plane split bugs in a
// codec show up as value mismatches rather than silent symmetry.
func FillSequential(t *testing.T, info dtype.Typeinfo) *buffer.Buffer {
	t.Helper()
	return fill(t, info, func(i int) (float64, float64) {
		return float64(i + 1), -float64(i + 1)
	})
}

// FillRandom builds a buffer with deterministic pseudo-random values.
// Integer kinds stay within [0, 100) so narrow types never wrap.
func FillRandom(t *testing.T, info dtype.Typeinfo, seed int64) *buffer.Buffer {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	if info.Dtype.IsInteger() {
		return fill(t, info, func(int) (float64, float64) {
			return float64(rng.Intn(100)), 0
		})
	}
	return fill(t, info, func(int) (float64, float64) {
		return rng.NormFloat64(), rng.NormFloat64()
	})
}

func fill(t *testing.T, info dtype.Typeinfo, gen func(i int) (re, im float64)) *buffer.Buffer {
	t.Helper()
	buf, err := buffer.New(info)
	if err != nil {
		t.Fatalf("allocate fixture buffer: %v", err)
	}
	data := buf.Bytes()
	size := info.Dtype.Size()
	for i := 0; i < info.ElementCount(); i++ {
		re, im := gen(i)
		putElement(t, data[i*size:], info.Dtype, re, im)
	}
	return buf
}

func putElement(t *testing.T, b []byte, kind dtype.ElementType, re, im float64) {
	t.Helper()
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
	case dtype.Complex256:
		// Quad-precision halves: encode each as a float64 in the leading
		// 8 bytes and zero the trailing 8, which round-trips through
		// codecs that treat the payload as opaque bytes.
		binary.LittleEndian.PutUint64(b, math.Float64bits(re))
		binary.LittleEndian.PutUint64(b[16:], math.Float64bits(im))
	default:
		t.Fatalf("no fixture encoding for element kind %s", kind)
	}
}
