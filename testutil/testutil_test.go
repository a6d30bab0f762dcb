package testutil

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrio/arrio/dtype"
)

func TestFillSequential(t *testing.T) {
	buf := FillSequential(t, dtype.MustNew(dtype.Float64, 2, 2))
	data := buf.Bytes()
	require.Len(t, data, 32)

	for i := 0; i < 4; i++ {
		got := math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
		assert.Equal(t, float64(i+1), got)
	}
}

func TestFillSequentialComplex(t *testing.T) {
	buf := FillSequential(t, dtype.MustNew(dtype.Complex128, 3))
	data := buf.Bytes()

	re := math.Float64frombits(binary.LittleEndian.Uint64(data[16:]))
	im := math.Float64frombits(binary.LittleEndian.Uint64(data[24:]))
	assert.Equal(t, 2.0, re)
	assert.Equal(t, -2.0, im)
}

func TestFillRandomDeterministic(t *testing.T) {
	info := dtype.MustNew(dtype.Int16, 8)
	a := FillRandom(t, info, 42)
	b := FillRandom(t, info, 42)
	assert.Equal(t, a.Bytes(), b.Bytes())
}
