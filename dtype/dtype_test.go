package dtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementTypeSize(t *testing.T) {
	tests := []struct {
		kind ElementType
		size int
	}{
		{Int8, 1},
		{Uint8, 1},
		{Int16, 2},
		{Uint16, 2},
		{Int32, 4},
		{Uint32, 4},
		{Int64, 8},
		{Uint64, 8},
		{Float32, 4},
		{Float64, 8},
		{Complex64, 8},
		{Complex128, 16},
		{Complex256, 32},
		{Unknown, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.size, tt.kind.Size(), tt.kind.String())
	}
}

func TestByName(t *testing.T) {
	for _, kind := range []ElementType{Int8, Uint64, Float32, Complex128} {
		got, ok := ByName(kind.String())
		require.True(t, ok)
		assert.Equal(t, kind, got)
	}
	_, ok := ByName("float16")
	assert.False(t, ok)
}

func TestNewValidation(t *testing.T) {
	_, err := New(Float64, []int{2, 3, 4, 5, 6})
	var de *DimensionError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 5, de.Rank)

	_, err = New(Float64, nil)
	require.ErrorAs(t, err, &de)

	_, err = New(Float64, []int{2, 0})
	require.Error(t, err)

	ti, err := New(Float64, []int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, ti.Rank())
	assert.Equal(t, 6, ti.ElementCount())
}

func TestByteSize(t *testing.T) {
	ti := MustNew(Complex128, 4)
	n, err := ti.ByteSize()
	require.NoError(t, err)
	assert.Equal(t, 64, n)

	_, err = Typeinfo{Dtype: Unknown, Shape: []int{2}}.ByteSize()
	var te *TypeError
	require.ErrorAs(t, err, &te)
}

func TestIsCompatible(t *testing.T) {
	a := MustNew(Float32, 2, 3)
	assert.True(t, a.IsCompatible(MustNew(Float32, 2, 3)))
	assert.False(t, a.IsCompatible(MustNew(Float64, 2, 3)))
	assert.False(t, a.IsCompatible(MustNew(Float32, 3, 2)))
	assert.False(t, a.IsCompatible(MustNew(Float32, 2, 3, 1)))
}

func TestCloneIsDeep(t *testing.T) {
	a := MustNew(Float32, 2, 3)
	b := a.Clone()
	b.Shape[0] = 9
	assert.Equal(t, 2, a.Shape[0])
}

func TestString(t *testing.T) {
	assert.Equal(t, "float64[2x3]", MustNew(Float64, 2, 3).String())
	assert.Equal(t, "complex128[4]", MustNew(Complex128, 4).String())
}
