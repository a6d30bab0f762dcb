package arrio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrio/arrio/dtype"
)

func TestFromDataInline(t *testing.T) {
	a, err := FromFloat64s([]int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	assert.True(t, a.IsLoaded())
	assert.Empty(t, a.Filename())
	assert.Empty(t, a.CodecName())
	assert.Equal(t, dtype.Float64, a.Type().Dtype)
	assert.Equal(t, []int{2, 3}, a.Type().Shape)

	got, err := a.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, got)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	// Save an inline (2,3) float64 array to a MAT file, reopen it from
	// scratch, and check that load restores the exact values and state.
	path := filepath.Join(t.TempDir(), "m.mat")

	a, err := FromFloat64s([]int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	require.NoError(t, a.Save(path))

	assert.False(t, a.IsLoaded())
	assert.Equal(t, path, a.Filename())
	assert.Equal(t, "matlab.array.binary", a.CodecName())

	b, err := FromFile(path)
	require.NoError(t, err)
	assert.False(t, b.IsLoaded())
	assert.Equal(t, dtype.Float64, b.Type().Dtype)
	assert.Equal(t, []int{2, 3}, b.Type().Shape)

	require.NoError(t, b.Load())
	assert.True(t, b.IsLoaded())
	assert.Empty(t, b.Filename())
	assert.Empty(t, b.CodecName())

	got, err := b.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, got)
}

func TestGetIsStatePreserving(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.mat")

	a, err := FromFloat64s([]int{4}, []float64{9, 8, 7, 6})
	require.NoError(t, err)
	require.NoError(t, a.Save(path))

	b, err := FromFile(path)
	require.NoError(t, err)

	first, err := b.Get()
	require.NoError(t, err)
	assert.False(t, b.IsLoaded(), "Get must not transition to inline")

	second, err := b.Get()
	require.NoError(t, err)
	assert.False(t, b.IsLoaded())
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestLoadIsIdempotent(t *testing.T) {
	a, err := FromFloat32s([]int{3}, []float32{1, 2, 3})
	require.NoError(t, err)

	require.NoError(t, a.Load())
	require.NoError(t, a.Load())
	assert.True(t, a.IsLoaded())
}

func TestFromFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.xyz")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0o600))

	_, err := FromFile(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.mat"))
	require.Error(t, err)

	var fnr *FileNotReadableError
	assert.ErrorAs(t, err, &fnr)
}

func TestFailedSaveKeepsState(t *testing.T) {
	a, err := FromFloat64s([]int{2}, []float64{1, 2})
	require.NoError(t, err)

	err = a.Save(filepath.Join(t.TempDir(), "m.xyz"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.True(t, a.IsLoaded(), "failed save must not change state")
	assert.Empty(t, a.Filename())
}

func TestSetReplacesExternalAssociation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.mat")

	a, err := FromFloat64s([]int{2}, []float64{5, 6})
	require.NoError(t, err)
	require.NoError(t, a.Save(path))
	require.False(t, a.IsLoaded())

	info := dtype.MustNew(dtype.Int32, 3)
	require.NoError(t, a.Set(info, []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}))

	assert.True(t, a.IsLoaded())
	assert.Empty(t, a.Filename())
	got, err := a.Int32s()
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, got)
}

func TestCastRealToComplexAndBack(t *testing.T) {
	a, err := FromFloat64s([]int{3}, []float64{1.5, -2, 4})
	require.NoError(t, err)

	cplx, err := a.Cast(dtype.Complex128)
	require.NoError(t, err)
	assert.Equal(t, dtype.Complex128, cplx.Type().Dtype)

	b, err := FromData(cplx.Type(), cplx.Bytes())
	require.NoError(t, err)
	vals, err := b.Complex128s()
	require.NoError(t, err)
	assert.Equal(t, []complex128{1.5, -2, 4}, vals)

	back, err := b.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2, 4}, back)

	// Cast never mutates the array itself.
	assert.Equal(t, dtype.Float64, a.Type().Dtype)
	assert.True(t, a.IsLoaded())
}

func TestCastNarrowing(t *testing.T) {
	a, err := FromFloat64s([]int{3}, []float64{1.9, -2.2, 200})
	require.NoError(t, err)

	got, err := a.Int32s()
	require.NoError(t, err)
	assert.Equal(t, []int32{1, -2, 200}, got)
}

func TestCloneSemantics(t *testing.T) {
	t.Run("inline clone is deep", func(t *testing.T) {
		a, err := FromFloat64s([]int{2}, []float64{1, 2})
		require.NoError(t, err)

		c := a.Clone()
		require.NoError(t, c.Set(dtype.MustNew(dtype.Float64, 2), make([]byte, 16)))

		orig, err := a.Float64s()
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2}, orig)
	})

	t.Run("external clone shares the reference", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "m.mat")
		a, err := FromFloat64s([]int{2}, []float64{1, 2})
		require.NoError(t, err)
		require.NoError(t, a.Save(path))

		c := a.Clone()
		assert.Equal(t, path, c.Filename())
		assert.Equal(t, a.CodecName(), c.CodecName())
		assert.False(t, c.IsLoaded())
	})
}

func TestLoadOnEmptyArray(t *testing.T) {
	var a Array
	assert.ErrorIs(t, a.Load(), ErrNoData)

	_, err := a.Get()
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSaveAcrossFormats(t *testing.T) {
	dir := t.TempDir()
	matPath := filepath.Join(dir, "m.mat")
	tsrPath := filepath.Join(dir, "m.tsr")

	a, err := FromComplex128s([]int{2, 2}, []complex128{1 + 2i, 3 + 4i, 5 + 6i, 7 + 8i})
	require.NoError(t, err)
	require.NoError(t, a.Save(matPath))

	// Copy-through: external source, different destination format.
	require.NoError(t, a.Save(tsrPath))
	assert.Equal(t, tsrPath, a.Filename())

	b, err := FromFile(tsrPath)
	require.NoError(t, err)
	got, err := b.Complex128s()
	require.NoError(t, err)
	assert.Equal(t, []complex128{1 + 2i, 3 + 4i, 5 + 6i, 7 + 8i}, got)
}
