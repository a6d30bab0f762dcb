package tsr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrio/arrio/codec"
	"github.com/arrio/arrio/dtype"
	"github.com/arrio/arrio/testutil"
)

func TestRoundTripAllCompressions(t *testing.T) {
	for _, comp := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		c := New(WithCompression(comp))
		b := testutil.FillRandom(t, dtype.MustNew(dtype.Float64, 4, 5, 2), 3)
		path := filepath.Join(t.TempDir(), "a.tsr")

		require.NoError(t, c.Save(path, b))

		info, err := c.Peek(path)
		require.NoError(t, err)
		assert.True(t, info.IsCompatible(b.Type()))

		got, err := c.Load(path)
		require.NoError(t, err)
		assert.Equal(t, b.Bytes(), got.Bytes(), "compression %d", comp)
	}
}

func TestComplex256Representable(t *testing.T) {
	// The widest complex kind has no MAT mapping but archives fine here.
	c := New()
	b := testutil.FillSequential(t, dtype.MustNew(dtype.Complex256, 3))
	path := filepath.Join(t.TempDir(), "wide.tsr")

	require.NoError(t, c.Save(path, b))
	got, err := c.Load(path)
	require.NoError(t, err)
	assert.Equal(t, dtype.Complex256, got.Type().Dtype)
	assert.Equal(t, b.Bytes(), got.Bytes())
}

func TestNamedRecords(t *testing.T) {
	c := New(WithCompression(CompressionZSTD))
	path := filepath.Join(t.TempDir(), "multi.tsr")

	first := testutil.FillRandom(t, dtype.MustNew(dtype.Int32, 4), 4)
	second := testutil.FillSequential(t, dtype.MustNew(dtype.Float32, 2, 2))
	require.NoError(t, c.WriteNamed(path, "run/0/values", first))
	require.NoError(t, c.WriteNamed(path, "run/1/values", second))

	names, err := c.ListNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"run/0/values", "run/1/values"}, names)

	got, err := c.ReadNamed(path, "run/1/values")
	require.NoError(t, err)
	assert.Equal(t, second.Bytes(), got.Bytes())

	_, err = c.ReadNamed(path, "run/2/values")
	require.ErrorIs(t, err, codec.ErrUninitialized)

	_, err = c.ReadNamed(path, "")
	require.ErrorIs(t, err, codec.ErrUninitialized)
}

func TestAppendKeepsArchiveCompression(t *testing.T) {
	// The first writer fixes the compression; later appends follow it.
	lz4Codec := New(WithCompression(CompressionLZ4))
	plainCodec := New()
	path := filepath.Join(t.TempDir(), "mixed.tsr")

	b := testutil.FillSequential(t, dtype.MustNew(dtype.Float64, 8, 8))
	require.NoError(t, lz4Codec.WriteNamed(path, "a", b))
	require.NoError(t, plainCodec.WriteNamed(path, "b", b))

	got, err := plainCodec.ReadNamed(path, "b")
	require.NoError(t, err)
	assert.Equal(t, b.Bytes(), got.Bytes())
}

func TestPeekFailures(t *testing.T) {
	dir := t.TempDir()

	var fnr *codec.FileNotReadableError
	_, err := New().Peek(filepath.Join(dir, "missing.tsr"))
	require.ErrorAs(t, err, &fnr)

	junk := filepath.Join(dir, "junk.tsr")
	require.NoError(t, writeJunk(junk))
	_, err = New().Peek(junk)
	require.ErrorIs(t, err, ErrNotArchive)
}

func writeJunk(path string) error {
	return os.WriteFile(path, []byte("not an archive at all"), 0o644)
}

func TestRegisteredByDefault(t *testing.T) {
	c, err := codec.Default().ByExtension("x.tsr")
	require.NoError(t, err)
	assert.Equal(t, "tensor.archive", c.Name())
}
