package mat

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrio/arrio/codec"
	"github.com/arrio/arrio/dtype"
	"github.com/arrio/arrio/matfile"
	"github.com/arrio/arrio/testutil"
)

// writeSet builds a container with variables array_3, array_1, other,
// array_1 (duplicate), in that order.
func writeSet(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "set.mat")

	w, err := matfile.Create(path)
	require.NoError(t, err)
	defer w.Close()

	write := func(name string, vals ...byte) {
		plane := make([]byte, 8*len(vals))
		for i, v := range vals {
			plane[8*i] = v
		}
		require.NoError(t, w.Write(matfile.NewVariable(name, matfile.ClassDouble, []int{len(vals)}, false, plane, nil)))
	}
	write("array_3", 1, 2)
	write("array_1", 3, 4)
	write("other", 5, 6)
	write("array_1", 7, 8)
	return path
}

func TestListVariables(t *testing.T) {
	path := writeSet(t)
	entries, err := New().ListVariables(path)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Contains(t, entries, 1)
	assert.Contains(t, entries, 3)
	assert.Equal(t, "array_1", entries[1].Name)

	// every entry carries the anchor's cached descriptor
	for _, e := range entries {
		assert.True(t, e.Info.IsCompatible(dtype.MustNew(dtype.Float64, 2)))
	}
}

func TestListVariablesNoneMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nomatch.mat")
	w, err := matfile.Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(matfile.NewVariable("other", matfile.ClassUint8, []int{1}, false, []byte{1}, nil)))
	require.NoError(t, w.Close())

	_, err = New().ListVariables(path)
	require.ErrorIs(t, err, codec.ErrUninitialized)

	_, err = New().PeekSet(path)
	require.ErrorIs(t, err, codec.ErrUninitialized)
}

func TestListVariablesUnmappableAnchor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badanchor.mat")
	w, err := matfile.Create(path)
	require.NoError(t, err)
	plane := []byte{1, 0, 0, 0}
	require.NoError(t, w.Write(matfile.NewVariable("array_0", matfile.ClassInt32, []int{1}, true, plane, plane)))
	require.NoError(t, w.Close())

	var te *dtype.TypeError
	_, err = New().ListVariables(path)
	require.ErrorAs(t, err, &te)
}

func TestPeekSetSkipsForeignNames(t *testing.T) {
	path := writeSet(t)
	info, err := New().PeekSet(path)
	require.NoError(t, err)
	assert.True(t, info.IsCompatible(dtype.MustNew(dtype.Float64, 2)))
}

func TestLeadingZerosOrdinal(t *testing.T) {
	c := New()
	path := filepath.Join(t.TempDir(), "zeros.mat")
	b := testutil.FillSequential(t, dtype.MustNew(dtype.Uint8, 2))
	require.NoError(t, c.WriteIndexed(path, 0, b))

	entries, err := c.ListVariables(path)
	require.NoError(t, err)
	assert.Contains(t, entries, 0)
}
