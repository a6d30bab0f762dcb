package blobstore

import (
	"context"
	"io"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Open(ctx, "missing.mat")
	assert.ErrorIs(t, err, ErrNotFound)

	payload := []byte("array container bytes")
	require.NoError(t, store.Put(ctx, "a/one.mat", payload))
	require.NoError(t, store.Put(ctx, "a/two.mat", []byte("x")))
	require.NoError(t, store.Put(ctx, "b/three.tsr", []byte("y")))

	b, err := store.Open(ctx, "a/one.mat")
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), b.Size())

	got := make([]byte, 5)
	n, err := b.ReadAt(ctx, got, 6)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("conta"), got)

	rc, err := b.ReadRange(ctx, 0, 5)
	require.NoError(t, err)
	head, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, []byte("array"), head)
	require.NoError(t, b.Close())

	names, err := store.List(ctx, "a/")
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"a/one.mat", "a/two.mat"}, names)

	w, err := store.Create(ctx, "c/four.bindata")
	require.NoError(t, err)
	_, err = w.Write([]byte("stream"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	b, err = store.Open(ctx, "c/four.bindata")
	require.NoError(t, err)
	data, err := ReadAll(ctx, b)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	assert.Equal(t, []byte("stream"), data)

	require.NoError(t, store.Delete(ctx, "a/one.mat"))
	require.NoError(t, store.Delete(ctx, "a/one.mat"), "double delete must not fail")
	_, err = store.Open(ctx, "a/one.mat")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	testStore(t, store)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestThrottledStore(t *testing.T) {
	// A generous limit keeps the conformance run instant while still
	// exercising the limiter path.
	testStore(t, NewThrottledStore(NewMemoryStore(), 1<<30))
}

func TestThrottledStoreUnlimited(t *testing.T) {
	testStore(t, NewThrottledStore(NewMemoryStore(), 0))
}

func TestCachingStoreConformance(t *testing.T) {
	store, err := NewCachingStore(NewMemoryStore(), t.TempDir())
	require.NoError(t, err)
	testStore(t, store)
}

func TestCachingStore(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	store, err := NewCachingStore(inner, t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "v1/data.mat", []byte("hello")))
	assert.Empty(t, store.CachePath("v1/data.mat"))

	b, err := store.Open(ctx, "v1/data.mat")
	require.NoError(t, err)
	data, err := ReadAll(ctx, b)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	assert.Equal(t, []byte("hello"), data)
	assert.NotEmpty(t, store.CachePath("v1/data.mat"))

	// Second open is served locally even if the inner copy disappears.
	require.NoError(t, inner.Delete(ctx, "v1/data.mat"))
	b, err = store.Open(ctx, "v1/data.mat")
	require.NoError(t, err)
	data, err = ReadAll(ctx, b)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	assert.Equal(t, []byte("hello"), data)

	// Put invalidates the cached copy.
	require.NoError(t, store.Put(ctx, "v1/data.mat", []byte("fresh")))
	assert.Empty(t, store.CachePath("v1/data.mat"))
	b, err = store.Open(ctx, "v1/data.mat")
	require.NoError(t, err)
	data, err = ReadAll(ctx, b)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	assert.Equal(t, []byte("fresh"), data)
}
