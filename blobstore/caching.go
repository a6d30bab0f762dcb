package blobstore

import (
	"context"
	"os"

	"golang.org/x/sync/singleflight"
)

// CachingStore wraps a BlobStore with a fetch-through cache backed by a
// LocalStore. The first Open of a blob downloads it into the cache
// directory; later Opens are served from the mmap-backed local copy.
// Concurrent first Opens of the same blob are collapsed into one download.
//
// Array files are immutable in practice, so cached copies are only
// invalidated by Put or Delete through this store.
type CachingStore struct {
	inner BlobStore
	local *LocalStore
	group singleflight.Group
}

// NewCachingStore creates a CachingStore caching into cacheDir.
func NewCachingStore(inner BlobStore, cacheDir string) (*CachingStore, error) {
	local, err := NewLocalStore(cacheDir)
	if err != nil {
		return nil, err
	}
	return &CachingStore{inner: inner, local: local}, nil
}

// Open serves the blob from the local cache, fetching it from the inner
// store on a miss.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if b, err := s.local.Open(ctx, name); err == nil {
		return b, nil
	}
	_, err, _ := s.group.Do(name, func() (any, error) {
		return nil, s.fill(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	return s.local.Open(ctx, name)
}

func (s *CachingStore) fill(ctx context.Context, name string) error {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return err
	}
	defer b.Close()

	data, err := ReadAll(ctx, b)
	if err != nil {
		return err
	}
	return s.local.Put(ctx, name, data)
}

// Create passes through to the inner store; the stale cache entry, if any,
// is dropped first.
func (s *CachingStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	if err := s.local.Delete(ctx, name); err != nil {
		return nil, err
	}
	return s.inner.Create(ctx, name)
}

// Put writes through to the inner store and invalidates the cached copy.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.local.Delete(ctx, name); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

// Delete removes the blob from the inner store and the cache.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	if err := s.local.Delete(ctx, name); err != nil {
		return err
	}
	return s.inner.Delete(ctx, name)
}

// List delegates to the inner store; the cache never holds blobs the inner
// store does not.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// CachePath returns the local path the named blob is cached at, or "" if
// it is not cached.
func (s *CachingStore) CachePath(name string) string {
	path := s.local.Path(name)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
