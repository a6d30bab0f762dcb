package arrio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/arrio/arrio/blobstore"
)

// Fetch downloads the named blob into cacheDir and opens it as an External
// Array: the file is materialized locally, then peeked through the codec
// selected by its extension. Repeated fetches of the same name are served
// from the cache directory without touching the store again.
func Fetch(ctx context.Context, store blobstore.BlobStore, name, cacheDir string, optFns ...Option) (*Array, error) {
	caching, err := blobstore.NewCachingStore(store, cacheDir)
	if err != nil {
		return nil, err
	}
	b, err := caching.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := b.Close(); err != nil {
		return nil, err
	}
	path := caching.CachePath(name)
	if path == "" {
		return nil, fmt.Errorf("blob %q was not cached", name)
	}
	return FromFile(path, optFns...)
}

// FetchAll fetches several blobs concurrently. The result slice is index-
// aligned with names; on error the first failure is returned and the
// remaining fetches are canceled.
func FetchAll(ctx context.Context, store blobstore.BlobStore, names []string, cacheDir string, optFns ...Option) ([]*Array, error) {
	arrays := make([]*Array, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			a, err := Fetch(ctx, store, name, cacheDir, optFns...)
			if err != nil {
				return fmt.Errorf("fetch %q: %w", name, err)
			}
			arrays[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return arrays, nil
}

// Publish saves the Array's current data into the store under name, going
// through the codec selected by the name's extension. The Array's state is
// unchanged; use Save for the local state transition.
func Publish(ctx context.Context, store blobstore.BlobStore, a *Array, name, scratchDir string) error {
	local, err := blobstore.NewLocalStore(scratchDir)
	if err != nil {
		return err
	}
	path := local.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	clone := a.Clone()
	if err := clone.Save(path); err != nil {
		return err
	}
	b, err := local.Open(ctx, name)
	if err != nil {
		return err
	}
	defer b.Close()
	data, err := blobstore.ReadAll(ctx, b)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}
