package blobstore

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// ThrottledStore wraps a BlobStore with a byte-rate limit shared across all
// reads and writes. Use it to keep bulk array transfers from saturating the
// link serving interactive traffic.
type ThrottledStore struct {
	inner   BlobStore
	limiter *rate.Limiter
}

// NewThrottledStore creates a ThrottledStore limited to bytesPerSec. A
// non-positive limit disables throttling.
func NewThrottledStore(inner BlobStore, bytesPerSec int64) *ThrottledStore {
	var limiter *rate.Limiter
	if bytesPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(bytesPerSec), int(bytesPerSec))
	}
	return &ThrottledStore{inner: inner, limiter: limiter}
}

func (s *ThrottledStore) wait(ctx context.Context, n int) error {
	if s.limiter == nil || n <= 0 {
		return nil
	}
	burst := s.limiter.Burst()
	// WaitN rejects requests larger than the burst; split them.
	for n > burst {
		if err := s.limiter.WaitN(ctx, burst); err != nil {
			return err
		}
		n -= burst
	}
	return s.limiter.WaitN(ctx, n)
}

// Open opens a blob whose reads are charged against the rate limit.
func (s *ThrottledStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &throttledBlob{inner: b, store: s}, nil
}

// Create opens a writer whose writes are charged against the rate limit.
func (s *ThrottledStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	w, err := s.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &throttledWriter{inner: w, store: s, ctx: ctx}, nil
}

// Put writes a blob after charging its full size against the rate limit.
func (s *ThrottledStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.wait(ctx, len(data)); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

// Delete removes a blob; deletes are not throttled.
func (s *ThrottledStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

// List delegates to the inner store; listings are not throttled.
func (s *ThrottledStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

type throttledBlob struct {
	inner Blob
	store *ThrottledStore
}

func (b *throttledBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := b.store.wait(ctx, len(p)); err != nil {
		return 0, err
	}
	return b.inner.ReadAt(ctx, p, off)
}

func (b *throttledBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if err := b.store.wait(ctx, int(length)); err != nil {
		return nil, err
	}
	return b.inner.ReadRange(ctx, off, length)
}

func (b *throttledBlob) Close() error { return b.inner.Close() }

func (b *throttledBlob) Size() int64 { return b.inner.Size() }

type throttledWriter struct {
	inner WritableBlob
	store *ThrottledStore
	ctx   context.Context
}

func (w *throttledWriter) Write(p []byte) (int, error) {
	if err := w.store.wait(w.ctx, len(p)); err != nil {
		return 0, err
	}
	return w.inner.Write(p)
}

func (w *throttledWriter) Sync() error { return w.inner.Sync() }

func (w *throttledWriter) Close() error { return w.inner.Close() }
