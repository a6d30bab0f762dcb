package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// errors.Is(err, ErrNotFound). The default maps to os.ErrNotExist.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction over the places serialized array files live:
// a local directory, an in-memory map, or an object store. Blobs are whole
// container files (.mat, .tsr, .bindata) and are treated as immutable once
// written. Implementations must be safe for concurrent use.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create opens a blob for streaming writes. The blob becomes visible
	// atomically when the returned writer is closed.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Put writes a blob in one atomic call.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the names of all blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a stored array file.
type Blob interface {
	io.Closer
	// ReadAt reads len(p) bytes at the given offset.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// Size returns the size of the blob in bytes.
	Size() int64
	// ReadRange streams a byte range. Object-store implementations map
	// this to a ranged GET so partial reads avoid a full download.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
}

// WritableBlob is a streaming write handle returned by Create.
type WritableBlob interface {
	io.WriteCloser
	// Sync flushes buffered data to durable storage where the backend
	// supports it.
	Sync() error
}

// Mappable is an optional interface for Blobs backed by a memory mapping.
type Mappable interface {
	// Bytes returns the underlying byte slice, valid until Close.
	Bytes() ([]byte, error)
}

// ReadAll drains a blob into memory.
func ReadAll(ctx context.Context, b Blob) ([]byte, error) {
	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err == nil {
			out := make([]byte, len(data))
			copy(out, data)
			return out, nil
		}
	}
	rc, err := b.ReadRange(ctx, 0, b.Size())
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
