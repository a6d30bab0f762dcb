// Package blobstore provides storage abstraction for serialized array files.
//
// BlobStore is the interface for reading and writing whole container files
// by name. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with mmap-backed reads and atomic writes
//   - MemoryStore: in-memory map, mainly for tests
//   - CachingStore: wraps any store with a fetch-through local file cache
//   - ThrottledStore: wraps any store with a byte-rate limit
//   - s3.Store: Amazon S3 with range reads and managed uploads
//   - minio.Store: any S3-compatible endpoint via the MinIO client
//
// # Custom Implementations
//
// Implement the BlobStore interface to support other backends. Cloud
// backends should map ReadRange to a ranged GET so metadata peeks do not
// download the whole file.
package blobstore
