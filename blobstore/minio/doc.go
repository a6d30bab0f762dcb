// Package minio provides a blobstore.BlobStore for MinIO and any other
// S3-compatible object store, using the MinIO Go client. Reads use ranged
// GETs; writes stream through a pipe so large array files never need to be
// buffered in memory.
package minio
