// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore,
// plus a DynamoDB-backed Catalog for tracking the current version of a
// named dataset.
//
// Reads use ranged GETs, so a metadata peek of a large array file only
// transfers the header bytes it needs. Writes stream through the SDK's
// managed uploader, which switches to multipart uploads for large files.
package s3
